package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"robotidy/internal/driver"
	"robotidy/internal/pipeline"
	"robotidy/internal/ui"
)

type formatOutcome struct {
	results []driver.Result
	err     error
}

func runFormatWithUI(ctx context.Context, title string, files []string, opts *driver.Options) ([]driver.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		results, err := driver.FormatFiles(ctx, files, &optsCopy)
		outcomeCh <- formatOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
