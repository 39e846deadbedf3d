// Package pipeline defines the progress events the formatter emits while
// working through a file set, and the sinks that consume them.
package pipeline

import "time"

// Stage describes a high-level formatting phase for one file.
type Stage string

const (
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageAnalyze is the disabler-collection stage.
	StageAnalyze Stage = "analyze"
	// StageTransform is the transformer-application stage.
	StageTransform Stage = "transform"
	// StageWrite is the write-back (or check) stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file is done.
	StatusDone Status = "done"
	// StatusSkipped indicates the file was served from the clean-file cache.
	StatusSkipped Status = "skipped"
	// StatusError indicates the file could not be processed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Changed bool
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must tolerate concurrent
// OnEvent calls, the formatter runs files in parallel.
type Sink interface {
	OnEvent(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
