package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"robotidy/internal/disablers"
	"robotidy/internal/driver"
	"robotidy/internal/parser"
	"robotidy/internal/source"
)

var (
	disablersStartLine int
	disablersEndLine   int
)

func init() {
	disablersCmd.Flags().IntVar(&disablersStartLine, "startline", 0, "restrict to a line window, like fmt --startline")
	disablersCmd.Flags().IntVar(&disablersEndLine, "endline", 0, "restrict to a line window, like fmt --endline")
}

var disablersCmd = &cobra.Command{
	Use:          "disablers [paths...]",
	Short:        "Show which lines are suppressed in which files",
	Long:         `Parses the given files and prints every # robotidy: on/off range that was registered, per target.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			paths = []string{"."}
		}
		files, err := driver.CollectFiles(paths, nil)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		pathStyle := color.New(color.FgCyan, color.Bold)
		wholeStyle := color.New(color.FgRed)

		reg := disablers.NewRegisterDisablers(disablersStartLine, disablersEndLine)
		for _, path := range files {
			f, err := source.Load(path)
			if err != nil {
				return err
			}
			registry := reg.Visit(parser.Parse(f))

			fmt.Fprintln(out, pathStyle.Sprint(f.Path))
			printed := false
			for _, name := range registry.TargetNames() {
				target, _ := registry.Target(name)
				if !target.WholeFile() && len(target.Intervals()) == 0 && len(target.HeaderLines()) == 0 {
					continue
				}
				printed = true
				label := name
				if name == disablers.AllTransformers {
					label = "all transformers"
				}
				fmt.Fprintf(out, "  %s:", label)
				if target.WholeFile() {
					fmt.Fprintf(out, " %s", wholeStyle.Sprint("whole file"))
				}
				for _, iv := range target.Intervals() {
					fmt.Fprintf(out, " %d-%d", iv.Start, iv.End)
				}
				for _, line := range target.HeaderLines() {
					fmt.Fprintf(out, " header@%d", line)
				}
				fmt.Fprintln(out)
			}
			if !printed {
				fmt.Fprintln(out, "  no disablers")
			}
		}
		return nil
	},
}
