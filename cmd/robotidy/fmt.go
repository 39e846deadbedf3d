package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"robotidy/internal/config"
	"robotidy/internal/diffview"
	"robotidy/internal/driver"
	"robotidy/internal/source"
	"robotidy/internal/transform"
)

var (
	fmtCheck      bool
	fmtDiff       bool
	fmtStartLine  int
	fmtEndLine    int
	fmtTransform  []string
	fmtExclude    string
	fmtJobs       int
	fmtNoCache    bool
	fmtUI         string
	fmtConfigPath string
)

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "report files that would change without writing them")
	fmtCmd.Flags().BoolVar(&fmtDiff, "diff", false, "print a unified diff for every changed file")
	fmtCmd.Flags().IntVar(&fmtStartLine, "startline", 0, "only format lines from this line on (1-based)")
	fmtCmd.Flags().IntVar(&fmtEndLine, "endline", 0, "only format lines up to this line (inclusive)")
	fmtCmd.Flags().StringSliceVar(&fmtTransform, "transform", nil, "transformers to run (default: all)")
	fmtCmd.Flags().StringVar(&fmtExclude, "exclude", "", "regexp of paths to skip")
	fmtCmd.Flags().IntVar(&fmtJobs, "jobs", 0, "number of parallel workers (0 = one per CPU)")
	fmtCmd.Flags().BoolVar(&fmtNoCache, "no-cache", false, "disable the clean-file result cache")
	fmtCmd.Flags().StringVar(&fmtUI, "ui", "auto", "interactive progress (auto|on|off)")
	fmtCmd.Flags().StringVar(&fmtConfigPath, "config", "", "path to robotidy.toml (default: discovered upwards)")
}

var fmtCmd = &cobra.Command{
	Use:          "fmt [paths...]",
	Short:        "Format Robot Framework files",
	Long:         `Formats the given files and directories in place. Pass "-" to format stdin to stdout.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		transformers, err := transform.Select(cfg.Transform)
		if err != nil {
			return err
		}
		exclude, err := cfg.ExcludePattern()
		if err != nil {
			return err
		}

		opts := &driver.Options{
			Transformers: transformers,
			StartLine:    cfg.StartLine,
			EndLine:      cfg.EndLine,
			Check:        cfg.Check,
			Diff:         cfg.Diff,
			Jobs:         cfg.Jobs,
		}

		if len(args) == 1 && args[0] == "-" {
			return formatStdin(cmd, opts)
		}

		paths := args
		if len(paths) == 0 {
			paths = []string{"."}
		}
		files, err := driver.CollectFiles(paths, exclude)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			if !quietMode(cmd) {
				fmt.Fprintln(cmd.OutOrStdout(), "no Robot Framework files found")
			}
			return nil
		}

		if !cfg.NoCache {
			// a broken cache only costs speed
			if cache, err := driver.OpenDiskCache("robotidy"); err == nil {
				opts.Cache = cache
			}
		}

		mode, err := readUIMode(fmtUI)
		if err != nil {
			return err
		}
		var results []driver.Result
		if shouldUseTUI(mode) && !quietMode(cmd) {
			results, err = runFormatWithUI(cmd.Context(), "formatting", files, opts)
		} else {
			results, err = driver.FormatFiles(cmd.Context(), files, opts)
		}
		if err != nil {
			return err
		}
		return summarize(cmd, cfg, results)
	},
}

// resolveConfig loads robotidy.toml (explicit or discovered) and overlays the
// command-line flags that were actually set.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	var err error
	if fmtConfigPath != "" {
		cfg, err = config.Load(fmtConfigPath)
	} else {
		cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("check") {
		cfg.Check = fmtCheck
	}
	if flags.Changed("diff") {
		cfg.Diff = fmtDiff
	}
	if flags.Changed("startline") {
		cfg.StartLine = fmtStartLine
	}
	if flags.Changed("endline") {
		cfg.EndLine = fmtEndLine
	}
	if flags.Changed("transform") {
		cfg.Transform = fmtTransform
	}
	if flags.Changed("exclude") {
		cfg.Exclude = fmtExclude
	}
	if flags.Changed("jobs") {
		cfg.Jobs = fmtJobs
	}
	if flags.Changed("no-cache") {
		cfg.NoCache = fmtNoCache
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// formatStdin formats stdin to stdout. Check mode fails when the input is not
// already formatted.
func formatStdin(cmd *cobra.Command, opts *driver.Options) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	f := source.NewVirtual("<stdin>", content)
	outcome := driver.FormatDocument(f, opts)

	if opts.Check {
		if outcome.Changed {
			return fmt.Errorf("stdin would be reformatted")
		}
		return nil
	}
	if opts.Diff && outcome.Diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), diffview.Colorize(outcome.Diff))
		return nil
	}
	_, err = cmd.OutOrStdout().Write(outcome.Formatted)
	return err
}

func summarize(cmd *cobra.Command, cfg config.Config, results []driver.Result) error {
	out := cmd.OutOrStdout()
	changedStyle := color.New(color.FgYellow)
	errStyle := color.New(color.FgRed, color.Bold)

	var changed, clean, cached, failed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", errStyle.Sprint("error:"), res.Path, res.Err)
		case res.Cached:
			cached++
		case res.Changed:
			changed++
			if cfg.Diff && res.Diff != "" {
				fmt.Fprint(out, diffview.Colorize(res.Diff))
			}
			if cfg.Check {
				fmt.Fprintf(out, "%s %s\n", changedStyle.Sprint("would reformat:"), res.Path)
			} else if !quietMode(cmd) {
				fmt.Fprintf(out, "%s %s\n", changedStyle.Sprint("reformatted:"), res.Path)
			}
		default:
			clean++
		}
	}

	if !quietMode(cmd) {
		fmt.Fprintf(out, "%d changed, %d clean, %d cached, %d failed\n", changed, clean, cached, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	if cfg.Check && changed > 0 {
		return fmt.Errorf("%d file(s) would be reformatted", changed)
	}
	return nil
}
