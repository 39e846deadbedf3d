// Package config loads formatter settings from robotidy.toml. Command-line
// flags overlay the file, the file overlays the defaults; only keys actually
// present in the file take effect.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// ManifestName is the configuration file looked up from the working directory
// upwards.
const ManifestName = "robotidy.toml"

// Config is the effective formatter configuration.
type Config struct {
	// StartLine and EndLine restrict formatting to an inclusive line window;
	// zero means unbounded.
	StartLine int
	EndLine   int
	// Transform names the transformers to run; empty means all built-ins.
	Transform []string
	// Exclude is a regular expression matched against discovered file paths.
	Exclude string
	// Check reports would-be changes without writing files back.
	Check bool
	// Diff prints a unified diff for every changed file.
	Diff bool
	// Jobs bounds formatting concurrency; zero means one worker per CPU.
	Jobs int
	// NoCache disables the clean-file result cache.
	NoCache bool
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{}
}

type fileConfig struct {
	StartLine int      `toml:"startline"`
	EndLine   int      `toml:"endline"`
	Transform []string `toml:"transform"`
	Exclude   string   `toml:"exclude"`
	Check     bool     `toml:"check"`
	Diff      bool     `toml:"diff"`
	Jobs      int      `toml:"jobs"`
	NoCache   bool     `toml:"nocache"`
}

// Find walks up from startDir to locate the nearest robotidy.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a manifest and overlays it on the defaults. Keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("startline") {
		cfg.StartLine = fc.StartLine
	}
	if meta.IsDefined("endline") {
		cfg.EndLine = fc.EndLine
	}
	if meta.IsDefined("transform") {
		cfg.Transform = fc.Transform
	}
	if meta.IsDefined("exclude") {
		cfg.Exclude = fc.Exclude
	}
	if meta.IsDefined("check") {
		cfg.Check = fc.Check
	}
	if meta.IsDefined("diff") {
		cfg.Diff = fc.Diff
	}
	if meta.IsDefined("jobs") {
		cfg.Jobs = fc.Jobs
	}
	if meta.IsDefined("nocache") {
		cfg.NoCache = fc.NoCache
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover locates and loads the nearest manifest above startDir. Without one
// it returns the defaults and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate rejects configurations the formatter cannot honor.
func (c *Config) Validate() error {
	if c.StartLine < 0 || c.EndLine < 0 {
		return fmt.Errorf("startline and endline must not be negative")
	}
	if c.EndLine != 0 && c.StartLine == 0 {
		return fmt.Errorf("endline requires startline")
	}
	if c.EndLine != 0 && c.EndLine < c.StartLine {
		return fmt.Errorf("endline %d is before startline %d", c.EndLine, c.StartLine)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative")
	}
	if c.Exclude != "" {
		if _, err := regexp.Compile(c.Exclude); err != nil {
			return fmt.Errorf("invalid exclude pattern: %w", err)
		}
	}
	return nil
}

// ExcludePattern compiles the exclude regexp, or returns nil when unset.
func (c *Config) ExcludePattern() (*regexp.Regexp, error) {
	if c.Exclude == "" {
		return nil, nil
	}
	return regexp.Compile(c.Exclude)
}
