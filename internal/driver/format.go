// Package driver orchestrates a formatting run: file discovery, the per-file
// parse / analyze / transform pipeline, parallel execution and the clean-file
// cache.
package driver

import (
	"context"
	"crypto/sha256"
	"io"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"robotidy/internal/diffview"
	"robotidy/internal/disablers"
	"robotidy/internal/parser"
	"robotidy/internal/pipeline"
	"robotidy/internal/source"
	"robotidy/internal/transform"
)

// Options control one formatting run.
type Options struct {
	// Transformers to apply, in order. Required.
	Transformers []transform.Transformer
	// StartLine / EndLine restrict formatting to a line window (zero = none).
	StartLine int
	EndLine   int
	// Check reports would-be changes without writing files back.
	Check bool
	// Diff attaches a unified diff to every changed result.
	Diff bool
	// Jobs bounds concurrency; zero means one worker per CPU.
	Jobs int
	// Cache is the clean-file cache; nil disables caching.
	Cache *DiskCache
	// Sink receives progress events; nil discards them.
	Sink pipeline.Sink
}

func (o *Options) sink() pipeline.Sink {
	if o.Sink == nil {
		return pipeline.NopSink{}
	}
	return o.Sink
}

// fingerprint digests everything that affects formatting output, so cache
// entries die with the configuration that produced them.
func (o *Options) fingerprint() Digest {
	h := sha256.New()
	for _, t := range o.Transformers {
		_, _ = io.WriteString(h, t.Name())
		_, _ = io.WriteString(h, "\n")
	}
	_, _ = io.WriteString(h, strconv.Itoa(o.StartLine)+":"+strconv.Itoa(o.EndLine))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func cacheKey(contentHash, cfg Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(contentHash[:])
	_, _ = h.Write(cfg[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Result is the outcome for one file.
type Result struct {
	Path      string
	Changed   bool
	Cached    bool
	Formatted []byte
	Diff      string
	Err       error
}

// Outcome carries the in-memory result of formatting a single document.
type Outcome struct {
	Formatted []byte
	Changed   bool
	Diff      string
	Registry  *disablers.DisablersInFile
}

// FormatDocument runs the parse / analyze / transform pipeline on one file in
// memory. It never touches the filesystem.
func FormatDocument(f *source.File, opts *Options) Outcome {
	tree := parser.Parse(f)
	reg := disablers.NewRegisterDisablers(opts.StartLine, opts.EndLine)
	registry := reg.Visit(tree)

	doc := &transform.Document{
		File:      f,
		Lines:     f.Lines(),
		Tree:      tree,
		Disablers: registry,
	}
	changed := transform.Run(doc, opts.Transformers)

	out := Outcome{
		Formatted: f.Render(doc.Lines),
		Changed:   changed,
		Registry:  registry,
	}
	if opts.Diff && changed {
		out.Diff = diffview.Unified(f.Path, f.Lines(), doc.Lines)
	}
	return out
}

// FormatFiles formats an already-collected file list in parallel. The result
// slice is index-aligned with files; per-file failures land in Result.Err
// while the returned error is reserved for cancellation.
func FormatFiles(ctx context.Context, files []string, opts *Options) ([]Result, error) {
	sink := opts.sink()
	cfgHash := opts.fingerprint()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusQueued})
	}

	// indices are unique per goroutine, no mutex needed
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOne(path, cfgHash, opts, sink)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FormatPaths expands the argument paths and formats everything found.
func FormatPaths(ctx context.Context, paths []string, exclude *regexp.Regexp, opts *Options) ([]Result, error) {
	files, err := CollectFiles(paths, exclude)
	if err != nil {
		return nil, err
	}
	return FormatFiles(ctx, files, opts)
}

func formatOne(path string, cfgHash Digest, opts *Options, sink pipeline.Sink) Result {
	start := time.Now()
	fail := func(err error) Result {
		sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(start)})
		return Result{Path: path, Err: err}
	}

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	f, err := source.Load(path)
	if err != nil {
		return fail(err)
	}

	key := cacheKey(f.Hash, cfgHash)
	if opts.Cache != nil {
		var payload Payload
		// cache read failures fall through to a normal format
		if ok, _ := opts.Cache.Get(key, &payload); ok && payload.Clean {
			sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusSkipped, Elapsed: time.Since(start)})
			return Result{Path: f.Path, Cached: true}
		}
	}

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageTransform, Status: pipeline.StatusWorking})
	outcome := FormatDocument(f, opts)

	result := Result{
		Path:      f.Path,
		Changed:   outcome.Changed,
		Formatted: outcome.Formatted,
		Diff:      outcome.Diff,
	}

	switch {
	case outcome.Changed && !opts.Check:
		sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
		if err := writeBack(path, outcome.Formatted); err != nil {
			return fail(err)
		}
	case !outcome.Changed:
		storeClean(opts.Cache, key, f)
	}

	sink.OnEvent(pipeline.Event{
		File:    path,
		Stage:   pipeline.StageWrite,
		Status:  pipeline.StatusDone,
		Changed: outcome.Changed,
		Elapsed: time.Since(start),
	})
	return result
}

// storeClean records a no-change verdict. Overflow or I/O problems only cost
// a future cache hit.
func storeClean(cache *DiskCache, key Digest, f *source.File) {
	if cache == nil {
		return
	}
	lineCount, err := safecast.Conv[uint32](f.LineCount())
	if err != nil {
		return
	}
	_ = cache.Put(key, &Payload{
		Schema:    cacheSchemaVersion,
		Path:      f.Path,
		LineCount: lineCount,
		Clean:     true,
		CachedAt:  time.Now().Unix(),
	})
}

func writeBack(path string, content []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, content, perm)
}
