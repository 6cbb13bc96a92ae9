// Package driver runs the lint pipeline over files and directories:
// load, parse, rule checks, with parallel fan-out and a content-addressed
// result cache.
package driver

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"rblint/internal/config"
	"rblint/internal/diag"
	"rblint/internal/parser"
	"rblint/internal/rules"
	"rblint/internal/source"
)

// Options configures a lint run.
type Options struct {
	Config *config.Config
	Rules  []rules.Enabled
	// Jobs caps worker goroutines; zero means GOMAXPROCS.
	Jobs int
	// Cache is optional; nil disables caching.
	Cache *DiskCache
	// Log is optional; nil discards debug output.
	Log *logrus.Logger
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// FromCache marks results served without re-parsing.
	FromCache bool
}

// Result aggregates a whole run.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Bag merges per-file diagnostics into one sorted bag.
func (r *Result) Bag(maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, f := range r.Files {
		merged.Merge(f.Bag)
	}
	merged.Sort()
	return merged
}

func (o *Options) logger() *logrus.Logger {
	if o.Log != nil {
		return o.Log
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func (o *Options) maxDiagnostics() int {
	if o.Config != nil && o.Config.MaxDiagnostics > 0 {
		return o.Config.MaxDiagnostics
	}
	return config.DefaultMaxDiagnostics
}

// listRubyFiles returns every *.rb file under dir, sorted for
// deterministic scheduling and output. Paths matching a config exclude
// pattern are dropped.
func listRubyFiles(dir string, cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if path != dir && cfg != nil && cfg.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".rb") {
			return nil
		}
		if cfg != nil && cfg.Excluded(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckFile lints a single file.
func CheckFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	res, err := checkLoaded(ctx, fileSet, []string{path}, opts)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CheckDir lints every Ruby file under dir in parallel. File order in the
// result is deterministic regardless of scheduling.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := listRubyFiles(dir, opts.Config)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	return checkLoaded(ctx, fileSet, files, opts)
}

func checkLoaded(ctx context.Context, fileSet *source.FileSet, paths []string, opts Options) (*Result, error) {
	log := opts.logger()
	maxDiags := opts.maxDiagnostics()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Loading mutates the FileSet, so it stays on one goroutine; the
	// per-file work below only reads it.
	type loaded struct {
		path string
		id   source.FileID
		err  error
	}
	loadedFiles := make([]loaded, len(paths))
	for i, path := range paths {
		id, err := fileSet.Load(path)
		loadedFiles[i] = loaded{path: path, id: id, err: err}
	}

	runner := rules.NewRunner(opts.Rules)
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i := range loadedFiles {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			lf := loadedFiles[i]
			bag := diag.NewBag(maxDiags)
			results[i] = FileResult{Path: lf.path, Bag: bag}

			if lf.err != nil {
				log.WithError(lf.err).WithField("path", lf.path).Warn("failed to load file")
				return lf.err
			}
			results[i].FileID = lf.id
			file := fileSet.Get(lf.id)

			if hit := opts.Cache.Lookup(file, bag); hit {
				results[i].FromCache = true
				log.WithField("path", lf.path).Debug("cache hit")
				return nil
			}

			exprs := parser.ParseFile(file, diag.BagReporter{Bag: bag})
			runner.Run(file, exprs, diag.BagReporter{Bag: bag})
			bag.Sort()

			if err := opts.Cache.Store(file, bag); err != nil {
				log.WithError(err).WithField("path", lf.path).Debug("cache store failed")
			}
			log.WithFields(logrus.Fields{
				"path":        lf.path,
				"diagnostics": bag.Len(),
			}).Debug("linted")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{FileSet: fileSet, Files: results}, nil
}
