package codemod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"accessor-rename/internal/discovery"
	"accessor-rename/internal/logging"
	"accessor-rename/internal/renametable"

	"golang.org/x/sync/errgroup"
)

// Options configures a run.
type Options struct {
	Root    string
	Include []string
	Exclude []string
	Roots   []string
	Table   *renametable.Table
	DryRun  bool
	// Workers bounds the number of files processed concurrently. Values
	// below 1 mean sequential processing.
	Workers int
	// FailFast aborts the run on the first file error instead of recording
	// it and moving on.
	FailFast bool
}

// Runner executes codemod runs.
type Runner struct {
	opts     Options
	rewriter *Rewriter
	logger   *logging.Logger

	// File access, replaceable in tests.
	readFile  func(name string) ([]byte, error)
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewRunner validates opts and compiles the rewriter.
func NewRunner(opts Options, logger *logging.Logger) (*Runner, error) {
	rewriter, err := NewRewriter(opts.Table, opts.Roots)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &logging.Logger{Logger: slog.Default()}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		opts:      opts,
		rewriter:  rewriter,
		logger:    logger,
		readFile:  os.ReadFile,
		writeFile: os.WriteFile,
	}, nil
}

type fileOutcome struct {
	report *FileChangeReport
	err    *IOError
}

// Run discovers files under the root and rewrites them. Per-file failures are
// recorded in the summary and do not stop the run unless FailFast is set.
// A non-nil error is returned when discovery fails, when FailFast trips, or
// when ctx is cancelled; the summary then covers the files finished so far.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{
		Root:   r.opts.Root,
		DryRun: r.opts.DryRun,
		Files:  []FileChangeReport{},
	}

	ctx = logging.WithLogger(ctx, r.logger)
	found, err := discovery.Discover(ctx, discovery.Options{
		Root:    r.opts.Root,
		Include: r.opts.Include,
		Exclude: r.opts.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	for _, walkErr := range found.Errors {
		ioErr := &IOError{Op: "walk", Path: walkErr.Path, Err: walkErr.Err}
		r.logger.Warn("failed to walk path",
			slog.String("path", walkErr.Path),
			slog.String("error", walkErr.Err.Error()),
		)
		summary.Failures = append(summary.Failures, newFailure(ioErr))
	}
	if r.opts.FailFast && len(summary.Failures) > 0 {
		summary.Duration = time.Since(start)
		return summary, summary.Failures[0].Err
	}

	r.logger.Info("discovered files",
		slog.String("root", r.opts.Root),
		slog.Int("files", len(found.Files)),
		slog.Bool("dry_run", r.opts.DryRun),
		slog.Int("workers", r.opts.Workers),
	)

	outcomes := make([]fileOutcome, len(found.Files))
	done := make([]bool, len(found.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, file := range found.Files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			outcomes[i] = r.processFile(file)
			done[i] = true
			if r.opts.FailFast && outcomes[i].err != nil {
				return outcomes[i].err
			}
			return nil
		})
	}
	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}

	for i, outcome := range outcomes {
		if !done[i] {
			continue
		}
		summary.FilesScanned++
		if outcome.err != nil {
			summary.Failures = append(summary.Failures, newFailure(outcome.err))
			continue
		}
		if outcome.report == nil {
			continue
		}
		summary.Files = append(summary.Files, *outcome.report)
		summary.FilesChanged++
		summary.Replacements += outcome.report.Replacements
	}
	summary.Duration = time.Since(start)

	r.logger.Info("run finished",
		slog.Int("files_scanned", summary.FilesScanned),
		slog.Int("files_changed", summary.FilesChanged),
		slog.Int("replacements", summary.Replacements),
		slog.Int("failures", len(summary.Failures)),
		slog.Duration("duration", summary.Duration),
	)

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return summary, runErr
	}
	if runErr != nil {
		return summary, fmt.Errorf("run interrupted: %w", runErr)
	}
	return summary, nil
}

func (r *Runner) processFile(file discovery.File) fileOutcome {
	logger := r.logger.WithFields(slog.String("path", file.Rel))

	fail := func(op string, err error) fileOutcome {
		logger.Warn("failed to process file",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return fileOutcome{err: &IOError{Op: op, Path: file.Rel, Err: err}}
	}

	info, err := os.Stat(file.Path)
	if err != nil {
		return fail("stat", err)
	}
	src, err := r.readFile(file.Path)
	if err != nil {
		return fail("read", err)
	}

	out, res := r.rewriter.Rewrite(src)
	if res.Replacements == 0 {
		return fileOutcome{}
	}

	if !r.opts.DryRun {
		if err := r.writeFile(file.Path, out, info.Mode().Perm()); err != nil {
			return fail("write", err)
		}
	}
	logger.Debug("rewrote file",
		slog.Int("replacements", res.Replacements),
		slog.Bool("dry_run", r.opts.DryRun),
	)

	return fileOutcome{report: &FileChangeReport{
		Path:         file.Rel,
		Replacements: res.Replacements,
		ByEntry:      res.ByEntry,
	}}
}
