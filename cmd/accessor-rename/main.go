package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"accessor-rename/internal/codemod"
	"accessor-rename/internal/config"
	"accessor-rename/internal/logging"
	"accessor-rename/internal/naming"
	"accessor-rename/internal/observability"
	"accessor-rename/internal/renametable"
	"accessor-rename/internal/report"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

var (
	// Version is set at build time via -ldflags "-X main.Version=...".
	Version = "dev"
	Commit  = "none"
)

// errRunFailed marks a run that completed but left files unprocessed.
var errRunFailed = errors.New("one or more files could not be processed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run executes the command and reports any returned error on stderr, through
// the configured logger once it exists.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := pflag.NewFlagSet("accessor-rename", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Bool("version", false, "Print version and exit")
	fs.StringSlice("suggest", nil, "Print a rename table for the given model names and exit")

	cfg, err := config.LoadFrom(fs, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		err = fmt.Errorf("failed to load configuration: %w", err)
		fmt.Fprintf(stderr, "accessor-rename: %v\n", err)
		return err
	}

	if showVersion, _ := fs.GetBool("version"); showVersion {
		fmt.Fprintf(stdout, "accessor-rename %s (%s)\n", Version, Commit)
		return nil
	}

	logger := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: stderr,
	}).WithRunID(uuid.NewString())
	defer func() {
		if err != nil {
			logger.Error("codemod error", slog.String("error", err.Error()))
		}
	}()

	if models, _ := fs.GetStringSlice("suggest"); len(models) > 0 {
		if err := checkConfig(logger, cfg.ValidateNaming()); err != nil {
			return err
		}
		return suggest(stdout, models, cfg.Naming, logger)
	}

	if err := checkConfig(logger, cfg.Validate()); err != nil {
		return err
	}

	table := renametable.Builtin()
	if cfg.Table != "" {
		table, err = renametable.LoadFile(cfg.Table)
		if err != nil {
			return fmt.Errorf("failed to load rename table: %w", err)
		}
	}
	logger.Debug("rename table loaded",
		slog.String("source", table.Source()),
		slog.Int("entries", table.Len()),
	)

	runner, err := codemod.NewRunner(codemod.Options{
		Root:     cfg.Root,
		Include:  cfg.Patterns,
		Exclude:  cfg.Exclude,
		Roots:    cfg.AccessRoots,
		Table:    table,
		DryRun:   cfg.DryRun,
		Workers:  cfg.Workers,
		FailFast: cfg.FailFast,
	}, logger)
	if err != nil {
		return err
	}

	summary, runErr := runner.Run(ctx)
	if summary != nil {
		if err := report.Write(stdout, summary, cfg.Output); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if cfg.MetricsFile != "" {
			if err := writeMetrics(cfg.MetricsFile, summary, logger); err != nil {
				return err
			}
		}
	}
	if runErr != nil {
		return runErr
	}
	if summary.Failed() {
		return errRunFailed
	}
	return nil
}

// checkConfig logs validation warnings and errors and fails when there are
// errors.
func checkConfig(logger *logging.Logger, result *config.ValidationResult) error {
	for _, warn := range result.Warnings {
		logger.Warn("configuration warning",
			slog.String("field", warn.Field),
			slog.String("message", warn.Message),
			slog.String("hint", warn.Hint),
		)
	}
	if result.HasErrors() {
		for _, err := range result.Errors {
			logger.Error("configuration error",
				slog.String("field", err.Field),
				slog.String("message", err.Message),
				slog.String("hint", err.Hint),
			)
		}
		return fmt.Errorf("configuration validation failed")
	}
	return nil
}

func suggest(w io.Writer, models []string, cfg naming.Config, logger *logging.Logger) error {
	namer := naming.New(cfg, logger.Logger)
	table, err := renametable.New(namer.Suggest(models))
	if err != nil {
		return fmt.Errorf("failed to build suggested table: %w", err)
	}
	return table.Encode(w)
}

func writeMetrics(path string, summary *codemod.RunSummary, logger *logging.Logger) error {
	mp, err := observability.InitMeterProvider(observability.Config{
		ServiceName:    "accessor-rename",
		ServiceVersion: Version,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = mp.Shutdown(context.Background(), logger.Logger)
	}()

	metrics, err := observability.InitRunMetrics(mp, logger.Logger)
	if err != nil {
		return err
	}
	metrics.RecordRun(context.Background(), summary)

	if err := mp.WriteTextfile(path); err != nil {
		return err
	}
	logger.Debug("metrics written", slog.String("path", path))
	return nil
}
