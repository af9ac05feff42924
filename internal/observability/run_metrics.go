package observability

import (
	"context"
	"fmt"
	"log/slog"

	"accessor-rename/internal/codemod"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunMetrics holds custom metrics for codemod runs.
type RunMetrics struct {
	runCounter     metric.Int64Counter
	filesScanned   metric.Int64Counter
	filesChanged   metric.Int64Counter
	replacements   metric.Int64Counter
	failureCounter metric.Int64Counter
	durationHist   metric.Float64Histogram
}

// InitRunMetrics initializes run metrics on mp.
func InitRunMetrics(mp *MeterProvider, logger *slog.Logger) (*RunMetrics, error) {
	meter := mp.provider.Meter("accessor-rename")

	runCounter, err := meter.Int64Counter(
		"codemod.runs",
		metric.WithDescription("Total number of codemod runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run counter: %w", err)
	}

	filesScanned, err := meter.Int64Counter(
		"codemod.files.scanned",
		metric.WithDescription("Files read by the codemod"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create files scanned counter: %w", err)
	}

	filesChanged, err := meter.Int64Counter(
		"codemod.files.changed",
		metric.WithDescription("Files with at least one replacement"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create files changed counter: %w", err)
	}

	replacements, err := meter.Int64Counter(
		"codemod.replacements",
		metric.WithDescription("Accessor replacements, by rename table entry"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create replacements counter: %w", err)
	}

	failureCounter, err := meter.Int64Counter(
		"codemod.files.failed",
		metric.WithDescription("Files that could not be processed, by operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failure counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"codemod.run.duration",
		metric.WithDescription("Duration of codemod runs in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run duration histogram: %w", err)
	}

	logger.Debug("run metrics initialized")
	return &RunMetrics{
		runCounter:     runCounter,
		filesScanned:   filesScanned,
		filesChanged:   filesChanged,
		replacements:   replacements,
		failureCounter: failureCounter,
		durationHist:   durationHist,
	}, nil
}

// RecordRun records the outcome of a run.
func (m *RunMetrics) RecordRun(ctx context.Context, summary *codemod.RunSummary) {
	if summary == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.Bool("dry_run", summary.DryRun),
		attribute.Bool("success", !summary.Failed()),
	)

	m.runCounter.Add(ctx, 1, attrs)
	m.filesScanned.Add(ctx, int64(summary.FilesScanned))
	m.filesChanged.Add(ctx, int64(summary.FilesChanged))
	m.durationHist.Record(ctx, float64(summary.Duration.Milliseconds()), attrs)

	for entry, n := range summary.ByEntry() {
		m.replacements.Add(ctx, int64(n), metric.WithAttributes(attribute.String("entry", entry)))
	}
	for _, f := range summary.Failures {
		m.failureCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("op", f.Op)))
	}
}
