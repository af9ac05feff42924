// Package observability provides OpenTelemetry metrics for codemod runs,
// exported through Prometheus and written to a node_exporter textfile.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Config holds OpenTelemetry configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
}

// MeterProvider wraps the OpenTelemetry meter provider and the Prometheus
// registry its exporter writes into.
type MeterProvider struct {
	provider *metric.MeterProvider
	exporter *prometheus.Exporter
	registry *promclient.Registry
}

// InitMeterProvider initializes OpenTelemetry metrics with a Prometheus
// exporter bound to a private registry.
func InitMeterProvider(cfg Config) (*MeterProvider, error) {
	// Create resource with service information (without schema URL to avoid conflicts)
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(exporter),
	)

	// Set global meter provider
	otel.SetMeterProvider(provider)

	return &MeterProvider{
		provider: provider,
		exporter: exporter,
		registry: registry,
	}, nil
}

// WriteTextfile gathers the current metrics and writes them to path in the
// Prometheus text format. The file is written atomically.
func (mp *MeterProvider) WriteTextfile(path string) error {
	if err := promclient.WriteToTextfile(path, mp.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}

// Shutdown gracefully shuts down the meter provider
func (mp *MeterProvider) Shutdown(ctx context.Context, logger *slog.Logger) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown meter provider", slog.String("error", err.Error()))
		return err
	}

	logger.Debug("meter provider shutdown successfully")
	return nil
}
