// Package observability bundles the logger, tracer and metrics handed to every module.
package observability

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Black-And-White-Club/golf-stableford/config"
)

// ServiceName is attached to every log line and names the tracer.
const ServiceName = "golf-stableford"

// Observability groups the telemetry handles.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  Metrics
	Registry *prometheus.Registry // nil when metrics are disabled
}

// Init builds telemetry from configuration. Tracing uses the global otel provider, which
// is a no-op unless an exporter has been installed.
func Init(cfg config.ObservabilityConfig, logOutput io.Writer) (Observability, error) {
	obs := Observability{
		Logger:  NewLogger(logOutput, cfg.LogLevel, cfg.LogFormat, cfg.Environment),
		Tracer:  otel.Tracer(ServiceName),
		Metrics: NoOpMetrics{},
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m, err := NewPrometheusMetrics(reg)
		if err != nil {
			return Observability{}, fmt.Errorf("failed to register metrics: %w", err)
		}
		obs.Metrics = m
		obs.Registry = reg
	}

	return obs, nil
}

// NewNoop returns telemetry that discards everything.
func NewNoop() Observability {
	return Observability{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:  noop.NewTracerProvider().Tracer("noop"),
		Metrics: NoOpMetrics{},
	}
}
