// Package observability builds the logger, metrics and tracers handed to
// every module.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "frolf-progression"

// Observability bundles the ambient instrumentation for a process.
type Observability struct {
	Logger   *slog.Logger
	Metrics  Metrics
	Registry *prometheus.Registry
	tracers  trace.TracerProvider
}

// Tracer returns a named tracer from the configured provider.
func (o Observability) Tracer(name string) trace.Tracer {
	if o.tracers == nil {
		return otel.Tracer(serviceName + "/" + name)
	}
	return o.tracers.Tracer(serviceName + "/" + name)
}

// Init creates an Observability writing logs to stderr.
func Init(cfg config.ObservabilityConfig) (Observability, error) {
	return InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter creates an Observability writing logs to w.
func InitWithWriter(cfg config.ObservabilityConfig, w io.Writer) (Observability, error) {
	logger, err := NewLogger(cfg, w)
	if err != nil {
		return Observability{}, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := NewPrometheusMetrics(registry)
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register metrics: %w", err)
	}

	return Observability{
		Logger:   logger,
		Metrics:  metrics,
		Registry: registry,
		tracers:  otel.GetTracerProvider(),
	}, nil
}

// NewNoop returns an Observability that discards everything. Used in tests.
func NewNoop() Observability {
	return Observability{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: NewNoopMetrics(),
	}
}

// NewLogger builds a slog logger from the configured level and format.
func NewLogger(cfg config.ObservabilityConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}

	logger := slog.New(handler).With(
		slog.String("service", serviceName),
	)
	if cfg.Environment != "" {
		logger = logger.With(slog.String("environment", cfg.Environment))
	}
	return logger, nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// WriteMetrics dumps the registry in the Prometheus text format to path,
// for pickup by a node_exporter textfile collector.
func (o Observability) WriteMetrics(path string) error {
	if path == "" || o.Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, o.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
