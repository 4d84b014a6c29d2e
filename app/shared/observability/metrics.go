package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the instrumentation surface used by the application services.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)

	RecordLevelUp(ctx context.Context, level int)
	RecordBoostGranted(ctx context.Context, boostType string, count int)
	RecordPrizeGranted(ctx context.Context)
	RecordPrizeSkipped(ctx context.Context)
}

type prometheusMetrics struct {
	attempts      *prometheus.CounterVec
	successes     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	levelUps      *prometheus.CounterVec
	boostsGranted *prometheus.CounterVec
	prizes        *prometheus.CounterVec
}

// NewPrometheusMetrics registers the progression metrics on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "progression",
			Name:      "operation_attempts_total",
			Help:      "Total number of service operations attempted",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "progression",
			Name:      "operation_success_total",
			Help:      "Total number of service operations that completed",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "progression",
			Name:      "operation_failures_total",
			Help:      "Total number of service operations that failed",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "progression",
			Name:      "operation_duration_seconds",
			Help:      "Latency of service operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		levelUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "progression",
			Name:      "level_ups_total",
			Help:      "Level-ups applied, labelled by the level reached",
		}, []string{"level"}),
		boostsGranted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "progression",
			Name:      "boosts_granted_total",
			Help:      "Boost units granted, labelled by boost type",
		}, []string{"type"}),
		prizes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "progression",
			Name:      "prize_grants_total",
			Help:      "Prize grant requests, labelled by outcome",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{
		m.attempts, m.successes, m.failures, m.duration, m.levelUps, m.boostsGranted, m.prizes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordLevelUp(_ context.Context, level int) {
	m.levelUps.WithLabelValues(strconv.Itoa(level)).Inc()
}

func (m *prometheusMetrics) RecordBoostGranted(_ context.Context, boostType string, count int) {
	m.boostsGranted.WithLabelValues(boostType).Add(float64(count))
}

func (m *prometheusMetrics) RecordPrizeGranted(_ context.Context) {
	m.prizes.WithLabelValues("granted").Inc()
}

func (m *prometheusMetrics) RecordPrizeSkipped(_ context.Context) {
	m.prizes.WithLabelValues("skipped").Inc()
}

type noopMetrics struct{}

// NewNoopMetrics returns a Metrics that records nothing.
func NewNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noopMetrics) RecordLevelUp(context.Context, int)                                     {}
func (noopMetrics) RecordBoostGranted(context.Context, string, int)                        {}
func (noopMetrics) RecordPrizeGranted(context.Context)                                     {}
func (noopMetrics) RecordPrizeSkipped(context.Context)                                     {}
