package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the instrumentation surface used by services, handlers and the HTTP layer.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)

	RecordScoreRecorded(ctx context.Context, variant string, points int)
	RecordRoundStarted(ctx context.Context, mode string)
	RecordRoundCompleted(ctx context.Context, mode string)
	SetLiveClients(n int)

	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}

type prometheusMetrics struct {
	operations      *prometheus.CounterVec
	operationTime   *prometheus.HistogramVec
	scoresRecorded  *prometheus.CounterVec
	pointsAwarded   *prometheus.HistogramVec
	roundsStarted   *prometheus.CounterVec
	roundsCompleted *prometheus.CounterVec
	liveClients     prometheus.Gauge
	httpRequests    *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := &prometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stableford",
			Name:      "operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"service", "operation", "outcome"}),
		operationTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stableford",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		scoresRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stableford",
			Name:      "scores_recorded_total",
			Help:      "Hole scores recorded.",
		}, []string{"variant"}),
		pointsAwarded: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stableford",
			Name:      "hole_points",
			Help:      "Stableford points per recorded hole.",
			Buckets:   []float64{0, 1, 2, 3, 4},
		}, []string{"variant"}),
		roundsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stableford",
			Name:      "rounds_started_total",
			Help:      "Rounds started.",
		}, []string{"mode"}),
		roundsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stableford",
			Name:      "rounds_completed_total",
			Help:      "Rounds finished and archived.",
		}, []string{"mode"}),
		liveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stableford",
			Name:      "live_clients",
			Help:      "Connected live leaderboard websockets.",
		}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stableford",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	for _, c := range []prometheus.Collector{
		m.operations, m.operationTime, m.scoresRecorded, m.pointsAwarded,
		m.roundsStarted, m.roundsCompleted, m.liveClients, m.httpRequests,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "attempt").Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "success").Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "failure").Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.operationTime.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordScoreRecorded(_ context.Context, variant string, points int) {
	m.scoresRecorded.WithLabelValues(variant).Inc()
	m.pointsAwarded.WithLabelValues(variant).Observe(float64(points))
}

func (m *prometheusMetrics) RecordRoundStarted(_ context.Context, mode string) {
	m.roundsStarted.WithLabelValues(mode).Inc()
}

func (m *prometheusMetrics) RecordRoundCompleted(_ context.Context, mode string) {
	m.roundsCompleted.WithLabelValues(mode).Inc()
}

func (m *prometheusMetrics) SetLiveClients(n int) {
	m.liveClients.Set(float64(n))
}

func (m *prometheusMetrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordScoreRecorded(context.Context, string, int)                       {}
func (NoOpMetrics) RecordRoundStarted(context.Context, string)                             {}
func (NoOpMetrics) RecordRoundCompleted(context.Context, string)                           {}
func (NoOpMetrics) SetLiveClients(int)                                                     {}
func (NoOpMetrics) ObserveHTTPRequest(string, string, int, time.Duration)                  {}
