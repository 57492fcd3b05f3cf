// Package metrics exposes Prometheus metrics for the bulk engine and the
// HTTP surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// Metrics holds all Prometheus metrics for TrainingPulse.
type Metrics struct {
	// Bulk engine
	PreviewsTotal        prometheus.Counter
	ExecutionsTotal      *prometheus.CounterVec
	AffectedRowsTotal    prometheus.Counter
	ExecutionDuration    prometheus.Histogram
	CancellationsTotal   *prometheus.CounterVec
	PreviewsExpiredTotal prometheus.Counter
	NotificationsDropped prometheus.Counter

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with every metric registered on its own
// registry, plus the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		PreviewsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bulk_previews_total",
				Help: "Total number of bulk previews created",
			},
		),
		ExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bulk_executions_total",
				Help: "Total number of finished bulk executions by outcome",
			},
			[]string{"outcome"},
		),
		AffectedRowsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bulk_affected_rows_total",
				Help: "Total number of courses changed by bulk executions",
			},
		),
		ExecutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bulk_execution_duration_seconds",
				Help:    "Bulk execution latency",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		CancellationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bulk_cancellations_total",
				Help: "Total number of bulk preview cancel requests by result",
			},
			[]string{"result"},
		),
		PreviewsExpiredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bulk_previews_expired_total",
				Help: "Total number of previews marked expired",
			},
		),
		NotificationsDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_dropped_total",
				Help: "Total number of notifications dropped because the queue was full",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.PreviewsTotal,
		m.ExecutionsTotal,
		m.AffectedRowsTotal,
		m.ExecutionDuration,
		m.CancellationsTotal,
		m.PreviewsExpiredTotal,
		m.NotificationsDropped,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) PreviewCreated() {
	m.PreviewsTotal.Inc()
}

func (m *Metrics) ExecutionFinished(outcome domain.BulkOutcome, affected int, elapsed time.Duration) {
	m.ExecutionsTotal.WithLabelValues(string(outcome)).Inc()
	m.AffectedRowsTotal.Add(float64(affected))
	m.ExecutionDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Cancellation(result string) {
	m.CancellationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) PreviewsExpired(n int) {
	m.PreviewsExpiredTotal.Add(float64(n))
}

func (m *Metrics) NotificationDropped() {
	m.NotificationsDropped.Inc()
}
