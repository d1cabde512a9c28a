// Package metrics exposes Prometheus metrics for the analytics server.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/segment"
)

const (
	namespace = "cricmetrics"
	subsystem = "api"
)

// Manager owns a private registry so Go runtime collectors stay out of the
// exposition and tests can build independent instances.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	computeDuration *prometheus.HistogramVec
	computeErrors   *prometheus.CounterVec

	datasetRows      *prometheus.GaugeVec
	datasetSynthetic prometheus.Gauge
}

// NewManager creates a Manager with every metric registered.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)
	return &Manager{
		registry: reg,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		}, []string{"endpoint", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method", "status_code"}),
		computeDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "duration_seconds",
			Help:      "Time spent recomputing an analytics result",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		computeErrors: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "errors_total",
			Help:      "Analytics computations that returned an error, by kind",
		}, []string{"operation", "kind"}),
		datasetRows: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Rows loaded per relation",
		}, []string{"relation"}),
		datasetSynthetic: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "synthetic",
			Help:      "1 when the synthetic fallback dataset is being served",
		}),
	}
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest counts one request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, d time.Duration) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(d.Seconds())
}

// ObserveCompute records how long operation took and classifies err, if any.
func (m *Manager) ObserveCompute(operation string, start time.Time, err error) {
	m.computeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.computeErrors.WithLabelValues(operation, errorKind(err)).Inc()
	}
}

// SetDataset publishes the size of the loaded relations.
func (m *Manager) SetDataset(ds *model.Dataset) {
	m.datasetRows.WithLabelValues("matches").Set(float64(len(ds.Matches)))
	m.datasetRows.WithLabelValues("deliveries").Set(float64(len(ds.Deliveries)))
	if ds.Synthetic {
		m.datasetSynthetic.Set(1)
	} else {
		m.datasetSynthetic.Set(0)
	}
}

func errorKind(err error) string {
	if errors.Is(err, segment.ErrInsufficientData) {
		return "insufficient_data"
	}
	return "other"
}
