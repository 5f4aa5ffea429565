// Package metrics provides Prometheus metrics for the plant catalog service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service's Prometheus collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Catalog
	plantsCreated      prometheus.Counter
	validationFailures *prometheus.CounterVec

	// Store
	storeQueryDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // metrics must exist before any handler runs
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "plants",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method", "status_code"},
	)

	m.plantsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plants_created_total",
		Help:      "Total number of plants created through the API",
	})

	m.validationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_failures_total",
			Help:      "Rejected create requests by offending field",
		},
		[]string{"field"},
	)

	m.storeQueryDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_query_duration_seconds",
			Help:      "Duration of store operations in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"operation"},
	)
}

// RecordHTTPRequest counts a served request and observes its duration.
func (m *Manager) RecordHTTPRequest(route, method, statusCode string, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(d.Seconds())
}

// RecordPlantCreated increments the plants created counter.
func (m *Manager) RecordPlantCreated() { m.plantsCreated.Inc() }

// RecordValidationFailure counts a rejected create request.
func (m *Manager) RecordValidationFailure(field string) {
	m.validationFailures.WithLabelValues(field).Inc()
}

// ObserveStoreQuery records the latency of one store operation.
func (m *Manager) ObserveStoreQuery(operation string, d time.Duration) {
	m.storeQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(route, method, statusCode string, d time.Duration) {
	globalManager.RecordHTTPRequest(route, method, statusCode, d)
}

// RecordPlantCreated increments the global plants created counter.
func RecordPlantCreated() { globalManager.RecordPlantCreated() }

// RecordValidationFailure counts a rejected create request on the global manager.
func RecordValidationFailure(field string) { globalManager.RecordValidationFailure(field) }

// ObserveStoreQuery records store latency on the global manager.
func ObserveStoreQuery(operation string, d time.Duration) {
	globalManager.ObserveStoreQuery(operation, d)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler serves the global registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}
