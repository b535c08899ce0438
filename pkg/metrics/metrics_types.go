package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Analysis Metrics
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	TellabilityScore    prometheus.Histogram
	UnitInstancesTotal  *prometheus.CounterVec
	PolyvalentVertices  prometheus.Histogram
	ProductiveConflicts prometheus.Histogram
	GraphVertices       prometheus.Histogram

	// Ingest Metrics
	IngestRecordsTotal *prometheus.CounterVec
	IngestRunsTotal    *prometheus.CounterVec
	IngestRunsInFlight prometheus.Gauge

	// Process Metrics
	UptimeSeconds  prometheus.Gauge
	GoRoutines     prometheus.Gauge
	HeapInuseBytes prometheus.Gauge
	GCCycles       prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initAnalysisMetrics()
	r.initIngestMetrics()
	r.initProcessMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
