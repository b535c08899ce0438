package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process gauges are refreshed by UpdateProcessMetrics rather than on
// each event, so a long-running server calls it from a ticker.
func (r *Registry) initProcessMetrics() {
	factory := promauto.With(r.registry)

	r.UptimeSeconds = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "plotgraph",
		Name:      "uptime_seconds",
		Help:      "Seconds since the analyzer process started",
	})
	r.GoRoutines = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "plotgraph",
		Name:      "goroutines",
		Help:      "Goroutines alive, including one per ingest run being recorded",
	})
	r.HeapInuseBytes = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "plotgraph",
		Name:      "heap_inuse_bytes",
		Help:      "Heap bytes in use, dominated by buffered plot graphs",
	})
	r.GCCycles = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "plotgraph",
		Name:      "gc_cycles",
		Help:      "Completed garbage collection cycles",
	})
}
