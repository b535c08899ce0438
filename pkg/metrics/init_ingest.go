package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initIngestMetrics() {
	r.IngestRecordsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_ingest_records_total",
			Help: "Total number of event report records received",
		},
		[]string{"kind", "status"},
	)

	r.IngestRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_ingest_runs_total",
			Help: "Total number of simulation runs received",
		},
		[]string{"status"},
	)

	r.IngestRunsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "plotgraph_ingest_runs_in_flight",
			Help: "Current number of runs being recorded",
		},
	)
}
