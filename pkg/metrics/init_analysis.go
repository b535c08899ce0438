package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_analyses_total",
			Help: "Total number of analysis runs",
		},
		[]string{"status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plotgraph_analysis_duration_seconds",
			Help:    "Analysis phase duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"phase"},
	)

	r.TellabilityScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plotgraph_tellability_score",
			Help:    "Tellability score of analyzed plots",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 2.0},
		},
	)

	r.UnitInstancesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_unit_instances_total",
			Help: "Total number of functional unit instances found",
		},
		[]string{"unit"},
	)

	r.PolyvalentVertices = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plotgraph_polyvalent_vertices",
			Help:    "Number of polyvalent vertices per analyzed plot",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	r.ProductiveConflicts = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plotgraph_productive_conflicts",
			Help:    "Number of productive conflicts per analyzed plot",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)

	r.GraphVertices = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plotgraph_graph_vertices",
			Help:    "Number of vertices per post-processed plot graph",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)
}
