package metrics

import (
	"runtime"
	"time"
)

// Analysis phases
const (
	PhasePostProcess = "postprocess"
	PhaseScore       = "score"
	PhaseTotal       = "total"
)

// AnalysisResult is the slice of an analysis the registry records.
type AnalysisResult struct {
	Score               float64
	UnitCounts          map[string]int
	PolyvalentVertices  int
	ProductiveConflicts int
	Vertices            int
}

// RecordAnalysis records a successful analysis run
func (r *Registry) RecordAnalysis(res AnalysisResult, duration time.Duration) {
	r.AnalysesTotal.WithLabelValues("success").Inc()
	r.AnalysisDuration.WithLabelValues(PhaseTotal).Observe(duration.Seconds())
	r.TellabilityScore.Observe(res.Score)
	r.PolyvalentVertices.Observe(float64(res.PolyvalentVertices))
	r.ProductiveConflicts.Observe(float64(res.ProductiveConflicts))
	r.GraphVertices.Observe(float64(res.Vertices))

	for unit, n := range res.UnitCounts {
		if n > 0 {
			r.UnitInstancesTotal.WithLabelValues(unit).Add(float64(n))
		}
	}
}

// RecordAnalysisFailure records a failed analysis run
func (r *Registry) RecordAnalysisFailure() {
	r.AnalysesTotal.WithLabelValues("error").Inc()
}

// ObservePhase records the duration of one analysis phase
func (r *Registry) ObservePhase(phase string, duration time.Duration) {
	r.AnalysisDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordIngest records a received record of the given kind
func (r *Registry) RecordIngest(kind string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.IngestRecordsTotal.WithLabelValues(kind, status).Inc()
}

// RunStarted marks a run as being recorded
func (r *Registry) RunStarted() {
	r.IngestRunsInFlight.Inc()
}

// RunFinished marks a run as complete
func (r *Registry) RunFinished(status string) {
	r.IngestRunsInFlight.Dec()
	r.IngestRunsTotal.WithLabelValues(status).Inc()
}

// UpdateProcessMetrics refreshes uptime and Go runtime gauges
func (r *Registry) UpdateProcessMetrics(start time.Time) {
	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.HeapInuseBytes.Set(float64(m.HeapInuse))
	r.GCCycles.Set(float64(m.NumGC))
}
