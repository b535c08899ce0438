// Package analysis runs a complete tellability analysis of one recorded plot:
// snapshot, post-process, detect units, score, then report the result to the
// metrics registry and the result broker.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/plotgraph/pkg/connectivity"
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/metrics"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
	"github.com/dd0wney/plotgraph/pkg/postprocess"
	"github.com/dd0wney/plotgraph/pkg/pubsub"
	"github.com/dd0wney/plotgraph/pkg/tellability"
	"github.com/dd0wney/plotgraph/pkg/units"
)

// DefaultTopic is the broker topic reports are published on.
const DefaultTopic = "tellability"

// Report is the outcome of one analysis run.
type Report struct {
	RunID        string                   `json:"run_id"`
	Name         string                   `json:"name"`
	Score        float64                  `json:"score"`
	Tellability  *tellability.Tellability `json:"tellability"`
	Connectivity connectivity.Stats       `json:"connectivity"`
	Duration     time.Duration            `json:"duration_ns"`

	// Graph is the post-processed, unit-annotated clone.
	Graph *plotgraph.Graph `json:"-"`
}

// Options configures an Analyzer. Every field is optional.
type Options struct {
	PostProcess       postprocess.Options
	IncludePrimitives bool
	Topic             string
	Logger            logging.Logger
	Metrics           *metrics.Registry
	Broker            *pubsub.Broker[*Report]
}

// Analyzer runs analyses. It is safe for concurrent use: every run works on
// its own clone and the catalog is read-only.
type Analyzer struct {
	catalog  *units.Catalog
	pipeline *postprocess.Pipeline
	opts     Options
	logger   logging.Logger
}

// New creates an analyzer over catalog. A nil catalog selects the built-in one.
func New(catalog *units.Catalog, opts Options) *Analyzer {
	if catalog == nil {
		catalog = units.NewCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Topic == "" {
		opts.Topic = DefaultTopic
	}
	logger := opts.Logger.With(logging.Component("analysis"))
	return &Analyzer{
		catalog:  catalog,
		pipeline: postprocess.NewPipeline(opts.PostProcess, logger),
		opts:     opts,
		logger:   logger,
	}
}

// Topic returns the broker topic reports are published on.
func (a *Analyzer) Topic() string { return a.opts.Topic }

// Analyze scores live. live is only read; all rewriting happens on a clone.
// Cancellation is honored before the run starts, not between passes.
func (a *Analyzer) Analyze(ctx context.Context, live *plotgraph.Graph) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := a.logger.With(logging.RunID(runID), logging.String("plot", live.Name))
	start := time.Now()

	g, err := a.pipeline.Apply(live)
	if err != nil {
		logger.Error("post-processing failed", logging.Error(err))
		if a.opts.Metrics != nil {
			a.opts.Metrics.RecordAnalysisFailure()
		}
		return nil, fmt.Errorf("analysis %s: %w", runID, err)
	}
	postprocessed := time.Since(start)

	t := tellability.Analyze(g, a.catalog, tellability.Options{
		IncludePrimitives: a.opts.IncludePrimitives,
		Logger:            logger,
	})
	score := t.Compute()

	report := &Report{
		RunID:        runID,
		Name:         live.Name,
		Score:        score,
		Tellability:  t,
		Connectivity: t.Connectivity.Stats(),
		Duration:     time.Since(start),
		Graph:        g,
	}

	logger.Info("tellability",
		logging.Float64("score", score),
		logging.Int("functional_units", t.FunctionalUnits),
		logging.Int("polyvalent_vertices", t.PolyvalentVertices),
		logging.Int("productive_conflicts", t.ProductiveConflicts),
		logging.Latency(report.Duration),
	)

	if m := a.opts.Metrics; m != nil {
		m.ObservePhase(metrics.PhasePostProcess, postprocessed)
		m.ObservePhase(metrics.PhaseScore, report.Duration-postprocessed)
		m.RecordAnalysis(metricsResult(report), report.Duration)
	}
	if a.opts.Broker != nil {
		a.opts.Broker.Publish(a.opts.Topic, report)
	}
	return report, nil
}

// AnalyzeRecorder analyzes a snapshot of a recorder that may still be
// receiving events.
func (a *Analyzer) AnalyzeRecorder(ctx context.Context, rec *plotgraph.Recorder) (*Report, error) {
	return a.Analyze(ctx, rec.Snapshot())
}

func metricsResult(r *Report) metrics.AnalysisResult {
	counts := make(map[string]int, len(r.Tellability.UnitCounts))
	for _, c := range r.Tellability.UnitCounts {
		counts[c.Unit] = c.Count
	}
	return metrics.AnalysisResult{
		Score:               r.Score,
		UnitCounts:          counts,
		PolyvalentVertices:  r.Tellability.PolyvalentVertices,
		ProductiveConflicts: r.Tellability.ProductiveConflicts,
		Vertices:            r.Tellability.AllVertices,
	}
}
