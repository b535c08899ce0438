// Package tellability scores a post-processed plot graph. The score rewards
// functional polyvalence and suspense, and is zero for plots without a
// productive conflict.
package tellability

import (
	"github.com/dd0wney/plotgraph/pkg/connectivity"
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
	"github.com/dd0wney/plotgraph/pkg/stats"
	"github.com/dd0wney/plotgraph/pkg/units"
)

// Tellability bundles the features of one plot and their scalar score.
type Tellability struct {
	ProductiveConflicts int               `json:"productive_conflicts"`
	UnitCounts          []units.UnitCount `json:"unit_counts"`
	FunctionalUnits     int               `json:"functional_units"`
	PolyvalentVertices  int               `json:"polyvalent_vertices"`
	AllVertices         int               `json:"all_vertices"`
	Symmetry            float64           `json:"symmetry"`
	Suspense            int               `json:"suspense"`
	PlotLength          int               `json:"plot_length"`

	Detection    *units.Detection    `json:"-"`
	Connectivity *connectivity.Graph `json:"-"`
}

// Options controls analysis.
type Options struct {
	// IncludePrimitives feeds the debug units into the connectivity graph.
	IncludePrimitives bool
	Logger            logging.Logger
}

// Analyze detects units in g, counts its statistics and computes symmetry.
// g must be a post-processed clone; its vertices are tagged with the units
// they take part in and flagged polyvalent.
func Analyze(g *plotgraph.Graph, catalog *units.Catalog, opts Options) *Tellability {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	d := units.Detect(g, catalog, units.Options{IncludePrimitives: opts.IncludePrimitives, Logger: logger})
	instances := append(append([]units.Instance(nil), d.Instances...), d.Primitives...)

	t := &Tellability{
		UnitCounts:         d.Counts,
		FunctionalUnits:    d.TotalInstances,
		PolyvalentVertices: len(d.PolyvalentVertices),
		Detection:          d,
		Connectivity:       connectivity.Build(instances),
	}
	t.Symmetry = symmetry(g, logger)

	c := stats.Count(g)
	t.ProductiveConflicts = c.ProductiveConflicts
	t.Suspense = c.Suspense
	t.PlotLength = c.PlotLength
	t.AllVertices = c.VertexCount
	return t
}

// Compute returns the tellability score: the share of polyvalent vertices
// plus suspense relative to plot length. Plots without a productive conflict
// score 0, as do features whose denominator is 0. Symmetry is not weighted in.
func (t *Tellability) Compute() float64 {
	if t.ProductiveConflicts < 1 {
		return 0
	}
	return ratio(t.PolyvalentVertices, t.AllVertices) + ratio(t.Suspense, t.PlotLength)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
