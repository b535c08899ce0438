package connectivity

import (
	"testing"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
	"github.com/dd0wney/plotgraph/pkg/units"
)

func instance(unit string, vertices ...plotgraph.VertexID) units.Instance {
	return units.Instance{Unit: unit, Vertices: vertices}
}

func TestBuild_Overlaps(t *testing.T) {
	g := Build([]units.Instance{
		instance(units.SuccessBornOfAdversity, 1, 2, 3),
		instance(units.IntentionalProblemResolution, 1, 2, 3),
		instance(units.FleetingSuccess, 3, 7, 8),
		instance(units.NestedGoal, 10, 11, 12),
	})

	if len(g.Overlaps) != 3 {
		t.Fatalf("Expected 3 overlaps, got %d: %+v", len(g.Overlaps), g.Overlaps)
	}
	first := g.Overlaps[0]
	if first.A != 0 || first.B != 1 || len(first.Shared) != 3 {
		t.Errorf("Unexpected first overlap %+v", first)
	}

	s := g.Stats()
	want := Stats{Instances: 4, Overlaps: 3, Components: 2, LargestComponent: 3}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}

	components := g.Components()
	if len(components[0]) != 3 || components[1][0] != 3 {
		t.Errorf("Unexpected components %v", components)
	}
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil).Stats()
	if s != (Stats{}) {
		t.Errorf("Expected empty stats, got %+v", s)
	}
}
