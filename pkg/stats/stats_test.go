package stats

import (
	"testing"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// chain appends labelled events to a character and returns their ids
func chain(t *testing.T, g *plotgraph.Graph, character string, events ...ev) []plotgraph.VertexID {
	t.Helper()
	root, err := g.AddRoot(character)
	if err != nil {
		t.Fatalf("AddRoot failed: %v", err)
	}
	tail := root.ID()
	ids := make([]plotgraph.VertexID, 0, len(events))
	for i, e := range events {
		v, err := g.AppendEvent(tail, e.label, e.typ, i+1)
		if err != nil {
			t.Fatalf("AppendEvent(%q) failed: %v", e.label, err)
		}
		ids = append(ids, v.ID())
		tail = v.ID()
	}
	return ids
}

type ev struct {
	label string
	typ   plotgraph.VertexType
}

func TestCount_Empty(t *testing.T) {
	c := Count(plotgraph.New("empty"))
	if c != (Counts{}) {
		t.Errorf("Expected zero counts, got %+v", c)
	}
}

func TestCount_ProductiveConflict(t *testing.T) {
	g := plotgraph.New("story")
	ids := chain(t, g, "hen",
		ev{"-has(bread)", plotgraph.Percept},
		ev{"!get(bread)", plotgraph.Intention},
		ev{"walk", plotgraph.Action},
		ev{"bake(bread)", plotgraph.Action},
		ev{"+has(bread)", plotgraph.Percept},
	)
	g.Vertex(ids[0]).AddEmotion("distress")
	g.AddEdge(plotgraph.Motivation, ids[0], ids[1])
	g.AddEdge(plotgraph.Actualization, ids[1], ids[3])

	c := Count(g)
	if c.ProductiveConflicts != 1 {
		t.Errorf("Expected 1 productive conflict, got %d", c.ProductiveConflicts)
	}
	// motivated at position 1, actualized at position 4
	if c.Suspense != 3 {
		t.Errorf("Expected suspense 3, got %d", c.Suspense)
	}
	if c.PlotLength != 5 {
		t.Errorf("Expected plot length 5, got %d", c.PlotLength)
	}
	if c.VertexCount != 6 {
		t.Errorf("Expected 6 vertices, got %d", c.VertexCount)
	}
}

func TestCount_ConflictNeedsAction(t *testing.T) {
	g := plotgraph.New("story")
	ids := chain(t, g, "hen",
		ev{"-has(bread)", plotgraph.Percept},
		ev{"!get(bread)", plotgraph.Intention},
	)
	g.Vertex(ids[0]).AddEmotion("distress")
	g.AddEdge(plotgraph.Motivation, ids[0], ids[1])

	if c := Count(g); c.ProductiveConflicts != 0 {
		t.Errorf("Unacted conflict should not count, got %d", c.ProductiveConflicts)
	}
}

func TestCount_TerminationIsConflict(t *testing.T) {
	g := plotgraph.New("story")
	hen := chain(t, g, "hen",
		ev{"!ask(help)", plotgraph.Intention},
	)
	dog := chain(t, g, "dog",
		ev{"+hears(help)", plotgraph.Percept},
		ev{"refuse", plotgraph.Action},
	)
	g.AddEdge(plotgraph.Communication, hen[0], dog[0])
	g.AddEdge(plotgraph.Termination, dog[1], hen[0])

	c := Count(g)
	if c.ProductiveConflicts != 1 {
		t.Errorf("Expected terminated, communicated intention to count, got %d", c.ProductiveConflicts)
	}
	if c.Suspense != 0 {
		t.Errorf("Resolutions on other spines build no suspense, got %d", c.Suspense)
	}
	if c.PlotLength != 3 {
		t.Errorf("Expected plot length 3, got %d", c.PlotLength)
	}
}

func TestCount_PositiveMotivationIsNoConflict(t *testing.T) {
	g := plotgraph.New("story")
	ids := chain(t, g, "hen",
		ev{"+sun", plotgraph.Percept},
		ev{"!walk", plotgraph.Intention},
		ev{"walk", plotgraph.Action},
	)
	g.Vertex(ids[0]).AddEmotion("joy")
	g.AddEdge(plotgraph.Motivation, ids[0], ids[1])
	g.AddEdge(plotgraph.Actualization, ids[1], ids[2])

	c := Count(g)
	if c.ProductiveConflicts != 0 {
		t.Errorf("Expected no conflict, got %d", c.ProductiveConflicts)
	}
	if c.Suspense != 2 {
		t.Errorf("Expected suspense 2, got %d", c.Suspense)
	}
}
