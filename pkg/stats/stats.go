// Package stats computes the single-pass plot statistics the tellability
// score is normalized with.
package stats

import (
	"github.com/dd0wney/plotgraph/pkg/emotion"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Counts holds the counting statistics of a post-processed graph.
type Counts struct {
	// ProductiveConflicts counts intentions that arise from a conflict and
	// are acted upon.
	ProductiveConflicts int
	// Suspense is the longest stretch, in spine positions, between the
	// motivation of an intention and its last resolution.
	Suspense int
	// PlotLength is the number of events on all spines, roots excluded.
	PlotLength int
	// VertexCount is the number of vertices, roots included.
	VertexCount int
}

// Count walks g once and returns its statistics.
//
// An intention is in conflict when it is motivated by a negative or mixed
// event, or when something terminates it. A conflict is productive when the
// intention is actualized or communicated. An intention is resolved by the
// events it actualizes and by the events that terminate it, on its own spine.
func Count(g *plotgraph.Graph) Counts {
	c := Counts{VertexCount: g.VertexCount()}

	position := make(map[plotgraph.VertexID]int, g.VertexCount())
	for _, root := range g.Roots() {
		spine := g.Spine(root.ID())
		for i, v := range spine {
			position[v.ID()] = i + 1
		}
		c.PlotLength += len(spine)
	}

	for _, v := range g.Vertices() {
		if v.Type() != plotgraph.Intention || v.Intention() == "" {
			continue
		}
		if inConflict(g, v) && actedUpon(g, v) {
			c.ProductiveConflicts++
		}
		if s := suspense(g, v, position); s > c.Suspense {
			c.Suspense = s
		}
	}
	return c
}

func inConflict(g *plotgraph.Graph, v *plotgraph.Vertex) bool {
	for _, e := range g.InEdges(v.ID()) {
		switch e.Type {
		case plotgraph.Termination:
			return true
		case plotgraph.Motivation:
			if _, negative := emotion.Classify(g.Vertex(e.From).Emotions()); negative {
				return true
			}
		}
	}
	return false
}

func actedUpon(g *plotgraph.Graph, v *plotgraph.Vertex) bool {
	for _, e := range g.OutEdges(v.ID()) {
		if e.Type == plotgraph.Actualization || e.Type == plotgraph.Communication {
			return true
		}
	}
	return false
}

// suspense measures from the earliest motivator on v's spine, or v itself, to
// the latest resolution on v's spine. Unresolved intentions build no suspense.
func suspense(g *plotgraph.Graph, v *plotgraph.Vertex, position map[plotgraph.VertexID]int) int {
	start, ok := position[v.ID()]
	if !ok {
		return 0
	}
	sameSpine := func(id plotgraph.VertexID) (int, bool) {
		other := g.Vertex(id)
		if other == nil || other.Root() != v.Root() {
			return 0, false
		}
		p, ok := position[id]
		return p, ok
	}

	end := 0
	for _, e := range g.InEdges(v.ID()) {
		switch e.Type {
		case plotgraph.Motivation:
			if p, ok := sameSpine(e.From); ok && p < start {
				start = p
			}
		case plotgraph.Termination:
			if p, ok := sameSpine(e.From); ok && p > end {
				end = p
			}
		}
	}
	for _, e := range g.OutEdges(v.ID()) {
		if e.Type != plotgraph.Actualization {
			continue
		}
		if p, ok := sameSpine(e.To); ok && p > end {
			end = p
		}
	}

	if end <= start {
		return 0
	}
	return end - start
}
