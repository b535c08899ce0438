package visualization

import (
	"math"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// bounds is the bounding box of a set of positions
type bounds struct {
	minX, minY, maxX, maxY float64
}

func boundsOf(positions map[plotgraph.VertexID]Position) bounds {
	b := bounds{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	for _, pos := range positions {
		b.minX = math.Min(b.minX, pos.X)
		b.maxX = math.Max(b.maxX, pos.X)
		b.minY = math.Min(b.minY, pos.Y)
		b.maxY = math.Max(b.maxY, pos.Y)
	}
	return b
}

// span returns the extent along one axis, treating a degenerate axis as 1
func span(lo, hi float64) float64 {
	if hi-lo < 0.01 {
		return 1
	}
	return hi - lo
}

// normalizePositions stretches positions so their bounding box fills the
// canvas inside the padding
func normalizePositions(positions map[plotgraph.VertexID]Position, width, height, padding float64) map[plotgraph.VertexID]Position {
	if len(positions) == 0 {
		return positions
	}

	b := boundsOf(positions)
	scaleX := (width - 2*padding) / span(b.minX, b.maxX)
	scaleY := (height - 2*padding) / span(b.minY, b.maxY)

	normalized := make(map[plotgraph.VertexID]Position, len(positions))
	for id, pos := range positions {
		normalized[id] = Position{
			X: padding + (pos.X-b.minX)*scaleX,
			Y: padding + (pos.Y-b.minY)*scaleY,
		}
	}
	return normalized
}

// strayVertices lists, in insertion order, the vertices not yet placed.
// These are vertices the post-processor cut off from every spine.
func strayVertices(g *plotgraph.Graph, placed map[plotgraph.VertexID]bool) []plotgraph.VertexID {
	var stray []plotgraph.VertexID
	for _, v := range g.Vertices() {
		if !placed[v.ID()] {
			stray = append(stray, v.ID())
		}
	}
	return stray
}
