package visualization

import (
	"math"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// CircularLayout places every vertex on one circle. Each character gets a
// contiguous arc in spine order, arcs are separated by an empty slot, and
// vertices off every spine close the circle.
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges vertices around the center of the canvas
func (cl *CircularLayout) ComputeLayout(g *plotgraph.Graph) (map[plotgraph.VertexID]Position, error) {
	positions := make(map[plotgraph.VertexID]Position)
	if g.VertexCount() == 0 {
		return positions, nil
	}

	// slots holds vertex ids in circle order; gap marks an empty slot
	const gap = -1
	var slots []int64
	placed := make(map[plotgraph.VertexID]bool)
	for _, root := range g.Roots() {
		if len(slots) > 0 {
			slots = append(slots, gap)
		}
		for _, v := range g.CharSubgraph(root.ID()) {
			slots = append(slots, int64(v.ID()))
			placed[v.ID()] = true
		}
	}
	if stray := strayVertices(g, placed); len(stray) > 0 {
		if len(slots) > 0 {
			slots = append(slots, gap)
		}
		for _, id := range stray {
			slots = append(slots, int64(id))
		}
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding
	angleStep := 2 * math.Pi / float64(len(slots))

	for i, slot := range slots {
		if slot == gap {
			continue
		}
		angle := float64(i) * angleStep
		positions[plotgraph.VertexID(slot)] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
