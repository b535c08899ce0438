package visualization

import (
	"math"
	"math/rand"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// ForceDirectedLayout implements force-directed graph layout. Every edge,
// spine or overlay, pulls its endpoints together.
type ForceDirectedLayout struct {
	config *LayoutConfig
	seed   int64
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config, seed: 1}
}

// ComputeLayout computes positions using force-directed algorithm. The
// starting positions come from a fixed seed, so a graph always lays out the
// same way.
func (fdl *ForceDirectedLayout) ComputeLayout(g *plotgraph.Graph) (map[plotgraph.VertexID]Position, error) {
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return make(map[plotgraph.VertexID]Position), nil
	}

	// Single vertex - center it
	if len(vertices) == 1 {
		return map[plotgraph.VertexID]Position{
			vertices[0].ID(): {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	rng := rand.New(rand.NewSource(fdl.seed))
	ids := make([]plotgraph.VertexID, len(vertices))
	positions := make(map[plotgraph.VertexID]Position, len(vertices))
	for i, v := range vertices {
		ids[i] = v.ID()
		positions[v.ID()] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	// Undirected adjacency in edge order
	adjacent := make(map[plotgraph.VertexID][]plotgraph.VertexID, len(ids))
	linked := make(map[[2]plotgraph.VertexID]bool)
	link := func(a, b plotgraph.VertexID) {
		if !linked[[2]plotgraph.VertexID{a, b}] {
			linked[[2]plotgraph.VertexID{a, b}] = true
			adjacent[a] = append(adjacent[a], b)
		}
	}
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		link(e.From, e.To)
		link(e.To, e.From)
	}

	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(ids))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[plotgraph.VertexID]Position, len(ids))

		// Repulsion between all pairs
		for i, id1 := range ids {
			for _, id2 := range ids[i+1:] {
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Max(math.Sqrt(dx*dx+dy*dy), 0.01)

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X + fx, Y: forces[id1].Y + fy}
				forces[id2] = Position{X: forces[id2].X - fx, Y: forces[id2].Y - fy}
			}
		}

		// Attraction along edges
		for _, id1 := range ids {
			for _, id2 := range adjacent[id1] {
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X - fx, Y: forces[id1].Y - fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, id := range ids {
			fx, fy := forces[id].X, forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force > 0 {
				step := math.Min(force, temperature) * cool
				positions[id] = Position{
					X: positions[id].X + (fx/force)*step,
					Y: positions[id].Y + (fy/force)*step,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}
