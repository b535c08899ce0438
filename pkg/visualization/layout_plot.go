package visualization

import (
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// PlotLayout gives every character its own column, root on top and events
// below it in spine order. Rows are shared across columns so that events at
// the same spine depth line up.
type PlotLayout struct {
	config *LayoutConfig
}

// NewPlotLayout creates a new plot layout
func NewPlotLayout(config *LayoutConfig) *PlotLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &PlotLayout{config: config}
}

// ComputeLayout arranges each character's spine as a column
func (pl *PlotLayout) ComputeLayout(g *plotgraph.Graph) (map[plotgraph.VertexID]Position, error) {
	positions := make(map[plotgraph.VertexID]Position)

	roots := g.Roots()
	if len(roots) == 0 {
		return positions, nil
	}

	columns := make([][]*plotgraph.Vertex, len(roots))
	rows := 0
	for i, root := range roots {
		columns[i] = g.CharSubgraph(root.ID())
		rows = max(rows, len(columns[i]))
	}

	colWidth := (pl.config.Width - 2*pl.config.Padding) / float64(len(columns))
	rowHeight := (pl.config.Height - 2*pl.config.Padding) / float64(rows)

	for col, column := range columns {
		x := pl.config.Padding + float64(col)*colWidth + colWidth/2
		for row, v := range column {
			y := pl.config.Padding + float64(row)*rowHeight + rowHeight/2
			positions[v.ID()] = Position{X: x, Y: y}
		}
	}

	// Vertices cut off from every spine go to the bottom row, spread evenly
	placed := make(map[plotgraph.VertexID]bool, len(positions))
	for id := range positions {
		placed[id] = true
	}
	if stray := strayVertices(g, placed); len(stray) > 0 {
		spacing := (pl.config.Width - 2*pl.config.Padding) / float64(len(stray)+1)
		for i, id := range stray {
			positions[id] = Position{
				X: pl.config.Padding + spacing*float64(i+1),
				Y: pl.config.Height - pl.config.Padding,
			}
		}
	}

	return positions, nil
}
