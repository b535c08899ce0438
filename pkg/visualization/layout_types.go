package visualization

import (
	"fmt"
	"strings"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *plotgraph.Graph) (map[plotgraph.VertexID]Position, error)
}

// Layout names accepted by NewLayout.
const (
	LayoutPlot     = "plot"
	LayoutCircular = "circular"
	LayoutForce    = "force"
)

// NewLayout returns the named layout.
func NewLayout(name string, config *LayoutConfig) (Layout, error) {
	switch strings.ToLower(name) {
	case "", LayoutPlot:
		return NewPlotLayout(config), nil
	case LayoutCircular:
		return NewCircularLayout(config), nil
	case LayoutForce:
		return NewForceDirectedLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}

// Node is a positioned vertex.
type Node struct {
	ID         plotgraph.VertexID `json:"id"`
	Label      string             `json:"label"`
	Type       string             `json:"type"`
	Character  string             `json:"character,omitempty"`
	Polyvalent bool               `json:"polyvalent,omitempty"`
	Units      []string           `json:"units,omitempty"`
	Position   Position           `json:"position"`
}

// Link is an edge between two positioned vertices.
type Link struct {
	Type string             `json:"type"`
	From plotgraph.VertexID `json:"from"`
	To   plotgraph.VertexID `json:"to"`
}

// Visualization represents a graph visualization with layout
type Visualization struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Visualize lays out g and returns the positioned nodes and links.
func Visualize(g *plotgraph.Graph, layout Layout) (*Visualization, error) {
	positions, err := layout.ComputeLayout(g)
	if err != nil {
		return nil, err
	}

	vis := &Visualization{Name: g.Name}
	for _, v := range g.Vertices() {
		n := Node{
			ID:         v.ID(),
			Label:      v.Label(),
			Type:       v.Type().String(),
			Polyvalent: v.Polyvalent(),
			Units:      v.Units(),
			Position:   positions[v.ID()],
		}
		if root := g.CharacterOf(v.ID()); root != nil {
			n.Character = root.Label()
		}
		vis.Nodes = append(vis.Nodes, n)
	}
	for _, e := range g.Edges() {
		vis.Links = append(vis.Links, Link{Type: e.Type.String(), From: e.From, To: e.To})
	}
	return vis, nil
}
