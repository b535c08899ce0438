package visualization

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

var shapes = map[plotgraph.VertexType]string{
	plotgraph.Root:      "box",
	plotgraph.Action:    "ellipse",
	plotgraph.Percept:   "diamond",
	plotgraph.Intention: "hexagon",
	plotgraph.Speech:    "parallelogram",
	plotgraph.Listen:    "parallelogram",
	plotgraph.Emotion:   "octagon",
	plotgraph.Event:     "ellipse",
}

// DOT writes g in Graphviz format. Each character's subgraph becomes a
// cluster; overlay edges are dashed and labelled with their type.
func DOT(w io.Writer, g *plotgraph.Graph) error {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", strconv.Quote(g.Name))
	b.WriteString("  rankdir=TB;\n  node [fontname=\"Helvetica\"];\n")

	seen := make(map[plotgraph.VertexID]bool)
	for i, root := range g.Roots() {
		fmt.Fprintf(&b, "  subgraph cluster_%d {\n    label=%s;\n", i, strconv.Quote(root.Label()))
		for _, v := range g.CharSubgraph(root.ID()) {
			seen[v.ID()] = true
			b.WriteString("    ")
			writeNode(&b, v)
		}
		b.WriteString("  }\n")
	}
	for _, v := range g.Vertices() {
		if !seen[v.ID()] {
			b.WriteString("  ")
			writeNode(&b, v)
		}
	}

	for _, e := range g.Edges() {
		if e.Type.IsSpine() {
			fmt.Fprintf(&b, "  v%d -> v%d;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&b, "  v%d -> v%d [style=dashed, label=%s];\n", e.From, e.To, strconv.Quote(e.Type.String()))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, v *plotgraph.Vertex) {
	label := v.String()
	if emotions := v.Emotions(); len(emotions) > 0 {
		label += "\n" + strings.Join(emotions, ", ")
	}
	fmt.Fprintf(b, "v%d [label=%s, shape=%s", v.ID(), strconv.Quote(label), shapes[v.Type()])
	if v.Polyvalent() {
		b.WriteString(", peripheries=2")
	}
	b.WriteString("];\n")
}
