package plotgraph

import (
	"fmt"

	"github.com/google/uuid"
)

// Edge is a typed, directed relation between two vertices. The graph is a
// multigraph: parallel edges are told apart by ID, not by type.
type Edge struct {
	ID   string
	Type EdgeType
	From VertexID
	To   VertexID
}

func newEdge(t EdgeType, from, to VertexID) *Edge {
	return &Edge{
		ID:   uuid.NewString(),
		Type: t,
		From: from,
		To:   to,
	}
}

// String returns a compact description such as "3 -motivation-> 7".
func (e *Edge) String() string {
	return fmt.Sprintf("%d -%s-> %d", e.From, e.Type, e.To)
}
