package plotgraph

import (
	"fmt"
	"strings"
)

// VertexID is a stable arena handle. Clones keep the same ids.
type VertexID uint64

// VertexType classifies the symbolic event a vertex stands for.
type VertexType uint8

const (
	Root VertexType = iota
	Action
	Percept
	Intention
	Speech
	Emotion
	Event
	Listen
)

var vertexTypeNames = [...]string{"root", "action", "percept", "intention", "speech", "emotion", "event", "listen"}

// String returns the lower-case name of the vertex type.
func (t VertexType) String() string {
	if int(t) < len(vertexTypeNames) {
		return vertexTypeNames[t]
	}
	return fmt.Sprintf("VertexType(%d)", t)
}

// ParseVertexType converts a name such as "percept" into a VertexType.
func ParseVertexType(s string) (VertexType, error) {
	for i, name := range vertexTypeNames {
		if strings.EqualFold(s, name) {
			return VertexType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown vertex type %q", s)
}

// EdgeType classifies a relation between two events.
type EdgeType uint8

const (
	RootEdge EdgeType = iota
	Temporal
	Motivation
	Communication
	Actualization
	Termination
	Equivalence
	Causality
	CrossCharacter
)

var edgeTypeNames = [...]string{
	"root", "temporal", "motivation", "communication", "actualization",
	"termination", "equivalence", "causality", "crossCharacter",
}

// String returns the name of the edge type. For annotation-driven edge types
// this is also the annotation key, e.g. "motivation".
func (t EdgeType) String() string {
	if int(t) < len(edgeTypeNames) {
		return edgeTypeNames[t]
	}
	return fmt.Sprintf("EdgeType(%d)", t)
}

// ParseEdgeType converts a name into an EdgeType.
func ParseEdgeType(s string) (EdgeType, error) {
	for i, name := range edgeTypeNames {
		if strings.EqualFold(s, name) {
			return EdgeType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown edge type %q", s)
}

// IsSpine reports whether edges of this type form a character's chronological chain.
func (t EdgeType) IsSpine() bool {
	return t == RootEdge || t == Temporal
}

// EdgeTypes lists every edge type in declaration order.
func EdgeTypes() []EdgeType {
	types := make([]EdgeType, len(edgeTypeNames))
	for i := range edgeTypeNames {
		types[i] = EdgeType(i)
	}
	return types
}
