package units

import (
	"github.com/dd0wney/plotgraph/pkg/emotion"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// VertexType is the abstracted vertex alphabet functional units are written in.
type VertexType uint8

const (
	None VertexType = iota
	Intention
	Positive
	Negative
	Wildcard
)

var vertexTypeNames = [...]string{"none", "intention", "positive", "negative", "wildcard"}

func (t VertexType) String() string {
	if int(t) < len(vertexTypeNames) {
		return vertexTypeNames[t]
	}
	return "unknown"
}

// TypeOf abstracts a plot vertex: anything serving an intention is an
// Intention, otherwise the valence of its emotions decides.
func TypeOf(v *plotgraph.Vertex) VertexType {
	if v.Intention() != "" {
		return Intention
	}
	positive, negative := emotion.Classify(v.Emotions())
	switch {
	case positive && negative:
		return Wildcard
	case positive:
		return Positive
	case negative:
		return Negative
	default:
		return None
	}
}

// Accepts reports whether a pattern vertex of type t may map onto a target
// vertex of type target. Wildcards accept any valenced vertex.
func (t VertexType) Accepts(target VertexType) bool {
	if t == Wildcard {
		return target == Positive || target == Negative || target == Wildcard
	}
	return t == target
}
