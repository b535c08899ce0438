package plotgraph

import (
	"slices"
	"strings"

	"github.com/dd0wney/plotgraph/pkg/annotation"
)

// Vertex is one symbolic event of a character's plot. The parsed form of the
// label is cached so that the derived accessors never re-parse inside the
// post-processing loops.
type Vertex struct {
	id         VertexID
	label      string
	term       annotation.Term
	typ        VertexType
	step       int
	emotions   []string
	intention  string // explicit intention supplied by the reporter, if any
	root       VertexID
	polyvalent bool
	units      []string
}

func newVertex(id VertexID, label string, typ VertexType, step int) (*Vertex, error) {
	term, err := annotation.Parse(label)
	if err != nil {
		return nil, err
	}
	return &Vertex{
		id:    id,
		label: label,
		term:  term,
		typ:   typ,
		step:  step,
	}, nil
}

// ID returns the arena handle of the vertex.
func (v *Vertex) ID() VertexID { return v.id }

// Label returns the raw label including annotations.
func (v *Vertex) Label() string { return v.label }

// Type returns the vertex type.
func (v *Vertex) Type() VertexType { return v.typ }

// Step returns the logical step the event was reported at.
func (v *Vertex) Step() int { return v.step }

// Root returns the id of the owning character's root vertex.
func (v *Vertex) Root() VertexID { return v.root }

// Polyvalent reports whether the vertex takes part in two or more unit matches.
func (v *Vertex) Polyvalent() bool { return v.polyvalent }

// Emotions returns the appraisal tags attached to the vertex.
func (v *Vertex) Emotions() []string { return v.emotions }

// Units returns the names of the functional units the vertex was matched in.
func (v *Vertex) Units() []string { return v.units }

// WithoutAnnotation returns the label with its annotation block stripped.
func (v *Vertex) WithoutAnnotation() string { return v.term.Functor }

// Annotations returns the raw annotation block of the label.
func (v *Vertex) Annotations() string { return v.term.Annots }

// Annotation returns the value of the given annotation key, or "".
func (v *Vertex) Annotation(key string) string {
	value, _ := v.term.Get(key)
	return value
}

// Cause returns the "cause" annotation.
func (v *Vertex) Cause() string { return v.Annotation(annotation.KeyCause) }

// Source returns the "source" annotation.
func (v *Vertex) Source() string { return v.Annotation(annotation.KeySource) }

// Functor returns the functor name of the bare label.
func (v *Vertex) Functor() string { return annotation.Name(v.term.Functor) }

// Intention returns the goal this event serves, or "" if none. Intention
// vertices serve the goal named by their own label.
func (v *Vertex) Intention() string {
	if v.intention != "" {
		return v.intention
	}
	if v.typ != Intention || strings.HasPrefix(v.term.Functor, "drop_intention") {
		return ""
	}
	return strings.TrimPrefix(strings.TrimPrefix(v.term.Functor, "+"), "!")
}

// HasEmotion reports whether any emotion, or the named ones, are attached.
func (v *Vertex) HasEmotion(names ...string) bool {
	if len(names) == 0 {
		return len(v.emotions) > 0
	}
	for _, name := range names {
		if slices.Contains(v.emotions, name) {
			return true
		}
	}
	return false
}

// SetLabel replaces the label. Labels that fail to parse are rejected and the
// vertex is left unchanged.
func (v *Vertex) SetLabel(label string) error {
	term, err := annotation.Parse(label)
	if err != nil {
		return labelError("SetLabel", label, err)
	}
	v.label = label
	v.term = term
	return nil
}

// SetType changes the vertex type.
func (v *Vertex) SetType(t VertexType) { v.typ = t }

// SetIntention overrides the derived intention.
func (v *Vertex) SetIntention(intention string) { v.intention = intention }

// AddEmotion attaches an appraisal tag; duplicates are ignored.
func (v *Vertex) AddEmotion(name string) {
	if !slices.Contains(v.emotions, name) {
		v.emotions = append(v.emotions, name)
	}
}

// SetPolyvalent flags the vertex as polyvalent.
func (v *Vertex) SetPolyvalent() { v.polyvalent = true }

func (v *Vertex) markUnit(unit string) {
	if !slices.Contains(v.units, unit) {
		v.units = append(v.units, unit)
	}
}

// String renders the label; polyvalent vertices are marked with an asterisk.
func (v *Vertex) String() string {
	if v.polyvalent {
		return v.label + " *"
	}
	return v.label
}

func (v *Vertex) clone() *Vertex {
	c := *v
	c.emotions = slices.Clone(v.emotions)
	c.units = slices.Clone(v.units)
	c.term.Pairs = slices.Clone(v.term.Pairs)
	return &c
}
