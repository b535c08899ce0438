// Package plotgraph implements the plot graph: a directed multigraph of
// typed event vertices organized as one chronological spine per character,
// plus overlay edges (motivation, causality, termination, ...) that may cross
// between spines.
//
// Storage is arena-style. Vertices and edges live in slices indexed by stable
// handles, so Clone is a structural copy and removals only rewrite the
// adjacency lists of the vertices involved.
package plotgraph

import (
	"slices"
)

// Graph owns all vertices and edges of a plot.
type Graph struct {
	Name string

	vertices []*Vertex // indexed by VertexID; nil once removed
	edges    []*Edge   // indexed by edge handle; nil once removed
	out      [][]int   // per-vertex outgoing edge handles
	in       [][]int   // per-vertex incoming edge handles
	roots    []VertexID

	vertexCount int
	edgeCount   int
}

// New creates an empty graph.
func New(name string) *Graph {
	return &Graph{Name: name}
}

// AddRoot adds a character root vertex labelled with the character's name.
func (g *Graph) AddRoot(character string) (*Vertex, error) {
	v, err := g.AddVertex(character, Root, 0)
	if err != nil {
		return nil, err
	}
	v.root = v.id
	g.roots = append(g.roots, v.id)
	return v, nil
}

// AddVertex adds an unattached vertex. Callers are expected to link it into a
// spine with AddEdge; AppendEvent does both in one step.
func (g *Graph) AddVertex(label string, t VertexType, step int) (*Vertex, error) {
	id := VertexID(len(g.vertices))
	v, err := newVertex(id, label, t, step)
	if err != nil {
		return nil, labelError("AddVertex", label, err)
	}
	g.vertices = append(g.vertices, v)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.vertexCount++
	return v, nil
}

// AppendEvent adds a vertex after parent on parent's spine. The connecting
// edge is a ROOT edge when parent is a root vertex and TEMPORAL otherwise.
func (g *Graph) AppendEvent(parent VertexID, label string, t VertexType, step int) (*Vertex, error) {
	p := g.Vertex(parent)
	if p == nil {
		return nil, NewError("AppendEvent").Vertex(parent).Cause(ErrVertexNotFound).Err()
	}
	v, err := g.AddVertex(label, t, step)
	if err != nil {
		return nil, err
	}
	v.root = p.root
	if _, err := g.AddEdge(spineEdgeType(p), parent, v.id); err != nil {
		return nil, err
	}
	return v, nil
}

// AddEdge adds a typed edge from -> to. Parallel edges are allowed.
func (g *Graph) AddEdge(t EdgeType, from, to VertexID) (*Edge, error) {
	if g.Vertex(from) == nil {
		return nil, NewError("AddEdge").Vertex(from).Cause(ErrVertexNotFound).Err()
	}
	if g.Vertex(to) == nil {
		return nil, NewError("AddEdge").Vertex(to).Cause(ErrVertexNotFound).Err()
	}
	return g.insertEdge(newEdge(t, from, to)), nil
}

// AddEdgePair adds an edge pair[0] -> pair[1]. Reversing the pair yields the
// opposite direction, which is how symmetric overlays are stored.
func (g *Graph) AddEdgePair(t EdgeType, pair [2]VertexID) (*Edge, error) {
	return g.AddEdge(t, pair[0], pair[1])
}

func (g *Graph) insertEdge(e *Edge) *Edge {
	h := len(g.edges)
	g.edges = append(g.edges, e)
	g.out[e.From] = append(g.out[e.From], h)
	g.in[e.To] = append(g.in[e.To], h)
	g.edgeCount++
	return e
}

func (g *Graph) deleteEdge(h int) {
	e := g.edges[h]
	if e == nil {
		return
	}
	g.out[e.From] = removeHandle(g.out[e.From], h)
	g.in[e.To] = removeHandle(g.in[e.To], h)
	g.edges[h] = nil
	g.edgeCount--
}

func removeHandle(handles []int, h int) []int {
	if i := slices.Index(handles, h); i >= 0 {
		return slices.Delete(handles, i, i+1)
	}
	return handles
}

// Vertex returns the vertex with the given id, or nil if absent or removed.
func (g *Graph) Vertex(id VertexID) *Vertex {
	if id >= VertexID(len(g.vertices)) {
		return nil
	}
	return g.vertices[id]
}

// Vertices returns all live vertices in insertion order.
func (g *Graph) Vertices() []*Vertex {
	vs := make([]*Vertex, 0, g.vertexCount)
	for _, v := range g.vertices {
		if v != nil {
			vs = append(vs, v)
		}
	}
	return vs
}

// Edges returns all live edges in insertion order.
func (g *Graph) Edges() []*Edge {
	es := make([]*Edge, 0, g.edgeCount)
	for _, e := range g.edges {
		if e != nil {
			es = append(es, e)
		}
	}
	return es
}

// Roots returns the character root vertices in the order they were added.
func (g *Graph) Roots() []*Vertex {
	rs := make([]*Vertex, 0, len(g.roots))
	for _, id := range g.roots {
		rs = append(rs, g.vertices[id])
	}
	return rs
}

// RootByName returns the root vertex of the named character.
func (g *Graph) RootByName(character string) *Vertex {
	for _, id := range g.roots {
		if g.vertices[id].label == character {
			return g.vertices[id]
		}
	}
	return nil
}

// OutEdges returns the edges leaving id.
func (g *Graph) OutEdges(id VertexID) []*Edge {
	if g.Vertex(id) == nil {
		return nil
	}
	return g.collect(g.out[id])
}

// InEdges returns the edges entering id.
func (g *Graph) InEdges(id VertexID) []*Edge {
	if g.Vertex(id) == nil {
		return nil
	}
	return g.collect(g.in[id])
}

func (g *Graph) collect(handles []int) []*Edge {
	es := make([]*Edge, 0, len(handles))
	for _, h := range handles {
		es = append(es, g.edges[h])
	}
	return es
}

// HasEdge reports whether an edge of type t runs from -> to.
func (g *Graph) HasEdge(t EdgeType, from, to VertexID) bool {
	if g.Vertex(from) == nil {
		return false
	}
	for _, h := range g.out[from] {
		if e := g.edges[h]; e.To == to && e.Type == t {
			return true
		}
	}
	return false
}

// VertexCount returns the number of live vertices, roots included.
func (g *Graph) VertexCount() int { return g.vertexCount }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// MarkVertexAsUnit records that id was matched as part of the named unit.
func (g *Graph) MarkVertexAsUnit(id VertexID, unit string) {
	if v := g.Vertex(id); v != nil {
		v.markUnit(unit)
	}
}

// Clone returns a deep copy that preserves vertex and edge identities.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Name:        g.Name,
		vertices:    make([]*Vertex, len(g.vertices)),
		edges:       make([]*Edge, len(g.edges)),
		out:         make([][]int, len(g.out)),
		in:          make([][]int, len(g.in)),
		roots:       slices.Clone(g.roots),
		vertexCount: g.vertexCount,
		edgeCount:   g.edgeCount,
	}
	for i, v := range g.vertices {
		if v != nil {
			c.vertices[i] = v.clone()
		}
	}
	for i, e := range g.edges {
		if e != nil {
			ec := *e
			c.edges[i] = &ec
		}
	}
	for i := range g.out {
		c.out[i] = slices.Clone(g.out[i])
		c.in[i] = slices.Clone(g.in[i])
	}
	return c
}

func spineEdgeType(parent *Vertex) EdgeType {
	if parent.typ == Root {
		return RootEdge
	}
	return Temporal
}
