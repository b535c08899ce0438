package units

import (
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Mapping maps pattern vertices onto target vertices for one occurrence.
type Mapping map[plotgraph.VertexID]plotgraph.VertexID

// targets returns the target vertices of the mapping in pattern order.
func (m Mapping) targets(order []plotgraph.VertexID) []plotgraph.VertexID {
	ids := make([]plotgraph.VertexID, 0, len(order))
	for _, p := range order {
		ids = append(ids, m[p])
	}
	return ids
}

// FindUnits returns every occurrence of the unit in target. A mapping is
// injective, respects VertexType compatibility, and has a target edge of the
// same type and direction for every pattern edge. The target may carry extra
// edges between mapped vertices.
func FindUnits(target *plotgraph.Graph, unit *Unit) []Mapping {
	s := &search{
		target:  target,
		unit:    unit,
		mapping: make(Mapping, unit.Size()),
		used:    make(map[plotgraph.VertexID]bool, unit.Size()),
		types:   make(map[plotgraph.VertexID]VertexType),
	}
	s.extend(0)
	return s.found
}

type search struct {
	target  *plotgraph.Graph
	unit    *Unit
	mapping Mapping
	used    map[plotgraph.VertexID]bool
	types   map[plotgraph.VertexID]VertexType // memoized TypeOf for target vertices
	found   []Mapping
}

func (s *search) extend(depth int) {
	if depth == len(s.unit.order) {
		m := make(Mapping, len(s.mapping))
		for k, v := range s.mapping {
			m[k] = v
		}
		s.found = append(s.found, m)
		return
	}

	p := s.unit.order[depth]
	for _, c := range s.candidates(p) {
		if s.used[c] || !s.unit.types[p].Accepts(s.typeOf(c)) || !s.edgesMatch(p, c) {
			continue
		}
		s.mapping[p] = c
		s.used[c] = true
		s.extend(depth + 1)
		delete(s.mapping, p)
		delete(s.used, c)
	}
}

// candidates proposes target vertices for pattern vertex p. When p is adjacent
// to an already mapped pattern vertex, only the matching neighbours of its
// image qualify; otherwise every target vertex does.
func (s *search) candidates(p plotgraph.VertexID) []plotgraph.VertexID {
	pattern := s.unit.pattern

	for _, e := range pattern.InEdges(p) {
		if from, ok := s.mapping[e.From]; ok {
			return s.neighbours(s.target.OutEdges(from), e.Type, func(te *plotgraph.Edge) plotgraph.VertexID { return te.To })
		}
	}
	for _, e := range pattern.OutEdges(p) {
		if to, ok := s.mapping[e.To]; ok {
			return s.neighbours(s.target.InEdges(to), e.Type, func(te *plotgraph.Edge) plotgraph.VertexID { return te.From })
		}
	}

	all := s.target.Vertices()
	ids := make([]plotgraph.VertexID, len(all))
	for i, v := range all {
		ids[i] = v.ID()
	}
	return ids
}

func (s *search) neighbours(edges []*plotgraph.Edge, t plotgraph.EdgeType, end func(*plotgraph.Edge) plotgraph.VertexID) []plotgraph.VertexID {
	var ids []plotgraph.VertexID
	seen := make(map[plotgraph.VertexID]bool, len(edges))
	for _, e := range edges {
		if e.Type != t {
			continue
		}
		if id := end(e); !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// edgesMatch checks every pattern edge between p and the mapped vertices.
func (s *search) edgesMatch(p, c plotgraph.VertexID) bool {
	pattern := s.unit.pattern
	for _, e := range pattern.OutEdges(p) {
		if e.To == p {
			if !s.target.HasEdge(e.Type, c, c) {
				return false
			}
			continue
		}
		if to, ok := s.mapping[e.To]; ok && !s.target.HasEdge(e.Type, c, to) {
			return false
		}
	}
	for _, e := range pattern.InEdges(p) {
		if from, ok := s.mapping[e.From]; ok && !s.target.HasEdge(e.Type, from, c) {
			return false
		}
	}
	return true
}

func (s *search) typeOf(id plotgraph.VertexID) VertexType {
	if t, ok := s.types[id]; ok {
		return t
	}
	t := TypeOf(s.target.Vertex(id))
	s.types[id] = t
	return t
}
