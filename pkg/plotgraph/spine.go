package plotgraph

// SpinePredecessor returns the chronological predecessor of id on its
// character's spine. Roots have none.
func (g *Graph) SpinePredecessor(id VertexID) (VertexID, bool) {
	if g.Vertex(id) == nil {
		return 0, false
	}
	for _, h := range g.in[id] {
		if e := g.edges[h]; e.Type.IsSpine() {
			return e.From, true
		}
	}
	return 0, false
}

// SpineSuccessors returns the chronological successors of id. Spines are
// chains, so this is normally zero or one vertex.
func (g *Graph) SpineSuccessors(id VertexID) []VertexID {
	if g.Vertex(id) == nil {
		return nil
	}
	var succ []VertexID
	for _, h := range g.out[id] {
		if e := g.edges[h]; e.Type.IsSpine() {
			succ = append(succ, e.To)
		}
	}
	return succ
}

// Spine returns the events of a character in chronological order, root excluded.
func (g *Graph) Spine(root VertexID) []*Vertex {
	var spine []*Vertex
	g.walkFrom(root, func(t EdgeType) bool { return t.IsSpine() }, func(v *Vertex) error {
		if v.id != root {
			spine = append(spine, v)
		}
		return nil
	}, make(map[VertexID]bool))
	return spine
}

// CharSubgraph returns the root followed by its spine.
func (g *Graph) CharSubgraph(root VertexID) []*Vertex {
	r := g.Vertex(root)
	if r == nil {
		return nil
	}
	return append([]*Vertex{r}, g.Spine(root)...)
}

// CharacterOf returns the root vertex of the character owning id.
func (g *Graph) CharacterOf(id VertexID) *Vertex {
	v := g.Vertex(id)
	if v == nil {
		return nil
	}
	if r := g.Vertex(v.root); r != nil && r.typ == Root {
		return r
	}
	return nil
}

// RemoveVertexAndPatch deletes a non-root vertex and keeps its character's
// chain unbroken by linking its spine predecessor to each of its spine
// successors. Overlay edges touching the vertex are moved onto the
// predecessor, or onto the first successor when the predecessor is the root;
// edges that would become self-loops, or that have nowhere to go, are dropped.
func (g *Graph) RemoveVertexAndPatch(root, id VertexID) error {
	v := g.Vertex(id)
	if v == nil {
		return NewError("RemoveVertex").Vertex(id).Cause(ErrVertexNotFound).Err()
	}
	if v.typ == Root {
		return NewError("RemoveVertex").Vertex(id).Cause(ErrRootRemoval).Err()
	}
	if v.root != root {
		return NewError("RemoveVertex").Vertex(id).Cause(ErrNotOnSpine).Err()
	}
	pred, ok := g.SpinePredecessor(id)
	if !ok {
		return NewError("RemoveVertex").Vertex(id).Cause(ErrNotOnSpine).Err()
	}

	succs := g.SpineSuccessors(id)
	predVertex := g.vertices[pred]
	for _, s := range succs {
		g.insertEdge(newEdge(spineEdgeType(predVertex), pred, s))
	}

	target, hasTarget := pred, true
	if predVertex.typ == Root {
		if len(succs) > 0 {
			target = succs[0]
		} else {
			hasTarget = false
		}
	}

	handles := append(append([]int(nil), g.out[id]...), g.in[id]...)
	for _, h := range handles {
		e := g.edges[h]
		if e == nil {
			continue
		}
		if e.Type.IsSpine() || !hasTarget {
			g.deleteEdge(h)
			continue
		}
		from, to := e.From, e.To
		if from == id {
			from = target
		}
		if to == id {
			to = target
		}
		g.deleteEdge(h)
		if from != to {
			migrated := *e
			migrated.From, migrated.To = from, to
			g.insertEdge(&migrated)
		}
	}

	g.vertices[id] = nil
	g.out[id] = nil
	g.in[id] = nil
	g.vertexCount--
	return nil
}

// Walk visits every vertex reachable from the roots, root by root and depth
// first, following only edges whose type is accepted by follow. Successors
// are captured before visit runs, so visit may remove the vertex it is given.
// A non-nil error from visit stops the walk.
func (g *Graph) Walk(follow func(EdgeType) bool, visit func(*Vertex) error) error {
	visited := make(map[VertexID]bool, g.vertexCount)
	for _, root := range append([]VertexID(nil), g.roots...) {
		if err := g.walkFrom(root, follow, visit, visited); err != nil {
			return err
		}
	}
	return nil
}

// WalkSpines is Walk restricted to ROOT and TEMPORAL edges.
func (g *Graph) WalkSpines(visit func(*Vertex) error) error {
	return g.Walk(func(t EdgeType) bool { return t.IsSpine() }, visit)
}

func (g *Graph) walkFrom(start VertexID, follow func(EdgeType) bool, visit func(*Vertex) error, visited map[VertexID]bool) error {
	stack := []VertexID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v := g.Vertex(id)
		if v == nil || visited[id] {
			continue
		}
		visited[id] = true

		var next []VertexID
		for _, h := range g.out[id] {
			if e := g.edges[h]; follow(e.Type) {
				next = append(next, e.To)
			}
		}

		if err := visit(v); err != nil {
			return err
		}

		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return nil
}
