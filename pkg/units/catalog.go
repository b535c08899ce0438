// Package units holds the functional unit catalog and finds unit occurrences
// in post-processed plot graphs.
//
// A functional unit is a tiny pattern graph over the abstracted vertex types
// of VertexType. The catalog is built once with NewCatalog and is read-only
// afterwards, so one catalog can serve any number of concurrent analyses.
package units

import (
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Unit names
const (
	DeniedRequest                = "Denied Request"
	NestedGoal                   = "Nested Goal"
	Retaliation                  = "Retaliation"
	IntentionalProblemResolution = "Intentional Problem Resolution"
	FortuitousProblemResolution  = "Fortuitous Problem Resolution"
	SuccessBornOfAdversity       = "Success born of Adversity"
	FleetingSuccess              = "Fleeting Success"
	StartingOver                 = "Starting Over"
	GivingUp                     = "Giving Up"
	Sacrifice                    = "Sacrifice"

	DebugSpeech      = "Debug Speech"
	DebugTermination = "Debug Termination"
)

// Unit is a named pattern graph. Patterns must not be modified.
type Unit struct {
	Name      string
	Primitive bool
	pattern   *plotgraph.Graph
	order     []plotgraph.VertexID // search order, each vertex adjacent to an earlier one
	types     map[plotgraph.VertexID]VertexType
}

// Pattern returns the unit's pattern graph.
func (u *Unit) Pattern() *plotgraph.Graph { return u.pattern }

// Size returns the number of pattern vertices.
func (u *Unit) Size() int { return len(u.order) }

// Catalog is the fixed library of functional units.
type Catalog struct {
	units      []*Unit
	primitives []*Unit
	byName     map[string]*Unit
}

// NewCatalog builds the unit library.
func NewCatalog() *Catalog {
	c := &Catalog{byName: make(map[string]*Unit)}

	c.add(DeniedRequest, false, func(p *pattern) {
		v1, v2 := p.intention(1), p.intention(1)
		p.edge(plotgraph.Communication, v1, v2)
		v3 := p.intention(2)
		p.edge(plotgraph.Motivation, v2, v3)
		v4 := p.negative(3)
		p.edge(plotgraph.Communication, v3, v4)
	})

	c.add(NestedGoal, false, func(p *pattern) {
		v1, v2, v3 := p.intention(1), p.intention(2), p.wild(3)
		p.edge(plotgraph.Motivation, v1, v2)
		p.edge(plotgraph.Actualization, v2, v3)
	})

	c.add(Retaliation, false, func(p *pattern) {
		request, refusal := p.intention(1), p.negative(1)
		p.edge(plotgraph.Communication, request, refusal)
		revenge := p.intention(2)
		p.edge(plotgraph.Motivation, refusal, revenge)
		plan, ask := p.intention(3), p.intention(5)
		p.edge(plotgraph.Motivation, revenge, plan)
		p.edge(plotgraph.Actualization, plan, p.positive(4))
		p.edge(plotgraph.Motivation, revenge, ask)
		asked := p.intention(5)
		p.edge(plotgraph.Communication, ask, asked)
		p.edge(plotgraph.Actualization, asked, p.negative(6))
	})

	c.add(IntentionalProblemResolution, false, func(p *pattern) {
		v1, v2, v3 := p.negative(1), p.intention(2), p.positive(3)
		p.edge(plotgraph.Motivation, v1, v2)
		p.edge(plotgraph.Actualization, v2, v3)
		p.edge(plotgraph.Termination, v3, v1)
	})

	c.add(FortuitousProblemResolution, false, func(p *pattern) {
		v1, v2, v3 := p.negative(1), p.intention(2), p.positive(3)
		p.edge(plotgraph.Motivation, v1, v2)
		p.edge(plotgraph.Termination, v3, v1)
	})

	c.add(SuccessBornOfAdversity, false, func(p *pattern) {
		v1, v2, v3 := p.negative(1), p.intention(2), p.positive(3)
		p.edge(plotgraph.Motivation, v1, v2)
		p.edge(plotgraph.Actualization, v2, v3)
	})

	c.add(FleetingSuccess, false, func(p *pattern) {
		v1, v2, v3 := p.intention(1), p.positive(2), p.negative(3)
		p.edge(plotgraph.Actualization, v1, v2)
		p.edge(plotgraph.Termination, v3, v2)
	})

	c.add(StartingOver, false, func(p *pattern) {
		v1, v2, v3 := p.intention(1), p.positive(2), p.negative(3)
		p.edge(plotgraph.Actualization, v1, v2)
		p.edge(plotgraph.Termination, v3, v2)
		v4 := p.intention(4)
		p.edge(plotgraph.Motivation, v3, v4)
		p.edge(plotgraph.Equivalence, v4, v1)
	})

	c.add(GivingUp, false, func(p *pattern) {
		v1, v2, v3 := p.intention(1), p.negative(2), p.intention(3)
		p.edge(plotgraph.Actualization, v1, v2)
		p.edge(plotgraph.Motivation, v2, v3)
		p.edge(plotgraph.Termination, v3, v1)
	})

	c.add(Sacrifice, false, func(p *pattern) {
		v1, v2, v3 := p.positive(1), p.intention(2), p.positive(3)
		p.edge(plotgraph.Actualization, v2, v3)
		p.edge(plotgraph.Termination, v3, v1)
	})

	c.add(DebugSpeech, true, func(p *pattern) {
		p.edge(plotgraph.Communication, p.intention(1), p.wild(2))
	})

	c.add(DebugTermination, true, func(p *pattern) {
		v1, v2 := p.intention(1), p.wild(2)
		p.edge(plotgraph.Termination, v2, v1)
	})

	return c
}

func (c *Catalog) add(name string, primitive bool, build func(p *pattern)) {
	p := &pattern{g: plotgraph.New(name)}
	build(p)
	u := newUnit(name, primitive, p.g)
	if primitive {
		c.primitives = append(c.primitives, u)
	} else {
		c.units = append(c.units, u)
	}
	c.byName[name] = u
}

// Units returns the units that count toward tellability, in catalog order.
func (c *Catalog) Units() []*Unit { return c.units }

// Primitives returns the debug units used only for connectivity bookkeeping.
func (c *Catalog) Primitives() []*Unit { return c.primitives }

// Unit returns the named unit or nil.
func (c *Catalog) Unit(name string) *Unit { return c.byName[name] }

// AllUnitsGraph merges the patterns of every non-primitive unit into a single
// graph for display.
func (c *Catalog) AllUnitsGraph() *plotgraph.Graph {
	all := plotgraph.New("Functional Units")
	for _, u := range c.units {
		ids := make(map[plotgraph.VertexID]plotgraph.VertexID, u.Size())
		for _, v := range u.pattern.Vertices() {
			copied := mustVertex(all.AddVertex(v.Label(), v.Type(), v.Step()))
			for _, em := range v.Emotions() {
				copied.AddEmotion(em)
			}
			all.MarkVertexAsUnit(copied.ID(), u.Name)
			ids[v.ID()] = copied.ID()
		}
		for _, e := range u.pattern.Edges() {
			if _, err := all.AddEdge(e.Type, ids[e.From], ids[e.To]); err != nil {
				panic(err)
			}
		}
	}
	return all
}

func newUnit(name string, primitive bool, g *plotgraph.Graph) *Unit {
	u := &Unit{
		Name:      name,
		Primitive: primitive,
		pattern:   g,
		types:     make(map[plotgraph.VertexID]VertexType, g.VertexCount()),
	}
	for _, v := range g.Vertices() {
		u.types[v.ID()] = TypeOf(v)
	}
	u.order = searchOrder(g)
	return u
}

// searchOrder lists pattern vertices breadth first over edges in either
// direction, so every vertex after the first touches an earlier one.
func searchOrder(g *plotgraph.Graph) []plotgraph.VertexID {
	seen := make(map[plotgraph.VertexID]bool, g.VertexCount())
	order := make([]plotgraph.VertexID, 0, g.VertexCount())
	for _, start := range g.Vertices() {
		if seen[start.ID()] {
			continue
		}
		seen[start.ID()] = true
		queue := []plotgraph.VertexID{start.ID()}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			order = append(order, id)
			for _, e := range g.OutEdges(id) {
				if !seen[e.To] {
					seen[e.To] = true
					queue = append(queue, e.To)
				}
			}
			for _, e := range g.InEdges(id) {
				if !seen[e.From] {
					seen[e.From] = true
					queue = append(queue, e.From)
				}
			}
		}
	}
	return order
}

// pattern builds unit graphs from abstract vertices. Labels carry no meaning
// for matching; the intention and emotions decide the VertexType.
type pattern struct {
	g *plotgraph.Graph
}

func (p *pattern) intention(step int) plotgraph.VertexID {
	return mustVertex(p.g.AddVertex("!intention", plotgraph.Intention, step)).ID()
}

func (p *pattern) positive(step int) plotgraph.VertexID {
	return p.valenced("+", step, "love")
}

func (p *pattern) negative(step int) plotgraph.VertexID {
	return p.valenced("-", step, "hate")
}

func (p *pattern) wild(step int) plotgraph.VertexID {
	return p.valenced("*", step, "love", "hate")
}

func (p *pattern) valenced(label string, step int, emotions ...string) plotgraph.VertexID {
	v := mustVertex(p.g.AddVertex(label, plotgraph.Percept, step))
	for _, em := range emotions {
		v.AddEmotion(em)
	}
	return v.ID()
}

func (p *pattern) edge(t plotgraph.EdgeType, from, to plotgraph.VertexID) {
	if _, err := p.g.AddEdge(t, from, to); err != nil {
		panic(err)
	}
}

func mustVertex(v *plotgraph.Vertex, err error) *plotgraph.Vertex {
	if err != nil {
		panic(err)
	}
	return v
}
