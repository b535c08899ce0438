package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// target builds free-standing target graphs for matching
type target struct {
	t *testing.T
	g *plotgraph.Graph
}

func newTarget(t *testing.T) *target {
	return &target{t: t, g: plotgraph.New("target")}
}

func (b *target) intention(name string) plotgraph.VertexID {
	v, err := b.g.AddVertex("!"+name, plotgraph.Intention, 0)
	require.NoError(b.t, err)
	return v.ID()
}

func (b *target) event(label string, emotions ...string) plotgraph.VertexID {
	v, err := b.g.AddVertex(label, plotgraph.Percept, 0)
	require.NoError(b.t, err)
	for _, em := range emotions {
		v.AddEmotion(em)
	}
	return v.ID()
}

func (b *target) edge(t plotgraph.EdgeType, from, to plotgraph.VertexID) {
	_, err := b.g.AddEdge(t, from, to)
	require.NoError(b.t, err)
}

func TestTypeOf(t *testing.T) {
	b := newTarget(t)
	tests := []struct {
		id   plotgraph.VertexID
		want VertexType
	}{
		{b.intention("eat"), Intention},
		{b.event("+has(bread)", "joy"), Positive},
		{b.event("-has(bread)", "distress"), Negative},
		{b.event("+has(cake)", "joy", "anger"), Wildcard},
		{b.event("rain"), None},
		{b.event("rain", "unknown_feeling"), None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeOf(b.g.Vertex(tt.id)), b.g.Vertex(tt.id).Label())
	}
}

func TestAccepts(t *testing.T) {
	assert.True(t, Wildcard.Accepts(Positive))
	assert.True(t, Wildcard.Accepts(Negative))
	assert.True(t, Wildcard.Accepts(Wildcard))
	assert.False(t, Wildcard.Accepts(None))
	assert.False(t, Wildcard.Accepts(Intention))
	assert.False(t, Positive.Accepts(Wildcard))
	assert.True(t, Intention.Accepts(Intention))
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()

	require.Len(t, c.Units(), 10)
	require.Len(t, c.Primitives(), 2)
	assert.Equal(t, DeniedRequest, c.Units()[0].Name)
	assert.Equal(t, Sacrifice, c.Units()[9].Name)

	nested := c.Unit(NestedGoal)
	require.NotNil(t, nested)
	assert.Equal(t, 3, nested.Size())
	assert.Equal(t, 2, nested.Pattern().EdgeCount())

	retaliation := c.Unit(Retaliation)
	assert.Equal(t, 8, retaliation.Size())
	assert.Equal(t, 7, retaliation.Pattern().EdgeCount())

	assert.True(t, c.Unit(DebugSpeech).Primitive)
	assert.Nil(t, c.Unit("Happily Ever After"))

	all := c.AllUnitsGraph()
	vertices, edges := 0, 0
	for _, u := range c.Units() {
		vertices += u.Size()
		edges += u.Pattern().EdgeCount()
	}
	assert.Equal(t, vertices, all.VertexCount())
	assert.Equal(t, edges, all.EdgeCount())

	// every copied edge stays inside the unit it came from
	for _, e := range all.Edges() {
		from, to := all.Vertex(e.From), all.Vertex(e.To)
		require.NotNil(t, from)
		require.NotNil(t, to)
		assert.Equal(t, from.Units(), to.Units(), "edge %s crosses units", e.ID)
	}
	assert.NotPanics(t, func() { c.AllUnitsGraph() })
}

// TestSearchOrder checks that every vertex after the first touches an earlier one
func TestSearchOrder(t *testing.T) {
	for _, u := range NewCatalog().Units() {
		seen := map[plotgraph.VertexID]bool{u.order[0]: true}
		for _, p := range u.order[1:] {
			adjacent := false
			for _, e := range u.pattern.InEdges(p) {
				adjacent = adjacent || seen[e.From]
			}
			for _, e := range u.pattern.OutEdges(p) {
				adjacent = adjacent || seen[e.To]
			}
			assert.True(t, adjacent, "%s: vertex %d is not anchored", u.Name, p)
			seen[p] = true
		}
	}
}

// TestFindUnits_NestedGoalRespectsTypes checks that the wildcard never maps onto a
// vertex without valenced emotions
func TestFindUnits_NestedGoalRespectsTypes(t *testing.T) {
	b := newTarget(t)
	outer := b.intention("eat(bread)")
	inner := b.intention("bake(bread)")
	neutral := b.event("bake(bread)")
	happy := b.event("+has(bread)", "joy")
	mixed := b.event("+has(cake)", "joy", "hate")
	b.edge(plotgraph.Motivation, outer, inner)
	b.edge(plotgraph.Actualization, inner, neutral)
	b.edge(plotgraph.Actualization, inner, happy)
	b.edge(plotgraph.Actualization, inner, mixed)

	unit := NewCatalog().Unit(NestedGoal)
	mappings := FindUnits(b.g, unit)
	require.Len(t, mappings, 2)

	wild := unit.order[len(unit.order)-1]
	for _, m := range mappings {
		assert.Equal(t, outer, m[unit.order[0]])
		got := TypeOf(b.g.Vertex(m[wild]))
		assert.NotEqual(t, None, got, "wildcard mapped onto a neutral vertex")
		assert.NotEqual(t, neutral, m[wild])
	}
}

func TestFindUnits_EdgeDirectionAndType(t *testing.T) {
	b := newTarget(t)
	problem := b.event("-has(bread)", "distress")
	goal := b.intention("get(bread)")
	solved := b.event("+has(bread)", "joy")
	b.edge(plotgraph.Motivation, problem, goal)
	b.edge(plotgraph.Actualization, goal, solved)
	// wrong direction for the termination edge
	b.edge(plotgraph.Termination, problem, solved)

	c := NewCatalog()
	assert.Len(t, FindUnits(b.g, c.Unit(SuccessBornOfAdversity)), 1)
	assert.Empty(t, FindUnits(b.g, c.Unit(IntentionalProblemResolution)))

	b.edge(plotgraph.Termination, solved, problem)
	assert.Len(t, FindUnits(b.g, c.Unit(IntentionalProblemResolution)), 1)
	assert.Len(t, FindUnits(b.g, c.Unit(FortuitousProblemResolution)), 1)
}

func TestFindUnits_Injective(t *testing.T) {
	b := newTarget(t)
	goal := b.intention("loop")
	b.edge(plotgraph.Motivation, goal, goal)
	b.edge(plotgraph.Actualization, goal, b.event("+x", "joy"))

	assert.Empty(t, FindUnits(b.g, NewCatalog().Unit(NestedGoal)))
}

func TestFindUnits_ParallelEdgesDoNotDuplicate(t *testing.T) {
	b := newTarget(t)
	outer, inner := b.intention("a"), b.intention("b")
	result := b.event("+x", "joy")
	b.edge(plotgraph.Motivation, outer, inner)
	b.edge(plotgraph.Motivation, outer, inner)
	b.edge(plotgraph.Actualization, inner, result)

	assert.Len(t, FindUnits(b.g, NewCatalog().Unit(NestedGoal)), 1)
}

func TestFindUnits_AllOccurrences(t *testing.T) {
	b := newTarget(t)
	outer := b.intention("a")
	for i := 0; i < 3; i++ {
		inner := b.intention("b")
		b.edge(plotgraph.Motivation, outer, inner)
		b.edge(plotgraph.Actualization, inner, b.event("+x", "joy"))
	}
	assert.Len(t, FindUnits(b.g, NewCatalog().Unit(NestedGoal)), 3)
}

func TestFindUnits_DeniedRequest(t *testing.T) {
	b := newTarget(t)
	ask := b.intention("ask(help)")
	heard := b.intention("help")
	refuse := b.intention("refuse")
	hurt := b.event("-help", "disappointment")
	b.edge(plotgraph.Communication, ask, heard)
	b.edge(plotgraph.Motivation, heard, refuse)
	b.edge(plotgraph.Communication, refuse, hurt)

	mappings := FindUnits(b.g, NewCatalog().Unit(DeniedRequest))
	require.Len(t, mappings, 1)
	assert.ElementsMatch(t, []plotgraph.VertexID{ask, heard, refuse, hurt}, values(mappings[0]))
}

func values(m Mapping) []plotgraph.VertexID {
	ids := make([]plotgraph.VertexID, 0, len(m))
	for _, v := range m {
		ids = append(ids, v)
	}
	return ids
}

// TestDetect_PolyvalenceThreshold checks that one match never flags a vertex
// and two or more always do
func TestDetect_PolyvalenceThreshold(t *testing.T) {
	b := newTarget(t)

	// matched by success born of adversity, intentional and fortuitous problem resolution
	problem := b.event("-has(bread)", "distress")
	goal := b.intention("get(bread)")
	solved := b.event("+has(bread)", "joy")
	b.edge(plotgraph.Motivation, problem, goal)
	b.edge(plotgraph.Actualization, goal, solved)
	b.edge(plotgraph.Termination, solved, problem)

	// matched by fleeting success only
	plan := b.intention("plant(wheat)")
	grown := b.event("+wheat", "pride")
	storm := b.event("-wheat", "distress")
	b.edge(plotgraph.Actualization, plan, grown)
	b.edge(plotgraph.Termination, storm, grown)

	d := Detect(b.g, NewCatalog(), Options{})

	assert.Equal(t, 1, d.Count(SuccessBornOfAdversity))
	assert.Equal(t, 1, d.Count(IntentionalProblemResolution))
	assert.Equal(t, 1, d.Count(FortuitousProblemResolution))
	assert.Equal(t, 1, d.Count(FleetingSuccess))
	assert.Equal(t, 4, d.TotalInstances)
	assert.ElementsMatch(t, []string{
		IntentionalProblemResolution, FortuitousProblemResolution, SuccessBornOfAdversity, FleetingSuccess,
	}, d.Detected())

	assert.ElementsMatch(t, []plotgraph.VertexID{problem, goal, solved}, d.PolyvalentVertices)
	for _, id := range []plotgraph.VertexID{problem, goal, solved} {
		assert.True(t, b.g.Vertex(id).Polyvalent(), "vertex %d should be polyvalent", id)
	}
	for _, id := range []plotgraph.VertexID{plan, grown, storm} {
		v := b.g.Vertex(id)
		assert.False(t, v.Polyvalent(), "vertex %d matched once", id)
		assert.Equal(t, []string{FleetingSuccess}, v.Units())
	}
	assert.Empty(t, d.Primitives)
}

func TestDetect_Primitives(t *testing.T) {
	r := plotgraph.NewRecorder("story")
	r.AddCharacter("hen")
	r.AddCharacter("dog")
	ask, err := r.AddEvent(plotgraph.Report{Character: "hen", Label: "!get(help)", Type: plotgraph.Intention})
	require.NoError(t, err)
	g := r.Snapshot()
	dog := g.RootByName("dog")
	angry, err := g.AppendEvent(dog.ID(), "-help", plotgraph.Percept, 1)
	require.NoError(t, err)
	angry.AddEmotion("anger")
	_, err = g.AddEdge(plotgraph.Communication, ask, angry.ID())
	require.NoError(t, err)

	d := Detect(g, NewCatalog(), Options{IncludePrimitives: true})
	require.Len(t, d.Primitives, 1)
	assert.Equal(t, DebugSpeech, d.Primitives[0].Unit)
	assert.Equal(t, "hen", d.Primitives[0].Subject)
	assert.Zero(t, d.TotalInstances)
	assert.Empty(t, d.PolyvalentVertices)
}
