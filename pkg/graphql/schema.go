package graphql

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/plotgraph/pkg/analysis"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
	"github.com/dd0wney/plotgraph/pkg/units"
)

// NewSchema builds a read-only schema over one analysis report, with the
// default result limits. A nil report yields a schema whose fields resolve
// to null or empty lists.
func NewSchema(report *analysis.Report) (graphql.Schema, error) {
	return NewSchemaWithLimits(report, DefaultLimitConfig())
}

// NewSchemaWithLimits builds the report schema and caps list results
// according to config.
func NewSchemaWithLimits(report *analysis.Report, config *LimitConfig) (graphql.Schema, error) {
	if err := config.Validate(); err != nil {
		return graphql.Schema{}, err
	}

	r := &resolver{report: report, limits: config}
	if report != nil {
		r.graph = report.Graph
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: r.queryType(),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

type resolver struct {
	report *analysis.Report
	graph  *plotgraph.Graph
	limits *LimitConfig
}

func (r *resolver) queryType() *graphql.Object {
	vertexType := r.createVertexType()

	tellabilityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tellability",
		Fields: graphql.Fields{
			"productiveConflicts": &graphql.Field{Type: graphql.Int},
			"functionalUnits":     &graphql.Field{Type: graphql.Int},
			"polyvalentVertices":  &graphql.Field{Type: graphql.Int},
			"allVertices":         &graphql.Field{Type: graphql.Int},
			"symmetry":            &graphql.Field{Type: graphql.Float},
			"suspense":            &graphql.Field{Type: graphql.Int},
			"plotLength":          &graphql.Field{Type: graphql.Int},
		},
	})

	connectivityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Connectivity",
		Fields: graphql.Fields{
			"instances":        &graphql.Field{Type: graphql.Int},
			"overlaps":         &graphql.Field{Type: graphql.Int},
			"components":       &graphql.Field{Type: graphql.Int},
			"largestComponent": &graphql.Field{Type: graphql.Int},
		},
	})

	unitCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UnitCount",
		Fields: graphql.Fields{
			"unit":  &graphql.Field{Type: graphql.String},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	instanceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UnitInstance",
		Fields: graphql.Fields{
			"unit":    &graphql.Field{Type: graphql.String},
			"subject": &graphql.Field{Type: graphql.String},
			"vertices": &graphql.Field{
				Type: graphql.NewList(vertexType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					inst, ok := p.Source.(units.Instance)
					if !ok {
						return nil, nil
					}
					return r.lookup(inst.Vertices), nil
				},
			},
		},
	})

	characterType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Character",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if root, ok := p.Source.(*plotgraph.Vertex); ok {
						return root.Label(), nil
					}
					return nil, nil
				},
			},
			"spine": &graphql.Field{
				Type: graphql.NewList(vertexType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if root, ok := p.Source.(*plotgraph.Vertex); ok {
						return r.graph.Spine(root.ID()), nil
					}
					return nil, nil
				},
			},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"runId": &graphql.Field{
				Type:    graphql.String,
				Resolve: r.fromReport(func(rep *analysis.Report) any { return rep.RunID }),
			},
			"name": &graphql.Field{
				Type:    graphql.String,
				Resolve: r.fromReport(func(rep *analysis.Report) any { return rep.Name }),
			},
			"score": &graphql.Field{
				Type:    graphql.Float,
				Resolve: r.fromReport(func(rep *analysis.Report) any { return rep.Score }),
			},
			"tellability": &graphql.Field{
				Type:    tellabilityType,
				Resolve: r.fromReport(func(rep *analysis.Report) any { return rep.Tellability }),
			},
			"connectivity": &graphql.Field{
				Type:    connectivityType,
				Resolve: r.fromReport(func(rep *analysis.Report) any { return rep.Connectivity }),
			},
			"units": &graphql.Field{
				Type: graphql.NewList(unitCountType),
				Args: graphql.FieldConfigArgument{
					"detected": &graphql.ArgumentConfig{
						Type:        graphql.Boolean,
						Description: "Only units that occur at least once",
					},
				},
				Resolve: r.resolveUnits,
			},
			"instances": &graphql.Field{
				Type: graphql.NewList(instanceType),
				Args: graphql.FieldConfigArgument{
					"unit":  &graphql.ArgumentConfig{Type: graphql.String},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveInstances,
			},
			"vertices": &graphql.Field{
				Type: graphql.NewList(vertexType),
				Args: graphql.FieldConfigArgument{
					"polyvalent": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"type":       &graphql.ArgumentConfig{Type: graphql.String},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveVertices,
			},
			"vertex": &graphql.Field{
				Type: vertexType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: r.resolveVertex,
			},
			"characters": &graphql.Field{
				Type: graphql.NewList(characterType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if r.graph == nil {
						return []*plotgraph.Vertex{}, nil
					}
					return r.graph.Roots(), nil
				},
			},
		},
	})
}

func (r *resolver) fromReport(get func(*analysis.Report) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if r.report == nil {
			return nil, nil
		}
		return get(r.report), nil
	}
}

// lookup maps ids to live vertices, skipping any that are gone
func (r *resolver) lookup(ids []plotgraph.VertexID) []*plotgraph.Vertex {
	vs := make([]*plotgraph.Vertex, 0, len(ids))
	if r.graph == nil {
		return vs
	}
	for _, id := range ids {
		if v := r.graph.Vertex(id); v != nil {
			vs = append(vs, v)
		}
	}
	return vs
}

func (r *resolver) resolveUnits(p graphql.ResolveParams) (any, error) {
	if r.report == nil || r.report.Tellability == nil {
		return []units.UnitCount{}, nil
	}
	detected, _ := p.Args["detected"].(bool)
	counts := make([]units.UnitCount, 0, len(r.report.Tellability.UnitCounts))
	for _, c := range r.report.Tellability.UnitCounts {
		if detected && c.Count == 0 {
			continue
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (r *resolver) resolveInstances(p graphql.ResolveParams) (any, error) {
	if r.report == nil || r.report.Tellability == nil || r.report.Tellability.Detection == nil {
		return []units.Instance{}, nil
	}
	unit, _ := p.Args["unit"].(string)
	limit := r.limit(p)

	instances := make([]units.Instance, 0)
	for _, inst := range r.report.Tellability.Detection.Instances {
		if len(instances) >= limit {
			break
		}
		if unit != "" && inst.Unit != unit {
			continue
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

func (r *resolver) resolveVertices(p graphql.ResolveParams) (any, error) {
	vertices := make([]*plotgraph.Vertex, 0)
	if r.graph == nil {
		return vertices, nil
	}

	var vertexType *plotgraph.VertexType
	if name, ok := p.Args["type"].(string); ok {
		t, err := plotgraph.ParseVertexType(name)
		if err != nil {
			return nil, err
		}
		vertexType = &t
	}
	polyvalent, filterPolyvalent := p.Args["polyvalent"].(bool)
	limit := r.limit(p)

	for _, v := range r.graph.Vertices() {
		if len(vertices) >= limit {
			break
		}
		if filterPolyvalent && v.Polyvalent() != polyvalent {
			continue
		}
		if vertexType != nil && v.Type() != *vertexType {
			continue
		}
		vertices = append(vertices, v)
	}
	return vertices, nil
}

func (r *resolver) resolveVertex(p graphql.ResolveParams) (any, error) {
	idStr, ok := p.Args["id"].(string)
	if !ok {
		return nil, fmt.Errorf("id argument is required")
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid vertex id %q: %w", idStr, err)
	}
	if r.graph == nil {
		return nil, nil
	}
	if v := r.graph.Vertex(plotgraph.VertexID(id)); v != nil {
		return v, nil
	}
	return nil, nil
}

// limit reads the optional limit argument; an absent limit uses the default
func (r *resolver) limit(p graphql.ResolveParams) int {
	requested, ok := p.Args["limit"].(int)
	if !ok {
		requested = -1
	}
	return r.limits.clamp(requested)
}

// createVertexType creates the Vertex and Edge object types. They refer to
// each other, so both use field thunks.
func (r *resolver) createVertexType() *graphql.Object {
	var edgeType *graphql.Object

	vertexType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Vertex",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: vertexField(func(v *plotgraph.Vertex) any {
						return strconv.FormatUint(uint64(v.ID()), 10)
					}),
				},
				"label":      &graphql.Field{Type: graphql.String, Resolve: vertexField(func(v *plotgraph.Vertex) any { return v.Label() })},
				"type":       &graphql.Field{Type: graphql.String, Resolve: vertexField(func(v *plotgraph.Vertex) any { return v.Type().String() })},
				"step":       &graphql.Field{Type: graphql.Int, Resolve: vertexField(func(v *plotgraph.Vertex) any { return v.Step() })},
				"intention":  &graphql.Field{Type: graphql.String, Resolve: vertexField(func(v *plotgraph.Vertex) any { return v.Intention() })},
				"emotions":   &graphql.Field{Type: graphql.NewList(graphql.String), Resolve: vertexField(func(v *plotgraph.Vertex) any { return v.Emotions() })},
				"units":      &graphql.Field{Type: graphql.NewList(graphql.String), Resolve: vertexField(func(v *plotgraph.Vertex) any { return v.Units() })},
				"polyvalent": &graphql.Field{Type: graphql.Boolean, Resolve: vertexField(func(v *plotgraph.Vertex) any { return v.Polyvalent() })},
				"character": &graphql.Field{
					Type: graphql.String,
					Resolve: vertexField(func(v *plotgraph.Vertex) any {
						if root := r.graph.CharacterOf(v.ID()); root != nil {
							return root.Label()
						}
						return nil
					}),
				},
				"outgoing": &graphql.Field{
					Type:    graphql.NewList(edgeType),
					Resolve: vertexField(func(v *plotgraph.Vertex) any { return r.graph.OutEdges(v.ID()) }),
				},
				"incoming": &graphql.Field{
					Type:    graphql.NewList(edgeType),
					Resolve: vertexField(func(v *plotgraph.Vertex) any { return r.graph.InEdges(v.ID()) }),
				},
			}
		}),
	})

	edgeType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Edge",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: edgeField(func(e *plotgraph.Edge) any { return e.ID }),
			},
			"type": &graphql.Field{
				Type:    graphql.String,
				Resolve: edgeField(func(e *plotgraph.Edge) any { return e.Type.String() }),
			},
			"from": &graphql.Field{
				Type:    vertexType,
				Resolve: edgeField(func(e *plotgraph.Edge) any { return r.graph.Vertex(e.From) }),
			},
			"to": &graphql.Field{
				Type:    vertexType,
				Resolve: edgeField(func(e *plotgraph.Edge) any { return r.graph.Vertex(e.To) }),
			},
		},
	})

	return vertexType
}

func vertexField(get func(*plotgraph.Vertex) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if v, ok := p.Source.(*plotgraph.Vertex); ok && v != nil {
			return get(v), nil
		}
		return nil, nil
	}
}

func edgeField(get func(*plotgraph.Edge) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if e, ok := p.Source.(*plotgraph.Edge); ok && e != nil {
			return get(e), nil
		}
		return nil, nil
	}
}
