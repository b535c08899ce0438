package units

import (
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Instance is one occurrence of a unit in a plot graph.
type Instance struct {
	Unit      string
	Primitive bool
	Vertices  []plotgraph.VertexID // target vertices, in pattern search order
	Subject   string               // character owning the first matched vertex
}

// UnitCount pairs a unit with its number of occurrences.
type UnitCount struct {
	Unit  string `json:"unit"`
	Count int    `json:"count"`
}

// Detection summarizes unit matching over one graph.
type Detection struct {
	Counts             []UnitCount // non-primitive units, catalog order
	Instances          []Instance  // non-primitive occurrences
	Primitives         []Instance  // debug unit occurrences, not scored
	TotalInstances     int
	PolyvalentVertices []plotgraph.VertexID // in the order they crossed the threshold
}

// Count returns the number of occurrences of the named unit.
func (d *Detection) Count(unit string) int {
	for _, c := range d.Counts {
		if c.Unit == unit {
			return c.Count
		}
	}
	return 0
}

// Detected returns the names of units found at least once.
func (d *Detection) Detected() []string {
	var names []string
	for _, c := range d.Counts {
		if c.Count > 0 {
			names = append(names, c.Unit)
		}
	}
	return names
}

// Options controls detection.
type Options struct {
	// IncludePrimitives also matches the debug units.
	IncludePrimitives bool
	Logger            logging.Logger
}

// Detect matches every catalog unit against g, tags matched vertices with the
// unit names, and flags vertices matched by two or more occurrences of any
// units as polyvalent. g is modified and should be a post-processed clone.
func Detect(g *plotgraph.Graph, catalog *Catalog, opts Options) *Detection {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	d := &Detection{Counts: make([]UnitCount, 0, len(catalog.Units()))}
	matches := make(map[plotgraph.VertexID]int)

	for _, unit := range catalog.Units() {
		mappings := FindUnits(g, unit)
		d.Counts = append(d.Counts, UnitCount{Unit: unit.Name, Count: len(mappings)})
		d.TotalInstances += len(mappings)
		logger.Info("found unit", logging.Unit(unit.Name), logging.Count(len(mappings)))

		for _, m := range mappings {
			inst := newInstance(g, unit, m)
			d.Instances = append(d.Instances, inst)
			for _, id := range inst.Vertices {
				g.MarkVertexAsUnit(id, unit.Name)
				matches[id]++
				if matches[id] == 2 {
					d.PolyvalentVertices = append(d.PolyvalentVertices, id)
				}
			}
		}
	}

	for _, id := range d.PolyvalentVertices {
		g.Vertex(id).SetPolyvalent()
	}

	if opts.IncludePrimitives {
		for _, unit := range catalog.Primitives() {
			for _, m := range FindUnits(g, unit) {
				d.Primitives = append(d.Primitives, newInstance(g, unit, m))
			}
		}
	}
	return d
}

func newInstance(g *plotgraph.Graph, unit *Unit, m Mapping) Instance {
	inst := Instance{
		Unit:      unit.Name,
		Primitive: unit.Primitive,
		Vertices:  m.targets(unit.order),
	}
	if len(inst.Vertices) > 0 {
		if root := g.CharacterOf(inst.Vertices[0]); root != nil {
			inst.Subject = root.Label()
		}
	}
	return inst
}
