// Package connectivity relates detected unit instances to each other: two
// instances are connected when they share a plot vertex. Primitive instances
// take part so that speech and termination links bridge larger units.
package connectivity

import (
	"sort"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
	"github.com/dd0wney/plotgraph/pkg/units"
)

// Overlap is an undirected link between two instances, by index.
type Overlap struct {
	A, B   int
	Shared []plotgraph.VertexID
}

// Graph is the connectivity graph of one analysis.
type Graph struct {
	Instances []units.Instance
	Overlaps  []Overlap
	adjacency [][]int
}

// Stats summarizes a connectivity graph.
type Stats struct {
	Instances        int `json:"instances"`
	Overlaps         int `json:"overlaps"`
	Components       int `json:"components"`
	LargestComponent int `json:"largest_component"`
}

// Build connects every pair of instances that share a vertex.
func Build(instances []units.Instance) *Graph {
	g := &Graph{
		Instances: instances,
		adjacency: make([][]int, len(instances)),
	}

	owners := make(map[plotgraph.VertexID][]int)
	for i, inst := range instances {
		for _, v := range inst.Vertices {
			owners[v] = append(owners[v], i)
		}
	}

	shared := make(map[[2]int][]plotgraph.VertexID)
	var keys [][2]int
	for v, idx := range owners {
		for x := 0; x < len(idx); x++ {
			for y := x + 1; y < len(idx); y++ {
				key := [2]int{idx[x], idx[y]}
				if _, ok := shared[key]; !ok {
					keys = append(keys, key)
				}
				shared[key] = append(shared[key], v)
			}
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		vs := shared[k]
		sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
		g.Overlaps = append(g.Overlaps, Overlap{A: k[0], B: k[1], Shared: vs})
		g.adjacency[k[0]] = append(g.adjacency[k[0]], k[1])
		g.adjacency[k[1]] = append(g.adjacency[k[1]], k[0])
	}
	return g
}

// Components returns the connected components as lists of instance indexes,
// largest first.
func (g *Graph) Components() [][]int {
	seen := make([]bool, len(g.Instances))
	var components [][]int
	for start := range g.Instances {
		if seen[start] {
			continue
		}
		seen[start] = true
		component := []int{start}
		for i := 0; i < len(component); i++ {
			for _, n := range g.adjacency[component[i]] {
				if !seen[n] {
					seen[n] = true
					component = append(component, n)
				}
			}
		}
		sort.Ints(component)
		components = append(components, component)
	}
	sort.SliceStable(components, func(i, j int) bool { return len(components[i]) > len(components[j]) })
	return components
}

// Stats returns the size measures of the graph.
func (g *Graph) Stats() Stats {
	components := g.Components()
	s := Stats{
		Instances:  len(g.Instances),
		Overlaps:   len(g.Overlaps),
		Components: len(components),
	}
	if len(components) > 0 {
		s.LargestComponent = len(components[0])
	}
	return s
}
