// Package postprocess rewrites a recorded plot graph into the form the unit
// finder expects. Two passes run over a clone of the live graph:
//
//   - Structural folds transient EMOTION vertices into the events that caused
//     them, turns LISTEN vertices into percepts and trims the idle actions a
//     stalled simulation leaves at the end of a spine.
//   - Annotation resolves the motivation, cause, source, drop_intention and
//     crossCharacter annotations into overlay edges.
//
// Both passes walk each character's spine once, in chronological order, and
// keep a most-recent-first history of the events seen so far.
package postprocess

import (
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Options controls the rewrite policies.
type Options struct {
	// KeepMotivation leaves the motivation annotation in a label when none of
	// its targets could be resolved. When false it is always stripped.
	KeepMotivation bool
	// TrimRepeatedActions collapses a trailing run of identical actions.
	TrimRepeatedActions bool
}

// DefaultOptions returns the policies used by the analysis pipeline.
func DefaultOptions() Options {
	return Options{KeepMotivation: true, TrimRepeatedActions: true}
}

// Pipeline runs the structural pass followed by the annotation pass.
type Pipeline struct {
	Structural *Structural
	Annotation *Annotation
}

// NewPipeline creates a pipeline sharing opts and logger between both passes.
func NewPipeline(opts Options, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Pipeline{
		Structural: NewStructural(opts, logger),
		Annotation: NewAnnotation(opts, logger),
	}
}

// Apply clones g, runs both passes on the clone and returns it. g itself is
// never modified, even when a pass fails.
func (p *Pipeline) Apply(g *plotgraph.Graph) (*plotgraph.Graph, error) {
	work := g.Clone()
	if err := p.Structural.Apply(work); err != nil {
		return nil, err
	}
	if err := p.Annotation.Apply(work); err != nil {
		return nil, err
	}
	return work, nil
}

// history is a character's events, most recent last. Iterate with recent.
type history []*plotgraph.Vertex

func (h *history) push(v *plotgraph.Vertex) { *h = append(*h, v) }

func (h *history) reset() { *h = (*h)[:0] }

// recent yields events most-recent-first until fn returns false.
func (h history) recent(fn func(v *plotgraph.Vertex) bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if !fn(h[i]) {
			return
		}
	}
}

// find returns the most recent event satisfying match.
func (h history) find(match func(v *plotgraph.Vertex) bool) *plotgraph.Vertex {
	var found *plotgraph.Vertex
	h.recent(func(v *plotgraph.Vertex) bool {
		if match(v) {
			found = v
			return false
		}
		return true
	})
	return found
}

// splitSign splits a bare label into its leading sign character and the rest,
// e.g. "-has(bread)" into '-' and "has(bread)".
func splitSign(label string) (byte, string) {
	if label == "" {
		return 0, ""
	}
	return label[0], label[1:]
}

func vertexFields(v *plotgraph.Vertex) []logging.Field {
	return []logging.Field{
		logging.VertexID(uint64(v.ID())),
		logging.VertexType(v.Type().String()),
		logging.Label(v.Label()),
	}
}
