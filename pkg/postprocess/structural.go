package postprocess

import (
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Structural removes the transient vertex types the recorder produces.
type Structural struct {
	opts   Options
	logger logging.Logger
}

// NewStructural creates the structural pass.
func NewStructural(opts Options, logger logging.Logger) *Structural {
	return &Structural{opts: opts, logger: logger.With(logging.Component("structural_pass"))}
}

type structuralRun struct {
	*Structural
	g      *plotgraph.Graph
	root   *plotgraph.Vertex
	events history
}

// Apply runs the pass over g in place.
func (s *Structural) Apply(g *plotgraph.Graph) error {
	run := &structuralRun{Structural: s, g: g}
	if err := g.WalkSpines(run.visit); err != nil {
		return err
	}
	if s.opts.TrimRepeatedActions {
		for _, root := range g.Roots() {
			if err := run.trimRepeatedActions(root); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *structuralRun) visit(v *plotgraph.Vertex) error {
	switch v.Type() {
	case plotgraph.Root:
		r.events.reset()
		r.root = v
		return nil
	case plotgraph.Emotion:
		return r.foldEmotion(v)
	case plotgraph.Listen:
		v.SetType(plotgraph.Percept)
	case plotgraph.Event:
		r.logger.Warn("semantically underspecified event vertex", vertexFields(v)...)
	}
	r.events.push(v)
	return nil
}

// foldEmotion attaches the appraisal to the event named by the vertex's
// cause annotation, or to the event right before it, and removes the vertex.
func (r *structuralRun) foldEmotion(v *plotgraph.Vertex) error {
	name := v.WithoutAnnotation()

	var target *plotgraph.Vertex
	if cause := v.Cause(); cause != "" {
		target = r.events.find(func(t *plotgraph.Vertex) bool { return t.WithoutAnnotation() == cause })
	}
	if target == nil {
		if pred, ok := r.g.SpinePredecessor(v.ID()); ok {
			if p := r.g.Vertex(pred); p.Type() != plotgraph.Root {
				target = p
			}
		}
	}

	if target != nil {
		target.AddEmotion(name)
	} else {
		r.logger.Debug("dropping emotion without an appraised event", vertexFields(v)...)
	}
	return r.g.RemoveVertexAndPatch(r.root.ID(), v.ID())
}

// trimRepeatedActions keeps a single copy of the identical actions repeated at
// the end of a spine while the simulation idled.
func (r *structuralRun) trimRepeatedActions(root *plotgraph.Vertex) error {
	spine := r.g.Spine(root.ID())
	trimmed := 0
	for i := len(spine) - 1; i > 0; i-- {
		last, prev := spine[i], spine[i-1]
		if last.Type() != plotgraph.Action || prev.Type() != plotgraph.Action || last.Label() != prev.Label() {
			break
		}
		if err := r.g.RemoveVertexAndPatch(root.ID(), last.ID()); err != nil {
			return err
		}
		trimmed++
	}
	if trimmed > 0 {
		r.logger.Debug("trimmed repeated actions", logging.Character(root.Label()), logging.Count(trimmed))
	}
	return nil
}
