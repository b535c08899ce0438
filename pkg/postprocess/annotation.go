package postprocess

import (
	"regexp"
	"strings"

	"github.com/dd0wney/plotgraph/pkg/annotation"
	"github.com/dd0wney/plotgraph/pkg/emotion"
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

var dropIntentionPattern = regexp.MustCompile(`drop_intention\((?P<drop>.*?)\)\[causality\((?P<cause>.*)\)\]`)

// Annotation turns label annotations into overlay edges.
type Annotation struct {
	opts   Options
	logger logging.Logger
}

// NewAnnotation creates the annotation pass.
func NewAnnotation(opts Options, logger logging.Logger) *Annotation {
	return &Annotation{opts: opts, logger: logger.With(logging.Component("annotation_pass"))}
}

// annotationRun is the state of one Apply call.
type annotationRun struct {
	*Annotation
	g       *plotgraph.Graph
	root    *plotgraph.Vertex
	events  history
	xchar   map[string][]*plotgraph.Vertex
	xcharID []string // ids in first-seen order
}

// Apply runs the pass over g in place.
func (a *Annotation) Apply(g *plotgraph.Graph) error {
	run := &annotationRun{
		Annotation: a,
		g:          g,
		xchar:      make(map[string][]*plotgraph.Vertex),
	}
	if err := g.WalkSpines(run.visit); err != nil {
		return err
	}
	run.linkCrossCharacter()
	return nil
}

func (r *annotationRun) visit(v *plotgraph.Vertex) error {
	switch v.Type() {
	case plotgraph.Root:
		r.events.reset()
		r.root = v
		return nil
	case plotgraph.Action:
		r.visitAction(v)
		return nil
	case plotgraph.Percept:
		return r.visitPercept(v)
	case plotgraph.Speech:
		if err := r.attachMotivation(v); err != nil {
			return err
		}
		r.events.push(v)
		return nil
	case plotgraph.Intention:
		return r.visitIntention(v)
	case plotgraph.Event:
		r.logger.Warn("semantically underspecified event vertex", vertexFields(v)...)
	case plotgraph.Emotion:
		r.logger.Warn("emotion vertex survived the structural pass", vertexFields(v)...)
	case plotgraph.Listen:
		r.logger.Warn("listen vertex survived the structural pass", vertexFields(v)...)
	}
	return nil
}

// visitAction links the action to the intention it actualizes.
func (r *annotationRun) visitAction(v *plotgraph.Vertex) {
	if motivation := v.Annotation(annotation.KeyMotivation); motivation != "" {
		if target := r.events.find(func(t *plotgraph.Vertex) bool { return t.Intention() == motivation }); target != nil {
			r.addEdge(plotgraph.Actualization, target, v)
		}
	}
	r.collectCrossCharacter(v)
	r.events.push(v)
}

func (r *annotationRun) visitPercept(v *plotgraph.Vertex) error {
	// a happening is perceived as +cause, an action as-is
	if cause := v.Cause(); cause != "" {
		target := r.events.find(func(t *plotgraph.Vertex) bool {
			bare := t.WithoutAnnotation()
			return bare == cause || bare == "+"+cause
		})
		if target != nil {
			r.addEdge(plotgraph.Causality, target, v)
		}
	}

	if err := r.handleTradeoff(v); err != nil {
		return err
	}
	r.collectCrossCharacter(v)
	if v.HasEmotion() {
		r.handleLossAndResolution(v)
	}
	r.events.push(v)
	return nil
}

func (r *annotationRun) visitIntention(v *plotgraph.Vertex) error {
	if strings.HasPrefix(v.Label(), "drop_intention") {
		return r.handleDropIntention(v)
	}

	// A re-asserted intention points up to its first occurrence and is
	// neither motivated nor remembered.
	if r.lookForPerseverance(v) {
		return nil
	}
	if err := r.attachMotivation(v); err != nil {
		return err
	}
	r.events.push(v)
	return nil
}

func (r *annotationRun) lookForPerseverance(v *plotgraph.Vertex) bool {
	intention := v.Intention()
	if intention == "" {
		return false
	}
	target := r.events.find(func(t *plotgraph.Vertex) bool {
		return t.Intention() == intention && t.Root() == v.Root()
	})
	if target == nil {
		return false
	}
	r.addEdge(plotgraph.Equivalence, v, target)
	return true
}

// attachMotivation links every motivation(a;b;...) target found in the
// history to v, each history event at most once.
func (r *annotationRun) attachMotivation(v *plotgraph.Vertex) error {
	motivation := v.Annotation(annotation.KeyMotivation)
	if motivation == "" {
		return nil
	}

	linked := make(map[plotgraph.VertexID]bool)
	for _, m := range strings.Split(motivation, ";") {
		m, err := annotation.RemoveAnnots(strings.TrimSpace(m))
		if err != nil {
			return err
		}
		if m == "" {
			continue
		}
		target := r.events.find(func(t *plotgraph.Vertex) bool {
			if linked[t.ID()] {
				return false
			}
			bare := t.WithoutAnnotation()
			_, unsigned := splitSign(bare)
			// intentions, percepts and listens
			return m == t.Intention() || m == bare || (bare != "" && m == unsigned)
		})
		if target != nil {
			r.addEdge(plotgraph.Motivation, target, v)
			linked[target.ID()] = true
		}
	}

	if r.opts.KeepMotivation && len(linked) == 0 {
		return nil
	}
	label, err := annotation.StripAnnotation(v.Label(), annotation.KeyMotivation)
	if err != nil {
		return err
	}
	return v.SetLabel(label)
}

// handleTradeoff checks whether a belief removal such as
// -has(bread)[source(is_dropped(bread))] was caused by an earlier event and,
// if so, lets that event terminate the addition of the same belief.
func (r *annotationRun) handleTradeoff(v *plotgraph.Vertex) error {
	source := v.Source()
	if source == "" || strings.HasPrefix(v.Label(), "+") {
		return nil
	}
	source, err := annotation.RemoveAnnots(source)
	if err != nil {
		return err
	}
	_, unsignedSource := splitSign(source)

	src := r.events.find(func(t *plotgraph.Vertex) bool {
		bare := t.WithoutAnnotation()
		return bare == source || (bare == unsignedSource && t.Type() == plotgraph.Action)
	})
	if src == nil {
		return nil
	}

	_, belief := splitSign(v.WithoutAnnotation())
	addition := r.events.find(func(t *plotgraph.Vertex) bool {
		sign, rest := splitSign(t.WithoutAnnotation())
		return sign == '+' && rest == belief
	})
	if addition != nil {
		r.addEdge(plotgraph.Termination, src, addition)
	}
	return nil
}

// handleLossAndResolution connects an emotional percept to an earlier percept
// of the same belief with the opposite sign when their valences oppose: a loss
// when a positive event is undone, a resolution when a negative one is.
func (r *annotationRun) handleLossAndResolution(v *plotgraph.Vertex) {
	sign, belief := splitSign(v.WithoutAnnotation())
	positive, negative := emotion.Classify(v.Emotions())

	r.events.recent(func(t *plotgraph.Vertex) bool {
		tSign, tBelief := splitSign(t.WithoutAnnotation())
		if tBelief != belief || tSign == sign || t.Root() != v.Root() {
			return true
		}

		if positive && negative {
			r.addEdge(plotgraph.Termination, v, t)
			return false
		}
		for _, em := range t.Emotions() {
			valence := emotion.ValenceOf(em)
			if (!positive && valence == emotion.Positive) || (!negative && valence == emotion.Negative) {
				r.addEdge(plotgraph.Termination, v, t)
				break
			}
		}
		return true
	})
}

// handleDropIntention resolves drop_intention(<dropped>)[causality(<cause>)].
// Drops of unknown intentions and unparseable markers are removed; otherwise
// the cause terminates the dropped intention, with the marker itself standing
// in for a cause that never appeared.
func (r *annotationRun) handleDropIntention(v *plotgraph.Vertex) error {
	m := dropIntentionPattern.FindStringSubmatch(v.Label())
	if m == nil || len(m[1]) < 2 {
		r.logger.Debug("removing malformed drop_intention", vertexFields(v)...)
		return r.remove(v)
	}

	// <dropped> carries its +! trigger
	dropped, err := annotation.RemoveAnnots(m[1][2:])
	if err != nil {
		return err
	}
	intention := r.events.find(func(t *plotgraph.Vertex) bool { return t.Intention() == dropped })
	if intention == nil {
		return r.remove(v)
	}

	// +self(has_purpose) and !rethink_life appear as +!rethink_life
	cause := m[2]
	if strings.HasPrefix(cause, "+!") {
		cause = cause[1:]
	}

	if causeVertex := r.events.find(func(t *plotgraph.Vertex) bool { return t.WithoutAnnotation() == cause }); causeVertex != nil {
		r.addEdge(plotgraph.Termination, causeVertex, intention)
		return r.remove(v)
	}

	if strings.HasPrefix(cause, "!") {
		v.SetType(plotgraph.Intention)
	} else {
		v.SetType(plotgraph.Percept)
	}
	if err := v.SetLabel(cause); err != nil {
		return err
	}
	r.addEdge(plotgraph.Termination, v, intention)
	r.events.push(v)
	return nil
}

func (r *annotationRun) collectCrossCharacter(v *plotgraph.Vertex) {
	id := v.Annotation(annotation.KeyCrossCharacter)
	if id == "" {
		return
	}
	if _, seen := r.xchar[id]; !seen {
		r.xcharID = append(r.xcharID, id)
	}
	r.xchar[id] = append(r.xchar[id], v)
}

// linkCrossCharacter connects every pair of events that share a
// crossCharacter id and belong to different characters, in both directions.
func (r *annotationRun) linkCrossCharacter() {
	for _, id := range r.xcharID {
		events := r.xchar[id]
		for i := 0; i < len(events); i++ {
			for j := i + 1; j < len(events); j++ {
				a, b := events[i], events[j]
				if a.Root() == b.Root() {
					continue
				}
				r.addEdge(plotgraph.CrossCharacter, a, b)
				r.addEdge(plotgraph.CrossCharacter, b, a)
			}
		}
	}
}

func (r *annotationRun) remove(v *plotgraph.Vertex) error {
	return r.g.RemoveVertexAndPatch(r.root.ID(), v.ID())
}

// addEdge links two live vertices of the graph under rewrite. Both ends come
// from the walk, so a failure means the graph is corrupt.
func (r *annotationRun) addEdge(t plotgraph.EdgeType, from, to *plotgraph.Vertex) {
	if _, err := r.g.AddEdge(t, from.ID(), to.ID()); err != nil {
		r.logger.Error("failed to add edge", logging.String("edge_type", t.String()), logging.Error(err))
	}
}
