package plotgraph

import (
	"sync"

	"github.com/dd0wney/plotgraph/pkg/annotation"
)

// Report is one event reported by the reasoning engine for a character.
type Report struct {
	Character string
	Label     string
	Type      VertexType
	Step      int
	Intention string   // explicit intention; derived from the label when empty
	Emotions  []string // appraisal tags in addition to emotion(...) annotations
}

// Recorder assembles the live graph of a single simulation run. It is safe
// for one producer and any number of concurrent Snapshot callers.
type Recorder struct {
	mu    sync.Mutex
	graph *Graph
	tails map[string]VertexID // last vertex on each character's spine
}

// NewRecorder creates a recorder over an empty graph.
func NewRecorder(name string) *Recorder {
	return &Recorder{
		graph: New(name),
		tails: make(map[string]VertexID),
	}
}

// AddCharacter declares a character and creates its root vertex.
func (r *Recorder) AddCharacter(name string) (VertexID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tails[name]; exists {
		return 0, NewError("AddCharacter").Character(name).Cause(ErrDuplicateCharacter).Err()
	}
	root, err := r.graph.AddRoot(name)
	if err != nil {
		return 0, err
	}
	r.tails[name] = root.id
	return root.id, nil
}

// HasCharacter reports whether the character was declared.
func (r *Recorder) HasCharacter(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tails[name]
	return ok
}

// AddEvent appends an event to the end of the character's spine.
func (r *Recorder) AddEvent(rep Report) (VertexID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(rep)
}

func (r *Recorder) appendLocked(rep Report) (VertexID, error) {
	tail, ok := r.tails[rep.Character]
	if !ok {
		return 0, NewError("AddEvent").Character(rep.Character).Cause(ErrUnknownCharacter).Err()
	}

	v, err := r.graph.AppendEvent(tail, rep.Label, rep.Type, rep.Step)
	if err != nil {
		return 0, err
	}
	if rep.Intention != "" {
		v.SetIntention(rep.Intention)
	}
	for _, e := range v.term.Values(annotation.KeyEmotion) {
		v.AddEmotion(e)
	}
	for _, e := range rep.Emotions {
		v.AddEmotion(e)
	}

	r.tails[rep.Character] = v.id
	return v.id, nil
}

// AddCommunication records a message: a SPEECH vertex on the sender's spine,
// a LISTEN vertex on the receiver's spine and a COMMUNICATION edge between them.
func (r *Recorder) AddCommunication(sender, receiver, label string, step int) (speech, listen VertexID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tails[receiver]; !ok {
		return 0, 0, NewError("AddCommunication").Character(receiver).Cause(ErrUnknownCharacter).Err()
	}
	speech, err = r.appendLocked(Report{Character: sender, Label: label, Type: Speech, Step: step})
	if err != nil {
		return 0, 0, err
	}
	listen, err = r.appendLocked(Report{Character: receiver, Label: label, Type: Listen, Step: step})
	if err != nil {
		return 0, 0, err
	}
	if _, err = r.graph.AddEdge(Communication, speech, listen); err != nil {
		return 0, 0, err
	}
	return speech, listen, nil
}

// Snapshot returns a deep copy of the live graph.
func (r *Recorder) Snapshot() *Graph {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph.Clone()
}
