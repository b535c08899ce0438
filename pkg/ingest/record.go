// Package ingest turns streams of event report records into recorded plot
// graphs. Records arrive as JSON lines from files (optionally snappy
// compressed) or as messages on a mangos PULL socket.
package ingest

import (
	"errors"
	"fmt"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
	"github.com/dd0wney/plotgraph/pkg/validation"
)

// Record kinds
const (
	KindCharacter     = "character"
	KindEvent         = "event"
	KindCommunication = "communication"
	KindEnd           = "end"
)

var (
	// ErrClosed is returned by a Listener after Close.
	ErrClosed = errors.New("ingest: listener closed")
	// ErrEndOfRun is returned by Apply for an end record.
	ErrEndOfRun = errors.New("ingest: end of run")
)

// Record is one line of an event log or one transport message.
type Record struct {
	Run       string   `json:"run,omitempty" validate:"max=128"`
	Kind      string   `json:"kind" validate:"required,oneof=character event communication end"`
	Character string   `json:"character,omitempty" validate:"required_unless=Kind end,max=64,character"`
	Receiver  string   `json:"receiver,omitempty" validate:"required_if=Kind communication,max=64,character"`
	Label     string   `json:"label,omitempty" validate:"required_if=Kind event,required_if=Kind communication,plotlabel"`
	Type      string   `json:"type,omitempty" validate:"required_if=Kind event,vertextype"`
	Step      int      `json:"step" validate:"min=0"`
	Intention string   `json:"intention,omitempty" validate:"max=1024"`
	Emotions  []string `json:"emotions,omitempty" validate:"max=16,dive,min=1,max=64"`
}

// RecordError locates a bad record in its stream.
type RecordError struct {
	Line  int
	Cause error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Line, e.Cause)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}

// Validate checks the record against its kind.
func (r *Record) Validate() error {
	return validation.Struct(r)
}

// Report converts an event record into a recorder report.
func (r *Record) Report() (plotgraph.Report, error) {
	t, err := plotgraph.ParseVertexType(r.Type)
	if err != nil {
		return plotgraph.Report{}, err
	}
	return plotgraph.Report{
		Character: r.Character,
		Label:     r.Label,
		Type:      t,
		Step:      r.Step,
		Intention: r.Intention,
		Emotions:  r.Emotions,
	}, nil
}

// Apply feeds a validated record into rec. Characters referenced by events
// and communications are declared on first use. An end record yields
// ErrEndOfRun.
func Apply(rec *plotgraph.Recorder, r *Record) error {
	switch r.Kind {
	case KindCharacter:
		if rec.HasCharacter(r.Character) {
			return nil
		}
		_, err := rec.AddCharacter(r.Character)
		return err
	case KindEvent:
		if err := declare(rec, r.Character); err != nil {
			return err
		}
		rep, err := r.Report()
		if err != nil {
			return err
		}
		_, err = rec.AddEvent(rep)
		return err
	case KindCommunication:
		if err := declare(rec, r.Character, r.Receiver); err != nil {
			return err
		}
		_, _, err := rec.AddCommunication(r.Character, r.Receiver, r.Label, r.Step)
		return err
	case KindEnd:
		return ErrEndOfRun
	default:
		return fmt.Errorf("unknown record kind %q", r.Kind)
	}
}

func declare(rec *plotgraph.Recorder, characters ...string) error {
	for _, c := range characters {
		if rec.HasCharacter(c) {
			continue
		}
		if _, err := rec.AddCharacter(c); err != nil {
			return err
		}
	}
	return nil
}
