package plotgraph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrVertexNotFound     = errors.New("vertex not found")
	ErrEdgeNotFound       = errors.New("edge not found")
	ErrUnknownCharacter   = errors.New("unknown character")
	ErrDuplicateCharacter = errors.New("character already exists")
	ErrRootRemoval        = errors.New("root vertices cannot be removed")
	ErrNotOnSpine         = errors.New("vertex is not on the character's spine")
	ErrInvalidLabel       = errors.New("invalid label")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string   // Operation that failed (e.g., "AddEvent", "RemoveVertex")
	Entity  string   // Entity type (e.g., "vertex", "edge", "character")
	ID      VertexID // Vertex ID (if applicable)
	Name    string   // Character name or label (if applicable)
	Cause   error    // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Name, e.Cause)
	case e.Entity == "vertex":
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Vertex sets the entity to "vertex" with the given ID.
func (b *ErrorBuilder) Vertex(id VertexID) *ErrorBuilder {
	b.err.Entity = "vertex"
	b.err.ID = id
	return b
}

// Character sets the entity to "character" with the given name.
func (b *ErrorBuilder) Character(name string) *ErrorBuilder {
	b.err.Entity = "character"
	b.err.Name = name
	return b
}

// Label sets the entity to "label" with the offending text.
func (b *ErrorBuilder) Label(label string) *ErrorBuilder {
	b.err.Entity = "label"
	b.err.Name = label
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// labelError wraps a parse failure so that both ErrInvalidLabel and the
// underlying *annotation.ParseError are reachable through errors.Is/As.
func labelError(op, label string, cause error) error {
	return NewError(op).Label(label).Cause(fmt.Errorf("%w: %w", ErrInvalidLabel, cause)).Err()
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVertexNotFound) || errors.Is(err, ErrEdgeNotFound) || errors.Is(err, ErrUnknownCharacter)
}
