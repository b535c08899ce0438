package annotation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in a ParseError) for malformed labels.
var (
	ErrUnbalanced         = errors.New("unbalanced brackets")
	ErrMismatched         = errors.New("mismatched bracket")
	ErrTrailing           = errors.New("trailing characters after annotation block")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrMalformedPair      = errors.New("malformed annotation")
)

// ParseError reports where a label failed to parse.
type ParseError struct {
	Label string // Label being parsed
	Pos   int    // Byte offset of the failure
	Cause error  // One of the sentinel errors above
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse label %q at offset %d: %v", e.Label, e.Pos, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

func parseErr(label string, pos int, cause error) error {
	return &ParseError{Label: label, Pos: pos, Cause: cause}
}
