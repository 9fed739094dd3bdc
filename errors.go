package flatai

import (
	"fmt"
)

// Kind is a classification of error type.
type Kind string

const (
	Validation Kind = "validation"
	Stream     Kind = "stream"
)

// Error represents errors raised while building or consuming model output values.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	// The offending field for the Validation error kind
	Field string
}

func (e *Error) Error() string {
	switch e.Kind {
	case Validation:
		if e.Field != "" {
			return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
		}
		return fmt.Sprintf("validation error: %s", e.Message)
	case Stream:
		return fmt.Sprintf("stream error: %s", e.Err)
	default:
		return e.Message
	}
}

// Unwrap allows errors.Is / errors.As to work with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Helper constructors
func NewValidationError(field string, msg string) *Error {
	return &Error{Kind: Validation, Field: field, Message: msg}
}

func NewStreamError(err error) *Error {
	return &Error{Kind: Stream, Err: err}
}
