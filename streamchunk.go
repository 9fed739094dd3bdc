package flatai

import (
	"fmt"
	"reflect"
	"strings"
)

// StreamChunk is one piece of a streamed text response together with
// everything received on the stream up to and including that piece.
//
// Printing a chunk yields only Piece, so a consumer that prints every chunk
// as it arrives writes the response incrementally. Concatenating a chunk with
// another value uses Accumulated instead, so a combined string built from a
// chunk carries the whole text received so far.
//
// A StreamChunk is not safe for concurrent use when Append is involved.
type StreamChunk struct {
	Piece       string `json:"piece"`
	Origin      string `json:"origin"`
	Accumulated string `json:"accumulated"`
}

// NewStreamChunk creates a new StreamChunk. The caller computes accumulated
// by appending piece to the previous total; it is stored as given.
func NewStreamChunk(piece, origin, accumulated string) *StreamChunk {
	return &StreamChunk{
		Piece:       piece,
		Origin:      origin,
		Accumulated: accumulated,
	}
}

// String returns the piece verbatim.
func (s StreamChunk) String() string {
	return s.Piece
}

// ConcatLeft returns the accumulated text followed by the text form of other.
func (s StreamChunk) ConcatLeft(other any) string {
	return s.Accumulated + text(other)
}

// ConcatRight returns the text form of other followed by the accumulated text.
func (s StreamChunk) ConcatRight(other any) string {
	return text(other) + s.Accumulated
}

// Append appends the text form of other to Accumulated and returns s.
func (s *StreamChunk) Append(other any) *StreamChunk {
	s.Accumulated += text(other)
	return s
}

// Validate reports whether Accumulated ends with Piece.
func (s StreamChunk) Validate() error {
	if !strings.HasSuffix(s.Accumulated, s.Piece) {
		return NewValidationError("accumulated", fmt.Sprintf("%q does not end with piece %q", s.Accumulated, s.Piece))
	}
	return nil
}

// UnmarshalJSON requires piece, origin and accumulated to be present as strings.
func (s *StreamChunk) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}

	piece, err := requireString(fields, "piece")
	if err != nil {
		return err
	}
	origin, err := requireString(fields, "origin")
	if err != nil {
		return err
	}
	accumulated, err := requireString(fields, "accumulated")
	if err != nil {
		return err
	}

	s.Piece = piece
	s.Origin = origin
	s.Accumulated = accumulated
	return nil
}

// text converts an arbitrary value to its textual form. Error and String
// methods are called directly, in the order fmt uses, so that a panic inside
// them reaches the caller instead of being folded into the output the way fmt
// does. A nil pointer renders as "<nil>".
func text(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "<nil>"
	}
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
