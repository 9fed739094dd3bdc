package flatai

import (
	"context"
	"strings"

	"github.com/flat-ai/flat-go/utils/stream"
	"github.com/google/uuid"
)

// ChunkAccumulator keeps the running total of one stream and produces a
// StreamChunk for every piece added to it.
type ChunkAccumulator struct {
	id     string
	origin string
	text   strings.Builder
	size   int
}

// NewChunkAccumulator creates a new ChunkAccumulator for a stream produced by origin.
func NewChunkAccumulator(origin string) *ChunkAccumulator {
	return &ChunkAccumulator{
		id:     uuid.NewString(),
		origin: origin,
	}
}

// Add appends piece to the running total and returns the chunk describing it.
func (a *ChunkAccumulator) Add(piece string) *StreamChunk {
	a.text.WriteString(piece)
	a.size++
	return NewStreamChunk(piece, a.origin, a.text.String())
}

// ID gets the identifier of the stream
func (a *ChunkAccumulator) ID() string {
	return a.id
}

// Origin gets the role that produced the stream
func (a *ChunkAccumulator) Origin() string {
	return a.origin
}

// Text gets everything accumulated so far
func (a *ChunkAccumulator) Text() string {
	return a.text.String()
}

// Size gets the number of pieces added
func (a *ChunkAccumulator) Size() int {
	return a.size
}

// IsEmpty checks if any piece has been added
func (a *ChunkAccumulator) IsEmpty() bool {
	return a.size == 0
}

// Clear drops the accumulated text. The stream ID is kept.
func (a *ChunkAccumulator) Clear() {
	a.text.Reset()
	a.size = 0
}

// Accumulate drains pieces, calling fn with one StreamChunk per piece, and
// returns the complete text once the stream ends.
//
// It stops early when ctx is done, when fn returns an error, or when the
// stream reports one. Stream errors are wrapped with the Stream kind; errors
// from fn and ctx are returned unchanged.
func Accumulate(ctx context.Context, origin string, pieces *stream.Stream[string], fn func(*StreamChunk) error) (result string, err error) {
	acc := NewChunkAccumulator(origin)

	ctx, span := NewAccumulateSpan(ctx, acc)
	defer func() {
		if err != nil {
			span.OnError(err)
		}
		span.OnEnd(acc)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return acc.Text(), err
		}
		if !pieces.Next() {
			break
		}

		chunk := acc.Add(pieces.Current())
		span.OnChunk()

		if fn != nil {
			if err := fn(chunk); err != nil {
				return acc.Text(), err
			}
		}
	}

	if err := pieces.Err(); err != nil {
		return acc.Text(), NewStreamError(err)
	}
	return acc.Text(), nil
}
