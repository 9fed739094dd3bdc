package flatai

import (
	"context"

	"github.com/flat-ai/flat-go/utils/stream"
)

// PieceSource streams the text of a response one piece at a time.
type PieceSource interface {
	Stream(ctx context.Context, prompt string) (*stream.Stream[string], error)
}

// CodeSource answers a prompt with a complete CodeObject.
type CodeSource interface {
	Generate(ctx context.Context, prompt string) (CodeObject, error)
}
