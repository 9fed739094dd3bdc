package flataitest

import (
	"context"
	"errors"

	flatai "github.com/flat-ai/flat-go"
	"github.com/flat-ai/flat-go/utils/stream"
)

// MockGenerateResult is a result for a mocked `Generate` call.
// It can either be a code object or an error.
type MockGenerateResult struct {
	Code  *flatai.CodeObject
	Error error
}

// NewMockGenerateResultCode constructs a generate result with a code object.
func NewMockGenerateResultCode(code flatai.CodeObject) MockGenerateResult {
	return MockGenerateResult{
		Code: &code,
	}
}

// NewMockGenerateResultError constructs a generate result that yields an error.
func NewMockGenerateResultError(err error) MockGenerateResult {
	return MockGenerateResult{
		Error: err,
	}
}

// MockStreamResult is a result for a mocked `Stream` call.
// Pieces are delivered in order; a non-nil StreamError is reported by the
// stream after the pieces, while Error fails the call itself.
type MockStreamResult struct {
	Pieces      []string
	StreamError error
	Error       error
}

// NewMockStreamResultPieces constructs a stream result with pieces.
func NewMockStreamResultPieces(pieces ...string) MockStreamResult {
	return MockStreamResult{
		Pieces: pieces,
	}
}

// NewMockStreamResultError constructs a stream result that fails the call.
func NewMockStreamResultError(err error) MockStreamResult {
	return MockStreamResult{
		Error: err,
	}
}

// MockSource is a mock piece and code source for testing purposes
// that tracks prompts and returns predefined outputs.
type MockSource struct {
	mockedGenerateResults []MockGenerateResult
	mockedStreamResults   []MockStreamResult

	trackedGeneratePrompts []string
	trackedStreamPrompts   []string
}

var (
	_ flatai.PieceSource = (*MockSource)(nil)
	_ flatai.CodeSource  = (*MockSource)(nil)
)

// NewMockSource constructs a mock source instance.
func NewMockSource() *MockSource {
	return &MockSource{
		mockedGenerateResults:  []MockGenerateResult{},
		mockedStreamResults:    []MockStreamResult{},
		trackedGeneratePrompts: []string{},
		trackedStreamPrompts:   []string{},
	}
}

// Generate returns the next mocked generate result, tracking the prompt.
func (m *MockSource) Generate(_ context.Context, prompt string) (flatai.CodeObject, error) {
	if len(m.mockedGenerateResults) == 0 {
		return flatai.CodeObject{}, errors.New("no mocked generate results available")
	}

	result := m.mockedGenerateResults[0]
	m.mockedGenerateResults = m.mockedGenerateResults[1:]
	m.trackedGeneratePrompts = append(m.trackedGeneratePrompts, prompt)

	if result.Error != nil {
		return flatai.CodeObject{}, result.Error
	}

	return *result.Code, nil
}

// Stream returns the next mocked stream result, tracking the prompt.
// Pieces are delivered by a goroutine that exits once every piece has been
// read or ctx is done. A caller that stops reading early must cancel ctx to
// release it.
func (m *MockSource) Stream(ctx context.Context, prompt string) (*stream.Stream[string], error) {
	if len(m.mockedStreamResults) == 0 {
		return nil, errors.New("no mocked stream results available")
	}

	result := m.mockedStreamResults[0]
	m.mockedStreamResults = m.mockedStreamResults[1:]
	m.trackedStreamPrompts = append(m.trackedStreamPrompts, prompt)

	if result.Error != nil {
		return nil, result.Error
	}

	eventChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(eventChan)

		for _, piece := range result.Pieces {
			if err := ctx.Err(); err != nil {
				errChan <- err
				return
			}
			select {
			case eventChan <- piece:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
		if result.StreamError != nil {
			errChan <- result.StreamError
		}
	}()

	return stream.New(eventChan, errChan), nil
}

// EnqueueGenerateResult enqueues generate results to be returned sequentially.
func (m *MockSource) EnqueueGenerateResult(results ...MockGenerateResult) {
	m.mockedGenerateResults = append(m.mockedGenerateResults, results...)
}

// EnqueueStreamResult enqueues stream results to be returned sequentially.
func (m *MockSource) EnqueueStreamResult(results ...MockStreamResult) {
	m.mockedStreamResults = append(m.mockedStreamResults, results...)
}

// TrackedGeneratePrompts returns the prompts received by Generate.
func (m *MockSource) TrackedGeneratePrompts() []string {
	return m.trackedGeneratePrompts
}

// TrackedStreamPrompts returns the prompts received by Stream.
func (m *MockSource) TrackedStreamPrompts() []string {
	return m.trackedStreamPrompts
}

// Reset clears tracked prompts without touching enqueued results.
func (m *MockSource) Reset() {
	m.trackedGeneratePrompts = []string{}
	m.trackedStreamPrompts = []string{}
}

// Restore clears enqueued results and tracked prompts, returning the mock to its initial state.
func (m *MockSource) Restore() {
	m.mockedGenerateResults = []MockGenerateResult{}
	m.mockedStreamResults = []MockStreamResult{}
	m.Reset()
}
