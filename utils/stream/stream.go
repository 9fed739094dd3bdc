package stream

// Stream represents a generic stream of data.
type Stream[T any] struct {
	C    <-chan T
	errC <-chan error

	curr T
	err  error
}

func New[T any](c <-chan T, errC <-chan error) *Stream[T] {
	return &Stream[T]{
		C:    c,
		errC: errC,
	}
}

// FromSlice returns a stream that yields items in order and then ends without error.
func FromSlice[T any](items []T) *Stream[T] {
	c := make(chan T, len(items))
	for _, item := range items {
		c <- item
	}
	close(c)
	return New(c, nil)
}

// Next advances the stream to the next item.
// It returns false if there are no more items or an error occurred.
func (s *Stream[T]) Next() bool {
	select {
	case event, ok := <-s.C:
		if !ok {
			// Channel closed, check for error (non-blocking)
			select {
			case err := <-s.errC:
				s.err = err
			default:
				// No error available
			}
			return false
		}
		s.curr = event
		return true
	case err, ok := <-s.errC:
		if !ok {
			// Error channel closed first; keep draining items.
			s.errC = nil
			return s.Next()
		}
		s.err = err
		return false
	}
}

// Current returns the current item in the stream.
func (s *Stream[T]) Current() T {
	return s.curr
}

// Err returns the error encountered during streaming, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// Collect drains the stream into a slice.
func Collect[T any](s *Stream[T]) ([]T, error) {
	var items []T
	for s.Next() {
		items = append(items, s.Current())
	}
	return items, s.Err()
}
