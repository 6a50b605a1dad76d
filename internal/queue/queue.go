package queue

import "context"

type Queue[T any] struct {
	ch chan T
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{ch: make(chan T)}
}

// NewBufferedQueue lets up to size values be put without a waiting taker.
func NewBufferedQueue[T any](size int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, size)}
}

func (q *Queue[T]) Put(x T) {
	q.ch <- x
}

// PutContext is Put that gives up when ctx is done.
func (q *Queue[T]) PutContext(ctx context.Context, x T) error {
	select {
	case q.ch <- x:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue[T]) Take() T {
	return <-q.ch
}

func (q *Queue[T]) AsChan() chan T {
	return q.ch
}
