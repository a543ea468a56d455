package livequery

import (
	"context"
)

// Snapshot is one full result of a live query. Err is set when the query
// failed; Items is then nil and the subscription stays open.
type Snapshot[T any] struct {
	Generation uint64
	Items      []T
	Err        error
}

type QueryFunc[T any] func(ctx context.Context) ([]T, error)

// Stream is a cancellable live query: it delivers a snapshot right away and
// again after every change signal on its topic, until cancelled.
type Stream[T any] struct {
	c      chan Snapshot[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// Subscribe opens a live query over topic. The returned stream lives until
// Cancel is called or ctx ends.
func Subscribe[T any](ctx context.Context, n Notifier, topic string, query QueryFunc[T]) (*Stream[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	signals, release, err := n.Watch(ctx, topic)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &Stream[T]{
		c:      make(chan Snapshot[T]),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(ctx, signals, release, query)
	return s, nil
}

func (s *Stream[T]) run(ctx context.Context, signals <-chan struct{}, release func(), query QueryFunc[T]) {
	defer close(s.done)
	defer close(s.c)
	defer release()

	for {
		items, err := query(ctx)
		if ctx.Err() != nil {
			return
		}

		select {
		case s.c <- Snapshot[T]{Items: items, Err: err}:
		case <-ctx.Done():
			return
		}

		select {
		case <-signals:
		case <-ctx.Done():
			return
		}
	}
}

// C is closed once the stream has stopped.
func (s *Stream[T]) C() <-chan Snapshot[T] { return s.c }

// Cancel stops the stream without waiting for it to wind down.
func (s *Stream[T]) Cancel() { s.cancel() }

// Done is closed after the stream released its watch.
func (s *Stream[T]) Done() <-chan struct{} { return s.done }
