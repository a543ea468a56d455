package livequery

import (
	"context"
	"sync"
	"sync/atomic"
)

// Slot holds at most one live stream. Opening a new stream cancels the
// previous one first, and every delivery is tagged with the generation it was
// opened under: snapshots from a superseded generation are dropped.
//
// A snapshot already handed to the callback when Replace runs may still
// finish; nothing is delivered from an old generation after that.
type Slot[T any] struct {
	mu     sync.Mutex
	gen    atomic.Uint64
	stream *Stream[T]
}

// Replace cancels the current stream, opens a new one with open and feeds its
// snapshots to onUpdate from a separate goroutine. onUpdate must not call
// Replace or Close on the same slot synchronously.
func (s *Slot[T]) Replace(ctx context.Context, open func(ctx context.Context) (*Stream[T], error), onUpdate func(Snapshot[T])) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	gen := s.gen.Add(1)

	stream, err := open(ctx)
	if err != nil {
		return gen, err
	}
	s.stream = stream

	go func() {
		for snap := range stream.C() {
			if s.gen.Load() != gen {
				continue
			}
			snap.Generation = gen
			onUpdate(snap)
		}
	}()
	return gen, nil
}

// Close cancels the current stream, if any, and invalidates its generation.
func (s *Slot[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.gen.Add(1)
}

func (s *Slot[T]) cancelLocked() {
	if s.stream != nil {
		s.stream.Cancel()
		s.stream = nil
	}
}

func (s *Slot[T]) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

func (s *Slot[T]) Generation() uint64 { return s.gen.Load() }
