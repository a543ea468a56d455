// Package livequery turns change notifications into live query subscriptions:
// every notification on a topic re-runs the query and delivers a full snapshot.
package livequery

import (
	"context"
	"sync"
)

// Notifier carries "something under this topic changed" signals between writers
// and live subscriptions. Signals carry no payload; subscribers re-query.
type Notifier interface {
	Publish(ctx context.Context, topic string) error
	// Watch returns a channel that receives a value after each Publish on topic,
	// and a function that releases the watch. Signals may be coalesced.
	Watch(ctx context.Context, topic string) (<-chan struct{}, func(), error)
}

// MemoryNotifier is an in-process Notifier.
type MemoryNotifier struct {
	mu       sync.Mutex
	nextID   int
	watchers map[string]map[int]chan struct{}
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{watchers: make(map[string]map[int]chan struct{})}
}

func (n *MemoryNotifier) Publish(_ context.Context, topic string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.watchers[topic] {
		select {
		case ch <- struct{}{}:
		default:
			// a signal is already pending for this watcher
		}
	}
	return nil
}

func (n *MemoryNotifier) Watch(_ context.Context, topic string) (<-chan struct{}, func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan struct{}, 1)
	if n.watchers[topic] == nil {
		n.watchers[topic] = make(map[int]chan struct{})
	}
	n.watchers[topic][id] = ch

	var once sync.Once
	release := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.watchers[topic], id)
			if len(n.watchers[topic]) == 0 {
				delete(n.watchers, topic)
			}
		})
	}
	return ch, release, nil
}

// Watchers returns the number of live watches on topic.
func (n *MemoryNotifier) Watchers(topic string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.watchers[topic])
}
