package livequery

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func Test_MemoryNotifier(t *testing.T) {
	n := NewMemoryNotifier()

	signals, release, err := n.Watch(testContext(t), "messages:c1")
	require.NoError(t, err)
	assert.Equal(t, 1, n.Watchers("messages:c1"))

	t.Run("publish reaches watcher", func(t *testing.T) {
		require.NoError(t, n.Publish(testContext(t), "messages:c1"))
		select {
		case <-signals:
		case <-time.After(waitFor):
			t.Fatal("expected a signal")
		}
	})

	t.Run("signals coalesce", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.NoError(t, n.Publish(testContext(t), "messages:c1"))
		}
		<-signals
		select {
		case <-signals:
			t.Fatal("expected pending signals to be coalesced")
		default:
		}
	})

	t.Run("other topics are isolated", func(t *testing.T) {
		require.NoError(t, n.Publish(testContext(t), "messages:c2"))
		select {
		case <-signals:
			t.Fatal("unexpected signal from another topic")
		default:
		}
	})

	release()
	release()
	assert.Equal(t, 0, n.Watchers("messages:c1"))
}

func Test_SubscribeDeliversSnapshots(t *testing.T) {
	n := NewMemoryNotifier()

	var mu sync.Mutex
	items := []string{"a"}
	query := func(ctx context.Context) ([]string, error) {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), items...), nil
	}

	stream, err := Subscribe(testContext(t), n, "topic", query)
	require.NoError(t, err)

	first := <-stream.C()
	require.NoError(t, first.Err)
	assert.Equal(t, []string{"a"}, first.Items)

	mu.Lock()
	items = append(items, "b")
	mu.Unlock()
	require.NoError(t, n.Publish(testContext(t), "topic"))

	second := <-stream.C()
	assert.Equal(t, []string{"a", "b"}, second.Items)

	stream.Cancel()
	<-stream.Done()
	_, open := <-stream.C()
	assert.False(t, open)
	assert.Equal(t, 0, n.Watchers("topic"))
}

func Test_SubscribeQueryErrorKeepsStreamOpen(t *testing.T) {
	n := NewMemoryNotifier()
	var calls atomic.Int32
	query := func(ctx context.Context) ([]int, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("db down")
		}
		return []int{1}, nil
	}

	stream, err := Subscribe(testContext(t), n, "topic", query)
	require.NoError(t, err)
	defer stream.Cancel()

	snap := <-stream.C()
	assert.Error(t, snap.Err)

	require.NoError(t, n.Publish(testContext(t), "topic"))
	snap = <-stream.C()
	require.NoError(t, snap.Err)
	assert.Equal(t, []int{1}, snap.Items)
}

type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot[string]
}

func (r *recorder) record(s Snapshot[string]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []Snapshot[string] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot[string](nil), r.snaps...)
}

func constant(v string) QueryFunc[string] {
	return func(ctx context.Context) ([]string, error) { return []string{v}, nil }
}

func Test_SlotReplaceCancelsPrevious(t *testing.T) {
	n := NewMemoryNotifier()
	var slot Slot[string]
	rec := &recorder{}

	gen1, err := slot.Replace(testContext(t), func(ctx context.Context) (*Stream[string], error) {
		return Subscribe(ctx, n, "messages:c1", constant("c1"))
	}, rec.record)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)

	gen2, err := slot.Replace(testContext(t), func(ctx context.Context) (*Stream[string], error) {
		return Subscribe(ctx, n, "messages:c2", constant("c2"))
	}, rec.record)
	require.NoError(t, err)
	assert.Greater(t, gen2, gen1)

	require.Eventually(t, func() bool { return n.Watchers("messages:c1") == 0 }, waitFor, tick)
	assert.Equal(t, 1, n.Watchers("messages:c2"))

	require.NoError(t, n.Publish(testContext(t), "messages:c1"))
	require.NoError(t, n.Publish(testContext(t), "messages:c2"))
	require.Eventually(t, func() bool { return len(rec.all()) == 3 }, waitFor, tick)

	snaps := rec.all()
	assert.Equal(t, gen1, snaps[0].Generation)
	for _, s := range snaps[1:] {
		assert.Equal(t, gen2, s.Generation)
		assert.Equal(t, []string{"c2"}, s.Items)
	}

	slot.Close()
	assert.False(t, slot.Active())
	require.Eventually(t, func() bool { return n.Watchers("messages:c2") == 0 }, waitFor, tick)
}

func Test_SlotDropsSupersededDeliveries(t *testing.T) {
	var slot Slot[string]
	rec := &recorder{}

	// a stream whose cancellation has not taken effect yet
	stale := &Stream[string]{c: make(chan Snapshot[string], 1), cancel: func() {}, done: make(chan struct{})}
	_, err := slot.Replace(testContext(t), func(ctx context.Context) (*Stream[string], error) {
		return stale, nil
	}, rec.record)
	require.NoError(t, err)

	n := NewMemoryNotifier()
	_, err = slot.Replace(testContext(t), func(ctx context.Context) (*Stream[string], error) {
		return Subscribe(ctx, n, "fresh", constant("fresh"))
	}, rec.record)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)

	stale.c <- Snapshot[string]{Items: []string{"stale"}}
	close(stale.c)

	time.Sleep(50 * time.Millisecond)
	snaps := rec.all()
	require.Len(t, snaps, 1)
	assert.Equal(t, []string{"fresh"}, snaps[0].Items)
	slot.Close()
}

func Test_SlotOpenErrorLeavesSlotEmpty(t *testing.T) {
	var slot Slot[string]
	_, err := slot.Replace(testContext(t), func(ctx context.Context) (*Stream[string], error) {
		return nil, errors.New("redis unavailable")
	}, func(Snapshot[string]) {})
	require.Error(t, err)
	assert.False(t, slot.Active())
}
