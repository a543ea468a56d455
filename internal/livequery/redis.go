package livequery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// topicPrefix namespaces chatline channels on a shared Redis.
	topicPrefix    = "chatline:"
	changedPayload = "changed"
)

// RedisNotifier fans change signals out through Redis pub/sub so writers and
// subscribers may live in different processes.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier parses redisURL (e.g. "redis://localhost:6379/0"), connects
// and pings the server.
func NewRedisNotifier(redisURL string) (*RedisNotifier, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL cannot be empty")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL '%s': %w", redisURL, err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at '%s': %w", redisURL, err)
	}

	return &RedisNotifier{client: client}, nil
}

func (n *RedisNotifier) Publish(ctx context.Context, topic string) error {
	if err := n.client.Publish(ctx, topicPrefix+topic, changedPayload).Err(); err != nil {
		return fmt.Errorf("failed to publish change on '%s': %w", topic, err)
	}
	return nil
}

func (n *RedisNotifier) Watch(ctx context.Context, topic string) (<-chan struct{}, func(), error) {
	ps := n.client.Subscribe(ctx, topicPrefix+topic)
	// Receive blocks until the subscription is confirmed, so no Publish issued
	// after Watch returns can be missed.
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to '%s': %w", topic, err)
	}

	out := make(chan struct{}, 1)
	done := make(chan struct{})
	msgs := ps.Channel()

	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	var once sync.Once
	release := func() {
		once.Do(func() {
			close(done)
			ps.Close()
		})
	}
	return out, release, nil
}

func (n *RedisNotifier) Close() error {
	if n.client != nil {
		return n.client.Close()
	}
	return nil
}
