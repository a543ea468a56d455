package livequery

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var redisURL string

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Printf("failed to start redis container, redis tests will be skipped: %s", err)
		os.Exit(m.Run())
	}

	redisURL, err = container.ConnectionString(ctx)
	if err != nil {
		log.Printf("failed to get redis connection string: %v", err)
	}

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func Test_RedisNotifier(t *testing.T) {
	if redisURL == "" {
		t.Skip("redis container not available")
	}

	n, err := NewRedisNotifier(redisURL)
	require.NoError(t, err)
	defer n.Close()

	signals, release, err := n.Watch(testContext(t), "conversations:u1")
	require.NoError(t, err)
	defer release()

	require.NoError(t, n.Publish(testContext(t), "conversations:u1"))
	select {
	case <-signals:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal through redis")
	}

	stream, err := Subscribe(testContext(t), n, "messages:c1", constant("m"))
	require.NoError(t, err)
	<-stream.C()
	require.NoError(t, n.Publish(testContext(t), "messages:c1"))
	select {
	case snap := <-stream.C():
		require.Equal(t, []string{"m"}, snap.Items)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a snapshot after publish")
	}
	stream.Cancel()
}

func Test_NewRedisNotifierRejectsEmptyURL(t *testing.T) {
	_, err := NewRedisNotifier("")
	require.Error(t, err)
}
