package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient points at a closed local port so every command fails fast.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBackendErrorsFallBackToCompute(t *testing.T) {
	backend := NewRedisBackend(unreachableClient(t))
	c := New(backend)

	_, _, err := backend.Load(context.Background(), "k")
	assert.Error(t, err)

	v, hit, err := Memoize(context.Background(), c, "k", 0, func() (int, error) { return 9, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 9, v)

	assert.Error(t, c.Clear(context.Background()))
}

func TestNewRedisClientPingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0)
	assert.ErrorContains(t, err, "failed to connect to redis")
}
