package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-hint/internal/config"
)

func TestNoopAllows(t *testing.T) {
	for range 100 {
		assert.True(t, Noop.Allow(context.Background(), "x"))
	}
}

func TestKey(t *testing.T) {
	l := NewRedis(nil, 5, 10*time.Second)
	assert.Equal(t, "rl:10:hint:1.2.3.4", l.key("hint:1.2.3.4"))
}

func TestFromConfigWithoutRedis(t *testing.T) {
	l, closeFn := FromConfig(context.Background(), nil, config.Hints{Limit: 1, Window: time.Second})
	assert.Equal(t, Noop, l)
	assert.NoError(t, closeFn())
}

func TestFailOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	l := NewRedis(client, 0, time.Second)
	assert.True(t, l.Allow(context.Background(), "unreachable"))
}

func TestRedisWindow(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	l := NewRedis(client, 2, time.Minute)
	ident := uuid.NewString()
	ctx := context.Background()
	assert.True(t, l.Allow(ctx, ident))
	assert.True(t, l.Allow(ctx, ident))
	assert.False(t, l.Allow(ctx, ident))

	ttl, err := client.TTL(ctx, l.key(ident)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
