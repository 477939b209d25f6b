package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
)

func newTestLimiter(t *testing.T, requests int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, config.RateLimitConfig{Requests: requests, Window: window}), mr
}

func TestLimiterAllowsWithinWindow(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, 10*time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}
}

func TestLimiterBlocksOverLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, 10*time.Second)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}

	res, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesSubjects(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, 10*time.Second)
	ctx := context.Background()

	res, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	res, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLimiterFailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, 10*time.Second)
	mr.Close()

	res, err := limiter.Allow(context.Background(), "user-1")
	assert.Error(t, err)
	assert.True(t, res.Allowed)
}
