package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
)

// Limiter implements a fixed-window counter in Redis, shared across
// instances. One key per subject per window; the first increment sets
// the expiry, so an idle subject costs nothing.
type Limiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

// Result reports a limiter decision.
type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is how long until the current window resets. Only
	// meaningful when Allowed is false.
	RetryAfter time.Duration
}

func New(client *redis.Client, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		client:   client,
		requests: cfg.Requests,
		window:   cfg.Window,
	}
}

// Allow consumes one request for the subject. Redis being unreachable
// fails open: a degraded limiter should not take the API down with it.
func (l *Limiter) Allow(ctx context.Context, subject string) (*Result, error) {
	window := time.Now().Unix() / int64(l.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", subject, window)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return &Result{Allowed: true, Remaining: l.requests}, fmt.Errorf("rate limit check failed: %w", err)
	}

	n := int(count.Val())
	if n > l.requests {
		ttl, err := l.client.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return &Result{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}

	return &Result{Allowed: true, Remaining: l.requests - n}, nil
}
