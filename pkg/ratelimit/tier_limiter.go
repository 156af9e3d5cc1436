// Package ratelimit provides a Redis-backed sliding window rate limiter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter settings.
type Config struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

// DefaultConfig limits each caller to 60 admin requests per minute.
func DefaultConfig() *Config {
	return &Config{
		RequestsPerWindow: 60,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:admin",
	}
}

// SlidingWindowLimiter counts requests per key in a rolling time window using
// a Redis sorted set. When Redis is unavailable the limiter fails open.
type SlidingWindowLimiter struct {
	client *redis.Client
	cfg    *Config
}

// NewSlidingWindowLimiter creates a limiter backed by the given Redis client.
func NewSlidingWindowLimiter(client *redis.Client, cfg *Config) *SlidingWindowLimiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SlidingWindowLimiter{client: client, cfg: cfg}
}

// Result reports the outcome of a limiter check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Allow records a request for key and reports whether it is within the limit.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	if l.client == nil {
		return &Result{Allowed: true, Remaining: l.cfg.RequestsPerWindow}, nil
	}

	now := time.Now()
	windowStart := now.Add(-l.cfg.Window)
	redisKey := fmt.Sprintf("%s:%s", l.cfg.KeyPrefix, key)

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.cfg.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open: a broken limiter must not take the admin surface down.
		return &Result{Allowed: true, Remaining: l.cfg.RequestsPerWindow}, err
	}

	count := int(countCmd.Val())
	remaining := l.cfg.RequestsPerWindow - count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   count <= l.cfg.RequestsPerWindow,
		Remaining: remaining,
		ResetIn:   l.cfg.Window,
	}, nil
}
