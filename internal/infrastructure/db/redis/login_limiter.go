package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per client in a fixed window.
// Key format: login_attempts:<client key>
type LoginLimiter struct {
	client      Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Blocked returns how long key must wait before trying again, zero when it
// may try now.
func (l *LoginLimiter) Blocked(ctx context.Context, key string) (time.Duration, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("login attempts: %w", err)
	}
	if n < l.maxAttempts {
		return 0, nil
	}

	ttl, err := l.client.TTL(ctx, l.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("login attempts ttl: %w", err)
	}
	if ttl <= 0 {
		ttl = l.window
	}
	return ttl, nil
}

// Fail records a failed attempt. The window starts at the first failure.
func (l *LoginLimiter) Fail(ctx context.Context, key string) error {
	n, err := l.client.Incr(ctx, l.key(key)).Result()
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, l.key(key), l.window).Err(); err != nil {
			return fmt.Errorf("record login failure: %w", err)
		}
	}
	return nil
}

// Reset forgets the failures recorded for key.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *LoginLimiter) key(client string) string {
	return "login_attempts:" + client
}
