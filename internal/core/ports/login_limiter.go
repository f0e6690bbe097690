package ports

import (
	"context"
	"time"
)

// LoginLimiter tracks failed login attempts per client key (typically the
// client IP).
type LoginLimiter interface {
	// Blocked returns how long key must wait before trying again, or zero.
	Blocked(ctx context.Context, key string) (time.Duration, error)
	// Fail records a failed attempt for key.
	Fail(ctx context.Context, key string) error
	// Reset forgets all attempts for key.
	Reset(ctx context.Context, key string) error
}
