package memory

import (
	"context"
	"sync"
	"time"
)

type attemptState struct {
	count        int
	firstAttempt time.Time
}

// LoginLimiter counts failed logins per client in a fixed window held in
// process memory. It is used when no shared Redis is configured.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attemptState
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	lastSweep   time.Time
}

// NewLoginLimiter returns a limiter locking a client out for the rest of the
// window once it reaches maxAttempts failures.
func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts:    make(map[string]*attemptState),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

func (l *LoginLimiter) Blocked(_ context.Context, key string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[key]
	if !ok {
		return 0, nil
	}
	elapsed := l.now().Sub(state.firstAttempt)
	if elapsed >= l.window {
		delete(l.attempts, key)
		return 0, nil
	}
	if state.count < l.maxAttempts {
		return 0, nil
	}
	return l.window - elapsed, nil
}

func (l *LoginLimiter) Fail(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	state, ok := l.attempts[key]
	if !ok || now.Sub(state.firstAttempt) >= l.window {
		state = &attemptState{firstAttempt: now}
		l.attempts[key] = state
	}
	state.count++
	return nil
}

func (l *LoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
	return nil
}

// sweep drops windows that have run out, at most once per window.
// Callers hold l.mu.
func (l *LoginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key, state := range l.attempts {
		if now.Sub(state.firstAttempt) >= l.window {
			delete(l.attempts, key)
		}
	}
}
