package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	l := NewLoginLimiter(fc, 3, 15*time.Minute)

	for i := 0; i < 2; i++ {
		require.NoError(t, l.Fail(ctx, "10.0.0.1"))
		wait, err := l.Blocked(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.Zero(t, wait)
	}

	require.NoError(t, l.Fail(ctx, "10.0.0.1"))
	wait, err := l.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, wait)

	other, err := l.Blocked(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.Zero(t, other, "limits are per client")
}

func TestLoginLimiter_WindowStartsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	l := NewLoginLimiter(fc, 5, time.Minute)

	require.NoError(t, l.Fail(ctx, "ip"))
	fc.ttl["login_attempts:ip"] = 20 * time.Second
	require.NoError(t, l.Fail(ctx, "ip"))

	require.Equal(t, 20*time.Second, fc.ttl["login_attempts:ip"], "later failures must not extend the window")
}

func TestLoginLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	l := NewLoginLimiter(newFakeClient(), 1, time.Minute)

	require.NoError(t, l.Fail(ctx, "ip"))
	wait, _ := l.Blocked(ctx, "ip")
	require.Positive(t, wait)

	require.NoError(t, l.Reset(ctx, "ip"))
	wait, err := l.Blocked(ctx, "ip")
	require.NoError(t, err)
	require.Zero(t, wait)
}

func TestLoginLimiter_PropagatesErrors(t *testing.T) {
	fc := newFakeClient()
	fc.err = errors.New("connection refused")
	l := NewLoginLimiter(fc, 1, time.Minute)

	_, err := l.Blocked(context.Background(), "ip")
	require.Error(t, err)
	require.Error(t, l.Fail(context.Background(), "ip"))
}
