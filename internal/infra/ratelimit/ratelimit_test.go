package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cycle-advisor/internal/infra/config"
)

func TestMemoryLimiterBurstAndRefill(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	require.False(t, ok)

	// Other clients have their own bucket.
	ok, _ = l.Allow(ctx, "10.0.0.2")
	require.True(t, ok)

	now = now.Add(time.Second)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	require.True(t, ok)
}

func TestMemoryLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1})
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "a")
	now = now.Add(10 * time.Minute)
	_, _ = l.Allow(context.Background(), "b")

	require.NotContains(t, l.visitors, "a")
	require.Contains(t, l.visitors, "b")
}

func TestValkeyWindowKey(t *testing.T) {
	l := &ValkeyLimiter{prefix: "cycle:ratelimit", limit: 10}
	at := time.Unix(1_700_000_040, 0)
	require.Equal(t, "cycle:ratelimit:10.0.0.1:28333334", l.windowKey("10.0.0.1", at))
	require.Equal(t, l.windowKey("x", at), l.windowKey("x", at.Add(59*time.Second)))
	require.NotEqual(t, l.windowKey("x", at), l.windowKey("x", at.Add(60*time.Second)))
}
