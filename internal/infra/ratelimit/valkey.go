package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

const windowSeconds = 60

// ValkeyLimiter shares a fixed one-minute window per client across replicas.
type ValkeyLimiter struct {
	client valkey.Client
	prefix string
	limit  int64
	now    func() time.Time
}

// NewValkeyLimiter allows up to requestsPerMinute requests per key and minute.
func NewValkeyLimiter(client valkey.Client, prefix string, requestsPerMinute int) *ValkeyLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &ValkeyLimiter{client: client, prefix: prefix, limit: int64(requestsPerMinute), now: time.Now}
}

// Allow increments the counter of the current window and compares it with the limit.
func (l *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.windowKey(key, l.now())
	count, err := l.client.Do(ctx, l.client.B().Incr().Key(windowKey).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", windowKey, err)
	}
	if count == 1 {
		// two windows so late increments never resurrect a key without expiry
		if err := l.client.Do(ctx, l.client.B().Expire().Key(windowKey).Seconds(2*windowSeconds).Build()).Error(); err != nil {
			return false, fmt.Errorf("expire %s: %w", windowKey, err)
		}
	}
	return count <= l.limit, nil
}

func (l *ValkeyLimiter) windowKey(key string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, now.Unix()/windowSeconds)
}

// Close releases the underlying client.
func (l *ValkeyLimiter) Close() {
	l.client.Close()
}
