package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per window key. Incr returns the counter after the
// increment; keys expire after ttl.
type Store interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
