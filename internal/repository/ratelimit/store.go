package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// store is the consumer interface for window counters (ISP).
type store interface {
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store keeps fixed-window counters in the KV store so limits hold across replicas.
type Store struct {
	store store
}

// New creates a window counter store.
func New(s store) *Store {
	return &Store{store: s}
}

// Incr bumps the window counter and bounds its lifetime on first use.
func (s *Store) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := s.store.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, fmt.Errorf("ratelimit INCRBY %s: %w", key, err)
	}
	if n == 1 {
		if err := s.store.Expire(ctx, key, ttl, true); err != nil {
			return n, fmt.Errorf("ratelimit EXPIRE %s: %w", key, err)
		}
	}
	return n, nil
}
