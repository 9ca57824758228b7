// Package ratelimit implements a fixed-window request limiter per subject.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// Limiter allows at most limit hits per subject per window.
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewLimiter creates a limiter. A limit <= 0 disables limiting.
func NewLimiter(store Store, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// Allow registers a hit for subject. Store failures fail open.
func (l *Limiter) Allow(ctx context.Context, subject string) (Decision, error) {
	if l.limit <= 0 {
		return Decision{Allowed: true, Remaining: -1}, nil
	}

	now := l.now().UTC()
	start := now.Truncate(l.window)
	d := Decision{Limit: l.limit, ResetAt: start.Add(l.window)}

	key := fmt.Sprintf("%sratelimit:%s:%d", domain.KeyPrefix, subject, start.Unix())
	n, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		l.logger.Warn("Rate limit store unavailable, allowing request",
			zap.String("subject", subject), zap.Error(err))
		d.Allowed = true
		d.Remaining = l.limit
		return d, nil
	}

	d.Remaining = max(l.limit-n, 0)
	if n > l.limit {
		metrics.RateLimitedTotal.Inc()
		return d, fmt.Errorf("%w: %d requests per %s", domain.ErrRateLimited, l.limit, l.window)
	}
	d.Allowed = true
	return d, nil
}
