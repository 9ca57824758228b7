// Package enrichment guards the keyword provider with a credit budget.
package enrichment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	domusage "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage"
)

// BudgetAction defines behavior when the credit budget is exceeded.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but allows the request.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject blocks the request.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetStore is the persistence interface for usage counters.
type BudgetStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

const persistTimeout = 2 * time.Second

// Counter fields kept per period.
const (
	fieldRequests  = "requests"
	fieldCredits   = "credits"
	fieldCacheHits = "cache_hits"
)

type counters struct {
	requests  int64
	credits   int64
	cacheHits int64
}

func (c *counters) field(name string) *int64 {
	switch name {
	case fieldRequests:
		return &c.requests
	case fieldCredits:
		return &c.credits
	default:
		return &c.cacheHits
	}
}

// CreditBudget tracks provider credits (one per phrase sent) in memory,
// with daily and monthly limits and write-behind persistence.
// Check never touches the store.
type CreditBudget struct {
	mu             sync.Mutex
	dailyLimit     int64
	monthlyLimit   int64
	action         BudgetAction
	day            counters
	month          counters
	total          counters
	lastDayReset   time.Time
	lastMonthReset time.Time
	store          BudgetStore
	logger         *zap.Logger
	now            func() time.Time
}

// NewCreditBudget creates a credit budget. A zero limit means unlimited.
func NewCreditBudget(dailyLimit, monthlyLimit int64, action BudgetAction, logger *zap.Logger) *CreditBudget {
	b := &CreditBudget{
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		action:       action,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
	b.lastDayReset = truncateToDay(b.now())
	b.lastMonthReset = truncateToMonth(b.now())
	return b
}

// WithClock replaces the time source.
func (b *CreditBudget) WithClock(now func() time.Time) *CreditBudget {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = func() time.Time { return now().UTC() }
	b.lastDayReset = truncateToDay(b.now())
	b.lastMonthReset = truncateToMonth(b.now())
	return b
}

// WithStore attaches a persistence store and loads current counters.
func (b *CreditBudget) WithStore(ctx context.Context, store BudgetStore) *CreditBudget {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = store
	now := b.now()
	for _, f := range []string{fieldRequests, fieldCredits, fieldCacheHits} {
		b.load(ctx, dailyKey(f, now), b.day.field(f))
		b.load(ctx, monthlyKey(f, now), b.month.field(f))
		b.load(ctx, totalKey(f), b.total.field(f))
	}

	b.logger.Info("Credit budget loaded from store",
		zap.Int64("daily_used", b.day.credits),
		zap.Int64("monthly_used", b.month.credits),
		zap.Int64("total_used", b.total.credits),
	)
	return b
}

func (b *CreditBudget) load(ctx context.Context, key string, dst *int64) {
	val, err := b.store.Get(ctx, key)
	if err != nil {
		b.logger.Warn("Failed to load usage counter from store", zap.String("key", key), zap.Error(err))
		return
	}
	*dst = val
}

func dailyKey(field string, t time.Time) string {
	return fmt.Sprintf("%susage:%s:daily:%s", domain.KeyPrefix, field, t.Format("2006-01-02"))
}

func monthlyKey(field string, t time.Time) string {
	return fmt.Sprintf("%susage:%s:monthly:%s", domain.KeyPrefix, field, t.Format("2006-01"))
}

func totalKey(field string) string {
	return fmt.Sprintf("%susage:%s:total", domain.KeyPrefix, field)
}

// Check verifies that spending credits more stays within the limits.
func (b *CreditBudget) Check(_ context.Context, credits int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfNeeded()

	dailyExceeded := b.dailyLimit > 0 && b.day.credits+credits > b.dailyLimit
	monthlyExceeded := b.monthlyLimit > 0 && b.month.credits+credits > b.monthlyLimit
	if !dailyExceeded && !monthlyExceeded {
		return nil
	}

	if b.action == BudgetActionReject {
		return fmt.Errorf("%w: %d credits requested, daily %d/%d, monthly %d/%d",
			domain.ErrBudgetExceeded, credits,
			b.day.credits, b.dailyLimit, b.month.credits, b.monthlyLimit)
	}

	b.logger.Warn("Credit budget exceeded",
		zap.Int64("requested", credits),
		zap.Int64("daily_used", b.day.credits),
		zap.Int64("daily_limit", b.dailyLimit),
		zap.Int64("monthly_used", b.month.credits),
		zap.Int64("monthly_limit", b.monthlyLimit),
	)
	return nil
}

// RecordCall registers one provider call that billed credits phrases.
func (b *CreditBudget) RecordCall(credits int64) {
	b.add(map[string]int64{fieldRequests: 1, fieldCredits: credits})
}

// RecordCacheHits registers phrases answered without the provider.
func (b *CreditBudget) RecordCacheHits(n int64) {
	if n <= 0 {
		return
	}
	b.add(map[string]int64{fieldCacheHits: n})
}

// add updates in-memory counters first, then writes behind to the store.
func (b *CreditBudget) add(deltas map[string]int64) {
	b.mu.Lock()
	b.resetIfNeeded()
	now := b.now()
	for f, d := range deltas {
		*b.day.field(f) += d
		*b.month.field(f) += d
		*b.total.field(f) += d
	}
	store := b.store
	b.mu.Unlock()

	if store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	for f, d := range deltas {
		for _, key := range []string{dailyKey(f, now), monthlyKey(f, now), totalKey(f)} {
			if err := store.IncrBy(ctx, key, d); err != nil {
				b.logger.Warn("Failed to persist usage counter", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

// Limit returns the credit cap for a period (0 if unlimited).
func (b *CreditBudget) Limit(period domusage.Period) int64 {
	switch period {
	case domusage.PeriodDay:
		return b.dailyLimit
	case domusage.PeriodMonth:
		return b.monthlyLimit
	default:
		return 0
	}
}

// Counters returns provider calls, billed credits and cache hits for a period.
func (b *CreditBudget) Counters(period domusage.Period) (requests, credits, cacheHits int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetIfNeeded()

	c := b.total
	switch period {
	case domusage.PeriodDay:
		c = b.day
	case domusage.PeriodMonth:
		c = b.month
	}
	return c.requests, c.credits, c.cacheHits
}

// Remaining returns credits left for a period (-1 if unlimited).
func (b *CreditBudget) Remaining(period domusage.Period) int64 {
	limit := b.Limit(period)
	if limit == 0 {
		return -1
	}
	_, used, _ := b.Counters(period)
	return max(limit-used, 0)
}

// resetIfNeeded zeroes counters when the day or month rolls over.
func (b *CreditBudget) resetIfNeeded() {
	now := b.now()
	today := truncateToDay(now)
	thisMonth := truncateToMonth(now)

	if today.After(b.lastDayReset) {
		b.day = counters{}
		b.lastDayReset = today
	}
	if thisMonth.After(b.lastMonthReset) {
		b.month = counters{}
		b.lastMonthReset = thisMonth
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
