package domain

import (
	"context"
	"sync"
)

type creditUsageKey struct{}

// CreditUsage collects provider credit consumption for a single HTTP request.
// The handler puts it into the context, the enrichment chain writes to it,
// and the handler reads it back for response headers.
type CreditUsage struct {
	mu        sync.Mutex
	credits   int
	cacheHits int
}

// NewContextWithCreditUsage returns a context with a credit usage collector.
func NewContextWithCreditUsage(ctx context.Context) (context.Context, *CreditUsage) {
	u := &CreditUsage{}
	return context.WithValue(ctx, creditUsageKey{}, u), u
}

// CreditUsageFromContext extracts the collector from context. Returns nil if not set.
func CreditUsageFromContext(ctx context.Context) *CreditUsage {
	u, _ := ctx.Value(creditUsageKey{}).(*CreditUsage)
	return u
}

// AddCredits records phrases billed by the provider.
func (u *CreditUsage) AddCredits(n int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.credits += n
	u.mu.Unlock()
}

// AddCacheHits records phrases served from the metric cache.
func (u *CreditUsage) AddCacheHits(n int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.cacheHits += n
	u.mu.Unlock()
}

// Credits returns billed phrases.
func (u *CreditUsage) Credits() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.credits
}

// CacheHits returns phrases served from cache.
func (u *CreditUsage) CacheHits() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cacheHits
}
