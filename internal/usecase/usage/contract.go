package usage

import domusage "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage"

// CreditReader provides read-only access to credit budget state.
type CreditReader interface {
	Limit(period domusage.Period) int64
	Remaining(period domusage.Period) int64
	Counters(period domusage.Period) (requests, credits, cacheHits int64)
}
