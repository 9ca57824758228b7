package enrichment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	domusage "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
)

// Budget is the local interface for credit enforcement.
type Budget interface {
	Check(ctx context.Context, credits int64) error
	RecordCall(credits int64)
	Remaining(period domusage.Period) int64
}

// InstrumentedEnricher wraps the provider client with the batch ceiling,
// credit budget enforcement and logging.
// Transport metrics (requests, duration) are recorded in transport/kwprovider.
type InstrumentedEnricher struct {
	inner  domain.Enricher
	budget Budget
	logger *zap.Logger
}

// NewInstrumentedEnricher wraps an enricher. budget may be nil (unlimited).
func NewInstrumentedEnricher(inner domain.Enricher, budget Budget, logger *zap.Logger) *InstrumentedEnricher {
	return &InstrumentedEnricher{inner: inner, budget: budget, logger: logger}
}

// Enrich checks the batch and budget, delegates, and records billed credits.
func (e *InstrumentedEnricher) Enrich(ctx context.Context, q domain.EnrichmentQuery) ([]keyword.Metric, error) {
	n := len(q.Phrases)
	if n == 0 {
		return nil, nil
	}
	if n > domcand.ProviderBatchCeiling {
		return nil, fmt.Errorf("%w: %d phrases exceed the provider batch ceiling of %d",
			domain.ErrInvalidRequest, n, domcand.ProviderBatchCeiling)
	}

	if e.budget != nil {
		if err := e.budget.Check(ctx, int64(n)); err != nil {
			e.logger.Error("Credit budget exceeded", zap.Int("batch_size", n), zap.Error(err))
			return nil, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	found, err := e.inner.Enrich(ctx, q)
	duration := time.Since(start)
	if err != nil {
		e.logger.Error("Keyword provider request failed",
			zap.Int("batch_size", n),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err //nolint:wrapcheck // provider errors carry stage and status already
	}

	metrics.ProviderPhrasesTotal.Add(float64(n))
	domain.CreditUsageFromContext(ctx).AddCredits(n)
	if e.budget != nil {
		e.budget.RecordCall(int64(n))
		remaining := metrics.BudgetCreditsRemaining
		remaining.WithLabelValues("daily").Set(float64(e.budget.Remaining(domusage.PeriodDay)))
		remaining.WithLabelValues("monthly").Set(float64(e.budget.Remaining(domusage.PeriodMonth)))
	}

	e.logger.Debug("Keyword provider request completed",
		zap.Int("batch_size", n),
		zap.Int("rows", len(found)),
		zap.Duration("duration", duration),
	)
	return found, nil
}
