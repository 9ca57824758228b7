package usage

import (
	"context"
	"time"

	domusage "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage/budget"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage/metrics"
)

// Service handles usage reporting.
type Service struct {
	cr  CreditReader
	now func() time.Time
}

// New creates a Service. cr can be nil (no budget tracking).
func New(cr CreditReader) *Service {
	return &Service{cr: cr, now: time.Now}
}

// GetReport builds a credit usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	if !period.IsValid() {
		period = domusage.PeriodTotal
	}
	var start, end int64
	if from, to := period.Bounds(s.now()); !from.IsZero() {
		start, end = from.UnixMilli(), to.UnixMilli()
	}

	if s.cr == nil {
		return domusage.NewReport(period, start, end, metrics.New(0, 0, 0), budget.FromUsage(0, 0, end))
	}

	requests, credits, hits := s.cr.Counters(period)
	limit := s.cr.Limit(period)
	remaining := s.cr.Remaining(period)
	exhausted := limit > 0 && remaining <= 0

	return domusage.NewReport(period, start, end,
		metrics.New(requests, credits, hits),
		budget.New(limit, remaining, exhausted, end),
	)
}
