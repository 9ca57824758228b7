package kwscout

import (
	"context"
	"time"

	domusage "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage"
)

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageReport contains provider credit usage for a time period.
type UsageReport struct {
	Period      UsagePeriod
	PeriodStart time.Time
	PeriodEnd   time.Time
	Metrics     UsageMetrics
	Budget      BudgetStatus
}

// UsageMetrics tracks provider credit consumption.
type UsageMetrics struct {
	ProviderRequests int64
	CreditsUsed      int64
	CacheHits        int64
}

// BudgetStatus tracks credit quota state. A zero limit means unlimited.
type BudgetStatus struct {
	CreditsLimit     int64
	CreditsRemaining int64
	IsExhausted      bool
	ResetsAt         time.Time // zero for PeriodTotal
}

// Usage returns a credit usage report for the given period.
// Observer always records success: the underlying use-case is in-memory
// and does not produce errors.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) UsageReport {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, nil) }()

	report := c.usageSvc.GetReport(ctx, domusage.Period(period))
	m := report.Metrics()
	b := report.Budget()

	return UsageReport{
		Period:      UsagePeriod(report.Period()),
		PeriodStart: millisToTime(report.PeriodStart()),
		PeriodEnd:   millisToTime(report.PeriodEnd()),
		Metrics: UsageMetrics{
			ProviderRequests: m.ProviderRequests(),
			CreditsUsed:      m.CreditsUsed(),
			CacheHits:        m.CacheHits(),
		},
		Budget: BudgetStatus{
			CreditsLimit:     b.CreditsLimit(),
			CreditsRemaining: b.CreditsRemaining(),
			IsExhausted:      b.IsExhausted(),
			ResetsAt:         millisToTime(b.ResetsAt()),
		},
	}
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
