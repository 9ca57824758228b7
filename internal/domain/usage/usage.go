package usage

import (
	"fmt"
	"time"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage/budget"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage/metrics"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// IsValid checks if the period is supported.
func (p Period) IsValid() bool {
	return p == PeriodDay || p == PeriodMonth || p == PeriodTotal
}

// ParsePeriod parses a period name. Empty input means PeriodMonth.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodMonth, nil
	}
	p := Period(s)
	if !p.IsValid() {
		return "", fmt.Errorf("period must be one of day, month, total, got %q", s)
	}
	return p, nil
}

// Bounds returns the UTC window containing now. Day and month windows are
// half-open [start, end). The total period has no window and returns zero times.
func (p Period) Bounds(now time.Time) (start, end time.Time) {
	now = now.UTC()
	switch p {
	case PeriodDay:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 0, 1)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

// Report is a keyword provider credit usage report for one period.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	metrics     metrics.Metrics
	budget      budget.Budget
}

// NewReport creates a usage report. start and end are unix millis, 0 for the total period.
func NewReport(period Period, start, end int64, m metrics.Metrics, b budget.Budget) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		metrics:     m,
		budget:      b,
	}
}

func (r *Report) Period() Period           { return r.period }
func (r *Report) PeriodStart() int64       { return r.periodStart }
func (r *Report) PeriodEnd() int64         { return r.periodEnd }
func (r *Report) Metrics() metrics.Metrics { return r.metrics }
func (r *Report) Budget() budget.Budget    { return r.budget }

// Windowed reports whether the report covers a bounded window.
func (r *Report) Windowed() bool { return r.periodStart > 0 }
