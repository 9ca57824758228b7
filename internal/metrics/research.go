package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kwscout"

// Research pipeline Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Keyword provider enrichment calls by outcome",
		},
		[]string{"status"}, // "ok", "unauthorized", "quota", "rate_limited", "malformed", "error"
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Keyword provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)

	ProviderPhrasesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_phrases_total",
			Help:      "Phrases sent to the keyword provider",
		},
	)

	AICandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_candidates_total",
			Help:      "AI candidate expansions by result",
		},
		[]string{"result"}, // "ok", "failed", "timeout", "skipped"
	)

	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "Completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "model"},
	)

	MetricCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metric_cache_total",
			Help:      "Keyword metric cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	BudgetCreditsRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "budget_credits_remaining",
			Help:      "Remaining keyword provider credit budget (-1 when unlimited)",
		},
		[]string{"period"},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the local rate limiter",
		},
	)

	ResearchRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "research_runs_total",
			Help:      "Completed research runs by outcome",
		},
		[]string{"outcome"}, // "ok" / "error"
	)
)

var registerOnce sync.Once

// RegisterResearchMetrics registers the research pipeline and HTTP metrics.
// Must be called from main.
func RegisterResearchMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ProviderRequestsTotal,
			ProviderRequestDuration,
			ProviderPhrasesTotal,
			AICandidatesTotal,
			AIRequestDuration,
			MetricCacheTotal,
			BudgetCreditsRemaining,
			RateLimitedTotal,
			ResearchRunsTotal,
			httpRequestDuration,
			httpRequestsTotal,
			httpInFlight,
			httpCreditsTotal,
		)
	})
}
