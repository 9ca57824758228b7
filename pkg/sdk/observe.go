package kwscout

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "kwscout"

type sdkMetrics struct {
	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	credits  *prometheus.CounterVec
	keywords prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK calls by operation and outcome class.",
		}, []string{"operation", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK call latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
		credits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "research_phrases_total",
			Help:      "Phrases resolved by research calls, billed by the provider or served from cache.",
		}, []string{"source"}),
		keywords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "research_result_size",
			Help:      "Total keywords returned per research call.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}

	if err := reuseOnConflict(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := reuseOnConflict(reg, &m.latency); err != nil {
		return nil, err
	}
	if err := reuseOnConflict(reg, &m.credits); err != nil {
		return nil, err
	}
	if err := reuseOnConflict(reg, &m.keywords); err != nil {
		return nil, err
	}
	return m, nil
}

// reuseOnConflict registers c, or swaps in the collector already registered
// under the same descriptor so several clients can share one registry.
func reuseOnConflict[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("kwscout: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("kwscout: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer reports SDK calls to an optional slog logger and an optional registry.
// A nil *observer is valid and does nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newSDKMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

// errorClass maps an SDK error onto a low-cardinality status label.
func errorClass(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, ErrProviderNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrBudgetExceeded):
		return "budget"
	case errors.As(err, new(*ProviderError)):
		return "provider"
	default:
		return "error"
	}
}

// observe records a finished call without research accounting.
func (o *observer) observe(op string, start time.Time, err error) {
	o.finish(op, start, err, nil)
}

// observeResearch records a finished research call with its credit accounting.
func (o *observer) observeResearch(start time.Time, res *ResearchResult, err error) {
	o.finish("research", start, err, res)
}

func (o *observer) finish(op string, start time.Time, err error, res *ResearchResult) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	status := errorClass(err)

	if m := o.metrics; m != nil {
		m.calls.WithLabelValues(op, status).Inc()
		m.latency.WithLabelValues(op).Observe(elapsed.Seconds())
		if res != nil && err == nil {
			m.credits.WithLabelValues("provider").Add(float64(res.CreditsUsed))
			m.credits.WithLabelValues("cache").Add(float64(res.CacheHits))
			m.keywords.Observe(float64(res.TotalResults))
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", op, "duration", elapsed}
	if res != nil && err == nil {
		attrs = append(attrs,
			"seed", res.SeedKeyword,
			"total", res.TotalResults,
			"credits", res.CreditsUsed,
			"cache_hits", res.CacheHits,
		)
	}
	if err != nil {
		o.logger.Warn("kwscout call failed", append(attrs, "status", status, "error", err)...)
		return
	}
	o.logger.Debug("kwscout call done", attrs...)
}
