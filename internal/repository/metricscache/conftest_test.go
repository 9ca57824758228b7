package metricscache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/db"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

type mockEnricher struct {
	rows  map[string]keyword.Metric
	extra []string // answered after the asked phrases, in provider order
	err   error
	calls [][]string
}

func (m *mockEnricher) Enrich(_ context.Context, q domain.EnrichmentQuery) ([]keyword.Metric, error) {
	m.calls = append(m.calls, q.Phrases)
	if m.err != nil {
		return nil, m.err
	}
	var out []keyword.Metric
	for _, p := range q.Phrases {
		if r, ok := m.rows[keyword.Normalize(p)]; ok {
			out = append(out, r)
		}
	}
	for _, p := range m.extra {
		out = append(out, m.rows[p])
	}
	return out, nil
}

func phrasesOf(ms []keyword.Metric) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Phrase()
	}
	return out
}

// mockKVStore is an in-memory implementation of the consumer interface.
type mockKVStore struct {
	data    map[string][]byte
	mgetErr error
	setErr  error
	lastTTL time.Duration
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}}
}

func (m *mockKVStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if m.mgetErr != nil {
		return nil, m.mgetErr
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *mockKVStore) SetMultiWithTTL(_ context.Context, items []db.KVItem, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.lastTTL = ttl
	for _, it := range items {
		m.data[it.Key] = it.Value
	}
	return nil
}

type hitCounter struct{ n int64 }

func (h *hitCounter) RecordCacheHits(n int64) { h.n += n }

func f(v float64) *float64 { return &v }

func metric(t *testing.T, phrase string, vol float64) keyword.Metric {
	t.Helper()
	m, err := keyword.NewMetric(phrase, f(vol), f(1.5), f(0.3), nil)
	if err != nil {
		t.Fatalf("NewMetric(%q): %v", phrase, err)
	}
	return m
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
}

func newTestCachedEnricher(t *testing.T, inner *mockEnricher) (*CachedEnricher, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := newMockKVStore()
	counter := newCounter()
	return New(inner, ms, time.Hour, counter, zap.NewNop()), ms, counter
}
