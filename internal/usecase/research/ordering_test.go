package research

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/db"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/repository/metricscache"
)

// memKV is an in-memory store for the metric cache.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memKV) MGet(_ context.Context, keys []string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *memKV) SetMultiWithTTL(_ context.Context, items []db.KVItem, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.data[it.Key] = it.Value
	}
	return nil
}

// reversingEnricher answers in the opposite order of the request.
type reversingEnricher struct{ inner *fakeEnricher }

func (r reversingEnricher) Enrich(ctx context.Context, q domain.EnrichmentQuery) ([]keyword.Metric, error) {
	out, err := r.inner.Enrich(ctx, q)
	slices.Reverse(out)
	return out, err
}

func tiedRows(t *testing.T) map[string]keyword.Metric {
	t.Helper()
	return map[string]keyword.Metric{
		"seo":       row(t, "seo", 90000, 3, 0.9),
		"seo alpha": row(t, "seo alpha", 500, 2, 0.4),
		"seo beta":  row(t, "seo beta", 500, 2, 0.4),
	}
}

func topRelated(t *testing.T, svc *Service) string {
	t.Helper()
	res, err := svc.Research(context.Background(), newRequest(t, "seo", 1, false))
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	related := res.RelatedKeywords()
	if len(related) != 1 {
		t.Fatalf("related = %v, want one entry", phrasesOf(related))
	}
	return related[0].Phrase()
}

func TestResearch_TiesFollowGenerationOrderWhateverTheCacheHolds(t *testing.T) {
	gen := fixedGenerator{set: domcand.NewSet("seo", []string{"seo alpha", "seo beta"}, nil)}

	tests := []struct {
		name string
		warm []string
	}{
		{name: "cold"},
		{name: "later phrase cached", warm: []string{"seo beta"}},
		{name: "seed and later phrase cached", warm: []string{"seo", "seo beta"}},
		{name: "all cached", warm: []string{"seo", "seo alpha", "seo beta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := metricscache.New(&fakeEnricher{rows: tiedRows(t)}, &memKV{data: map[string][]byte{}},
				time.Hour, nil, zap.NewNop())
			if len(tt.warm) > 0 {
				if _, err := cache.Enrich(context.Background(), domain.EnrichmentQuery{
					Phrases: tt.warm, Country: "us", Currency: "usd",
				}); err != nil {
					t.Fatalf("warm: %v", err)
				}
			}

			svc := New(enabled, gen, cache, 100, zap.NewNop())
			if got := topRelated(t, svc); got != "seo alpha" {
				t.Errorf("top related = %q, want %q", got, "seo alpha")
			}
		})
	}
}

func TestResearch_TiesIgnoreProviderRowOrder(t *testing.T) {
	gen := fixedGenerator{set: domcand.NewSet("seo", []string{"seo alpha", "seo beta"}, nil)}
	svc := New(enabled, gen, reversingEnricher{inner: &fakeEnricher{rows: tiedRows(t)}}, 100, zap.NewNop())

	if got := topRelated(t, svc); got != "seo alpha" {
		t.Errorf("top related = %q, want %q", got, "seo alpha")
	}
}

func TestInBatchOrder(t *testing.T) {
	batch := []string{"seo", "seo alpha", "seo beta"}
	rows := []keyword.Metric{
		row(t, "seo gamma", 10, -1, -1),
		row(t, "seo beta", 10, -1, -1),
		row(t, "seo", 10, -1, -1),
		row(t, "seo alpha", 10, -1, -1),
	}

	got := make([]string, 0, len(rows))
	for _, m := range inBatchOrder(batch, rows) {
		got = append(got, m.Phrase())
	}
	want := []string{"seo", "seo alpha", "seo beta", "seo gamma"}
	if !slices.Equal(got, want) {
		t.Errorf("inBatchOrder = %v, want %v", got, want)
	}
	if rows[0].Phrase() != "seo gamma" {
		t.Error("input slice must not be reordered")
	}
}
