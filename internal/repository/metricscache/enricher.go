package metricscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/db"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

var cacheKeyPrefix = domain.KeyPrefix + "metric:"

// DefaultTTL is how long a provider answer stays reusable.
const DefaultTTL = 7 * 24 * time.Hour

// store is the consumer interface for the metric cache (ISP).
type store interface {
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	SetMultiWithTTL(ctx context.Context, items []db.KVItem, ttl time.Duration) error
}

// HitRecorder receives the number of phrases answered from cache.
type HitRecorder interface {
	RecordCacheHits(n int64)
}

// CachedEnricher caches per-phrase provider metrics in a key-value store.
type CachedEnricher struct {
	inner      domain.Enricher
	store      store
	ttl        time.Duration
	hits       HitRecorder
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
// ttl <= 0 uses DefaultTTL.
func New(
	inner domain.Enricher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedEnricher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedEnricher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithHitRecorder reports cache hits to h (typically the credit budget).
func (c *CachedEnricher) WithHitRecorder(h HitRecorder) *CachedEnricher {
	c.hits = h
	return c
}

// Enrich answers what it can from cache and sends only the misses to the
// inner enricher, in a single call. Phrases the provider had no data for are
// cached as negative entries. Cache failures degrade to a full provider call.
func (c *CachedEnricher) Enrich(ctx context.Context, q domain.EnrichmentQuery) ([]keyword.Metric, error) {
	if len(q.Phrases) == 0 {
		return nil, nil
	}

	phrases := make([]string, len(q.Phrases))
	keys := make([]string, len(q.Phrases))
	for i, p := range q.Phrases {
		phrases[i] = keyword.Normalize(p)
		keys[i] = c.cacheKey(q.Country, q.Currency, phrases[i])
	}

	cached, err := c.store.MGet(ctx, keys)
	if err != nil {
		c.logger.Warn("Failed to read metric cache", zap.Int("keys", len(keys)), zap.Error(err))
		cached = nil
	}

	var (
		hitRows = make(map[string]keyword.Metric, len(phrases))
		misses  []string
		hits    int
	)
	for i, p := range phrases {
		var data []byte
		if i < len(cached) {
			data = cached[i]
		}
		m, noData, ok := c.decode(p, data)
		if !ok {
			misses = append(misses, q.Phrases[i])
			continue
		}
		hits++
		if !noData {
			hitRows[p] = m
		}
	}

	c.incCache("hit", hits)
	c.incCache("miss", len(misses))
	if hits > 0 {
		domain.CreditUsageFromContext(ctx).AddCacheHits(hits)
		if c.hits != nil {
			c.hits.RecordCacheHits(int64(hits))
		}
	}

	var fetched []keyword.Metric
	if len(misses) > 0 {
		miss := q
		miss.Phrases = misses
		fetched, err = c.inner.Enrich(ctx, miss)
		if err != nil {
			return nil, err //nolint:wrapcheck // provider errors carry stage and status already
		}
		c.putToCache(ctx, q.Country, q.Currency, misses, fetched)
	}

	return mergeInBatchOrder(phrases, hitRows, fetched), nil
}

// mergeInBatchOrder returns cached and fetched rows in the order the phrases
// were asked, so cache warmth never changes the result order. Repeated rows
// keep the first one. Fetched rows for phrases that were not asked follow in
// provider order.
func mergeInBatchOrder(phrases []string, rows map[string]keyword.Metric, fetched []keyword.Metric) []keyword.Metric {
	var fresh []keyword.Metric
	for _, m := range fetched {
		if _, dup := rows[m.Phrase()]; dup {
			continue
		}
		rows[m.Phrase()] = m
		fresh = append(fresh, m)
	}

	out := make([]keyword.Metric, 0, len(rows))
	for _, p := range phrases {
		if m, ok := rows[p]; ok {
			out = append(out, m)
			delete(rows, p)
		}
	}
	for _, m := range fresh {
		if _, ok := rows[m.Phrase()]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (c *CachedEnricher) incCache(result string, n int) {
	if c.cacheTotal != nil && n > 0 {
		c.cacheTotal.WithLabelValues(result).Add(float64(n))
	}
}

func (c *CachedEnricher) cacheKey(country, currency, phrase string) string {
	h := sha256.Sum256([]byte(phrase))
	return fmt.Sprintf("%s%s:%s:%s", cacheKeyPrefix, country, currency, hex.EncodeToString(h[:]))
}

func (c *CachedEnricher) decode(phrase string, data []byte) (m keyword.Metric, noData, ok bool) {
	if len(data) == 0 {
		return keyword.Metric{}, false, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("Failed to parse cached metric", zap.String("phrase", phrase), zap.Error(err))
		return keyword.Metric{}, false, false
	}
	if e.NoData {
		return keyword.Metric{}, true, true
	}
	m, err := e.toMetric(phrase)
	if err != nil {
		c.logger.Warn("Invalid cached metric", zap.String("phrase", phrase), zap.Error(err))
		return keyword.Metric{}, false, false
	}
	return m, false, true
}

func (c *CachedEnricher) putToCache(ctx context.Context, country, currency string, asked []string, found []keyword.Metric) {
	byPhrase := make(map[string]keyword.Metric, len(found))
	for _, m := range found {
		if _, dup := byPhrase[m.Phrase()]; !dup {
			byPhrase[m.Phrase()] = m
		}
	}

	items := make([]db.KVItem, 0, len(asked))
	for _, p := range asked {
		p = keyword.Normalize(p)
		e := entry{NoData: true}
		if m, ok := byPhrase[p]; ok {
			e = entryFromMetric(m)
		}
		data, err := json.Marshal(e)
		if err != nil {
			c.logger.Warn("Failed to encode metric for cache", zap.String("phrase", p), zap.Error(err))
			continue
		}
		items = append(items, db.KVItem{Key: c.cacheKey(country, currency, p), Value: data})
	}

	if err := c.store.SetMultiWithTTL(ctx, items, c.ttl); err != nil {
		c.logger.Warn("Failed to cache metrics", zap.Int("items", len(items)), zap.Error(err))
	}
}
