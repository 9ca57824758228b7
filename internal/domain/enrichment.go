package domain

import (
	"context"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

// EnrichmentQuery is one batched lookup against the keyword-metrics provider.
type EnrichmentQuery struct {
	Phrases  []string
	Country  string
	Currency string
	APIKey   string
}

// Enricher is the shared keyword-metrics contract between layers.
// Phrases the provider has no data for are omitted or returned without volume.
type Enricher interface {
	Enrich(ctx context.Context, q EnrichmentQuery) ([]keyword.Metric, error)
}

// ProviderSettings are the caller's keyword-metrics provider credentials.
type ProviderSettings struct {
	APIKey  string
	Enabled bool
}

// Configured reports whether the provider can be called.
func (s ProviderSettings) Configured() bool {
	return s.Enabled && s.APIKey != ""
}
