package research

import (
	"context"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
)

// SettingsSource resolves the caller's keyword provider settings.
type SettingsSource interface {
	ProviderSettings(ctx context.Context) (domain.ProviderSettings, error)
}

// CandidateGenerator produces the candidate set for a seed. It never fails.
type CandidateGenerator interface {
	Generate(ctx context.Context, seed, country string, useAI bool) domcand.Set
}

// StaticSettings is a SettingsSource backed by fixed values.
type StaticSettings domain.ProviderSettings

// ProviderSettings returns the fixed settings.
func (s StaticSettings) ProviderSettings(_ context.Context) (domain.ProviderSettings, error) {
	return domain.ProviderSettings(s), nil
}
