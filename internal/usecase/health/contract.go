package health

import (
	"context"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
)

// StorePinger checks KV store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// SettingsSource resolves keyword provider settings.
type SettingsSource interface {
	ProviderSettings(ctx context.Context) (domain.ProviderSettings, error)
}
