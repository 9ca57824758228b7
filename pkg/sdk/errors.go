package kwscout

import "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check; errors.As with *ProviderError gives the
// provider's status and detail.
var (
	ErrInvalidRequest            = domain.ErrInvalidRequest
	ErrProviderNotConfigured     = domain.ErrConfiguration
	ErrProviderUnauthorized      = domain.ErrProviderUnauthorized
	ErrProviderQuota             = domain.ErrProviderQuota
	ErrProviderRateLimited       = domain.ErrProviderRateLimited
	ErrProviderMalformedResponse = domain.ErrProviderMalformedResponse
	ErrProviderFailure           = domain.ErrProviderFailure
	ErrBudgetExceeded            = domain.ErrBudgetExceeded
)

// ProviderError carries the provider's literal status, detail and a remediation hint.
type ProviderError = domain.ProviderError
