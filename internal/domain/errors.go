package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a malformed research request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrConfiguration signals a disabled provider or missing credentials.
	ErrConfiguration = errors.New("keyword provider not configured")

	// ErrProviderUnauthorized signals rejected provider credentials.
	ErrProviderUnauthorized = errors.New("provider unauthorized")
	// ErrProviderQuota signals exhausted provider credits or inactive billing.
	ErrProviderQuota = errors.New("provider quota exceeded")
	// ErrProviderRateLimited signals that the provider throttled the request.
	ErrProviderRateLimited = errors.New("provider rate limited")
	// ErrProviderMalformedResponse signals a non-JSON provider response.
	ErrProviderMalformedResponse = errors.New("provider returned malformed response")
	// ErrProviderFailure signals any other non-2xx provider response.
	ErrProviderFailure = errors.New("provider error")

	// ErrAIGeneration signals a failed or empty AI candidate expansion.
	// It is always recovered inside the candidate generator.
	ErrAIGeneration = errors.New("ai keyword generation failed")

	// ErrBudgetExceeded signals an exhausted local credit budget.
	ErrBudgetExceeded = errors.New("keyword credit budget exceeded")
	// ErrRateLimited signals a hit on the local request limiter.
	ErrRateLimited = errors.New("rate limited")
)

// ProviderError carries the literal provider status and detail for a failed
// enrichment call. Kind is one of the ErrProvider* sentinels.
type ProviderError struct {
	Kind   error
	Status int
	Detail string
	Hint   string
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("keyword provider: %s: status %d", e.Kind.Error(), e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Kind }

// NewProviderError creates a provider error with the default remediation hint for its kind.
func NewProviderError(kind error, status int, detail string) error {
	return &ProviderError{Kind: kind, Status: status, Detail: detail, Hint: HintFor(kind)}
}

// HintFor returns a human-readable remediation hint for a provider error kind.
func HintFor(kind error) string {
	switch {
	case errors.Is(kind, ErrProviderUnauthorized):
		return "check the keyword provider API key"
	case errors.Is(kind, ErrProviderQuota):
		return "provider credits are exhausted or the billing plan is inactive"
	case errors.Is(kind, ErrProviderRateLimited):
		return "too many requests to the keyword provider, retry later"
	case errors.Is(kind, ErrProviderMalformedResponse):
		return "provider returned a non-JSON page, it may be down or the base URL is wrong"
	default:
		return ""
	}
}
