package chi

import (
	"errors"
	"net/http"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
)

// Pipeline stages reported in error bodies.
const (
	stageConfiguration = "configuration"
	stageEnrichment    = "enrichment"
	stageValidation    = "validation"
)

type providerKind struct {
	sentinel error
	status   int
	code     ErrorResponseCode
}

// providerKinds maps provider failure kinds to API statuses, most specific first.
var providerKinds = []providerKind{
	{domain.ErrProviderUnauthorized, http.StatusBadGateway, ErrorResponseCodeProviderUnauthorized},
	{domain.ErrProviderQuota, http.StatusPaymentRequired, ErrorResponseCodeProviderQuotaExceeded},
	{domain.ErrProviderRateLimited, http.StatusTooManyRequests, ErrorResponseCodeProviderRateLimited},
	{domain.ErrProviderMalformedResponse, http.StatusBadGateway, ErrorResponseCodeProviderMalformedResponse},
	{domain.ErrProviderFailure, http.StatusBadGateway, ErrorResponseCodeProviderError},
}

// providerErrorHandler surfaces the literal provider status, detail and hint.
func providerErrorHandler(w http.ResponseWriter, err error) bool {
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		return false
	}
	status, code := http.StatusBadGateway, ErrorResponseCodeProviderError
	for _, k := range providerKinds {
		if errors.Is(perr, k.sentinel) {
			status, code = k.status, k.code
			break
		}
	}

	resp := ErrorResponse{
		Code:    code,
		Message: perr.Error(),
		Stage:   stageEnrichment,
		Hint:    perr.Hint,
	}
	if perr.Status > 0 {
		ps := perr.Status
		resp.ProviderStatus = &ps
	}
	writeJSON(w, status, resp)
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The message is the sentinel's own text so internals never leak.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode, stage, hint string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeJSON(w, status, ErrorResponse{
			Code:    code,
			Message: sentinel.Error(),
			Stage:   stage,
			Hint:    hint,
		})
		return true
	}
}
