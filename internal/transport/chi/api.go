package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest                ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized              ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed          ErrorResponseCode = "validation_failed"
	ErrorResponseCodeProviderNotConfigured     ErrorResponseCode = "provider_not_configured"
	ErrorResponseCodeProviderUnauthorized      ErrorResponseCode = "provider_unauthorized"
	ErrorResponseCodeProviderQuotaExceeded     ErrorResponseCode = "provider_quota_exceeded"
	ErrorResponseCodeBudgetExceeded            ErrorResponseCode = "budget_exceeded"
	ErrorResponseCodeProviderRateLimited       ErrorResponseCode = "provider_rate_limited"
	ErrorResponseCodeProviderMalformedResponse ErrorResponseCode = "provider_malformed_response"
	ErrorResponseCodeProviderError             ErrorResponseCode = "provider_error"
	ErrorResponseCodeRateLimited               ErrorResponseCode = "rate_limited"
	ErrorResponseCodeInternalError             ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code           ErrorResponseCode `json:"code"`
	Message        string            `json:"message"`
	Stage          string            `json:"stage,omitempty"`
	ProviderStatus *int              `json:"provider_status,omitempty"`
	Hint           string            `json:"hint,omitempty"`
}

// ResearchRequest is the POST /research body.
type ResearchRequest struct {
	Seed     string  `json:"seed"`
	Country  string  `json:"country,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Limit    *int    `json:"limit,omitempty"`
	UseAI    bool    `json:"use_ai,omitempty"`
	Sort     *string `json:"sort,omitempty"`
}

// ResearchParams are the GET /research query parameters.
type ResearchParams struct {
	Seed     string  `form:"seed" json:"seed"`
	Country  *string `form:"country,omitempty" json:"country,omitempty"`
	Currency *string `form:"currency,omitempty" json:"currency,omitempty"`
	Limit    *int    `form:"limit,omitempty" json:"limit,omitempty"`
	UseAI    *bool   `form:"use_ai,omitempty" json:"use_ai,omitempty"`
	Sort     *string `form:"sort,omitempty" json:"sort,omitempty"`
}

// KeywordMetric is one scored phrase in a research response.
type KeywordMetric struct {
	Keyword     string   `json:"keyword"`
	Volume      *int64   `json:"volume"`
	CPC         *float64 `json:"cpc"`
	Competition *float64 `json:"competition"`
	Trend       []int64  `json:"trend,omitempty"`
	Score       int      `json:"score"`
	Rationale   string   `json:"rationale"`
}

// ResearchResponse is the research result.
type ResearchResponse struct {
	SeedKeyword      string          `json:"seedKeyword"`
	Keywords         []KeywordMetric `json:"keywords"`
	RelatedKeywords  []KeywordMetric `json:"relatedKeywords"`
	QuestionKeywords []KeywordMetric `json:"questionKeywords"`
	TotalResults     int             `json:"totalResults"`
}

// ScoreItem is a caller-supplied metric to score.
type ScoreItem struct {
	Keyword     string    `json:"keyword"`
	Volume      *float64  `json:"volume"`
	CPC         *float64  `json:"cpc"`
	Competition *float64  `json:"competition"`
	Trend       []float64 `json:"trend,omitempty"`
}

// ScoreRequest is the POST /score body.
type ScoreRequest struct {
	Keywords []ScoreItem `json:"keywords"`
}

// ScoreResponse holds scored phrases in request order.
type ScoreResponse struct {
	Items []KeywordMetric `json:"items"`
}

// GetUsageParamsPeriod is the usage aggregation period.
type GetUsageParamsPeriod string

// Usage periods.
const (
	GetUsageParamsPeriodDay   GetUsageParamsPeriod = "day"
	GetUsageParamsPeriodMonth GetUsageParamsPeriod = "month"
	GetUsageParamsPeriodTotal GetUsageParamsPeriod = "total"
)

// GetUsageParams are the GET /usage query parameters.
type GetUsageParams struct {
	Period *GetUsageParamsPeriod `form:"period,omitempty" json:"period,omitempty"`
}

// UsageMetrics are the credit counters of a period.
type UsageMetrics struct {
	ProviderRequests int64 `json:"provider_requests"`
	CreditsUsed      int64 `json:"credits_used"`
	CacheHits        int64 `json:"cache_hits"`
}

// BudgetStatus is the credit budget of a period.
type BudgetStatus struct {
	CreditsLimit     int64   `json:"credits_limit"`
	CreditsRemaining int64   `json:"credits_remaining"`
	IsExhausted      bool    `json:"is_exhausted"`
	ResetsAt         *string `json:"resets_at,omitempty"`
}

// UsageResponse is the credit usage report.
type UsageResponse struct {
	Period        string       `json:"period"`
	PeriodStartAt *string      `json:"period_start_at,omitempty"`
	PeriodEndAt   *string      `json:"period_end_at,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// HealthResponse is the health report.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ServerInterface is implemented by Server; the wrapper binds parameters.
type ServerInterface interface {
	// (POST /api/v1/research)
	ResearchPost(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/research)
	Research(w http.ResponseWriter, r *http.Request, params ResearchParams)
	// (POST /api/v1/score)
	ScoreKeywords(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/usage)
	GetUsage(w http.ResponseWriter, r *http.Request, params GetUsageParams)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// MiddlewareFunc is an HTTP middleware.
type MiddlewareFunc func(http.Handler) http.Handler

// ChiServerOptions configures HandlerWithOptions.
// ResearchMiddlewares wrap only the research routes (e.g. rate limiting).
type ChiServerOptions struct {
	BaseURL             string
	BaseRouter          chi.Router
	ResearchMiddlewares []MiddlewareFunc
	ErrorHandlerFunc    func(w http.ResponseWriter, r *http.Request, err error)
}

type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) Research(w http.ResponseWriter, r *http.Request) {
	var params ResearchParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "seed", q, &params.Seed); err != nil {
		siw.errorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter seed: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "country", q, &params.Country); err != nil {
		siw.errorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter country: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "currency", q, &params.Currency); err != nil {
		siw.errorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter currency: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		siw.errorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter limit: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "use_ai", q, &params.UseAI); err != nil {
		siw.errorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter use_ai: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "sort", q, &params.Sort); err != nil {
		siw.errorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter sort: %w", err))
		return
	}

	siw.handler.Research(w, r, params)
}

func (siw *serverInterfaceWrapper) GetUsage(w http.ResponseWriter, r *http.Request) {
	var params GetUsageParams
	if err := runtime.BindQueryParameter("form", true, false, "period", r.URL.Query(), &params.Period); err != nil {
		siw.errorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter period: %w", err))
		return
	}
	siw.handler.GetUsage(w, r, params)
}

// HandlerWithOptions mounts the API routes on a chi router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		}
	}
	wrapper := &serverInterfaceWrapper{handler: si, errorHandlerFunc: options.ErrorHandlerFunc}

	r.Group(func(r chi.Router) {
		for _, mw := range options.ResearchMiddlewares {
			r.Use(mw)
		}
		r.Post(options.BaseURL+"/api/v1/research", si.ResearchPost)
		r.Get(options.BaseURL+"/api/v1/research", wrapper.Research)
	})
	r.Post(options.BaseURL+"/api/v1/score", si.ScoreKeywords)
	r.Get(options.BaseURL+"/api/v1/usage", wrapper.GetUsage)
	r.Get(options.BaseURL+"/health", si.HealthCheck)
	r.Get(options.BaseURL+"/metrics", si.Metrics)
	return r
}
