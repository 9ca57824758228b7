package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/request"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/result"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/sortkey"
	domusage "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage"
	healthuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/health"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/scoring"
)

const maxScoreItems = 1000

// Response headers with the credit cost of a research call.
const (
	headerCredits   = "X-Keyword-Credits"
	headerCacheHits = "X-Keyword-Cache-Hits"
)

// researcher is the consumer interface for the research pipeline (ISP).
type researcher interface {
	Research(ctx context.Context, req *request.Request) (result.Result, error)
}

type usageReporter interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}

type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Defaults are applied to research parameters the caller left out.
type Defaults struct {
	Country  string
	Currency string
	Limit    int
}

// Server implements ServerInterface.
type Server struct {
	research      researcher
	usage         usageReporter
	health        healthChecker
	defaults      Defaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(research researcher, usage usageReporter, health healthChecker, logger *zap.Logger) *Server {
	s := &Server{
		research: research,
		usage:    usage,
		health:   health,
		defaults: Defaults{Limit: request.DefaultLimit},
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		providerErrorHandler,
		sentinelHandler(domain.ErrConfiguration, http.StatusServiceUnavailable,
			ErrorResponseCodeProviderNotConfigured, stageConfiguration,
			"enable the keyword provider and set its API key"),
		sentinelHandler(domain.ErrBudgetExceeded, http.StatusPaymentRequired,
			ErrorResponseCodeBudgetExceeded, stageEnrichment, "the local credit budget resets at the next period"),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest,
			ErrorResponseCodeValidationFailed, stageValidation, ""),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests,
			ErrorResponseCodeRateLimited, "", ""),
	}
	for _, k := range providerKinds {
		s.errorHandlers = append(s.errorHandlers,
			sentinelHandler(k.sentinel, k.status, k.code, stageEnrichment, domain.HintFor(k.sentinel)))
	}
	return s
}

// WithDefaults overrides the research defaults. Zero fields keep the built-in values.
func (s *Server) WithDefaults(d Defaults) *Server {
	if d.Country != "" {
		s.defaults.Country = d.Country
	}
	if d.Currency != "" {
		s.defaults.Currency = d.Currency
	}
	if d.Limit > 0 {
		s.defaults.Limit = d.Limit
	}
	return s
}

// ResearchPost handles POST /api/v1/research.
func (s *Server) ResearchPost(w http.ResponseWriter, r *http.Request) {
	var req ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.runResearch(w, r, req)
}

// Research handles GET /api/v1/research.
func (s *Server) Research(w http.ResponseWriter, r *http.Request, params ResearchParams) {
	req := ResearchRequest{
		Seed:  params.Seed,
		Limit: params.Limit,
		Sort:  params.Sort,
	}
	if params.Country != nil {
		req.Country = *params.Country
	}
	if params.Currency != nil {
		req.Currency = *params.Currency
	}
	if params.UseAI != nil {
		req.UseAI = *params.UseAI
	}
	s.runResearch(w, r, req)
}

func (s *Server) runResearch(w http.ResponseWriter, r *http.Request, in ResearchRequest) {
	rr, err := s.requestFromDTO(in)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    ErrorResponseCodeValidationFailed,
			Message: err.Error(),
			Stage:   stageValidation,
		})
		return
	}

	ctx, usage := domain.NewContextWithCreditUsage(r.Context())
	res, err := s.research.Research(ctx, &rr)
	setCreditHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, researchToDTO(&res))
}

func (s *Server) requestFromDTO(in ResearchRequest) (request.Request, error) {
	country := in.Country
	if country == "" {
		country = s.defaults.Country
	}
	currency := in.Currency
	if currency == "" {
		currency = s.defaults.Currency
	}
	limit := s.defaults.Limit
	if in.Limit != nil {
		limit = *in.Limit
	}
	var sortBy sortkey.Key
	if in.Sort != nil {
		sortBy = sortkey.Key(*in.Sort)
	}

	rr, err := request.New(in.Seed, country, currency, limit, in.UseAI, sortBy)
	if err != nil {
		return request.Request{}, fmt.Errorf("build research request: %w", err)
	}
	return rr, nil
}

// ScoreKeywords handles POST /api/v1/score.
func (s *Server) ScoreKeywords(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Keywords) == 0 || len(req.Keywords) > maxScoreItems {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			fmt.Sprintf("keywords count must be between 1 and %d", maxScoreItems))
		return
	}

	items := make([]KeywordMetric, 0, len(req.Keywords))
	for i, it := range req.Keywords {
		m, err := keyword.NewMetric(it.Keyword, it.Volume, it.CPC, it.Competition, it.Trend)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
				fmt.Sprintf("keywords[%d]: %s", i, err))
			return
		}
		items = append(items, scoredToDTO(scoring.ScoreMetric(m)))
	}

	writeJSON(w, http.StatusOK, ScoreResponse{Items: items})
}

// GetUsage handles GET /api/v1/usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request, params GetUsageParams) {
	var raw string
	if params.Period != nil {
		raw = string(*params.Period)
	}
	period, err := domusage.ParsePeriod(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	report := s.usage.GetReport(r.Context(), period)

	resp := UsageResponse{
		Period: string(report.Period()),
		Usage: UsageMetrics{
			ProviderRequests: report.Metrics().ProviderRequests(),
			CreditsUsed:      report.Metrics().CreditsUsed(),
			CacheHits:        report.Metrics().CacheHits(),
		},
		Budget: BudgetStatus{
			CreditsLimit:     report.Budget().CreditsLimit(),
			CreditsRemaining: report.Budget().CreditsRemaining(),
			IsExhausted:      report.Budget().IsExhausted(),
		},
	}

	if report.Windowed() {
		resp.PeriodStartAt = millisToRFC3339(report.PeriodStart())
		resp.PeriodEndAt = millisToRFC3339(report.PeriodEnd())
	}
	if report.Budget().ResetsAt() > 0 {
		resp.Budget.ResetsAt = millisToRFC3339(report.Budget().ResetsAt())
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func setCreditHeaders(w http.ResponseWriter, usage *domain.CreditUsage) {
	w.Header().Set(headerCredits, strconv.Itoa(usage.Credits()))
	w.Header().Set(headerCacheHits, strconv.Itoa(usage.CacheHits()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func millisToRFC3339(ms int64) *string {
	s := time.UnixMilli(ms).UTC().Format(time.RFC3339)
	return &s
}

func researchToDTO(r *result.Result) ResearchResponse {
	return ResearchResponse{
		SeedKeyword:      r.SeedKeyword(),
		Keywords:         scoredListToDTO(r.Keywords()),
		RelatedKeywords:  scoredListToDTO(r.RelatedKeywords()),
		QuestionKeywords: scoredListToDTO(r.QuestionKeywords()),
		TotalResults:     r.TotalResults(),
	}
}

func scoredListToDTO(in []keyword.Scored) []KeywordMetric {
	out := make([]KeywordMetric, len(in))
	for i, k := range in {
		out[i] = scoredToDTO(k)
	}
	return out
}

func scoredToDTO(k keyword.Scored) KeywordMetric {
	item := KeywordMetric{
		Keyword:   k.Phrase(),
		Score:     k.Score(),
		Rationale: k.Rationale(),
	}
	if v, ok := k.Volume(); ok {
		item.Volume = &v
	}
	if v, ok := k.CPC(); ok {
		item.CPC = &v
	}
	if v, ok := k.Competition(); ok {
		item.Competition = &v
	}
	if t, ok := k.Trend(); ok {
		item.Trend = t
	}
	return item
}
