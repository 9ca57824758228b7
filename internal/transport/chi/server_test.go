package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/request"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/result"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/sortkey"
	domusage "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage/budget"
	usagemetrics "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/usage/metrics"
	healthuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/health"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/ratelimit"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/scoring"
)

type fakeResearcher struct {
	got     *request.Request
	credits int
	res     result.Result
	err     error
}

func (f *fakeResearcher) Research(ctx context.Context, req *request.Request) (result.Result, error) {
	f.got = req
	domain.CreditUsageFromContext(ctx).AddCredits(f.credits)
	return f.res, f.err
}

type fakeUsage struct{ got domusage.Period }

func (f *fakeUsage) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	f.got = period
	return domusage.NewReport(period, 1760832000000, 1760918400000,
		usagemetrics.New(3, 240, 60), budget.New(1000, 760, false, 1760918400000))
}

type fakeHealth struct{ report healthuc.Report }

func (f *fakeHealth) Check(context.Context) healthuc.Report { return f.report }

func f64(v float64) *float64 { return &v }

func scored(t *testing.T, phrase string, vol, cpc, comp float64) keyword.Scored {
	t.Helper()
	m, err := keyword.NewMetric(phrase, f64(vol), f64(cpc), f64(comp), nil)
	if err != nil {
		t.Fatalf("NewMetric: %v", err)
	}
	return scoring.ScoreMetric(m)
}

func newTestHandler(rs *fakeResearcher, mws ...MiddlewareFunc) (http.Handler, *fakeUsage, *fakeHealth) {
	u := &fakeUsage{}
	h := &fakeHealth{report: healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{"provider": healthuc.CheckOK}}}
	s := NewServer(rs, u, h, zap.NewNop()).WithDefaults(Defaults{Country: "gb", Limit: 50})
	return HandlerWithOptions(s, ChiServerOptions{BaseRouter: chi.NewRouter(), ResearchMiddlewares: mws}), u, h
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestResearchPost_Success(t *testing.T) {
	rs := &fakeResearcher{credits: 42}
	rs.res = result.New("content marketing",
		[]keyword.Scored{scored(t, "content marketing", 12000, 6.5, 0.15)},
		[]keyword.Scored{scored(t, "content marketing tools", 900, 2, 0.4)},
		[]keyword.Scored{},
		2,
	)
	h, _, _ := newTestHandler(rs)

	rr := do(t, h, http.MethodPost, "/api/v1/research", `{"seed": "Content Marketing", "use_ai": true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}
	if got := rr.Header().Get("X-Keyword-Credits"); got != "42" {
		t.Errorf("X-Keyword-Credits = %q", got)
	}

	resp := decode[ResearchResponse](t, rr)
	if resp.SeedKeyword != "content marketing" || resp.TotalResults != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Keywords) != 1 || resp.Keywords[0].Score < 70 || *resp.Keywords[0].Volume != 12000 {
		t.Errorf("keywords = %+v", resp.Keywords)
	}
	if resp.QuestionKeywords == nil {
		t.Error("questionKeywords must encode as an empty array")
	}

	if rs.got.Country() != "gb" || rs.got.Limit() != 50 || !rs.got.UseAI() {
		t.Errorf("defaults not applied: country=%q limit=%d ai=%v", rs.got.Country(), rs.got.Limit(), rs.got.UseAI())
	}
}

func TestResearchGet_BindsQuery(t *testing.T) {
	rs := &fakeResearcher{res: result.New("seo", nil, nil, nil, 0)}
	h, _, _ := newTestHandler(rs)

	rr := do(t, h, http.MethodGet, "/api/v1/research?seed=seo&country=DE&currency=eur&limit=5&use_ai=true&sort=volume", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}
	got := rs.got
	if got.Seed() != "seo" || got.Country() != "de" || got.Currency() != "eur" ||
		got.Limit() != 5 || !got.UseAI() || got.SortBy() != sortkey.Volume {
		t.Errorf("unexpected request: %+v", got)
	}
}

func TestResearchGet_BadParams(t *testing.T) {
	h, _, _ := newTestHandler(&fakeResearcher{})

	tests := []struct {
		name   string
		target string
		code   ErrorResponseCode
	}{
		{"missing seed", "/api/v1/research", ErrorResponseCodeBadRequest},
		{"non-numeric limit", "/api/v1/research?seed=seo&limit=ten", ErrorResponseCodeBadRequest},
		{"negative limit", "/api/v1/research?seed=seo&limit=-1", ErrorResponseCodeValidationFailed},
		{"bad sort", "/api/v1/research?seed=seo&sort=random", ErrorResponseCodeValidationFailed},
		{"bad country", "/api/v1/research?seed=seo&country=usa", ErrorResponseCodeValidationFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tc.target, "")
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if resp := decode[ErrorResponse](t, rr); resp.Code != tc.code {
				t.Errorf("code = %q, want %q", resp.Code, tc.code)
			}
		})
	}
}

func TestResearchPost_InvalidBody(t *testing.T) {
	h, _, _ := newTestHandler(&fakeResearcher{})
	rr := do(t, h, http.MethodPost, "/api/v1/research", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestResearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		status         int
		code           ErrorResponseCode
		stage          string
		providerStatus int
	}{
		{"configuration", fmt.Errorf("research: %w", domain.ErrConfiguration),
			http.StatusServiceUnavailable, ErrorResponseCodeProviderNotConfigured, "configuration", 0},
		{"provider unauthorized", fmt.Errorf("enrich keywords: %w",
			domain.NewProviderError(domain.ErrProviderUnauthorized, 401, "Invalid API key")),
			http.StatusBadGateway, ErrorResponseCodeProviderUnauthorized, "enrichment", 401},
		{"provider quota", fmt.Errorf("enrich keywords: %w",
			domain.NewProviderError(domain.ErrProviderQuota, 402, "Not enough credits")),
			http.StatusPaymentRequired, ErrorResponseCodeProviderQuotaExceeded, "enrichment", 402},
		{"provider rate limited", domain.NewProviderError(domain.ErrProviderRateLimited, 429, "slow down"),
			http.StatusTooManyRequests, ErrorResponseCodeProviderRateLimited, "enrichment", 429},
		{"provider html", domain.NewProviderError(domain.ErrProviderMalformedResponse, 200, "<html>"),
			http.StatusBadGateway, ErrorResponseCodeProviderMalformedResponse, "enrichment", 200},
		{"provider failure", domain.NewProviderError(domain.ErrProviderFailure, 500, "boom"),
			http.StatusBadGateway, ErrorResponseCodeProviderError, "enrichment", 500},
		{"budget", fmt.Errorf("enrich keywords: budget check: %w", domain.ErrBudgetExceeded),
			http.StatusPaymentRequired, ErrorResponseCodeBudgetExceeded, "enrichment", 0},
		{"unexpected", errors.New("boom"),
			http.StatusInternalServerError, ErrorResponseCodeInternalError, "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _, _ := newTestHandler(&fakeResearcher{err: tc.err})
			rr := do(t, h, http.MethodPost, "/api/v1/research", `{"seed": "seo"}`)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			resp := decode[ErrorResponse](t, rr)
			if resp.Code != tc.code || resp.Stage != tc.stage {
				t.Errorf("code/stage = %q/%q, want %q/%q", resp.Code, resp.Stage, tc.code, tc.stage)
			}
			gotPS := 0
			if resp.ProviderStatus != nil {
				gotPS = *resp.ProviderStatus
			}
			if gotPS != tc.providerStatus {
				t.Errorf("provider_status = %d, want %d", gotPS, tc.providerStatus)
			}
		})
	}
}

func TestResearch_ProviderDetailSurfaced(t *testing.T) {
	err := fmt.Errorf("enrich keywords: %w", domain.NewProviderError(domain.ErrProviderQuota, 402, "Not enough credits"))
	h, _, _ := newTestHandler(&fakeResearcher{err: err})

	resp := decode[ErrorResponse](t, do(t, h, http.MethodPost, "/api/v1/research", `{"seed": "seo"}`))
	if !strings.Contains(resp.Message, "Not enough credits") {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Hint == "" {
		t.Error("expected remediation hint")
	}
}

func TestScoreKeywords(t *testing.T) {
	h, _, _ := newTestHandler(&fakeResearcher{})

	rr := do(t, h, http.MethodPost, "/api/v1/score",
		`{"keywords": [{"keyword": "how to do content marketing", "volume": 800, "competition": 0.1, "cpc": 6}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}
	resp := decode[ScoreResponse](t, rr)
	if len(resp.Items) != 1 {
		t.Fatalf("items = %d", len(resp.Items))
	}
	// 20 (moderate volume) + 30 (very low competition) + 20 (long-tail) + 10 (high cpc)
	if resp.Items[0].Score != 80 {
		t.Errorf("score = %d, rationale = %q", resp.Items[0].Score, resp.Items[0].Rationale)
	}

	for _, body := range []string{`{"keywords": []}`, `{"keywords": [{"keyword": "  "}]}`} {
		if rr := do(t, h, http.MethodPost, "/api/v1/score", body); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestGetUsage(t *testing.T) {
	h, u, _ := newTestHandler(&fakeResearcher{})

	rr := do(t, h, http.MethodGet, "/api/v1/usage", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if u.got != domusage.PeriodMonth {
		t.Errorf("default period = %q", u.got)
	}
	resp := decode[UsageResponse](t, rr)
	if resp.Usage.CreditsUsed != 240 || resp.Budget.CreditsRemaining != 760 || resp.PeriodStartAt == nil {
		t.Errorf("unexpected usage: %+v", resp)
	}

	do(t, h, http.MethodGet, "/api/v1/usage?period=day", "")
	if u.got != domusage.PeriodDay {
		t.Errorf("period = %q", u.got)
	}

	if rr := do(t, h, http.MethodGet, "/api/v1/usage?period=year", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("invalid period status = %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h, _, hc := newTestHandler(&fakeResearcher{})

	if rr := do(t, h, http.MethodGet, "/health", ""); rr.Code != http.StatusOK {
		t.Errorf("healthy status = %d", rr.Code)
	}

	hc.report = healthuc.Report{Status: healthuc.Degraded, Checks: map[string]healthuc.CheckResult{"cache": healthuc.CheckError}}
	if rr := do(t, h, http.MethodGet, "/health", ""); rr.Code != http.StatusOK {
		t.Errorf("degraded status = %d, want 200", rr.Code)
	}

	hc.report = healthuc.Report{Status: healthuc.Unhealthy, Checks: map[string]healthuc.CheckResult{"provider": healthuc.CheckError}}
	rr := do(t, h, http.MethodGet, "/health", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d", rr.Code)
	}
	if resp := decode[HealthResponse](t, rr); resp.Checks["provider"] != "error" {
		t.Errorf("checks = %v", resp.Checks)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	l := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 1, time.Minute, zap.NewNop())
	h, _, _ := newTestHandler(&fakeResearcher{res: result.New("seo", nil, nil, nil, 0)}, RateLimitMiddleware(l))

	first := do(t, h, http.MethodGet, "/api/v1/research?seed=seo", "")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	if first.Header().Get("X-RateLimit-Limit") != "1" || first.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("headers = %v", first.Header())
	}

	second := do(t, h, http.MethodGet, "/api/v1/research?seed=seo", "")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}

	// Score and usage routes are not rate limited.
	if rr := do(t, h, http.MethodGet, "/api/v1/usage", ""); rr.Code != http.StatusOK {
		t.Errorf("usage status = %d", rr.Code)
	}
}

func TestRateLimitSubject(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.RemoteAddr = "203.0.113.9:5555"
	if got := rateLimitSubject(r); got != "ip:203.0.113.9" {
		t.Errorf("subject = %q", got)
	}
	r.Header.Set("Authorization", "Bearer secret-key")
	got := rateLimitSubject(r)
	if !strings.HasPrefix(got, "key:") || strings.Contains(got, "secret") {
		t.Errorf("subject = %q", got)
	}
}
