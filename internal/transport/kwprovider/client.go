// Package kwprovider is the HTTP client for the keyword-metrics provider.
package kwprovider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
)

const (
	keywordDataPath   = "/v1/get_keyword_data"
	defaultDataSource = "gkp"
	defaultTimeout    = 30 * time.Second
	maxBodyBytes      = 4 << 20
	maxDetailLen      = 200
)

// Config holds the provider connection settings.
type Config struct {
	BaseURL    string
	DataSource string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client calls the provider's batch keyword data endpoint. It never retries.
type Client struct {
	endpoint   string
	dataSource string
	http       *http.Client
	logger     *zap.Logger
}

// New creates a provider client.
func New(cfg Config) *Client {
	ds := cfg.DataSource
	if ds == "" {
		ds = defaultDataSource
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + keywordDataPath,
		dataSource: ds,
		http:       hc,
		logger:     cfg.Logger,
	}
}

// Enrich implements domain.Enricher with one POST per call.
func (c *Client) Enrich(ctx context.Context, q domain.EnrichmentQuery) ([]keyword.Metric, error) {
	if len(q.Phrases) == 0 {
		return nil, nil
	}
	if len(q.Phrases) > domcand.ProviderBatchCeiling {
		return nil, fmt.Errorf("%w: batch of %d phrases exceeds %d",
			domain.ErrInvalidRequest, len(q.Phrases), domcand.ProviderBatchCeiling)
	}

	form := url.Values{}
	for _, p := range q.Phrases {
		form.Add("kw[]", p)
	}
	form.Set("country", q.Country)
	form.Set("currency", q.Currency)
	form.Set("dataSource", c.dataSource)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+q.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("error", start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("provider request: %w", ctxErr)
		}
		return nil, domain.NewProviderError(domain.ErrProviderFailure, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.observe("error", start)
		return nil, domain.NewProviderError(domain.ErrProviderFailure, resp.StatusCode, "read body: "+err.Error())
	}

	if perr := classifyStatus(resp.StatusCode, body); perr != nil {
		c.observe(statusLabel(perr), start)
		c.logger.Warn("Keyword provider rejected request",
			zap.Int("status", resp.StatusCode),
			zap.Int("batch_size", len(q.Phrases)),
			zap.Error(perr),
		)
		return nil, perr
	}

	found, err := decodeMetrics(body)
	if err != nil {
		c.observe("malformed", start)
		return nil, domain.NewProviderError(domain.ErrProviderMalformedResponse, resp.StatusCode, err.Error())
	}
	c.observe("ok", start)
	return found, nil
}

func (c *Client) observe(status string, start time.Time) {
	metrics.ProviderRequestsTotal.WithLabelValues(status).Inc()
	metrics.ProviderRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// classifyStatus maps a non-success response to a ProviderError. Returns nil for 2xx.
func classifyStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	detail := errorDetail(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewProviderError(domain.ErrProviderUnauthorized, status, detail)
	case status == http.StatusPaymentRequired:
		return domain.NewProviderError(domain.ErrProviderQuota, status, detail)
	case status == http.StatusTooManyRequests:
		return domain.NewProviderError(domain.ErrProviderRateLimited, status, detail)
	case !looksLikeJSON(body):
		return domain.NewProviderError(domain.ErrProviderMalformedResponse, status, detail)
	default:
		return domain.NewProviderError(domain.ErrProviderFailure, status, detail)
	}
}

func statusLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrProviderUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrProviderQuota):
		return "quota"
	case errors.Is(err, domain.ErrProviderRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrProviderMalformedResponse):
		return "malformed"
	default:
		return "error"
	}
}
