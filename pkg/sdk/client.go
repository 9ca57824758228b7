package kwscout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/db"
	dbRedis "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/db/redis"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
	budgetrepo "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/repository/budget"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/repository/metricscache"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/transport/kwprovider"
	openaiCompletion "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/transport/openai"
	candidateuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/candidate"
	enrichmentuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/enrichment"
	healthuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/health"
	researchuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/research"
	usageuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/usage"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultProviderBaseURL  = "https://api.keywordseverywhere.com"
	defaultAITimeout        = 20 * time.Second
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultTemperature      = 0.7
)

// Client is the kwscout SDK entry point.
type Client struct {
	store       db.Store
	researchSvc researchUseCase
	healthSvc   healthUseCase
	usageSvc    usageUseCase
	obs         *observer
}

// New creates a Client. With WithValkey it connects to the store and
// uses the provided context for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		providerBaseURL: defaultProviderBaseURL,
		aiTimeout:       defaultAITimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("kwscout: create valkey store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("kwscout: database not ready: %w", err)
		}
		store = s
	}

	return wireClient(ctx, store, cfg, obs), nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) *Client {
	// Internal layers log through zap; SDK callers get slog via the observer.
	logger := zap.NewNop()

	action := enrichmentuc.BudgetActionWarn
	if cfg.rejectOver {
		action = enrichmentuc.BudgetActionReject
	}
	budget := enrichmentuc.NewCreditBudget(cfg.dailyLimit, cfg.monthlyLimit, action, logger)
	if store != nil {
		budget.WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
	}

	var enricher domain.Enricher = enrichmentuc.NewInstrumentedEnricher(
		kwprovider.New(kwprovider.Config{
			BaseURL:    cfg.providerBaseURL,
			DataSource: cfg.dataSource,
			Timeout:    cfg.providerTimeout,
			HTTPClient: cfg.httpClient,
			Logger:     logger,
		}),
		budget, logger,
	)
	if store != nil {
		enricher = metricscache.New(enricher, store, cfg.cacheTTL, metrics.MetricCacheTotal, logger).
			WithHitRecorder(budget)
	}

	completer := completerFromConfig(cfg, logger)

	// Pass nil interface (not typed nil pointer!) if AI is not configured.
	var aiExpander candidateuc.Expander
	if completer != nil {
		aiExpander = candidateuc.NewAIExpander(completer)
	}
	generator := candidateuc.NewGenerator(candidateuc.NewRuleExpander(), aiExpander, cfg.aiTimeout, logger)

	settings := researchuc.StaticSettings(domain.ProviderSettings{
		APIKey:  cfg.providerKey,
		Enabled: !cfg.providerOff,
	})

	var storePinger healthuc.StorePinger
	if store != nil {
		storePinger = store
	}
	var completionHealth domain.HealthChecker
	if hc, ok := completer.(domain.HealthChecker); ok {
		completionHealth = hc
	}

	return &Client{
		store:       store,
		researchSvc: researchuc.New(settings, generator, enricher, cfg.batchCeiling, logger),
		healthSvc:   healthuc.New(settings, storePinger, completionHealth),
		usageSvc:    usageuc.New(budget),
		obs:         obs,
	}
}

// completerFromConfig returns nil when AI expansion is not configured.
func completerFromConfig(cfg *clientConfig, logger *zap.Logger) domain.Completer {
	switch {
	case cfg.completer != nil:
		return &completerAdapter{inner: cfg.completer}
	case cfg.openAIKey != "":
		model := cfg.openAIModel
		if model == "" {
			model = defaultOpenAIModel
		}
		return openaiCompletion.NewCompleter(&openaiCompletion.Config{
			APIKey:      cfg.openAIKey,
			Model:       model,
			Temperature: defaultTemperature,
			Logger:      logger,
		})
	default:
		return nil
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// completerAdapter wraps a public Completer to satisfy domain.Completer.
type completerAdapter struct {
	inner Completer
}

func (a *completerAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := a.inner.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return text, nil
}
