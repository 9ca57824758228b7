// Package research runs the keyword opportunity research pipeline.
package research

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/request"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/result"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/logger"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
)

// Service turns a seed phrase into a ranked research result.
type Service struct {
	settings     SettingsSource
	candidates   CandidateGenerator
	enricher     domain.Enricher
	batchCeiling int
	logger       *zap.Logger
}

// New creates a research service. A batchCeiling outside (0, 100] uses 100.
func New(
	settings SettingsSource, candidates CandidateGenerator, enricher domain.Enricher,
	batchCeiling int, logger *zap.Logger,
) *Service {
	if batchCeiling <= 0 || batchCeiling > domcand.ProviderBatchCeiling {
		batchCeiling = domcand.ProviderBatchCeiling
	}
	return &Service{
		settings:     settings,
		candidates:   candidates,
		enricher:     enricher,
		batchCeiling: batchCeiling,
		logger:       logger,
	}
}

// Research generates candidates, enriches them in one provider call,
// and returns the classified, scored and ranked result.
// Only configuration and enrichment failures are returned.
func (s *Service) Research(ctx context.Context, req *request.Request) (result.Result, error) {
	ctx, log := logger.With(ctx, s.logger,
		zap.String("run_id", uuid.NewString()),
		zap.String("seed", req.Seed()),
		zap.String("country", req.Country()),
	)
	start := time.Now()

	settings, err := s.settings.ProviderSettings(ctx)
	if err != nil {
		metrics.ResearchRunsTotal.WithLabelValues("error").Inc()
		return result.Result{}, fmt.Errorf("%w: load provider settings: %w", domain.ErrConfiguration, err)
	}
	if !settings.Configured() {
		metrics.ResearchRunsTotal.WithLabelValues("error").Inc()
		log.Warn("Keyword research rejected: provider disabled or missing API key",
			zap.Bool("enabled", settings.Enabled))
		return result.Result{}, fmt.Errorf("research: %w", domain.ErrConfiguration)
	}

	set := s.candidates.Generate(ctx, req.Seed(), req.Country(), req.UseAI())
	batch := set.Batch(s.batchCeiling)

	found, err := s.enricher.Enrich(ctx, domain.EnrichmentQuery{
		Phrases:  batch,
		Country:  req.Country(),
		Currency: req.Currency(),
		APIKey:   settings.APIKey,
	})
	if err != nil {
		metrics.ResearchRunsTotal.WithLabelValues("error").Inc()
		log.Error("Keyword enrichment failed",
			zap.Int("batch_size", len(batch)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return result.Result{}, fmt.Errorf("enrich keywords: %w", err)
	}

	c := classify(req.Seed(), inBatchOrder(batch, found))
	res := assemble(req.Seed(), c, req.Limit(), req.QuestionLimit(), req.SortBy())

	metrics.ResearchRunsTotal.WithLabelValues("ok").Inc()
	log.Info("Keyword research completed",
		zap.Int("rule_candidates", len(set.RuleBased())),
		zap.Int("ai_candidates", len(set.AIGenerated())),
		zap.Int("batch_size", len(batch)),
		zap.Int("with_data", c.total),
		zap.Int("related", len(res.RelatedKeywords())),
		zap.Int("questions", len(res.QuestionKeywords())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}
