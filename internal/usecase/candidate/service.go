// Package candidate generates the pre-enrichment candidate phrases for a seed.
package candidate

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/logger"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
)

// DefaultAITimeout bounds the AI expansion when no timeout is configured.
const DefaultAITimeout = 20 * time.Second

// Generator runs the rule-based and AI expanders concurrently.
type Generator struct {
	rules     *RuleExpander
	ai        Expander
	aiTimeout time.Duration
	logger    *zap.Logger
}

// NewGenerator creates a candidate generator. ai may be nil when no
// completion collaborator is configured.
func NewGenerator(rules *RuleExpander, ai Expander, aiTimeout time.Duration, logger *zap.Logger) *Generator {
	if aiTimeout <= 0 {
		aiTimeout = DefaultAITimeout
	}
	return &Generator{rules: rules, ai: ai, aiTimeout: aiTimeout, logger: logger}
}

// AIEnabled reports whether an AI expander is wired.
func (g *Generator) AIEnabled() bool { return g.ai != nil }

// Generate builds the candidate set for seed. It never fails: AI errors and
// timeouts degrade to a rule-based-only set.
func (g *Generator) Generate(ctx context.Context, seed, country string, useAI bool) domcand.Set {
	var (
		ruleBased   []string
		aiGenerated []string
		eg          errgroup.Group
	)

	eg.Go(func() error {
		ruleBased = g.rules.Expand(seed)
		return nil
	})

	if useAI && g.ai != nil {
		eg.Go(func() error {
			aiCtx, cancel := context.WithTimeout(ctx, g.aiTimeout)
			defer cancel()

			start := time.Now()
			phrases, err := g.ai.Expand(aiCtx, seed, country)
			if err != nil && aiCtx.Err() != nil {
				err = errors.Join(err, aiCtx.Err())
			}
			aiGenerated = g.aiCandidatesOrNone(ctx, phrases, err, time.Since(start))
			return nil
		})
	} else {
		metrics.AICandidatesTotal.WithLabelValues("skipped").Inc()
	}

	_ = eg.Wait() // both branches always return nil

	return domcand.NewSet(seed, ruleBased, aiGenerated)
}

// aiCandidatesOrNone is the single place where an AI failure is swallowed.
func (g *Generator) aiCandidatesOrNone(
	ctx context.Context, phrases []string, err error, elapsed time.Duration,
) []string {
	log := logger.FromContextOr(ctx, g.logger)
	if err != nil {
		result := "failed"
		if errors.Is(err, context.DeadlineExceeded) {
			result = "timeout"
		}
		metrics.AICandidatesTotal.WithLabelValues(result).Inc()
		log.Warn("AI keyword expansion unavailable, using rule-based candidates only",
			zap.String("result", result),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil
	}

	metrics.AICandidatesTotal.WithLabelValues("ok").Inc()
	log.Debug("AI keyword expansion completed",
		zap.Int("phrases", len(phrases)),
		zap.Duration("elapsed", elapsed),
	)
	return phrases
}
