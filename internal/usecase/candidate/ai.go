package candidate

import (
	"context"
	"fmt"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
)

// AIExpander asks the completion collaborator for candidate phrases.
type AIExpander struct {
	completer domain.Completer
}

// NewAIExpander creates an AI-assisted expander.
func NewAIExpander(completer domain.Completer) *AIExpander {
	return &AIExpander{completer: completer}
}

// Expand returns sanitized AI phrases for seed. Every failure, including an
// empty usable result, is reported as domain.ErrAIGeneration.
func (e *AIExpander) Expand(ctx context.Context, seed, country string) ([]string, error) {
	text, err := e.completer.Complete(ctx, BuildPrompt(seed, country))
	if err != nil {
		return nil, fmt.Errorf("%w: complete: %w", domain.ErrAIGeneration, err)
	}

	phrases := sanitizePhrases(seed, extractPhrases(text))
	if len(phrases) == 0 {
		return nil, fmt.Errorf("%w: no usable phrases in completion", domain.ErrAIGeneration)
	}
	return phrases, nil
}
