// Package candidate holds the pre-enrichment candidate phrases for one seed.
package candidate

import "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"

// Candidate limits.
const (
	// MaxRuleBased caps the rule-based expansion.
	MaxRuleBased = 80
	// MaxAIGenerated caps the AI-assisted expansion.
	MaxAIGenerated = 90
	// ProviderBatchCeiling is the maximum number of phrases per enrichment call.
	ProviderBatchCeiling = 100
)

// Set is the union of candidates before enrichment.
type Set struct {
	seed        string
	ruleBased   []string
	aiGenerated []string
}

// NewSet creates a candidate set, truncating each source to its cap.
func NewSet(seed string, ruleBased, aiGenerated []string) Set {
	if len(ruleBased) > MaxRuleBased {
		ruleBased = ruleBased[:MaxRuleBased]
	}
	if len(aiGenerated) > MaxAIGenerated {
		aiGenerated = aiGenerated[:MaxAIGenerated]
	}
	return Set{
		seed:        keyword.Normalize(seed),
		ruleBased:   ruleBased,
		aiGenerated: aiGenerated,
	}
}

// Seed returns the normalized seed phrase.
func (s Set) Seed() string { return s.seed }

// RuleBased returns the rule-based candidates in generation order.
func (s Set) RuleBased() []string { return s.ruleBased }

// AIGenerated returns the AI candidates in generation order.
func (s Set) AIGenerated() []string { return s.aiGenerated }

// HasAI reports whether the AI expander contributed any phrase.
func (s Set) HasAI() bool { return len(s.aiGenerated) > 0 }

// Batch returns the phrases to send for enrichment: the seed first, then AI
// candidates, then rule-based candidates not already present (case-insensitive).
// A ceiling outside (0, ProviderBatchCeiling] uses ProviderBatchCeiling.
func (s Set) Batch(ceiling int) []string {
	if ceiling <= 0 || ceiling > ProviderBatchCeiling {
		ceiling = ProviderBatchCeiling
	}

	out := make([]string, 0, ceiling)
	seen := make(map[string]struct{}, ceiling)
	add := func(p string) {
		if len(out) >= ceiling {
			return
		}
		n := keyword.Normalize(p)
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	if s.seed != "" {
		add(s.seed)
	}
	for _, p := range s.aiGenerated {
		add(p)
	}
	for _, p := range s.ruleBased {
		add(p)
	}
	return out
}
