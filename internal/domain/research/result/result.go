package result

import "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"

// Result is the keyword research response, built fresh per request.
type Result struct {
	seedKeyword      string
	keywords         []keyword.Scored
	relatedKeywords  []keyword.Scored
	questionKeywords []keyword.Scored
	totalResults     int
}

// New creates a research result.
func New(
	seed string, keywords, related, questions []keyword.Scored, total int,
) Result {
	return Result{
		seedKeyword:      seed,
		keywords:         keywords,
		relatedKeywords:  related,
		questionKeywords: questions,
		totalResults:     total,
	}
}

// SeedKeyword returns the normalized seed phrase.
func (r *Result) SeedKeyword() string { return r.seedKeyword }

// Keywords returns the seed's own scored metric (zero or one entry).
func (r *Result) Keywords() []keyword.Scored { return r.keywords }

// RelatedKeywords returns the ranked non-question phrases.
func (r *Result) RelatedKeywords() []keyword.Scored { return r.relatedKeywords }

// QuestionKeywords returns the ranked question phrases.
func (r *Result) QuestionKeywords() []keyword.Scored { return r.questionKeywords }

// TotalResults returns how many phrases had usable metrics, before truncation.
func (r *Result) TotalResults() int { return r.totalResults }
