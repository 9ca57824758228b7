package kwscout

import (
	"context"
	"fmt"
	"time"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/request"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/result"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/sortkey"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/scoring"
)

// researchUseCase is the internal interface for the research pipeline.
type researchUseCase interface {
	Research(ctx context.Context, req *request.Request) (result.Result, error)
}

// ResearchOption adjusts a single research call.
type ResearchOption func(*researchParams)

type researchParams struct {
	country  string
	currency string
	limit    int
	useAI    bool
	sortBy   SortBy
}

// Country sets the 2-letter target market. Default: us.
func Country(code string) ResearchOption {
	return func(p *researchParams) { p.country = code }
}

// Currency sets the 3-letter CPC currency. Default: usd.
func Currency(code string) ResearchOption {
	return func(p *researchParams) { p.currency = code }
}

// Limit caps the related keywords list (0..1000). Default: 100.
// Question keywords are capped at min(20, limit).
func Limit(n int) ResearchOption {
	return func(p *researchParams) { p.limit = n }
}

// UseAI requests AI candidate expansion when a completer is configured.
func UseAI(on bool) ResearchOption {
	return func(p *researchParams) { p.useAI = on }
}

// Sort sets the ranking order. Default: SortScore.
func Sort(s SortBy) ResearchOption {
	return func(p *researchParams) { p.sortBy = s }
}

// Research expands seed into candidate phrases, fetches their metrics in one
// provider call and returns them scored and ranked.
// Provider failures are returned as *ProviderError wrapping an ErrProvider* sentinel.
func (c *Client) Research(ctx context.Context, seed string, opts ...ResearchOption) (out ResearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observeResearch(start, &out, err) }()

	p := researchParams{limit: request.DefaultLimit}
	for _, o := range opts {
		o(&p)
	}

	req, err := request.New(seed, p.country, p.currency, p.limit, p.useAI, sortkey.Key(p.sortBy))
	if err != nil {
		return ResearchResult{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ctx, usage := domain.NewContextWithCreditUsage(ctx)

	res, err := c.researchSvc.Research(ctx, &req)
	if err != nil {
		return ResearchResult{}, fmt.Errorf("research: %w", err)
	}

	out = resultFromDomain(&res)
	out.CreditsUsed = usage.Credits()
	out.CacheHits = usage.CacheHits()
	return out, nil
}

// Score scores caller-supplied metrics with the same rules the research
// pipeline uses. It makes no network calls.
func (c *Client) Score(items []MetricInput) (_ []Keyword, err error) {
	start := time.Now()
	defer func() { c.obs.observe("score", start, err) }()

	return Score(items)
}

// Score is the client-less form of Client.Score.
func Score(items []MetricInput) ([]Keyword, error) {
	out := make([]Keyword, 0, len(items))
	for i, it := range items {
		m, err := keyword.NewMetric(it.Keyword, it.Volume, it.CPC, it.Competition, it.Trend)
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d]: %w", ErrInvalidRequest, i, err)
		}
		out = append(out, keywordFromDomain(scoring.ScoreMetric(m)))
	}
	return out, nil
}

func resultFromDomain(r *result.Result) ResearchResult {
	return ResearchResult{
		SeedKeyword:      r.SeedKeyword(),
		Keywords:         keywordsFromDomain(r.Keywords()),
		RelatedKeywords:  keywordsFromDomain(r.RelatedKeywords()),
		QuestionKeywords: keywordsFromDomain(r.QuestionKeywords()),
		TotalResults:     r.TotalResults(),
	}
}

func keywordsFromDomain(in []keyword.Scored) []Keyword {
	out := make([]Keyword, 0, len(in))
	for _, k := range in {
		out = append(out, keywordFromDomain(k))
	}
	return out
}

func keywordFromDomain(k keyword.Scored) Keyword {
	out := Keyword{
		Keyword:   k.Phrase(),
		Score:     k.Score(),
		Rationale: k.Rationale(),
	}
	if v, ok := k.Volume(); ok {
		out.Volume = &v
	}
	if v, ok := k.CPC(); ok {
		out.CPC = &v
	}
	if v, ok := k.Competition(); ok {
		out.Competition = &v
	}
	if t, ok := k.Trend(); ok {
		out.Trend = t
	}
	return out
}
