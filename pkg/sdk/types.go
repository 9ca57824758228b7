package kwscout

import "context"

// Completer is a language-model collaborator used for AI candidate expansion.
// It takes one text prompt and returns free-form text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SortBy is the ranking order of result lists.
type SortBy string

// SortBy constants.
const (
	SortScore       SortBy = "score"
	SortVolume      SortBy = "volume"
	SortCPC         SortBy = "cpc"
	SortCompetition SortBy = "competition"
)

// Keyword is a scored keyword metric. Nil pointers mean the provider had no value.
type Keyword struct {
	Keyword     string   `json:"keyword"`
	Volume      *int64   `json:"volume"`
	CPC         *float64 `json:"cpc"`
	Competition *float64 `json:"competition"`
	Trend       []int64  `json:"trend,omitempty"`
	Score       int      `json:"score"`
	Rationale   string   `json:"rationale"`
}

// ResearchResult is the outcome of one research run.
type ResearchResult struct {
	SeedKeyword      string    `json:"seedKeyword"`
	Keywords         []Keyword `json:"keywords"` // the seed's own metric, zero or one entry
	RelatedKeywords  []Keyword `json:"relatedKeywords"`
	QuestionKeywords []Keyword `json:"questionKeywords"`
	TotalResults     int       `json:"totalResults"`
	// CreditsUsed is the number of phrases billed by the provider.
	CreditsUsed int `json:"creditsUsed"`
	CacheHits   int `json:"cacheHits"`
}

// MetricInput is a caller-supplied metric for Score.
type MetricInput struct {
	Keyword     string    `json:"keyword"`
	Volume      *float64  `json:"volume"`
	CPC         *float64  `json:"cpc"`
	Competition *float64  `json:"competition"`
	Trend       []float64 `json:"trend"`
}
