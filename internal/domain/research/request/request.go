package request

import (
	"fmt"
	"strings"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/sortkey"
)

// Research parameter limits.
const (
	DefaultLimit    = 100
	MaxLimit        = 1000
	MaxQuestions    = 20
	DefaultCountry  = "us"
	DefaultCurrency = "usd"
)

// Request is a validated keyword research request.
type Request struct {
	seed     string
	country  string
	currency string
	limit    int
	useAI    bool
	sortBy   sortkey.Key
}

// New validates and normalizes research parameters.
// Defaults: country=us, currency=usd, sort=score. Limit above MaxLimit is clamped;
// callers pass DefaultLimit when the user supplied none.
func New(seed, country, currency string, limit int, useAI bool, sortBy sortkey.Key) (Request, error) {
	s := keyword.Normalize(seed)
	if s == "" {
		return Request{}, fmt.Errorf("seed keyword is required")
	}
	if keyword.Length(s) > keyword.MaxPhraseLength {
		return Request{}, fmt.Errorf("seed keyword too long (max %d chars)", keyword.MaxPhraseLength)
	}

	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		country = DefaultCountry
	}
	if !isLetters(country, 2) {
		return Request{}, fmt.Errorf("country must be a 2-letter code, got %q", country)
	}

	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if !isLetters(currency, 3) {
		return Request{}, fmt.Errorf("currency must be a 3-letter code, got %q", currency)
	}

	if limit < 0 {
		return Request{}, fmt.Errorf("limit must be >= 0")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if sortBy == "" {
		sortBy = sortkey.Score
	}
	if !sortBy.IsValid() {
		return Request{}, fmt.Errorf("invalid sort key: %q", sortBy)
	}

	return Request{
		seed:     s,
		country:  country,
		currency: currency,
		limit:    limit,
		useAI:    useAI,
		sortBy:   sortBy,
	}, nil
}

// Seed returns the normalized seed phrase.
func (r *Request) Seed() string { return r.seed }

// Country returns the lowercase target country code.
func (r *Request) Country() string { return r.country }

// Currency returns the lowercase CPC currency code.
func (r *Request) Currency() string { return r.currency }

// Limit returns the cap for related keywords.
func (r *Request) Limit() int { return r.limit }

// QuestionLimit returns the cap for question keywords: min(20, limit).
func (r *Request) QuestionLimit() int { return min(MaxQuestions, r.limit) }

// UseAI reports whether the AI expander should run.
func (r *Request) UseAI() bool { return r.useAI }

// SortBy returns the ranking order.
func (r *Request) SortBy() sortkey.Key { return r.sortBy }

func isLetters(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
