package research

import (
	"testing"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

func f(v float64) *float64 { return &v }

// row builds a metric with volume, cpc and competition; negative values mean unknown.
func row(t *testing.T, phrase string, vol, cpc, comp float64) keyword.Metric {
	t.Helper()
	opt := func(v float64) *float64 {
		if v < 0 {
			return nil
		}
		return f(v)
	}
	m, err := keyword.NewMetric(phrase, opt(vol), opt(cpc), opt(comp), nil)
	if err != nil {
		t.Fatalf("NewMetric(%q): %v", phrase, err)
	}
	return m
}

func phrasesOf(items []keyword.Scored) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Phrase()
	}
	return out
}
