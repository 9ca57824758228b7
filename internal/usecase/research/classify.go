package research

import (
	"slices"
	"strings"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

// questionMarkers are matched as plain substrings, so "know-how" counts as a question.
var questionMarkers = []string{"how", "what", "why", "when", "where", "?"}

type classification struct {
	seed      []keyword.Metric // zero or one entry
	related   []keyword.Metric
	questions []keyword.Metric
	total     int
}

// classify drops metrics without data, keeps the first row per phrase,
// and splits the rest into the seed, questions and related phrases.
func classify(seed string, ms []keyword.Metric) classification {
	seed = keyword.Normalize(seed)
	var c classification
	seen := make(map[string]struct{}, len(ms))

	for _, m := range ms {
		if !m.HasData() {
			continue
		}
		if _, ok := seen[m.Phrase()]; ok {
			continue
		}
		seen[m.Phrase()] = struct{}{}
		c.total++

		switch {
		case m.Phrase() == seed:
			c.seed = append(c.seed, m)
		case isQuestion(m.Phrase()):
			c.questions = append(c.questions, m)
		default:
			c.related = append(c.related, m)
		}
	}
	return c
}

func isQuestion(phrase string) bool {
	p := strings.ToLower(phrase)
	for _, marker := range questionMarkers {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}

// inBatchOrder stable-sorts provider rows by their phrase's position in the
// batch, so ties break by generation order whatever order the rows came back in.
// Rows for phrases outside the batch go last.
func inBatchOrder(batch []string, ms []keyword.Metric) []keyword.Metric {
	pos := make(map[string]int, len(batch))
	for i, p := range batch {
		p = keyword.Normalize(p)
		if _, ok := pos[p]; !ok {
			pos[p] = i
		}
	}
	rank := func(m keyword.Metric) int {
		if i, ok := pos[m.Phrase()]; ok {
			return i
		}
		return len(batch)
	}

	out := slices.Clone(ms)
	slices.SortStableFunc(out, func(a, b keyword.Metric) int {
		return rank(a) - rank(b)
	})
	return out
}
