// Package scoring computes the opportunity score of an enriched keyword.
package scoring

import (
	"strings"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

// MaxScore is the upper bound of an opportunity score.
const MaxScore = 100

type tier struct {
	points int
	label  string
}

// Score returns the 0..100 opportunity score of m and the comma-joined
// labels of every component that contributed. Pure and deterministic.
func Score(m keyword.Metric) (int, string) {
	var (
		total  int
		labels []string
	)
	add := func(t tier) {
		total += t.points
		if t.label != "" {
			labels = append(labels, t.label)
		}
	}

	add(volumeTier(m))
	add(competitionTier(m))
	add(lengthTier(m.WordCount()))
	add(cpcTier(m))

	return min(max(total, 0), MaxScore), strings.Join(labels, ", ")
}

// ScoreMetric attaches the score and rationale to m.
func ScoreMetric(m keyword.Metric) keyword.Scored {
	score, rationale := Score(m)
	return keyword.NewScored(m, score, rationale)
}

// ScoreAll scores every metric, preserving order.
func ScoreAll(ms []keyword.Metric) []keyword.Scored {
	out := make([]keyword.Scored, len(ms))
	for i, m := range ms {
		out[i] = ScoreMetric(m)
	}
	return out
}

func volumeTier(m keyword.Metric) tier {
	v, ok := m.Volume()
	switch {
	case !ok:
		return tier{}
	case v > 10000:
		return tier{40, "High volume"}
	case v > 1000:
		return tier{30, "Good volume"}
	case v > 100:
		return tier{20, "Moderate volume"}
	case v > 0:
		return tier{10, "Low volume"}
	default:
		return tier{}
	}
}

// competitionTier awards 5 points to unknown competition, same as high,
// but only labels it when the value is actually known.
func competitionTier(m keyword.Metric) tier {
	c, ok := m.Competition()
	switch {
	case !ok:
		return tier{points: 5}
	case c < 0.2:
		return tier{30, "Very low competition"}
	case c < 0.5:
		return tier{25, "Low competition"}
	case c < 0.8:
		return tier{15, "Medium competition"}
	default:
		return tier{5, "High competition"}
	}
}

func lengthTier(words int) tier {
	switch {
	case words >= 4:
		return tier{20, "Long-tail keyword"}
	case words == 3:
		return tier{15, "Specific phrase"}
	case words == 2:
		return tier{10, "Two-word phrase"}
	default:
		return tier{}
	}
}

func cpcTier(m keyword.Metric) tier {
	c, ok := m.CPC()
	switch {
	case !ok:
		return tier{}
	case c > 5:
		return tier{10, "High commercial value"}
	case c > 1:
		return tier{5, "Commercial value"}
	default:
		return tier{}
	}
}
