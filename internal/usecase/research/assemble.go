package research

import (
	"cmp"
	"slices"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/result"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/sortkey"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/scoring"
)

// assemble scores, ranks and truncates the classified metrics.
// Ties keep classifier order. No I/O.
func assemble(seed string, c classification, limit, questionLimit int, sortBy sortkey.Key) result.Result {
	related := rank(scoring.ScoreAll(c.related), sortBy)
	questions := rank(scoring.ScoreAll(c.questions), sortBy)

	return result.New(
		keyword.Normalize(seed),
		scoring.ScoreAll(c.seed),
		truncate(related, limit),
		truncate(questions, questionLimit),
		c.total,
	)
}

func rank(items []keyword.Scored, sortBy sortkey.Key) []keyword.Scored {
	slices.SortStableFunc(items, comparator(sortBy))
	return items
}

func comparator(sortBy sortkey.Key) func(a, b keyword.Scored) int {
	switch sortBy {
	case sortkey.Volume:
		return func(a, b keyword.Scored) int {
			return compareKnown(a.Volume, b.Volume, true)
		}
	case sortkey.CPC:
		return func(a, b keyword.Scored) int {
			return compareKnown(a.CPC, b.CPC, true)
		}
	case sortkey.Competition:
		return func(a, b keyword.Scored) int {
			return compareKnown(a.Competition, b.Competition, false)
		}
	default:
		return func(a, b keyword.Scored) int {
			return cmp.Compare(b.Score(), a.Score())
		}
	}
}

// compareKnown orders known values before unknown ones.
func compareKnown[T cmp.Ordered](a, b func() (T, bool), desc bool) int {
	av, aok := a()
	bv, bok := b()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	case desc:
		return cmp.Compare(bv, av)
	default:
		return cmp.Compare(av, bv)
	}
}

func truncate(items []keyword.Scored, n int) []keyword.Scored {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	if items == nil {
		return []keyword.Scored{}
	}
	return items
}
