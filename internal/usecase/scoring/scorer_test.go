package scoring

import (
	"testing"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

func f(v float64) *float64 { return &v }

func metric(t *testing.T, phrase string, vol, cpc, comp *float64) keyword.Metric {
	t.Helper()
	m, err := keyword.NewMetric(phrase, vol, cpc, comp, nil)
	if err != nil {
		t.Fatalf("NewMetric(%q): %v", phrase, err)
	}
	return m
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		phrase    string
		vol       *float64
		cpc       *float64
		comp      *float64
		score     int
		rationale string
	}{
		{
			name:   "top tier everywhere",
			phrase: "best crm for small business",
			vol:    f(20000), cpc: f(8.5), comp: f(0.1),
			score:     100,
			rationale: "High volume, Very low competition, Long-tail keyword, High commercial value",
		},
		{
			name:   "content marketing tips",
			phrase: "content marketing tips",
			vol:    f(2400), cpc: f(3.10), comp: f(0.35),
			score:     75,
			rationale: "Good volume, Low competition, Specific phrase, Commercial value",
		},
		{
			name:   "single word high competition",
			phrase: "seo",
			vol:    f(500), cpc: f(0.5), comp: f(0.9),
			score:     25,
			rationale: "Moderate volume, High competition",
		},
		{
			name:   "unknown competition scores five without label",
			phrase: "seo tools",
			vol:    f(50),
			score:     25,
			rationale: "Low volume, Two-word phrase",
		},
		{
			name:   "boundaries are exclusive",
			phrase: "crm",
			vol:    f(10000), cpc: f(5), comp: f(0.2),
			score:     30 + 25 + 5,
			rationale: "Good volume, Low competition, Commercial value",
		},
		{
			name:   "medium competition",
			phrase: "crm pricing",
			vol:    f(101), cpc: f(1), comp: f(0.79),
			score:     20 + 15 + 10,
			rationale: "Moderate volume, Medium competition, Two-word phrase",
		},
		{
			name:      "nothing known",
			phrase:    "crm",
			score:     5,
			rationale: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := metric(t, tc.phrase, tc.vol, tc.cpc, tc.comp)
			score, rationale := Score(m)
			if score != tc.score {
				t.Errorf("score = %d, want %d", score, tc.score)
			}
			if rationale != tc.rationale {
				t.Errorf("rationale = %q, want %q", rationale, tc.rationale)
			}
		})
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	vols := []*float64{nil, f(0), f(1), f(150), f(5000), f(1e9)}
	cpcs := []*float64{nil, f(0), f(2), f(100)}
	comps := []*float64{nil, f(0), f(0.3), f(0.6), f(1)}
	phrases := []string{"a", "a b", "a b c", "a b c d e f g"}

	for _, v := range vols {
		for _, c := range cpcs {
			for _, k := range comps {
				for _, p := range phrases {
					score, _ := Score(metric(t, p, v, c, k))
					if score < 0 || score > MaxScore {
						t.Fatalf("score %d out of range for %q", score, p)
					}
				}
			}
		}
	}
}

func TestScoreMetric(t *testing.T) {
	m := metric(t, "how to start a blog", f(12000), f(2), f(0.4))
	s := ScoreMetric(m)
	if s.Score() != 40+25+20+5 {
		t.Errorf("Score() = %d", s.Score())
	}
	if s.Phrase() != "how to start a blog" {
		t.Errorf("Phrase() = %q", s.Phrase())
	}

	all := ScoreAll([]keyword.Metric{m, metric(t, "blog", f(10), nil, nil)})
	if len(all) != 2 || all[1].Phrase() != "blog" {
		t.Errorf("ScoreAll order not preserved: %v", all)
	}
}
