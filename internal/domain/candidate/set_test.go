package candidate

import (
	"fmt"
	"testing"
)

func phrases(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i)
	}
	return out
}

func TestNewSet_TruncatesSources(t *testing.T) {
	s := NewSet("Seed", phrases("rule", 200), phrases("ai", 200))
	if len(s.RuleBased()) != MaxRuleBased {
		t.Errorf("RuleBased len = %d, want %d", len(s.RuleBased()), MaxRuleBased)
	}
	if len(s.AIGenerated()) != MaxAIGenerated {
		t.Errorf("AIGenerated len = %d, want %d", len(s.AIGenerated()), MaxAIGenerated)
	}
	if s.Seed() != "seed" {
		t.Errorf("Seed() = %q", s.Seed())
	}
	if !s.HasAI() {
		t.Error("HasAI() = false")
	}
}

func TestBatch_SeedFirstThenAIThenRuleBackfill(t *testing.T) {
	s := NewSet("seo", []string{"seo tools", "best seo", "SEO Guide"}, []string{"seo guide", "local seo"})
	got := s.Batch(ProviderBatchCeiling)
	want := []string{"seo", "seo guide", "local seo", "seo tools", "best seo"}
	if len(got) != len(want) {
		t.Fatalf("Batch() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Batch()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBatch_SeedNeverDroppedWhenProposedAgain(t *testing.T) {
	s := NewSet("seo", []string{"SEO"}, []string{"seo", "seo tips"})
	got := s.Batch(ProviderBatchCeiling)
	if len(got) != 2 || got[0] != "seo" || got[1] != "seo tips" {
		t.Errorf("Batch() = %v", got)
	}
}

func TestBatch_Ceiling(t *testing.T) {
	s := NewSet("seo", phrases("rule", 80), phrases("ai", 90))
	tests := []struct {
		ceiling int
		want    int
	}{
		{0, ProviderBatchCeiling},
		{-5, ProviderBatchCeiling},
		{500, ProviderBatchCeiling},
		{100, 100},
		{10, 10},
	}
	for _, tc := range tests {
		got := s.Batch(tc.ceiling)
		if len(got) != tc.want {
			t.Errorf("Batch(%d) len = %d, want %d", tc.ceiling, len(got), tc.want)
		}
		if got[0] != "seo" {
			t.Errorf("Batch(%d)[0] = %q, want seed", tc.ceiling, got[0])
		}
	}
}

func TestBatch_WithoutAI(t *testing.T) {
	s := NewSet("seo", phrases("rule", 80), nil)
	got := s.Batch(ProviderBatchCeiling)
	if len(got) != 81 {
		t.Errorf("Batch() len = %d, want 81", len(got))
	}
	if s.HasAI() {
		t.Error("HasAI() = true")
	}
}
