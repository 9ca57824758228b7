package request

import (
	"strings"
	"testing"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/research/sortkey"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("  Content   Marketing ", "", "", DefaultLimit, false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Seed() != "content marketing" {
		t.Errorf("Seed() = %q", r.Seed())
	}
	if r.Country() != DefaultCountry {
		t.Errorf("Country() = %q", r.Country())
	}
	if r.Currency() != DefaultCurrency {
		t.Errorf("Currency() = %q", r.Currency())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d", r.Limit())
	}
	if r.QuestionLimit() != MaxQuestions {
		t.Errorf("QuestionLimit() = %d", r.QuestionLimit())
	}
	if r.SortBy() != sortkey.Score {
		t.Errorf("SortBy() = %q", r.SortBy())
	}
	if r.UseAI() {
		t.Error("UseAI() = true")
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	r, err := New("seo", "GB", "EUR", 5, true, sortkey.Volume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Country() != "gb" || r.Currency() != "eur" {
		t.Errorf("Country/Currency = %q/%q", r.Country(), r.Currency())
	}
	if r.Limit() != 5 || r.QuestionLimit() != 5 {
		t.Errorf("Limit/QuestionLimit = %d/%d", r.Limit(), r.QuestionLimit())
	}
	if !r.UseAI() || r.SortBy() != sortkey.Volume {
		t.Errorf("UseAI/SortBy = %v/%q", r.UseAI(), r.SortBy())
	}
}

func TestNew_LimitBounds(t *testing.T) {
	r, err := New("seo", "", "", 0, false, "")
	if err != nil {
		t.Fatalf("zero limit should be valid: %v", err)
	}
	if r.Limit() != 0 || r.QuestionLimit() != 0 {
		t.Errorf("Limit/QuestionLimit = %d/%d", r.Limit(), r.QuestionLimit())
	}

	r, err = New("seo", "", "", MaxLimit+50, false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want clamp to %d", r.Limit(), MaxLimit)
	}

	if _, err := New("seo", "", "", -1, false, ""); err == nil {
		t.Error("expected error for negative limit")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		seed     string
		country  string
		currency string
		sortBy   sortkey.Key
		contains string
	}{
		{"empty seed", "   ", "", "", "", "required"},
		{"long seed", strings.Repeat("x", 101), "", "", "", "too long"},
		{"bad country", "seo", "usa", "", "", "country"},
		{"digit country", "seo", "u1", "", "", "country"},
		{"bad currency", "seo", "", "dollars", "", "currency"},
		{"bad sort", "seo", "", "", "random", "sort"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.seed, tc.country, tc.currency, 10, false, tc.sortBy)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Errorf("error = %q, want it to mention %q", err, tc.contains)
			}
		})
	}
}
