package keyword

import (
	"math"
	"strings"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Content Marketing", "content marketing"},
		{"  content   marketing\t tips ", "content marketing tips"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewMetric_Values(t *testing.T) {
	trend := make([]float64, 14)
	for i := range trend {
		trend[i] = float64(i * 10)
	}
	m, err := NewMetric("  SEO Tools ", f64(1200.7), f64(2.5), f64(0.3), trend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Phrase() != "seo tools" {
		t.Errorf("Phrase() = %q", m.Phrase())
	}
	if v, ok := m.Volume(); !ok || v != 1200 {
		t.Errorf("Volume() = %d, %v", v, ok)
	}
	if v, ok := m.CPC(); !ok || v != 2.5 {
		t.Errorf("CPC() = %f, %v", v, ok)
	}
	if v, ok := m.Competition(); !ok || v != 0.3 {
		t.Errorf("Competition() = %f, %v", v, ok)
	}
	tr, ok := m.Trend()
	if !ok || len(tr) != TrendMonths {
		t.Fatalf("Trend() len = %d, %v", len(tr), ok)
	}
	if tr[0] != 20 || tr[11] != 130 {
		t.Errorf("expected the 12 most recent values, got %v", tr)
	}
	if !m.HasData() {
		t.Error("HasData() = false")
	}
	if m.WordCount() != 2 {
		t.Errorf("WordCount() = %d", m.WordCount())
	}
}

func TestNewMetric_Unknowns(t *testing.T) {
	tests := []struct {
		name        string
		volume      *float64
		cpc         *float64
		competition *float64
	}{
		{"nil", nil, nil, nil},
		{"negative", f64(-1), f64(-0.5), f64(-0.1)},
		{"nan", f64(math.NaN()), f64(math.NaN()), f64(math.NaN())},
		{"inf", f64(math.Inf(1)), f64(math.Inf(1)), f64(1.5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMetric("seo", tc.volume, tc.cpc, tc.competition, []float64{1, 2, 3})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := m.Volume(); ok {
				t.Error("volume should be unknown")
			}
			if _, ok := m.CPC(); ok {
				t.Error("cpc should be unknown")
			}
			if _, ok := m.Competition(); ok {
				t.Error("competition should be unknown")
			}
			if _, ok := m.Trend(); ok {
				t.Error("short trend should be unknown")
			}
			if m.HasData() {
				t.Error("HasData() = true")
			}
		})
	}
}

func TestNewMetric_ZeroVolumeHasNoData(t *testing.T) {
	m, err := NewMetric("seo", f64(0), nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := m.Volume(); !ok || v != 0 {
		t.Errorf("Volume() = %d, %v", v, ok)
	}
	if m.HasData() {
		t.Error("zero volume must not count as data")
	}
}

func TestNewMetric_InvalidPhrase(t *testing.T) {
	if _, err := NewMetric("   ", nil, nil, nil, nil); err == nil {
		t.Error("expected error for empty phrase")
	}
	if _, err := NewMetric(strings.Repeat("a", MaxPhraseLength+1), nil, nil, nil, nil); err == nil {
		t.Error("expected error for long phrase")
	}
}

func TestNewScored(t *testing.T) {
	m, _ := NewMetric("seo", f64(10), nil, nil, nil)
	s := NewScored(m, 42, "Low volume")
	if s.Score() != 42 || s.Rationale() != "Low volume" || s.Phrase() != "seo" {
		t.Errorf("unexpected scored: %d %q %q", s.Score(), s.Rationale(), s.Phrase())
	}
}
