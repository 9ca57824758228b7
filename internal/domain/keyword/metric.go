package keyword

import (
	"fmt"
	"math"
)

// TrendMonths is the number of monthly values in a known trend.
const TrendMonths = 12

// Metric is one row of enrichment data for a phrase.
// Every numeric field may be unknown; accessors report that with a false flag.
type Metric struct {
	phrase         string
	volume         int64
	hasVolume      bool
	cpc            float64
	hasCPC         bool
	competition    float64
	hasCompetition bool
	trend          []int64
}

// NewMetric normalizes the phrase and sanitizes provider values.
// Negative, NaN or infinite numbers become unknown, competition outside [0,1]
// becomes unknown, and trends shorter than 12 months are dropped.
func NewMetric(phrase string, volume, cpc, competition *float64, trend []float64) (Metric, error) {
	p := Normalize(phrase)
	if p == "" {
		return Metric{}, fmt.Errorf("phrase is required")
	}
	if Length(p) > MaxPhraseLength {
		return Metric{}, fmt.Errorf("phrase too long (max %d chars)", MaxPhraseLength)
	}

	m := Metric{phrase: p}
	if v, ok := finiteNonNegative(volume); ok {
		m.volume = int64(v)
		m.hasVolume = true
	}
	if v, ok := finiteNonNegative(cpc); ok {
		m.cpc = v
		m.hasCPC = true
	}
	if v, ok := finiteNonNegative(competition); ok && v <= 1 {
		m.competition = v
		m.hasCompetition = true
	}
	m.trend = normalizeTrend(trend)
	return m, nil
}

// NoData returns a metric for a phrase the provider knows nothing about.
func NoData(phrase string) (Metric, error) {
	return NewMetric(phrase, nil, nil, nil, nil)
}

// Phrase returns the normalized phrase.
func (m Metric) Phrase() string { return m.phrase }

// Volume returns the monthly search count.
func (m Metric) Volume() (int64, bool) { return m.volume, m.hasVolume }

// CPC returns the cost per click.
func (m Metric) CPC() (float64, bool) { return m.cpc, m.hasCPC }

// Competition returns the advertiser competition in [0,1].
func (m Metric) Competition() (float64, bool) { return m.competition, m.hasCompetition }

// Trend returns the last 12 monthly volumes, oldest first.
func (m Metric) Trend() ([]int64, bool) { return m.trend, m.trend != nil }

// WordCount returns the number of words in the phrase.
func (m Metric) WordCount() int { return WordCount(m.phrase) }

// HasData reports whether the metric carries a positive search volume.
// Metrics without data contribute no signal and never reach ranked output.
func (m Metric) HasData() bool { return m.hasVolume && m.volume > 0 }

func finiteNonNegative(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0, false
	}
	return *v, true
}

func normalizeTrend(trend []float64) []int64 {
	if len(trend) < TrendMonths {
		return nil
	}
	recent := trend[len(trend)-TrendMonths:]
	out := make([]int64, TrendMonths)
	for i, v := range recent {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			v = 0
		}
		out[i] = int64(v)
	}
	return out
}
