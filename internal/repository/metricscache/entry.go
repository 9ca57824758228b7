package metricscache

import "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"

// entry is the cached JSON form of one provider row.
type entry struct {
	NoData      bool     `json:"no_data,omitempty"`
	Volume      *float64 `json:"vol,omitempty"`
	CPC         *float64 `json:"cpc,omitempty"`
	Competition *float64 `json:"competition,omitempty"`
	Trend       []int64  `json:"trend,omitempty"`
}

func entryFromMetric(m keyword.Metric) entry {
	var e entry
	if v, ok := m.Volume(); ok {
		f := float64(v)
		e.Volume = &f
	}
	if v, ok := m.CPC(); ok {
		e.CPC = &v
	}
	if v, ok := m.Competition(); ok {
		e.Competition = &v
	}
	if t, ok := m.Trend(); ok {
		e.Trend = t
	}
	return e
}

func (e entry) toMetric(phrase string) (keyword.Metric, error) {
	var trend []float64
	if len(e.Trend) > 0 {
		trend = make([]float64, len(e.Trend))
		for i, v := range e.Trend {
			trend[i] = float64(v)
		}
	}
	return keyword.NewMetric(phrase, e.Volume, e.CPC, e.Competition, trend) //nolint:wrapcheck // validation message is self-describing
}
