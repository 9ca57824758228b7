package keyword

// Scored is a metric with its computed opportunity score.
// It is derived on demand and never persisted.
type Scored struct {
	Metric
	score     int
	rationale string
}

// NewScored attaches a score and rationale to a metric.
func NewScored(m Metric, score int, rationale string) Scored {
	return Scored{Metric: m, score: score, rationale: rationale}
}

// Score returns the opportunity score in [0,100].
func (s Scored) Score() int { return s.score }

// Rationale returns the comma-joined scoring reasons.
func (s Scored) Rationale() string { return s.rationale }
