package sortkey

// Key is the ranking order of result lists.
type Key string

// Sort key constants.
const (
	// Score sorts by opportunity score, highest first.
	Score  Key = "score"
	Volume Key = "volume"
	CPC    Key = "cpc"
	// Competition sorts by competition, lowest first.
	Competition Key = "competition"
)

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	return k == Score || k == Volume || k == CPC || k == Competition
}
