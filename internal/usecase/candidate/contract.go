package candidate

import "context"

// Expander is the AI-assisted candidate source.
type Expander interface {
	Expand(ctx context.Context, seed, country string) ([]string, error)
}
