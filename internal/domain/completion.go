package domain

import "context"

// Completer is the opaque language-model completion collaborator.
// It accepts a single text prompt and returns free-form text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HealthChecker verifies collaborator availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
