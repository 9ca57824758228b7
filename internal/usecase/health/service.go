package health

import (
	"context"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component failed; research still works.
	Degraded Status = "degraded"
	// Unhealthy indicates research requests cannot succeed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	settings   SettingsSource
	store      StorePinger
	completion domain.HealthChecker
}

// New creates a Service. store and completion can be nil when not configured.
func New(settings SettingsSource, store StorePinger, completion domain.HealthChecker) *Service {
	return &Service{settings: settings, store: store, completion: completion}
}

// Check runs health checks against all components. The keyword provider is
// only checked for configuration: probing it would spend credits.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	settings, err := s.settings.ProviderSettings(ctx)
	providerOK := err == nil && settings.Configured()
	checks["provider"] = result(providerOK)

	if s.store != nil {
		checks["cache"] = result(s.store.Ping(ctx) == nil)
	}
	if s.completion != nil {
		checks["completion"] = result(s.completion.HealthCheck(ctx) == nil)
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if !providerOK {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
