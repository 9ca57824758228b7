package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidBudgetAction(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.Budget = BudgetConfig{DailyCreditLimit: 1000, Action: "invalid_action"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid budget action")
	}

	expected := `provider.budget.action must be "warn" or "reject", got "invalid_action"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidBudgetActions(t *testing.T) {
	validActions := []string{"", "warn", "reject"}

	for _, action := range validActions {
		t.Run("action="+action, func(t *testing.T) {
			cfg := validConfig()
			cfg.Provider.Budget.Action = action

			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid action %q: %v", action, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_AI(t *testing.T) {
	cfg := validConfig()
	cfg.AI.Provider = "claude"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown ai provider")
	}

	cfg = validConfig()
	cfg.AI.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for enabled ai without key")
	}

	cfg.AI.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_BatchCeiling(t *testing.T) {
	cfg := validConfig()
	cfg.Research.BatchCeiling = 150
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for batch ceiling above the provider limit")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 90 {
		t.Errorf("expected WriteTimeoutSec=90, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Provider.DataSource != "gkp" || cfg.Provider.TimeoutSec != 30 {
		t.Errorf("provider defaults = %+v", cfg.Provider)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.Model != "gpt-4o-mini" || cfg.AI.TimeoutSec != 20 {
		t.Errorf("ai defaults = %+v", cfg.AI)
	}
	if cfg.Research.DefaultLimit != 100 || cfg.Research.DefaultCountry != "us" || cfg.Research.BatchCeiling != 100 {
		t.Errorf("research defaults = %+v", cfg.Research)
	}
	if cfg.Cache.TTLHours != 168 {
		t.Errorf("expected TTLHours=168, got %d", cfg.Cache.TTLHours)
	}
}

func TestApplyDefaults_GeminiModel(t *testing.T) {
	cfg := Config{AI: AIConfig{Provider: "gemini"}}
	cfg.ApplyDefaults()
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", cfg.AI.Model)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Research: ResearchConfig{DefaultLimit: 25, DefaultCountry: "gb", BatchCeiling: 50},
		AI:       AIConfig{Model: "custom-model", TimeoutSec: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.Research.DefaultLimit != 25 || cfg.Research.DefaultCountry != "gb" || cfg.Research.BatchCeiling != 50 {
		t.Errorf("research overridden: %+v", cfg.Research)
	}
	if cfg.AI.Model != "custom-model" || cfg.AI.TimeoutSec != 5 {
		t.Errorf("ai overridden: %+v", cfg.AI)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("KWSCOUT_TEST_PROVIDER_KEY", "kw-secret")

	cfg, err := Parse([]byte(`
http:
  port: ${KWSCOUT_TEST_PORT:-9090}
provider:
  enabled: true
  api_key: ${KWSCOUT_TEST_PROVIDER_KEY}
rate_limit:
  requests_per_minute: 30
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want default 9090", cfg.HTTP.Port)
	}
	if cfg.Provider.APIKey != "kw-secret" || !cfg.Provider.Enabled {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if cfg.RateLimit.RequestsPerMinute != 30 {
		t.Errorf("rpm = %d", cfg.RateLimit.RequestsPerMinute)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("http:\n  port: 0\n")); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("KWSCOUT_DOTENV_TEST=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KWSCOUT_DOTENV_TEST", "")
	os.Unsetenv("KWSCOUT_DOTENV_TEST")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("KWSCOUT_DOTENV_TEST"); got != "from-file" {
		t.Errorf("KWSCOUT_DOTENV_TEST = %q", got)
	}
}

func TestLoad_RepoConfigs(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("Load(%s): %v", env, err)
			}
		})
	}
}
