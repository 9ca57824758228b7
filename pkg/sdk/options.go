package kwscout

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	providerKey     string
	providerOff     bool
	providerBaseURL string
	dataSource      string
	providerTimeout time.Duration
	httpClient      *http.Client

	completer   Completer
	openAIKey   string
	openAIModel string
	aiTimeout   time.Duration

	addrs    []string
	password string
	cacheTTL time.Duration

	dailyLimit   int64
	monthlyLimit int64
	rejectOver   bool
	batchCeiling int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithProvider sets the keyword-metrics provider API key.
// Research fails with ErrProviderNotConfigured without it.
func WithProvider(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.providerKey = apiKey
	})
}

// WithProviderEnabled switches the provider on or off. A disabled provider
// fails Research with ErrProviderNotConfigured even when a key is set.
// Default: enabled whenever WithProvider supplied a key.
func WithProviderEnabled(on bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.providerOff = !on
	})
}

// WithProviderBaseURL overrides the provider endpoint root.
// Default: https://api.keywordseverywhere.com.
func WithProviderBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.providerBaseURL = baseURL
	})
}

// WithDataSource sets the provider data source ("gkp" or "cli"). Default: gkp.
func WithDataSource(ds string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataSource = ds
	})
}

// WithProviderTimeout bounds a single provider call. Default: 30s.
func WithProviderTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.providerTimeout = d
	})
}

// WithHTTPClient sets the HTTP client used for provider calls.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithCompleter sets a custom language-model collaborator for AI expansion.
// Takes precedence over WithOpenAI.
func WithCompleter(cm Completer) Option {
	return optionFunc(func(c *clientConfig) {
		c.completer = cm
	})
}

// WithOpenAI enables AI expansion through the OpenAI chat completions API.
// An empty model uses gpt-4o-mini.
func WithOpenAI(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
		c.openAIModel = model
	})
}

// WithAITimeout bounds AI candidate generation. Default: 20s.
func WithAITimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.aiTimeout = d
	})
}

// WithValkey enables the metric cache and persisted credit counters.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL sets how long provider metrics stay cached. Default: 7 days.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithBudget sets daily and monthly credit limits (0 = unlimited).
// With reject the call fails with ErrBudgetExceeded; otherwise it only warns.
func WithBudget(daily, monthly int64, reject bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyLimit = daily
		c.monthlyLimit = monthly
		c.rejectOver = reject
	})
}

// WithBatchCeiling lowers the number of phrases sent per research run.
// Values outside (0, 100] use 100.
func WithBatchCeiling(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchCeiling = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
