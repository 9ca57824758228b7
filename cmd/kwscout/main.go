package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/config"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/db"
	dbRedis "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/db/redis"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	logpkg "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/logger"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
	budgetrepo "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/repository/budget"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/repository/metricscache"
	ratelimitrepo "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/repository/ratelimit"
	chiTransport "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/transport/chi"
	genaiCompletion "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/transport/genai"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/transport/kwprovider"
	openaiCompletion "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/transport/openai"
	candidateuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/candidate"
	enrichmentuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/enrichment"
	healthuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/health"
	ratelimituc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/ratelimit"
	researchuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/research"
	usageuc "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/usage"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/version"
)

func main() {
	// .env is optional; real environment variables win
	if err := config.LoadDotEnv(".env"); err != nil {
		panic("failed to load .env: " + err.Error())
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting kwscout API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("provider_enabled", cfg.Provider.Enabled),
		zap.Bool("ai_enabled", cfg.AI.Enabled),
	)

	ctx := context.Background()

	// Store is optional: without it there is no metric cache and counters live in memory.
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer s.Close()

		if err := s.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")
		store = s
	} else {
		logger.Warn("No database configured, running without metric cache")
	}

	// Register research metrics explicitly (no init())
	metrics.RegisterResearchMetrics()

	// Single CreditBudget shared by the enricher chain and the usage service.
	action := enrichmentuc.BudgetActionWarn
	if cfg.Provider.Budget.Action == "reject" {
		action = enrichmentuc.BudgetActionReject
	}
	budget := enrichmentuc.NewCreditBudget(
		cfg.Provider.Budget.DailyCreditLimit, cfg.Provider.Budget.MonthlyCreditLimit, action, logger,
	)
	if store != nil {
		budget.WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
	}

	enricher := buildEnricher(cfg, store, budget, logger)

	completer, completionHealth := buildCompleter(ctx, cfg.AI, logger)

	// Pass nil interface (not typed nil pointer!) if AI is not configured.
	var aiExpander candidateuc.Expander
	if completer != nil {
		aiExpander = candidateuc.NewAIExpander(completer)
	}
	generator := candidateuc.NewGenerator(
		candidateuc.NewRuleExpander(), aiExpander,
		time.Duration(cfg.AI.TimeoutSec)*time.Second, logger,
	)

	settings := researchuc.StaticSettings(domain.ProviderSettings{
		APIKey:  cfg.Provider.APIKey,
		Enabled: cfg.Provider.Enabled,
	})
	researchSvc := researchuc.New(settings, generator, enricher, cfg.Research.BatchCeiling, logger)
	usageSvc := usageuc.New(budget)

	var storePinger healthuc.StorePinger
	if store != nil {
		storePinger = store
	}
	healthSvc := healthuc.New(settings, storePinger, completionHealth)

	var limiterStore ratelimituc.Store = ratelimituc.NewMemoryStore()
	if store != nil {
		limiterStore = ratelimitrepo.New(store)
	}
	limiter := ratelimituc.NewLimiter(limiterStore, cfg.RateLimit.RequestsPerMinute, time.Minute, logger)

	server := chiTransport.NewServer(researchSvc, usageSvc, healthSvc, logger).
		WithDefaults(chiTransport.Defaults{
			Country:  cfg.Research.DefaultCountry,
			Currency: cfg.Research.DefaultCurrency,
			Limit:    cfg.Research.DefaultLimit,
		})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{
				"X-Request-ID", "X-Keyword-Credits", "X-Keyword-Cache-Hits",
				"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After",
			},
			MaxAge: 300,
		}))
	}
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter: r,
		ResearchMiddlewares: []chiTransport.MiddlewareFunc{
			chiTransport.RateLimitMiddleware(limiter),
		},
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
				Code:    chiTransport.ErrorResponseCodeBadRequest,
				Message: err.Error(),
			})
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEnricher assembles the decorator chain: Cached -> Instrumented -> provider client.
// The cache is outermost so only misses are billed against the budget.
func buildEnricher(
	cfg config.Config,
	store db.Store,
	budget *enrichmentuc.CreditBudget,
	logger *zap.Logger,
) domain.Enricher {
	base := kwprovider.New(kwprovider.Config{
		BaseURL:    cfg.Provider.BaseURL,
		DataSource: cfg.Provider.DataSource,
		Timeout:    time.Duration(cfg.Provider.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	var enricher domain.Enricher = enrichmentuc.NewInstrumentedEnricher(base, budget, logger)

	if store != nil && cfg.Cache.Enabled {
		enricher = metricscache.New(
			enricher, store, time.Duration(cfg.Cache.TTLHours)*time.Hour,
			metrics.MetricCacheTotal, logger,
		).WithHitRecorder(budget)
	}

	return enricher
}

// buildCompleter returns the configured completion client, or nils when AI is off.
func buildCompleter(
	ctx context.Context, cfg config.AIConfig, logger *zap.Logger,
) (domain.Completer, domain.HealthChecker) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Provider {
	case "gemini":
		c, err := genaiCompletion.NewCompleter(ctx, &genaiCompletion.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Logger:      logger,
		})
		if err != nil {
			logger.Fatal("Failed to create completion client", zap.Error(err))
		}
		logger.Info("Completion client created", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
		return c, c
	default:
		c := openaiCompletion.NewCompleter(&openaiCompletion.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Provider:    cfg.Provider,
			Logger:      logger,
		})
		logger.Info("Completion client created", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
		return c, c
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorResponseCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line. Query strings are omitted: they carry seed phrases.
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
				zap.String("credits", ww.Header().Get("X-Keyword-Credits")),
			)
		})
	}
}
