// Package genai implements the completion collaborator on Google's Gemini API.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/metrics"
)

const defaultModel = "gemini-2.0-flash"

// Config holds the Gemini completion settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Logger      *zap.Logger
}

// Completer generates text with a Gemini model.
type Completer struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewCompleter creates a Gemini completion collaborator.
func NewCompleter(ctx context.Context, cfg *Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("genai API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Completer{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}, nil
}

// Complete implements domain.Completer.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, gc)
	metrics.AIRequestDuration.WithLabelValues("gemini", c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty completion response")
	}
	c.logger.Debug("Completion finished", zap.String("model", c.model), zap.Int("chars", len(text)))
	return text, nil
}

// HealthCheck verifies the configured model is reachable.
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.Models.Get(ctx, c.model, nil); err != nil {
		return fmt.Errorf("get model %s: %w", c.model, err)
	}
	return nil
}
