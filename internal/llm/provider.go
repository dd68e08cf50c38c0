// Package llm provides a model-backed sentiment scorer that can be
// substituted for the rule scorer behind the same interface. It is only
// ever used for whole-review sentiment: mention-local scores stay on the
// deterministic rule scorer so aggregates remain reproducible.
package llm

import (
	"fmt"

	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/sentiment"
)

// Config holds LLM scorer configuration.
type Config struct {
	// Provider name: "openai" or "" (disabled).
	Provider string

	// Model name (provider-specific, e.g. "gpt-4o-mini").
	Model string

	// APIKey for the provider.
	APIKey string

	// BaseURL for custom endpoints.
	BaseURL string

	// RequestsPerSecond caps outbound API calls across all workers.
	RequestsPerSecond float64

	// Timeout for a single API request, in seconds.
	Timeout int
}

// ConfigFromModel converts the application sentiment config.
func ConfigFromModel(cfg model.SentimentConfig) Config {
	return Config{
		Provider:          cfg.Provider,
		Model:             cfg.Model,
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.TimeoutSeconds,
	}
}

// NewScorer creates a sentiment.Scorer for the configured provider.
func NewScorer(cfg Config) (sentiment.Scorer, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIScorer(cfg)
	default:
		return nil, fmt.Errorf("unknown sentiment provider: %q", cfg.Provider)
	}
}
