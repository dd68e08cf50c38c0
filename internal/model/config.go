package model

import "time"

// Config is the top-level application configuration.
//
// Hierarchy (highest to lowest priority): CLI flags, COMFORTSCAN_*
// environment variables, config file (~/.comfortscan/config.yaml),
// then the defaults below.
type Config struct {
	Data        DataConfig        `yaml:"data"`
	Database    DatabaseConfig    `yaml:"database"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Sentiment   SentimentConfig   `yaml:"sentiment"`
	Server      ServerConfig      `yaml:"server"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// DataConfig points at the externally editable analysis inputs. Empty
// paths fall back to the built-in defaults.
type DataConfig struct {
	CatalogPath  string `yaml:"catalog"`
	LexiconPath  string `yaml:"lexicon"`
	TaxonomyPath string `yaml:"taxonomy"`
}

// DatabaseConfig describes the SQLite review store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ConcurrencyConfig controls the analysis worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// SentimentConfig selects the review-level sentiment scorer. Mention-local
// scores always use the deterministic rule scorer; the LLM provider is an
// optional drop-in for whole-review sentiment only.
type SentimentConfig struct {
	Provider          string  `yaml:"provider"` // "rules" (default) or "openai"
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"-"` // from env only, never persisted
	BaseURL           string  `yaml:"baseUrl"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	TimeoutSeconds    int     `yaml:"timeoutSeconds"`

	// CacheDir enables on-disk memoization of model scores. Empty
	// disables caching.
	CacheDir string `yaml:"cacheDir"`
}

// ServerConfig holds the query API settings.
type ServerConfig struct {
	Addr     string        `yaml:"addr"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// OutputConfig controls snapshot rendering.
type OutputConfig struct {
	JSONPath      string `yaml:"json"`
	MarkdownPath  string `yaml:"markdown"`
	IncludeFooter bool   `yaml:"includeFooter"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig controls slog setup.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database:    DatabaseConfig{Path: "comfortscan.db"},
		Concurrency: ConcurrencyConfig{Workers: 4},
		Sentiment: SentimentConfig{
			Provider:          "rules",
			RequestsPerSecond: 2,
			TimeoutSeconds:    30,
		},
		Server: ServerConfig{
			Addr:     ":8080",
			CacheTTL: 5 * time.Minute,
		},
		Output: OutputConfig{
			JSONPath:      "snapshot.json",
			IncludeFooter: true,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
