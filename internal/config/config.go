// Package config loads and validates application configuration.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables
//  2. key.env file next to the working directory (optional)
//  3. Built-in defaults
//
// Three secrets are required and their absence is a fatal startup
// error: the Gemini API key, the PostgreSQL connection URL for the
// statute corpus, and the corpus table name. Generation knobs
// (temperature, sampling, output budget) are fixed at startup and never
// exposed to end users.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrMissingGeminiKey indicates GEMINI_API_KEY is not set.
	ErrMissingGeminiKey = errors.New("missing GEMINI_API_KEY")

	// ErrMissingDatabaseURL indicates DATABASE_URL is not set.
	ErrMissingDatabaseURL = errors.New("missing DATABASE_URL")

	// ErrMissingCorpusTable indicates CORPUS_TABLE is not set.
	ErrMissingCorpusTable = errors.New("missing CORPUS_TABLE")

	// ErrInvalidTemperature indicates the temperature is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the output token budget is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max output tokens")

	// ErrInvalidTopK indicates the retrieval depth is not positive.
	ErrInvalidTopK = errors.New("invalid retrieval top-k")
)

// Defaults match the production Gemini configuration. They are
// deliberately conservative: low temperature, plain-text output.
const (
	DefaultModel         = "gemini-2.0-flash"
	DefaultEmbedderModel = "gemini-embedding-001"
	DefaultTemperature   = 0.2
	DefaultTopP          = 0.95
	DefaultTopK          = 40
	DefaultMaxTokens     = 8192

	// EmbeddingDimension is the vector width stored in the corpus table.
	// gemini-embedding-001 supports truncation to 768 via
	// OutputDimensionality; the pgvector schema depends on this value.
	EmbeddingDimension = 768

	// DefaultEnvFile is the environment file loaded at startup when present.
	DefaultEnvFile = "key.env"
)

// Config stores application configuration. Secrets are never logged.
type Config struct {
	// Required secrets.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	DatabaseURL  string `mapstructure:"database_url"`
	CorpusTable  string `mapstructure:"corpus_table"`

	// Generation configuration, fixed at startup.
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	TopP        float32 `mapstructure:"top_p"`
	TopK        int32   `mapstructure:"top_k"`
	MaxTokens   int32   `mapstructure:"max_tokens"`

	// EmbedderModel is the embedding model identifier.
	EmbedderModel string `mapstructure:"embedder_model"`

	// StructuredOutput requests schema-constrained JSON from the model
	// for document analysis. The free-text section parser remains the
	// fallback when the model deviates.
	StructuredOutput bool `mapstructure:"structured_output"`

	// Serve configuration.
	Addr     string `mapstructure:"addr"`
	DraftDir string `mapstructure:"draft_dir"`
}

// Load reads configuration from envFile (when it exists) and the
// process environment. Pass "" to use DefaultEnvFile.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	// Missing env file is fine; the environment may carry everything.
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"gemini_api_key", "database_url", "corpus_table",
		"model", "temperature", "top_p", "top_k", "max_tokens",
		"embedder_model", "structured_output", "addr", "draft_dir",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	v.SetDefault("model", DefaultModel)
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("top_p", DefaultTopP)
	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("structured_output", true)
	v.SetDefault("addr", "127.0.0.1:8380")
	v.SetDefault("draft_dir", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required secrets and knob ranges.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingGeminiKey
	}
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.CorpusTable == "" {
		return ErrMissingCorpusTable
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v (want 0..2)", ErrInvalidTemperature, c.Temperature)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxTokens, c.MaxTokens)
	}
	if c.TopK < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidTopK, c.TopK)
	}
	return nil
}
