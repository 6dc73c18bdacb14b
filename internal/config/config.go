package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for every surface of the service.
type Config struct {
	// Server
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// LLM
	ModelProvider  string        `env:"MODEL_PROVIDER" envDefault:"openai"` // "openai" or "anthropic"
	OpenAIKey      Secret        `env:"OPENAI_API_KEY"`
	AnthropicKey   Secret        `env:"ANTHROPIC_API_KEY"`
	OpenAIModel    string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AnthropicModel string        `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Client-side throttle
	RequestsPerSecond float64       `env:"RATE_REQUESTS_PER_SECOND" envDefault:"1"`
	CheckInterval     time.Duration `env:"RATE_CHECK_INTERVAL" envDefault:"100ms"`
	BurstCapacity     int           `env:"RATE_BURST" envDefault:"10"`

	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"RETRY_DELAY" envDefault:"2s"`

	// Chunking, measured in characters
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"2000"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"100"`

	// Cache
	CacheProvider string        `env:"CACHE_PROVIDER" envDefault:"none"` // "redis" or "none"
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword Secret        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// Queue
	QueueURL string `env:"QUEUE_URL"`
}

// RateConfig describes the token bucket guarding outbound model calls.
type RateConfig struct {
	RequestsPerSecond float64
	CheckInterval     time.Duration
	Burst             int
}

// ProviderConfig is the read-only slice of Config a model client needs.
type ProviderConfig struct {
	Provider       string
	APIKey         Secret
	ModelName      string
	RequestTimeout time.Duration
	Rate           RateConfig
	RetryAttempts  int
	RetryDelay     time.Duration
}

// Load reads configuration from environment variables with defaults and
// validates it. Callers are expected to exit when it fails.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(strings.TrimSpace(c.ModelProvider)) {
	case "openai":
		if c.OpenAIKey.Empty() {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when MODEL_PROVIDER=openai"))
		}
		if c.OpenAIModel == "" {
			errs = append(errs, errors.New("OPENAI_MODEL must not be empty"))
		}
	case "anthropic":
		if c.AnthropicKey.Empty() {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required when MODEL_PROVIDER=anthropic"))
		}
		if c.AnthropicModel == "" {
			errs = append(errs, errors.New("ANTHROPIC_MODEL must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid MODEL_PROVIDER: %q (valid options: openai, anthropic)", c.ModelProvider))
	}

	if c.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("RATE_REQUESTS_PER_SECOND must be positive, got %v", c.RequestsPerSecond))
	}
	if c.BurstCapacity <= 0 {
		errs = append(errs, fmt.Errorf("RATE_BURST must be positive, got %d", c.BurstCapacity))
	}
	if c.CheckInterval < 0 {
		errs = append(errs, fmt.Errorf("RATE_CHECK_INTERVAL must not be negative, got %s", c.CheckInterval))
	}
	if c.RetryAttempts <= 0 {
		errs = append(errs, fmt.Errorf("RETRY_ATTEMPTS must be positive, got %d", c.RetryAttempts))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("RETRY_DELAY must not be negative, got %s", c.RetryDelay))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize))
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		errs = append(errs, fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap))
	}
	switch c.CacheProvider {
	case "none", "":
	case "redis":
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when CACHE_PROVIDER=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid CACHE_PROVIDER: %q (valid options: redis, none)", c.CacheProvider))
	}

	return errors.Join(errs...)
}

// Provider returns the settings for the configured model provider.
func (c Config) Provider() ProviderConfig {
	pc := ProviderConfig{
		Provider:       c.ModelProvider,
		RequestTimeout: c.RequestTimeout,
		Rate: RateConfig{
			RequestsPerSecond: c.RequestsPerSecond,
			CheckInterval:     c.CheckInterval,
			Burst:             c.BurstCapacity,
		},
		RetryAttempts: c.RetryAttempts,
		RetryDelay:    c.RetryDelay,
	}
	switch strings.ToLower(strings.TrimSpace(c.ModelProvider)) {
	case "openai":
		pc.APIKey, pc.ModelName = c.OpenAIKey, c.OpenAIModel
	case "anthropic":
		pc.APIKey, pc.ModelName = c.AnthropicKey, c.AnthropicModel
	}
	return pc
}
