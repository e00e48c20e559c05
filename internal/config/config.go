package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/frontdesigner/api/internal/enhance"
	"github.com/frontdesigner/api/internal/generation"
	"github.com/frontdesigner/api/internal/provider"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the API service
type Config struct {
	// Server
	Port        string `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"GO_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// Generation providers
	ClaudeAPIKey      string        `envconfig:"CLAUDE_API_KEY"`
	ClaudeModel       string        `envconfig:"CLAUDE_MODEL"`
	ClaudeBaseURL     string        `envconfig:"CLAUDE_BASE_URL"`
	MistralAPIKey     string        `envconfig:"MISTRAL_API_KEY"`
	MistralModel      string        `envconfig:"MISTRAL_MODEL"`
	MistralBaseURL    string        `envconfig:"MISTRAL_BASE_URL"`
	GeminiAPIKey      string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel       string        `envconfig:"GEMINI_MODEL"`
	GeminiBaseURL     string        `envconfig:"GEMINI_BASE_URL"`
	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"30s"`

	// Circuit breakers around provider calls
	BreakerFailureThreshold int           `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	BreakerOpenTimeout      time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`

	// Prompt enhancement; the key defaults to MISTRAL_API_KEY
	EnhanceAPIKey     string        `envconfig:"ENHANCE_API_KEY"`
	EnhanceProvider   string        `envconfig:"ENHANCE_PROVIDER" default:"mistral"`
	EnhanceBaseURL    string        `envconfig:"ENHANCE_BASE_URL"`
	EnhanceModel      string        `envconfig:"ENHANCE_MODEL"`
	EnhanceTimeout    time.Duration `envconfig:"ENHANCE_TIMEOUT" default:"45s"`
	EnhanceMaxRetries int           `envconfig:"ENHANCE_MAX_RETRIES" default:"2"`
	EnhanceRetryDelay time.Duration `envconfig:"ENHANCE_RETRY_DELAY" default:"2s"`

	// Deployment
	NetlifyAccessToken string `envconfig:"NETLIFY_ACCESS_TOKEN"`
	NetlifyAPIURL      string `envconfig:"NETLIFY_API_URL" default:"https://api.netlify.com/api/v1"`

	// Uploads and request bodies
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	MaxBodyBytes   int64  `envconfig:"MAX_BODY_BYTES" default:"52428800"`

	// HTTP edge
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`

	// Optional infrastructure
	RedisURL     string `envconfig:"REDIS_URL"`
	NATSURL      string `envconfig:"NATS_URL"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.EnhanceAPIKey == "" {
		cfg.EnhanceAPIKey = cfg.MistralAPIKey
	}
	if cfg.EnhanceMaxRetries < 0 {
		return nil, fmt.Errorf("load config: ENHANCE_MAX_RETRIES must not be negative")
	}
	return &cfg, nil
}

// IsProduction reports whether GO_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// WriteTimeout covers a generation call plus every enhancer attempt and
// the delays between them, with 15s of slack for the rest of the request
func (c *Config) WriteTimeout() time.Duration {
	attempts := time.Duration(c.EnhanceMaxRetries + 1)
	return c.GenerationTimeout +
		c.EnhanceTimeout*attempts +
		c.EnhanceRetryDelay*(attempts-1) +
		15*time.Second
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) ProviderConfig() provider.Config {
	return provider.Config{
		Claude:  provider.Settings{APIKey: c.ClaudeAPIKey, Model: c.ClaudeModel, BaseURL: c.ClaudeBaseURL},
		Mistral: provider.Settings{APIKey: c.MistralAPIKey, Model: c.MistralModel, BaseURL: c.MistralBaseURL},
		Gemini:  provider.Settings{APIKey: c.GeminiAPIKey, Model: c.GeminiModel, BaseURL: c.GeminiBaseURL},
	}
}

func (c *Config) DispatcherConfig() generation.Config {
	return generation.Config{
		Timeout:                 c.GenerationTimeout,
		BreakerFailureThreshold: c.BreakerFailureThreshold,
		BreakerOpenTimeout:      c.BreakerOpenTimeout,
	}
}

func (c *Config) EnhanceConfig() enhance.Config {
	return enhance.Config{
		Provider:   c.EnhanceProvider,
		APIKey:     c.EnhanceAPIKey,
		BaseURL:    c.EnhanceBaseURL,
		Model:      c.EnhanceModel,
		Timeout:    c.EnhanceTimeout,
		MaxRetries: c.EnhanceMaxRetries,
		RetryDelay: c.EnhanceRetryDelay,
	}
}
