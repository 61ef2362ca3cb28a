package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment. There is
// no on-disk state beyond an optional .env file.
type Config struct {
	// HTTP server
	Port int `env:"PORT" envDefault:"8081"`

	// Insight service (OpenAI-compatible chat completions). An empty API key
	// disables the outbound call; the audit then always returns the fallback.
	InsightAPIKey  string        `env:"INSIGHT_API_KEY"`
	InsightBaseURL string        `env:"INSIGHT_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	InsightModel   string        `env:"INSIGHT_MODEL" envDefault:"gemini-3-flash-preview"`
	InsightTimeout time.Duration `env:"INSIGHT_TIMEOUT" envDefault:"30s"`

	// Receipt uploads
	MaxReceiptBytes int64 `env:"MAX_RECEIPT_BYTES" envDefault:"2097152"` // 2 MiB

	// Seed the store with the demo rows on startup
	SeedDemo bool `env:"SEED_DEMO" envDefault:"false"`
}

// Load reads .env (if present), parses the environment, and validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every problem instead of stopping at the first.
func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if c.MaxReceiptBytes < 1 {
		errs = append(errs, fmt.Sprintf("invalid max receipt size %d: must be at least 1 byte", c.MaxReceiptBytes))
	}
	if c.InsightTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid insight timeout %v: must be at least 1 second", c.InsightTimeout))
	} else if c.InsightTimeout > 5*time.Minute {
		errs = append(errs, fmt.Sprintf("invalid insight timeout %v: must be at most 5 minutes", c.InsightTimeout))
	}
	if c.InsightAPIKey != "" && c.InsightModel == "" {
		errs = append(errs, "insight model cannot be empty when an API key is configured")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
