// ABOUTME: Centralized configuration for the vitus tracker
// ABOUTME: Loaded from environment variables with defaults and validation
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the tracker.
type Config struct {
	// Charm settings
	CharmHost   string `envconfig:"CHARM_HOST" default:"cloud.charm.sh"`
	CharmDBName string `envconfig:"CHARM_DB" default:"vitus"`
	AutoSync    bool   `envconfig:"CHARM_AUTO_SYNC" default:"true"`

	// OpenAI enrichment settings
	OpenAIKey  string        `envconfig:"OPENAI_API_KEY"`
	ChatModel  string        `envconfig:"VITUS_OPENAI_MODEL" default:"gpt-4o-mini"`
	Timeout    time.Duration `envconfig:"VITUS_OPENAI_TIMEOUT" default:"2m"`
	MaxRetries int           `envconfig:"VITUS_OPENAI_MAX_RETRIES" default:"3"`
	RetryDelay time.Duration `envconfig:"VITUS_OPENAI_RETRY_DELAY" default:"2s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("VITUS_OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("VITUS_OPENAI_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}
