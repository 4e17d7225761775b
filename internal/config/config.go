package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	opensearch "github.com/boostfield/ali-opensearch-sdk"
)

// DefaultEndpoint is the public Hangzhou endpoint.
const DefaultEndpoint = "http://opensearch-cn-hangzhou.aliyuncs.com"

// Config holds what a program needs to build a client.
// Environment variables are parsed from the OPENSEARCH_ prefix.
type Config struct {
	Endpoint string        `envconfig:"ENDPOINT" default:"http://opensearch-cn-hangzhou.aliyuncs.com"`
	KeyID    string        `envconfig:"KEY_ID"`
	Secret   string        `envconfig:"SECRET"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Version  string        `envconfig:"VERSION" default:"v2"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

// Load creates a Config by parsing environment variables
// Example: OPENSEARCH_ENDPOINT, OPENSEARCH_KEY_ID, OPENSEARCH_SECRET
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("OPENSEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return &cfg, nil
}

// Validate reports missing credentials.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required (OPENSEARCH_ENDPOINT)")
	}
	if c.KeyID == "" || c.Secret == "" {
		return fmt.Errorf("key id and secret are required (OPENSEARCH_KEY_ID, OPENSEARCH_SECRET)")
	}
	return nil
}

// Level returns the configured log level; Debug forces debug.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// ClientOptions translates the config into client options.
func (c *Config) ClientOptions(logger zerolog.Logger) []opensearch.Option {
	opts := []opensearch.Option{
		opensearch.WithLogger(logger),
		opensearch.WithDebugLogging(c.Debug),
	}
	if c.Timeout > 0 {
		opts = append(opts, opensearch.WithHTTPTimeout(c.Timeout))
	}
	if c.Version != "" {
		opts = append(opts, opensearch.WithAPIVersion(c.Version))
	}
	return opts
}

// NewClient validates c and builds a client from it.
func (c *Config) NewClient(logger zerolog.Logger, extra ...opensearch.Option) (*opensearch.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return opensearch.New(c.Endpoint, c.KeyID, c.Secret, append(c.ClientOptions(logger), extra...)...)
}
