package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	opensearch "github.com/boostfield/ali-opensearch-sdk"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint || cfg.Timeout != 30*time.Second || cfg.Version != "v2" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Level() != zerolog.InfoLevel {
		t.Fatalf("unexpected default level: %v", cfg.Level())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OPENSEARCH_ENDPOINT", "http://localhost:9200")
	t.Setenv("OPENSEARCH_KEY_ID", "kid")
	t.Setenv("OPENSEARCH_SECRET", "sec")
	t.Setenv("OPENSEARCH_TIMEOUT", "5s")
	t.Setenv("OPENSEARCH_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Endpoint != "http://localhost:9200" || cfg.KeyID != "kid" || cfg.Secret != "sec" || cfg.Timeout != 5*time.Second {
		t.Fatalf("env override failed: %+v", cfg)
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Fatalf("debug should force debug level, got %v", cfg.Level())
	}
}

func TestLoad_InvalidLevel(t *testing.T) {
	t.Setenv("OPENSEARCH_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	cfg := &Config{Endpoint: DefaultEndpoint}
	if _, err := cfg.NewClient(zerolog.Nop()); err == nil {
		t.Fatalf("expected missing credentials error")
	}
	cfg.KeyID, cfg.Secret = "kid", "sec"
	c, err := cfg.NewClient(zerolog.Nop(), opensearch.WithoutMetrics())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.KeyID() != "kid" {
		t.Fatalf("unexpected key id %q", c.KeyID())
	}
}
