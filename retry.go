package opensearch

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/kelseyhightower/envconfig"
)

// RetryConfig tunes RetryingClient. Values can be taken from environment
// variables with the prefix "OPENSEARCH_RETRY_", e.g.
// OPENSEARCH_RETRY_MAX_ATTEMPTS=5.
type RetryConfig struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"100ms"`
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"5s"`
}

// LoadRetryConfig populates RetryConfig from environment variables.
func LoadRetryConfig() (RetryConfig, error) {
	var c RetryConfig
	return c, envconfig.Process("OPENSEARCH_RETRY", &c)
}

// RetryingClient re-sends a call when it failed below HTTP (DNS, connect,
// timeout). HTTP errors, invalid responses and invalid arguments are
// returned at once. Every call made through it retries, including managers
// obtained from Manager. Each attempt is signed afresh, so Timestamp and
// SignatureNonce differ between attempts.
type RetryingClient struct {
	*Client
	cfg RetryConfig
}

// WithRetry returns a retrying view of c. c itself is left unchanged and
// never retries.
func (c *Client) WithRetry(cfg RetryConfig) *RetryingClient {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	inner := *c
	r := &RetryingClient{Client: &inner, cfg: cfg}
	inner.retry = r.retry
	return r
}

func (r *RetryingClient) retry(ctx context.Context, call func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = r.cfg.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	attempts := 0
	for {
		err := call()
		if err == nil || !IsTransport(err) {
			return err
		}
		attempts++
		if attempts >= r.cfg.MaxAttempts {
			r.logger.Warn().Err(err).Int("attempts", attempts).Msg("giving up after transport errors")
			return err
		}
		wait := exp.NextBackOff()
		r.logger.Debug().Err(err).Int("attempt", attempts).Dur("wait", wait).Msg("retrying after transport error")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return err
		}
	}
}
