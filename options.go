package opensearch

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied in order before the HTTP core is built, so a later
// WithHTTPClient replaces the timeout set by an earlier WithHTTPTimeout.
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, etc. The SDK never retries on its
// own; the client's transport decides pooling and timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithTransport swaps the RoundTripper of the current http.Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return fmt.Errorf("nil transport")
		}
		hc := *c.http
		hc.Transport = rt
		c.http = &hc
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse bound on the total time spent on a single HTTP request
// (including connection, TLS handshake, redirects, and reading the response).
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
		return nil
	}
}

// WithLogger sets the logger the client writes diagnostics to. The default
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithDebugLogging logs every request as a curl command, plus the response
// status and headers, when enabled is true. Without a logger configured
// through WithLogger, output goes to stderr.
//
// Do not enable this option in production environments: the trace includes
// the signed parameters and the key id.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithAPIVersion overrides the Version parameter (default "v2").
func WithAPIVersion(v string) Option {
	return func(c *Client) error {
		if v == "" {
			return fmt.Errorf("api version cannot be empty")
		}
		c.version = v
		return nil
	}
}

// WithClock sets the time source for the Timestamp parameter.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return fmt.Errorf("nil clock")
		}
		c.now = now
		return nil
	}
}

// WithNonce sets the SignatureNonce generator. It must be safe for
// concurrent use and must not repeat values.
func WithNonce(nonce func() string) Option {
	return func(c *Client) error {
		if nonce == nil {
			return fmt.Errorf("nil nonce generator")
		}
		c.nonce = nonce
		return nil
	}
}

// WithoutMetrics stops the client from recording prometheus metrics.
func WithoutMetrics() Option {
	return func(c *Client) error {
		c.record = false
		return nil
	}
}
