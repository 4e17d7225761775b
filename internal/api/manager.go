package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// SignFunc turns caller params into the signed set to transmit. It must
// return a new map and leave params untouched.
type SignFunc func(method string, params signer.Params) (signer.Values, error)

// RetryFunc runs call, possibly more than once, until it decides to stop.
type RetryFunc func(ctx context.Context, call func() error) error

// Manager binds a resource path to the HTTP client. Every call is signed
// before dispatch.
type Manager struct {
	http         *HTTPClient
	sign         SignFunc
	retry        RetryFunc
	resourcePath string
}

// NewManager returns a Manager for resourcePath (e.g. "/search").
func NewManager(hc *HTTPClient, sign SignFunc, resourcePath string) *Manager {
	return &Manager{http: hc, sign: sign, resourcePath: strings.TrimRight(resourcePath, "/")}
}

// WithRetry returns a copy of m whose calls go through retry. Every attempt
// is signed afresh.
func (m *Manager) WithRetry(retry RetryFunc) *Manager {
	out := *m
	out.retry = retry
	return &out
}

// ResourcePath returns the bound path.
func (m *Manager) ResourcePath() string { return m.resourcePath }

// Get issues a signed GET to resourcePath+subpath with params on the query string.
func (m *Manager) Get(ctx context.Context, params signer.Params, subpath string) (any, error) {
	return m.Request(ctx, http.MethodGet, subpath, params)
}

// Post issues a signed POST to resourcePath+subpath with params as the form body.
func (m *Manager) Post(ctx context.Context, params signer.Params, subpath string) (any, error) {
	return m.Request(ctx, http.MethodPost, subpath, params)
}

// Request issues a signed call with method and returns the decoded JSON.
func (m *Manager) Request(ctx context.Context, method, subpath string, params signer.Params) (any, error) {
	var out any
	if err := m.Do(ctx, method, subpath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Do signs params and decodes the 2xx body into out.
func (m *Manager) Do(ctx context.Context, method, subpath string, params signer.Params, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	method = strings.ToUpper(method)
	send := func() error {
		values, err := m.sign(method, params)
		if err != nil {
			return err
		}
		return m.http.Do(ctx, method, m.resourcePath+subpath, values, out)
	}
	if m.retry == nil {
		return send()
	}
	return m.retry(ctx, send)
}
