package opensearch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/boostfield/ali-opensearch-sdk/internal/api"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// Common parameters the client adds to every call when the caller did not.
const (
	ParamVersion        = "Version"
	ParamTimestamp      = "Timestamp"
	ParamSignatureNonce = "SignatureNonce"

	DefaultAPIVersion = "v2"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client signs and sends requests to one OpenSearch endpoint. It holds only
// immutable state after New and is safe for concurrent use as long as the
// configured *http.Client is.
type Client struct {
	baseURL string
	creds   signer.Credentials
	version string

	http   *http.Client
	logger zerolog.Logger
	debug  bool
	now    func() time.Time
	nonce  func() string
	record bool // prometheus metrics
	retry  api.RetryFunc

	core *api.HTTPClient
}

// New constructs a Client for baseURL signing with keyID and secret.
// Additional options can be provided via functional arguments.
func New(baseURL, keyID, secret string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	if keyID == "" || secret == "" {
		return nil, fmt.Errorf("keyID and secret cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		creds:   signer.Credentials{KeyID: keyID, Secret: secret},
		version: DefaultAPIVersion,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zerolog.Nop(),
		now:     time.Now,
		nonce:   uuid.NewString,
		record:  true,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.debug {
		c.logger = debugLogger(c.logger)
	}

	var observe api.Observer
	if c.record {
		observe = observeRequest
	}
	c.core = api.NewHTTPClient(c.baseURL, c.http, c.logger, observe)
	return c, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string { return c.core.BaseURL() }

// KeyID returns the public half of the credential pair.
func (c *Client) KeyID() string { return c.creds.KeyID }

// Sign returns a new parameter set holding params, the common parameters
// (Version, Timestamp, SignatureNonce) when absent, the identity parameters
// and Signature. params is never modified.
func (c *Client) Sign(method string, params Params) (Values, error) {
	p := params.Clone()
	if _, ok := p[ParamVersion]; !ok {
		p[ParamVersion] = c.version
	}
	if _, ok := p[ParamTimestamp]; !ok {
		p[ParamTimestamp] = c.now().UTC().Format(signer.TimestampLayout)
	}
	if _, ok := p[ParamSignatureNonce]; !ok {
		p[ParamSignatureNonce] = c.nonce()
	}
	return signer.SignValues(method, p, c.creds)
}

// Manager binds resourcePath (e.g. "/search") to this client.
func (c *Client) Manager(resourcePath string) *Manager {
	m := api.NewManager(c.core, c.Sign, resourcePath)
	if c.retry != nil {
		m = m.WithRetry(c.retry)
	}
	return m
}

// --------------------------------------------------------------------
// Raw signed calls
// --------------------------------------------------------------------

// Request signs params and sends them with method to path. GET and DELETE
// carry them on the query string, other verbs as a form body.
func (c *Client) Request(ctx context.Context, method, path string, params Params) (any, error) {
	return c.Manager("").Request(ctx, method, path, params)
}

// Get is Request with GET.
func (c *Client) Get(ctx context.Context, path string, params Params) (any, error) {
	return c.Manager("").Get(ctx, params, path)
}

// Post is Request with POST.
func (c *Client) Post(ctx context.Context, path string, params Params) (any, error) {
	return c.Manager("").Post(ctx, params, path)
}

// --------------------------------------------------------------------
// Resource operations - delegated to internal/api
// --------------------------------------------------------------------

// Search runs a query against one or more apps.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	return api.Search(ctx, c.Manager(pathSearch), req)
}

// Suggest returns drop-down suggestions for a partial query.
func (c *Client) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	return api.Suggest(ctx, c.Manager(pathSuggest), req)
}

// AppStatus returns the status of an app.
func (c *Client) AppStatus(ctx context.Context, app string) (*AppStatus, error) {
	return api.AppStatus(ctx, c.Manager(pathIndex), app)
}

// ListApps returns one page of apps. Non-positive page values fall back to
// page 1 of 10.
func (c *Client) ListApps(ctx context.Context, page, pageSize int) (*ListAppsResponse, error) {
	return api.ListApps(ctx, c.Manager(pathIndex), page, pageSize)
}

// PushDocuments adds, updates or deletes documents in table of app.
func (c *Client) PushDocuments(ctx context.Context, app, table string, ops []DocOp) (*PushResponse, error) {
	return api.PushDocuments(ctx, c.Manager(pathDoc), app, table, ops)
}

const (
	pathSearch  = "/search"
	pathSuggest = "/suggest"
	pathIndex   = "/index"
	pathDoc     = "/index/doc"
)
