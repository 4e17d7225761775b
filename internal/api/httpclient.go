package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// UserAgent identifies the SDK on every request.
const UserAgent = "ali-opensearch-go-client"

const formContentType = "application/x-www-form-urlencoded"

// Observer is notified once per request with the outcome kind (0 on success).
type Observer func(method string, kind errs.Kind, elapsed time.Duration)

// HTTPClient sends already-signed parameter sets to the service and turns
// the response into a JSON value or a typed *errs.Error. It performs a
// single attempt per call and is safe for concurrent use as long as the
// wrapped *http.Client is.
type HTTPClient struct {
	baseURL string
	rc      *resty.Client
	log     zerolog.Logger
	observe Observer
}

// NewHTTPClient wraps a copy of hc; hc itself is left untouched. Timeouts,
// TLS and pooling are hc's concern.
func NewHTTPClient(baseURL string, hc *http.Client, logger zerolog.Logger, observe Observer) *HTTPClient {
	h := *hc
	rc := resty.NewWithClient(&h).
		SetHeader("User-Agent", UserAgent).
		SetLogger(restyLogger{logger}).
		SetDisableWarn(true)
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		rc:      rc,
		log:     logger,
		observe: observe,
	}
}

// BaseURL returns the URL every path is appended to.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Get sends values on the query string.
func (c *HTTPClient) Get(ctx context.Context, path string, values signer.Values) (any, error) {
	var out any
	err := c.Do(ctx, http.MethodGet, path, values, &out)
	return out, err
}

// Post sends values as a form body.
func (c *HTTPClient) Post(ctx context.Context, path string, values signer.Values) (any, error) {
	var out any
	err := c.Do(ctx, http.MethodPost, path, values, &out)
	return out, err
}

// Request sends values with method and returns the decoded envelope.
func (c *HTTPClient) Request(ctx context.Context, method, path string, values signer.Values) (any, error) {
	var out any
	err := c.Do(ctx, method, path, values, &out)
	return out, err
}

// Do issues one request and decodes a 2xx body into out. GET and DELETE
// carry values on the query string; other verbs send them as a form body.
func (c *HTTPClient) Do(ctx context.Context, method, path string, values signer.Values, out any) error {
	method = strings.ToUpper(method)
	url := c.baseURL + path

	req := c.rc.R().SetContext(ctx)
	var body string
	if len(values) > 0 {
		encoded := signer.Encode(values)
		if method == http.MethodGet || method == http.MethodDelete {
			url += querySeparator(url) + encoded
		} else {
			body = encoded
			req.SetHeader("Content-Type", formContentType).SetBody(body)
		}
	}

	c.traceRequest(method, url, req.Header, body)

	start := time.Now()
	resp, err := req.Execute(method, url)
	if err != nil {
		return c.finish(method, start, errs.NewTransport(method, url, err))
	}
	c.traceResponse(resp)

	raw := resp.Body()
	if !resp.IsSuccess() {
		return c.finish(method, start, errs.FromStatus(method, url, resp.StatusCode(), raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.finish(method, start, errs.NewInvalidResponse(method, url, resp.StatusCode(), raw, err))
	}
	return c.finish(method, start, nil)
}

func (c *HTTPClient) finish(method string, start time.Time, err *errs.Error) error {
	if c.observe != nil {
		var kind errs.Kind
		if err != nil {
			kind = err.Kind
		}
		c.observe(method, kind, time.Since(start))
	}
	if err != nil {
		return err
	}
	return nil
}

func querySeparator(url string) string {
	if strings.Contains(url, "?") {
		return "&"
	}
	return "?"
}
