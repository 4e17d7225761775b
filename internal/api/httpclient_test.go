package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop(), nil), srv
}

func TestDo_SuccessParsesJSON(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"a":1}`))
	})
	got, err := c.Get(context.Background(), "/search", signer.Values{"q": "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestDo_StatusMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		body   string
		kind   errs.Kind
		isJSON bool
	}{
		{http.StatusNotFound, `{"code":"NotFound"}`, errs.KindNotFound, true},
		{http.StatusNotFound, "no such app", errs.KindNotFound, false},
		{http.StatusInternalServerError, "boom", errs.KindHTTP, false},
		{http.StatusBadRequest, `{"errors":[{"code":2001}]}`, errs.KindHTTP, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%d", tc.status), func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Post(context.Background(), "/index", signer.Values{"a": "b"})
			require.Error(t, err)

			var e *errs.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.status, e.StatusCode)
			assert.Equal(t, tc.isJSON, e.Detail.IsJSON)
			if !tc.isJSON {
				assert.Equal(t, tc.body, e.Detail.Text)
			}
		})
	}
}

func TestDo_InvalidJSON(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	_, err := c.Get(context.Background(), "/search", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidResponse)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []byte("not json"), e.Raw)
	assert.Equal(t, http.StatusOK, e.StatusCode)
}

func TestDo_TransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, &http.Client{Timeout: time.Second}, zerolog.Nop(), nil)
	_, err := c.Get(context.Background(), "/search", signer.Values{"a": "b"})
	require.Error(t, err)
	assert.True(t, errs.IsTransport(err))
	assert.NotErrorIs(t, err, errs.ErrHTTP)
}

func TestDo_ContextCanceledIsTransport(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, "/search", nil)
	require.Error(t, err)
	assert.True(t, errs.IsTransport(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_HeadersAndEncoding(t *testing.T) {
	t.Parallel()
	type seen struct {
		method, ua, ct, query, body string
	}
	got := make(chan seen, 2)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got <- seen{r.Method, r.UserAgent(), r.Header.Get("Content-Type"), r.URL.RawQuery, string(b)}
		_, _ = w.Write([]byte(`{}`))
	})

	values := signer.Values{"query": "a b", "Signature": "x+y="}
	_, err := c.Get(context.Background(), "/search", values)
	require.NoError(t, err)
	g := <-got
	assert.Equal(t, http.MethodGet, g.method)
	assert.Equal(t, UserAgent, g.ua)
	assert.Empty(t, g.ct)
	assert.Equal(t, "Signature=x%2By%3D&query=a%20b", g.query)
	assert.Empty(t, g.body)

	_, err = c.Post(context.Background(), "/index", values)
	require.NoError(t, err)
	g = <-got
	assert.Equal(t, http.MethodPost, g.method)
	assert.Equal(t, UserAgent, g.ua)
	assert.Equal(t, formContentType, g.ct)
	assert.Empty(t, g.query)
	assert.Equal(t, "Signature=x%2By%3D&query=a%20b", g.body)
}

func TestDo_ObserverReceivesOutcome(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var kinds []errs.Kind
	c := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop(), func(method string, kind errs.Kind, _ time.Duration) {
		assert.Equal(t, http.MethodGet, method)
		kinds = append(kinds, kind)
	})
	_, _ = c.Get(context.Background(), "/x", nil)
	assert.Equal(t, []errs.Kind{errs.KindNotFound}, kinds)
}

func TestTrace_OnlyWhenEnabled(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	c := NewHTTPClient(srv.URL, srv.Client(), logger, nil)
	_, err := c.Post(context.Background(), "/index", signer.Values{"a": "b"})
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	c = NewHTTPClient(srv.URL, srv.Client(), logger.Level(zerolog.DebugLevel), nil)
	_, err = c.Post(context.Background(), "/index", signer.Values{"a": "b"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "curl -i -X 'POST'")
	assert.Contains(t, buf.String(), "--data 'a=b'")
	assert.Contains(t, buf.String(), "RESP")
}

func TestCurlCommand(t *testing.T) {
	t.Parallel()
	h := http.Header{"Content-Type": {formContentType}}
	assert.Equal(t,
		"curl -i -X 'POST' 'http://h/index' -H 'Content-Type: application/x-www-form-urlencoded' -H 'User-Agent: ali-opensearch-go-client' --data 'a=b'",
		curlCommand("POST", "http://h/index", h, "a=b"))
	assert.Equal(t,
		"curl -i -X 'GET' 'http://h/s?a=b' -H 'User-Agent: ali-opensearch-go-client'",
		curlCommand("GET", "http://h/s?a=b", nil, ""))
}

func TestNewHTTPClient_LeavesCallerClientUntouched(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"OK"}`)
	}))
	t.Cleanup(srv.Close)

	hc := &http.Client{Timeout: time.Second}
	c := NewHTTPClient(srv.URL, hc, zerolog.Nop(), nil)
	_, err := c.Get(context.Background(), "/search", signer.Values{"a": "b"})
	require.NoError(t, err)

	assert.Nil(t, hc.Transport)
	assert.Nil(t, hc.CheckRedirect)
	assert.Equal(t, time.Second, hc.Timeout)
}
