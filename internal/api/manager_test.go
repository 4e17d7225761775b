package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
	"github.com/boostfield/ali-opensearch-sdk/internal/types"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// passthrough canonicalizes params without signing them.
func passthrough(method string, params signer.Params) (signer.Values, error) {
	return signer.Canonicalize(params)
}

func TestManager_JoinsPathsAndUppercasesMethod(t *testing.T) {
	var gotMethod, gotPath string
	hc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = io.WriteString(w, `{"status":"OK"}`)
	})
	m := NewManager(hc, passthrough, "/index/")
	require.Equal(t, "/index", m.ResourcePath())

	out, err := m.Request(context.Background(), "get", "/books", signer.Params{"action": "status"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "OK"}, out)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/index/books", gotPath)
}

func TestManager_SignErrorStopsRequest(t *testing.T) {
	called := false
	hc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	m := NewManager(hc, passthrough, "/search")

	_, err := m.Get(context.Background(), signer.Params{"bad": struct{}{}}, "")
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
	assert.False(t, called)
}

func TestManager_CanceledBeforeSend(t *testing.T) {
	called := false
	hc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	m := NewManager(hc, passthrough, "/search")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Post(ctx, nil, "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestEnvelope_Fail(t *testing.T) {
	hc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"FAIL","request_id":"r1","errors":[{"code":2001,"message":"app not exist"}]}`)
	})
	m := NewManager(hc, passthrough, "/index")

	_, err := AppStatus(context.Background(), m, "books")
	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "r1", apiErr.RequestID)
	assert.True(t, apiErr.HasCode(2001))
	assert.Contains(t, apiErr.Error(), "2001: app not exist")
}

func TestEnvelope_ResultShapeMismatch(t *testing.T) {
	hc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"OK","request_id":"r2","result":"not an object"}`)
	})
	m := NewManager(hc, passthrough, "/index")

	_, err := AppStatus(context.Background(), m, "books")
	assert.True(t, errors.Is(err, errs.ErrInvalidResponse))
}

func TestListApps_Total(t *testing.T) {
	var page, size string
	hc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page, size = r.URL.Query().Get("page"), r.URL.Query().Get("page_size")
		_, _ = io.WriteString(w, `{"status":"OK","request_id":"r3","total":12,"result":[{"id":"1","name":"books"}]}`)
	})
	m := NewManager(hc, passthrough, "/index")

	res, err := ListApps(context.Background(), m, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "2", page)
	assert.Equal(t, "5", size)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, "r3", res.RequestID)
	assert.Equal(t, []types.App{{ID: "1", Name: "books"}}, res.Apps)
}
