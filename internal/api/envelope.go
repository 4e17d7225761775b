package api

import (
	"context"
	"encoding/json"
	"net/http"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
	"github.com/boostfield/ali-opensearch-sdk/internal/types"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

const statusFail = "FAIL"

// doEnvelope performs a signed call and unwraps the OpenSearch envelope.
// result, when non-nil, receives the decoded `result` field.
func doEnvelope(ctx context.Context, m *Manager, method, subpath string, params signer.Params, result any) (*types.Envelope, error) {
	var env types.Envelope
	if err := m.Do(ctx, method, subpath, params, &env); err != nil {
		return nil, err
	}
	if env.Status == statusFail {
		return nil, &types.APIError{RequestID: env.RequestID, Errors: env.Errors}
	}
	if result != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return nil, errs.NewInvalidResponse(method, m.http.BaseURL()+m.resourcePath+subpath, http.StatusOK, env.Result, err)
		}
	}
	return &env, nil
}
