package api

import (
	"context"
	"net/http"

	"github.com/boostfield/ali-opensearch-sdk/internal/types"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// Suggest fetches drop-down suggestions (GET /suggest).
func Suggest(ctx context.Context, m *Manager, req types.SuggestRequest) (*types.SuggestResponse, error) {
	if err := types.ValidateSuggest(req); err != nil {
		return nil, err
	}
	params := signer.Params{
		"query":        req.Query,
		"index_name":   req.IndexName,
		"suggest_name": req.SuggestName,
	}
	if req.Hits > 0 {
		params["hit"] = req.Hits
	}

	var out types.SuggestResponse
	env, err := doEnvelope(ctx, m, http.MethodGet, "", params, &out)
	if err != nil {
		return nil, err
	}
	out.RequestID = env.RequestID
	return &out, nil
}
