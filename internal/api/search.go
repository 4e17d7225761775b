package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/boostfield/ali-opensearch-sdk/internal/types"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// Search runs a query against one or more apps (GET /search).
func Search(ctx context.Context, m *Manager, req types.SearchRequest) (*types.SearchResponse, error) {
	if err := types.ValidateSearch(req); err != nil {
		return nil, err
	}
	params := signer.Params{
		"query":      req.Clause(),
		"index_name": strings.Join(req.IndexNames, ";"),
	}
	if len(req.FetchFields) > 0 {
		params["fetch_fields"] = strings.Join(req.FetchFields, ";")
	}
	for k, v := range map[string]string{
		"qp":                 req.QP,
		"disable":            req.Disable,
		"first_formula_name": req.FirstFormulaName,
		"formula_name":       req.FormulaName,
		"summary":            req.Summary,
	} {
		if v != "" {
			params[k] = v
		}
	}

	var result types.SearchResult
	env, err := doEnvelope(ctx, m, http.MethodGet, "", params, &result)
	if err != nil {
		return nil, err
	}
	return &types.SearchResponse{RequestID: env.RequestID, SearchResult: result}, nil
}
