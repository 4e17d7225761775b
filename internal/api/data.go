package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/boostfield/ali-opensearch-sdk/internal/types"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// PushDocuments adds, updates or deletes documents of one table
// (POST /index/doc/{app}?action=push). Items travel JSON-encoded in the
// signed form body.
func PushDocuments(ctx context.Context, m *Manager, app, table string, ops []types.DocOp) (*types.PushResponse, error) {
	if err := types.ValidateAppName(app, "app"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonEmpty(table, "table name"); err != nil {
		return nil, err
	}
	if err := types.ValidateDocOps(ops); err != nil {
		return nil, err
	}
	items, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	params := signer.Params{
		"action":     "push",
		"table_name": table,
		"items":      string(items),
	}
	env, err := doEnvelope(ctx, m, http.MethodPost, "/"+app, params, nil)
	if err != nil {
		return nil, err
	}
	return &types.PushResponse{RequestID: env.RequestID}, nil
}
