package api

import (
	"context"
	"net/http"

	"github.com/boostfield/ali-opensearch-sdk/internal/types"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// AppStatus returns the status of an app (GET /index/{app}?action=status).
func AppStatus(ctx context.Context, m *Manager, app string) (*types.AppStatus, error) {
	if err := types.ValidateAppName(app, "app"); err != nil {
		return nil, err
	}
	var st types.AppStatus
	if _, err := doEnvelope(ctx, m, http.MethodGet, "/"+app, signer.Params{"action": "status"}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ListApps returns one page of apps (GET /index).
func ListApps(ctx context.Context, m *Manager, page, pageSize int) (*types.ListAppsResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	var apps []types.App
	env, err := doEnvelope(ctx, m, http.MethodGet, "", signer.Params{"page": page, "page_size": pageSize}, &apps)
	if err != nil {
		return nil, err
	}
	return &types.ListAppsResponse{RequestID: env.RequestID, Apps: apps, Total: env.Total}, nil
}
