package opensearch

import (
	"github.com/boostfield/ali-opensearch-sdk/internal/api"
	"github.com/boostfield/ali-opensearch-sdk/internal/types"
	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// Public type aliases so SDK consumers can import only this package.
type (
	Params      = signer.Params
	Values      = signer.Values
	Credentials = signer.Credentials

	// Manager binds a resource path to a Client; see Client.Manager.
	Manager = api.Manager

	// Requests
	SearchRequest  = types.SearchRequest
	SearchConfig   = types.SearchConfig
	SuggestRequest = types.SuggestRequest
	DocOp          = types.DocOp
	DocCommand     = types.DocCommand

	// Responses
	SearchResponse   = types.SearchResponse
	SearchResult     = types.SearchResult
	SearchItem       = types.SearchItem
	Facet            = types.Facet
	SuggestResponse  = types.SuggestResponse
	Suggestion       = types.Suggestion
	App              = types.App
	AppStatus        = types.AppStatus
	ListAppsResponse = types.ListAppsResponse
	PushResponse     = types.PushResponse
)

// Document commands.
const (
	DocAdd    = types.DocAdd
	DocUpdate = types.DocUpdate
	DocDelete = types.DocDelete
)
