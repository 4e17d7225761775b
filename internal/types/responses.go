package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ------------------------------
// Response Types
// ------------------------------

// Envelope is the common OpenSearch response wrapper.
type Envelope struct {
	Status    string          `json:"status"`
	RequestID string          `json:"request_id"`
	Result    json.RawMessage `json:"result,omitempty"`
	Errors    []APIErrorItem  `json:"errors,omitempty"`
	Tracer    string          `json:"tracer,omitempty"`
	Total     int             `json:"total,omitempty"` // list endpoints
}

// APIErrorItem is one entry of an envelope's errors list.
type APIErrorItem struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is returned when the service answers 2xx with status FAIL.
type APIError struct {
	RequestID string
	Errors    []APIErrorItem
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, it := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%d: %s", it.Code, it.Message))
	}
	return fmt.Sprintf("opensearch request %s failed: %s", e.RequestID, strings.Join(msgs, "; "))
}

// HasCode reports whether the service returned code.
func (e *APIError) HasCode(code int) bool {
	for _, it := range e.Errors {
		if it.Code == code {
			return true
		}
	}
	return false
}

// SearchItem is one hit.
type SearchItem struct {
	Fields         map[string]any `json:"fields"`
	VariableValue  map[string]any `json:"variableValue,omitempty"`
	SortExprValues []any          `json:"sortExprValues,omitempty"`
}

// Facet is one aggregate result.
type Facet struct {
	Key   string           `json:"key"`
	Items []map[string]any `json:"items"`
}

// SearchResult is the `result` of a search.
type SearchResult struct {
	SearchTime float64      `json:"searchtime"`
	Total      int          `json:"total"`
	Num        int          `json:"num"`
	ViewTotal  int          `json:"viewtotal"`
	Items      []SearchItem `json:"items"`
	Facet      []Facet      `json:"facet,omitempty"`
}

// SearchResponse wraps a search result with its request id.
type SearchResponse struct {
	RequestID string
	SearchResult
}

// Suggestion is one suggested query.
type Suggestion struct {
	Suggestion string `json:"suggestion"`
}

// SuggestResponse wraps the suggestions.
type SuggestResponse struct {
	RequestID   string
	SearchTime  float64      `json:"searchtime"`
	Suggestions []Suggestion `json:"suggestions"`
}

// App is an application as listed by the service.
type App struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Created     string `json:"created"`
}

// AppStatus is the status of one application.
type AppStatus struct {
	IndexName     string   `json:"index_name"`
	Status        string   `json:"status"`
	DataSize      int64    `json:"data_size"`
	QuotaDataSize int64    `json:"quota_data_size"`
	QuotaQPS      int      `json:"quota_qps"`
	FetchFields   []string `json:"fetch_fields,omitempty"`
}

// ListAppsResponse is one page of applications.
type ListAppsResponse struct {
	RequestID string
	Apps      []App
	Total     int
}

// PushResponse acknowledges a document push.
type PushResponse struct {
	RequestID string
}
