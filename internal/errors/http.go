package errors

import (
	"encoding/json"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// FromStatus classifies a non-2xx response. 404 becomes NotFound, anything
// else HTTP. The body is kept as parsed JSON when it decodes, raw text otherwise.
func FromStatus(method, url string, statusCode int, body []byte) *Error {
	kind := KindHTTP
	if statusCode == http.StatusNotFound {
		kind = KindNotFound
	}
	return &Error{
		Kind:       kind,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Detail:     ParseDetail(body),
	}
}

// ParseDetail decodes body as JSON, falling back to the raw text.
func ParseDetail(body []byte) Detail {
	var v any
	if len(body) > 0 && json.Unmarshal(body, &v) == nil {
		return Detail{JSON: v, IsJSON: true}
	}
	return Detail{Text: string(body)}
}

// NewInvalidResponse reports a 2xx response that did not decode as JSON.
func NewInvalidResponse(method, url string, statusCode int, body []byte, cause error) *Error {
	return &Error{
		Kind:       KindInvalidResponse,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Raw:        body,
		Err:        cause,
	}
}

// NewTransport reports a failure below HTTP. The cause keeps a stack trace
// for loggers that render one.
func NewTransport(method, url string, cause error) *Error {
	return &Error{
		Kind:   KindTransport,
		Method: method,
		URL:    url,
		Err:    pkgerrors.WithStack(cause),
	}
}

// NewInvalidArgument reports a parameter that cannot be signed.
func NewInvalidArgument(key string, value any, reason string) *Error {
	return &Error{
		Kind:   KindInvalidArgument,
		Key:    key,
		Value:  value,
		Reason: reason,
	}
}
