package opensearch

import (
	"errors"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
	"github.com/boostfield/ali-opensearch-sdk/internal/types"
)

// Error is the typed failure returned by every call. Use errors.As to
// inspect StatusCode, Detail or the offending argument.
type (
	Error     = errs.Error
	ErrorKind = errs.Kind
	Detail    = errs.Detail
	// APIError is a 2xx response whose envelope reports status FAIL.
	APIError = types.APIError
)

// Error kinds.
const (
	KindHTTP            = errs.KindHTTP
	KindNotFound        = errs.KindNotFound
	KindInvalidResponse = errs.KindInvalidResponse
	KindInvalidArgument = errs.KindInvalidArgument
	KindTransport       = errs.KindTransport
)

// Sentinels for errors.Is; every *Error matches the one of its kind.
var (
	ErrHTTP            = errs.ErrHTTP
	ErrNotFound        = errs.ErrNotFound
	ErrInvalidResponse = errs.ErrInvalidResponse
	ErrInvalidArgument = errs.ErrInvalidArgument
	ErrTransport       = errs.ErrTransport
)

// KindOf returns the kind of err, or 0 when err is not an SDK error.
func KindOf(err error) ErrorKind { return errs.KindOf(err) }

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsHTTP reports whether err is a non-2xx status other than 404.
func IsHTTP(err error) bool { return errors.Is(err, ErrHTTP) }

// IsInvalidResponse reports whether a 2xx body failed to decode.
func IsInvalidResponse(err error) bool { return errors.Is(err, ErrInvalidResponse) }

// IsInvalidArgument reports whether the request could not be signed.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsTransport reports whether err is a connection-level failure, the only
// kind that is safe to retry blindly.
func IsTransport(err error) bool { return errs.IsTransport(err) }

// IsAPIError reports whether the service rejected the request in its envelope.
func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}
