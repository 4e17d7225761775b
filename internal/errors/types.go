// Package errors provides the typed error taxonomy shared by the SDK.
// Every failure surfaced by the client is an *Error whose Kind tells the
// caller what went wrong and whether a retry could help.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind int

const (
	// KindHTTP is any non-2xx status other than 404.
	KindHTTP Kind = iota + 1
	// KindNotFound is an HTTP 404.
	KindNotFound
	// KindInvalidResponse is a 2xx response whose body is not JSON.
	KindInvalidResponse
	// KindInvalidArgument is a request that cannot be signed.
	KindInvalidArgument
	// KindTransport is a connection-level failure (DNS, connect, timeout).
	// It is the only kind worth retrying blindly.
	KindTransport
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "HttpException"
	case KindNotFound:
		return "NotFoundException"
	case KindInvalidResponse:
		return "InvalidResponse"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindTransport:
		return "TransportException"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrHTTP            = stderrors.New("http error")
	ErrNotFound        = stderrors.New("not found")
	ErrInvalidResponse = stderrors.New("invalid response")
	ErrInvalidArgument = stderrors.New("invalid argument")
	ErrTransport       = stderrors.New("transport error")
)

var sentinels = map[Kind]error{
	KindHTTP:            ErrHTTP,
	KindNotFound:        ErrNotFound,
	KindInvalidResponse: ErrInvalidResponse,
	KindInvalidArgument: ErrInvalidArgument,
	KindTransport:       ErrTransport,
}

// Detail is the error payload returned by the server: the parsed JSON body
// when it decodes, the raw text otherwise.
type Detail struct {
	JSON   any
	Text   string
	IsJSON bool
}

// String renders the detail for messages.
func (d Detail) String() string {
	if d.IsJSON {
		return fmt.Sprintf("%v", d.JSON)
	}
	return d.Text
}

// Error is the single error type of the SDK.
type Error struct {
	Kind       Kind
	Method     string
	URL        string
	StatusCode int    // 0 unless the server answered
	Detail     Detail // NotFound and HTTP
	Raw        []byte // InvalidResponse body
	Key        string // InvalidArgument parameter name
	Value      any    // InvalidArgument offending value
	Reason     string
	Err        error // underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound, KindHTTP:
		return fmt.Sprintf("%s: %s %s: HTTP %d: %s", e.Kind, e.Method, e.URL, e.StatusCode, e.Detail)
	case KindInvalidResponse:
		return fmt.Sprintf("%s: %s %s: HTTP %d: %v", e.Kind, e.Method, e.URL, e.StatusCode, e.Err)
	case KindInvalidArgument:
		return fmt.Sprintf("%s: %s=%#v: %s", e.Kind, e.Key, e.Value, e.Reason)
	default:
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Method, e.URL, e.Err)
	}
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsTransport reports whether err is a connection-level failure.
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}
