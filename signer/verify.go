package signer

import (
	"crypto/hmac"
	"errors"
)

var (
	// ErrMissingSignature is returned by Verify when values carry no Signature.
	ErrMissingSignature = errors.New("signer: missing Signature parameter")
	// ErrSignatureMismatch is returned by Verify when the signature does not match.
	ErrSignatureMismatch = errors.New("signer: signature mismatch")
)

// Verify recomputes the signature of a received parameter set and compares
// it with the transmitted Signature in constant time. values is the decoded
// query or form, Signature included.
func Verify(method string, values Values, secret string) error {
	got, ok := values[ParamSignature]
	if !ok || got == "" {
		return ErrMissingSignature
	}
	rest := make(Values, len(values))
	for k, v := range values {
		if k != ParamSignature {
			rest[k] = v
		}
	}
	want := compute(method, rest, secret)
	if !hmac.Equal([]byte(got), []byte(want)) {
		return ErrSignatureMismatch
	}
	return nil
}
