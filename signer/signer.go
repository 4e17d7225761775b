// Package signer implements the OpenSearch request signature (Aliyun POP
// signature version 1.0).
//
// A signature is computed over the canonical parameter set:
//
//	StringToSign = METHOD + "&" + percentEncode("/") + "&" + percentEncode(k1=v1&k2=v2...)
//	Signature    = base64(HMAC-SHA1(secret + "&", StringToSign))
//
// Keys are sorted bytewise and every key and value is percent-encoded with
// RFC 3986 rules before joining. The encoding is a wire contract with the
// server; changing it breaks verification.
package signer

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"strings"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
)

// Parameter names owned by the signer.
const (
	ParamSignature        = "Signature"
	ParamAccessKeyID      = "AccessKeyId"
	ParamSignatureMethod  = "SignatureMethod"
	ParamSignatureVersion = "SignatureVersion"

	SignatureMethod  = "HMAC-SHA1"
	SignatureVersion = "1.0"
)

// Credentials is the key pair a client signs with.
type Credentials struct {
	KeyID  string
	Secret string
}

// Sign returns the base64 signature for method and params. params is not
// modified. The fixed identity parameters (AccessKeyId, SignatureMethod,
// SignatureVersion) are merged in before signing and take precedence over
// caller values with the same key.
func Sign(method string, params Params, keyID, secret string) (string, error) {
	values, err := signable(method, params, keyID)
	if err != nil {
		return "", err
	}
	return compute(method, values, secret), nil
}

// SignValues returns a new Values holding params, the identity parameters
// and the computed Signature. This is exactly the set to transmit.
func SignValues(method string, params Params, creds Credentials) (Values, error) {
	values, err := signable(method, params, creds.KeyID)
	if err != nil {
		return nil, err
	}
	values[ParamSignature] = compute(method, values, creds.Secret)
	return values, nil
}

func signable(method string, params Params, keyID string) (Values, error) {
	if err := checkMethod(method); err != nil {
		return nil, err
	}
	if _, ok := params[ParamSignature]; ok {
		return nil, errs.NewInvalidArgument(ParamSignature, params[ParamSignature], "params already carry a signature")
	}
	values, err := Canonicalize(params)
	if err != nil {
		return nil, err
	}
	values[ParamAccessKeyID] = keyID
	values[ParamSignatureMethod] = SignatureMethod
	values[ParamSignatureVersion] = SignatureVersion
	return values, nil
}

// StringToSign builds the canonical string for method and values. Values
// must not contain Signature.
func StringToSign(method string, values Values) string {
	return strings.ToUpper(method) + "&" + PercentEncode("/") + "&" + PercentEncode(Encode(values))
}

func compute(method string, values Values, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret+"&"))
	mac.Write([]byte(StringToSign(method, values)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

var supportedMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
}

func checkMethod(method string) error {
	if !supportedMethods[strings.ToUpper(method)] {
		return errs.NewInvalidArgument("method", method, "unsupported HTTP method")
	}
	return nil
}
