package signer

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
)

// TimestampLayout is the UTC format the server expects for Timestamp.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Params are request parameters as supplied by callers. Values must be
// representable as a string; see Canonicalize.
type Params map[string]any

// Values are canonical string parameters, exactly as transmitted.
type Values map[string]string

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p)+6)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Params converts v back into Params.
func (v Values) Params() Params {
	out := make(Params, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Canonicalize stringifies every value of params into a new Values.
// Supported: string, []byte, bool, integer and float kinds, time.Time,
// decimal.Decimal and fmt.Stringer. Anything else is an InvalidArgument.
func Canonicalize(params Params) (Values, error) {
	out := make(Values, len(params)+4)
	for k, v := range params {
		s, err := stringify(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

func stringify(key string, v any) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", errs.NewInvalidArgument(key, v, "value is a nil pointer")
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case time.Time:
		return val.UTC().Format(TimestampLayout), nil
	case decimal.Decimal:
		return val.String(), nil
	case fmt.Stringer:
		return val.String(), nil
	}
	return "", errs.NewInvalidArgument(key, v, "value is not representable as a string")
}
