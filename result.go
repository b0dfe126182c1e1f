package redisrest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

const invalidJSONValue = "Invalid json value"

// Result wraps one decoded result value.
//
// The REST API often sends numbers, booleans and nested documents as JSON
// encoded strings, so the accessors below coerce where that is unambiguous.
// Every accessor is total: a mismatch reports false instead of failing.
type Result struct {
	raw   json.RawMessage
	value Value
}

// ParseResult decodes a single-command reply. A {"result": ...} envelope is
// unwrapped; any other JSON document is taken as the result itself.
func ParseResult(body []byte) (Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Result{}, errors.New("empty result body")
	}

	raw := json.RawMessage(trimmed)
	if trimmed[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			if member, ok := envelope["result"]; ok {
				raw = member
			}
		}
	}
	return newResult(raw)
}

// NewResult wraps an already decoded value, mostly useful in tests and mocks.
func NewResult(v Value) (Result, error) {
	if v == nil {
		v = Null{}
	}
	raw, err := MarshalValue(v)
	if err != nil {
		return Result{}, err
	}
	return Result{raw: raw, value: v}, nil
}

func newResult(raw json.RawMessage) (Result, error) {
	value, err := ParseValue(raw)
	if err != nil {
		return Result{}, err
	}
	return Result{
		raw:   append(json.RawMessage(nil), raw...),
		value: value,
	}, nil
}

// UnmarshalJSON accepts the same shapes as ParseResult.
func (r *Result) UnmarshalJSON(data []byte) error {
	parsed, err := ParseResult(data)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value returns the decoded value. A zero Result holds Null.
func (r Result) Value() Value {
	if r.value == nil {
		return Null{}
	}
	return r.value
}

// Raw returns the JSON text of the result.
func (r Result) Raw() json.RawMessage {
	if len(r.raw) == 0 {
		return json.RawMessage("null")
	}
	return append(json.RawMessage(nil), r.raw...)
}

// IsNull reports whether the server returned null, e.g. GET on a missing key.
func (r Result) IsNull() bool {
	return r.Value().Type() == TypeNull
}

// String is present only when the value is a JSON string.
func (r Result) String() (string, bool) {
	s, ok := r.value.(String)
	return s.Value, ok
}

// Bool is present only when the value is a JSON boolean.
func (r Result) Bool() (bool, bool) {
	b, ok := r.value.(Bool)
	return b.Value, ok
}

// Float64 parses a string value as a number, otherwise reads a JSON number.
// Booleans are never numeric.
func (r Result) Float64() (float64, bool) {
	if s, ok := r.String(); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	if _, ok := r.Bool(); ok {
		return 0, false
	}
	if n, ok := r.value.(Number); ok {
		return n.Float64()
	}
	return 0, false
}

// Int parses a string value as an integer, otherwise takes the integer part
// of the numeric value. Booleans are never numeric.
func (r Result) Int() (int64, bool) {
	if s, ok := r.String(); ok {
		i, err := strconv.ParseInt(s, 10, 64)
		return i, err == nil
	}
	// Integral JSON numbers are read exactly before going through float64.
	if n, ok := r.value.(Number); ok {
		if i, ok := n.Int64(); ok {
			return i, true
		}
	}
	if f, ok := r.Float64(); ok {
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	if _, ok := r.Bool(); ok {
		return 0, false
	}
	if n, ok := r.value.(Number); ok {
		return n.Int64()
	}
	return 0, false
}

// Time reads the numeric value as seconds since the Unix epoch.
func (r Result) Time() (time.Time, bool) {
	f, ok := r.Float64()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))), true
}

// Strings returns a list of strings. A bare string is returned as a one
// element list, since many commands reply with a single value for one match
// and an array for several.
func (r Result) Strings() ([]string, bool) {
	switch v := r.value.(type) {
	case Array:
		out := make([]string, 0, len(v.Values))
		for _, elem := range v.Values {
			s, ok := elem.(String)
			if !ok {
				return nil, false
			}
			out = append(out, s.Value)
		}
		return out, true
	case String:
		return []string{v.Value}, true
	default:
		return nil, false
	}
}

// Map is present only when the value is a JSON object.
func (r Result) Map() (map[string]Value, bool) {
	m, ok := r.value.(Map)
	if !ok {
		return nil, false
	}
	out := make(map[string]Value, len(m.Values))
	for k, v := range m.Values {
		out[k] = v
	}
	return out, true
}

// DecodeWith runs unmarshal over the result JSON. When that fails and the
// value is a string, the string itself is unmarshalled as an embedded JSON
// document. Any other value fails with "Invalid json value".
func (r Result) DecodeWith(unmarshal func(data []byte) error) error {
	if err := unmarshal(r.Raw()); err == nil {
		return nil
	}
	text, ok := r.String()
	if !ok {
		return &Error{Message: invalidJSONValue}
	}
	if err := unmarshal([]byte(text)); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

// Decode converts the result into T with encoding/json, following the
// DecodeWith rules. A null result decodes to the zero value of T.
func Decode[T any](r Result) (T, error) {
	var out T
	err := r.DecodeWith(func(data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
