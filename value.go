package redisrest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ValueType identifies the JSON shape held by a Value.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeString
	TypeNumber
	TypeBool
	TypeArray
	TypeMap
)

func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a decoded result of unknown shape. The concrete types below are the
// only implementations; switch on them or on Type().
type Value interface {
	Type() ValueType
	StringValue() string
}

// String is a JSON string.
type String struct {
	Value string
}

func (s String) Type() ValueType     { return TypeString }
func (s String) StringValue() string { return s.Value }

// Number is a JSON number. Text keeps the decimal form the server sent so
// large integers survive without a float round trip.
type Number struct {
	Text string
}

func (n Number) Type() ValueType     { return TypeNumber }
func (n Number) StringValue() string { return n.Text }

// Float64 parses the number as a float.
func (n Number) Float64() (float64, bool) {
	f, err := strconv.ParseFloat(n.Text, 64)
	return f, err == nil
}

// Int64 parses the number as an integer. Numbers written with a fraction or
// exponent are not integers here.
func (n Number) Int64() (int64, bool) {
	i, err := strconv.ParseInt(n.Text, 10, 64)
	return i, err == nil
}

// Bool is a JSON boolean.
type Bool struct {
	Value bool
}

func (b Bool) Type() ValueType     { return TypeBool }
func (b Bool) StringValue() string { return strconv.FormatBool(b.Value) }

// Array is a JSON array.
type Array struct {
	Values []Value
}

func (a Array) Type() ValueType { return TypeArray }

// StringValue is empty for arrays; the output formatter walks the elements.
func (a Array) StringValue() string { return "" }

// Map is a JSON object.
type Map struct {
	Values map[string]Value
}

func (m Map) Type() ValueType { return TypeMap }

// StringValue is empty for maps; the output formatter walks the fields.
func (m Map) StringValue() string { return "" }

// Keys returns the field names in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m.Values))
	for k := range m.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Null is a JSON null.
type Null struct{}

func (n Null) Type() ValueType     { return TypeNull }
func (n Null) StringValue() string { return "" }

// ParseValue decodes a single JSON document into a Value.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid json value: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid json value: trailing data after document")
	}
	return fromGo(raw), nil
}

func fromGo(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null{}
	case string:
		return String{Value: v}
	case json.Number:
		return Number{Text: v.String()}
	case bool:
		return Bool{Value: v}
	case []any:
		values := make([]Value, len(v))
		for i, elem := range v {
			values[i] = fromGo(elem)
		}
		return Array{Values: values}
	case map[string]any:
		values := make(map[string]Value, len(v))
		for k, elem := range v {
			values[k] = fromGo(elem)
		}
		return Map{Values: values}
	default:
		// json.Decoder with UseNumber only produces the cases above.
		return String{Value: fmt.Sprint(v)}
	}
}

// MarshalValue encodes v as compact JSON with object keys sorted, so equal
// values always produce identical bytes.
func MarshalValue(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case String:
		return writeString(buf, val.Value)
	case Number:
		if !json.Valid([]byte(val.Text)) {
			return fmt.Errorf("invalid number %q", val.Text)
		}
		buf.WriteString(val.Text)
	case Bool:
		buf.WriteString(strconv.FormatBool(val.Value))
	case Array:
		buf.WriteByte('[')
		for i, elem := range val.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Map:
		buf.WriteByte('{')
		for i, k := range val.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, val.Values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	data, err := encodeJSON(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// encodeJSON marshals v without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodeJSON(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// canonicalJSON encodes an arbitrary Go value and re-emits it with sorted
// object keys, covering struct fields as well as maps.
func canonicalJSON(v any) ([]byte, error) {
	data, err := encodeJSON(v)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseValue(data)
	if err != nil {
		return nil, err
	}
	return MarshalValue(parsed)
}
