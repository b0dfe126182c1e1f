package redisrest

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func mustResult(t *testing.T, body string) Result {
	t.Helper()
	r, err := ParseResult([]byte(body))
	if err != nil {
		t.Fatalf("ParseResult(%s): %v", body, err)
	}
	return r
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected Value
		wantErr  bool
	}{
		{name: "Envelope String", body: `{"result":"OK"}`, expected: String{Value: "OK"}},
		{name: "Envelope Null", body: `{"result":null}`, expected: Null{}},
		{name: "Envelope Array", body: `{"result":["a"]}`, expected: Array{Values: []Value{String{Value: "a"}}}},
		{name: "Unwrapped Number", body: `7`, expected: Number{Text: "7"}},
		{name: "Unwrapped Object", body: `{"keys":1}`, expected: Map{Values: map[string]Value{"keys": Number{Text: "1"}}}},
		{name: "Whitespace", body: " \n{\"result\": true}\n", expected: Bool{Value: true}},
		{name: "Empty", body: ``, wantErr: true},
		{name: "Garbage", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResult([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResult() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got.Value(), tt.expected) {
				t.Errorf("ParseResult() value = %#v, want %#v", got.Value(), tt.expected)
			}
		})
	}
}

func TestResultNumericCoercion(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantFloat float64
		floatOK   bool
		wantInt   int64
		intOK     bool
	}{
		{name: "String Integer", body: `{"result":"42"}`, wantFloat: 42, floatOK: true, wantInt: 42, intOK: true},
		{name: "String Float", body: `{"result":"3.5"}`, wantFloat: 3.5, floatOK: true, intOK: false},
		{name: "String Negative", body: `{"result":"-7"}`, wantFloat: -7, floatOK: true, wantInt: -7, intOK: true},
		{name: "String Text", body: `{"result":"abc"}`},
		{name: "Number Integer", body: `{"result":42}`, wantFloat: 42, floatOK: true, wantInt: 42, intOK: true},
		{name: "Number Float Truncates", body: `{"result":2.9}`, wantFloat: 2.9, floatOK: true, wantInt: 2, intOK: true},
		{name: "Number Negative Float", body: `{"result":-2.9}`, wantFloat: -2.9, floatOK: true, wantInt: -2, intOK: true},
		{name: "Number Large Exact", body: `{"result":9007199254740993}`, wantFloat: 9007199254740993, floatOK: true, wantInt: 9007199254740993, intOK: true},
		{name: "Number Out Of Range", body: `{"result":1e30}`, wantFloat: 1e30, floatOK: true},
		{name: "Bool True", body: `{"result":true}`},
		{name: "Bool False", body: `{"result":false}`},
		{name: "Null", body: `{"result":null}`},
		{name: "Array", body: `{"result":["1"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustResult(t, tt.body)

			f, ok := r.Float64()
			if ok != tt.floatOK || (ok && f != tt.wantFloat) {
				t.Errorf("Float64() = %v, %v; want %v, %v", f, ok, tt.wantFloat, tt.floatOK)
			}
			i, ok := r.Int()
			if ok != tt.intOK || (ok && i != tt.wantInt) {
				t.Errorf("Int() = %v, %v; want %v, %v", i, ok, tt.wantInt, tt.intOK)
			}
		})
	}
}

func TestResultStringAndBool(t *testing.T) {
	r := mustResult(t, `{"result":"hello"}`)
	if s, ok := r.String(); !ok || s != "hello" {
		t.Errorf("String() = %q, %v", s, ok)
	}
	if _, ok := r.Bool(); ok {
		t.Errorf("Bool() present for string value")
	}

	r = mustResult(t, `{"result":false}`)
	if b, ok := r.Bool(); !ok || b {
		t.Errorf("Bool() = %v, %v", b, ok)
	}
	if _, ok := r.String(); ok {
		t.Errorf("String() present for bool value")
	}

	r = mustResult(t, `{"result":"true"}`)
	if _, ok := r.Bool(); ok {
		t.Errorf("Bool() coerced a string")
	}
}

func TestResultTime(t *testing.T) {
	r := mustResult(t, `{"result":"1700000000.5"}`)
	got, ok := r.Time()
	if !ok {
		t.Fatalf("Time() absent")
	}
	want := time.Unix(1700000000, 500000000)
	if !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}

	r = mustResult(t, `{"result":1700000000}`)
	if got, ok := r.Time(); !ok || got.Unix() != 1700000000 {
		t.Errorf("Time() = %v, %v", got, ok)
	}

	r = mustResult(t, `{"result":true}`)
	if _, ok := r.Time(); ok {
		t.Errorf("Time() present for bool value")
	}
}

func TestResultStrings(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
		ok       bool
	}{
		{name: "Bare String", body: `{"result":"abc"}`, expected: []string{"abc"}, ok: true},
		{name: "String Array", body: `{"result":["a","b"]}`, expected: []string{"a", "b"}, ok: true},
		{name: "Empty Array", body: `{"result":[]}`, expected: []string{}, ok: true},
		{name: "Number", body: `{"result":5}`},
		{name: "Mixed Array", body: `{"result":["a",null]}`},
		{name: "Map", body: `{"result":{"a":"b"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mustResult(t, tt.body).Strings()
			if ok != tt.ok {
				t.Fatalf("Strings() ok = %v, want %v", ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Strings() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

func TestResultMap(t *testing.T) {
	m, ok := mustResult(t, `{"result":{"a":"1","b":2}}`).Map()
	if !ok {
		t.Fatalf("Map() absent")
	}
	expected := map[string]Value{"a": String{Value: "1"}, "b": Number{Text: "2"}}
	if !reflect.DeepEqual(m, expected) {
		t.Errorf("Map() = %#v", m)
	}

	if _, ok := mustResult(t, `{"result":"{\"a\":1}"}`).Map(); ok {
		t.Errorf("Map() coerced a JSON string")
	}
	if _, ok := mustResult(t, `{"result":["a","b"]}`).Map(); ok {
		t.Errorf("Map() coerced an array")
	}
}

type session struct {
	User  string   `json:"user"`
	Roles []string `json:"roles"`
	TTL   int      `json:"ttl"`
}

func TestDecode(t *testing.T) {
	want := session{User: "ada", Roles: []string{"admin"}, TTL: 30}

	t.Run("Direct Object", func(t *testing.T) {
		got, err := Decode[session](mustResult(t, `{"result":{"user":"ada","roles":["admin"],"ttl":30}}`))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Decode() = %#v", got)
		}
	})

	t.Run("Embedded JSON String", func(t *testing.T) {
		got, err := Decode[session](mustResult(t, `{"result":"{\"roles\":[\"admin\"],\"ttl\":30,\"user\":\"ada\"}"}`))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Decode() = %#v", got)
		}
	})

	t.Run("String Target Keeps Text", func(t *testing.T) {
		got, err := Decode[string](mustResult(t, `{"result":"{\"a\":1}"}`))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != `{"a":1}` {
			t.Errorf("Decode() = %q", got)
		}
	})

	t.Run("Numeric String", func(t *testing.T) {
		got, err := Decode[int](mustResult(t, `{"result":"12"}`))
		if err != nil || got != 12 {
			t.Errorf("Decode() = %v, %v", got, err)
		}
	})

	t.Run("Invalid Json Value", func(t *testing.T) {
		_, err := Decode[session](mustResult(t, `{"result":42}`))
		var redisErr *Error
		if !errors.As(err, &redisErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if redisErr.Message != "Invalid json value" {
			t.Errorf("Message = %q", redisErr.Message)
		}
	})

	t.Run("Unparseable String", func(t *testing.T) {
		_, err := Decode[session](mustResult(t, `{"result":"not json"}`))
		if err == nil {
			t.Fatal("expected decode error")
		}
		var redisErr *Error
		if errors.As(err, &redisErr) {
			t.Errorf("unexpected *Error for a string value: %v", err)
		}
	})
}

func TestDecodeWithCustomUnmarshal(t *testing.T) {
	r := mustResult(t, `{"result":"a,b"}`)
	calls := 0
	err := r.DecodeWith(func(data []byte) error {
		calls++
		return errors.New("never matches")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 2 {
		t.Errorf("unmarshal called %d times, want 2", calls)
	}
}

func TestNewResult(t *testing.T) {
	r, err := NewResult(Array{Values: []Value{String{Value: "x"}}})
	if err != nil {
		t.Fatalf("NewResult: %v", err)
	}
	if string(r.Raw()) != `["x"]` {
		t.Errorf("Raw() = %s", r.Raw())
	}

	var zero Result
	if !zero.IsNull() || string(zero.Raw()) != "null" {
		t.Errorf("zero Result should be null")
	}
}
