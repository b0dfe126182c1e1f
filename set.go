package redisrest

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Set stores value under key with SET.
//
// Strings are sent as-is. Booleans and numbers, including named types over
// those kinds, are sent as JSON scalars.
// Everything else (maps, slices, structs, json.RawMessage) is encoded as
// JSON text with object keys sorted, so equal values always produce
// identical request bodies.
func (c *Client) Set(ctx context.Context, key string, value any) (Result, error) {
	switch v := value.(type) {
	case string:
		return c.SetString(ctx, key, v)
	case bool:
		return c.SetBool(ctx, key, v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return c.Exec(ctx, NewCommand("set", key, v))
	case json.RawMessage:
		return c.SetJSON(ctx, key, value)
	}

	// Named types over the scalar kinds (type Count int) behave like their
	// underlying type.
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return c.SetString(ctx, key, rv.String())
	case reflect.Bool:
		return c.SetBool(ctx, key, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return c.SetInt(ctx, key, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return c.Exec(ctx, NewCommand("set", key, rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return c.Exec(ctx, NewCommand("set", key, rv.Float()))
	}
	return c.SetJSON(ctx, key, value)
}

// SetString stores a raw string.
func (c *Client) SetString(ctx context.Context, key, value string) (Result, error) {
	return c.Exec(ctx, NewCommand("set", key, value))
}

// SetBool stores a boolean.
func (c *Client) SetBool(ctx context.Context, key string, value bool) (Result, error) {
	return c.Exec(ctx, NewCommand("set", key, value))
}

// SetInt stores an integer.
func (c *Client) SetInt(ctx context.Context, key string, value int64) (Result, error) {
	return c.Exec(ctx, NewCommand("set", key, value))
}

// SetFloat stores a float. Non-finite values are sent in their text form
// since JSON cannot carry them as numbers.
func (c *Client) SetFloat(ctx context.Context, key string, value float64) (Result, error) {
	data, err := encodeJSON(value)
	if err != nil {
		return c.Exec(ctx, NewCommand("set", key, strconv.FormatFloat(value, 'g', -1, 64)))
	}
	return c.Exec(ctx, NewCommand("set", key, json.RawMessage(data)))
}

// SetJSON stores value encoded as canonical JSON text.
func (c *Client) SetJSON(ctx context.Context, key string, value any) (Result, error) {
	text, err := canonicalJSON(value)
	if err != nil {
		return Result{}, fmt.Errorf("redisrest: encode value for %q: %w", key, err)
	}
	return c.Exec(ctx, NewCommand("set", key, string(text)))
}
