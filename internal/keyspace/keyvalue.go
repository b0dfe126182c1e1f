package keyspace

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/cosmez/redisrest-go"
)

// ErrNoSuchKey is returned by KeyValue when TYPE reports "none".
var ErrNoSuchKey = errors.New("key does not exist")

// KeyValue is the content of one key: Single for strings, Items for
// collections.
type KeyValue struct {
	Type   string
	Single redisrest.Value
	Items  iter.Seq2[redisrest.Value, error]
}

// KeyValue looks up the type of key and returns its value, or an iterator
// over its members for collection types.
func (s *Scanner) KeyValue(ctx context.Context, key string) (KeyValue, error) {
	reply, err := s.run(ctx, "TYPE", key)
	if err != nil {
		return KeyValue{}, err
	}
	typeName, ok := reply.(redisrest.String)
	if !ok {
		return KeyValue{}, fmt.Errorf("expected string for TYPE, got %s", reply.Type())
	}

	kv := KeyValue{Type: typeName.Value}
	switch kv.Type {
	case "string":
		kv.Single, err = s.run(ctx, "GET", key)
		if err != nil {
			return kv, err
		}
	case "list":
		kv.Items = s.ListElements(ctx, key)
	case "set":
		kv.Items = s.SetMembers(ctx, key)
	case "zset":
		kv.Items = s.SortedSetMembers(ctx, key)
	case "hash":
		kv.Items = s.HashFields(ctx, key)
	case "stream":
		kv.Items = s.StreamEntries(ctx, key)
	case "none":
		return kv, ErrNoSuchKey
	default:
		return kv, fmt.Errorf("unsupported key type: %s", kv.Type)
	}
	return kv, nil
}
