package keyspace

import (
	"context"
	"fmt"
	"iter"

	"github.com/cosmez/redisrest-go"
)

// scan drives a SCAN-family command until the server returns cursor "0".
// args come before the cursor (the key for SSCAN/HSCAN/ZSCAN); extra come
// after it. pairs makes the iterator yield [field, value] arrays.
func (s *Scanner) scan(ctx context.Context, name string, args []any, extra []any, pairs bool) iter.Seq2[redisrest.Value, error] {
	return func(yield func(redisrest.Value, error) bool) {
		cursor := "0"
		for {
			cmdArgs := make([]any, 0, len(args)+len(extra)+3)
			cmdArgs = append(cmdArgs, args...)
			cmdArgs = append(cmdArgs, cursor)
			cmdArgs = append(cmdArgs, extra...)
			cmdArgs = append(cmdArgs, "COUNT", s.batch)

			reply, err := s.run(ctx, name, cmdArgs...)
			if err != nil {
				yield(nil, err)
				return
			}

			next, items, err := splitCursorReply(name, reply)
			if err != nil {
				yield(nil, err)
				return
			}

			if pairs {
				for i := 0; i+1 < len(items); i += 2 {
					pair := redisrest.Array{Values: []redisrest.Value{items[i], items[i+1]}}
					if !yield(pair, nil) {
						return
					}
				}
			} else {
				for _, item := range items {
					if !yield(item, nil) {
						return
					}
				}
			}

			cursor = next
			if cursor == "0" {
				return
			}
		}
	}
}

func splitCursorReply(name string, reply redisrest.Value) (string, []redisrest.Value, error) {
	array, ok := reply.(redisrest.Array)
	if !ok || len(array.Values) < 2 {
		return "", nil, fmt.Errorf("unexpected %s response format", name)
	}
	switch array.Values[0].(type) {
	case redisrest.String, redisrest.Number:
	default:
		return "", nil, fmt.Errorf("unexpected %s cursor %v", name, array.Values[0])
	}
	items, ok := array.Values[1].(redisrest.Array)
	if !ok {
		return "", nil, fmt.Errorf("unexpected %s items format", name)
	}
	return array.Values[0].StringValue(), items.Values, nil
}

// Keys iterates over every key matching pattern with SCAN.
func (s *Scanner) Keys(ctx context.Context, pattern string) iter.Seq2[redisrest.Value, error] {
	if pattern == "" {
		pattern = "*"
	}
	return s.scan(ctx, "SCAN", nil, []any{"MATCH", pattern}, false)
}

// SetMembers iterates over a set with SSCAN.
func (s *Scanner) SetMembers(ctx context.Context, key string) iter.Seq2[redisrest.Value, error] {
	return s.scan(ctx, "SSCAN", []any{key}, nil, false)
}

// HashFields iterates over a hash with HSCAN, yielding [field, value].
func (s *Scanner) HashFields(ctx context.Context, key string) iter.Seq2[redisrest.Value, error] {
	return s.scan(ctx, "HSCAN", []any{key}, nil, true)
}

// SortedSetMembers iterates over a sorted set with ZSCAN, yielding
// [member, score].
func (s *Scanner) SortedSetMembers(ctx context.Context, key string) iter.Seq2[redisrest.Value, error] {
	return s.scan(ctx, "ZSCAN", []any{key}, nil, true)
}

// ListElements pages through a list with LRANGE until an empty page.
func (s *Scanner) ListElements(ctx context.Context, key string) iter.Seq2[redisrest.Value, error] {
	return func(yield func(redisrest.Value, error) bool) {
		start := 0
		for {
			reply, err := s.run(ctx, "LRANGE", key, start, start+s.batch-1)
			if err != nil {
				yield(nil, err)
				return
			}
			array, ok := reply.(redisrest.Array)
			if !ok {
				yield(nil, fmt.Errorf("unexpected LRANGE response format"))
				return
			}
			if len(array.Values) == 0 {
				return
			}
			for _, element := range array.Values {
				if !yield(element, nil) {
					return
				}
			}
			if len(array.Values) < s.batch {
				return
			}
			start += s.batch
		}
	}
}

// StreamEntries pages through a stream with XRANGE, continuing after the
// last ID seen (exclusive range).
func (s *Scanner) StreamEntries(ctx context.Context, key string) iter.Seq2[redisrest.Value, error] {
	return func(yield func(redisrest.Value, error) bool) {
		cursor := "-"
		for {
			reply, err := s.run(ctx, "XRANGE", key, cursor, "+", "COUNT", s.batch)
			if err != nil {
				yield(nil, err)
				return
			}
			array, ok := reply.(redisrest.Array)
			if !ok {
				yield(nil, fmt.Errorf("unexpected XRANGE response format"))
				return
			}
			if len(array.Values) == 0 {
				return
			}
			for _, entry := range array.Values {
				if !yield(entry, nil) {
					return
				}
			}

			last, ok := array.Values[len(array.Values)-1].(redisrest.Array)
			if !ok || len(last.Values) == 0 {
				yield(nil, fmt.Errorf("unexpected XRANGE entry format"))
				return
			}
			cursor = "(" + last.Values[0].StringValue()
		}
	}
}
