// Package redisrest is a client for Redis-compatible stores that expose
// commands over an HTTP REST interface instead of the RESP wire protocol.
//
// A command is a name plus positional arguments:
//
//	client, err := redisrest.New("example.upstash.io", token)
//	res, err := client.Do(ctx, "incrby", "visits", 5)
//	n, ok := res.Int()
//
// Replies arrive as loosely typed JSON. Result exposes total accessors that
// coerce string-encoded numbers and documents; Decode converts a result into
// a Go type. Pipeline and Transaction return one Response per command so a
// failing command does not hide the others.
//
// Failures reported by the service are *Error. Network failures and replies
// that cannot be read are *TransportError.
package redisrest
