// Package keyspace walks keys and collections over the REST endpoint using
// cursor commands, so large keyspaces never come back in a single reply.
package keyspace

import (
	"context"
	"fmt"

	"github.com/cosmez/redisrest-go"
)

// DefaultBatch is the COUNT hint sent with every cursor command.
const DefaultBatch = 100

// Executor runs one command. *redisrest.Client satisfies it.
type Executor interface {
	Exec(ctx context.Context, cmd redisrest.Command) (redisrest.Result, error)
}

// Scanner issues cursor commands through an Executor.
type Scanner struct {
	exec  Executor
	batch int
}

// New returns a Scanner using DefaultBatch.
func New(exec Executor) *Scanner {
	return &Scanner{exec: exec, batch: DefaultBatch}
}

// WithBatch returns a copy of s that asks for n entries per round trip.
func (s *Scanner) WithBatch(n int) *Scanner {
	if n <= 0 {
		n = DefaultBatch
	}
	return &Scanner{exec: s.exec, batch: n}
}

func (s *Scanner) run(ctx context.Context, name string, args ...any) (redisrest.Value, error) {
	res, err := s.exec.Exec(ctx, redisrest.NewCommand(name, args...))
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return res.Value(), nil
}
