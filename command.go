package redisrest

import (
	"fmt"
	"strings"
)

// Command is a Redis command name plus its positional arguments.
//
// A Command is immutable once built. The client does not validate the name or
// the argument count; any string is accepted and the remote service decides.
type Command struct {
	name string
	args []any
}

// NewCommand builds a Command. Arguments may be strings, numbers, booleans or
// any JSON-encodable value; their order is preserved exactly.
func NewCommand(name string, args ...any) Command {
	return Command{
		name: name,
		args: append([]any(nil), args...),
	}
}

// Name returns the command name as supplied.
func (c Command) Name() string { return c.name }

// Args returns a copy of the argument list.
func (c Command) Args() []any {
	return append([]any(nil), c.args...)
}

// Render returns the wire shape the REST API expects: the upper-cased command
// name followed by the arguments.
func (c Command) Render() []any {
	out := make([]any, 0, len(c.args)+1)
	out = append(out, strings.ToUpper(c.name))
	return append(out, c.args...)
}

// String renders the command space separated, e.g. "SET key value".
func (c Command) String() string {
	parts := make([]string, 0, len(c.args)+1)
	for _, part := range c.Render() {
		parts = append(parts, fmt.Sprint(part))
	}
	return strings.Join(parts, " ")
}

func renderAll(cmds []Command) [][]any {
	out := make([][]any, len(cmds))
	for i, cmd := range cmds {
		out[i] = cmd.Render()
	}
	return out
}
