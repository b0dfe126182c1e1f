package keyspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cosmez/redisrest-go"
	"github.com/cosmez/redisrest-go/internal/command"
)

// FetchServerCommands asks the server for its COMMAND table. A server that
// refuses COMMAND yields nil, nil so callers fall back to the built-in table.
func (s *Scanner) FetchServerCommands(ctx context.Context) ([]command.ServerCommand, error) {
	reply, err := s.run(ctx, "COMMAND")
	if err != nil {
		var redisErr *redisrest.Error
		if errors.As(err, &redisErr) {
			return nil, nil
		}
		return nil, err
	}

	array, ok := reply.(redisrest.Array)
	if !ok {
		return nil, fmt.Errorf("expected array for COMMAND, got %s", reply.Type())
	}

	var cmds []command.ServerCommand
	for _, entry := range array.Values {
		sc, err := parseCommandEntry(entry)
		if err != nil {
			continue
		}
		cmds = append(cmds, sc)
	}
	return cmds, nil
}

// parseCommandEntry reads one COMMAND entry: [name, arity, flags, first,
// last, step, acl categories, tips, key specs, subcommands]. Older servers
// send fewer fields.
func parseCommandEntry(v redisrest.Value) (command.ServerCommand, error) {
	arr, ok := v.(redisrest.Array)
	if !ok || len(arr.Values) < 2 {
		return command.ServerCommand{}, fmt.Errorf("expected array with >= 2 elements")
	}

	name := strings.ToUpper(strings.ReplaceAll(arr.Values[0].StringValue(), "|", " "))
	if name == "" {
		return command.ServerCommand{}, fmt.Errorf("command entry without name")
	}

	var arity int64
	if n, ok := arr.Values[1].(redisrest.Number); ok {
		arity, _ = n.Int64()
	}

	var aclCats []string
	if len(arr.Values) > 6 {
		aclCats = stringsOf(arr.Values[6])
	}

	var subcommands []command.ServerCommand
	if len(arr.Values) > 9 {
		if subArr, ok := arr.Values[9].(redisrest.Array); ok {
			for _, subEntry := range subArr.Values {
				sub, err := parseCommandEntry(subEntry)
				if err != nil {
					continue
				}
				subcommands = append(subcommands, sub)
			}
		}
	}

	return command.ServerCommand{
		Name:        name,
		Arity:       arity,
		ACLCats:     aclCats,
		Subcommands: subcommands,
	}, nil
}

func stringsOf(v redisrest.Value) []string {
	arr, ok := v.(redisrest.Array)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr.Values))
	for _, elem := range arr.Values {
		out = append(out, elem.StringValue())
	}
	return out
}

// ServerInfo runs INFO and splits the reply into key/value pairs. Section
// headers and blank lines are skipped.
func (s *Scanner) ServerInfo(ctx context.Context, sections ...string) (map[string]string, error) {
	args := make([]any, len(sections))
	for i, section := range sections {
		args[i] = section
	}
	reply, err := s.run(ctx, "INFO", args...)
	if err != nil {
		return nil, err
	}
	text, ok := reply.(redisrest.String)
	if !ok {
		return nil, fmt.Errorf("expected string for INFO, got %s", reply.Type())
	}
	return parseInfo(text.Value), nil
}

func parseInfo(text string) map[string]string {
	info := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := strings.Cut(line, ":"); ok {
			info[key] = value
		}
	}
	return info
}
