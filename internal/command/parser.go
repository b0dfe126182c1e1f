package command

import (
	"fmt"
	"strings"

	"github.com/cosmez/redisrest-go"
	"github.com/cosmez/redisrest-go/internal/serializer"
)

// Parse turns an input line into a ParsedCommand. The `| shell` suffix is
// stripped first so `GET key #:gzip | jq .` does not read "gzip | jq ." as
// the codec name. When a codec is given on SET, the value argument is
// encoded before it is sent.
func Parse(input string, reg *Registry) (*ParsedCommand, error) {
	if strings.TrimSpace(input) == "" {
		return &ParsedCommand{}, nil
	}

	parsed := &ParsedCommand{Text: input}

	if pipeIdx := strings.Index(input, " | "); pipeIdx != -1 {
		parsed.Pipe = strings.TrimSpace(input[pipeIdx+3:])
		input = input[:pipeIdx]
	}

	if codecIdx := strings.LastIndex(input, "#:"); codecIdx != -1 {
		parsed.Modifier = strings.TrimSpace(input[codecIdx+2:])
		input = input[:codecIdx]
	}

	tokens, err := tokenize(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", parsed.Text, err)
	}
	if len(tokens) == 0 {
		return parsed, nil
	}

	parsed.Name = strings.ToUpper(tokens[0])
	if len(tokens) > 1 {
		parsed.Args = tokens[1:]
	}

	var codec serializer.Serializer
	if parsed.Modifier != "" {
		codec, err = serializer.Get(parsed.Modifier)
		if err != nil {
			return nil, fmt.Errorf("failed to get serializer %q: %w", parsed.Modifier, err)
		}
	}

	if reg != nil {
		parsed.Doc = reg.Lookup(parsed.Name, parsed.Args)
	}

	args := make([]any, len(parsed.Args))
	for i, arg := range parsed.Args {
		if i == 1 && parsed.Name == "SET" && codec != nil {
			encoded, err := serializer.EncodeText(codec, arg)
			if err != nil {
				return nil, err
			}
			args[i] = encoded
			continue
		}
		args[i] = arg
	}
	parsed.Command = redisrest.NewCommand(parsed.Name, args...)

	return parsed, nil
}

// Codec returns the serializer named by the #: modifier, or nil.
func (p *ParsedCommand) Codec() serializer.Serializer {
	if p == nil || p.Modifier == "" {
		return nil
	}
	codec, err := serializer.Get(p.Modifier)
	if err != nil {
		return nil
	}
	return codec
}
