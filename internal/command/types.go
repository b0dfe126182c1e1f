package command

import "github.com/cosmez/redisrest-go"

// ParsedCommand is one line of user input, split into the command to send
// and the local modifiers that control how its reply is shown.
type ParsedCommand struct {
	Text     string            // original input text
	Name     string            // upper-cased command name, empty for a blank line
	Args     []string          // arguments as typed, before any codec is applied
	Command  redisrest.Command // what goes over the wire
	Modifier string            // codec name e.g. "gzip", empty if none
	Pipe     string            // shell command after "|", empty if none
	Doc      *CommandDoc       // documentation, nil if not found
}

// Empty reports a blank input line.
func (p *ParsedCommand) Empty() bool {
	return p == nil || p.Name == ""
}

// CommandDoc is the documentation for a single command.
type CommandDoc struct {
	Command   string `json:"command"`
	Summary   string `json:"summary"`
	Arguments string `json:"arguments"`
	Since     string `json:"since"`
	Group     string `json:"group"`
}

// ServerCommand is a command discovered from the COMMAND reply. It lives here
// so keyspace can produce these without importing the registry.
type ServerCommand struct {
	Name        string          // e.g. "CONFIG SET" (uppercased, pipe replaced with space)
	Arity       int64           // positive = exact arg count, negative = minimum
	ACLCats     []string        // e.g. ["@string", "@read", "@fast"]
	Subcommands []ServerCommand
}
