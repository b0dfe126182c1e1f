package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cosmez/redisrest-go"
	"github.com/cosmez/redisrest-go/internal/command"
	"github.com/cosmez/redisrest-go/internal/keyspace"
	"github.com/cosmez/redisrest-go/internal/output"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// backend is the part of *redisrest.Client the CLI needs.
type backend interface {
	keyspace.Executor
	Pipeline(ctx context.Context, cmds []redisrest.Command) ([]redisrest.Response, error)
	Transaction(ctx context.Context, cmds []redisrest.Command) ([]redisrest.Response, error)
}

// errExit is returned by handle when the user asked to leave.
var errExit = errors.New("exit")

// errAborted is returned when a dangerous command was not confirmed.
var errAborted = errors.New("aborted")

// app carries the state of one CLI session: the queued commands of an open
// MULTI or PIPELINE block live here until EXEC.
type app struct {
	backend backend
	scanner *keyspace.Scanner
	reg     *command.Registry
	out     io.Writer
	in      io.Reader
	log     logrus.FieldLogger
	color   bool
	confirm bool

	queueMode string // "MULTI", "PIPELINE" or empty
	queue     []redisrest.Command
}

func newApp(b backend, out io.Writer, in io.Reader) *app {
	return &app{
		backend: b,
		scanner: keyspace.New(b),
		reg:     command.NewRegistry(),
		out:     out,
		in:      in,
		log:     logrus.New(),
	}
}

func (a *app) printOpts() output.PrintOpts {
	return output.PrintOpts{Color: a.color, Newline: true}
}

func (a *app) printError(err error) {
	output.PrintError(a.out, err, a.color)
}

func (a *app) notice(c *color.Color, format string, args ...any) {
	if a.color {
		c.Fprintf(a.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(a.out, format+"\n", args...)
}

var (
	noticeWarn = color.New(color.FgYellow)
	noticeInfo = color.New(color.FgCyan)
	noticeOK   = color.New(color.FgGreen)
)

// execute parses and runs one input line. It reports true once EXIT was given.
func (a *app) execute(ctx context.Context, line string) (bool, error) {
	parsed, err := command.Parse(line, a.reg)
	if err != nil {
		a.printError(err)
		return false, err
	}
	if parsed.Empty() {
		return false, nil
	}
	err = a.handle(ctx, parsed)
	if errors.Is(err, errExit) {
		return true, nil
	}
	return false, err
}

func (a *app) handle(ctx context.Context, parsed *command.ParsedCommand) error {
	switch parsed.Name {
	case "EXIT":
		return errExit
	case "CLEAR":
		fmt.Fprint(a.out, "\033[2J\033[H")
		return nil
	case "HELP":
		return a.handleHelp(parsed)
	case "MULTI", "PIPELINE":
		return a.handleBegin(parsed)
	case "EXEC":
		return a.handleExec(ctx)
	case "DISCARD":
		return a.handleDiscard()
	}

	if a.queueMode != "" {
		if a.reg.IsApplication(parsed.Name) {
			err := fmt.Errorf("%s is not allowed inside %s", parsed.Name, a.queueMode)
			a.printError(err)
			return err
		}
		a.queue = append(a.queue, parsed.Command)
		a.notice(noticeInfo, "QUEUED")
		return nil
	}

	switch parsed.Name {
	case "SAFEKEYS":
		return a.handleSafeKeys(ctx, parsed)
	case "VIEW":
		return a.handleView(ctx, parsed)
	case "EXPORT":
		return a.handleExport(ctx, parsed)
	default:
		return a.handleStandardCommand(ctx, parsed)
	}
}

func (a *app) handleHelp(parsed *command.ParsedCommand) error {
	if len(parsed.Args) == 0 {
		a.notice(noticeWarn, "Usage: HELP <command>")
		a.notice(noticeInfo, "Groups: %s", strings.Join(a.reg.Groups(), ", "))
		return nil
	}
	doc := a.reg.Lookup(strings.ToUpper(parsed.Args[0]), parsed.Args[1:])
	if doc == nil {
		err := fmt.Errorf("unknown command: %s", strings.ToUpper(parsed.Args[0]))
		a.printError(err)
		return err
	}
	a.notice(noticeInfo, "%s %s", doc.Command, doc.Arguments)
	fmt.Fprintln(a.out, doc.Summary)
	if doc.Since != "" {
		a.notice(noticeInfo, "Since: %s", doc.Since)
	}
	return nil
}

func (a *app) handleBegin(parsed *command.ParsedCommand) error {
	if a.queueMode != "" {
		err := fmt.Errorf("%s calls can not be nested", a.queueMode)
		a.printError(err)
		return err
	}
	a.queueMode = parsed.Name
	a.queue = nil
	a.notice(noticeOK, "OK")
	return nil
}

func (a *app) handleDiscard() error {
	if a.queueMode == "" {
		err := errors.New("DISCARD without MULTI")
		a.printError(err)
		return err
	}
	a.queueMode = ""
	a.queue = nil
	a.notice(noticeOK, "OK")
	return nil
}

func (a *app) handleExec(ctx context.Context) error {
	if a.queueMode == "" {
		err := errors.New("EXEC without MULTI")
		a.printError(err)
		return err
	}
	cmds, atomic := a.queue, a.queueMode == "MULTI"
	a.queueMode = ""
	a.queue = nil
	if len(cmds) == 0 {
		output.PrintResponses(a.out, nil, a.printOpts())
		return nil
	}
	return a.flush(ctx, cmds, atomic)
}

// flush sends cmds as a transaction or a pipeline and prints every envelope.
// A failed command inside the batch is reported but does not fail the call.
func (a *app) flush(ctx context.Context, cmds []redisrest.Command, atomic bool) error {
	send := a.backend.Pipeline
	if atomic {
		send = a.backend.Transaction
	}
	responses, err := send(ctx, cmds)
	if err != nil {
		a.printError(err)
		return err
	}
	output.PrintResponses(a.out, responses, a.printOpts())

	failed := 0
	for _, r := range responses {
		if !r.OK() {
			failed++
		}
	}
	a.log.WithFields(logrus.Fields{"commands": len(cmds), "failed": failed, "atomic": atomic}).Debug("batch sent")
	if failed > 0 {
		return fmt.Errorf("%d of %d commands failed", failed, len(cmds))
	}
	return nil
}

func (a *app) handleSafeKeys(ctx context.Context, parsed *command.ParsedCommand) error {
	pattern := "*"
	if len(parsed.Args) > 0 {
		pattern = parsed.Args[0]
	}
	opts := a.printOpts()
	opts.Codec = parsed.Codec()
	return output.PrintValues(a.out, a.in, a.scanner.Keys(ctx, pattern), opts, 100)
}

func (a *app) handleView(ctx context.Context, parsed *command.ParsedCommand) error {
	if len(parsed.Args) == 0 {
		a.notice(noticeWarn, "Usage: VIEW <key>")
		return nil
	}

	kv, err := a.scanner.KeyValue(ctx, parsed.Args[0])
	if errors.Is(err, keyspace.ErrNoSuchKey) {
		a.notice(noticeWarn, "Key not found")
		return nil
	}
	if err != nil {
		a.printError(err)
		return err
	}

	opts := a.printOpts()
	opts.Codec = parsed.Codec()
	if kv.Single != nil {
		if parsed.Pipe != "" {
			return a.pipe(kv.Single, parsed.Pipe)
		}
		output.PrintValue(a.out, kv.Single, opts)
		return nil
	}
	opts.TypeHint = kv.Type
	return output.PrintValues(a.out, a.in, kv.Items, opts, 100)
}

func (a *app) handleExport(ctx context.Context, parsed *command.ParsedCommand) error {
	if len(parsed.Args) < 2 {
		a.notice(noticeWarn, "Usage: EXPORT <filename> <command> [args...]")
		return nil
	}

	filename := parsed.Args[0]
	sub := parsed.Args[1:]
	subName := strings.ToUpper(sub[0])

	var err error
	switch subName {
	case "VIEW":
		if len(sub) < 2 {
			a.notice(noticeWarn, "Usage: EXPORT <filename> VIEW <key>")
			return nil
		}
		var kv keyspace.KeyValue
		kv, err = a.scanner.KeyValue(ctx, sub[1])
		if err == nil {
			err = output.Export(filename, kv.Single, kv.Items, kv.Type)
		}
	case "SAFEKEYS":
		pattern := "*"
		if len(sub) > 1 {
			pattern = sub[1]
		}
		err = output.Export(filename, nil, a.scanner.Keys(ctx, pattern), "")
	default:
		args := make([]any, len(sub)-1)
		for i, arg := range sub[1:] {
			args[i] = arg
		}
		var res redisrest.Result
		res, err = a.backend.Exec(ctx, redisrest.NewCommand(subName, args...))
		if err == nil {
			err = output.Export(filename, res.Value(), nil, "")
		}
	}

	if err != nil {
		a.printError(err)
		return err
	}
	a.notice(noticeOK, "Exported to %s", filename)
	return nil
}

func (a *app) handleStandardCommand(ctx context.Context, parsed *command.ParsedCommand) error {
	if a.confirm && a.reg.IsDangerous(parsed.Name) && !a.confirmDangerous(parsed.Name) {
		a.notice(noticeWarn, "Aborted.")
		return errAborted
	}

	res, err := a.backend.Exec(ctx, parsed.Command)
	if err != nil {
		a.printError(err)
		return err
	}

	if parsed.Pipe != "" {
		return a.pipe(res.Value(), parsed.Pipe)
	}
	opts := a.printOpts()
	opts.Codec = parsed.Codec()
	output.PrintValue(a.out, res.Value(), opts)
	return nil
}

func (a *app) pipe(v redisrest.Value, shellCmd string) error {
	if err := output.PipeValue(a.out, v, shellCmd); err != nil {
		a.printError(fmt.Errorf("pipe failed: %w", err))
		return err
	}
	return nil
}

// confirmDangerous reads a Y/N answer from the input, one byte at a time so
// the line editor keeps the rest of the input.
func (a *app) confirmDangerous(name string) bool {
	a.notice(noticeWarn, "The command %s is considered dangerous to execute, execute anyway? (Y/N)", name)
	if name == "KEYS" {
		a.notice(noticeInfo, "Hint: You can execute SAFEKEYS or SCAN instead.")
	}

	var ans []byte
	buf := make([]byte, 1)
	for {
		n, err := a.in.Read(buf)
		if n > 0 {
			ans = append(ans, buf[0])
			if buf[0] == '\n' {
				break
			}
		}
		if err != nil {
			break
		}
	}

	answer := strings.TrimSpace(string(ans))
	return len(answer) > 0 && (answer[0] == 'Y' || answer[0] == 'y')
}

// readBatch parses one command per line. Blank lines and lines starting with
// "# " are skipped; application commands are rejected.
func readBatch(r io.Reader, reg *command.Registry) ([]redisrest.Command, error) {
	var cmds []redisrest.Command
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "# ") {
			continue
		}
		parsed, err := command.Parse(line, reg)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if reg.IsApplication(parsed.Name) {
			return nil, fmt.Errorf("line %d: %s can not be batched", lineNo, parsed.Name)
		}
		cmds = append(cmds, parsed.Command)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}
	return cmds, nil
}
