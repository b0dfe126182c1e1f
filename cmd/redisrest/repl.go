package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cosmez/redisrest-go/internal/command"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// replCompleter completes the command word from the registry.
type replCompleter struct {
	reg *command.Registry
}

func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line[:pos])
	if strings.Contains(text, " ") {
		return nil, 0
	}

	for _, match := range c.reg.GetCommands(text) {
		remaining := strings.ToUpper(match[len(text):])
		newLine = append(newLine, []rune(remaining+" "))
	}
	return newLine, len(text)
}

// replHinter shows the argument hint for the current command below the
// input line. Paint only clears a stale hint; OnChange draws the new one
// after readline has positioned the cursor, so readline's cursor math is
// left alone.
type replHinter struct {
	reg       *command.Registry
	promptLen int
	termWidth int
}

func copyAppend(line []rune, suffix string) []rune {
	sfx := []rune(suffix)
	out := make([]rune, len(line)+len(sfx))
	copy(out, line)
	copy(out[len(line):], sfx)
	return out
}

func (h *replHinter) Paint(line []rune, pos int) []rune {
	return copyAppend(line, "\033[J")
}

func (h *replHinter) OnChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	if len(line) == 0 {
		return nil, 0, false
	}

	text := string(line)
	cmd, rest, hasArgs := strings.Cut(text, " ")

	// Upper-case a known command word as soon as it is recognised.
	if cmd != "" {
		upper := strings.ToUpper(cmd)
		if cmd != upper && h.reg.Get(upper) != nil {
			return []rune(upper + text[len(cmd):]), pos, true
		}
	}

	if !hasArgs || cmd == "" {
		return nil, 0, false
	}

	doc := h.reg.Lookup(strings.ToUpper(cmd), strings.Fields(rest))
	if doc == nil {
		return nil, 0, false
	}

	hint := fmt.Sprintf("%s %s", doc.Command, doc.Arguments)
	col := h.promptLen + pos

	hintWidth := 2 + len(hint) + 3 + len(doc.Summary)
	hintRows := 1
	if h.termWidth > 0 {
		hintRows = (hintWidth + h.termWidth - 1) / h.termWidth
	}

	// Newline, clear line, colored hint, then back up hintRows and over to col.
	fmt.Fprintf(os.Stdout, "\n\r\033[K  \033[36m%s\033[0m\033[34m - %s\033[0m\033[%dA\r\033[%dC",
		hint, doc.Summary, hintRows, col)

	return nil, 0, false
}

func historyPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".redisrest_history")
}

func prompt(host, queueMode string, queued int) string {
	if queueMode == "" {
		return host + "> "
	}
	return fmt.Sprintf("%s(%s %d)> ", host, strings.ToLower(queueMode), queued)
}

func runRepl(ctx context.Context, a *app, host string) error {
	mergeServerCommands(ctx, a)
	printServerInfo(ctx, a)

	tw, _, _ := term.GetSize(int(os.Stdout.Fd()))
	hinter := &replHinter{reg: a.reg, promptLen: len(prompt(host, "", 0)), termWidth: tw}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(host, "", 0),
		HistoryFile:     historyPath(),
		AutoComplete:    &replCompleter{reg: a.reg},
		Painter:         hinter,
		Listener:        hinter,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		// Errors are already printed by the handlers.
		exit, _ := a.execute(ctx, line)
		if exit {
			return nil
		}

		p := prompt(host, a.queueMode, len(a.queue))
		rl.SetPrompt(p)
		hinter.promptLen = len(p)
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			hinter.termWidth = w
		}
	}
}

// mergeServerCommands adds the server's COMMAND table to the registry for
// completion. Failures only warn.
func mergeServerCommands(ctx context.Context, a *app) {
	cmds, err := a.scanner.FetchServerCommands(ctx)
	if err != nil {
		a.log.WithError(err).Debug("COMMAND failed")
		color.Yellow("Warning: Could not fetch server commands: %v", err)
		return
	}
	if cmds != nil {
		a.reg.MergeServerCommands(cmds)
	}
}

func printServerInfo(ctx context.Context, a *app) {
	info, err := a.scanner.ServerInfo(ctx)
	if err != nil {
		color.Yellow("Warning: Could not fetch server info: %v", err)
		return
	}

	version := info["redis_version"]
	if version == "" {
		version = "unknown"
	}
	color.Green("Connected to Redis %s over REST", version)

	if mem := info["used_memory_human"]; mem != "" {
		color.Cyan("Memory: %s", mem)
	}

	var dbs []string
	for k := range info {
		if strings.HasPrefix(k, "db") {
			dbs = append(dbs, k)
		}
	}
	sort.Strings(dbs)
	for _, db := range dbs {
		// e.g. db0:keys=150,expires=0,avg_ttl=0
		keysPart, _, _ := strings.Cut(info[db], ",")
		if _, keys, ok := strings.Cut(keysPart, "="); ok {
			color.Cyan("%s (%s Total Keys)", db, keys)
		}
	}
	fmt.Println()
}
