package output

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"os/exec"
	"strings"

	"github.com/cosmez/redisrest-go"
	"github.com/cosmez/redisrest-go/internal/serializer"
	"github.com/fatih/color"
)

// PrintOpts configures how a value is printed.
type PrintOpts struct {
	Color    bool
	Codec    serializer.Serializer // applied to string values before printing
	Padding  string
	TypeHint string // e.g. "hash", "stream"
	Newline  bool
	Bare     bool // strings without quotes
}

var (
	colorString = color.New(color.FgHiBlue)
	colorNumber = color.New(color.FgHiGreen)
	colorBool   = color.New(color.FgHiMagenta)
	colorError  = color.New(color.FgRed, color.Bold)
	colorNull   = color.New(color.FgHiBlack)
	colorPrompt = color.New(color.FgHiYellow)
	colorIndex  = color.New(color.FgHiBlack)
	colorMapKey = color.New(color.FgHiCyan)
)

func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	w := 0
	for n > 0 {
		w++
		n /= 10
	}
	return w
}

func fprint(w io.Writer, c *color.Color, useColor bool, text string) {
	if useColor && c != nil {
		c.Fprint(w, text)
		return
	}
	fmt.Fprint(w, text)
}

// PrintError writes err in the error style: "(error) message".
func PrintError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}
	msg := err.Error()
	var redisErr *redisrest.Error
	if errors.As(err, &redisErr) {
		msg = redisErr.Message
	}
	fprint(w, colorError, useColor, "(error) "+msg)
	fmt.Fprintln(w)
}

// PrintValues prints an iterator of values, asking on r whether to continue
// every warningAt entries. It stops at the first iteration error and
// returns it.
func PrintValues(w io.Writer, r io.Reader, values iter.Seq2[redisrest.Value, error], opts PrintOpts, warningAt int) error {
	i := 0

	for value, err := range values {
		if err != nil {
			PrintError(w, err, opts.Color)
			return err
		}
		i++

		switch opts.TypeHint {
		case "stream":
			if entry, ok := value.(redisrest.Array); ok && len(entry.Values) >= 2 {
				idOpts := opts
				idOpts.TypeHint = ""
				idOpts.Newline = false
				idOpts.Bare = true
				PrintValue(w, entry.Values[0], idOpts)

				fieldsOpts := opts
				fieldsOpts.Padding = " "
				fieldsOpts.Newline = false
				PrintValue(w, entry.Values[1], fieldsOpts)
			}
		case "hash", "zset":
			pairOpts := opts
			pairOpts.Newline = false
			PrintValue(w, value, pairOpts)
		default:
			fprint(w, colorIndex, opts.Color, fmt.Sprintf("%d) ", i))
			PrintValue(w, value, opts)
		}

		if warningAt > 0 && i%warningAt == 0 && !askContinue(w, r) {
			break
		}
	}
	return nil
}

// askContinue reads one answer byte by byte so it never buffers input the
// REPL still needs.
func askContinue(w io.Writer, r io.Reader) bool {
	fmt.Fprint(w, "Continue Listing? ")
	colorPrompt.Fprint(w, "(Y/N) ")

	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			line = append(line, buf[0])
			if buf[0] == '\n' {
				break
			}
		}
		if err != nil {
			break
		}
	}

	ans := strings.TrimSpace(string(line))
	return len(ans) > 0 && (ans[0] == 'Y' || ans[0] == 'y')
}

// PrintResponses prints the envelopes of a pipeline or transaction, one
// numbered entry per command. Failed commands are shown as errors.
func PrintResponses(w io.Writer, responses []redisrest.Response, opts PrintOpts) {
	if len(responses) == 0 {
		fprint(w, colorNull, opts.Color, "(empty pipeline)")
		fmt.Fprintln(w)
		return
	}
	digits := digitWidth(len(responses))
	for i, response := range responses {
		fprint(w, colorIndex, opts.Color, fmt.Sprintf("%*d) ", digits, i+1))
		result, ok := response.Result()
		if !ok {
			fprint(w, colorError, opts.Color, "(error) "+response.Err().Message)
			fmt.Fprintln(w)
			continue
		}
		childOpts := opts
		childOpts.Padding = opts.Padding + strings.Repeat(" ", digits+2)
		childOpts.Newline = true
		PrintValue(w, result.Value(), childOpts)
	}
}

// PipeValue writes the raw text of v to the stdin of a shell command.
func PipeValue(w io.Writer, v redisrest.Value, shellCmd string) error {
	args := strings.Fields(shellCmd)
	if len(args) == 0 {
		return nil
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = w
	cmd.Stderr = w

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open pipe to %s: %w", args[0], err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", args[0], err)
	}

	writeRawValue(stdin, v)
	stdin.Close()

	return cmd.Wait()
}

func writeRawValue(w io.Writer, v redisrest.Value) {
	switch val := v.(type) {
	case nil:
	case redisrest.Array:
		for _, element := range val.Values {
			writeRawValue(w, element)
		}
	case redisrest.Map:
		data, err := redisrest.MarshalValue(val)
		if err == nil {
			fmt.Fprintln(w, string(data))
		}
	default:
		fmt.Fprintln(w, v.StringValue())
	}
}

// Export writes a single value, an iterator of values, or both to filename.
func Export(filename string, v redisrest.Value, values iter.Seq2[redisrest.Value, error], typeHint string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if v != nil {
		writeExportValue(f, v, typeHint)
	}
	if values != nil {
		for value, err := range values {
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", filename, err)
			}
			writeExportValue(f, value, typeHint)
		}
	}
	return f.Close()
}

func writeExportValue(w io.Writer, v redisrest.Value, typeHint string) {
	switch val := v.(type) {
	case nil:
	case redisrest.Array:
		for i := 0; i < len(val.Values); {
			writeExportValue(w, val.Values[i], typeHint)
			i++
			if (typeHint == "hash" || typeHint == "zset") && i < len(val.Values) {
				fmt.Fprint(w, "=")
				writeExportValue(w, val.Values[i], typeHint)
				i++
			}
			fmt.Fprintln(w)
		}
	case redisrest.Map:
		for _, key := range val.Keys() {
			fmt.Fprintf(w, "%s=", key)
			writeExportValue(w, val.Values[key], "")
			fmt.Fprintln(w)
		}
	case redisrest.Null:
		fmt.Fprint(w, "(null)")
	default:
		fmt.Fprint(w, v.StringValue())
	}
}

// PrintValue prints a single value with optional ANSI colors.
func PrintValue(w io.Writer, v redisrest.Value, opts PrintOpts) {
	if v == nil {
		return
	}

	switch val := v.(type) {
	case redisrest.Array:
		printArray(w, val, opts)
		return
	case redisrest.Map:
		printMap(w, val, opts)
		return
	}

	var text string
	var c *color.Color
	switch val := v.(type) {
	case redisrest.String:
		text = decode(opts.Codec, val.Value)
		if !opts.Bare {
			text = fmt.Sprintf("%q", text)
		}
		c = colorString
	case redisrest.Number:
		if _, ok := val.Int64(); ok {
			text = "(integer) " + val.Text
		} else {
			text = "(number) " + val.Text
		}
		c = colorNumber
	case redisrest.Bool:
		text = "(boolean) " + val.StringValue()
		c = colorBool
	case redisrest.Null:
		text = "(nil)"
		c = colorNull
	default:
		text = v.StringValue()
	}

	fprint(w, c, opts.Color, text)
	if opts.Newline {
		fmt.Fprintln(w)
	}
}

func decode(codec serializer.Serializer, value string) string {
	if codec == nil {
		return value
	}
	out, err := serializer.DecodeText(codec, value)
	if err != nil {
		return value
	}
	return out
}

func printArray(w io.Writer, val redisrest.Array, opts PrintOpts) {
	if len(val.Values) == 0 {
		fprint(w, colorNull, opts.Color, "(empty array)")
		if opts.Newline {
			fmt.Fprintln(w)
		}
		return
	}

	if opts.TypeHint == "hash" || opts.TypeHint == "zset" || opts.TypeHint == "stream" {
		printPairs(w, val, opts)
		return
	}

	// Indices are right aligned; the first element of a nested array is
	// printed inline after its parent's index.
	digits := digitWidth(len(val.Values))
	idxWidth := digits + 2

	for i, element := range val.Values {
		if i > 0 {
			fmt.Fprint(w, opts.Padding)
		}
		fprint(w, colorIndex, opts.Color, fmt.Sprintf("%*d) ", digits, i+1))

		childOpts := opts
		childOpts.Padding = opts.Padding + strings.Repeat(" ", idxWidth)
		childOpts.Newline = false
		childOpts.TypeHint = ""
		PrintValue(w, element, childOpts)

		if !endsWithNewline(element) {
			fmt.Fprintln(w)
		}
	}
}

func printPairs(w io.Writer, val redisrest.Array, opts PrintOpts) {
	marker := "#"
	if opts.TypeHint == "stream" {
		marker = "@"
	}
	if opts.Padding != "" {
		fmt.Fprintln(w)
	}

	for i := 0; i < len(val.Values); {
		fmt.Fprintf(w, "%s%s", opts.Padding, marker)

		childOpts := opts
		childOpts.Padding = opts.Padding + "  "
		childOpts.Newline = false
		childOpts.TypeHint = ""
		childOpts.Bare = true
		PrintValue(w, val.Values[i], childOpts)
		i++

		if i < len(val.Values) {
			fmt.Fprint(w, "=")
			PrintValue(w, val.Values[i], childOpts)
			i++
		}
		fmt.Fprintln(w)
	}
}

func printMap(w io.Writer, val redisrest.Map, opts PrintOpts) {
	if len(val.Values) == 0 {
		fprint(w, colorNull, opts.Color, "(empty map)")
		if opts.Newline {
			fmt.Fprintln(w)
		}
		return
	}

	for i, key := range val.Keys() {
		if i > 0 {
			fmt.Fprint(w, opts.Padding)
		}
		fprint(w, colorMapKey, opts.Color, key)
		fmt.Fprint(w, " => ")

		childOpts := opts
		childOpts.Padding = opts.Padding + "  "
		childOpts.Newline = false
		childOpts.TypeHint = ""
		element := val.Values[key]
		if endsWithNewline(element) {
			fmt.Fprintln(w)
			fmt.Fprint(w, childOpts.Padding)
		}
		PrintValue(w, element, childOpts)

		if !endsWithNewline(element) {
			fmt.Fprintln(w)
		}
	}
}

// endsWithNewline reports whether printing v already terminates its last
// line: non-empty arrays and maps do.
func endsWithNewline(v redisrest.Value) bool {
	switch val := v.(type) {
	case redisrest.Array:
		return len(val.Values) > 0
	case redisrest.Map:
		return len(val.Values) > 0
	}
	return false
}
