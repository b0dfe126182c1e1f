package command

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cosmez/redisrest-go/internal/serializer"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  error
	}{
		{
			name:     "Simple",
			input:    "GET mykey",
			expected: []string{"GET", "mykey"},
		},
		{
			name:     "Double Quoted",
			input:    `SET key "hello world"`,
			expected: []string{"SET", "key", "hello world"},
		},
		{
			name:     "Single Quoted",
			input:    `SET key '{"a": 1}'`,
			expected: []string{"SET", "key", `{"a": 1}`},
		},
		{
			name:     "Escaped Quotes",
			input:    `SET key "hello \"world\""`,
			expected: []string{"SET", "key", `hello "world"`},
		},
		{
			name:     "Backslash Literal In Single Quotes",
			input:    `SET key 'a\nb'`,
			expected: []string{"SET", "key", `a\nb`},
		},
		{
			name:     "Escape Sequence",
			input:    `SET key "a\nb"`,
			expected: []string{"SET", "key", "a\nb"},
		},
		{
			name:     "Empty Quoted Token",
			input:    `SET key ""`,
			expected: []string{"SET", "key", ""},
		},
		{
			name:     "Adjacent Quotes Join",
			input:    `SET key pre"fix "post`,
			expected: []string{"SET", "key", "prefix post"},
		},
		{
			name:     "Multiple Spaces",
			input:    "  GET   mykey  ",
			expected: []string{"GET", "mykey"},
		},
		{
			name:    "Unclosed Double Quote",
			input:   `SET key "hello`,
			wantErr: ErrUnterminatedQuote,
		},
		{
			name:    "Unclosed Single Quote",
			input:   `SET key 'hello`,
			wantErr: ErrUnterminatedQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tokenize(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("tokenize() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("tokenize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name         string
		input        string
		expectedName string
		expectedArgs []string
		expectedMod  string
		expectedPipe string
		expectedCmd  []any
		wantErr      bool
	}{
		{
			name:         "Simple Command",
			input:        "get mykey",
			expectedName: "GET",
			expectedArgs: []string{"mykey"},
			expectedCmd:  []any{"GET", "mykey"},
		},
		{
			name:         "With Codec",
			input:        "GET mykey#:gzip",
			expectedName: "GET",
			expectedArgs: []string{"mykey"},
			expectedMod:  "gzip",
			expectedCmd:  []any{"GET", "mykey"},
		},
		{
			name:         "With Pipe",
			input:        "GET mykey | jq .",
			expectedName: "GET",
			expectedArgs: []string{"mykey"},
			expectedPipe: "jq .",
			expectedCmd:  []any{"GET", "mykey"},
		},
		{
			name:         "With Codec and Pipe",
			input:        "GET mykey#:gzip | jq .",
			expectedName: "GET",
			expectedArgs: []string{"mykey"},
			expectedMod:  "gzip",
			expectedPipe: "jq .",
			expectedCmd:  []any{"GET", "mykey"},
		},
		{
			name:         "SET with Codec",
			input:        "SET key value#:base64",
			expectedName: "SET",
			expectedArgs: []string{"key", "value"},
			expectedMod:  "base64",
			expectedCmd:  []any{"SET", "key", "dmFsdWU="},
		},
		{
			name:         "SET Options Untouched",
			input:        "SET key value EX 10#:base64",
			expectedName: "SET",
			expectedArgs: []string{"key", "value", "EX", "10"},
			expectedMod:  "base64",
			expectedCmd:  []any{"SET", "key", "dmFsdWU=", "EX", "10"},
		},
		{
			name:    "Unknown Codec",
			input:   "SET key value#:unknown",
			wantErr: true,
		},
		{
			name:    "Unterminated Quote",
			input:   `SET key "value`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, reg)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if got.Name != tt.expectedName {
				t.Errorf("Parse() Name = %v, want %v", got.Name, tt.expectedName)
			}
			if !reflect.DeepEqual(got.Args, tt.expectedArgs) {
				t.Errorf("Parse() Args = %v, want %v", got.Args, tt.expectedArgs)
			}
			if got.Modifier != tt.expectedMod {
				t.Errorf("Parse() Modifier = %v, want %v", got.Modifier, tt.expectedMod)
			}
			if got.Pipe != tt.expectedPipe {
				t.Errorf("Parse() Pipe = %v, want %v", got.Pipe, tt.expectedPipe)
			}
			if rendered := got.Command.Render(); !reflect.DeepEqual(rendered, tt.expectedCmd) {
				t.Errorf("Parse() Command = %#v, want %#v", rendered, tt.expectedCmd)
			}
			if got.Doc == nil || got.Doc.Command != tt.expectedName {
				t.Errorf("Parse() Doc = %v", got.Doc)
			}
		})
	}
}

func TestParseBinaryCodecIsTextSafe(t *testing.T) {
	got, err := Parse("SET blob hello#:snappy", nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	value, ok := got.Command.Args()[1].(string)
	if !ok {
		t.Fatalf("encoded value is %T", got.Command.Args()[1])
	}
	decoded, err := serializer.DecodeText(got.Codec(), value)
	if err != nil {
		t.Fatalf("DecodeText() error = %v", err)
	}
	if decoded != "hello" {
		t.Errorf("decoded = %q", decoded)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "#:gzip"} {
		got, err := Parse(input, nil)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if !got.Empty() {
			t.Errorf("Parse(%q) should be empty, got %+v", input, got)
		}
	}
}
