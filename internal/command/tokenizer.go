package command

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned when a quoted token never closes.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// tokenize splits input on whitespace. Double and single quotes group words;
// a backslash escapes the next rune outside single quotes. An empty pair of
// quotes yields an empty token.
func tokenize(input string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	var quote rune
	escaped := false
	inToken := false

	for _, r := range input {
		if escaped {
			current.WriteRune(unescape(r))
			escaped = false
			continue
		}

		switch {
		case r == '\\' && quote != '\'':
			escaped = true
			inToken = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
			inToken = true
		case quote == 0 && unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if escaped {
		current.WriteRune('\\')
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}
