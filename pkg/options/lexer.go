package options

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenArrow
	tokenColon
	tokenComma
	tokenLBracket
	tokenRBracket
	tokenLBrace
	tokenRBrace
)

type token struct {
	kind tokenKind
	raw  string
	pos  int
}

func (t token) describe() string {
	switch t.kind {
	case tokenString:
		return strconv.Quote(t.raw)
	default:
		return fmt.Sprintf("%q", t.raw)
	}
}

// tokenize splits a literal expression into tokens. It recognises only
// literal syntax; there is no way to reference variables or call functions.
func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	for i < len(input) {
		ch := input[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		start := i
		switch ch {
		case '[':
			i++
			tokens = append(tokens, token{kind: tokenLBracket, raw: "[", pos: start})
			continue
		case ']':
			i++
			tokens = append(tokens, token{kind: tokenRBracket, raw: "]", pos: start})
			continue
		case '{':
			i++
			tokens = append(tokens, token{kind: tokenLBrace, raw: "{", pos: start})
			continue
		case '}':
			i++
			tokens = append(tokens, token{kind: tokenRBrace, raw: "}", pos: start})
			continue
		case ',':
			i++
			tokens = append(tokens, token{kind: tokenComma, raw: ",", pos: start})
			continue
		case ':':
			i++
			tokens = append(tokens, token{kind: tokenColon, raw: ":", pos: start})
			continue
		case '=':
			if i+1 < len(input) && input[i+1] == '>' {
				i += 2
				tokens = append(tokens, token{kind: tokenArrow, raw: "=>", pos: start})
				continue
			}
			return nil, fmt.Errorf("unexpected '=' at offset %d; use '=>'", start)
		case '"', '\'':
			value, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			i = next
			tokens = append(tokens, token{kind: tokenString, raw: value, pos: start})
			continue
		}

		for i < len(input) && !isDelimiter(input[i]) {
			i++
		}
		raw := input[start:i]
		if raw == "" {
			return nil, fmt.Errorf("unexpected character %q at offset %d", ch, start)
		}

		switch strings.ToLower(raw) {
		case "true", "false":
			tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw), pos: start})
		case "null", "nil":
			tokens = append(tokens, token{kind: tokenNull, raw: "null", pos: start})
		default:
			switch {
			case looksLikeNumber(raw):
				tokens = append(tokens, token{kind: tokenNumber, raw: raw, pos: start})
			case isIdentifier(raw):
				tokens = append(tokens, token{kind: tokenIdentifier, raw: raw, pos: start})
			default:
				return nil, fmt.Errorf("unexpected token %q at offset %d", raw, start)
			}
		}
	}

	return tokens, nil
}

// scanString reads a quoted literal starting at input[start]. Single-quoted
// strings only recognise \' and \\ escapes, matching PHP array syntax, while
// double-quoted strings use Go escape rules.
func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	i := start + 1
	escaped := false
	for i < len(input) {
		c := input[i]
		i++
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c != quote {
			continue
		}

		body := input[start+1 : i-1]
		if quote == '\'' {
			replacer := strings.NewReplacer(`\\`, `\`, `\'`, `'`)
			return replacer.Replace(body), i, nil
		}
		value, err := strconv.Unquote(`"` + body + `"`)
		if err != nil {
			return "", 0, fmt.Errorf("invalid string literal at offset %d: %w", start, err)
		}
		return value, i, nil
	}
	return "", 0, fmt.Errorf("unterminated string literal at offset %d", start)
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '[', ']', '{', '}', ',', ':', '=', '"', '\'':
		return true
	default:
		return false
	}
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+' || ch == '.'
}

func isIdentifier(raw string) bool {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '\\', c == '-', c == '.':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return raw != ""
}
