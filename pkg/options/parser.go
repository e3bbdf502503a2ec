package options

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-modelinput/pkg/rules"
)

// ParseLiteral parses a literal expression into Go values. Maps (PHP
// `['k' => v]` or JSON `{"k": v}`) decode to rules.Attributes so key order is
// preserved, lists decode to []any, integers to int64 and decimals to float64.
func ParseLiteral(input string) (any, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	stream := &tokenStream{tokens: tokens}
	value, err := stream.parseValue()
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("unexpected token %s at offset %d", stream.peek().describe(), stream.peek().pos)
	}
	return value, nil
}

type tokenStream struct {
	tokens []token
	pos    int
}

func (s *tokenStream) peek() token {
	if s.pos >= len(s.tokens) {
		return token{}
	}
	return s.tokens[s.pos]
}

func (s *tokenStream) done() bool {
	return s.pos >= len(s.tokens)
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.done() || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) next() (token, error) {
	if s.done() {
		return token{}, errors.New("unexpected end of expression")
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *tokenStream) parseValue() (any, error) {
	tok, err := s.next()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokenLBracket:
		return s.parseBracket()
	case tokenLBrace:
		return s.parseBrace()
	case tokenString:
		return tok.raw, nil
	case tokenNumber:
		return parseNumber(tok)
	case tokenBool:
		return tok.raw == "true", nil
	case tokenNull:
		return nil, nil
	case tokenIdentifier:
		return nil, fmt.Errorf("bare identifier %q at offset %d must be quoted", tok.raw, tok.pos)
	default:
		return nil, fmt.Errorf("unexpected token %s at offset %d", tok.describe(), tok.pos)
	}
}

// parseBracket handles `[...]`, which is a map when the first element is
// followed by `=>` and a list otherwise. `[]` is an empty map.
func (s *tokenStream) parseBracket() (any, error) {
	if s.match(tokenRBracket) {
		return rules.Attributes{}, nil
	}

	if s.isKeyFollowedBy(tokenArrow) {
		return s.parseEntries(tokenRBracket, tokenArrow)
	}

	var list []any
	for {
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, value)

		if s.match(tokenComma) {
			if s.match(tokenRBracket) {
				return list, nil
			}
			continue
		}
		if s.match(tokenRBracket) {
			return list, nil
		}
		return nil, s.expected("',' or ']'")
	}
}

func (s *tokenStream) parseBrace() (any, error) {
	if s.match(tokenRBrace) {
		return rules.Attributes{}, nil
	}
	separator := tokenColon
	if s.isKeyFollowedBy(tokenArrow) {
		separator = tokenArrow
	}
	return s.parseEntries(tokenRBrace, separator)
}

func (s *tokenStream) parseEntries(closing, separator tokenKind) (any, error) {
	var entries rules.Attributes
	for {
		keyTok, err := s.next()
		if err != nil {
			return nil, err
		}
		key, err := keyString(keyTok)
		if err != nil {
			return nil, err
		}
		if !s.match(separator) {
			return nil, s.expected(separatorName(separator))
		}
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		if entries.Has(key) {
			return nil, fmt.Errorf("duplicate key %q at offset %d", key, keyTok.pos)
		}
		entries.Set(key, value)

		if s.match(tokenComma) {
			if s.match(closing) {
				return entries, nil
			}
			continue
		}
		if s.match(closing) {
			return entries, nil
		}
		return nil, s.expected("',' or closing bracket")
	}
}

func (s *tokenStream) isKeyFollowedBy(kind tokenKind) bool {
	if s.pos+1 >= len(s.tokens) {
		return false
	}
	switch s.tokens[s.pos].kind {
	case tokenString, tokenIdentifier, tokenNumber:
	default:
		return false
	}
	return s.tokens[s.pos+1].kind == kind
}

func (s *tokenStream) expected(what string) error {
	if s.done() {
		return fmt.Errorf("expected %s, got end of expression", what)
	}
	tok := s.peek()
	return fmt.Errorf("expected %s, got %s at offset %d", what, tok.describe(), tok.pos)
}

func keyString(tok token) (string, error) {
	switch tok.kind {
	case tokenString, tokenIdentifier, tokenNumber:
		return tok.raw, nil
	default:
		return "", fmt.Errorf("invalid key %s at offset %d", tok.describe(), tok.pos)
	}
}

func separatorName(kind tokenKind) string {
	if kind == tokenArrow {
		return "'=>'"
	}
	return "':'"
}

func parseNumber(tok token) (any, error) {
	if n, err := strconv.ParseInt(tok.raw, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(tok.raw, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("invalid number literal %q at offset %d", tok.raw, tok.pos)
}
