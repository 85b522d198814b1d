// Package lexer converts raw source text into the token stream consumed by
// the parser. Scanning accumulates up to three diagnostics before giving up
// with a hidden-errors sentinel.
package lexer

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// ErrorLimit bounds the scanner's diagnostic queue.
const ErrorLimit = 3

var keywords = map[string]token.Type{
	"and":    token.And,
	"class":  token.Class,
	"else":   token.Else,
	"false":  token.False,
	"fun":    token.Fun,
	"for":    token.For,
	"if":     token.If,
	"nil":    token.Nil,
	"or":     token.Or,
	"print":  token.Print,
	"return": token.Return,
	"super":  token.Super,
	"this":   token.This,
	"true":   token.True,
	"var":    token.Var,
	"while":  token.While,
}

var singleTokens = map[byte]token.Type{
	'(': token.LeftParen,
	')': token.RightParen,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	',': token.Comma,
	'.': token.Dot,
	'-': token.Minus,
	'+': token.Plus,
	';': token.Semicolon,
	'*': token.Star,
}

type scanner struct {
	src    string
	pos    int
	line   int
	tokens []token.Token
	errs   *diag.Handler
}

// Scan converts source text into a token stream terminated by an EOF marker.
// Callers must check the handler before using the tokens; when it is
// non-empty the stream is incomplete and carries no end marker.
func Scan(src string) ([]token.Token, *diag.Handler) {
	s := &scanner{src: src, line: 1, errs: diag.New(ErrorLimit)}
	s.run()
	if !s.errs.HasErrors() {
		s.emit(token.EOF, "", nil)
	}
	return s.tokens, s.errs
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		case c == '/':
			if s.peek(1) == '/' {
				s.skipComment()
			} else {
				s.emit(token.Slash, "/", nil)
				s.pos++
			}
		case singleTokens[c] != "":
			s.emit(singleTokens[c], string(c), nil)
			s.pos++
		case c == '!' || c == '=' || c == '>' || c == '<':
			s.scanOperator(c)
		case c == '"':
			if !s.scanString() {
				return
			}
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			if !s.trap(fmt.Sprintf("found unknown symbol %c", c)) {
				return
			}
			s.pos++
		}
	}
}

func (s *scanner) peek(ahead int) byte {
	if s.pos+ahead >= len(s.src) {
		return 0
	}
	return s.src[s.pos+ahead]
}

func (s *scanner) emit(kind token.Type, lexeme string, literal any) {
	s.tokens = append(s.tokens, token.New(kind, s.line, lexeme, literal))
}

// trap queues a diagnostic; a false return means the queue overflowed and
// scanning should stop.
func (s *scanner) trap(msg string) bool {
	if !s.errs.Push(s.line, msg) {
		s.errs.Grow(1)
		s.errs.Push(s.line, "additional errors found (hidden)")
		return false
	}
	return true
}

func (s *scanner) skipComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) scanOperator(c byte) {
	if s.peek(1) == '=' {
		lexeme := s.src[s.pos : s.pos+2]
		switch c {
		case '!':
			s.emit(token.BangEqual, lexeme, nil)
		case '=':
			s.emit(token.EqualEqual, lexeme, nil)
		case '>':
			s.emit(token.GreaterEqual, lexeme, nil)
		case '<':
			s.emit(token.LessEqual, lexeme, nil)
		}
		s.pos += 2
		return
	}
	switch c {
	case '!':
		s.emit(token.Bang, "!", nil)
	case '=':
		s.emit(token.Equal, "=", nil)
	case '>':
		s.emit(token.Greater, ">", nil)
	case '<':
		s.emit(token.Less, "<", nil)
	}
	s.pos++
}

func (s *scanner) scanString() bool {
	start := s.pos
	startLine := s.line
	s.pos++
	for s.pos < len(s.src) && s.src[s.pos] != '"' {
		if s.src[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
	if s.pos >= len(s.src) {
		s.line = startLine
		return s.trap("unterminated string")
	}
	s.pos++
	lexeme := s.src[start:s.pos]
	value := s.src[start+1 : s.pos-1]
	s.tokens = append(s.tokens, token.New(token.String, startLine, lexeme, value))
	return true
}

func (s *scanner) scanNumber() {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' && isDigit(s.peek(1)) {
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	lexeme := s.src[start:s.pos]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.trap(fmt.Sprintf("malformed number %s", lexeme))
		return
	}
	s.emit(token.Number, lexeme, value)
}

func (s *scanner) scanIdentifier() {
	start := s.pos
	for s.pos < len(s.src) && isAlphaNumeric(s.src[s.pos]) {
		s.pos++
	}
	lexeme := s.src[start:s.pos]
	kind, ok := keywords[lexeme]
	if !ok {
		s.emit(token.Identifier, lexeme, nil)
		return
	}
	switch kind {
	case token.True:
		s.emit(kind, lexeme, true)
	case token.False:
		s.emit(kind, lexeme, false)
	default:
		s.emit(kind, lexeme, nil)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
