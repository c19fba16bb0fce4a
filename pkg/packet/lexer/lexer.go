// Package lexer turns packet text into tokens.
//
// The packet alphabet is tiny: '[', ']', ',', ASCII digits and newlines.
// Newlines separate top-level packets and are never emitted as tokens.
package lexer

import (
	"fmt"
	"strconv"

	perrors "github.com/sambeau/distress/pkg/packet/errors"
)

// TokenType represents different types of packet tokens
type TokenType int

const (
	EOF TokenType = iota

	INT // 42

	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
)

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case COMMA:
		return "COMMA"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

// Token represents a single packet token. Value is only meaningful for INT.
type Token struct {
	Type   TokenType
	Value  uint64
	Line   int
	Column int
}

// String renders the token the way it appears in source.
func (t Token) String() string {
	switch t.Type {
	case INT:
		return strconv.FormatUint(t.Value, 10)
	case LBRACKET:
		return "["
	case RBRACKET:
		return "]"
	case COMMA:
		return ","
	case EOF:
		return "END_OF_INPUT"
	default:
		return t.Type.String()
	}
}

// Lexer tokenizes packet input
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number (1-indexed)
	column       int  // current column number (1-indexed)
}

// New creates a new packet lexer
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// atEnd reports whether the whole input has been consumed
func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token from the input. Once the input is
// exhausted every further call returns EOF.
func (l *Lexer) NextToken() (Token, error) {
	for !l.atEnd() && l.ch == '\n' {
		l.readChar()
	}

	tok := Token{Line: l.line, Column: l.column}

	if l.atEnd() {
		tok.Type = EOF
		return tok, nil
	}

	switch l.ch {
	case '[':
		tok.Type = LBRACKET
	case ']':
		tok.Type = RBRACKET
	case ',':
		tok.Type = COMMA
	default:
		if !isDigit(l.ch) {
			return Token{}, perrors.NewWithPosition(perrors.CodeUnexpectedInput, tok.Line, tok.Column, map[string]any{
				"Char": strconv.QuoteRune(rune(l.ch)),
				"Byte": l.ch,
			})
		}
		return l.readInteger(tok)
	}

	l.readChar()
	return tok, nil
}

// readInteger scans a maximal run of digits
func (l *Lexer) readInteger(tok Token) (Token, error) {
	start := l.position
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]

	value, err := strconv.ParseUint(literal, 10, 64)
	if err != nil {
		return Token{}, perrors.NewWithPosition(perrors.CodeIntegerOutOfRange, tok.Line, tok.Column, map[string]any{
			"Literal": literal,
		})
	}

	tok.Type = INT
	tok.Value = value
	return tok, nil
}

// Tokenize converts the whole input into tokens. The result always ends with
// exactly one EOF token. On error no tokens are returned.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
