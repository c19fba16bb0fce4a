// Package parser builds packet trees from a token sequence.
//
// Grammar:
//
//	expression := INT | list
//	list       := '[' (expression (',' expression)*)? ']'
//
// The top level is zero or more lists back to back. One token of lookahead is
// enough to pick a production, so the parser never backtracks.
package parser

import (
	"github.com/sambeau/distress/pkg/packet/ast"
	perrors "github.com/sambeau/distress/pkg/packet/errors"
	"github.com/sambeau/distress/pkg/packet/lexer"
)

// MaxNestingDepth is the default maximum nesting depth of a packet
const MaxNestingDepth = 4096

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below 1 disable the limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// Parser parses a token sequence into packet trees
type Parser struct {
	tokens   []lexer.Token
	index    int
	depth    int // current nesting depth
	maxDepth int
}

// New creates a parser over tokens
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens, maxDepth: MaxNestingDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// current returns the token under examination. Past the end of the slice it
// returns a synthetic EOF positioned after the last real token.
func (p *Parser) current() lexer.Token {
	if p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	tok := lexer.Token{Type: lexer.EOF}
	if n := len(p.tokens); n > 0 {
		tok.Line = p.tokens[n-1].Line
		tok.Column = p.tokens[n-1].Column
	}
	return tok
}

// advance moves to the next token
func (p *Parser) advance() {
	p.index++
}

// endOfInput reports whether parsing of top-level packets should stop
func (p *Parser) endOfInput() bool {
	return p.index >= len(p.tokens) || p.current().Type == lexer.EOF
}

// Parse parses every top-level packet
func (p *Parser) Parse() ([]ast.Expression, error) {
	result := []ast.Expression{}
	for !p.endOfInput() {
		if tok := p.current(); tok.Type != lexer.LBRACKET {
			return nil, unexpected(tok)
		}
		list, err := p.parseList()
		if err != nil {
			return nil, err
		}
		result = append(result, list)
	}
	return result, nil
}

// parseExpression parses an integer or a list
func (p *Parser) parseExpression() (ast.Expression, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.INT:
		p.advance()
		return &ast.Scalar{Value: tok.Value}, nil
	case lexer.LBRACKET:
		return p.parseList()
	default:
		return nil, unexpected(tok)
	}
}

// parseList parses a bracketed list; the current token must be '['
func (p *Parser) parseList() (ast.Expression, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		tok := p.current()
		return nil, perrors.NewWithPosition(perrors.CodeNestingTooDeep, tok.Line, tok.Column, map[string]any{
			"Max": p.maxDepth,
		})
	}

	p.advance() // consume [

	// Empty list
	if p.current().Type == lexer.RBRACKET {
		p.advance()
		return &ast.Container{Elements: []ast.Expression{}}, nil
	}

	var elements []ast.Expression
	elem, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	elements = append(elements, elem)

	for p.current().Type == lexer.COMMA {
		p.advance() // consume ,
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}

	if tok := p.current(); tok.Type != lexer.RBRACKET {
		return nil, perrors.NewWithPosition(perrors.CodeExpectedToken, tok.Line, tok.Column, map[string]any{
			"Expected":     lexer.Token{Type: lexer.RBRACKET}.String(),
			"Got":          tok.String(),
			"ExpectedType": lexer.RBRACKET,
		})
	}
	p.advance()

	return &ast.Container{Elements: elements}, nil
}

func unexpected(tok lexer.Token) error {
	return perrors.NewWithPosition(perrors.CodeUnexpectedToken, tok.Line, tok.Column, map[string]any{
		"Token": tok.String(),
		"Type":  tok.Type,
	})
}

// Parse parses tokens into a forest of packets, one per top-level list.
func Parse(tokens []lexer.Token, opts ...Option) ([]ast.Expression, error) {
	return New(tokens, opts...).Parse()
}

// ParseString tokenizes and parses input in one step.
func ParseString(input string, opts ...Option) ([]ast.Expression, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, opts...)
}
