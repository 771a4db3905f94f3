// Package parser builds the AST by recursive descent over the token
// stream. Patterns given to peek and match are either a token.Type or an
// exact literal; grammar violations produce a diagnostic carrying the
// offset of the offending token, or the offset just past the last token at
// end of stream.
package parser

import (
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/token"
)

type Parser struct {
	tokens []token.Token
	index  int

	// incrementMode suppresses semicolon enforcement while parsing the
	// initializer and increment sub-statements of a for header; the ';'
	// separators inside for(...) are the sole terminators there.
	incrementMode bool
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) has(offset int) bool {
	return p.index+offset < len(p.tokens)
}

func (p *Parser) get(offset int) token.Token {
	return p.tokens[p.index+offset]
}

func (p *Parser) advance() {
	p.index++
}

// errOffset is where a diagnostic for the current position points: the
// offending token, or just past the last token at end of stream.
func (p *Parser) errOffset() int {
	if p.has(0) {
		return p.get(0).Offset
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1].End()
	}
	return 0
}

func (p *Parser) errorf(code diagnostics.ErrorCode, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(code, p.errOffset(), format, args...)
}

func matches(tok token.Token, pattern interface{}) bool {
	switch pat := pattern.(type) {
	case token.Type:
		return tok.Type == pat
	case string:
		return tok.Literal == pat
	default:
		return false
	}
}

// peek reports whether the next tokens match the given patterns, one token
// per pattern, without consuming.
func (p *Parser) peek(patterns ...interface{}) bool {
	for i, pat := range patterns {
		if !p.has(i) || !matches(p.get(i), pat) {
			return false
		}
	}
	return true
}

// match behaves like peek but consumes the matched tokens.
func (p *Parser) match(patterns ...interface{}) bool {
	if !p.peek(patterns...) {
		return false
	}
	for range patterns {
		p.advance()
	}
	return true
}

func (p *Parser) expectLiteral(literal string) *diagnostics.DiagnosticError {
	if p.match(literal) {
		return nil
	}
	return p.errorf(diagnostics.ErrP001, "expected '%s'", literal)
}

func (p *Parser) expectIdentifier(what string) (token.Token, *diagnostics.DiagnosticError) {
	if !p.peek(token.IDENTIFIER) {
		return token.Token{}, p.errorf(diagnostics.ErrP001, "expected %s", what)
	}
	tok := p.get(0)
	p.advance()
	return tok, nil
}
