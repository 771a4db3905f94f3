package parser

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/token"
)

// parseExpression parses the expr rule. Precedence is encoded in the rule
// hierarchy: logical < comparison < additive < multiplicative < secondary.
// All binary operators fold left.
func (p *Parser) parseExpression() (ast.Expression, *diagnostics.DiagnosticError) {
	return p.parseLogical()
}

// parseBinary folds a left-associative run of the given operators around
// the next-tighter rule.
func (p *Parser) parseBinary(next func() (ast.Expression, *diagnostics.DiagnosticError), operators ...string) (ast.Expression, *diagnostics.DiagnosticError) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		var opTok token.Token
		found := false
		for _, op := range operators {
			if p.peek(token.OPERATOR) && p.peek(op) {
				opTok = p.get(0)
				p.advance()
				found = true
				break
			}
		}
		if !found {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: opTok, Operator: opTok.Literal, Left: left, Right: right}
	}
}

func (p *Parser) parseLogical() (ast.Expression, *diagnostics.DiagnosticError) {
	return p.parseBinary(p.parseComparison, "&&", "||")
}

func (p *Parser) parseComparison() (ast.Expression, *diagnostics.DiagnosticError) {
	return p.parseBinary(p.parseAdditive, "<", "<=", ">", ">=", "==", "!=")
}

func (p *Parser) parseAdditive() (ast.Expression, *diagnostics.DiagnosticError) {
	return p.parseBinary(p.parseMultiplicative, "+", "-")
}

func (p *Parser) parseMultiplicative() (ast.Expression, *diagnostics.DiagnosticError) {
	return p.parseBinary(p.parseSecondary, "*", "/")
}

// parseSecondary parses member access and method calls, which bind tighter
// than any binary operator.
func (p *Parser) parseSecondary() (ast.Expression, *diagnostics.DiagnosticError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.match(".") {
		nameTok, err := p.expectIdentifier("member name")
		if err != nil {
			return nil, err
		}
		if p.match("(") {
			arguments, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Token: nameTok, Receiver: expr, Name: nameTok.Literal, Arguments: arguments}
		} else {
			expr = &ast.AccessExpression{Token: nameTok, Receiver: expr, Name: nameTok.Literal}
		}
	}
	return expr, nil
}

// parseArguments parses the remainder of an argument list after the
// opening parenthesis has been consumed.
func (p *Parser) parseArguments() ([]ast.Expression, *diagnostics.DiagnosticError) {
	var arguments []ast.Expression
	if !p.peek(")") {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !p.match(",") {
				break
			}
		}
	}
	if err := p.expectLiteral(")"); err != nil {
		return nil, err
	}
	return arguments, nil
}

func (p *Parser) parsePrimary() (ast.Expression, *diagnostics.DiagnosticError) {
	if !p.has(0) {
		return nil, p.errorf(diagnostics.ErrP002, "expected expression")
	}
	tok := p.get(0)

	switch {
	case p.match("NIL"):
		return &ast.NilLiteral{Token: tok}, nil
	case p.match("TRUE"):
		return &ast.BooleanLiteral{Token: tok, Value: true}, nil
	case p.match("FALSE"):
		return &ast.BooleanLiteral{Token: tok, Value: false}, nil

	case p.peek(token.INTEGER):
		p.advance()
		value, ok := new(big.Int).SetString(tok.Literal, 10)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrP005, tok.Offset, "malformed integer literal %q", tok.Literal)
		}
		return &ast.IntegerLiteral{Token: tok, Value: value}, nil

	case p.peek(token.DECIMAL):
		p.advance()
		value, err := decimal.NewFromString(tok.Literal)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrP005, tok.Offset, "malformed decimal literal %q", tok.Literal)
		}
		return &ast.DecimalLiteral{Token: tok, Value: value}, nil

	case p.peek(token.CHARACTER):
		p.advance()
		body := decodeEscapes(tok.Literal[1 : len(tok.Literal)-1])
		return &ast.CharacterLiteral{Token: tok, Value: []rune(body)[0]}, nil

	case p.peek(token.STRING):
		p.advance()
		body := decodeEscapes(tok.Literal[1 : len(tok.Literal)-1])
		return &ast.StringLiteral{Token: tok, Value: body}, nil

	case p.match("("):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectLiteral(")"); err != nil {
			return nil, err
		}
		return &ast.GroupExpression{Token: tok, Expression: expr}, nil

	case p.peek(token.IDENTIFIER):
		p.advance()
		if p.match("(") {
			arguments, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			return &ast.CallExpression{Token: tok, Name: tok.Literal, Arguments: arguments}, nil
		}
		return &ast.AccessExpression{Token: tok, Name: tok.Literal}, nil

	default:
		return nil, p.errorf(diagnostics.ErrP002, "expected expression")
	}
}

var escapes = strings.NewReplacer(
	`\b`, "\b",
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\'`, "'",
	`\"`, `"`,
	`\\`, `\`,
)

// decodeEscapes resolves the escape sequences the lexer admitted.
func decodeEscapes(s string) string {
	return escapes.Replace(s)
}
