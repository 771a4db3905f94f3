package ast

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/plclang/plc/internal/token"
)

// NilLiteral is the NIL keyword.
type NilLiteral struct {
	Token token.Token
}

func (nl *NilLiteral) expressionNode()       {}
func (nl *NilLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NilLiteral) GetToken() token.Token { return nl.Token }

// BooleanLiteral is TRUE or FALSE.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Literal }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// CharacterLiteral carries the decoded character, escapes resolved.
type CharacterLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharacterLiteral) expressionNode()       {}
func (cl *CharacterLiteral) TokenLiteral() string  { return cl.Token.Literal }
func (cl *CharacterLiteral) GetToken() token.Token { return cl.Token }

// StringLiteral carries the decoded string, escapes resolved.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Literal }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// IntegerLiteral carries an arbitrary-precision integer; the analyzer
// enforces the signed 32-bit range.
type IntegerLiteral struct {
	Token token.Token
	Value *big.Int
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Literal }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// DecimalLiteral carries an arbitrary-precision decimal with the exact
// scale written in source.
type DecimalLiteral struct {
	Token token.Token
	Value decimal.Decimal
}

func (dl *DecimalLiteral) expressionNode()       {}
func (dl *DecimalLiteral) TokenLiteral() string  { return dl.Token.Literal }
func (dl *DecimalLiteral) GetToken() token.Token { return dl.Token }

// FormatDecimal renders a decimal in fixed-point notation, preserving the
// scale the value carries: 1.50 stays "1.50", never "1.5" and never
// scientific notation.
func FormatDecimal(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

// GroupExpression is a parenthesized expression. The analyzer requires the
// child to be a binary expression.
type GroupExpression struct {
	Token      token.Token // the '(' token
	Expression Expression
}

func (ge *GroupExpression) expressionNode()       {}
func (ge *GroupExpression) TokenLiteral() string  { return ge.Token.Literal }
func (ge *GroupExpression) GetToken() token.Token { return ge.Token }

// BinaryExpression applies a binary operator to two operands. All binary
// operators are left-associative; precedence is resolved by the parser.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Literal }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// AccessExpression reads a variable, or a field when Receiver is non-nil.
type AccessExpression struct {
	Token    token.Token // the name token
	Receiver Expression  // optional
	Name     string
}

func (ae *AccessExpression) expressionNode()       {}
func (ae *AccessExpression) TokenLiteral() string  { return ae.Token.Literal }
func (ae *AccessExpression) GetToken() token.Token { return ae.Token }

// CallExpression invokes a function, or a method when Receiver is non-nil.
// Arguments are evaluated left to right.
type CallExpression struct {
	Token     token.Token // the name token
	Receiver  Expression  // optional
	Name      string
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Literal }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
