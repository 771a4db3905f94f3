package ast

import "github.com/plclang/plc/internal/token"

// ExpressionStatement wraps an expression used in statement position. The
// analyzer only admits function calls here.
type ExpressionStatement struct {
	Token      token.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// DeclarationStatement declares a local variable.
// LET name [: Type] [= value] ;
type DeclarationStatement struct {
	Token    token.Token // the LET token
	Name     string
	TypeName string     // empty means inferred from Value
	Value    Expression // optional initializer
}

func (ds *DeclarationStatement) statementNode()        {}
func (ds *DeclarationStatement) TokenLiteral() string  { return ds.Token.Literal }
func (ds *DeclarationStatement) GetToken() token.Token { return ds.Token }

// AssignmentStatement assigns a value to a receiver, which must
// syntactically be an access expression.
type AssignmentStatement struct {
	Token    token.Token // the '=' token
	Receiver Expression
	Value    Expression
}

func (as *AssignmentStatement) statementNode()        {}
func (as *AssignmentStatement) TokenLiteral() string  { return as.Token.Literal }
func (as *AssignmentStatement) GetToken() token.Token { return as.Token }

// IfStatement selects the then or else branch on a Boolean condition.
// IF condition DO then [ELSE else] END
type IfStatement struct {
	Token          token.Token // the IF token
	Condition      Expression
	ThenStatements []Statement
	ElseStatements []Statement
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// ForStatement is a C-style loop. Initialization, Condition, and Increment
// are each optional (nil when absent).
// FOR ( [init] ; [condition] ; [increment] ) DO statements END
type ForStatement struct {
	Token          token.Token // the FOR token
	Initialization Statement
	Condition      Expression
	Increment      Statement
	Statements     []Statement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Literal }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// WhileStatement re-evaluates its condition before each iteration.
// WHILE condition DO statements END
type WhileStatement struct {
	Token      token.Token // the WHILE token
	Condition  Expression
	Statements []Statement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Literal }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ReturnStatement unwinds the enclosing method invocation with a value.
// RETURN value ;
type ReturnStatement struct {
	Token token.Token // the RETURN token
	Value Expression
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Literal }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }
