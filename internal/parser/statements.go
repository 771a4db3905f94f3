package parser

import (
	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/diagnostics"
)

// ParseSource parses the source rule: any number of fields and methods.
func (p *Parser) ParseSource() (*ast.Source, *diagnostics.DiagnosticError) {
	source := &ast.Source{}
	for p.has(0) {
		switch {
		case p.peek("LET"):
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			source.Fields = append(source.Fields, field)
		case p.peek("DEF"):
			method, err := p.parseMethod()
			if err != nil {
				return nil, err
			}
			source.Methods = append(source.Methods, method)
		default:
			return nil, p.errorf(diagnostics.ErrP003, "expected field or method declaration")
		}
	}
	return source, nil
}

// parseField parses: LET [CONST] name [: Type] [= expr] ;
func (p *Parser) parseField() (*ast.Field, *diagnostics.DiagnosticError) {
	tok := p.get(0)
	p.match("LET")
	constant := p.match("CONST")

	nameTok, err := p.expectIdentifier("field name")
	if err != nil {
		return nil, err
	}

	field := &ast.Field{Token: tok, Name: nameTok.Literal, Constant: constant}
	if p.match(":") {
		typeTok, err := p.expectIdentifier("field type")
		if err != nil {
			return nil, err
		}
		field.TypeName = typeTok.Literal
	}
	if p.match("=") {
		field.Value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectLiteral(";"); err != nil {
		return nil, err
	}
	return field, nil
}

// parseMethod parses:
// DEF name ( [p : T ("," p : T)*] ) [: Type] DO statement* END
func (p *Parser) parseMethod() (*ast.Method, *diagnostics.DiagnosticError) {
	tok := p.get(0)
	p.match("DEF")

	nameTok, err := p.expectIdentifier("method name")
	if err != nil {
		return nil, err
	}
	method := &ast.Method{Token: tok, Name: nameTok.Literal}

	if err := p.expectLiteral("("); err != nil {
		return nil, err
	}
	if !p.peek(")") {
		for {
			paramTok, err := p.expectIdentifier("parameter name")
			if err != nil {
				return nil, err
			}
			if err := p.expectLiteral(":"); err != nil {
				return nil, err
			}
			typeTok, err := p.expectIdentifier("parameter type")
			if err != nil {
				return nil, err
			}
			method.Parameters = append(method.Parameters, paramTok.Literal)
			method.ParameterTypeNames = append(method.ParameterTypeNames, typeTok.Literal)
			if !p.match(",") {
				break
			}
		}
	}
	if err := p.expectLiteral(")"); err != nil {
		return nil, err
	}

	if p.match(":") {
		typeTok, err := p.expectIdentifier("return type")
		if err != nil {
			return nil, err
		}
		method.ReturnTypeName = typeTok.Literal
	}

	if err := p.expectLiteral("DO"); err != nil {
		return nil, err
	}
	method.Statements, err = p.parseBlock("END")
	if err != nil {
		return nil, err
	}
	p.match("END")
	return method, nil
}

// parseBlock parses statements until one of the given terminator literals
// is next. The terminator is not consumed.
func (p *Parser) parseBlock(terminators ...string) ([]ast.Statement, *diagnostics.DiagnosticError) {
	var statements []ast.Statement
	for {
		if !p.has(0) {
			return nil, p.errorf(diagnostics.ErrP001, "expected 'END'")
		}
		for _, terminator := range terminators {
			if p.peek(terminator) {
				return statements, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

func (p *Parser) parseStatement() (ast.Statement, *diagnostics.DiagnosticError) {
	switch {
	case p.peek("LET"):
		return p.parseDeclaration()
	case p.peek("IF"):
		return p.parseIf()
	case p.peek("FOR"):
		return p.parseFor()
	case p.peek("WHILE"):
		return p.parseWhile()
	case p.peek("RETURN"):
		return p.parseReturn()
	default:
		return p.parseExprOrAssign()
	}
}

// parseDeclaration parses: LET name [: Type] [= expr] ;
func (p *Parser) parseDeclaration() (ast.Statement, *diagnostics.DiagnosticError) {
	tok := p.get(0)
	p.match("LET")

	nameTok, err := p.expectIdentifier("variable name")
	if err != nil {
		return nil, err
	}
	decl := &ast.DeclarationStatement{Token: tok, Name: nameTok.Literal}

	if p.match(":") {
		typeTok, err := p.expectIdentifier("variable type")
		if err != nil {
			return nil, err
		}
		decl.TypeName = typeTok.Literal
	}
	if p.match("=") {
		decl.Value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectLiteral(";"); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseIf parses: IF expr DO statement* [ELSE statement*] END
func (p *Parser) parseIf() (ast.Statement, *diagnostics.DiagnosticError) {
	tok := p.get(0)
	p.match("IF")

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectLiteral("DO"); err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Token: tok, Condition: condition}
	stmt.ThenStatements, err = p.parseBlock("ELSE", "END")
	if err != nil {
		return nil, err
	}
	if p.match("ELSE") {
		stmt.ElseStatements, err = p.parseBlock("END")
		if err != nil {
			return nil, err
		}
	}
	p.match("END")
	return stmt, nil
}

// parseFor parses: FOR ( [exprOrAssign] ; [expr] ; [exprOrAssign] ) DO
// statement* END. The initializer and increment carry no semicolons of
// their own; the header's separators terminate them.
func (p *Parser) parseFor() (ast.Statement, *diagnostics.DiagnosticError) {
	tok := p.get(0)
	p.match("FOR")

	if err := p.expectLiteral("("); err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{Token: tok}
	var err *diagnostics.DiagnosticError

	if !p.peek(";") {
		stmt.Initialization, err = p.parseHeaderStatement()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectLiteral(";"); err != nil {
		return nil, err
	}
	if !p.peek(";") {
		stmt.Condition, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectLiteral(";"); err != nil {
		return nil, err
	}
	if !p.peek(")") {
		stmt.Increment, err = p.parseHeaderStatement()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectLiteral(")"); err != nil {
		return nil, err
	}

	if err := p.expectLiteral("DO"); err != nil {
		return nil, err
	}
	stmt.Statements, err = p.parseBlock("END")
	if err != nil {
		return nil, err
	}
	p.match("END")
	return stmt, nil
}

// parseHeaderStatement parses a for-header sub-statement in increment
// mode, where no trailing semicolon is required.
func (p *Parser) parseHeaderStatement() (ast.Statement, *diagnostics.DiagnosticError) {
	p.incrementMode = true
	defer func() { p.incrementMode = false }()
	return p.parseExprOrAssign()
}

// parseWhile parses: WHILE expr DO statement* END
func (p *Parser) parseWhile() (ast.Statement, *diagnostics.DiagnosticError) {
	tok := p.get(0)
	p.match("WHILE")

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectLiteral("DO"); err != nil {
		return nil, err
	}
	stmt := &ast.WhileStatement{Token: tok, Condition: condition}
	stmt.Statements, err = p.parseBlock("END")
	if err != nil {
		return nil, err
	}
	p.match("END")
	return stmt, nil
}

// parseReturn parses: RETURN expr ;
func (p *Parser) parseReturn() (ast.Statement, *diagnostics.DiagnosticError) {
	tok := p.get(0)
	p.match("RETURN")

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectLiteral(";"); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Token: tok, Value: value}, nil
}

// parseExprOrAssign parses: expr [= expr] ; with the trailing semicolon
// suppressed in increment mode.
func (p *Parser) parseExprOrAssign() (ast.Statement, *diagnostics.DiagnosticError) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	var stmt ast.Statement
	if p.peek("=") {
		eqTok := p.get(0)
		p.match("=")
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt = &ast.AssignmentStatement{Token: eqTok, Receiver: expr, Value: value}
	} else {
		stmt = &ast.ExpressionStatement{Token: expr.GetToken(), Expression: expr}
	}

	if !p.incrementMode {
		if err := p.expectLiteral(";"); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}
