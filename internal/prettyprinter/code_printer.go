// Package prettyprinter renders an AST back as canonical source text.
// The output re-lexes and re-parses to an equivalent tree.
package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/plclang/plc/internal/ast"
)

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) write(parts ...string) {
	for _, part := range parts {
		p.buf.WriteString(part)
	}
}

func (p *CodePrinter) writeIndent() {
	p.buf.WriteString(strings.Repeat("    ", p.indent))
}

// Print renders a whole program: fields first, then methods, separated by
// blank lines.
func (p *CodePrinter) Print(source *ast.Source) string {
	p.buf.Reset()
	for _, field := range source.Fields {
		p.printField(field)
		p.write("\n")
	}
	for i, method := range source.Methods {
		if i > 0 || len(source.Fields) > 0 {
			p.write("\n")
		}
		p.printMethod(method)
	}
	return p.buf.String()
}

func (p *CodePrinter) printField(field *ast.Field) {
	p.write("LET ")
	if field.Constant {
		p.write("CONST ")
	}
	p.write(field.Name)
	if field.TypeName != "" {
		p.write(" : ", field.TypeName)
	}
	if field.Value != nil {
		p.write(" = ")
		p.printExpression(field.Value)
	}
	p.write(";")
}

func (p *CodePrinter) printMethod(method *ast.Method) {
	p.write("DEF ", method.Name, "(")
	for i, name := range method.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write(name, ": ", method.ParameterTypeNames[i])
	}
	p.write(")")
	if method.ReturnTypeName != "" {
		p.write(": ", method.ReturnTypeName)
	}
	p.write(" DO\n")
	p.indent++
	p.printStatements(method.Statements)
	p.indent--
	p.write("END\n")
}

func (p *CodePrinter) printStatements(statements []ast.Statement) {
	for _, statement := range statements {
		p.writeIndent()
		p.printStatement(statement)
		p.write("\n")
	}
}

func (p *CodePrinter) printStatement(statement ast.Statement) {
	switch stmt := statement.(type) {
	case *ast.ExpressionStatement:
		p.printExpression(stmt.Expression)
		p.write(";")

	case *ast.DeclarationStatement:
		p.write("LET ", stmt.Name)
		if stmt.TypeName != "" {
			p.write(" : ", stmt.TypeName)
		}
		if stmt.Value != nil {
			p.write(" = ")
			p.printExpression(stmt.Value)
		}
		p.write(";")

	case *ast.AssignmentStatement:
		p.printExpression(stmt.Receiver)
		p.write(" = ")
		p.printExpression(stmt.Value)
		p.write(";")

	case *ast.IfStatement:
		p.write("IF ")
		p.printExpression(stmt.Condition)
		p.write(" DO\n")
		p.indent++
		p.printStatements(stmt.ThenStatements)
		p.indent--
		if len(stmt.ElseStatements) > 0 {
			p.writeIndent()
			p.write("ELSE\n")
			p.indent++
			p.printStatements(stmt.ElseStatements)
			p.indent--
		}
		p.writeIndent()
		p.write("END")

	case *ast.ForStatement:
		p.write("FOR (")
		if stmt.Initialization != nil {
			p.printHeaderStatement(stmt.Initialization)
		}
		p.write("; ")
		if stmt.Condition != nil {
			p.printExpression(stmt.Condition)
		}
		p.write("; ")
		if stmt.Increment != nil {
			p.printHeaderStatement(stmt.Increment)
		}
		p.write(") DO\n")
		p.indent++
		p.printStatements(stmt.Statements)
		p.indent--
		p.writeIndent()
		p.write("END")

	case *ast.WhileStatement:
		p.write("WHILE ")
		p.printExpression(stmt.Condition)
		p.write(" DO\n")
		p.indent++
		p.printStatements(stmt.Statements)
		p.indent--
		p.writeIndent()
		p.write("END")

	case *ast.ReturnStatement:
		p.write("RETURN ")
		p.printExpression(stmt.Value)
		p.write(";")
	}
}

// printHeaderStatement prints a for-header sub-statement without its
// trailing semicolon.
func (p *CodePrinter) printHeaderStatement(statement ast.Statement) {
	switch stmt := statement.(type) {
	case *ast.ExpressionStatement:
		p.printExpression(stmt.Expression)
	case *ast.AssignmentStatement:
		p.printExpression(stmt.Receiver)
		p.write(" = ")
		p.printExpression(stmt.Value)
	}
}

func (p *CodePrinter) printExpression(expression ast.Expression) {
	switch expr := expression.(type) {
	case *ast.NilLiteral:
		p.write("NIL")
	case *ast.BooleanLiteral:
		if expr.Value {
			p.write("TRUE")
		} else {
			p.write("FALSE")
		}
	case *ast.CharacterLiteral:
		p.write("'", escapeChar(expr.Value), "'")
	case *ast.StringLiteral:
		p.write(`"`, escapeString(expr.Value), `"`)
	case *ast.IntegerLiteral:
		p.write(expr.Value.String())
	case *ast.DecimalLiteral:
		p.write(ast.FormatDecimal(expr.Value))

	case *ast.GroupExpression:
		p.write("(")
		p.printExpression(expr.Expression)
		p.write(")")

	case *ast.BinaryExpression:
		p.printExpression(expr.Left)
		p.write(" ", expr.Operator, " ")
		p.printExpression(expr.Right)

	case *ast.AccessExpression:
		if expr.Receiver != nil {
			p.printExpression(expr.Receiver)
			p.write(".")
		}
		p.write(expr.Name)

	case *ast.CallExpression:
		if expr.Receiver != nil {
			p.printExpression(expr.Receiver)
			p.write(".")
		}
		p.write(expr.Name, "(")
		for i, argument := range expr.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(argument)
		}
		p.write(")")
	}
}

var charEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\b", `\b`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"'", `\'`,
)

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\b", `\b`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	`"`, `\"`,
)

func escapeChar(r rune) string {
	return charEscaper.Replace(string(r))
}

func escapeString(s string) string {
	return stringEscaper.Replace(s)
}
