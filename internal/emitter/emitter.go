// Package emitter prints an analyzed AST as equivalent Java source. Access
// and call expressions are emitted with the target names resolved during
// analysis, so print becomes the library call bound during scope setup.
package emitter

import (
	"strings"

	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/config"
	"github.com/plclang/plc/internal/typesystem"
)

type Emitter struct {
	writer    Writer
	className string
	indent    int

	// generatingIncrement suppresses the trailing semicolon of the for
	// header's sub-statements; the header supplies its own separators.
	generatingIncrement bool

	variableMap map[ast.Node]*typesystem.Variable
	functionMap map[ast.Node]*typesystem.Function
}

func New(writer Writer, variableMap map[ast.Node]*typesystem.Variable, functionMap map[ast.Node]*typesystem.Function) *Emitter {
	return &Emitter{
		writer:      writer,
		className:   config.TargetClassName,
		variableMap: variableMap,
		functionMap: functionMap,
	}
}

// SetClassName overrides the name of the emitted wrapper class.
func (e *Emitter) SetClassName(name string) {
	if name != "" {
		e.className = name
	}
}

func (e *Emitter) write(parts ...string) {
	for _, part := range parts {
		e.writer.Write(part)
	}
}

func (e *Emitter) newline() {
	e.writer.Println()
	e.writer.Write(strings.Repeat(" ", e.indent))
}

// Emit prints the class wrapper: fields, the conventional entry point that
// invokes main and exits with its result, then each method.
func (e *Emitter) Emit(source *ast.Source) {
	e.write("public class ", e.className, " {")
	e.indent += config.IndentWidth

	if len(source.Fields) > 0 {
		e.writer.Println()
		for _, field := range source.Fields {
			e.newline()
			e.emitField(field)
		}
	}

	e.writer.Println()
	e.newline()
	e.write("public static void main(String[] args) {")
	e.indent += config.IndentWidth
	e.newline()
	e.write("System.exit(new ", e.className, "().main());")
	e.indent -= config.IndentWidth
	e.newline()
	e.write("}")

	for _, method := range source.Methods {
		e.writer.Println()
		e.newline()
		e.emitMethod(method)
	}

	e.indent -= config.IndentWidth
	e.writer.Println()
	e.write("}")
	e.writer.Println()
}

func (e *Emitter) typeName(t *typesystem.Type) string {
	return t.TargetName
}

func (e *Emitter) emitField(field *ast.Field) {
	if field.Constant {
		e.write("final ")
	}
	variable := e.variableMap[field]
	e.write(e.typeName(variable.Type), " ", variable.TargetName)
	if field.Value != nil {
		e.write(" = ")
		e.emitExpression(field.Value)
	}
	e.write(";")
}

func (e *Emitter) emitMethod(method *ast.Method) {
	function := e.functionMap[method]
	e.write(e.typeName(function.ReturnType), " ", function.TargetName, "(")
	for i, name := range method.Parameters {
		if i > 0 {
			e.write(", ")
		}
		e.write(e.typeName(function.ParameterTypes[i]), " ", name)
	}
	e.write(") {")
	e.emitBody(method.Statements)
}

// emitBody prints a braced statement list; an empty body closes on the
// same line.
func (e *Emitter) emitBody(statements []ast.Statement) {
	if len(statements) == 0 {
		e.write("}")
		return
	}
	for _, statement := range statements {
		e.indent += config.IndentWidth
		e.newline()
		e.emitStatement(statement)
		e.indent -= config.IndentWidth
	}
	e.newline()
	e.write("}")
}

func (e *Emitter) emitStatement(statement ast.Statement) {
	switch stmt := statement.(type) {
	case *ast.ExpressionStatement:
		e.emitExpression(stmt.Expression)
		if !e.generatingIncrement {
			e.write(";")
		}

	case *ast.DeclarationStatement:
		variable := e.variableMap[stmt]
		e.write(e.typeName(variable.Type), " ", variable.TargetName)
		if stmt.Value != nil {
			e.write(" = ")
			e.emitExpression(stmt.Value)
		}
		e.write(";")

	case *ast.AssignmentStatement:
		e.emitExpression(stmt.Receiver)
		e.write(" = ")
		e.emitExpression(stmt.Value)
		if !e.generatingIncrement {
			e.write(";")
		}

	case *ast.IfStatement:
		e.write("if (")
		e.emitExpression(stmt.Condition)
		e.write(") {")
		if len(stmt.ElseStatements) == 0 {
			e.emitBody(stmt.ThenStatements)
			return
		}
		e.emitThen(stmt.ThenStatements)
		e.write("} else {")
		e.emitBody(stmt.ElseStatements)

	case *ast.ForStatement:
		e.emitFor(stmt)

	case *ast.WhileStatement:
		e.write("while (")
		e.emitExpression(stmt.Condition)
		e.write(") {")
		e.emitBody(stmt.Statements)

	case *ast.ReturnStatement:
		e.write("return ")
		e.emitExpression(stmt.Value)
		e.write(";")
	}
}

// emitThen prints the then branch without closing the brace, so the else
// keyword lands on the closing line.
func (e *Emitter) emitThen(statements []ast.Statement) {
	for _, statement := range statements {
		e.indent += config.IndentWidth
		e.newline()
		e.emitStatement(statement)
		e.indent -= config.IndentWidth
	}
	e.newline()
}

// emitFor prints the header with its own separators; the sub-statements
// are generated in increment mode so they emit no semicolons themselves.
func (e *Emitter) emitFor(stmt *ast.ForStatement) {
	e.write("for (")
	e.generatingIncrement = true
	if stmt.Initialization != nil {
		e.emitStatement(stmt.Initialization)
	}
	e.write("; ")
	if stmt.Condition != nil {
		e.emitExpression(stmt.Condition)
	}
	e.write("; ")
	if stmt.Increment != nil {
		e.emitStatement(stmt.Increment)
	}
	e.generatingIncrement = false
	e.write(") {")
	e.emitBody(stmt.Statements)
}

func (e *Emitter) emitExpression(expression ast.Expression) {
	switch expr := expression.(type) {
	case *ast.NilLiteral:
		e.write("null")
	case *ast.BooleanLiteral:
		if expr.Value {
			e.write("true")
		} else {
			e.write("false")
		}
	case *ast.CharacterLiteral:
		e.write("'", escapeChar(expr.Value), "'")
	case *ast.StringLiteral:
		e.write(`"`, escapeString(expr.Value), `"`)
	case *ast.IntegerLiteral:
		e.write(expr.Value.String())
	case *ast.DecimalLiteral:
		e.write(ast.FormatDecimal(expr.Value))

	case *ast.GroupExpression:
		e.write("(")
		e.emitExpression(expr.Expression)
		e.write(")")

	case *ast.BinaryExpression:
		e.emitExpression(expr.Left)
		e.write(" ", expr.Operator, " ")
		e.emitExpression(expr.Right)

	case *ast.AccessExpression:
		if expr.Receiver != nil {
			e.emitExpression(expr.Receiver)
			e.write(".")
		}
		e.write(e.targetVariableName(expr))

	case *ast.CallExpression:
		if expr.Receiver != nil {
			e.emitExpression(expr.Receiver)
			e.write(".")
		}
		e.write(e.targetFunctionName(expr), "(")
		for i, argument := range expr.Arguments {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpression(argument)
		}
		e.write(")")
	}
}

func (e *Emitter) targetVariableName(expr *ast.AccessExpression) string {
	if variable, ok := e.variableMap[expr]; ok {
		return variable.TargetName
	}
	return expr.Name
}

func (e *Emitter) targetFunctionName(expr *ast.CallExpression) string {
	if function, ok := e.functionMap[expr]; ok {
		return function.TargetName
	}
	return expr.Name
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
