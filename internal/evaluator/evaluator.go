package evaluator

import (
	"io"
	"os"

	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/config"
	"github.com/plclang/plc/internal/diagnostics"
)

type Evaluator struct {
	// Out is the process-wide output sink print writes to.
	Out io.Writer

	env *Environment
}

func New(out io.Writer) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	e := &Evaluator{Out: out, env: NewEnvironment()}
	registerBuiltins(e.env)
	return e
}

// Env exposes the global environment, mainly for tests and host embedding.
func (e *Evaluator) Env() *Environment { return e.env }

// Run executes a program: defines every field, registers every method,
// then invokes main/0 and returns its result.
func (e *Evaluator) Run(source *ast.Source) (Object, *diagnostics.DiagnosticError) {
	for _, field := range source.Fields {
		if result := e.evalField(field); isError(result) {
			return nil, result.(*Error).Err
		}
	}
	for _, method := range source.Methods {
		e.evalMethod(method)
	}

	fn, ok := e.env.GetFunction(config.MainFuncName, 0)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrR003, diagnostics.NoOffset,
			"main function with 0 arguments not found")
	}
	result := e.applyFunction(fn, nil)
	if isError(result) {
		return nil, result.(*Error).Err
	}
	return result, nil
}

func (e *Evaluator) evalField(field *ast.Field) Object {
	value := Object(NIL)
	if field.Value != nil {
		value = e.evalExpression(field.Value)
		if isError(value) {
			return value
		}
	}
	e.env.Define(field.Name, value, field.Constant)
	return NIL
}

// evalMethod registers a closure over the defining environment.
func (e *Evaluator) evalMethod(method *ast.Method) {
	fn := &Function{
		Name:       method.Name,
		Parameters: method.Parameters,
		Body:       method.Statements,
		Env:        e.env,
	}
	e.env.DefineFunction(method.Name, len(method.Parameters), fn)
}

// applyFunction invokes a user method or builtin. A ReturnValue produced
// inside the body is unwrapped here, at the method frame.
func (e *Evaluator) applyFunction(fn Object, args []Object) Object {
	switch fn := fn.(type) {
	case *Function:
		previous := e.env
		e.env = NewEnclosedEnvironment(fn.Env)
		defer func() { e.env = previous }()

		for i, name := range fn.Parameters {
			e.env.Define(name, args[i], false)
		}
		result := e.evalStatements(fn.Body)
		if isError(result) {
			return result
		}
		if rv, ok := result.(*ReturnValue); ok {
			return rv.Value
		}
		return NIL

	case *Builtin:
		return fn.Fn(e, args...)

	default:
		return newError(diagnostics.ErrR001, "not a function: %s", fn.Type())
	}
}

// evalStatements runs a statement list, stopping at the first error or
// return signal.
func (e *Evaluator) evalStatements(statements []ast.Statement) Object {
	for _, statement := range statements {
		result := e.evalStatement(statement)
		if result != nil && (result.Type() == ERROR_OBJ || result.Type() == RETURN_VALUE_OBJ) {
			return result
		}
	}
	return NIL
}

// evalBlock runs statements in a fresh child scope, popped on every exit
// path.
func (e *Evaluator) evalBlock(statements []ast.Statement) Object {
	previous := e.env
	e.env = NewEnclosedEnvironment(previous)
	defer func() { e.env = previous }()
	return e.evalStatements(statements)
}

func (e *Evaluator) evalStatement(statement ast.Statement) Object {
	switch stmt := statement.(type) {
	case *ast.ExpressionStatement:
		result := e.evalExpression(stmt.Expression)
		if isError(result) {
			return result
		}
		return NIL

	case *ast.DeclarationStatement:
		value := Object(NIL)
		if stmt.Value != nil {
			value = e.evalExpression(stmt.Value)
			if isError(value) {
				return value
			}
		}
		e.env.Define(stmt.Name, value, false)
		return NIL

	case *ast.AssignmentStatement:
		return e.evalAssignment(stmt)
	case *ast.IfStatement:
		return e.evalIf(stmt)
	case *ast.ForStatement:
		return e.evalFor(stmt)
	case *ast.WhileStatement:
		return e.evalWhile(stmt)

	case *ast.ReturnStatement:
		value := e.evalExpression(stmt.Value)
		if isError(value) {
			return value
		}
		return &ReturnValue{Value: value}

	default:
		return newError(diagnostics.ErrR001, "unsupported statement")
	}
}

func (e *Evaluator) evalAssignment(stmt *ast.AssignmentStatement) Object {
	access, ok := stmt.Receiver.(*ast.AccessExpression)
	if !ok {
		return newError(diagnostics.ErrR001, "invalid assignment target: must be a variable or field")
	}

	if access.Receiver != nil {
		receiver := e.evalExpression(access.Receiver)
		if isError(receiver) {
			return receiver
		}
		instance, ok := receiver.(*Instance)
		if !ok {
			return newError(diagnostics.ErrR001, "cannot assign to field of %s", receiver.Type())
		}
		value := e.evalExpression(stmt.Value)
		if isError(value) {
			return value
		}
		if err := instance.SetField(access.Name, value); err != nil {
			return newError(diagnostics.ErrR004, "%s", err.Error())
		}
		return NIL
	}

	value := e.evalExpression(stmt.Value)
	if isError(value) {
		return value
	}
	if err := e.env.Assign(access.Name, value); err != nil {
		return newError(diagnostics.ErrR004, "%s", err.Error())
	}
	return NIL
}

func (e *Evaluator) requireBoolean(obj Object) (bool, *Error) {
	b, ok := obj.(*Boolean)
	if !ok {
		return false, newError(diagnostics.ErrR001, "expected type Boolean, received %s", obj.Type())
	}
	return b.Value, nil
}

func (e *Evaluator) evalIf(stmt *ast.IfStatement) Object {
	condition := e.evalExpression(stmt.Condition)
	if isError(condition) {
		return condition
	}
	value, err := e.requireBoolean(condition)
	if err != nil {
		return err
	}
	if value {
		return e.evalBlock(stmt.ThenStatements)
	}
	return e.evalBlock(stmt.ElseStatements)
}

func (e *Evaluator) evalWhile(stmt *ast.WhileStatement) Object {
	for {
		condition := e.evalExpression(stmt.Condition)
		if isError(condition) {
			return condition
		}
		value, err := e.requireBoolean(condition)
		if err != nil {
			return err
		}
		if !value {
			return NIL
		}
		result := e.evalBlock(stmt.Statements)
		if result.Type() == ERROR_OBJ || result.Type() == RETURN_VALUE_OBJ {
			return result
		}
	}
}

// evalFor runs the initializer once in the surrounding scope, then each
// iteration pushes a fresh child scope for the body and increment. A loop
// without a condition never enters its body.
func (e *Evaluator) evalFor(stmt *ast.ForStatement) Object {
	if stmt.Initialization != nil {
		result := e.evalStatement(stmt.Initialization)
		if isError(result) {
			return result
		}
	}
	for stmt.Condition != nil {
		condition := e.evalExpression(stmt.Condition)
		if isError(condition) {
			return condition
		}
		value, err := e.requireBoolean(condition)
		if err != nil {
			return err
		}
		if !value {
			break
		}
		result := e.evalIteration(stmt)
		if result.Type() == ERROR_OBJ || result.Type() == RETURN_VALUE_OBJ {
			return result
		}
	}
	return NIL
}

func (e *Evaluator) evalIteration(stmt *ast.ForStatement) Object {
	previous := e.env
	e.env = NewEnclosedEnvironment(previous)
	defer func() { e.env = previous }()

	result := e.evalStatements(stmt.Statements)
	if result.Type() == ERROR_OBJ || result.Type() == RETURN_VALUE_OBJ {
		return result
	}
	if stmt.Increment != nil {
		return e.evalStatement(stmt.Increment)
	}
	return NIL
}
