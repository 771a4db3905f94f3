// Package analyzer performs semantic validation over the parsed AST: it
// resolves every name to a variable or function, attaches a type to every
// expression, and enforces the language's type rules. The AST itself is
// never restructured or mutated; resolution results live in maps keyed by
// node identity.
package analyzer

import (
	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/config"
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/typesystem"
)

type Analyzer struct {
	scope  *typesystem.Scope
	method *ast.Method // enclosing method while visiting its body, else nil

	// TypeMap holds the resolved type of every visited expression.
	TypeMap map[ast.Expression]*typesystem.Type
	// VariableMap resolves fields, declarations, and access expressions.
	VariableMap map[ast.Node]*typesystem.Variable
	// FunctionMap resolves methods and call expressions.
	FunctionMap map[ast.Node]*typesystem.Function
}

// NewRootScope builds the scope holding the built-in functions every
// program sees, with their target-language names bound.
func NewRootScope() *typesystem.Scope {
	root := typesystem.NewScope(nil)
	root.DefineFunction(config.PrintFuncName, config.PrintTargetName,
		[]*typesystem.Type{typesystem.Any}, typesystem.Nil)
	root.DefineFunction(config.RangeFuncName, config.RangeTargetName,
		[]*typesystem.Type{typesystem.Integer, typesystem.Integer}, typesystem.IntegerIterable)
	return root
}

func New(parent *typesystem.Scope) *Analyzer {
	if parent == nil {
		parent = NewRootScope()
	}
	return &Analyzer{
		scope:       typesystem.NewScope(parent),
		TypeMap:     make(map[ast.Expression]*typesystem.Type),
		VariableMap: make(map[ast.Node]*typesystem.Variable),
		FunctionMap: make(map[ast.Node]*typesystem.Function),
	}
}

// Scope exposes the analyzer's current scope, mainly for tests that
// predefine variables or object types.
func (a *Analyzer) Scope() *typesystem.Scope { return a.scope }

// Analyze visits the whole program. After every method is visited, a
// method named main with arity 0 and declared return type Integer must
// exist.
func (a *Analyzer) Analyze(source *ast.Source) *diagnostics.DiagnosticError {
	for _, field := range source.Fields {
		if err := a.visitField(field); err != nil {
			return err
		}
	}

	hasMain := false
	for _, method := range source.Methods {
		if err := a.visitMethod(method); err != nil {
			return err
		}
		if method.Name == config.MainFuncName && len(method.Parameters) == 0 &&
			method.ReturnTypeName == config.IntegerTypeName {
			hasMain = true
		}
	}
	if !hasMain {
		return a.errorf(diagnostics.ErrA006, "a main/0 method with an Integer return type is required")
	}
	return nil
}

func (a *Analyzer) errorf(code diagnostics.ErrorCode, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(code, diagnostics.NoOffset, format, args...)
}

func (a *Analyzer) resolveType(name string) (*typesystem.Type, *diagnostics.DiagnosticError) {
	t, err := typesystem.Lookup(name)
	if err != nil {
		return nil, a.errorf(diagnostics.ErrA001, "unknown type: %s", name)
	}
	return t, nil
}

// requireAssignable enforces the widening relation: identity, Any, or
// Comparable accepting an orderable primitive.
func (a *Analyzer) requireAssignable(target, source *typesystem.Type) *diagnostics.DiagnosticError {
	if !typesystem.Assignable(target, source) {
		return a.errorf(diagnostics.ErrA004, "type %s is not assignable to %s", source.Name, target.Name)
	}
	return nil
}

func (a *Analyzer) visitField(field *ast.Field) *diagnostics.DiagnosticError {
	var fieldType *typesystem.Type
	if field.TypeName != "" {
		var err *diagnostics.DiagnosticError
		fieldType, err = a.resolveType(field.TypeName)
		if err != nil {
			return err
		}
	}

	if field.Value != nil {
		valueType, err := a.visitExpression(field.Value)
		if err != nil {
			return err
		}
		if fieldType != nil {
			if err := a.requireAssignable(fieldType, valueType); err != nil {
				return err
			}
		} else {
			fieldType = valueType
		}
	} else {
		if field.Constant {
			return a.errorf(diagnostics.ErrA005, "constant field %s must have an initial value", field.Name)
		}
		if fieldType == nil {
			return a.errorf(diagnostics.ErrA005, "field %s must have a type or an initial value", field.Name)
		}
	}

	variable, defErr := a.scope.DefineVariable(field.Name, field.Name, fieldType, field.Constant)
	if defErr != nil {
		return a.errorf(diagnostics.ErrA002, "%s", defErr.Error())
	}
	a.VariableMap[field] = variable
	return nil
}

func (a *Analyzer) visitMethod(method *ast.Method) *diagnostics.DiagnosticError {
	returnType := typesystem.Nil
	if method.ReturnTypeName != "" {
		var err *diagnostics.DiagnosticError
		returnType, err = a.resolveType(method.ReturnTypeName)
		if err != nil {
			return err
		}
	}

	parameterTypes := make([]*typesystem.Type, len(method.ParameterTypeNames))
	for i, typeName := range method.ParameterTypeNames {
		t, err := a.resolveType(typeName)
		if err != nil {
			return err
		}
		parameterTypes[i] = t
	}

	function, defErr := a.scope.DefineFunction(method.Name, method.Name, parameterTypes, returnType)
	if defErr != nil {
		return a.errorf(diagnostics.ErrA003, "%s", defErr.Error())
	}
	a.FunctionMap[method] = function

	methodScope := typesystem.NewScope(a.scope)
	for i, name := range method.Parameters {
		if _, err := methodScope.DefineVariable(name, name, parameterTypes[i], false); err != nil {
			return a.errorf(diagnostics.ErrA002, "%s", err.Error())
		}
	}

	previousScope := a.scope
	a.scope = methodScope
	a.method = method
	defer func() {
		a.scope = previousScope
		a.method = nil
	}()

	for _, statement := range method.Statements {
		if err := a.visitStatement(statement); err != nil {
			return err
		}
	}
	return nil
}
