package analyzer

import (
	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/typesystem"
)

func (a *Analyzer) visitStatement(statement ast.Statement) *diagnostics.DiagnosticError {
	switch stmt := statement.(type) {
	case *ast.ExpressionStatement:
		return a.visitExpressionStatement(stmt)
	case *ast.DeclarationStatement:
		return a.visitDeclaration(stmt)
	case *ast.AssignmentStatement:
		return a.visitAssignment(stmt)
	case *ast.IfStatement:
		return a.visitIf(stmt)
	case *ast.ForStatement:
		return a.visitFor(stmt)
	case *ast.WhileStatement:
		return a.visitWhile(stmt)
	case *ast.ReturnStatement:
		return a.visitReturn(stmt)
	default:
		return a.errorf(diagnostics.ErrA005, "unsupported statement")
	}
}

// visitExpressionStatement admits only function calls in statement
// position.
func (a *Analyzer) visitExpressionStatement(stmt *ast.ExpressionStatement) *diagnostics.DiagnosticError {
	if _, err := a.visitExpression(stmt.Expression); err != nil {
		return err
	}
	if _, ok := stmt.Expression.(*ast.CallExpression); !ok {
		return a.errorf(diagnostics.ErrA005, "expression statement must be a function call")
	}
	return nil
}

func (a *Analyzer) visitDeclaration(stmt *ast.DeclarationStatement) *diagnostics.DiagnosticError {
	var declaredType *typesystem.Type

	if stmt.TypeName != "" {
		var err *diagnostics.DiagnosticError
		declaredType, err = a.resolveType(stmt.TypeName)
		if err != nil {
			return err
		}
	}

	if stmt.Value != nil {
		valueType, err := a.visitExpression(stmt.Value)
		if err != nil {
			return err
		}
		if declaredType != nil {
			if err := a.requireAssignable(declaredType, valueType); err != nil {
				return err
			}
		} else {
			declaredType = valueType
		}
	} else if declaredType == nil {
		return a.errorf(diagnostics.ErrA005, "declaration of %s must have a type or an initial value", stmt.Name)
	}

	variable, defErr := a.scope.DefineVariable(stmt.Name, stmt.Name, declaredType, false)
	if defErr != nil {
		return a.errorf(diagnostics.ErrA002, "%s", defErr.Error())
	}
	a.VariableMap[stmt] = variable
	return nil
}

func (a *Analyzer) visitAssignment(stmt *ast.AssignmentStatement) *diagnostics.DiagnosticError {
	access, ok := stmt.Receiver.(*ast.AccessExpression)
	if !ok {
		return a.errorf(diagnostics.ErrA005, "assignment receiver must be an access expression")
	}

	receiverType, err := a.visitExpression(stmt.Receiver)
	if err != nil {
		return err
	}
	valueType, err := a.visitExpression(stmt.Value)
	if err != nil {
		return err
	}
	if err := a.requireAssignable(receiverType, valueType); err != nil {
		return err
	}

	if variable, ok := a.VariableMap[access]; ok && variable.Constant {
		return a.errorf(diagnostics.ErrA008, "cannot assign to constant %s", access.Name)
	}
	return nil
}

// visitBody runs the statements of a block in a fresh child scope. Then
// and else branches are sibling scopes of the same parent.
func (a *Analyzer) visitBody(statements []ast.Statement) *diagnostics.DiagnosticError {
	previousScope := a.scope
	a.scope = typesystem.NewScope(previousScope)
	defer func() { a.scope = previousScope }()

	for _, statement := range statements {
		if err := a.visitStatement(statement); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) requireBooleanCondition(condition ast.Expression) *diagnostics.DiagnosticError {
	conditionType, err := a.visitExpression(condition)
	if err != nil {
		return err
	}
	if conditionType != typesystem.Boolean {
		return a.errorf(diagnostics.ErrA004, "condition must be of type Boolean, got %s", conditionType.Name)
	}
	return nil
}

func (a *Analyzer) visitIf(stmt *ast.IfStatement) *diagnostics.DiagnosticError {
	if err := a.requireBooleanCondition(stmt.Condition); err != nil {
		return err
	}
	if len(stmt.ThenStatements) == 0 {
		return a.errorf(diagnostics.ErrA005, "then block must not be empty")
	}
	if err := a.visitBody(stmt.ThenStatements); err != nil {
		return err
	}
	if len(stmt.ElseStatements) > 0 {
		return a.visitBody(stmt.ElseStatements)
	}
	return nil
}

// visitFor visits the header sub-statements in the surrounding scope, in
// evaluation order, then the body in a fresh scope.
func (a *Analyzer) visitFor(stmt *ast.ForStatement) *diagnostics.DiagnosticError {
	if stmt.Initialization != nil {
		if err := a.visitStatement(stmt.Initialization); err != nil {
			return err
		}
	}
	if stmt.Condition != nil {
		if err := a.requireBooleanCondition(stmt.Condition); err != nil {
			return err
		}
	}
	if stmt.Increment != nil {
		if err := a.visitStatement(stmt.Increment); err != nil {
			return err
		}
	}
	if len(stmt.Statements) == 0 {
		return a.errorf(diagnostics.ErrA005, "for loop body must not be empty")
	}
	return a.visitBody(stmt.Statements)
}

func (a *Analyzer) visitWhile(stmt *ast.WhileStatement) *diagnostics.DiagnosticError {
	if err := a.requireBooleanCondition(stmt.Condition); err != nil {
		return err
	}
	if len(stmt.Statements) == 0 {
		return a.errorf(diagnostics.ErrA005, "while loop body must not be empty")
	}
	return a.visitBody(stmt.Statements)
}

func (a *Analyzer) visitReturn(stmt *ast.ReturnStatement) *diagnostics.DiagnosticError {
	if a.method == nil {
		return a.errorf(diagnostics.ErrA005, "return statement must be inside a method")
	}

	valueType, err := a.visitExpression(stmt.Value)
	if err != nil {
		return err
	}

	expected := typesystem.Nil
	if a.method.ReturnTypeName != "" {
		expected, err = a.resolveType(a.method.ReturnTypeName)
		if err != nil {
			return err
		}
	}
	return a.requireAssignable(expected, valueType)
}
