package analyzer

import (
	"math"
	"math/big"

	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/typesystem"
)

var (
	minInt32 = big.NewInt(math.MinInt32)
	maxInt32 = big.NewInt(math.MaxInt32)
)

// visitExpression types an expression, recording the result in TypeMap.
func (a *Analyzer) visitExpression(expression ast.Expression) (*typesystem.Type, *diagnostics.DiagnosticError) {
	t, err := a.typeOf(expression)
	if err != nil {
		return nil, err
	}
	a.TypeMap[expression] = t
	return t, nil
}

func (a *Analyzer) typeOf(expression ast.Expression) (*typesystem.Type, *diagnostics.DiagnosticError) {
	switch expr := expression.(type) {
	case *ast.NilLiteral:
		return typesystem.Nil, nil
	case *ast.BooleanLiteral:
		return typesystem.Boolean, nil
	case *ast.CharacterLiteral:
		return typesystem.Character, nil
	case *ast.StringLiteral:
		return typesystem.String, nil

	case *ast.IntegerLiteral:
		if expr.Value.Cmp(minInt32) < 0 || expr.Value.Cmp(maxInt32) > 0 {
			return nil, a.errorf(diagnostics.ErrA007, "integer literal %s is out of range", expr.Value)
		}
		return typesystem.Integer, nil

	case *ast.DecimalLiteral:
		if f, _ := expr.Value.Float64(); math.IsInf(f, 0) {
			return nil, a.errorf(diagnostics.ErrA007, "decimal literal %s is out of range", expr.Value)
		}
		return typesystem.Decimal, nil

	case *ast.GroupExpression:
		childType, err := a.visitExpression(expr.Expression)
		if err != nil {
			return nil, err
		}
		if _, ok := expr.Expression.(*ast.BinaryExpression); !ok {
			return nil, a.errorf(diagnostics.ErrA009, "group expression must contain a binary expression")
		}
		return childType, nil

	case *ast.BinaryExpression:
		return a.typeOfBinary(expr)
	case *ast.AccessExpression:
		return a.typeOfAccess(expr)
	case *ast.CallExpression:
		return a.typeOfCall(expr)

	default:
		return nil, a.errorf(diagnostics.ErrA009, "unsupported expression")
	}
}

func (a *Analyzer) typeOfBinary(expr *ast.BinaryExpression) (*typesystem.Type, *diagnostics.DiagnosticError) {
	leftType, err := a.visitExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	rightType, err := a.visitExpression(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case "&&", "||":
		if leftType != typesystem.Boolean || rightType != typesystem.Boolean {
			return nil, a.errorf(diagnostics.ErrA004, "operator %s requires Boolean operands", expr.Operator)
		}
		return typesystem.Boolean, nil

	case "<", "<=", ">", ">=", "==", "!=":
		if leftType != rightType || !typesystem.IsComparable(leftType) {
			return nil, a.errorf(diagnostics.ErrA004,
				"operator %s requires operands of the same Comparable type, got %s and %s",
				expr.Operator, leftType.Name, rightType.Name)
		}
		return typesystem.Boolean, nil

	case "+":
		if leftType == typesystem.String || rightType == typesystem.String {
			return typesystem.String, nil
		}
		fallthrough

	case "-", "*", "/":
		if leftType == typesystem.Integer && rightType == typesystem.Integer {
			return typesystem.Integer, nil
		}
		if leftType == typesystem.Decimal && rightType == typesystem.Decimal {
			return typesystem.Decimal, nil
		}
		return nil, a.errorf(diagnostics.ErrA004,
			"invalid operand types %s and %s for operator %s", leftType.Name, rightType.Name, expr.Operator)

	default:
		return nil, a.errorf(diagnostics.ErrA009, "unsupported operator: %s", expr.Operator)
	}
}

func (a *Analyzer) typeOfAccess(expr *ast.AccessExpression) (*typesystem.Type, *diagnostics.DiagnosticError) {
	if expr.Receiver != nil {
		receiverType, err := a.visitExpression(expr.Receiver)
		if err != nil {
			return nil, err
		}
		variable, ok := receiverType.Field(expr.Name)
		if !ok {
			return nil, a.errorf(diagnostics.ErrA002, "type %s has no field %s", receiverType.Name, expr.Name)
		}
		a.VariableMap[expr] = variable
		return variable.Type, nil
	}

	variable, ok := a.scope.LookupVariable(expr.Name)
	if !ok {
		return nil, a.errorf(diagnostics.ErrA002, "variable %s is not defined", expr.Name)
	}
	a.VariableMap[expr] = variable
	return variable.Type, nil
}

func (a *Analyzer) typeOfCall(expr *ast.CallExpression) (*typesystem.Type, *diagnostics.DiagnosticError) {
	var function *typesystem.Function

	if expr.Receiver != nil {
		receiverType, err := a.visitExpression(expr.Receiver)
		if err != nil {
			return nil, err
		}
		fn, ok := receiverType.Method(expr.Name, len(expr.Arguments))
		if !ok {
			return nil, a.errorf(diagnostics.ErrA003,
				"type %s has no method %s/%d", receiverType.Name, expr.Name, len(expr.Arguments))
		}
		function = fn
	} else {
		fn, ok := a.scope.LookupFunction(expr.Name, len(expr.Arguments))
		if !ok {
			return nil, a.errorf(diagnostics.ErrA003, "function %s/%d is not defined", expr.Name, len(expr.Arguments))
		}
		function = fn
	}
	a.FunctionMap[expr] = function

	for i, argument := range expr.Arguments {
		argumentType, err := a.visitExpression(argument)
		if err != nil {
			return nil, err
		}
		if err := a.requireAssignable(function.ParameterTypes[i], argumentType); err != nil {
			return nil, err
		}
	}
	return function.ReturnType, nil
}
