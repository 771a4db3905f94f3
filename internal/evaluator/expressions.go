package evaluator

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/diagnostics"
)

func (e *Evaluator) evalExpression(expression ast.Expression) Object {
	switch expr := expression.(type) {
	case *ast.NilLiteral:
		return NIL
	case *ast.BooleanLiteral:
		return nativeBool(expr.Value)
	case *ast.CharacterLiteral:
		return &Character{Value: expr.Value}
	case *ast.StringLiteral:
		return &String{Value: expr.Value}
	case *ast.IntegerLiteral:
		return &Integer{Value: expr.Value}
	case *ast.DecimalLiteral:
		return &Decimal{Value: expr.Value}

	case *ast.GroupExpression:
		return e.evalExpression(expr.Expression)
	case *ast.BinaryExpression:
		return e.evalBinary(expr)
	case *ast.AccessExpression:
		return e.evalAccess(expr)
	case *ast.CallExpression:
		return e.evalCall(expr)

	default:
		return newError(diagnostics.ErrR001, "unsupported expression")
	}
}

// evalBinary evaluates operands left to right, except where
// short-circuiting suppresses the right.
func (e *Evaluator) evalBinary(expr *ast.BinaryExpression) Object {
	switch expr.Operator {
	case "&&", "||":
		return e.evalLogical(expr)
	}

	left := e.evalExpression(expr.Left)
	if isError(left) {
		return left
	}
	right := e.evalExpression(expr.Right)
	if isError(right) {
		return right
	}

	switch expr.Operator {
	case "<", "<=", ">", ">=":
		return e.evalComparison(expr.Operator, left, right)
	case "==":
		return nativeBool(objectsEqual(left, right))
	case "!=":
		return nativeBool(!objectsEqual(left, right))
	case "+", "-", "*", "/":
		return e.evalArithmetic(expr.Operator, left, right)
	default:
		return newError(diagnostics.ErrR001, "unknown binary operator: %s", expr.Operator)
	}
}

// evalLogical short-circuits: && skips the right operand when the left is
// false, || when the left is true.
func (e *Evaluator) evalLogical(expr *ast.BinaryExpression) Object {
	left := e.evalExpression(expr.Left)
	if isError(left) {
		return left
	}
	leftValue, err := e.requireBoolean(left)
	if err != nil {
		return err
	}

	if expr.Operator == "&&" && !leftValue {
		return FALSE
	}
	if expr.Operator == "||" && leftValue {
		return TRUE
	}

	right := e.evalExpression(expr.Right)
	if isError(right) {
		return right
	}
	rightValue, rerr := e.requireBoolean(right)
	if rerr != nil {
		return rerr
	}
	return nativeBool(rightValue)
}

// objectsEqual is structural equality of the wrapped primitives. Decimals
// compare scale-sensitively, so 1.0 and 1.00 differ.
func objectsEqual(left, right Object) bool {
	if left.Type() != right.Type() {
		return false
	}
	switch l := left.(type) {
	case *Nil:
		return true
	case *Boolean:
		return l.Value == right.(*Boolean).Value
	case *Character:
		return l.Value == right.(*Character).Value
	case *String:
		return l.Value == right.(*String).Value
	case *Integer:
		return l.Value.Cmp(right.(*Integer).Value) == 0
	case *Decimal:
		r := right.(*Decimal)
		return l.Value.Equal(r.Value) && l.Value.Exponent() == r.Value.Exponent()
	default:
		return left == right
	}
}

// evalComparison requires both operands to share an orderable tag and
// compares by natural order.
func (e *Evaluator) evalComparison(operator string, left, right Object) Object {
	var cmp int
	switch l := left.(type) {
	case *Integer:
		r, ok := right.(*Integer)
		if !ok {
			return comparisonError(left, right)
		}
		cmp = l.Value.Cmp(r.Value)
	case *Decimal:
		r, ok := right.(*Decimal)
		if !ok {
			return comparisonError(left, right)
		}
		cmp = l.Value.Cmp(r.Value)
	case *Character:
		r, ok := right.(*Character)
		if !ok {
			return comparisonError(left, right)
		}
		cmp = compareRunes(l.Value, r.Value)
	case *String:
		r, ok := right.(*String)
		if !ok {
			return comparisonError(left, right)
		}
		cmp = compareStrings(l.Value, r.Value)
	default:
		return comparisonError(left, right)
	}

	switch operator {
	case "<":
		return nativeBool(cmp < 0)
	case "<=":
		return nativeBool(cmp <= 0)
	case ">":
		return nativeBool(cmp > 0)
	default:
		return nativeBool(cmp >= 0)
	}
}

func comparisonError(left, right Object) *Error {
	return newError(diagnostics.ErrR001, "cannot compare %s and %s", left.Type(), right.Type())
}

func compareRunes(a, b rune) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (e *Evaluator) evalArithmetic(operator string, left, right Object) Object {
	if operator == "+" && (left.Type() == STRING_OBJ || right.Type() == STRING_OBJ) {
		return &String{Value: left.Inspect() + right.Inspect()}
	}

	if l, ok := left.(*Integer); ok {
		r, ok := right.(*Integer)
		if !ok {
			return arithmeticError(operator, left, right)
		}
		return e.evalIntegerArithmetic(operator, l, r)
	}
	if l, ok := left.(*Decimal); ok {
		r, ok := right.(*Decimal)
		if !ok {
			return arithmeticError(operator, left, right)
		}
		return e.evalDecimalArithmetic(operator, l, r)
	}
	return arithmeticError(operator, left, right)
}

func arithmeticError(operator string, left, right Object) *Error {
	return newError(diagnostics.ErrR001, "invalid operands %s and %s for operator %s",
		left.Type(), right.Type(), operator)
}

func (e *Evaluator) evalIntegerArithmetic(operator string, left, right *Integer) Object {
	switch operator {
	case "+":
		return &Integer{Value: new(big.Int).Add(left.Value, right.Value)}
	case "-":
		return &Integer{Value: new(big.Int).Sub(left.Value, right.Value)}
	case "*":
		return &Integer{Value: new(big.Int).Mul(left.Value, right.Value)}
	default:
		if right.Value.Sign() == 0 {
			return newError(diagnostics.ErrR002, "division by zero")
		}
		// Quo truncates toward zero.
		return &Integer{Value: new(big.Int).Quo(left.Value, right.Value)}
	}
}

func (e *Evaluator) evalDecimalArithmetic(operator string, left, right *Decimal) Object {
	switch operator {
	case "+":
		return &Decimal{Value: left.Value.Add(right.Value)}
	case "-":
		return &Decimal{Value: left.Value.Sub(right.Value)}
	case "*":
		return &Decimal{Value: left.Value.Mul(right.Value)}
	default:
		if right.Value.Sign() == 0 {
			return newError(diagnostics.ErrR002, "division by zero")
		}
		return &Decimal{Value: divideHalfEven(left.Value, right.Value)}
	}
}

var bigOne = big.NewInt(1)

// divideHalfEven divides with banker's rounding at the scale of the left
// operand, matching scale-preserving decimal division.
func divideHalfEven(a, b decimal.Decimal) decimal.Decimal {
	scale := int32(0)
	if a.Exponent() < 0 {
		scale = -a.Exponent()
	}

	ca := new(big.Int).Set(a.Coefficient())
	cb := new(big.Int).Set(b.Coefficient())
	negative := (ca.Sign() < 0) != (cb.Sign() < 0)
	ca.Abs(ca)
	cb.Abs(cb)

	// quotient coefficient = ca * 10^(ea-eb+scale) / cb, rounded half to even
	shift := int64(a.Exponent()) - int64(b.Exponent()) + int64(scale)
	num, den := ca, cb
	if shift >= 0 {
		num = new(big.Int).Mul(ca, pow10(shift))
	} else {
		den = new(big.Int).Mul(cb, pow10(-shift))
	}

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	switch new(big.Int).Lsh(rem, 1).Cmp(den) {
	case 1:
		quo.Add(quo, bigOne)
	case 0:
		if quo.Bit(0) == 1 {
			quo.Add(quo, bigOne)
		}
	}
	if negative {
		quo.Neg(quo)
	}
	return decimal.NewFromBigInt(quo, -scale)
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func (e *Evaluator) evalAccess(expr *ast.AccessExpression) Object {
	if expr.Receiver != nil {
		receiver := e.evalExpression(expr.Receiver)
		if isError(receiver) {
			return receiver
		}
		instance, ok := receiver.(*Instance)
		if !ok {
			return newError(diagnostics.ErrR001, "%s has no fields", receiver.Type())
		}
		value, found := instance.GetField(expr.Name)
		if !found {
			return newError(diagnostics.ErrR003, "object %s has no field %s", instance.TypeName, expr.Name)
		}
		return value
	}

	value, ok := e.env.Get(expr.Name)
	if !ok {
		return newError(diagnostics.ErrR003, "variable %s is not defined in the current scope", expr.Name)
	}
	return value
}

// evalCall evaluates the receiver, if any, then the arguments left to
// right before dispatching.
func (e *Evaluator) evalCall(expr *ast.CallExpression) Object {
	var receiver Object
	if expr.Receiver != nil {
		receiver = e.evalExpression(expr.Receiver)
		if isError(receiver) {
			return receiver
		}
	}

	args := make([]Object, len(expr.Arguments))
	for i, argument := range expr.Arguments {
		arg := e.evalExpression(argument)
		if isError(arg) {
			return arg
		}
		args[i] = arg
	}

	if expr.Receiver != nil {
		instance, ok := receiver.(*Instance)
		if !ok {
			return newError(diagnostics.ErrR001, "%s has no methods", receiver.Type())
		}
		method, found := instance.Method(expr.Name, len(args))
		if !found {
			return newError(diagnostics.ErrR003, "object %s has no method %s/%d",
				instance.TypeName, expr.Name, len(args))
		}
		return method(instance, args)
	}

	fn, ok := e.env.GetFunction(expr.Name, len(args))
	if !ok {
		return newError(diagnostics.ErrR003, "function %s/%d is not defined", expr.Name, len(args))
	}
	return e.applyFunction(fn, args)
}
