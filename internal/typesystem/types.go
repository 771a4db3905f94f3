// Package typesystem defines the fixed primitive type registry of the
// language together with the lexical scope chain the analyzer resolves
// names against. Types and scopes live in one package: a Variable holds a
// *Type and a Type's member table holds *Variables.
package typesystem

import "fmt"

// Type is a primitive language type. TargetName is the spelling used when
// emitting target-language source. Members are the type's fields and
// methods, reachable through access and call expressions with a receiver.
type Type struct {
	Name       string
	TargetName string
	fields     map[string]*Variable
	methods    map[funcKey]*Function
}

func NewType(name, targetName string) *Type {
	return &Type{
		Name:       name,
		TargetName: targetName,
		fields:     make(map[string]*Variable),
		methods:    make(map[funcKey]*Function),
	}
}

func (t *Type) String() string { return t.Name }

// DefineField registers a member field on the type.
func (t *Type) DefineField(name, targetName string, fieldType *Type, constant bool) *Variable {
	v := &Variable{Name: name, TargetName: targetName, Type: fieldType, Constant: constant}
	t.fields[name] = v
	return v
}

// Field looks up a member field by name.
func (t *Type) Field(name string) (*Variable, bool) {
	v, ok := t.fields[name]
	return v, ok
}

// DefineMethod registers a member method on the type.
func (t *Type) DefineMethod(name, targetName string, parameterTypes []*Type, returnType *Type) *Function {
	f := &Function{Name: name, TargetName: targetName, ParameterTypes: parameterTypes, ReturnType: returnType}
	t.methods[funcKey{name, len(parameterTypes)}] = f
	return f
}

// Method looks up a member method by name and arity.
func (t *Type) Method(name string, arity int) (*Function, bool) {
	f, ok := t.methods[funcKey{name, arity}]
	return f, ok
}

// The primitive registry. Comparable is a virtual supertype of the four
// orderable primitives; Any is the unconstrained top type.
var (
	Any             = NewType("Any", "Object")
	Nil             = NewType("Nil", "Void")
	Comparable      = NewType("Comparable", "Comparable")
	Integer         = NewType("Integer", "int")
	Decimal         = NewType("Decimal", "double")
	Boolean         = NewType("Boolean", "boolean")
	Character       = NewType("Character", "char")
	String          = NewType("String", "String")
	IntegerIterable = NewType("IntegerIterable", "Iterable<Integer>")
)

var registry = map[string]*Type{
	Any.Name:             Any,
	Nil.Name:             Nil,
	Comparable.Name:      Comparable,
	Integer.Name:         Integer,
	Decimal.Name:         Decimal,
	Boolean.Name:         Boolean,
	Character.Name:       Character,
	String.Name:          String,
	IntegerIterable.Name: IntegerIterable,
}

// Lookup resolves a source type name against the registry.
func Lookup(name string) (*Type, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown type: %s", name)
	}
	return t, nil
}

// IsComparable reports whether t is one of the orderable primitives.
func IsComparable(t *Type) bool {
	return t == Integer || t == Decimal || t == Character || t == String
}

// Assignable reports whether a value of type source may be used where
// target is expected: identity, the top type Any, or Comparable accepting
// any orderable primitive.
func Assignable(target, source *Type) bool {
	if target == source || target == Any {
		return true
	}
	if target == Comparable && IsComparable(source) {
		return true
	}
	return false
}
