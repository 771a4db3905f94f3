package evaluator

import "fmt"

type cell struct {
	value    Object
	constant bool
}

type funcKey struct {
	name  string
	arity int
}

// Environment is the runtime scope chain. Variables are keyed by name,
// functions by (name, arity); lookups walk outward, definitions always
// land in the innermost environment.
type Environment struct {
	store     map[string]*cell
	functions map[funcKey]Object
	outer     *Environment
}

func NewEnvironment() *Environment {
	return &Environment{
		store:     make(map[string]*cell),
		functions: make(map[funcKey]Object),
	}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if c, ok := env.store[name]; ok {
			return c.value, true
		}
	}
	return nil, false
}

// Define binds a variable in the innermost environment.
func (e *Environment) Define(name string, value Object, constant bool) {
	e.store[name] = &cell{value: value, constant: constant}
}

// Assign writes to an existing variable, wherever in the chain it lives.
// Writing to a constant or an undefined name is an error.
func (e *Environment) Assign(name string, value Object) error {
	for env := e; env != nil; env = env.outer {
		if c, ok := env.store[name]; ok {
			if c.constant {
				return fmt.Errorf("cannot assign to constant %s", name)
			}
			c.value = value
			return nil
		}
	}
	return fmt.Errorf("variable %s is not defined", name)
}

func (e *Environment) DefineFunction(name string, arity int, fn Object) {
	e.functions[funcKey{name, arity}] = fn
}

func (e *Environment) GetFunction(name string, arity int) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if fn, ok := env.functions[funcKey{name, arity}]; ok {
			return fn, true
		}
	}
	return nil, false
}
