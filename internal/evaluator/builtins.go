package evaluator

import (
	"fmt"

	"github.com/plclang/plc/internal/config"
	"github.com/plclang/plc/internal/diagnostics"
)

func registerBuiltins(env *Environment) {
	env.DefineFunction(config.PrintFuncName, 1, &Builtin{Name: config.PrintFuncName, Fn: builtinPrint})
	env.DefineFunction(config.RangeFuncName, 2, &Builtin{Name: config.RangeFuncName, Fn: builtinRange})
}

// builtinPrint writes the printable representation of its argument
// followed by a line break to the evaluator's output sink.
func builtinPrint(e *Evaluator, args ...Object) Object {
	fmt.Fprintln(e.Out, args[0].Inspect())
	return NIL
}

// builtinRange produces the integers in [start, end).
func builtinRange(e *Evaluator, args ...Object) Object {
	start, ok := args[0].(*Integer)
	if !ok {
		return newError(diagnostics.ErrR001, "range expects Integer bounds, received %s", args[0].Type())
	}
	end, ok := args[1].(*Integer)
	if !ok {
		return newError(diagnostics.ErrR001, "range expects Integer bounds, received %s", args[1].Type())
	}
	return &IntegerRange{Start: start.Value, End: end.Value}
}
