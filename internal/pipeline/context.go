package pipeline

import (
	"io"

	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/token"
	"github.com/plclang/plc/internal/typesystem"
)

// Context carries the state threaded through the pipeline. Each stage
// reads the artifacts of earlier stages and appends its own.
type Context struct {
	SourceCode string
	FilePath   string

	// Lexer output
	Tokens []token.Token

	// Parser output
	AstRoot *ast.Source

	// Analyzer output: resolved types and symbols, keyed by node identity
	// so the AST itself stays immutable after parsing.
	TypeMap     map[ast.Expression]*typesystem.Type
	VariableMap map[ast.Node]*typesystem.Variable
	FunctionMap map[ast.Node]*typesystem.Function

	// Out is the process-wide output sink used by print and the emitter.
	Out io.Writer

	// Result is the evaluator's exit value, when the run stage executed.
	Result interface{}

	Errors []*diagnostics.DiagnosticError
}

// AddError appends a diagnostic to the context.
func (ctx *Context) AddError(err *diagnostics.DiagnosticError) {
	ctx.Errors = append(ctx.Errors, err)
}

// FirstError returns the first recorded diagnostic, or nil.
func (ctx *Context) FirstError() *diagnostics.DiagnosticError {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}
