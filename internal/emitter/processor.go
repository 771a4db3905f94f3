package emitter

import "github.com/plclang/plc/internal/pipeline"

type EmitterProcessor struct {
	// ClassName overrides the emitted wrapper class name when non-empty.
	ClassName string
}

func (ep *EmitterProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil {
		return ctx
	}

	e := New(NewCodeWriter(ctx.Out), ctx.VariableMap, ctx.FunctionMap)
	e.SetClassName(ep.ClassName)
	e.Emit(ctx.AstRoot)
	return ctx
}
