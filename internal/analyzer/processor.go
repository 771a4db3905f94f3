package analyzer

import "github.com/plclang/plc/internal/pipeline"

type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil {
		return ctx
	}

	a := New(nil)
	if err := a.Analyze(ctx.AstRoot); err != nil {
		ctx.AddError(err)
		return ctx
	}

	ctx.TypeMap = a.TypeMap
	ctx.VariableMap = a.VariableMap
	ctx.FunctionMap = a.FunctionMap
	return ctx
}
