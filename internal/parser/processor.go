package parser

import "github.com/plclang/plc/internal/pipeline"

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	source, err := New(ctx.Tokens).ParseSource()
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.AstRoot = source
	return ctx
}
