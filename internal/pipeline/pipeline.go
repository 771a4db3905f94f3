// Package pipeline wires the compiler passes together. Each pass is a
// Processor over a shared Context; data flows strictly forward and the
// pipeline stops at the first pass that reports an error.
package pipeline

type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order, bailing out after the first stage that
// records an error. No pass recovers or continues past a failure.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if len(ctx.Errors) > 0 {
			return ctx
		}
	}
	return ctx
}
