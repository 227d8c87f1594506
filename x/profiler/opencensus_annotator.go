// Copyright © 2026 The Mell authors

package profiler

import (
	"context"
	"errors"

	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser/token"
	"go.opencensus.io/trace"
)

var _ mell.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       []context.Context
}

// NewOpenCensusAnnotator traces compiler passes as OpenCensus spans parented
// to parentContext.
func NewOpenCensusAnnotator(env *mell.CompileEnv, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler: profiler{
			env: env,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	p.env.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(name string, loc *token.Location) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	p.contexts = append(p.contexts, p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, name)
	if loc != nil {
		p.currentSpan.AddAttributes(
			trace.StringAttribute("code.filepath", loc.File),
			trace.Int64Attribute("code.lineno", int64(loc.Line)),
		)
	}
	return func() {
		p.currentSpan.End()
		last := len(p.contexts) - 1
		p.currentContext = p.contexts[last]
		p.contexts = p.contexts[:last]
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
