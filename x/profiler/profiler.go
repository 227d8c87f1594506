// Copyright © 2026 The Mell authors

// Package profiler provides mell.Profiler implementations that annotate
// compiler passes with tracing spans.
package profiler

import (
	"fmt"

	"github.com/mell-lang/mell/mell"
)

// SkipFilter decides whether a pass should be traced.
type SkipFilter func(name string) bool

// profiler is a minimal mell.Profiler.
type profiler struct {
	env        *mell.CompileEnv
	enabled    bool
	skipFilter SkipFilter
}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Option configures an annotator.
type Option func(*profiler)

// WithSkipFilter suppresses spans for passes matched by f.
func WithSkipFilter(f SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = f
	}
}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(name string) bool {
	return !p.enabled || p.skipFilter != nil && p.skipFilter(name)
}
