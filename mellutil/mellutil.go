// Copyright © 2026 The Mell authors

// Package mellutil helps embedders extend the compiler with Go-implemented
// functions without declaring a struct per function.
package mellutil

import (
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser/token"
)

// FoldFunc evaluates a call over constant arguments at compile time.
type FoldFunc func(env *mell.CompileEnv, loc *token.Location, args []*mell.Value) (*mell.Value, error)

// RewriteFunc may rewrite a call node given its current children.
type RewriteFunc func(env *mell.CompileEnv, loc *token.Location, children []*mell.Node) (mell.Outcome, error)

// Builtin captures Go functions that are callable from mell.
type Builtin struct {
	name    string
	options mell.OptimizationOption
	fold    FoldFunc
	exec    FoldFunc
	rewrite RewriteFunc
}

var _ mell.Optimizable = (*Builtin)(nil)

// Option configures a Builtin.
type Option func(*Builtin)

// WithFold makes the function foldable once every argument is constant.
func WithFold(fn FoldFunc) Option {
	return func(b *Builtin) {
		b.options |= mell.OptimizeConstant
		b.fold = fn
	}
}

// WithOfflineExec marks the execution path pure and runs it at compile time
// for constant arguments.
func WithOfflineExec(fn FoldFunc) Option {
	return func(b *Builtin) {
		b.options |= mell.ConstantOffline
		b.exec = fn
	}
}

// WithRewrite lets the function rewrite its own call node even with dynamic
// arguments.
func WithRewrite(fn RewriteFunc) Option {
	return func(b *Builtin) {
		b.options |= mell.OptimizeDynamic
		b.rewrite = fn
	}
}

// WithTerminal marks the function as unconditionally ending control flow.
func WithTerminal() Option {
	return func(b *Builtin) {
		b.options |= mell.Terminal
	}
}

// Function is a helper to construct builtins.
func Function(name string, opts ...Option) *Builtin {
	b := &Builtin{name: name}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the name of a function.
func (b *Builtin) Name() string { return b.name }

// OptimizationOptions declares the capabilities assembled from the options.
func (b *Builtin) OptimizationOptions() mell.OptimizationOption { return b.options }

func (b *Builtin) OptimizeDynamic(env *mell.CompileEnv, loc *token.Location, children []*mell.Node) (mell.Outcome, error) {
	if b.rewrite == nil {
		return mell.NoChange(), nil
	}
	return b.rewrite(env, loc, children)
}

func (b *Builtin) Fold(env *mell.CompileEnv, loc *token.Location, args []*mell.Value) (*mell.Value, error) {
	if b.fold == nil {
		return nil, nil
	}
	return b.fold(env, loc, args)
}

func (b *Builtin) Exec(env *mell.CompileEnv, loc *token.Location, args []*mell.Value) (*mell.Value, error) {
	if b.exec == nil {
		return nil, nil
	}
	return b.exec(env, loc, args)
}

// Loader registers a batch of functions on a registry.
type Loader func(*mell.Registry)

// Load applies loaders to a registry and returns it.
func Load(r *mell.Registry, loaders ...Loader) *mell.Registry {
	for _, fn := range loaders {
		fn(r)
	}
	return r
}

// Library bundles functions into a single loader.  A chain of loaders may be
// formed to register an embedder's whole function library.
func Library(fns ...*Builtin) Loader {
	return func(r *mell.Registry) {
		for _, fn := range fns {
			r.Register(fn)
		}
	}
}
