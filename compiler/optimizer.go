// Copyright © 2026 The Mell authors

// Package compiler implements the semantic-analysis and optimization stage
// run between parsing and execution.  It rewrites a raw syntax tree in place
// through a fixed sequence of passes: placeholder resolution, dead-branch
// elimination, constant folding, procedure registration and resolution, and
// strict-mode initialization checks.  The result is a fully resolved tree
// ready for execution or serialization, or the first fatal compile error
// encountered in pass order.
package compiler

import (
	"github.com/mell-lang/mell/mell"
)

// Optimize rewrites root through the fixed pass sequence and returns the
// resolved tree.  Non-fatal diagnostics accumulate on env regardless of
// outcome; a compile error aborts immediately and no partial tree is
// returned.  The pipeline is single-threaded and each compilation must own
// its env.
func Optimize(root *mell.Node, env *mell.CompileEnv) (*mell.Node, error) {
	o := &optimizer{root: root, env: env}
	if err := o.run(); err != nil {
		return nil, err
	}
	return o.root, nil
}

type optimizer struct {
	root *mell.Node
	env  *mell.CompileEnv
}

func (o *optimizer) run() error {
	if err := o.pass("autoconcat-reduction", func() error {
		return o.reduceAutoconcat(o.root)
	}); err != nil {
		return err
	}
	// Loose branch reduction: procedures are still opaque, but whole
	// unreachable branches can already disappear.
	if err := o.pass("branch-reduction", func() error {
		return o.reduceBranches(o.root, false)
	}); err != nil {
		return err
	}
	if err := o.pass("function-optimization", func() error {
		return o.optimizeFunctionsScoped(false)
	}); err != nil {
		return err
	}
	if err := o.pass("strict-mode-check", func() error {
		return o.checkStrict(o.root, map[string]bool{})
	}); err != nil {
		return err
	}
	// Register every procedure definition, including forward references,
	// and rewrite self-recursive tail calls before call sites resolve.
	if err := o.pass("procedure-registry", func() error {
		return o.registerProcedures(o.root)
	}); err != nil {
		return err
	}
	// Post-procedure optimization runs twice: folding a procedure away can
	// turn previously dynamic arguments constant and enable rewrites that
	// were impossible on the first run.
	if err := o.pass("function-optimization", func() error {
		return o.optimizeFunctionsScoped(true)
	}); err != nil {
		return err
	}
	if err := o.pass("function-optimization", func() error {
		return o.optimizeFunctionsScoped(true)
	}); err != nil {
		return err
	}
	return o.pass("branch-reduction", func() error {
		return o.reduceBranches(o.root, true)
	})
}

// pass wraps fn with profiler notification.
func (o *optimizer) pass(name string, fn func() error) error {
	stop := o.env.StartPass(name, o.root.Loc)
	defer stop()
	return fn()
}

// optimizeFunctionsScoped runs a function-optimization pass inside its own
// procedure scope, so definitions seen during the pass are visible only for
// its duration.  A pull-up reaching the top level replaces the root itself.
func (o *optimizer) optimizeFunctionsScoped(postProcedure bool) error {
	o.env.PushProcedureScope()
	defer o.env.PopProcedureScope()
	pull, err := o.optimizeFunctions(o.root, postProcedure)
	if err != nil {
		return err
	}
	if pull != nil {
		o.root = pull
	}
	return nil
}

// isProcedureRef reports whether t calls a name with no registry entry, which
// makes it a reference to a user-defined procedure.
func (o *optimizer) isProcedureRef(t *mell.Node) bool {
	if t.V.Kind != mell.KCall {
		return false
	}
	_, ok := o.env.Registry.Lookup(t.V.Str)
	return !ok
}

func armSet(arms []int) map[int]bool {
	set := make(map[int]bool, len(arms))
	for _, i := range arms {
		set[i] = true
	}
	return set
}
