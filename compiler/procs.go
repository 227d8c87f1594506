// Copyright © 2026 The Mell authors

package compiler

import "github.com/mell-lang/mell/mell"

// registerProcedures walks the whole tree registering every procedure
// definition in the base procedure scope, so that call sites resolve during
// post-procedure optimization even when they precede the definition.  While
// a definition is in hand, self-recursive calls in tail position are
// rewritten to the iterative __recur__ form, bounding call-stack growth for
// recursive procedures.
func (o *optimizer) registerProcedures(t *mell.Node) error {
	if isCallNamed(t, mell.ProcName) {
		p, err := parseProcedureDef(t)
		if err != nil {
			return err
		}
		o.env.AddProcedure(p)
		o.rewriteTailCalls(p.Body, p.Name)
		// Nested definitions register too.
		return o.registerProcedures(p.Body)
	}
	for _, child := range t.Children {
		if err := o.registerProcedures(child); err != nil {
			return err
		}
	}
	return nil
}

// rewriteTailCalls rewrites calls to the procedure name that are the last
// action on their execution path through t.  Tail position distributes
// through statement glue (the last element of a sequence) and through branch
// arms, but never into eagerly evaluated operands or nested procedure
// definitions.
func (o *optimizer) rewriteTailCalls(t *mell.Node, name string) {
	if t.V.Kind != mell.KCall {
		return
	}
	switch t.V.Str {
	case name:
		t.V = mell.Call(mell.RecurName, len(t.Children))
	case mell.ProcName:
		// A nested procedure has its own tail positions.
		return
	case mell.SconcatName, mell.ConcatName, mell.CCName:
		if n := len(t.Children); n > 0 {
			o.rewriteTailCalls(t.Children[n-1], name)
		}
	default:
		f, ok := o.env.Registry.Lookup(t.V.Str)
		if !ok {
			return
		}
		cb, ok := f.(mell.Branching)
		if !ok {
			return
		}
		for _, i := range cb.BranchArms(t.Children) {
			if i < len(t.Children) {
				o.rewriteTailCalls(t.Children[i], name)
			}
		}
	}
}
