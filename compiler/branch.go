// Copyright © 2026 The Mell authors

package compiler

import "github.com/mell-lang/mell/mell"

// reduceBranches optimizes branching call nodes and removes provably
// unreachable code.  At each call node it first truncates siblings following
// an unshielded terminal call, then, for branching functions, eagerly
// optimizes the non-arm children and invokes the branch-rewrite hook.  The
// node re-runs its own reduction until its child count stabilizes, because a
// rewrite can expose a new terminal sibling or branch opportunity.  Only then
// does reduction recurse into the remaining children, including branch arms.
//
// Procedure references are left opaque: a procedure body may not be
// registered yet, so nothing below the reference can be trusted.
func (o *optimizer) reduceBranches(t *mell.Node, postProcedure bool) error {
	rewrote := true
	for rewrote {
		rewrote = false
		if t.V.Kind != mell.KCall {
			break
		}
		if o.isProcedureRef(t) {
			return nil
		}
		f, _ := o.env.Registry.Lookup(t.V.Str)
		o.truncateUnreachable(t, f)
		cb, ok := f.(mell.Branching)
		if !ok {
			break
		}
		numChildren := len(t.Children)
		arms := armSet(cb.BranchArms(t.Children))
		for i := 0; i < len(t.Children); i++ {
			if arms[i] {
				continue
			}
			pull, err := o.optimizeFunctions(t.Children[i], postProcedure)
			if err != nil {
				return err
			}
			if pull != nil {
				t.Children[i] = pull
			}
		}
		o.env.SetFileOptions(t.Opts)
		out, err := cb.RewriteBranch(o.env, t.Loc, t.Children)
		if err != nil {
			return mell.WrapCompileError(err, t.Loc)
		}
		switch {
		case out.IsNoChange():
		case out.IsVoid():
			t.VoidOut()
		default:
			// For a branch node the rewrite hook's pull-up is applied
			// directly: the node owns the child being pulled and can always
			// mutate itself.
			n, _ := out.Pulled()
			if n == nil {
				n, _ = out.Replacement()
			}
			t.Adopt(n)
			rewrote = len(t.Children) != numChildren
		}
	}
	for _, child := range t.Children {
		if err := o.reduceBranches(child, postProcedure); err != nil {
			return err
		}
	}
	return nil
}

// truncateUnreachable scans t's children left to right for a terminal call
// not shielded by a branching context.  Everything after the first one found
// never runs: one warning is emitted at the first dropped sibling and the
// remainder is dropped.
func (o *optimizer) truncateUnreachable(t *mell.Node, f mell.Function) {
	if f != nil && mell.UsesSpecialExec(f) {
		// The children are branch arms or otherwise conditionally executed;
		// a terminal call in one of them proves nothing about its siblings.
		return
	}
	for i, child := range t.Children {
		if child.V.Kind != mell.KCall || o.isProcedureRef(child) {
			continue
		}
		cf, _ := o.env.Registry.Lookup(child.V.Str)
		opt, ok := cf.(mell.Optimizable)
		if !ok || !opt.OptimizationOptions().Has(mell.Terminal) {
			continue
		}
		if i+1 < len(t.Children) {
			o.env.CompilerWarning("Unreachable code. Consider removing this code.", t.Children[i+1].Loc)
			t.Children = t.Children[:i+1]
		}
		return
	}
}
