// Copyright © 2026 The Mell authors

package compiler

import "github.com/mell-lang/mell/mell"

// checkStrict enforces use-before-assignment rules.  assigned is the set of
// variable names provably assigned on every path reaching the current node.
// Branch arms are analyzed independently from a snapshot of the pre-branch
// set and never merged back: an assignment inside one arm is invisible to
// sibling arms and to everything after the branch.
//
// Files that did not opt into strict mode still traverse so that every file
// follows the same pass shape; only the error is withheld.
func (o *optimizer) checkStrict(t *mell.Node, assigned map[string]bool) error {
	switch t.V.Kind {
	case mell.KVariable:
		if t.Opts != nil && t.Opts.Strict && !assigned[t.V.Str] {
			return mell.CompileErrorf(t.Loc, "use of variable @%s before it is assigned", t.V.Str)
		}
		return nil
	case mell.KCall:
	default:
		return nil
	}
	if isCallNamed(t, mell.AssignName) && len(t.Children) == 2 && t.Children[0].V.Kind == mell.KVariable {
		// The value is read before the variable becomes assigned, so
		// assign(@x, @x) is still a violation.
		if err := o.checkStrict(t.Children[1], assigned); err != nil {
			return err
		}
		assigned[t.Children[0].V.Str] = true
		return nil
	}
	if isCallNamed(t, mell.ProcName) && len(t.Children) >= 2 {
		return o.checkStrictProc(t, assigned)
	}
	if f, ok := o.env.Registry.Lookup(t.V.Str); ok {
		if cb, ok := f.(mell.Branching); ok {
			return o.checkStrictBranch(t, cb, assigned)
		}
	}
	for _, child := range t.Children {
		if err := o.checkStrict(child, assigned); err != nil {
			return err
		}
	}
	return nil
}

// checkStrictProc analyzes a procedure definition.  Parameter defaults read
// the outer set; the body starts from a fresh set holding only the
// parameters, because a procedure may be called from anywhere.
func (o *optimizer) checkStrictProc(t *mell.Node, assigned map[string]bool) error {
	inner := map[string]bool{}
	for _, v := range t.Children[1 : len(t.Children)-1] {
		if isCallNamed(v, mell.AssignName) && len(v.Children) == 2 {
			if err := o.checkStrict(v.Children[1], assigned); err != nil {
				return err
			}
			if v.Children[0].V.Kind == mell.KVariable {
				inner[v.Children[0].V.Str] = true
			}
			continue
		}
		if v.V.Kind == mell.KVariable {
			inner[v.V.Str] = true
		}
	}
	return o.checkStrict(t.Children[len(t.Children)-1], inner)
}

// checkStrictBranch analyzes a branching call: eager children first, updating
// the shared set, then each arm against its own snapshot.
func (o *optimizer) checkStrictBranch(t *mell.Node, cb mell.Branching, assigned map[string]bool) error {
	arms := armSet(cb.BranchArms(t.Children))
	for i, child := range t.Children {
		if arms[i] {
			continue
		}
		if err := o.checkStrict(child, assigned); err != nil {
			return err
		}
	}
	for i, child := range t.Children {
		if !arms[i] {
			continue
		}
		snapshot := make(map[string]bool, len(assigned))
		for name := range assigned {
			snapshot[name] = true
		}
		if err := o.checkStrict(child, snapshot); err != nil {
			return err
		}
	}
	return nil
}
