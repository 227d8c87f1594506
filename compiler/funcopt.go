// Copyright © 2026 The Mell authors

package compiler

import "github.com/mell-lang/mell/mell"

// optimizeFunctions is the shared function-optimization walk.  It runs once
// before procedure registration (postProcedure false: procedure references
// are left untouched because they cannot be resolved yet) and twice after
// (postProcedure true: procedure definitions are registered and entered, and
// references must resolve or compilation fails).
//
// The returned node is the pull-up channel: when non-nil, the current node
// has removed itself from the tree and the caller must substitute the
// returned child at the node's position in the caller's child list.  A
// pull-up reaching Optimize's top level replaces the root.
func (o *optimizer) optimizeFunctions(t *mell.Node, postProcedure bool) (*mell.Node, error) {
	if t.V.Kind != mell.KCall {
		// Literals, variables, and void carry nothing to optimize.
		return nil, nil
	}
	if postProcedure && t.V.Str == mell.ProcName {
		return nil, o.optimizeProcedureDef(t)
	}
	// Depth first.
	for i := 0; i < len(t.Children); i++ {
		pull, err := o.optimizeFunctions(t.Children[i], postProcedure)
		if err != nil {
			return nil, err
		}
		if pull != nil {
			t.Children[i] = pull
		}
	}
	if o.isProcedureRef(t) {
		if postProcedure {
			if _, err := o.env.GetProcedure(t.V.Str, t.Loc); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	f, _ := o.env.Registry.Lookup(t.V.Str)
	opt, ok := f.(mell.Optimizable)
	if !ok {
		return nil, nil
	}
	options := opt.OptimizationOptions()
	if options.Has(mell.OptimizeDynamic) {
		o.env.SetFileOptions(t.Opts)
		out, err := opt.OptimizeDynamic(o.env, t.Loc, t.Children)
		if err != nil {
			// A runtime-level failure from the hook becomes a compile error;
			// it is never silently swallowed.
			return nil, mell.WrapCompileError(err, t.Loc)
		}
		switch {
		case out.IsNoChange():
			// The hook only ran compile checks.
		case out.IsVoid():
			t.VoidOut()
		default:
			if pulled, ok := out.Pulled(); ok {
				// This node is gone from the tree entirely.  Without a
				// parent pointer the substitution must happen in the caller,
				// so hand the child upward.
				return pulled, nil
			}
			rep, _ := out.Replacement()
			t.Adopt(rep)
		}
		if t.V.Kind != mell.KCall || t.V.Str != f.Name() {
			// The rewrite produced a different node shape; constant folding
			// for f no longer applies.
			return nil, nil
		}
	}
	if options.Has(mell.OptimizeConstant) || options.Has(mell.ConstantOffline) {
		args := make([]*mell.Value, len(t.Children))
		for i, child := range t.Children {
			if child.V.IsDynamic() {
				// Can't fold any further.
				return nil, nil
			}
			args[i] = child.V
		}
		var result *mell.Value
		var err error
		if options.Has(mell.ConstantOffline) {
			// Offline evaluation runs the function's normal execution path
			// synchronously at compile time.  Registering ConstantOffline is
			// the author's promise of purity; it is not verified here.
			result, err = opt.Exec(o.env, t.Loc, args)
		} else {
			result, err = opt.Fold(o.env, t.Loc, args)
		}
		if err != nil {
			return nil, mell.WrapCompileError(err, t.Loc)
		}
		// A nil result means no further folding is possible.
		if result != nil {
			t.V = result
			t.Children = nil
		}
	}
	return nil, nil
}

// optimizeProcedureDef registers the procedure defined by t and optimizes its
// body inside a fresh procedure scope, which is what makes self-recursion
// resolvable: the name is visible before the body is analyzed.
func (o *optimizer) optimizeProcedureDef(t *mell.Node) error {
	p, err := parseProcedureDef(t)
	if err != nil {
		return err
	}
	o.env.AddProcedure(p)
	o.env.PushProcedureScope()
	defer o.env.PopProcedureScope()
	body := t.Children[len(t.Children)-1]
	pull, err := o.optimizeFunctions(body, true)
	if err != nil {
		return err
	}
	if pull != nil {
		t.Children[len(t.Children)-1] = pull
	}
	return nil
}

// parseProcedureDef validates a proc call's shape: a constant name, a list of
// parameters which are bare variables or variables assigned a constant
// default, and a body.
func parseProcedureDef(t *mell.Node) (*mell.Procedure, error) {
	if len(t.Children) < 2 || t.Children[0].V.Kind != mell.KLiteral {
		return nil, mell.CompileErrorf(t.Loc, "Procedure defined incorrectly. Expected a name and a body")
	}
	name := t.Children[0].V.Str
	params := make([]mell.Parameter, 0, len(t.Children)-2)
	for _, v := range t.Children[1 : len(t.Children)-1] {
		var variable *mell.Value
		var def *mell.Value
		if isCallNamed(v, mell.AssignName) && len(v.Children) == 2 {
			// A parameter default.  Toss the value after proving it
			// constant; registration only needs the shape.
			if !v.Children[1].IsConst() {
				return nil, mell.CompileErrorf(v.Loc, "Default values in a procedure must be constant")
			}
			variable = v.Children[0].V
			def = v.Children[1].V.Clone()
		} else {
			variable = v.V
		}
		if variable.Kind != mell.KVariable {
			return nil, mell.CompileErrorf(v.Loc, "Procedure defined incorrectly. Expected a variable, but got a %s", variable.Kind)
		}
		params = append(params, mell.Parameter{Name: variable.Str, Default: def})
	}
	return &mell.Procedure{
		Name:   name,
		Params: params,
		Body:   t.Children[len(t.Children)-1],
		Loc:    t.Loc,
	}, nil
}
