// Copyright © 2026 The Mell authors

package mell

import (
	"fmt"
	"strings"

	"github.com/mell-lang/mell/parser/token"
)

// Names of compiler-significant functions.  The optimizer recognizes these
// regardless of which registry is in use.
const (
	// AutoconcatName marks a run of juxtaposed, not-yet-structured tokens
	// produced by the parser.  Autoconcat reduction eliminates every
	// occurrence before any other pass runs.
	AutoconcatName = "__autoconcat__"
	// RecurName is the iterative form a self-recursive tail call is
	// rewritten to.  The executor implements it by rebinding the enclosing
	// procedure's parameters and looping instead of growing the call stack.
	RecurName = "__recur__"

	SconcatName = "sconcat"
	ConcatName  = "concat"
	CCName      = "cc"
	AssignName  = "assign"
	ProcName    = "proc"
	IfName      = "if"
	DieName     = "die"
	MsgName     = "msg"
)

type builtin struct {
	name string
}

func (b builtin) Name() string { return b.name }

// noHooks supplies the Optimizable hooks a capability set leaves unused.
type noHooks struct{}

func (noHooks) OptimizeDynamic(*CompileEnv, *token.Location, []*Node) (Outcome, error) {
	return NoChange(), nil
}

func (noHooks) Fold(*CompileEnv, *token.Location, []*Value) (*Value, error) {
	return nil, nil
}

func (noHooks) Exec(*CompileEnv, *token.Location, []*Value) (*Value, error) {
	return nil, nil
}

// plainFn is a function with no compile-time capabilities.
type plainFn struct {
	builtin
	special bool
}

func (f *plainFn) SpecialExec() bool { return f.special }

// assignFn validates assignment shape at compile time but never rewrites.
type assignFn struct {
	builtin
	noHooks
}

func (f *assignFn) OptimizationOptions() OptimizationOption { return OptimizeDynamic }

func (f *assignFn) OptimizeDynamic(env *CompileEnv, loc *token.Location, children []*Node) (Outcome, error) {
	if len(children) != 2 {
		return NoChange(), CompileErrorf(loc, "assign expects a variable and a value")
	}
	if children[0].V.Kind != KVariable {
		return NoChange(), CompileErrorf(children[0].Loc, "assign expects a variable, but got a %s", children[0].V.Kind)
	}
	return NoChange(), nil
}

// seqFn is statement glue.  A sequence of one collapses to its only element
// and an empty sequence is a no-op.
type seqFn struct {
	builtin
	noHooks
}

func (f *seqFn) OptimizationOptions() OptimizationOption { return OptimizeDynamic }

func (f *seqFn) OptimizeDynamic(env *CompileEnv, loc *token.Location, children []*Node) (Outcome, error) {
	switch len(children) {
	case 0:
		return VoidOut(), nil
	case 1:
		return PullUp(children[0]), nil
	}
	return NoChange(), nil
}

// concatFn concatenates its arguments as text.  Like seqFn it pulls up a
// single child, and it additionally folds once every argument is constant.
type concatFn struct {
	builtin
	noHooks
}

func (f *concatFn) OptimizationOptions() OptimizationOption {
	return OptimizeDynamic | OptimizeConstant
}

func (f *concatFn) OptimizeDynamic(env *CompileEnv, loc *token.Location, children []*Node) (Outcome, error) {
	if len(children) == 1 {
		return PullUp(children[0]), nil
	}
	return NoChange(), nil
}

func (f *concatFn) Fold(env *CompileEnv, loc *token.Location, args []*Value) (*Value, error) {
	var sb strings.Builder
	for _, arg := range args {
		if arg.Kind == KLiteral {
			sb.WriteString(arg.Str)
		}
	}
	return Literal(sb.String()), nil
}

// dieFn unconditionally ends control flow.
type dieFn struct {
	builtin
	noHooks
}

func (f *dieFn) OptimizationOptions() OptimizationOption { return Terminal }

// arithFn folds a left-associated numeric reduction.
type arithFn struct {
	builtin
	noHooks
	apply func(a, b float64) (float64, error)
}

func (f *arithFn) OptimizationOptions() OptimizationOption { return OptimizeConstant }

func (f *arithFn) Fold(env *CompileEnv, loc *token.Location, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, CompileErrorf(loc, "%s expects at least 2 arguments", f.name)
	}
	acc, ok := args[0].Float64()
	if !ok {
		return nil, CompileErrorf(loc, "%s expects numeric arguments, but got %s", f.name, args[0])
	}
	for _, arg := range args[1:] {
		x, ok := arg.Float64()
		if !ok {
			return nil, CompileErrorf(loc, "%s expects numeric arguments, but got %s", f.name, arg)
		}
		var err error
		acc, err = f.apply(acc, x)
		if err != nil {
			return nil, err
		}
	}
	return Float(acc), nil
}

// cmpFn folds a binary comparison.
type cmpFn struct {
	builtin
	noHooks
	apply func(a, b *Value) (bool, error)
}

func (f *cmpFn) OptimizationOptions() OptimizationOption { return OptimizeConstant }

func (f *cmpFn) Fold(env *CompileEnv, loc *token.Location, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, CompileErrorf(loc, "%s expects 2 arguments", f.name)
	}
	b, err := f.apply(args[0], args[1])
	if err != nil {
		return nil, CompileErrorf(loc, "%s: %s", f.name, err)
	}
	return Bool(b), nil
}

// notFn folds boolean negation.
type notFn struct {
	builtin
	noHooks
}

func (f *notFn) OptimizationOptions() OptimizationOption { return OptimizeConstant }

func (f *notFn) Fold(env *CompileEnv, loc *token.Location, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, CompileErrorf(loc, "not expects 1 argument")
	}
	return Bool(!args[0].Truthy()), nil
}

// toUpperFn folds through its normal execution path.  It is registered as
// ConstantOffline: the implementation is trusted to be pure, nothing
// enforces it.
type toUpperFn struct {
	builtin
	noHooks
}

func (f *toUpperFn) OptimizationOptions() OptimizationOption { return ConstantOffline }

func (f *toUpperFn) Exec(env *CompileEnv, loc *token.Location, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("to_upper expects 1 argument")
	}
	return Literal(strings.ToUpper(args[0].Str)), nil
}

// ifFn is the conditional.  Children are [condition, consequent] or
// [condition, consequent, alternative]; the condition is eager and the other
// positions are branch arms.
type ifFn struct {
	builtin
}

func (f *ifFn) BranchArms(children []*Node) []int {
	var arms []int
	for i := 1; i < len(children) && i <= 2; i++ {
		arms = append(arms, i)
	}
	return arms
}

func (f *ifFn) RewriteBranch(env *CompileEnv, loc *token.Location, children []*Node) (Outcome, error) {
	if len(children) < 2 || len(children) > 3 {
		return NoChange(), CompileErrorf(loc, "if expects 2 or 3 arguments, but got %d", len(children))
	}
	cond := children[0]
	if cond.V.IsDynamic() {
		return NoChange(), nil
	}
	if cond.V.Truthy() {
		return PullUp(children[1]), nil
	}
	if len(children) == 3 {
		return PullUp(children[2]), nil
	}
	return VoidOut(), nil
}

func numCmp(cmp func(a, b float64) bool) func(a, b *Value) (bool, error) {
	return func(a, b *Value) (bool, error) {
		x, ok := a.Float64()
		if !ok {
			return false, fmt.Errorf("expected a number, but got %s", a)
		}
		y, ok := b.Float64()
		if !ok {
			return false, fmt.Errorf("expected a number, but got %s", b)
		}
		return cmp(x, y), nil
	}
}

func addBuiltins(r *Registry) {
	r.Register(&plainFn{builtin: builtin{AutoconcatName}})
	r.Register(&plainFn{builtin: builtin{RecurName}})
	r.Register(&plainFn{builtin: builtin{CCName}})
	r.Register(&plainFn{builtin: builtin{MsgName}})
	r.Register(&plainFn{builtin: builtin{ProcName}, special: true})
	r.Register(&assignFn{builtin: builtin{AssignName}})
	r.Register(&seqFn{builtin: builtin{SconcatName}})
	r.Register(&concatFn{builtin: builtin{ConcatName}})
	r.Register(&ifFn{builtin: builtin{IfName}})
	r.Register(&dieFn{builtin: builtin{DieName}})
	r.Register(&notFn{builtin: builtin{"not"}})
	r.Register(&toUpperFn{builtin: builtin{"to_upper"}})
	r.Register(&arithFn{builtin: builtin{"add"}, apply: func(a, b float64) (float64, error) { return a + b, nil }})
	r.Register(&arithFn{builtin: builtin{"sub"}, apply: func(a, b float64) (float64, error) { return a - b, nil }})
	r.Register(&arithFn{builtin: builtin{"mul"}, apply: func(a, b float64) (float64, error) { return a * b, nil }})
	r.Register(&arithFn{builtin: builtin{"div"}, apply: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	}})
	r.Register(&cmpFn{builtin: builtin{"eq"}, apply: func(a, b *Value) (bool, error) {
		if x, ok := a.Float64(); ok {
			if y, ok := b.Float64(); ok {
				return x == y, nil
			}
		}
		return a.Str == b.Str, nil
	}})
	r.Register(&cmpFn{builtin: builtin{"lt"}, apply: numCmp(func(a, b float64) bool { return a < b })})
	r.Register(&cmpFn{builtin: builtin{"gt"}, apply: numCmp(func(a, b float64) bool { return a > b })})
}
