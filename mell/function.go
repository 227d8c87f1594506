// Copyright © 2026 The Mell authors

package mell

import "github.com/mell-lang/mell/parser/token"

// OptimizationOption is a set of capabilities a function declares to the
// optimizer.
type OptimizationOption uint

// Optimization options.
const (
	// OptimizeConstant marks a function foldable at compile time through its
	// Fold hook once every argument is constant.
	OptimizeConstant OptimizationOption = 1 << iota
	// ConstantOffline marks a function foldable by running its normal Exec
	// path at compile time.  The function's author vouches that Exec is pure
	// and side-effect free; the optimizer does not and cannot verify this.
	ConstantOffline
	// OptimizeDynamic marks a function that can rewrite its own call node
	// even with dynamic arguments, through its OptimizeDynamic hook.
	OptimizeDynamic
	// Terminal marks a function that unconditionally ends normal control
	// flow, making syntactic successors unreachable.
	Terminal
)

// Has reports whether o includes flag.
func (o OptimizationOption) Has(flag OptimizationOption) bool {
	return o&flag != 0
}

// Function is a named callable resolved through a Registry.  Most functions
// expose no compile-time capabilities; the optimizer discovers the ones that
// do with interface checks for Optimizable and Branching.
type Function interface {
	Name() string
}

// Optimizable is implemented by functions that participate in compile-time
// rewriting or folding.  Only the hooks enabled by OptimizationOptions are
// ever invoked; the others may return zero values.
type Optimizable interface {
	Function

	// OptimizationOptions declares which hooks the optimizer may use.
	OptimizationOptions() OptimizationOption

	// OptimizeDynamic may rewrite the call node given its current children.
	// Invoked only when OptimizeDynamic is declared.
	OptimizeDynamic(env *CompileEnv, loc *token.Location, children []*Node) (Outcome, error)

	// Fold evaluates the call given constant arguments.  A nil result means
	// no further folding is possible and the node is left as is.  Invoked
	// only when OptimizeConstant is declared.
	Fold(env *CompileEnv, loc *token.Location, args []*Value) (*Value, error)

	// Exec is the function's normal execution path, run synchronously at
	// compile time for ConstantOffline functions.  This is a trust boundary:
	// arbitrary user-authored code runs on the compiling goroutine.
	Exec(env *CompileEnv, loc *token.Location, args []*Value) (*Value, error)
}

// Branching is implemented by functions whose argument positions include
// branch arms: children that execute conditionally rather than eagerly.
type Branching interface {
	Function

	// BranchArms returns the child indexes that are branch arms for the
	// given child list.
	BranchArms(children []*Node) []int

	// RewriteBranch may reduce the call given its (possibly truncated) full
	// child list, e.g. collapsing a conditional with a constant condition.
	RewriteBranch(env *CompileEnv, loc *token.Location, children []*Node) (Outcome, error)
}

// specialExec is implemented by functions that establish their own execution
// context for their arguments.
type specialExec interface {
	SpecialExec() bool
}

// UsesSpecialExec reports whether calls to f shield their children from
// terminal-call truncation.  Branching functions always do; other functions
// may opt in.
func UsesSpecialExec(f Function) bool {
	if s, ok := f.(specialExec); ok {
		return s.SpecialExec()
	}
	_, ok := f.(Branching)
	return ok
}

type outcomeKind uint

const (
	outcomeNoChange outcomeKind = iota
	outcomeReplace
	outcomeVoid
	outcomePullUp
)

// Outcome is the result of a rewrite hook.  It is an explicit return channel
// rather than non-local control transfer: every caller that owns a child list
// checks the outcome and applies it.  A pull-up outcome propagates upward
// until it reaches the frame that owns the child list containing the node
// being replaced.
type Outcome struct {
	kind outcomeKind
	node *Node
}

// NoChange reports that the hook performed no rewrite (it may still have run
// compile checks).
func NoChange() Outcome {
	return Outcome{}
}

// Replace overwrites the current node's value and children with n's.
func Replace(n *Node) Outcome {
	return Outcome{kind: outcomeReplace, node: n}
}

// VoidOut converts the current node into a no-op and drops its children.
func VoidOut() Outcome {
	return Outcome{kind: outcomeVoid}
}

// PullUp replaces the current node entirely with child, one of its own
// children.  The caller owning the surrounding child list performs the
// substitution.
func PullUp(child *Node) Outcome {
	return Outcome{kind: outcomePullUp, node: child}
}

// IsNoChange reports whether the hook left the node untouched.
func (o Outcome) IsNoChange() bool { return o.kind == outcomeNoChange }

// IsVoid reports whether the node should become a no-op.
func (o Outcome) IsVoid() bool { return o.kind == outcomeVoid }

// Replacement returns the replacement subtree, if any.
func (o Outcome) Replacement() (*Node, bool) {
	return o.node, o.kind == outcomeReplace
}

// Pulled returns the child that must replace the node, if any.
func (o Outcome) Pulled() (*Node, bool) {
	return o.node, o.kind == outcomePullUp
}
