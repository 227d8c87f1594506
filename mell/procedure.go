// Copyright © 2026 The Mell authors

package mell

import "github.com/mell-lang/mell/parser/token"

// Parameter is a single procedure formal: a bare variable name, optionally
// bound to a constant default.
type Parameter struct {
	Name    string
	Default *Value // nil when the parameter has no default
}

// Procedure is a user-defined procedure.  A procedure lives in a compile-time
// procedure scope keyed by name and is visible to itself as soon as it is
// registered, before its body is analyzed, which is what makes recursion
// resolvable.
type Procedure struct {
	Name   string
	Params []Parameter
	Body   *Node
	Loc    *token.Location
}
