// Copyright © 2026 The Mell authors

// Package astutil provides shared walking utilities for mell syntax trees.
package astutil

import (
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser/token"
)

// Walk calls fn for every node in the tree, depth-first.
// parent is nil for the root.
func Walk(root *mell.Node, fn func(node *mell.Node, parent *mell.Node, depth int)) {
	walkNode(root, nil, 0, fn)
}

func walkNode(node *mell.Node, parent *mell.Node, depth int, fn func(*mell.Node, *mell.Node, int)) {
	if node == nil {
		return
	}
	fn(node, parent, depth)
	for _, child := range node.Children {
		walkNode(child, node, depth+1, fn)
	}
}

// WalkCalls calls fn for every call node in the tree.
func WalkCalls(root *mell.Node, fn func(call *mell.Node, depth int)) {
	Walk(root, func(node *mell.Node, _ *mell.Node, depth int) {
		if node.V.Kind == mell.KCall {
			fn(node, depth)
		}
	})
}

// CallName returns the function name of a call node, or "".
func CallName(node *mell.Node) string {
	if node.V.Kind != mell.KCall {
		return ""
	}
	return node.V.Str
}

// ArgCount returns the number of arguments of a call node.
func ArgCount(node *mell.Node) int {
	return len(node.Children)
}

// DefinedProcedures returns the set of procedure names defined anywhere in
// the tree.  The result is file-global, matching how the compiler registers
// definitions.
func DefinedProcedures(root *mell.Node) map[string]bool {
	defs := make(map[string]bool)
	WalkCalls(root, func(call *mell.Node, depth int) {
		if CallName(call) != mell.ProcName || len(call.Children) < 2 {
			return
		}
		if name := call.Children[0]; name.V.Kind == mell.KLiteral {
			defs[name.V.Str] = true
		}
	})
	return defs
}

// LocOf returns the best source location for a node.
// Prefers the node's own location, falls back to the first child's.
func LocOf(node *mell.Node) *token.Location {
	if node.Loc != nil && node.Loc.Line > 0 {
		return node.Loc
	}
	if len(node.Children) > 0 && node.Children[0].Loc != nil {
		return node.Children[0].Loc
	}
	return node.Loc
}
