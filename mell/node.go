// Copyright © 2026 The Mell authors

package mell

import (
	"strings"

	"github.com/mell-lang/mell/parser/token"
)

// FileOptions are per-file compile options.  Every node parsed from the same
// file shares a single FileOptions value.
type FileOptions struct {
	// Strict enables use-before-assignment checking for the file.
	Strict bool
}

// Node is a mutable syntax-tree node.  A node owns its value and its ordered
// children.  Node identity is stable across compiler passes: passes rewrite a
// node's value and children in place rather than replacing the node object,
// because no pass holds a pointer back to a node's parent.  A pass that wants
// to discard a node in favor of one of its children must signal that intent
// to the caller owning the surrounding child list (see the Outcome type).
type Node struct {
	V        *Value
	Children []*Node
	Loc      *token.Location
	Opts     *FileOptions
}

// NewNode returns a node carrying v with no children.
func NewNode(v *Value, loc *token.Location, opts *FileOptions) *Node {
	return &Node{V: v, Loc: loc, Opts: opts}
}

// Append adds children to the end of the node's child list.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Adopt overwrites n's value and children with those of other, keeping n's
// identity and file options.  The location travels with the adopted value so
// later diagnostics point at the surviving code, falling back to n's own
// location when other carries none.
func (n *Node) Adopt(other *Node) {
	n.V = other.V
	n.Children = other.Children
	if other.Loc != nil {
		n.Loc = other.Loc
	}
}

// VoidOut turns n into a no-op node with no children.  Always safe because a
// node may mutate itself.
func (n *Node) VoidOut() {
	n.V = Void()
	n.Children = nil
}

// IsConst reports whether the whole subtree under n has no runtime
// dependency.  Call and variable values are dynamic, so in practice a
// constant subtree is a folded literal.
func (n *Node) IsConst() bool {
	if n.V.IsDynamic() {
		return false
	}
	for _, c := range n.Children {
		if !c.IsConst() {
			return false
		}
	}
	return true
}

// String renders the subtree as mell source text.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeString(&sb)
	return sb.String()
}

func (n *Node) writeString(sb *strings.Builder) {
	if n.V.Kind != KCall {
		sb.WriteString(n.V.String())
		return
	}
	sb.WriteString(n.V.Str)
	sb.WriteString("(")
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.writeString(sb)
	}
	sb.WriteString(")")
}
