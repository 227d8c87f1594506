// Copyright © 2026 The Mell authors

package mell

import "github.com/mell-lang/mell/parser/token"

type opInfo struct {
	fn         string
	prec       int
	rightAssoc bool
}

// Operator precedence and associativity.  Assignment binds loosest and
// associates to the right; everything else associates to the left.
var operators = map[string]opInfo{
	"=":  {fn: AssignName, prec: 1, rightAssoc: true},
	"==": {fn: "eq", prec: 2},
	"<":  {fn: "lt", prec: 3},
	">":  {fn: "gt", prec: 3},
	"+":  {fn: "add", prec: 4},
	"-":  {fn: "sub", prec: 4},
	"*":  {fn: "mul", prec: 5},
	"/":  {fn: "div", prec: 5},
}

// ResolveAutoconcat structures one placeholder run into a concrete subtree.
// Operator symbols in the run are resolved by precedence and associativity
// into binary calls.  A run with a single surviving item becomes that item; a
// longer run is glued together with sconcat (statement position) or concat
// (expression position, returnSConcat false).  The result never has a
// placeholder at its root, which is what guarantees progress for the
// reduction pass.
func ResolveAutoconcat(children []*Node, returnSConcat bool) (*Node, error) {
	items, err := resolveOperators(children)
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return items[0], nil
	}
	name := ConcatName
	if returnSConcat {
		name = SconcatName
	}
	var loc *token.Location
	var opts *FileOptions
	if len(children) > 0 {
		loc = children[0].Loc
		opts = children[0].Opts
	}
	n := NewNode(Call(name, len(items)), loc, opts)
	n.Append(items...)
	return n, nil
}

func resolveOperators(children []*Node) ([]*Node, error) {
	hasOp := false
	for _, c := range children {
		if c.V.Kind == KSymbol {
			hasOp = true
			break
		}
	}
	if !hasOp {
		return children, nil
	}
	p := &opParser{items: children}
	expr, err := p.parse(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.items) {
		n := p.items[p.pos]
		return nil, CompileErrorf(n.Loc, "unexpected %s in expression", n.V)
	}
	return []*Node{expr}, nil
}

type opParser struct {
	items []*Node
	pos   int
}

func (p *opParser) parse(minPrec int) (*Node, error) {
	left, err := p.operand()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.items) {
		opNode := p.items[p.pos]
		if opNode.V.Kind != KSymbol {
			return nil, CompileErrorf(opNode.Loc, "expected an operator, but got %s", opNode.V)
		}
		op, ok := operators[opNode.V.Str]
		if !ok {
			return nil, CompileErrorf(opNode.Loc, "unknown operator %s", opNode.V.Str)
		}
		if op.prec < minPrec {
			return left, nil
		}
		p.pos++
		next := op.prec + 1
		if op.rightAssoc {
			next = op.prec
		}
		right, err := p.parse(next)
		if err != nil {
			return nil, err
		}
		call := NewNode(Call(op.fn, 2), opNode.Loc, opNode.Opts)
		call.Append(left, right)
		left = call
	}
	return left, nil
}

func (p *opParser) operand() (*Node, error) {
	if p.pos >= len(p.items) {
		last := p.items[len(p.items)-1]
		return nil, CompileErrorf(last.Loc, "expression ends with an operator")
	}
	n := p.items[p.pos]
	if n.V.Kind == KSymbol {
		return nil, CompileErrorf(n.Loc, "unexpected operator %s", n.V.Str)
	}
	p.pos++
	return n, nil
}
