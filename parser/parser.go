// Copyright © 2026 The Mell authors

/*
Package parser reads mell source into unresolved syntax trees.

	script  := <run>
	run     := <expr>*
	expr    := <operand> (<operator> <operand>)*
	operand := <call> | <string> | <number> | <variable> | '(' <expr> ')'
	call    := <ident> '(' <arg> (',' <arg>)* ')'
	arg     := <expr>+
	variable := '@' <ident>
	operator := '==' | '=' | '<' | '>' | '+' | '-' | '*' | '/'

Operator runs and juxtaposed expressions are left unstructured: the parser
emits them as placeholder (__autoconcat__) nodes for the compiler's first
optimization pass to resolve.
*/
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// Parse parses src into a tree rooted at a placeholder node holding the
// file's statements.  Every node produced shares opts.
func Parse(name string, src []byte, opts *mell.FileOptions) (*mell.Node, error) {
	if opts == nil {
		opts = &mell.FileOptions{}
	}
	b := &builder{file: name, lines: newLineIndex(src), opts: opts}
	parser := newParser()
	s := parsec.NewScanner(src)

	var stmts []*mell.Node
	root, s := parser(s)
	for root != nil {
		n, err := b.node(root)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		rest, _ := s.Match(`.{1,16}`)
		if len(rest) > 15 {
			rest = append(rest[:15:15], []byte("...")...)
		}
		return nil, &token.LocationError{
			Err:    fmt.Errorf("unexpected source text possibly starting: %s", rest),
			Source: b.loc(s.GetCursor()),
		}
	}
	tree := mell.NewNode(mell.Call(mell.AutoconcatName, len(stmts)), b.loc(0), opts)
	tree.Append(stmts...)
	return tree, nil
}

func newParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	comma := parsec.Atom(",", "COMMA")
	number := parsec.Token(`[+-]?[0-9]+(?:[.][0-9]+)?`, "NUMBER")
	str := parsec.Token(`'(?:[^'\\]|\\.)*'`, "STRING")
	variable := parsec.Token(`@[a-zA-Z_][a-zA-Z0-9_]*`, "VARIABLE")
	ident := parsec.Token(`[a-zA-Z_][a-zA-Z0-9_]*`, "IDENT")
	operator := parsec.Token(`==|[=<>+\-*/]`, "OPERATOR")

	var expr parsec.Parser // forward declaration allows for recursive parsing
	arg := parsec.Many(astRun, &expr)
	args := parsec.Kleene(nil, arg, comma)
	call := parsec.And(astCall, ident, openP, args, closeP)
	group := parsec.And(astGroup, openP, &expr, closeP)
	operand := parsec.OrdChoice(astFirst, call, str, number, variable, group)
	opTail := parsec.Kleene(nil, parsec.And(astOpTerm, operator, operand))
	expr = parsec.And(astExpr, operand, opTail)
	return expr
}

type nodeType uint

const (
	nInvalid nodeType = iota
	nCall
	nRun
	nOpTerm
	nExpr
)

// ast is the intermediate shape produced by parsec callbacks before
// conversion to mell nodes.
type ast struct {
	typ      nodeType
	term     *parsec.Terminal
	children []parsec.ParsecNode
}

func astCall(ns []parsec.ParsecNode) parsec.ParsecNode {
	if len(ns) < 4 {
		return nil
	}
	term, ok := ns[0].(*parsec.Terminal)
	if !ok {
		return nil
	}
	return &ast{typ: nCall, term: term, children: kleeneNodes(ns[2])}
}

func astGroup(ns []parsec.ParsecNode) parsec.ParsecNode {
	if len(ns) < 3 {
		return nil
	}
	return ns[1]
}

func astFirst(ns []parsec.ParsecNode) parsec.ParsecNode {
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}

func astOpTerm(ns []parsec.ParsecNode) parsec.ParsecNode {
	if len(ns) < 2 {
		return nil
	}
	term, ok := ns[0].(*parsec.Terminal)
	if !ok {
		return nil
	}
	return &ast{typ: nOpTerm, term: term, children: ns[1:2]}
}

func astExpr(ns []parsec.ParsecNode) parsec.ParsecNode {
	if len(ns) < 2 {
		return nil
	}
	tail := kleeneNodes(ns[1])
	if len(tail) == 0 {
		return ns[0]
	}
	return &ast{typ: nExpr, children: append([]parsec.ParsecNode{ns[0]}, tail...)}
}

func astRun(ns []parsec.ParsecNode) parsec.ParsecNode {
	if len(ns) == 0 {
		return nil
	}
	if len(ns) == 1 {
		return ns[0]
	}
	return &ast{typ: nRun, children: ns}
}

func kleeneNodes(pn parsec.ParsecNode) []parsec.ParsecNode {
	ns, ok := pn.([]parsec.ParsecNode)
	if !ok {
		return nil
	}
	return ns
}

// builder converts parsec output into mell nodes with source locations.
type builder struct {
	file  string
	lines lineIndex
	opts  *mell.FileOptions
}

func (b *builder) node(pn parsec.ParsecNode) (*mell.Node, error) {
	switch v := pn.(type) {
	case *parsec.Terminal:
		loc := b.loc(v.Position)
		switch v.Name {
		case "NUMBER":
			return mell.NewNode(mell.Literal(v.Value), loc, b.opts), nil
		case "STRING":
			return mell.NewNode(mell.Literal(unquote(v.Value)), loc, b.opts), nil
		case "VARIABLE":
			return mell.NewNode(mell.Variable(v.Value[1:]), loc, b.opts), nil
		case "OPERATOR":
			return mell.NewNode(mell.Symbol(v.Value), loc, b.opts), nil
		}
		return nil, &token.LocationError{
			Err:    fmt.Errorf("unexpected token %s", v.Value),
			Source: loc,
		}
	case *ast:
		return b.astNode(v)
	}
	return nil, fmt.Errorf("%s: unexpected parse result", b.file)
}

func (b *builder) astNode(v *ast) (*mell.Node, error) {
	switch v.typ {
	case nCall:
		children, err := b.nodes(v.children)
		if err != nil {
			return nil, err
		}
		n := mell.NewNode(mell.Call(v.term.Value, len(children)), b.loc(v.term.Position), b.opts)
		return n.Append(children...), nil
	case nExpr:
		// An operator run stays unstructured until autoconcat reduction.
		var items []*mell.Node
		for i, child := range v.children {
			if i == 0 {
				n, err := b.node(child)
				if err != nil {
					return nil, err
				}
				items = append(items, n)
				continue
			}
			opTerm, ok := child.(*ast)
			if !ok || opTerm.typ != nOpTerm {
				return nil, fmt.Errorf("%s: unexpected parse result", b.file)
			}
			op, err := b.node(opTerm.term)
			if err != nil {
				return nil, err
			}
			operand, err := b.node(opTerm.children[0])
			if err != nil {
				return nil, err
			}
			items = append(items, op, operand)
		}
		n := mell.NewNode(mell.Call(mell.AutoconcatName, len(items)), items[0].Loc, b.opts)
		return n.Append(items...), nil
	case nRun:
		items, err := b.nodes(v.children)
		if err != nil {
			return nil, err
		}
		if len(items) == 1 {
			return items[0], nil
		}
		n := mell.NewNode(mell.Call(mell.AutoconcatName, len(items)), items[0].Loc, b.opts)
		return n.Append(items...), nil
	}
	return nil, fmt.Errorf("%s: unexpected parse result", b.file)
}

func (b *builder) nodes(pns []parsec.ParsecNode) ([]*mell.Node, error) {
	out := make([]*mell.Node, 0, len(pns))
	for _, pn := range pns {
		n, err := b.node(pn)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (b *builder) loc(pos int) *token.Location {
	line, col := b.lines.locate(pos)
	return &token.Location{File: b.file, Pos: pos, Line: line, Col: col}
}

var stringUnquoter = strings.NewReplacer(`\'`, `'`, `\\`, `\`)

func unquote(text string) string {
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	return stringUnquoter.Replace(text)
}

// lineIndex maps byte offsets to line starts.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range src {
		if b == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (li lineIndex) locate(pos int) (line, col int) {
	i := sort.Search(len(li), func(i int) bool { return li[i] > pos }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, pos - li[i] + 1
}
