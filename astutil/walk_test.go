// Copyright © 2026 The Mell authors

package astutil_test

import (
	"testing"

	"github.com/mell-lang/mell/astutil"
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *mell.Node {
	t.Helper()
	tree, err := parser.Parse("test.mell", []byte(src), nil)
	require.NoError(t, err)
	return tree
}

func TestWalkVisitsEveryNode(t *testing.T) {
	tree := parse(t, "msg(add(1, @x))")

	var visited []string
	astutil.Walk(tree, func(node, parent *mell.Node, depth int) {
		visited = append(visited, node.V.String())
		if parent == nil {
			assert.Equal(t, 0, depth, "only the root has no parent")
		} else {
			assert.Greater(t, depth, 0)
		}
	})
	// Root placeholder, msg, add, 1, @x.
	assert.Len(t, visited, 5)
	assert.Contains(t, visited, "@x")
}

func TestWalkCalls(t *testing.T) {
	tree := parse(t, "msg(add(1, 2)) msg('b')")

	counts := map[string]int{}
	astutil.WalkCalls(tree, func(call *mell.Node, depth int) {
		counts[astutil.CallName(call)]++
	})
	assert.Equal(t, 2, counts["msg"])
	assert.Equal(t, 1, counts["add"])
	assert.Equal(t, 1, counts[mell.AutoconcatName])
}

func TestCallName(t *testing.T) {
	lit := mell.NewNode(mell.Literal("x"), nil, nil)
	assert.Equal(t, "", astutil.CallName(lit))
	call := mell.NewNode(mell.Call("msg", 0), nil, nil)
	assert.Equal(t, "msg", astutil.CallName(call))
}

func TestDefinedProcedures(t *testing.T) {
	tree := parse(t,
		"proc('_outer', proc('_inner', @m, msg(@m))) msg('x')")
	defs := astutil.DefinedProcedures(tree)
	assert.Equal(t, map[string]bool{"_outer": true, "_inner": true}, defs)
}

func TestLocOf(t *testing.T) {
	tree := parse(t, "msg('x')")
	call := tree.Children[0]
	assert.Equal(t, call.Loc, astutil.LocOf(call))

	orphan := mell.NewNode(mell.Call("sconcat", 1), nil, nil)
	orphan.Append(call)
	assert.Equal(t, call.Loc, astutil.LocOf(orphan), "falls back to the first child")
}
