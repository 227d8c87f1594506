// Copyright © 2026 The Mell authors

package compiler_test

import (
	"strings"
	"testing"

	"github.com/mell-lang/mell/compiler"
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compile parses and optimizes src as a non-strict file.
func compile(t *testing.T, src string) (*mell.Node, *mell.CompileEnv, error) {
	t.Helper()
	return compileOpts(t, src, &mell.FileOptions{})
}

func compileOpts(t *testing.T, src string, opts *mell.FileOptions) (*mell.Node, *mell.CompileEnv, error) {
	t.Helper()
	tree, err := parser.Parse("test.mell", []byte(src), opts)
	require.NoError(t, err)
	env := mell.NewCompileEnv(mell.StandardRegistry())
	out, err := compiler.Optimize(tree, env)
	return out, env, err
}

func TestOptimizeConstantFolding(t *testing.T) {
	out, env, err := compile(t, "add(mul(3, 4), 2)")
	require.NoError(t, err)
	assert.Equal(t, "14", out.String())
	assert.Empty(t, out.Children, "a folded node carries the literal directly")
	assert.Empty(t, env.Warnings())
}

func TestOptimizeOperatorPrecedence(t *testing.T) {
	out, _, err := compile(t, "3 + 4 * 2")
	require.NoError(t, err)
	assert.Equal(t, "11", out.String())
}

func TestOptimizeOfflineEvaluation(t *testing.T) {
	out, _, err := compile(t, "to_upper('abc')")
	require.NoError(t, err)
	assert.Equal(t, "'ABC'", out.String())
}

func TestOptimizeDynamicArgumentsStayUnfolded(t *testing.T) {
	out, _, err := compile(t, "add(@x, 2)")
	require.NoError(t, err)
	assert.Equal(t, "add(@x, 2)", out.String())
}

func TestOptimizeFoldErrorBecomesCompileError(t *testing.T) {
	_, _, err := compile(t, "div(1, 0)")
	require.Error(t, err)
	var ce *mell.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Msg, "division by zero")
	require.NotNil(t, ce.Loc)
	assert.Equal(t, 1, ce.Loc.Col)
}

func TestOptimizeIdempotent(t *testing.T) {
	out, _, err := compile(t, "msg('a') msg(@b) if(gt(@x, 1), msg('c'))")
	require.NoError(t, err)
	first := out.String()

	env := mell.NewCompileEnv(mell.StandardRegistry())
	again, err := compiler.Optimize(out, env)
	require.NoError(t, err)
	assert.Equal(t, first, again.String())
	assert.Empty(t, env.Warnings())
}

func TestOptimizeEmptyProgram(t *testing.T) {
	out, _, err := compile(t, "")
	require.NoError(t, err)
	assert.Equal(t, "void", out.String())
}

func TestOptimizeStatementGlue(t *testing.T) {
	out, _, err := compile(t, "msg('a') msg('b')")
	require.NoError(t, err)
	assert.Equal(t, "sconcat(msg('a'), msg('b'))", out.String())
}

func TestOptimizeExpressionGrouping(t *testing.T) {
	// cc groups juxtaposed expressions in expression position, so the run
	// glues with concat rather than sconcat.
	out, _, err := compile(t, "cc(msg('a') msg('b'))")
	require.NoError(t, err)
	assert.Equal(t, "concat(msg('a'), msg('b'))", out.String())
}

func TestOptimizeConcatFolding(t *testing.T) {
	out, _, err := compile(t, "concat('foo', 'bar')")
	require.NoError(t, err)
	assert.Equal(t, "'foobar'", out.String())
}

func TestOptimizeUnreachableCode(t *testing.T) {
	src := "concat(die(), msg('a'), msg('b'))"
	out, env, err := compile(t, src)
	require.NoError(t, err)
	assert.Equal(t, "die()", out.String())

	warnings := env.Warnings()
	require.Len(t, warnings, 1, "exactly one warning for the whole dropped run")
	assert.Equal(t, "Unreachable code. Consider removing this code.", warnings[0].Message)
	require.NotNil(t, warnings[0].Loc)
	assert.Equal(t, 1, warnings[0].Loc.Line)
	assert.Equal(t, strings.Index(src, "msg('a')")+1, warnings[0].Loc.Col,
		"warning points at the first dropped sibling")
}

func TestOptimizeTerminalShieldedByBranch(t *testing.T) {
	// A die inside a branch arm proves nothing about statements after the
	// branch, so nothing is dropped and no warning is emitted.
	out, env, err := compile(t, "if(@x, die()) msg('after')")
	require.NoError(t, err)
	assert.Equal(t, "sconcat(if(@x, die()), msg('after'))", out.String())
	assert.Empty(t, env.Warnings())
}

func TestOptimizeBranchConstantCondition(t *testing.T) {
	out, _, err := compile(t, "if(gt(2, 1), msg('yes'), msg('no'))")
	require.NoError(t, err)
	assert.Equal(t, "msg('yes')", out.String())

	out, _, err = compile(t, "if(gt(1, 2), msg('yes'), msg('no'))")
	require.NoError(t, err)
	assert.Equal(t, "msg('no')", out.String())

	out, _, err = compile(t, "if(gt(1, 2), msg('yes'))")
	require.NoError(t, err)
	assert.Equal(t, "void", out.String(), "a false condition with no alternative is a no-op")
}

func TestOptimizeBranchDynamicConditionKept(t *testing.T) {
	out, _, err := compile(t, "if(gt(@x, 1), msg('yes'), msg('no'))")
	require.NoError(t, err)
	assert.Equal(t, "if(gt(@x, 1), msg('yes'), msg('no'))", out.String())
}

func TestOptimizeBranchArity(t *testing.T) {
	_, _, err := compile(t, "if(@x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "if expects 2 or 3 arguments")
}

func TestOptimizePullUpThroughNestedWrappers(t *testing.T) {
	// The innermost message climbs three wrapper levels; its siblings keep
	// their positions.
	out, _, err := compile(t, "msg('x') concat(concat(concat(msg('y')))) msg('z')")
	require.NoError(t, err)
	assert.Equal(t, "sconcat(msg('x'), msg('y'), msg('z'))", out.String())
}

func TestOptimizePullUpReplacesRoot(t *testing.T) {
	out, _, err := compile(t, "concat(concat(msg('only')))")
	require.NoError(t, err)
	assert.Equal(t, "msg('only')", out.String())
}

func TestOptimizeAssignShape(t *testing.T) {
	out, _, err := compile(t, "@a = 1")
	require.NoError(t, err)
	assert.Equal(t, "assign(@a, 1)", out.String())

	_, _, err = compile(t, "assign(1, 2)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assign expects a variable")
}

func TestOptimizeAssignmentChains(t *testing.T) {
	out, _, err := compile(t, "@a = @b = 1")
	require.NoError(t, err)
	assert.Equal(t, "assign(@a, assign(@b, 1))", out.String())
}
