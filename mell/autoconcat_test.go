// Copyright © 2026 The Mell authors

package mell_test

import (
	"testing"

	"github.com/mell-lang/mell/mell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(items ...*mell.Node) []*mell.Node { return items }

func lit(text string) *mell.Node  { return mell.NewNode(mell.Literal(text), nil, nil) }
func sym(text string) *mell.Node  { return mell.NewNode(mell.Symbol(text), nil, nil) }
func vref(name string) *mell.Node { return mell.NewNode(mell.Variable(name), nil, nil) }

func TestResolveAutoconcatSingleItem(t *testing.T) {
	n, err := mell.ResolveAutoconcat(run(lit("1")), true)
	require.NoError(t, err)
	assert.Equal(t, "1", n.String(), "a single item is returned bare, not wrapped")
}

func TestResolveAutoconcatStatementRun(t *testing.T) {
	n, err := mell.ResolveAutoconcat(run(lit("a"), lit("b")), true)
	require.NoError(t, err)
	assert.Equal(t, "sconcat('a', 'b')", n.String())

	n, err = mell.ResolveAutoconcat(run(lit("a"), lit("b")), false)
	require.NoError(t, err)
	assert.Equal(t, "concat('a', 'b')", n.String())
}

func TestResolveAutoconcatPrecedence(t *testing.T) {
	// 3 + 4 * 2 parses as add(3, mul(4, 2)).
	n, err := mell.ResolveAutoconcat(run(lit("3"), sym("+"), lit("4"), sym("*"), lit("2")), true)
	require.NoError(t, err)
	assert.Equal(t, "add(3, mul(4, 2))", n.String())

	// 3 * 4 + 2 parses as add(mul(3, 4), 2).
	n, err = mell.ResolveAutoconcat(run(lit("3"), sym("*"), lit("4"), sym("+"), lit("2")), true)
	require.NoError(t, err)
	assert.Equal(t, "add(mul(3, 4), 2)", n.String())
}

func TestResolveAutoconcatLeftAssociativity(t *testing.T) {
	n, err := mell.ResolveAutoconcat(run(lit("10"), sym("-"), lit("4"), sym("-"), lit("3")), true)
	require.NoError(t, err)
	assert.Equal(t, "sub(sub(10, 4), 3)", n.String())
}

func TestResolveAutoconcatAssignmentRightAssociativity(t *testing.T) {
	// @a = @b = 1 parses as assign(@a, assign(@b, 1)).
	n, err := mell.ResolveAutoconcat(run(vref("a"), sym("="), vref("b"), sym("="), lit("1")), true)
	require.NoError(t, err)
	assert.Equal(t, "assign(@a, assign(@b, 1))", n.String())
}

func TestResolveAutoconcatTrailingOperator(t *testing.T) {
	_, err := mell.ResolveAutoconcat(run(lit("1"), sym("+")), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expression ends with an operator")
}

func TestResolveAutoconcatLeadingOperator(t *testing.T) {
	_, err := mell.ResolveAutoconcat(run(sym("*"), lit("1")), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected operator *")
}

func TestResolveAutoconcatUnknownOperator(t *testing.T) {
	_, err := mell.ResolveAutoconcat(run(lit("1"), sym("%"), lit("2")), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator %")
}
