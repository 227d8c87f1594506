// Copyright © 2026 The Mell authors

package mell_test

import (
	"testing"

	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvProcedureScopes(t *testing.T) {
	env := mell.NewCompileEnv(mell.StandardRegistry())
	env.AddProcedure(&mell.Procedure{Name: "_base"})

	env.PushProcedureScope()
	env.AddProcedure(&mell.Procedure{Name: "_inner"})

	_, err := env.GetProcedure("_base", nil)
	assert.NoError(t, err, "outer definitions stay visible in nested scopes")
	_, err = env.GetProcedure("_inner", nil)
	assert.NoError(t, err)

	env.PopProcedureScope()
	_, err = env.GetProcedure("_inner", nil)
	require.Error(t, err, "definitions from a popped scope are discarded")
	var ce *mell.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "unknown procedure _inner", ce.Msg)

	_, err = env.GetProcedure("_base", nil)
	assert.NoError(t, err, "the base scope survives across passes")
}

func TestEnvProcedureShadowing(t *testing.T) {
	env := mell.NewCompileEnv(mell.StandardRegistry())
	outer := &mell.Procedure{Name: "_p"}
	env.AddProcedure(outer)
	env.PushProcedureScope()
	inner := &mell.Procedure{Name: "_p"}
	env.AddProcedure(inner)

	p, err := env.GetProcedure("_p", nil)
	require.NoError(t, err)
	assert.Same(t, inner, p, "the innermost definition wins")

	env.PopProcedureScope()
	p, err = env.GetProcedure("_p", nil)
	require.NoError(t, err)
	assert.Same(t, outer, p)
}

func TestEnvPopBaseScopePanics(t *testing.T) {
	env := mell.NewCompileEnv(mell.StandardRegistry())
	assert.Panics(t, func() { env.PopProcedureScope() })
}

func TestEnvWarningsAccumulate(t *testing.T) {
	env := mell.NewCompileEnv(mell.StandardRegistry())
	loc := &token.Location{File: "a.mell", Line: 3, Col: 7}
	env.CompilerWarning("first", loc)
	env.CompilerWarning("second", nil)

	warnings := env.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "first", warnings[0].Message)
	assert.Same(t, loc, warnings[0].Loc)
	assert.Equal(t, "second", warnings[1].Message)
	assert.Nil(t, warnings[1].Loc)
}

func TestEnvStartPassWithoutProfiler(t *testing.T) {
	env := mell.NewCompileEnv(mell.StandardRegistry())
	stop := env.StartPass("any", nil)
	require.NotNil(t, stop)
	stop()
}
