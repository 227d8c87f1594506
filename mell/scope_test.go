// Copyright © 2026 The Mell authors

package mell_test

import (
	"testing"

	"github.com/mell-lang/mell/mell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeShadowing(t *testing.T) {
	s := mell.NewScopeStack()
	assert.False(t, s.Set("x", mell.Int(1)))
	s.PushScope()
	assert.True(t, s.Set("x", mell.Int(2)), "outer binding is overwritten, not shadowed")
	assert.Equal(t, "2", s.Get("x").Str)
	s.PopScope()
	assert.Equal(t, "2", s.Get("x").Str)

	s.PushScope()
	s.PushScope()
	// A fresh name binds in the innermost frame and disappears with it.
	assert.False(t, s.Set("y", mell.Int(3)))
	assert.Equal(t, "3", s.Get("y").Str)
	s.PopScope()
	assert.Equal(t, "", s.Get("y").Str)
	s.PopScope()
}

func TestScopeGetDefault(t *testing.T) {
	s := mell.NewScopeStack()
	v := s.Get("missing")
	require.NotNil(t, v)
	assert.Equal(t, mell.KLiteral, v.Kind)
	assert.Equal(t, "", v.Str)
}

func TestScopeSetResolvesReference(t *testing.T) {
	s := mell.NewScopeStack()
	s.Set("a", mell.Int(7))
	// @b = @a stores the value of @a; a stored binding is never itself a
	// reference.
	s.Set("b", mell.Variable("a"))
	b := s.Get("b")
	assert.Equal(t, mell.KLiteral, b.Kind)
	assert.Equal(t, "7", b.Str)

	s.Set("a", mell.Int(8))
	assert.Equal(t, "7", s.Get("b").Str, "b holds a value, not a live reference")
}

func TestScopeCloneIndependence(t *testing.T) {
	a := mell.NewScopeStack()
	a.Set("x", mell.Int(1))
	a.PushScope()
	a.Set("y", mell.Int(2))

	b := a.Clone()
	b.Set("x", mell.Int(99))
	b.Set("y", mell.Int(98))
	assert.Equal(t, "1", a.Get("x").Str)
	assert.Equal(t, "2", a.Get("y").Str)
	assert.Equal(t, "99", b.Get("x").Str)
	assert.Equal(t, "98", b.Get("y").Str)
}

func TestScopeDestructorRunsOncePerFrame(t *testing.T) {
	s := mell.NewScopeStack()
	s.PushScope()
	count := 0
	v := mell.Literal("resource")
	v.SetDestructor(func() { count++ })
	s.Set("r", v)
	s.PopScope()
	assert.Equal(t, 1, count)
	// The remaining frame does not hold the value anymore.
	s.PushScope()
	s.PopScope()
	assert.Equal(t, 1, count)
}

func TestScopeCloneDestructorIndependence(t *testing.T) {
	count := 0
	a := mell.NewScopeStack()
	v := mell.Literal("resource")
	v.SetDestructor(func() { count++ })
	a.Set("r", v)

	b := a.Clone()
	b.PopScope()
	assert.Equal(t, 1, count, "the clone's copy destructs independently")
	a.PopScope()
	assert.Equal(t, 2, count)
}

func TestScopePopEmptyPanics(t *testing.T) {
	s := mell.NewScopeStack()
	s.PopScope()
	assert.Panics(t, func() { s.PopScope() })
}

func TestScopeKeySet(t *testing.T) {
	s := mell.NewScopeStack()
	s.Set("b", mell.Int(1))
	s.PushScope()
	s.Set("a", mell.Int(2))
	s.Set("b", mell.Int(3))
	assert.Equal(t, []string{"a", "b"}, s.KeySet())
}
