// Copyright © 2026 The Mell authors

package mell

import (
	"fmt"

	"github.com/mell-lang/mell/parser/token"
)

// CompileError is a fatal compilation failure.  The first CompileError
// encountered in pass order aborts the whole optimization; no partial tree is
// returned to the caller.
type CompileError struct {
	Msg string
	Loc *token.Location
}

func (e *CompileError) Error() string {
	if e.Loc == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// CompileErrorf builds a CompileError at loc.
func CompileErrorf(loc *token.Location, format string, v ...interface{}) *CompileError {
	return &CompileError{Msg: fmt.Sprintf(format, v...), Loc: loc}
}

// WrapCompileError converts a runtime-level failure raised by a rewrite or
// fold hook into a CompileError at loc.  A CompileError passes through
// unchanged so that hook-internal locations are preserved.
func WrapCompileError(err error, loc *token.Location) *CompileError {
	if ce, ok := err.(*CompileError); ok {
		return ce
	}
	return &CompileError{Msg: err.Error(), Loc: loc}
}
