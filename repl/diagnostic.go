// Copyright © 2026 The Mell authors

package repl

import (
	"io"

	"github.com/mell-lang/mell/diagnostic"
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser/token"
)

// renderError renders a compile or parse error with the diagnostic renderer.
// Repl input comes from stdin rather than files, so the span degrades to a
// bare location when line information is missing.
func renderError(w io.Writer, err error) {
	r := &diagnostic.Renderer{}
	_ = r.Render(w, errorToDiag(err))
}

func renderWarnings(w io.Writer, env *mell.CompileEnv) {
	r := &diagnostic.Renderer{}
	for _, warning := range env.Warnings() {
		_ = r.Render(w, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Message:  warning.Message,
			Span:     locSpan(warning.Loc),
		})
	}
}

// errorToDiag converts a compiler error to a Diagnostic for display.
func errorToDiag(err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{Severity: diagnostic.SeverityError}
	switch e := err.(type) {
	case *mell.CompileError:
		d.Message = e.Msg
		d.Span = locSpan(e.Loc)
	case *token.LocationError:
		d.Message = e.Err.Error()
		d.Span = locSpan(e.Source)
	default:
		d.Message = err.Error()
	}
	return d
}

func locSpan(loc *token.Location) *diagnostic.Span {
	if loc == nil {
		return nil
	}
	return &diagnostic.Span{File: loc.File, Line: loc.Line, Col: loc.Col}
}
