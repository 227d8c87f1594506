// Copyright © 2026 The Mell authors

package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Renderer formats diagnostics as compact annotated lines.
type Renderer struct {
	// Width bounds the rendered message width.  Zero means DefaultWidth.
	Width int
}

// DefaultWidth is the wrap width used when a Renderer does not set one.
const DefaultWidth = 100

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}
	header := fmt.Sprintf("%s: %s", d.Severity, d.Message)
	if _, err := io.WriteString(w, wordwrap.String(header, width)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if d.Span != nil {
		loc := d.Span.File
		if d.Span.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Span.Line)
			if d.Span.Col > 0 {
				loc = fmt.Sprintf("%s:%d", loc, d.Span.Col)
			}
		}
		if _, err := fmt.Fprintf(w, "  --> %s\n", loc); err != nil {
			return err
		}
	}
	for _, note := range d.Notes {
		wrapped := wordwrap.String("= note: "+note, width-3)
		if _, err := io.WriteString(w, indent.String(wrapped, 3)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// String renders d to a string using default options.
func String(d Diagnostic) string {
	var sb strings.Builder
	r := &Renderer{}
	_ = r.Render(&sb, d)
	return sb.String()
}
