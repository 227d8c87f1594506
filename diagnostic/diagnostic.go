// Copyright © 2026 The Mell authors

// Package diagnostic renders compiler errors and warnings for CLI output.
// It is intentionally independent of the mell/ package so that it can be
// used by any command without creating import cycles.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies the region of source code a diagnostic refers to.
type Span struct {
	File string // path for reading source; display name if unreadable
	Line int    // 1-based line number
	Col  int    // 1-based start column
}

// Diagnostic is a single error, warning, or note with an optional source
// span and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     *Span
	Notes    []string // "= note:" lines
}
