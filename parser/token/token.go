// Copyright © 2026 The Mell authors

// Package token defines source locations shared by the parser, the compiler
// passes, and diagnostic output.
package token

import "fmt"

// Location identifies a position within a source stream.
type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int    // byte offset within the stream
	Line int    // line number (starting at 1 when tracked)
	Col  int    // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// LocationError attaches a source location to an underlying error.
type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
