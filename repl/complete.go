// Copyright © 2026 The Mell authors

package repl

import (
	"strings"

	"github.com/mell-lang/mell/mell"
)

// nameCompleter implements readline.AutoCompleter by enumerating function
// names from the registry the repl compiles against.
type nameCompleter struct {
	registry *mell.Registry
}

func (c *nameCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace,
	// open paren, or comma).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == ',' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	var result [][]rune
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(name, prefix) && name != prefix {
			result = append(result, []rune(name[len(prefix):]))
		}
	}
	return result, len(prefix)
}
