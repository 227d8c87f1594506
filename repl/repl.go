// Copyright © 2026 The Mell authors

// Package repl implements the interactive compile loop behind `mell repl`.
// Each input line is parsed and optimized independently and the resolved tree
// is printed; compile errors and warnings are rendered without ending the
// session.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/mell-lang/mell/compiler"
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser"
)

type config struct {
	stdin  io.ReadCloser
	stdout io.Writer
	strict bool
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout allows overriding the output of the REPL.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithStrict enables strict initialization checks for every input line.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// Run runs the compile loop until EOF.  Every line compiles against a fresh
// environment: procedure definitions do not persist between lines.
func Run(prompt string, opts ...Option) {
	cfg := newConfig(opts...)
	out := cfg.stdout
	if out == nil {
		out = os.Stdout
	}
	registry := mell.StandardRegistry()

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)
	rlCfg := &readline.Config{
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		Stdout:            out,
		Stderr:            out,
		AutoComplete:      &nameCompleter{registry: registry},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	fileOpts := &mell.FileOptions{Strict: cfg.strict}
	for {
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tree, err := parser.Parse("stdin", []byte(line), fileOpts)
		if err != nil {
			renderError(out, err)
			continue
		}
		env := mell.NewCompileEnv(registry)
		tree, err = compiler.Optimize(tree, env)
		renderWarnings(out, env)
		if err != nil {
			renderError(out, err)
			continue
		}
		fmt.Fprintln(out, tree) //nolint:errcheck // best-effort REPL output
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mell_history")
}

// ensureHistoryFilePermissions keeps the history file private: commands typed
// into the repl should not be world readable.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0600) //#nosec G304
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
