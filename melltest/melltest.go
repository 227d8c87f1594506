// Copyright © 2026 The Mell authors

// Package melltest provides a table-driven harness for compiler tests: each
// entry compiles a mell source snippet against a fresh environment and checks
// the rendered tree, the reported error, and accumulated warnings.
package melltest

import (
	"log"
	"strings"
	"testing"

	"github.com/mell-lang/mell/compiler"
	"github.com/mell-lang/mell/diagnostic"
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser"
)

// TestSequence is a sequence of mell sources which are compiled sequentially,
// each against a fresh CompileEnv.
type TestSequence []struct {
	Expr     string   // a mell source snippet
	Result   string   // the rendered resolved tree, ignored when Err is set
	Err      string   // a fragment of the expected compile error
	Warnings []string // fragments of the expected warnings, in emission order
}

// TestSuite is a set of named TestSequences.
type TestSuite []struct {
	Name   string
	Strict bool
	TestSequence
}

// RunTestSuite compiles each TestSequence in tests on isolated environments.
// Warnings render through the diagnostic renderer into the test log.
func RunTestSuite(t *testing.T, tests TestSuite) {
	logger := NewLogger(t)
	defer logger.Flush()
	renderer := &diagnostic.Renderer{}
	for i, test := range tests {
		log.Printf("test %d -- %s", i, test.Name)
		for j, expr := range test.TestSequence {
			opts := &mell.FileOptions{Strict: test.Strict}
			tree, err := parser.Parse("test.mell", []byte(expr.Expr), opts)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			env := mell.NewCompileEnv(mell.StandardRegistry())
			tree, err = compiler.Optimize(tree, env)
			if expr.Err != "" {
				if err == nil {
					t.Errorf("test %d %q: expr %d: expected error containing %q (got none)",
						i, test.Name, j, expr.Err)
				} else if !strings.Contains(err.Error(), expr.Err) {
					t.Errorf("test %d %q: expr %d: expected error containing %q (got %q)",
						i, test.Name, j, expr.Err, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("test %d %q: expr %d: compile error: %v", i, test.Name, j, err)
				continue
			}
			if result := tree.String(); result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)",
					i, test.Name, j, expr.Result, result)
			}
			warnings := env.Warnings()
			for _, warning := range warnings {
				_ = renderer.Render(logger, warningDiag(warning))
			}
			if len(warnings) != len(expr.Warnings) {
				t.Errorf("test %d %q: expr %d: expected %d warnings (got %d)",
					i, test.Name, j, len(expr.Warnings), len(warnings))
				continue
			}
			for k, want := range expr.Warnings {
				if !strings.Contains(warnings[k].Message, want) {
					t.Errorf("test %d %q: expr %d: warning %d: expected %q (got %q)",
						i, test.Name, j, k, want, warnings[k].Message)
				}
			}
		}
	}
}

func warningDiag(w *mell.Warning) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Message:  w.Message,
	}
	if w.Loc != nil {
		d.Span = &diagnostic.Span{File: w.Loc.File, Line: w.Loc.Line, Col: w.Loc.Col}
	}
	return d
}

// RunBenchmark runs a standard benchmark that parses and compiles source on
// every iteration.  Compilation mutates the tree in place, so each iteration
// must parse its own copy.
func RunBenchmark(b *testing.B, source string) {
	for i := 0; i < b.N; i++ {
		tree, err := parser.Parse("benchmark.mell", []byte(source), nil)
		if err != nil {
			b.Fatalf("parse error: %v", err)
		}
		env := mell.NewCompileEnv(mell.StandardRegistry())
		if _, err := compiler.Optimize(tree, env); err != nil {
			b.Fatalf("compile error: %v", err)
		}
	}
}
