// Copyright © 2026 The Mell authors

package compiler_test

import (
	"testing"

	"github.com/mell-lang/mell/melltest"
)

func TestPipeline(t *testing.T) {
	melltest.RunTestSuite(t, melltest.TestSuite{
		{Name: "constants", TestSequence: melltest.TestSequence{
			{Expr: "add(1, 2)", Result: "3"},
			{Expr: "1 + 2 * 3", Result: "7"},
			{Expr: "concat('a', to_upper('b'))", Result: "'aB'"},
			{Expr: "not(eq(1, 2))", Result: "true"},
			{Expr: "eq('a', 'a')", Result: "true"},
			{Expr: "lt(1, 2)", Result: "true"},
		}},
		{Name: "sequencing", TestSequence: melltest.TestSequence{
			{Expr: "", Result: "void"},
			{Expr: "msg('a')", Result: "msg('a')"},
			{Expr: "msg('a') msg('b')", Result: "sconcat(msg('a'), msg('b'))"},
			{Expr: "concat(msg('a'))", Result: "msg('a')"},
		}},
		{Name: "branches", TestSequence: melltest.TestSequence{
			{Expr: "if(1, msg('y'), msg('n'))", Result: "msg('y')"},
			{Expr: "if(0, msg('y'), msg('n'))", Result: "msg('n')"},
			{Expr: "if(0, msg('y'))", Result: "void"},
			{Expr: "if(@x, msg('y'))", Result: "if(@x, msg('y'))"},
			{Expr: "if(1 == 1, msg('y'))", Result: "msg('y')"},
		}},
		{Name: "unreachable code", TestSequence: melltest.TestSequence{
			{
				Expr:     "msg('a') die() msg('b') msg('c')",
				Result:   "sconcat(msg('a'), die())",
				Warnings: []string{"Unreachable code"},
			},
		}},
		{Name: "procedures", TestSequence: melltest.TestSequence{
			{
				Expr:   "proc('_id', @x, @x) _id(5)",
				Result: "sconcat(proc('_id', @x, @x), _id(5))",
			},
			{Expr: "_undefined()", Err: "unknown procedure _undefined"},
			{Expr: "proc('_p', @a = @b, @a)", Err: "Default values in a procedure must be constant"},
		}},
		{Name: "strict mode", Strict: true, TestSequence: melltest.TestSequence{
			{Expr: "@a = 1 msg(@a)", Result: "sconcat(assign(@a, 1), msg(@a))"},
			{Expr: "msg(@a)", Err: "use of variable @a before it is assigned"},
		}},
	})
}

func BenchmarkOptimize(b *testing.B) {
	melltest.RunBenchmark(b, `
proc('_fib', @n, if(@n < 2, @n, _fib(@n - 1) + _fib(@n - 2)))
msg(_fib(10))
msg(add(mul(3, 4), 2) + 1)
`)
}
