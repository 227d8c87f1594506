// Copyright © 2026 The Mell authors

package cmd

import (
	"fmt"
	"os"

	"github.com/mell-lang/mell/astutil"
	"github.com/mell-lang/mell/compiler"
	"github.com/mell-lang/mell/diagnostic"
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser"
	"github.com/mell-lang/mell/parser/token"
	"github.com/spf13/cobra"
)

var (
	checkStrict  bool
	checkQuiet   bool
	checkSummary bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [files]",
	Short: "Compile mell scripts",
	Long: `Compile mell scripts, printing warnings, the first compile error
encountered, and the fully resolved tree of each file.`,
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, path := range args {
			if !checkFile(path) {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func checkFile(path string) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	opts := &mell.FileOptions{Strict: checkStrict}
	tree, err := parser.Parse(path, src, opts)
	if err != nil {
		renderError(err)
		return false
	}
	env := mell.NewCompileEnv(mell.StandardRegistry())
	tree, err = compiler.Optimize(tree, env)
	renderWarnings(env)
	if err != nil {
		renderError(err)
		return false
	}
	if !checkQuiet {
		fmt.Println(tree)
	}
	if checkSummary {
		calls := 0
		astutil.WalkCalls(tree, func(*mell.Node, int) { calls++ })
		procs := astutil.DefinedProcedures(tree)
		fmt.Fprintf(os.Stderr, "%s: %d calls, %d procedures, %d warnings\n",
			path, calls, len(procs), len(env.Warnings()))
	}
	return true
}

func renderError(err error) {
	d := diagnostic.Diagnostic{Severity: diagnostic.SeverityError}
	switch e := err.(type) {
	case *mell.CompileError:
		d.Message = e.Msg
		d.Span = span(e.Loc)
	case *token.LocationError:
		d.Message = e.Err.Error()
		d.Span = span(e.Source)
	default:
		d.Message = err.Error()
	}
	fmt.Fprint(os.Stderr, diagnostic.String(d))
}

func renderWarnings(env *mell.CompileEnv) {
	r := &diagnostic.Renderer{}
	for _, w := range env.Warnings() {
		_ = r.Render(os.Stderr, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Message:  w.Message,
			Span:     span(w.Loc),
		})
	}
}

func span(loc *token.Location) *diagnostic.Span {
	if loc == nil {
		return nil
	}
	return &diagnostic.Span{File: loc.File, Line: loc.Line, Col: loc.Col}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "enable strict initialization checks")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "suppress the resolved tree output")
	checkCmd.Flags().BoolVar(&checkSummary, "summary", false, "print per-file statistics after compiling")
}
