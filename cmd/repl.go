// Copyright © 2026 The Mell authors

package cmd

import (
	"github.com/mell-lang/mell/repl"
	"github.com/spf13/cobra"
)

var replStrict bool

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Compile expressions interactively",
	Long: `Read expressions from the terminal, compile each one, and print the
resolved tree.  Compile errors and warnings are reported without ending the
session.`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.Run("mell> ", repl.WithStrict(replStrict))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replStrict, "strict", false, "enable strict initialization checks")
}
