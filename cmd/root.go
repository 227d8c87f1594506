// Copyright © 2026 The Mell authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	cfgFile   string
	verbosity int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mell",
	Short: "Mell — compiler for the mell scripting language",
	Long: `Mell compiles and optimizes mell scripts, a small dynamically-typed
scripting language.

Getting started:
  mell check file.mell          Compile a script and print the resolved tree
  mell check --strict file.mell Compile with strict initialization checks
  mell repl                     Compile expressions interactively

Language overview:
  Scripts are sequences of expressions.  Functions are called as name(args).
  Variables are written @name and assigned with @name = value.  Procedures
  are defined with proc('_name', @arg, body) and may call themselves
  recursively.  Infix operators (+ - * / == < > =) desugar to function calls
  during compilation.

The compiler resolves operator runs, removes unreachable code, folds constant
expressions, registers and resolves procedures (rewriting self-recursive tail
calls to an iterative form), and enforces strict-mode initialization rules.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mell.yaml)")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity (0-2)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".mell" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".mell")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	commonlog.Configure(verbosity, nil)
}
