// Copyright © 2026 The Mell authors

package main

import "github.com/mell-lang/mell/cmd"

func main() {
	cmd.Execute()
}
