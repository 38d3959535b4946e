// Command odcalc compiles and evaluates OD matrix formulas from the command
// line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
