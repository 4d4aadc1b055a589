// Command xoconf lints JavaScript files with ESLint, resolving options from
// flags, XO_* environment variables and the project manifest, and running
// the engine once per group of files that share a configuration.
//
// Usage:
//
//	xoconf [flags] [patterns]
//	xoconf plan [flags] [patterns]
//	xoconf print-config [flags] <file>
//
// Examples:
//
//	# Lint every .js and .jsx file under the current directory
//	xoconf
//
//	# Indent with four spaces and forbid semicolons
//	xoconf --space=4 --no-semicolon 'src/**'
//
//	# Show how files are grouped and what each group resolves to
//	xoconf plan
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Wladim1r/xoconf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Problems were already reported on stdout.
		if !errors.Is(err, cli.ErrProblems) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
