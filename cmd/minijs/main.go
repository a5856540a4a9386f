// Command minijs is the host binary around the embeddable minijs
// engine: run a script file, pipe a script through stdin, or drop
// into an interactive REPL.
package main

import (
	"os"

	"minijs/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
