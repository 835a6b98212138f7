// Command hotlisp runs the live-programming Lisp runtime of spec.md: a
// one-shot `run` evaluator and a `watch` loop that hot-reloads named
// functions on save.
package main

import (
	"os"

	"github.com/cwbudde/go-hotlisp/cmd/hotlisp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
