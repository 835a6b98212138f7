package cmd

import (
	"io"
	"math/rand"

	"github.com/cwbudde/go-hotlisp/internal/builtins"
	"github.com/cwbudde/go-hotlisp/internal/evalnode"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// newEnvironment builds the root Environment and function table and
// installs the built-in bridge (spec.md §4.H), wiring a real math/rand
// coinflip and the foreach apply callback into the evaluator (spec.md §6).
func newEnvironment(out io.Writer) (*runtime.Environment, *funtable.Table) {
	env := runtime.NewRoot()
	funs := funtable.New()

	host := builtins.NewHost(out)
	host.Coinflip = func() bool { return rand.Intn(2) == 1 }
	host.Apply = func(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return evalnode.Apply(funs, callee, args)
	}
	builtins.Install(env, host)

	return env, funs
}
