package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Apply invokes callee with already-evaluated args and drives it to a
// Final value, reusing Invocation's dispatch rules (spec.md §4.E). It
// exists so host built-ins that themselves apply a function value —
// `foreach` is the one required by spec.md §6 — can do so without
// depending on the evaluator package; internal/builtins.Host.Apply is
// wired to this function at startup.
func Apply(funs *funtable.Table, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	inv := &Invocation{
		Values: append([]runtime.Value{callee}, args...),
		Index:  1 + len(args),
		Funs:   funs,
	}
	step, err := inv.apply()
	if err != nil {
		return nil, err
	}
	if step.Kind == Final {
		return step.Value, nil
	}

	// This call happens mid-Step of some outer node (e.g. `foreach`'s
	// host-callable, invoked from within an in-progress Invocation.Step),
	// so funs.Root() still holds the real, in-progress driver root that
	// TakeSnapshot must target for anything outside this nested call.
	// NewDriver(funs).Run republishes the root on every Child transition
	// while it drives this sub-call to completion; once it's done, restore
	// the outer root rather than leaving the table pointed at this now-
	// finished, disposable sub-tree.
	outerRoot := funs.Root()
	result, err := NewDriver(funs).Run(step.Next)
	funs.SetRoot(outerRoot)
	return result, err
}
