package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Driver owns the live evaluator tree and runs it to completion (spec.md
// §4.F). It is the only thing that ever calls Step in a loop: everything
// upstream of it (the runner, the CLI) just hands it a root node and reads
// back a value. After every Child replacement the new root is published to
// the function table via SetRoot, which is what lets Invocation's
// snapshot-before-call step capture "the live tree as of right now" instead
// of a stale reference.
type Driver struct {
	Funs *funtable.Table
}

// NewDriver returns a Driver bound to the given function table.
func NewDriver(funs *funtable.Table) *Driver {
	return &Driver{Funs: funs}
}

// Run drives root to a Final value, publishing every intermediate root to
// the function table so concurrent snapshots observe the current tree.
func (d *Driver) Run(root Node) (runtime.Value, error) {
	d.Funs.SetRoot(root)
	for {
		step, err := root.Step()
		if err != nil {
			return nil, err
		}
		switch step.Kind {
		case Incomplete:
			// state mutated in place; root is unchanged
			continue
		case Child:
			root = step.Next
			d.Funs.SetRoot(root)
		default: // Final
			return step.Value, nil
		}
	}
}

// RunProgram evaluates every top-level form of prog in sequence and returns
// the value of the last one (spec.md §4.G: top-level forms are driven the
// same way a `do` body is).
func (d *Driver) RunProgram(prog *ast.Program, env *runtime.Environment) (runtime.Value, error) {
	root := &Eval{AST: prog, Env: env, Funs: d.Funs}
	return d.Run(root)
}
