package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Do evaluates a sequence of forms (spec.md §4.E). Every form but the last
// is driven to completion through a delegate and discarded; the last form
// is reached by returning Child(Eval(last_form)) as Do's own terminal
// action, so the driver tail-replaces Do itself. This is what makes `do`
// chains (and therefore ordinary tail recursion through a trailing call)
// safe: no evaluator-tree frame accumulates per iteration (spec.md §5/§9).
type Do struct {
	Forms    []ast.Node
	Env      *runtime.Environment
	Funs     *funtable.Table
	Index    int
	Delegate Node
}

// NewDo builds a Do over a non-empty form sequence. Callers (Eval's
// dispatch) must reject the empty case before calling this.
func NewDo(forms []ast.Node, env *runtime.Environment, funs *funtable.Table) *Do {
	return &Do{Forms: forms, Env: env, Funs: funs}
}

func (d *Do) Step() (Step, error) {
	// Tail position: the last form is handed straight to the driver as a
	// Child, replacing Do in the chain rather than waiting on it.
	if d.Index == len(d.Forms)-1 {
		return child(&Eval{AST: d.Forms[d.Index], Env: d.Env, Funs: d.Funs})
	}

	if d.Delegate == nil {
		d.Delegate = &Eval{AST: d.Forms[d.Index], Env: d.Env, Funs: d.Funs}
		return incomplete()
	}

	r, err := d.Delegate.Step()
	if err != nil {
		return Step{}, err
	}
	switch r.Kind {
	case Incomplete:
		return incomplete()
	case Child:
		d.Delegate = r.Next
		return incomplete()
	default: // Final: discard the value and move to the next form
		d.Index++
		d.Delegate = nil
		return incomplete()
	}
}

func (d *Do) DeepCopy() funtable.EvalNode {
	cp := &Do{Forms: d.Forms, Env: d.Env.DeepCopy(), Funs: d.Funs, Index: d.Index}
	if d.Delegate != nil {
		cp.Delegate = d.Delegate.DeepCopy().(Node)
	}
	return cp
}
