package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Invocation evaluates `(callee a1 … an)` left to right, then applies the
// callee (spec.md §4.E). This is where the snapshot-before-call linchpin of
// live reload lives: immediately before descending into a *named*
// function's body, it overwrites that name's snapshot with a deep copy of
// the live driver root (spec.md §1, §4.E, §9).
type Invocation struct {
	Exprs    []ast.Node // [head, a1, ..., an]
	Env      *runtime.Environment
	Funs     *funtable.Table
	Values   []runtime.Value
	Index    int
	Delegate Node
}

// NewInvocation builds an Invocation over a non-empty (head, ...args) list.
func NewInvocation(exprs []ast.Node, env *runtime.Environment, funs *funtable.Table) *Invocation {
	return &Invocation{Exprs: exprs, Env: env, Funs: funs}
}

func (inv *Invocation) Step() (Step, error) {
	if inv.Index < len(inv.Exprs) {
		return inv.stepArg()
	}
	return inv.apply()
}

func (inv *Invocation) stepArg() (Step, error) {
	if inv.Delegate == nil {
		inv.Delegate = &Eval{AST: inv.Exprs[inv.Index], Env: inv.Env, Funs: inv.Funs}
		return incomplete()
	}
	r, err := inv.Delegate.Step()
	if err != nil {
		return Step{}, err
	}
	switch r.Kind {
	case Incomplete:
		return incomplete()
	case Child:
		inv.Delegate = r.Next
		return incomplete()
	default: // Final
		inv.Values = append(inv.Values, r.Value)
		inv.Index++
		inv.Delegate = nil
		return incomplete()
	}
}

func (inv *Invocation) apply() (Step, error) {
	head := inv.Values[0]
	args := inv.Values[1:]

	switch callee := head.(type) {
	case *runtime.HostCallable:
		result, err := callee.Fn(args)
		if err != nil {
			return Step{}, err
		}
		return final(result)

	case *funtable.Record:
		// Resolve the live record by name before doing anything else
		// (spec.md §4.E, §9 Open Question (b): live-table resolution wins).
		// callee may be a stale *Record reached through a variable that
		// aliased it before a reload (e.g. "(set g f)" then calling "g"
		// after "f" was hot-swapped) — using the live record's Params, not
		// just its Body, means a reload that also renames a parameter
		// takes effect the same way a body change does, rather than
		// binding arguments under the old names while evaluating the new
		// body.
		live := callee
		if callee.Name != "" {
			if rec, ok := inv.Funs.Lookup(callee.Name); ok {
				live = rec
			}
		}

		if len(live.Params) != len(args) {
			return Step{}, diag.New(diag.ArityError, "%s takes %d args, %d given", calleeLabel(live), len(live.Params), len(args))
		}

		// The linchpin of hot reload (spec.md §4.E, §9): before entering a
		// named function's body, overwrite its snapshot with a deep copy
		// of the live driver root, so a later reload can rewind execution
		// to exactly this instant.
		if callee.Name != "" {
			callee.CapturedFuns.TakeSnapshot(callee.Name, inv.Funs.Root(), now())
		}

		bindings := make(map[string]runtime.Value, len(args))
		for i, p := range live.Params {
			bindings[p] = args[i]
		}
		newEnv := live.CapturedEnv.WithFrame(bindings)

		return child(&Eval{AST: live.Body, Env: newEnv, Funs: inv.Funs})

	default:
		return Step{}, diag.New(diag.TypeError, "value is not callable: %s", head.Type())
	}
}

func calleeLabel(rec *funtable.Record) string {
	if rec.Name != "" {
		return rec.Name
	}
	return "lambda"
}

func (inv *Invocation) DeepCopy() funtable.EvalNode {
	cp := &Invocation{
		Exprs: inv.Exprs,
		Env:   inv.Env.DeepCopy(),
		Funs:  inv.Funs,
		Index: inv.Index,
	}
	cp.Values = append(cp.Values, inv.Values...)
	if inv.Delegate != nil {
		cp.Delegate = inv.Delegate.DeepCopy().(Node)
	}
	return cp
}
