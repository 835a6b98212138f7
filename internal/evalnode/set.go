package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Set evaluates its value expression through a threaded delegate, then
// assigns the result (spec.md §4.E). Resolution of which frame the name
// lands in happens inside Environment.Assign (spec.md §4.C).
type Set struct {
	Name     string
	Env      *runtime.Environment
	Delegate Node
}

func (s *Set) Step() (Step, error) {
	r, err := s.Delegate.Step()
	if err != nil {
		return Step{}, err
	}
	switch r.Kind {
	case Incomplete:
		return incomplete()
	case Child:
		s.Delegate = r.Next
		return incomplete()
	default: // Final
		s.Env.Assign(s.Name, r.Value)
		return final(r.Value)
	}
}

func (s *Set) DeepCopy() funtable.EvalNode {
	return &Set{Name: s.Name, Env: s.Env.DeepCopy(), Delegate: s.Delegate.DeepCopy().(Node)}
}

// dispatchSet builds a Set node from `(set name expr)`.
func (e *Eval) dispatchSet(lst *ast.List, rest []ast.Node) (Step, error) {
	if len(rest) != 2 {
		return Step{}, diag.NewAt(diag.ArityError, lst.Pos(), "set takes a name and an expression, %d given", len(rest))
	}
	nameSym, ok := rest[0].(*ast.Sym)
	if !ok {
		return Step{}, diag.NewAt(diag.TypeError, rest[0].Pos(), "set target must be a symbol")
	}
	return child(&Set{
		Name:     nameSym.Name,
		Env:      e.Env,
		Delegate: &Eval{AST: rest[1], Env: e.Env, Funs: e.Funs},
	})
}
