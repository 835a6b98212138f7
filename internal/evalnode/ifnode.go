package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// If has two phases (spec.md §4.E): drive the condition through a
// delegate, then — once its value is known — return Child(Eval(then)) or
// Child(Eval(else)) as the taken branch, or Final(Nil) if false with no
// else. The taken branch is returned as Child (not awaited), which is why
// `if` participates in tail position the same way Do's last form does.
type If struct {
	Cond     ast.Node
	Then     ast.Node
	Else     ast.Node // nil if absent
	Env      *runtime.Environment
	Funs     *funtable.Table
	Delegate Node
}

func (f *If) Step() (Step, error) {
	if f.Delegate == nil {
		f.Delegate = &Eval{AST: f.Cond, Env: f.Env, Funs: f.Funs}
		return incomplete()
	}

	r, err := f.Delegate.Step()
	if err != nil {
		return Step{}, err
	}
	switch r.Kind {
	case Incomplete:
		return incomplete()
	case Child:
		f.Delegate = r.Next
		return incomplete()
	default: // Final: branch per spec.md §3 truthiness rule
		if r.Value.Truthy() {
			return child(&Eval{AST: f.Then, Env: f.Env, Funs: f.Funs})
		}
		if f.Else != nil {
			return child(&Eval{AST: f.Else, Env: f.Env, Funs: f.Funs})
		}
		return final(runtime.Nil{})
	}
}

func (f *If) DeepCopy() funtable.EvalNode {
	cp := &If{Cond: f.Cond, Then: f.Then, Else: f.Else, Env: f.Env.DeepCopy(), Funs: f.Funs}
	if f.Delegate != nil {
		cp.Delegate = f.Delegate.DeepCopy().(Node)
	}
	return cp
}

// dispatchIf builds an If node from `(if c t)` or `(if c t e)`.
func (e *Eval) dispatchIf(lst *ast.List, rest []ast.Node) (Step, error) {
	if len(rest) != 2 && len(rest) != 3 {
		return Step{}, diag.NewAt(diag.ArityError, lst.Pos(), "if takes a condition, a then-branch and an optional else-branch, %d given", len(rest))
	}
	node := &If{Cond: rest[0], Then: rest[1], Env: e.Env, Funs: e.Funs}
	if len(rest) == 3 {
		node.Else = rest[2]
	}
	return child(node)
}
