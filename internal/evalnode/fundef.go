package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// FunDef constructs and registers a named function record (spec.md §4.E).
// One step always either registers the record and returns Final(record),
// or returns a DuplicateDefinition error.
type FunDef struct {
	Name   string
	Params []string
	Body   ast.Node
	Env    *runtime.Environment
	Funs   *funtable.Table
}

func (f *FunDef) Step() (Step, error) {
	rec := &funtable.Record{
		Name:         f.Name,
		Params:       f.Params,
		Body:         f.Body,
		CapturedEnv:  f.Env,
		CapturedFuns: f.Funs,
	}
	if err := f.Funs.Define(f.Name, rec); err != nil {
		return Step{}, err
	}
	return final(rec)
}

func (f *FunDef) DeepCopy() funtable.EvalNode {
	return &FunDef{Name: f.Name, Params: f.Params, Body: f.Body, Env: f.Env.DeepCopy(), Funs: f.Funs}
}

// dispatchFunDef builds a FunDef node, or a lambda record directly, from a
// `(fun name p1 … pk body)` / `(lambda p1 … pk body)` list. named selects
// which. A lambda never touches the function table and is never wrapped in
// its own node: per spec.md §4.E's dispatch table, "(lambda …) returns a
// lambda record as Final directly" — it carries no hot-reload identity
// (spec.md §9 "Lambdas"), so there is nothing for a dedicated node to do
// that FunDef's Step doesn't already do for the named case. The minimum
// shape is "name + body" (fun) or just "body" (lambda); anything shorter is
// an ArityError (spec.md §8 test 5: `((fun f) )` -> ArityError — a
// malformed special-form shape is reported as an arity mismatch rather than
// as a separate error kind).
func (e *Eval) dispatchFunDef(lst *ast.List, rest []ast.Node, named bool) (Step, error) {
	if named {
		if len(rest) < 2 {
			return Step{}, diag.NewAt(diag.ArityError, lst.Pos(), "fun requires a name and a body")
		}
		nameSym, ok := rest[0].(*ast.Sym)
		if !ok {
			return Step{}, diag.NewAt(diag.TypeError, rest[0].Pos(), "fun name must be a symbol")
		}
		params, body, err := splitParamsBody(rest[1:])
		if err != nil {
			return Step{}, err
		}
		return child(&FunDef{Name: nameSym.Name, Params: params, Body: body, Env: e.Env, Funs: e.Funs})
	}

	if len(rest) < 1 {
		return Step{}, diag.NewAt(diag.ArityError, lst.Pos(), "lambda requires a body")
	}
	params, body, err := splitParamsBody(rest)
	if err != nil {
		return Step{}, err
	}
	return final(&funtable.Record{Params: params, Body: body, CapturedEnv: e.Env, CapturedFuns: e.Funs})
}

// splitParamsBody treats every element but the last as a parameter symbol
// and the last as the body (spec.md §4 grammar "p1 … pk body").
func splitParamsBody(elems []ast.Node) ([]string, ast.Node, error) {
	if len(elems) == 0 {
		return nil, nil, diag.New(diag.ArityError, "missing body")
	}
	body := elems[len(elems)-1]
	params := make([]string, 0, len(elems)-1)
	for _, p := range elems[:len(elems)-1] {
		sym, ok := p.(*ast.Sym)
		if !ok {
			return nil, nil, diag.NewAt(diag.TypeError, p.Pos(), "parameter must be a symbol")
		}
		params = append(params, sym.Name)
	}
	return params, body, nil
}
