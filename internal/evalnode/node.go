// Package evalnode is the reified evaluator of spec.md §4.E: evaluation
// expressed as an explicit, step-granular, copyable tree of state-machine
// nodes rather than host call-stack recursion. This is the component that
// makes snapshot-based hot reload possible (spec.md §1, §9): a host call
// stack cannot be addressed or cloned, but a tree of owned Go values can.
package evalnode

import (
	"time"

	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Kind names the three outcomes a Node's Step can produce (spec.md §3/§4.E).
type Kind int

const (
	// Incomplete means progress happened internally; call Step again.
	Incomplete Kind = iota
	// Child means the driver must descend into Next; future steps address
	// it instead of the node that produced this result.
	Child
	// Final means this node is done; Value is its result.
	Final
)

// Step is the result of one Node.Step call.
type Step struct {
	Kind  Kind
	Next  Node
	Value runtime.Value
}

func incomplete() (Step, error)  { return Step{Kind: Incomplete}, nil }
func child(n Node) (Step, error) { return Step{Kind: Child, Next: n}, nil }
func final(v runtime.Value) (Step, error) {
	return Step{Kind: Final, Value: v}, nil
}

// Node is one evaluator-tree state machine (spec.md §3/§4.E). Every Node
// holds everything it needs to resume, exposes a single Step, and is
// deep-copyable: DeepCopy must yield an independent tree that resumes
// identically from the copy point (spec.md §3 invariants).
//
// Node embeds funtable.EvalNode (DeepCopy() funtable.EvalNode) directly so
// the function table can snapshot a Node without internal/funtable ever
// needing to import this package — see funtable's doc comment.
type Node interface {
	funtable.EvalNode
	Step() (Step, error)
}

// now is the clock behind Snapshot.At values (spec.md §3); it reads
// nowFunc, a package variable that can be replaced with a fixed clock.
var nowFunc = time.Now

func now() time.Time { return nowFunc() }

// Eval is the dispatcher node (spec.md §4.E): given unexpanded AST, an
// Env and a Funs table, it inspects the AST shape exactly once and
// returns Child(specific evaluator) per the table in spec.md §4.E.
type Eval struct {
	AST  ast.Node
	Env  *runtime.Environment
	Funs *funtable.Table
}

func (e *Eval) DeepCopy() funtable.EvalNode {
	return &Eval{AST: e.AST, Env: e.Env.DeepCopy(), Funs: e.Funs}
}

func (e *Eval) Step() (Step, error) {
	switch n := e.AST.(type) {
	case *ast.Int:
		return child(&Literal{Value: runtime.Int{V: n.Value}})
	case *ast.Float:
		return child(&Literal{Value: runtime.Float{V: n.Value}})
	case *ast.Str:
		return child(&Literal{Value: runtime.Str{V: n.Value}})
	case *ast.Sym:
		return child(&Lookup{Name: n.Name, Env: e.Env, Funs: e.Funs, Pos: n.Pos()})
	case *ast.Program:
		return e.dispatchForms(n.Forms)
	case *ast.List:
		return e.dispatchList(n)
	default:
		return Step{}, diag.NewAt(diag.TypeError, e.AST.Pos(), "cannot evaluate node of type %T", e.AST)
	}
}

// dispatchList recognizes the special forms of spec.md §3/§4.E
// (do/fun/lambda/set/if) by their head symbol; any other list is a call
// (Invocation).
func (e *Eval) dispatchList(lst *ast.List) (Step, error) {
	head, isSym := lst.HeadSymbol()
	if !isSym {
		return e.dispatchInvocation(lst)
	}

	rest := lst.Children[1:]
	switch head {
	case "do":
		return e.dispatchForms(rest)
	case "fun":
		return e.dispatchFunDef(lst, rest, true)
	case "lambda":
		return e.dispatchFunDef(lst, rest, false)
	case "set":
		return e.dispatchSet(lst, rest)
	case "if":
		return e.dispatchIf(lst, rest)
	default:
		return e.dispatchInvocation(lst)
	}
}

// dispatchForms builds the Do node for a `do` body or a Program. A `do`
// (or an empty program) with zero forms is invalid (spec.md §4.E); modeled
// as an ArityError since it is, at heart, a special form missing a required
// part.
func (e *Eval) dispatchForms(forms []ast.Node) (Step, error) {
	if len(forms) == 0 {
		return Step{}, diag.New(diag.ArityError, "do requires at least one form")
	}
	return child(NewDo(forms, e.Env, e.Funs))
}

func (e *Eval) dispatchInvocation(lst *ast.List) (Step, error) {
	if len(lst.Children) == 0 {
		return Step{}, diag.NewAt(diag.ArityError, lst.Pos(), "empty invocation")
	}
	return child(NewInvocation(lst.Children, e.Env, e.Funs))
}
