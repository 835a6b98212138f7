package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
	"github.com/cwbudde/go-hotlisp/internal/token"
)

// Lookup resolves a symbol to a value (spec.md §4.E). Resolution order,
// per spec.md §3/§4.C: the name verbatim in Env, then the canonicalized
// name in Env, then the name (and its canonicalization) in the function
// table as a read-only fallback — so a bare function name evaluates to its
// own record.
type Lookup struct {
	Name string
	Env  *runtime.Environment
	Funs *funtable.Table
	Pos  token.Position
}

func (l *Lookup) Step() (Step, error) {
	if v, ok := l.Env.Lookup(l.Name); ok {
		return final(v)
	}
	canon := runtime.Canonicalize(l.Name)
	if canon != l.Name {
		if v, ok := l.Env.Lookup(canon); ok {
			return final(v)
		}
	}
	if rec, ok := l.Funs.Lookup(l.Name); ok {
		return final(rec)
	}
	if canon != l.Name {
		if rec, ok := l.Funs.Lookup(canon); ok {
			return final(rec)
		}
	}
	return Step{}, diag.NewAt(diag.NameError, l.Pos, "unbound symbol %q", l.Name)
}

func (l *Lookup) DeepCopy() funtable.EvalNode {
	return &Lookup{Name: l.Name, Env: l.Env.DeepCopy(), Funs: l.Funs, Pos: l.Pos}
}
