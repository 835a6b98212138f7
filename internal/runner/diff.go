package runner

import (
	"github.com/cwbudde/go-hotlisp/internal/ast"
)

// funDef is a top-level `fun` form reduced to what the diff cares about:
// its name and the raw param/body forms needed to rebuild a record.
type funDef struct {
	Name   string
	Params []ast.Node
	Body   ast.Node
	Form   *ast.List
}

// topLevelFuns walks prog.Forms (not inside function bodies — spec.md
// §4.G: "never tries to diff inside function bodies") and collects every
// first-level `(fun name p1 … pk body)` form, keyed by name. A leading
// `(do …)` wrapping the whole program — the shape spec §8's headline
// reload property and original_source/game.py both use — is walked
// through rather than treated as an opaque form: its immediate children
// are exactly as "first-level" as a bare top-level `fun`, since `do` is
// there only to sequence the definitions, not to scope them.
func topLevelFuns(prog *ast.Program) map[string]funDef {
	out := make(map[string]funDef)
	collectFuns(prog.Forms, out)
	return out
}

// collectFuns adds every first-level `fun` form found in forms to out,
// descending into `(do …)` wrappers (and any further `do`s nested directly
// inside them) so a program written as a single top-level `do` still
// exposes its `fun`s at the granularity the diff operates on.
func collectFuns(forms []ast.Node, out map[string]funDef) {
	for _, form := range forms {
		lst, ok := form.(*ast.List)
		if !ok {
			continue
		}
		head, ok := lst.HeadSymbol()
		if !ok {
			continue
		}
		switch head {
		case "fun":
			if len(lst.Children) < 3 {
				continue
			}
			nameSym, ok := lst.Children[1].(*ast.Sym)
			if !ok {
				continue
			}
			rest := lst.Children[2:]
			out[nameSym.Name] = funDef{
				Name:   nameSym.Name,
				Params: rest[:len(rest)-1],
				Body:   rest[len(rest)-1],
				Form:   lst,
			}
		case "do":
			collectFuns(lst.Children[1:], out)
		}
	}
}

// diffResult is the outcome of comparing two top-level fun sets
// (spec.md §4.G).
type diffResult struct {
	Added    []string
	Removed  []string
	Modified []string
}

func (d diffResult) unchanged() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// diffFuns computes added/removed/modified between the old and new
// top-level `fun` sets. A function is "modified" if it exists in both but
// its param list or body differs structurally (ast.Equal).
func diffFuns(oldFuns, newFuns map[string]funDef) diffResult {
	var d diffResult
	for name := range oldFuns {
		if _, ok := newFuns[name]; !ok {
			d.Removed = append(d.Removed, name)
		}
	}
	for name, nf := range newFuns {
		of, ok := oldFuns[name]
		if !ok {
			d.Added = append(d.Added, name)
			continue
		}
		if !ast.Equal(of.Form, nf.Form) {
			d.Modified = append(d.Modified, name)
		}
	}
	return d
}
