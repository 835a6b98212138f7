// Package ast defines the immutable AST value produced by the reader
// (spec.md §3, §4.B). Nodes are tagged variants compared structurally, which
// the runner's reload diff (spec.md §4.G) relies on directly.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-hotlisp/internal/token"
)

// Node is any AST value. Every node knows where it came from in the source
// (for error reporting) and can render itself back to canonical surface
// syntax (the reader round-trip property, spec.md §8).
type Node interface {
	Pos() token.Position
	String() string
}

// Program is the reader's top-level output: a flat sequence of forms
// (spec.md §4.A, §4.G). It is evaluated like an implicit `do`, and the
// runner's reload diff walks Forms directly to find top-level `fun`s.
type Program struct {
	Forms []Node
	P     token.Position
}

func (n *Program) Pos() token.Position { return n.P }
func (n *Program) String() string {
	var sb strings.Builder
	for i, f := range n.Forms {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}

// Int is an integer literal.
type Int struct {
	Value int64
	P     token.Position
}

func (n *Int) Pos() token.Position { return n.P }
func (n *Int) String() string      { return strconv.FormatInt(n.Value, 10) }

// Float is a floating-point literal.
type Float struct {
	Value float64
	P     token.Position
}

func (n *Float) Pos() token.Position { return n.P }
func (n *Float) String() string      { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Str is a string literal; Value is already unquoted (spec.md §3).
type Str struct {
	Value string
	P     token.Position
}

func (n *Str) Pos() token.Position { return n.P }
func (n *Str) String() string      { return "\"" + n.Value + "\"" }

// Sym is an identifier reference.
type Sym struct {
	Name string
	P    token.Position
}

func (n *Sym) Pos() token.Position { return n.P }
func (n *Sym) String() string      { return n.Name }

// List is an ordered sequence of child nodes. If Children[0] is a Sym naming
// a special form (do, fun, lambda, set, if), the list is that form;
// otherwise it denotes a call (spec.md §3).
type List struct {
	Children []Node
	P        token.Position
}

func (n *List) Pos() token.Position { return n.P }
func (n *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// HeadSymbol returns the leading symbol name of a List and true, or ("",
// false) if the list is empty or does not start with a Sym. Used throughout
// the evaluator and the runner's function-diff to recognize special forms.
func (n *List) HeadSymbol() (string, bool) {
	if len(n.Children) == 0 {
		return "", false
	}
	sym, ok := n.Children[0].(*Sym)
	if !ok {
		return "", false
	}
	return sym.Name, true
}

// Equal reports whether two nodes are structurally equivalent, ignoring
// source position. The runner's diff (spec.md §4.G) uses this to detect
// whether a named function's body actually changed.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case *Int:
		bv, ok := b.(*Int)
		return ok && av.Value == bv.Value
	case *Float:
		bv, ok := b.(*Float)
		return ok && av.Value == bv.Value
	case *Str:
		bv, ok := b.(*Str)
		return ok && av.Value == bv.Value
	case *Sym:
		bv, ok := b.(*Sym)
		return ok && av.Name == bv.Name
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Children {
			if !Equal(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("ast.Equal: unknown node type %T", a))
	}
}
