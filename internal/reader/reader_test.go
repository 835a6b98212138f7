package reader

import (
	"testing"

	"github.com/cwbudde/go-hotlisp/internal/ast"
)

func TestReadBasicForms(t *testing.T) {
	prog, err := Read(`(+ 1 2) "hi" foo 3.5`)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(prog.Forms) != 4 {
		t.Fatalf("got %d forms, want 4", len(prog.Forms))
	}

	lst, ok := prog.Forms[0].(*ast.List)
	if !ok || len(lst.Children) != 3 {
		t.Fatalf("form 0: want a 3-element list, got %#v", prog.Forms[0])
	}

	str, ok := prog.Forms[1].(*ast.Str)
	if !ok || str.Value != "hi" {
		t.Fatalf("form 1: want Str(hi), got %#v", prog.Forms[1])
	}

	sym, ok := prog.Forms[2].(*ast.Sym)
	if !ok || sym.Name != "foo" {
		t.Fatalf("form 2: want Sym(foo), got %#v", prog.Forms[2])
	}

	fl, ok := prog.Forms[3].(*ast.Float)
	if !ok || fl.Value != 3.5 {
		t.Fatalf("form 3: want Float(3.5), got %#v", prog.Forms[3])
	}
}

func TestReadUnterminatedList(t *testing.T) {
	_, err := Read(`(+ 1 2`)
	if err == nil {
		t.Fatal("want an error for an unterminated list")
	}
}

func TestReadUnexpectedCloseParen(t *testing.T) {
	_, err := Read(`)`)
	if err == nil {
		t.Fatal("want an error for a stray ')'")
	}
}

// TestReaderRoundTrip is spec.md §8's reader round-trip property: for any
// AST built by the reader, rewriting to canonical text and re-reading
// yields an equal AST.
func TestReaderRoundTrip(t *testing.T) {
	sources := []string{
		`(+ 1 2)`,
		`(do (fun f x (+ x 1)) (f 41))`,
		`(if (< 3 2) 1 2)`,
		`(lambda x y (+ x y))`,
		`"a string"`,
		`mouse-pressed?`,
		`-3.5`,
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			prog1, err := Read(src)
			if err != nil {
				t.Fatalf("first Read: %v", err)
			}

			prog2, err := Read(prog1.String())
			if err != nil {
				t.Fatalf("second Read (of %q): %v", prog1.String(), err)
			}

			if len(prog1.Forms) != len(prog2.Forms) {
				t.Fatalf("form count mismatch: %d vs %d", len(prog1.Forms), len(prog2.Forms))
			}
			for i := range prog1.Forms {
				if !ast.Equal(prog1.Forms[i], prog2.Forms[i]) {
					t.Errorf("form %d not equal after round trip: %s vs %s", i, prog1.Forms[i], prog2.Forms[i])
				}
			}
		})
	}
}
