// Package reader implements the tokenizer and recursive-descent parser
// described in spec.md §4.A: it turns S-expression source text into an
// immutable *ast.Program. This is the "Reader" component (§2, table row A).
package reader

import "github.com/cwbudde/go-hotlisp/internal/ast"

// Read parses a complete source string into a Program. Parse errors are
// returned as a single aggregated error (via hashicorp/go-multierror)
// wrapping one or more *diag.Error values of kind diag.ParseError.
func Read(source string) (*ast.Program, error) {
	toks := tokenize(source)
	p := newParser(toks)
	return p.parseProgram()
}
