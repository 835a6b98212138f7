package reader

import (
	"github.com/hashicorp/go-multierror"

	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/token"
)

// parser is a recursive-descent parser over a pre-tokenized stream
// (spec.md §4.A). It holds one token of lookahead.
type parser struct {
	toks []token.Token
	pos  int
	errs *multierror.Error
}

func newParser(toks []token.Token) *parser {
	return &parser{toks: toks}
}

func (p *parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) addErr(pos token.Position, format string, args ...any) {
	p.errs = multierror.Append(p.errs, diag.NewAt(diag.ParseError, pos, format, args...))
}

// parseProgram reads every top-level form until EOF (spec.md §4.A: "Input
// is a complete program"). Top-level forms are kept as a flat sequence so
// the runner's reload diff can walk "first-level fun forms" directly
// (spec.md §4.G) without having to look inside an implicit wrapper.
func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	if len(p.toks) > 0 {
		prog.P = p.toks[0].Pos
	}

	for p.cur().Type != token.EOF {
		form := p.parseForm()
		if form != nil {
			prog.Forms = append(prog.Forms, form)
		}
		if p.errs != nil && len(p.errs.Errors) > 8 {
			break // stop cascading once the source is clearly broken
		}
	}

	if p.errs != nil {
		return prog, p.errs.ErrorOrNil()
	}
	return prog, nil
}

// parseForm reads one atom, string, or parenthesized list.
func (p *parser) parseForm() ast.Node {
	tok := p.cur()

	switch tok.Type {
	case token.LPAREN:
		return p.parseList()
	case token.STRING:
		p.advance()
		return &ast.Str{Value: tok.Literal, P: tok.Pos}
	case token.ATOM:
		p.advance()
		return parseAtom(tok)
	case token.RPAREN:
		p.addErr(tok.Pos, "unexpected ')'")
		p.advance()
		return nil
	case token.ILLEGAL:
		p.addErr(tok.Pos, "forgot to close something?")
		p.advance()
		return nil
	default: // EOF
		p.addErr(tok.Pos, "forgot to close something?")
		return nil
	}
}

func (p *parser) parseList() *ast.List {
	open := p.advance() // consume '('
	lst := &ast.List{P: open.Pos}

	for {
		switch p.cur().Type {
		case token.RPAREN:
			p.advance()
			return lst
		case token.EOF:
			p.addErr(open.Pos, "forgot to close something?")
			return lst
		default:
			child := p.parseForm()
			if child != nil {
				lst.Children = append(lst.Children, child)
			}
		}
	}
}

// parseAtom classifies a bare ATOM token as Int, Float, or Sym per spec.md
// §4.A: "numeric atoms are parsed as integer when possible else float;
// everything else is a symbol."
func parseAtom(tok token.Token) ast.Node {
	if iv, ok := parseInt(tok.Literal); ok {
		return &ast.Int{Value: iv, P: tok.Pos}
	}
	if fv, ok := parseFloat(tok.Literal); ok {
		return &ast.Float{Value: fv, P: tok.Pos}
	}
	return &ast.Sym{Name: tok.Literal, P: tok.Pos}
}
