package preproc

import (
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/lexer"
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

const maxExpansionDepth = 128

// emit appends a token from the main stream to out, expanding it when
// it names a macro. Function-like macro arguments are pulled from the
// live lexer.
func (pp *Preprocessor) emit(tok token.Token, depth int, lx *lexer.Lexer, out []ExpTok) []ExpTok {
	if tok.Kind != token.Ident {
		return append(out, ExpTok{Tok: tok, Spelling: tok.Span})
	}
	m, ok := pp.macros.Lookup(tok.Text)
	if !ok {
		return append(out, ExpTok{Tok: tok, Spelling: tok.Span})
	}

	if m.FunctionLike {
		if lx.Peek().Kind != token.LParen {
			// a function-like macro without arguments is a plain ident
			return append(out, ExpTok{Tok: tok, Spelling: tok.Span})
		}
		args, argsOK := pp.gatherArgs(lx)
		if !argsOK || len(args) != len(m.Params) {
			diag.ReportError(pp.reporter, diag.PPBadMacroCall,
				tok.Span, "macro '"+m.Name+"' expects a different number of arguments")
			return append(out, ExpTok{Tok: tok, Spelling: tok.Span})
		}
		bound := make(map[string][]token.Token, len(m.Params))
		for i, p := range m.Params {
			bound[p] = args[i]
		}
		return pp.expand(m, tok.Span, bound, map[string]bool{m.Name: true}, 0, out)
	}

	return pp.expand(m, tok.Span, nil, map[string]bool{m.Name: true}, 0, out)
}

// gatherArgs consumes "(...)" from the lexer, splitting the contents
// at top-level commas. Reports false on an unbalanced call.
func (pp *Preprocessor) gatherArgs(lx *lexer.Lexer) ([][]token.Token, bool) {
	open := lx.Next() // '('
	_ = open
	var args [][]token.Token
	var cur []token.Token
	depth := 1
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.EOF:
			return nil, false
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				if len(cur) > 0 || len(args) > 0 {
					args = append(args, cur)
				}
				return args, true
			}
		case token.Comma:
			if depth == 1 {
				args = append(args, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, tok)
	}
}

// expand replays a macro body. Every produced token keeps the span of
// the outermost invocation as its spelling, so downstream features can
// map expanded positions back to what was written.
func (pp *Preprocessor) expand(m Macro, spelling source.Span, bound map[string][]token.Token, active map[string]bool, depth int, out []ExpTok) []ExpTok {
	if depth >= maxExpansionDepth {
		diag.ReportError(pp.reporter, diag.PPExpansionTooDeep, spelling, "macro expansion too deep")
		return out
	}

	body := m.Body
	for i := 0; i < len(body); i++ {
		tok := body[i]

		// parameter substitution
		if tok.Kind == token.Ident && bound != nil {
			if arg, ok := bound[tok.Text]; ok {
				for _, at := range arg {
					out = pp.expandOne(at, spelling, active, depth+1, out)
				}
				continue
			}
		}

		// nested function-like call inside the body
		if tok.Kind == token.Ident {
			if nested, ok := pp.macros.Lookup(tok.Text); ok && !active[tok.Text] {
				if nested.FunctionLike {
					args, next, ok2 := gatherBodyArgs(body, i+1)
					if ok2 && len(args) == len(nested.Params) {
						nb := make(map[string][]token.Token, len(nested.Params))
						for pi, p := range nested.Params {
							nb[p] = args[pi]
						}
						active[tok.Text] = true
						out = pp.expand(nested, spelling, nb, active, depth+1, out)
						delete(active, tok.Text)
						i = next - 1
						continue
					}
				} else {
					active[tok.Text] = true
					out = pp.expand(nested, spelling, nil, active, depth+1, out)
					delete(active, tok.Text)
					continue
				}
			}
		}

		out = append(out, ExpTok{Tok: tok, Spelling: spelling, Macro: m.Name})
	}
	return out
}

// expandOne re-examines a single substituted token for further
// expansion.
func (pp *Preprocessor) expandOne(tok token.Token, spelling source.Span, active map[string]bool, depth int, out []ExpTok) []ExpTok {
	if tok.Kind == token.Ident {
		if nested, ok := pp.macros.Lookup(tok.Text); ok && !nested.FunctionLike && !active[tok.Text] {
			active[tok.Text] = true
			out = pp.expand(nested, spelling, nil, active, depth, out)
			delete(active, tok.Text)
			return out
		}
	}
	return append(out, ExpTok{Tok: tok, Spelling: spelling})
}

// gatherBodyArgs mirrors gatherArgs over a body token slice. Returns
// the args, the index just past the closing paren, and success.
func gatherBodyArgs(body []token.Token, start int) ([][]token.Token, int, bool) {
	if start >= len(body) || body[start].Kind != token.LParen {
		return nil, start, false
	}
	var args [][]token.Token
	var cur []token.Token
	depth := 1
	for i := start + 1; i < len(body); i++ {
		tok := body[i]
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				if len(cur) > 0 || len(args) > 0 {
					args = append(args, cur)
				}
				return args, i + 1, true
			}
		case token.Comma:
			if depth == 1 {
				args = append(args, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, tok)
	}
	return nil, start, false
}
