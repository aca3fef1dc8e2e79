package parser

import (
	"strings"

	"github.com/endingly/clice/internal/ast"
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// parseRecord handles 'struct S { ... };' and friends, with or
// without a body, as a definition or as part of a variable decl.
func (p *parser) parseRecord(exported bool) ast.DeclID {
	kw := p.next() // struct/class/union
	name := ""
	if p.peek().Kind == token.Ident {
		name = p.next().Text
	}

	decl := ast.Decl{
		Kind:     ast.DeclRecord,
		Name:     name,
		Type:     kw.Text,
		Doc:      kw.DocComment(),
		Span:     kw.Span,
		Exported: exported,
	}

	if p.peek().Kind == token.LBrace {
		open := p.next()
		decl.BodySpan = open.Span
		for !p.atEOF() && p.peek().Kind != token.RBrace {
			id := p.parseVarOrFunc(false)
			if id.IsValid() {
				decl.Members = append(decl.Members, id)
			}
		}
		if p.peek().Kind == token.RBrace {
			closeTok := p.next()
			decl.BodySpan = open.Span.Cover(closeTok.Span)
		} else {
			p.report(diag.SynUnclosedBrace, open.Span, "unclosed record body")
		}
	}
	p.expectSemicolon()
	return p.builder.AddDecl(decl)
}

// parseEnum handles 'enum E { A, B };'. Enumerators become member
// variable decls.
func (p *parser) parseEnum(exported bool) ast.DeclID {
	kw := p.next() // 'enum'
	if k := p.peek().Kind; k == token.KwClass || k == token.KwStruct {
		p.next() // scoped enum
	}
	name := ""
	if p.peek().Kind == token.Ident {
		name = p.next().Text
	}

	decl := ast.Decl{
		Kind:     ast.DeclEnum,
		Name:     name,
		Type:     kw.Text,
		Doc:      kw.DocComment(),
		Span:     kw.Span,
		Exported: exported,
	}

	if p.peek().Kind == token.LBrace {
		open := p.next()
		for !p.atEOF() && p.peek().Kind != token.RBrace {
			tok := p.next()
			if tok.Kind == token.Ident {
				decl.Members = append(decl.Members, p.builder.AddDecl(ast.Decl{
					Kind: ast.DeclVariable,
					Name: tok.Text,
					Type: name,
					Doc:  tok.DocComment(),
					Span: tok.Span,
				}))
			}
			// skip '= value' up to ',' or '}'
			for !p.atEOF() && p.peek().Kind != token.Comma && p.peek().Kind != token.RBrace {
				p.next()
			}
			if p.peek().Kind == token.Comma {
				p.next()
			}
		}
		if p.peek().Kind == token.RBrace {
			p.next()
		} else {
			p.report(diag.SynUnclosedBrace, open.Span, "unclosed enum body")
		}
	}
	p.expectSemicolon()
	return p.builder.AddDecl(decl)
}

// parseTypedef handles 'typedef <type> name;'. The alias name is the
// last identifier before the semicolon.
func (p *parser) parseTypedef(exported bool) ast.DeclID {
	kw := p.next() // 'typedef'
	var parts []string
	lastIdent := ""
	for !p.atEOF() && p.peek().Kind != token.Semicolon {
		tok := p.next()
		if tok.Kind == token.Ident {
			lastIdent = tok.Text
		}
		parts = append(parts, tok.Text)
	}
	p.expectSemicolon()
	if lastIdent == "" {
		p.report(diag.SynExpectIdentifier, kw.Span, "typedef without a name")
		return ast.InvalidDeclID
	}
	underlying := strings.Join(parts[:len(parts)-1], " ")
	return p.builder.AddDecl(ast.Decl{
		Kind:     ast.DeclTypedef,
		Name:     lastIdent,
		Type:     underlying,
		Doc:      kw.DocComment(),
		Span:     kw.Span,
		Exported: exported,
	})
}

// parseUsing handles 'using name = <type>;' and plain 'using ...;'.
func (p *parser) parseUsing(exported bool) ast.DeclID {
	kw := p.next() // 'using'
	name := ""
	if p.peek().Kind == token.Ident {
		name = p.next().Text
	}
	var parts []string
	if p.peek().Kind == token.Assign {
		p.next()
		for !p.atEOF() && p.peek().Kind != token.Semicolon {
			parts = append(parts, p.next().Text)
		}
	} else {
		p.skipToSemicolon()
	}
	p.expectSemicolon()
	if name == "" {
		return ast.InvalidDeclID
	}
	return p.builder.AddDecl(ast.Decl{
		Kind:     ast.DeclTypedef,
		Name:     name,
		Type:     strings.Join(parts, " "),
		Doc:      kw.DocComment(),
		Span:     kw.Span,
		Exported: exported,
	})
}

// parseVarOrFunc handles the general declaration form: a specifier
// sequence, a declarator name, then either a parameter list (function)
// or optional initializer and further declarators (variables).
func (p *parser) parseVarOrFunc(exported bool) ast.DeclID {
	first := p.peek()

	// nested record/enum definitions inside member lists
	switch first.Kind {
	case token.KwStruct, token.KwClass, token.KwUnion:
		// 'struct S x;' has an ident after the tag name; a '{' or ';'
		// means a definition instead
		if id, isDef := p.tryNestedRecord(exported); isDef {
			return id
		}
	case token.KwEnum:
		if p.peekAheadIsDefinition() {
			return p.parseEnum(exported)
		}
	}

	specifiers, name, nameTok, ok := p.parseDeclarator()
	if !ok {
		p.report(diag.SynBadDeclaration, first.Span, "malformed declaration")
		p.skipPastSemicolon()
		return ast.InvalidDeclID
	}

	decl := ast.Decl{
		Name:     name,
		Type:     strings.Join(specifiers, " "),
		Doc:      first.DocComment(),
		Span:     nameTok.Span,
		Exported: exported,
	}

	if p.peek().Kind == token.LParen {
		decl.Kind = ast.DeclFunction
		decl.Params = p.parseParams()
		switch p.peek().Kind {
		case token.LBrace:
			decl.BodySpan = p.skipBalancedBraces()
		case token.Semicolon:
			p.next()
		default:
			p.report(diag.SynExpectSemicolon, p.peek().Span, "expected ';' or function body")
			p.skipPastSemicolon()
		}
		return p.builder.AddDecl(decl)
	}

	decl.Kind = ast.DeclVariable
	// initializer and extra declarators are skipped, not modeled
	p.skipToSemicolon()
	p.expectSemicolon()
	return p.builder.AddDecl(decl)
}

// tryNestedRecord parses a record definition when the lookahead shows
// one ('struct S {' or 'struct S;'), otherwise leaves the stream
// untouched and reports isDef false.
func (p *parser) tryNestedRecord(exported bool) (ast.DeclID, bool) {
	mark := p.pos
	p.next() // tag keyword
	if p.peek().Kind == token.Ident {
		p.next()
	}
	k := p.peek().Kind
	p.pos = mark
	if k == token.LBrace || k == token.Semicolon {
		return p.parseRecord(exported), true
	}
	return ast.InvalidDeclID, false
}

func (p *parser) peekAheadIsDefinition() bool {
	mark := p.pos
	p.next() // 'enum'
	if k := p.peek().Kind; k == token.KwClass || k == token.KwStruct {
		p.next()
	}
	if p.peek().Kind == token.Ident {
		p.next()
	}
	k := p.peek().Kind
	p.pos = mark
	return k == token.LBrace || k == token.Semicolon
}

// parseDeclarator consumes the specifier sequence and the declared
// name. The last identifier before '(', '=', ',', ';', or '[' is the
// name; everything before it is the type.
func (p *parser) parseDeclarator() (specifiers []string, name string, nameTok token.Token, ok bool) {
	for {
		tok := p.peek()
		switch {
		case tok.IsTypeSpecifier() || tok.Kind == token.Star ||
			tok.Kind == token.Amp || tok.Kind == token.ColonColon ||
			tok.Kind == token.Lt || tok.Kind == token.Gt:
			specifiers = append(specifiers, tok.Text)
			p.next()
		case tok.Kind == token.Ident:
			p.next()
			if name != "" {
				specifiers = append(specifiers, name)
			}
			name = tok.Text
			nameTok = tok
		default:
			if name == "" {
				return nil, "", token.Token{}, false
			}
			return specifiers, name, nameTok, true
		}
	}
}

// parseParams consumes '(...)' into a parameter list.
func (p *parser) parseParams() []ast.Param {
	var params []ast.Param
	open := p.next() // '('
	var curType []string
	var curName string
	var curTok token.Token
	flush := func() {
		if curName == "" && len(curType) == 0 {
			return
		}
		params = append(params, ast.Param{
			Name: curName,
			Type: strings.Join(curType, " "),
			Span: curTok.Span,
		})
		curType = nil
		curName = ""
	}
	depth := 1
	for !p.atEOF() {
		tok := p.next()
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				flush()
				return params
			}
		case token.Comma:
			if depth == 1 {
				flush()
				continue
			}
		case token.Ident:
			if curName != "" {
				curType = append(curType, curName)
			}
			curName = tok.Text
			curTok = tok
			continue
		default:
			if curName != "" {
				curType = append(curType, curName)
				curName = ""
			}
			curType = append(curType, tok.Text)
			continue
		}
	}
	p.report(diag.SynUnclosedParen, open.Span, "unclosed parameter list")
	return params
}

// skipBalancedBraces consumes a '{...}' block and returns its span.
// Bodies are kept as token ranges, not parsed.
func (p *parser) skipBalancedBraces() source.Span {
	open := p.next() // '{'
	span := open.Span
	depth := 1
	for !p.atEOF() {
		tok := p.next()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return span.Cover(tok.Span)
			}
		}
		span = span.Cover(tok.Span)
	}
	p.report(diag.SynUnclosedBrace, open.Span, "unclosed block")
	return span
}

// skipToSemicolon advances to (not past) the next ';' at brace depth
// zero.
func (p *parser) skipToSemicolon() {
	depth := 0
	for !p.atEOF() {
		switch p.peek().Kind {
		case token.Semicolon:
			if depth == 0 {
				return
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.next()
	}
}

// skipPastSemicolon is error recovery: drop everything through the
// next ';'.
func (p *parser) skipPastSemicolon() {
	p.skipToSemicolon()
	if p.peek().Kind == token.Semicolon {
		p.next()
	}
}

func (p *parser) expectSemicolon() {
	if p.peek().Kind == token.Semicolon {
		p.next()
		return
	}
	if !p.atEOF() {
		p.report(diag.SynExpectSemicolon, p.peek().Span, "expected ';'")
	}
}
