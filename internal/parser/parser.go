// Package parser turns the expanded token stream into the
// declaration-level tree. It is deliberately tolerant: malformed
// input produces diagnostics and a partial tree, never a failed parse.
package parser

import (
	"strings"

	"github.com/endingly/clice/internal/ast"
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/preproc"
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// Options configures a parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Result is the outcome of ParseTokens.
type Result struct {
	File *ast.File
}

type parser struct {
	toks     []preproc.ExpTok
	pos      int
	builder  *ast.Builder
	reporter diag.Reporter
	errors   uint
	maxErr   uint
}

// ParseTokens parses the expanded stream into builder and installs the
// resulting file root.
func ParseTokens(builder *ast.Builder, toks []preproc.ExpTok, opts Options) Result {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	maxErr := opts.MaxErrors
	if maxErr == 0 {
		maxErr = 64
	}
	p := &parser{
		toks:     toks,
		builder:  builder,
		reporter: reporter,
		maxErr:   maxErr,
	}

	file := &ast.File{}
	if len(toks) > 0 {
		file.Span = toks[0].Tok.Span.Cover(toks[len(toks)-1].Tok.Span)
	}

	for !p.atEOF() {
		id := p.parseTopLevel(file)
		if id.IsValid() {
			file.Decls = append(file.Decls, id)
		}
	}

	builder.SetFile(file)
	return Result{File: file}
}

func (p *parser) atEOF() bool {
	return p.pos >= len(p.toks) || p.toks[p.pos].Tok.Kind == token.EOF
}

func (p *parser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].Tok
	}
	return token.Token{Kind: token.EOF}
}

func (p *parser) next() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *parser) report(code diag.Code, sp source.Span, msg string) {
	if p.errors >= p.maxErr {
		return
	}
	p.errors++
	diag.ReportError(p.reporter, code, sp, msg)
}

// parseTopLevel dispatches one top-level construct.
func (p *parser) parseTopLevel(file *ast.File) ast.DeclID {
	tok := p.peek()

	exported := false
	if tok.Kind == token.KwExport {
		exported = true
		p.next()
		tok = p.peek()
	}

	switch tok.Kind {
	case token.KwModule:
		return p.parseModule(file, exported)
	case token.KwImport:
		return p.parseImport(exported)
	case token.KwNamespace:
		return p.parseNamespace(exported)
	case token.KwStruct, token.KwClass, token.KwUnion:
		return p.parseRecord(exported)
	case token.KwEnum:
		return p.parseEnum(exported)
	case token.KwTypedef:
		return p.parseTypedef(exported)
	case token.KwUsing:
		return p.parseUsing(exported)
	case token.Semicolon:
		p.next() // empty declaration
		return ast.InvalidDeclID
	case token.EOF:
		return ast.InvalidDeclID
	}

	if tok.IsTypeSpecifier() || tok.Kind == token.Ident {
		return p.parseVarOrFunc(exported)
	}

	p.report(diag.SynStrayTopLevel, tok.Span, "unexpected '"+tok.Text+"' at top level")
	p.next()
	return ast.InvalidDeclID
}

// parseModule handles 'module M;' and 'export module M;'.
func (p *parser) parseModule(file *ast.File, exported bool) ast.DeclID {
	kw := p.next() // 'module'
	name, ok := p.parseModulePath()
	if !ok {
		p.report(diag.SynExpectModuleName, kw.Span, "expected module name after 'module'")
		p.skipPastSemicolon()
		return ast.InvalidDeclID
	}
	p.expectSemicolon()

	file.ModuleName = name
	file.IsInterface = exported
	return p.builder.AddDecl(ast.Decl{
		Kind:     ast.DeclModule,
		Name:     name,
		Doc:      kw.DocComment(),
		Span:     kw.Span,
		Exported: exported,
	})
}

// parseImport handles 'import M;'.
func (p *parser) parseImport(exported bool) ast.DeclID {
	kw := p.next() // 'import'
	name, ok := p.parseModulePath()
	if !ok {
		p.report(diag.SynExpectModuleName, kw.Span, "expected module name after 'import'")
		p.skipPastSemicolon()
		return ast.InvalidDeclID
	}
	p.expectSemicolon()
	return p.builder.AddDecl(ast.Decl{
		Kind:     ast.DeclImport,
		Name:     name,
		Doc:      kw.DocComment(),
		Span:     kw.Span,
		Exported: exported,
	})
}

// parseModulePath reads dotted module names: "core", "core.io".
func (p *parser) parseModulePath() (string, bool) {
	if p.peek().Kind != token.Ident {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString(p.next().Text)
	for p.peek().Kind == token.Dot {
		p.next()
		if p.peek().Kind != token.Ident {
			return sb.String(), false
		}
		sb.WriteByte('.')
		sb.WriteString(p.next().Text)
	}
	return sb.String(), true
}

func (p *parser) parseNamespace(exported bool) ast.DeclID {
	kw := p.next() // 'namespace'
	name := ""
	if p.peek().Kind == token.Ident {
		name = p.next().Text
	}
	if p.peek().Kind != token.LBrace {
		p.report(diag.SynUnexpectedToken, p.peek().Span, "expected '{' after namespace name")
		p.skipPastSemicolon()
		return ast.InvalidDeclID
	}
	p.next() // '{'

	decl := ast.Decl{
		Kind:     ast.DeclNamespace,
		Name:     name,
		Doc:      kw.DocComment(),
		Span:     kw.Span,
		Exported: exported,
	}
	for !p.atEOF() && p.peek().Kind != token.RBrace {
		// namespaces nest the same top-level grammar
		id := p.parseTopLevel(&ast.File{})
		if id.IsValid() {
			decl.Members = append(decl.Members, id)
		}
	}
	if p.peek().Kind == token.RBrace {
		p.next()
	} else {
		p.report(diag.SynUnclosedBrace, kw.Span, "unclosed namespace body")
	}
	return p.builder.AddDecl(decl)
}
