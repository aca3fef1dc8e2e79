// Package complete defines the code-completion boundary: the consumer
// interface a caller supplies and the candidate collection run against
// a finished parse. The consumer's shape belongs to the completion
// collaborator; the build pipeline only installs and fills it.
package complete

import (
	"sort"
	"strings"

	"github.com/endingly/clice/internal/ast"
	"github.com/endingly/clice/internal/preproc"
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// ItemKind classifies a completion candidate.
type ItemKind uint8

const (
	ItemKeyword ItemKind = iota
	ItemVariable
	ItemFunction
	ItemType
	ItemMacro
	ItemModule
	ItemNamespace
)

func (k ItemKind) String() string {
	switch k {
	case ItemKeyword:
		return "keyword"
	case ItemVariable:
		return "variable"
	case ItemFunction:
		return "function"
	case ItemType:
		return "type"
	case ItemMacro:
		return "macro"
	case ItemModule:
		return "module"
	case ItemNamespace:
		return "namespace"
	}
	return "unknown"
}

// Item is one candidate pushed into the consumer.
type Item struct {
	Spelling string
	Kind     ItemKind
	Detail   string
}

// Consumer receives candidates push-style during execution.
type Consumer interface {
	Accept(item Item)
}

// Collector is the default Consumer: it accumulates and sorts items.
type Collector struct {
	items []Item
}

func (c *Collector) Accept(item Item) {
	c.items = append(c.items, item)
}

// Items returns the collected candidates sorted by spelling.
func (c *Collector) Items() []Item {
	sort.SliceStable(c.items, func(i, j int) bool {
		return c.items[i].Spelling < c.items[j].Spelling
	})
	return c.items
}

// Request is the position of an interactive completion. Line and
// Column are 1-based.
type Request struct {
	Line   uint32
	Column uint32
	File   string
}

// Run pushes every candidate visible at the request offset whose
// spelling starts with the identifier prefix under the cursor. A
// position where no name can appear syntactically produces nothing.
func Run(builder *ast.Builder, buf *preproc.TokenBuffer, macros *preproc.Table, file *source.File, off uint32, consumer Consumer) {
	if consumer == nil {
		return
	}
	prefix, ok := identifierPrefix(file.Content, off)
	if !ok {
		return
	}
	if !namePosition(buf, file.ID, off-uint32(len(prefix))) {
		return
	}

	push := func(spelling string, kind ItemKind, detail string) {
		if prefix != "" && !strings.HasPrefix(spelling, prefix) {
			return
		}
		consumer.Accept(Item{Spelling: spelling, Kind: kind, Detail: detail})
	}

	// declarations visible in the unit (headers included)
	var walk func(ids []ast.DeclID)
	walk = func(ids []ast.DeclID) {
		for _, id := range ids {
			d := builder.Decl(id)
			if d == nil {
				continue
			}
			switch d.Kind {
			case ast.DeclVariable:
				push(d.Name, ItemVariable, d.Type)
			case ast.DeclFunction:
				push(d.Name, ItemFunction, d.Type)
			case ast.DeclRecord, ast.DeclEnum, ast.DeclTypedef:
				push(d.Name, ItemType, d.Type)
			case ast.DeclNamespace:
				push(d.Name, ItemNamespace, "")
				walk(d.Members)
			case ast.DeclImport, ast.DeclModule:
				push(d.Name, ItemModule, "")
			}
		}
	}
	if f := builder.File(); f != nil {
		walk(f.Decls)
	}

	// macros
	if macros != nil {
		for _, name := range macros.Names() {
			push(name, ItemMacro, "")
		}
	}

	// keywords
	for _, kw := range token.KeywordSpellings() {
		push(kw, ItemKeyword, "")
	}
}

// identifierPrefix extracts the identifier bytes immediately before
// off. Reports false when the cursor is inside a token that can never
// hold a name (string literal etc. is handled by namePosition).
func identifierPrefix(content []byte, off uint32) (string, bool) {
	if off > uint32(len(content)) {
		return "", false
	}
	start := off
	for start > 0 && isIdentContinue(content[start-1]) {
		start--
	}
	if start < off && content[start] >= '0' && content[start] <= '9' {
		// numbers don't complete
		return "", false
	}
	return string(content[start:off]), true
}

func isIdentContinue(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// namePosition decides whether a name may appear at the prefix start,
// judged by the last significant token ending at or before it.
func namePosition(buf *preproc.TokenBuffer, fileID source.FileID, prefixStart uint32) bool {
	if buf == nil {
		return true
	}
	var prev *token.Token
	for i := 0; i < buf.Len(); i++ {
		et := buf.At(i)
		if et.Spelling.File != fileID || et.FromExpansion() {
			continue
		}
		if et.Tok.Span.End <= prefixStart {
			t := et.Tok
			prev = &t
		}
	}
	if prev == nil {
		return true
	}
	switch prev.Kind {
	case token.LBrace, token.RBrace, token.Semicolon, token.LParen,
		token.Comma, token.Assign, token.KwReturn, token.Colon:
		return true
	default:
		return prev.IsTypeSpecifier() || prev.Kind == token.Star || prev.Kind == token.Amp
	}
}
