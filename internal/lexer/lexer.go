package lexer

import (
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// Lexer produces C-family spelled tokens from a single file. It never
// expands macros; preprocessor directives are collected as trivia on
// the following token.
type Lexer struct {
	file        *source.File
	cursor      Cursor
	opts        Options
	look        *token.Token   // one-token lookahead buffer
	hold        []token.Trivia // accumulated leading trivia
	atLineStart bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		look:        nil,
		hold:        nil,
		atLineStart: true,
	}
}

// NewAt creates a lexer that starts at the given byte offset. Used
// when a reused preamble lets the caller skip the leading bytes;
// atLineStart tells the lexer whether the offset sits at the start of
// a line (directives only count there).
func NewAt(file *source.File, opts Options, off uint32, atLineStart bool) *Lexer {
	lx := New(file, opts)
	if off > lx.cursor.Limit {
		off = lx.cursor.Limit
	}
	lx.cursor.Off = off
	lx.atLineStart = atLineStart
	return lx
}

// Next returns the next significant token with its Leading trivia
// already collected. After EOF it always returns EOF; the EOF token
// keeps any trailing trivia (directive-only files rely on this).
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '\'':
		tok = lx.scanChar()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.atLineStart = false

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize drains the lexer, returning every significant token
// including the trailing EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
