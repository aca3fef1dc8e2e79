package lexer

import (
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/token"
)

// scanString scans a "..." literal with \-escapes. Unterminated
// literals are reported and cut at the newline or EOF.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	terminated := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == '"' {
			terminated = true
			break
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if !terminated {
		lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
	}
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.textFrom(sp)}
}

// scanChar scans a '...' literal with \-escapes.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	terminated := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == '\'' {
			terminated = true
			break
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if !terminated {
		lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
	}
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.textFrom(sp)}
}
