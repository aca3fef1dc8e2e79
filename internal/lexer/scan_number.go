package lexer

import (
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/token"
)

// scanNumber scans integer and floating literals: decimal, hex (0x),
// octal-ish (leading 0 kept as IntLit), fractions, exponents, and the
// usual C suffixes (u, l, f combinations).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '\'' {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexBadNumber, sp, "hex literal needs at least one digit")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
		}
		lx.scanIntSuffix()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.textFrom(sp)}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
	}

	// fraction
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else if lx.cursor.Peek() == '.' {
		// "1." is still a float
		kind = token.FloatLit
		lx.cursor.Bump()
	}

	// exponent
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// not an exponent after all
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	if kind == token.FloatLit {
		if b := lx.cursor.Peek(); b == 'f' || b == 'F' || b == 'l' || b == 'L' {
			lx.cursor.Bump()
		}
	} else {
		lx.scanIntSuffix()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}

func (lx *Lexer) scanIntSuffix() {
	for {
		b := lx.cursor.Peek()
		if b == 'u' || b == 'U' || b == 'l' || b == 'L' {
			lx.cursor.Bump()
			continue
		}
		return
	}
}

