package lexer

import (
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/token"
)

// scanOperatorOrPunct scans C punctuation greedily (longest match
// first). Unknown bytes yield Invalid with a diagnostic.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	mk := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
	}

	// three-byte
	if lx.try3('.', '.', '.') {
		return mk(token.Ellipsis)
	}

	// two-byte
	switch {
	case lx.try2('=', '='):
		return mk(token.EqEq)
	case lx.try2('!', '='):
		return mk(token.BangEq)
	case lx.try2('<', '='):
		return mk(token.LtEq)
	case lx.try2('>', '='):
		return mk(token.GtEq)
	case lx.try2('<', '<'):
		return mk(token.Shl)
	case lx.try2('>', '>'):
		return mk(token.Shr)
	case lx.try2('&', '&'):
		return mk(token.AndAnd)
	case lx.try2('|', '|'):
		return mk(token.OrOr)
	case lx.try2(':', ':'):
		return mk(token.ColonColon)
	case lx.try2('-', '>'):
		return mk(token.Arrow)
	case lx.try2('+', '+'):
		return mk(token.PlusPlus)
	case lx.try2('-', '-'):
		return mk(token.MinusMinus)
	case lx.try2('+', '='):
		return mk(token.PlusAssign)
	case lx.try2('-', '='):
		return mk(token.MinusAssign)
	case lx.try2('*', '='):
		return mk(token.StarAssign)
	case lx.try2('/', '='):
		return mk(token.SlashAssign)
	}

	// single byte
	b := lx.cursor.Bump()
	switch b {
	case '+':
		return mk(token.Plus)
	case '-':
		return mk(token.Minus)
	case '*':
		return mk(token.Star)
	case '/':
		return mk(token.Slash)
	case '%':
		return mk(token.Percent)
	case '=':
		return mk(token.Assign)
	case '!':
		return mk(token.Bang)
	case '<':
		return mk(token.Lt)
	case '>':
		return mk(token.Gt)
	case '&':
		return mk(token.Amp)
	case '|':
		return mk(token.Pipe)
	case '^':
		return mk(token.Caret)
	case '~':
		return mk(token.Tilde)
	case '?':
		return mk(token.Question)
	case ':':
		return mk(token.Colon)
	case ';':
		return mk(token.Semicolon)
	case ',':
		return mk(token.Comma)
	case '.':
		return mk(token.Dot)
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case '{':
		return mk(token.LBrace)
	case '}':
		return mk(token.RBrace)
	case '[':
		return mk(token.LBracket)
	case ']':
		return mk(token.RBracket)
	case '#':
		return mk(token.Hash)
	}

	tok := mk(token.Invalid)
	lx.report(diag.LexUnknownChar, tok.Span, "unknown character")
	return tok
}
