package token

import (
	"github.com/endingly/clice/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character, or
// string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	_, ok := keywordNames[t.Kind]
	return ok
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeSpecifier reports whether the token can begin a declaration
// specifier sequence.
func (t Token) IsTypeSpecifier() bool {
	switch t.Kind {
	case KwVoid, KwChar, KwShort, KwInt, KwLong, KwFloat, KwDouble,
		KwSigned, KwUnsigned, KwBool, KwConst, KwVolatile, KwStatic,
		KwExtern, KwInline, KwStruct, KwUnion, KwEnum, KwClass,
		KwTypedef, KwAuto:
		return true
	default:
		return false
	}
}

// DocComment returns the concatenated text of the token's leading doc
// comment trivia, or the empty string when there is none.
func (t Token) DocComment() string {
	var out string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDocLine || tr.Kind == TriviaDocBlock {
			if out != "" {
				out += "\n"
			}
			out += tr.Text
		}
	}
	return out
}
