package token

import "github.com/endingly/clice/internal/source"

// Directive carries the parsed pieces of a preprocessor directive
// attached to trivia: `#include <stdio.h>` has Name "include" and
// Payload "<stdio.h>".
type Directive struct {
	Name    string
	Payload string
}

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDocBlock
	TriviaDirective
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	case TriviaDocBlock:
		return "DocBlock"
	case TriviaDirective:
		return "Directive"
	}
	return "TriviaKind(?)"
}

// Trivia is non-semantic source text attached to the following token:
// whitespace, comments, and preprocessor directives.
type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // only if Kind == TriviaDirective
}

// IsComment reports whether the trivia is any comment form.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocBlock:
		return true
	default:
		return false
	}
}
