package lexer

import (
	"strings"

	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/token"
)

// collectLeadingTrivia gathers consecutive trivia before a significant
// token:
//   - runs of spaces/tabs coalesce into one TriviaSpace
//   - runs of '\n' coalesce into one TriviaNewline
//   - //... and /* ... */ comments, with /// and /** doc variants
//   - '#' at the start of a line begins a preprocessor directive that
//     runs to the end of the logical line ('\'-continuations included)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// spaces/tabs
		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: lx.textFrom(sp),
			})
			continue
		}

		// newlines (coalesced)
		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: lx.textFrom(sp),
			})
			lx.atLineStart = true
			continue
		}

		// comments/doc
		if b == '/' {
			if lx.scanCommentOrDocIntoHold() {
				continue
			}
		}

		// directive: '#' only counts at the start of a line
		if b == '#' && lx.atLineStart {
			lx.scanDirectiveIntoHold()
			lx.atLineStart = true
			continue
		}

		// no more trivia
		break
	}
}

// //... , /*...*/ , ///... , /**...*/
func (lx *Lexer) scanCommentOrDocIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/': // "//" or "///"
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: lx.textFrom(sp),
		})
		return true

	case '*': // "/* ... */" or "/** ... */"
		lx.cursor.Bump()
		kind := token.TriviaBlockComment
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 != '/' {
			kind = token.TriviaDocBlock
		}
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.report(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: lx.textFrom(sp),
		})
		return true
	default:
		// not a comment: rewind so '/' scans as an operator
		lx.cursor.Reset(start)
		return false
	}
}

// scanDirectiveIntoHold consumes "#<name> <payload...>" through the
// end of the logical line. A trailing '\' continues the directive on
// the next physical line.
func (lx *Lexer) scanDirectiveIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			// look back for a continuation
			if lx.cursor.Off > 0 && lx.file.Content[lx.cursor.Off-1] == '\\' {
				lx.cursor.Bump()
				continue
			}
			break
		}
		lx.cursor.Bump()
	}
	// consume the terminating newline so the directive stays a whole line
	endOfText := lx.cursor.Off
	if lx.cursor.Peek() == '\n' {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:endOfText])
	lx.hold = append(lx.hold, token.Trivia{
		Kind:      token.TriviaDirective,
		Span:      sp,
		Text:      text,
		Directive: parseDirective(text),
	})
}

// parseDirective splits "#  name payload" into its parts. Continuation
// backslashes are folded away from the payload.
func parseDirective(text string) *token.Directive {
	body := strings.TrimPrefix(text, "#")
	body = strings.TrimLeft(body, " \t")
	name := body
	payload := ""
	if i := strings.IndexAny(body, " \t("); i >= 0 {
		name = body[:i]
		payload = body[i:]
		if payload != "" && payload[0] != '(' {
			payload = strings.TrimLeft(payload, " \t")
		}
	}
	payload = strings.ReplaceAll(payload, "\\\n", "\n")
	payload = strings.TrimRight(payload, " \t")
	return &token.Directive{Name: name, Payload: payload}
}
