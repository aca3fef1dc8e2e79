package preproc

import (
	"sort"

	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// ExpTok is one token of the fully expanded stream. Spelling is the
// source range that produced the token: its own span for tokens taken
// verbatim, the span of the outermost macro invocation for tokens that
// came out of an expansion. Macro names that invocation, empty for
// verbatim tokens.
type ExpTok struct {
	Tok      token.Token
	Spelling source.Span
	Macro    string
}

// FromExpansion reports whether the token came out of a macro body.
func (e ExpTok) FromExpansion() bool { return e.Macro != "" }

// TokenCollector observes the expanded token stream of one run and
// turns it into a TokenBuffer. Install with SetCollector before Run;
// the preprocessor may be recreated during action begin, so installing
// early against a stale instance observes nothing.
type TokenCollector struct {
	buf *TokenBuffer
}

func NewTokenCollector() *TokenCollector {
	return &TokenCollector{}
}

// NewTokenBuffer wraps an already expanded stream. Used when the
// caller holds the stream directly instead of installing a collector.
func NewTokenBuffer(expanded []ExpTok) *TokenBuffer {
	return &TokenBuffer{expanded: expanded}
}

func (c *TokenCollector) consume(expanded []ExpTok) {
	c.buf = &TokenBuffer{expanded: expanded}
}

// Buffer returns the collected buffer, or nil when the run has not
// happened yet.
func (c *TokenCollector) Buffer() *TokenBuffer {
	return c.buf
}

// TokenBuffer is the immutable lexical token index of a finished run:
// the expanded token stream plus a reverse index from expanded tokens
// to source spelling ranges.
type TokenBuffer struct {
	expanded []ExpTok

	// byStart is built lazily by IndexExpandedTokens: indices of
	// expanded tokens sorted by spelling start offset.
	byStart []int
}

// Len returns the number of expanded tokens.
func (b *TokenBuffer) Len() int {
	return len(b.expanded)
}

// At returns the i-th expanded token.
func (b *TokenBuffer) At(i int) ExpTok {
	return b.expanded[i]
}

// Expanded returns the full expanded stream. Read-only.
func (b *TokenBuffer) Expanded() []ExpTok {
	return b.expanded
}

// SpellingFor returns the source range whose text produced the i-th
// expanded token.
func (b *TokenBuffer) SpellingFor(i int) source.Span {
	return b.expanded[i].Spelling
}

// IndexExpandedTokens builds the reverse index used by SpellingAt.
// Idempotent.
func (b *TokenBuffer) IndexExpandedTokens() {
	if b.byStart != nil {
		return
	}
	b.byStart = make([]int, len(b.expanded))
	for i := range b.expanded {
		b.byStart[i] = i
	}
	sort.SliceStable(b.byStart, func(x, y int) bool {
		return b.expanded[b.byStart[x]].Spelling.Start < b.expanded[b.byStart[y]].Spelling.Start
	})
}

// ExpandedAt returns the indices of expanded tokens whose spelling
// range contains the given offset in the given file. Requires
// IndexExpandedTokens.
func (b *TokenBuffer) ExpandedAt(file source.FileID, off uint32) []int {
	var out []int
	for _, i := range b.byStart {
		sp := b.expanded[i].Spelling
		if sp.File != file {
			continue
		}
		if sp.Start > off {
			break
		}
		if sp.Contains(off) || sp.Start == off {
			out = append(out, i)
		}
	}
	return out
}
