package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// PreambleBounds describes the reusable prefix of a unit: the byte
// length of the leading directive/comment region and whether that
// region ends exactly at the start of a line.
type PreambleBounds struct {
	Size              uint32
	EndsAtStartOfLine bool
}

// ComputePreamble tokenizes content (no macro expansion, no includes)
// and finds where the preamble ends: the start of the line holding the
// first token that is not part of the leading run of directives,
// comments, and blank lines. A unit that is all preamble spans the
// whole content.
func ComputePreamble(content []byte) PreambleBounds {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("preamble-scan", content))

	lx := New(file, Options{})
	first := lx.Next()

	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	if first.Kind == token.EOF {
		endsAtLineStart := size == 0 || file.Content[size-1] == '\n'
		return PreambleBounds{Size: size, EndsAtStartOfLine: endsAtLineStart}
	}

	// cut at the start of the first token's line: a preamble holds only
	// complete lines
	cut := first.Span.Start
	for cut > 0 && file.Content[cut-1] != '\n' {
		cut--
	}
	return PreambleBounds{
		Size:              cut,
		EndsAtStartOfLine: cut == 0 || file.Content[cut-1] == '\n',
	}
}
