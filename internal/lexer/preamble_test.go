package lexer

import "testing"

func TestComputePreamble(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		wantSize        uint32
		wantAtLineStart bool
	}{
		{
			name:            "empty file",
			content:         "",
			wantSize:        0,
			wantAtLineStart: true,
		},
		{
			name:            "two includes then decl",
			content:         "#include <a>\n#include <b>\nint x;",
			wantSize:        26,
			wantAtLineStart: true,
		},
		{
			name:            "directives only, trailing newline",
			content:         "#include <a>\n#define X 1\n",
			wantSize:        25,
			wantAtLineStart: true,
		},
		{
			name:            "directives only, no trailing newline",
			content:         "#define X 1",
			wantSize:        11,
			wantAtLineStart: false,
		},
		{
			name:            "no preamble at all",
			content:         "int x;\n#include <a>\n",
			wantSize:        0,
			wantAtLineStart: true,
		},
		{
			name:            "comments and blank lines belong to the preamble",
			content:         "// header\n\n#include <a>\n\nint x;",
			wantSize:        25,
			wantAtLineStart: true,
		},
		{
			name:            "token shares line with last directive",
			content:         "#define X 1\nint x;",
			wantSize:        12,
			wantAtLineStart: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePreamble([]byte(tt.content))
			if got.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", got.Size, tt.wantSize)
			}
			if got.EndsAtStartOfLine != tt.wantAtLineStart {
				t.Errorf("EndsAtStartOfLine = %v, want %v", got.EndsAtStartOfLine, tt.wantAtLineStart)
			}
		})
	}
}

func TestComputePreambleCutsAtLineStart(t *testing.T) {
	// the first token sits mid-line after a block comment, so the cut
	// must fall back to the start of that line
	content := "#include <a>\n/* c */ int x;"
	got := ComputePreamble([]byte(content))
	if got.Size != 13 {
		t.Fatalf("Size = %d, want 13", got.Size)
	}
	if !got.EndsAtStartOfLine {
		t.Fatal("expected line-aligned preamble")
	}
}
