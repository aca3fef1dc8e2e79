package diagfmt

import (
	"strings"
	"testing"

	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/source"
)

func TestRenderWithLocation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c", []byte("int x = broken;\n"))

	var buf strings.Builder
	Render(&buf, fs, []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SynExpectSemicolon,
		Message:  "expected ';'",
		Primary:  source.Span{File: id, Start: 8, End: 14},
	}}, false)

	out := buf.String()
	if !strings.Contains(out, "main.c:1:9: error SYN3003: expected ';'") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "int x = broken;") {
		t.Errorf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~~") {
		t.Errorf("missing caret underline:\n%s", out)
	}
}

func TestRenderWithoutLocation(t *testing.T) {
	var buf strings.Builder
	Render(&buf, source.NewFileSet(), []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.DrvBadArgument,
		Message:  "unrecognized command-line argument '--frob'",
	}}, false)

	out := buf.String()
	if !strings.Contains(out, "warning DRV4001: unrecognized command-line argument '--frob'") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, ":0:0") {
		t.Errorf("location printed for spanless diagnostic:\n%s", out)
	}
}

func TestRenderNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c", []byte("#define A 1\nint A;\n"))

	var buf strings.Builder
	Render(&buf, fs, []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.PPMacroRedefined,
		Message:  "macro redefined",
		Primary:  source.Span{File: id, Start: 16, End: 17},
		Notes: []diag.Note{{
			Msg:  "previous definition here",
			Span: source.Span{File: id, Start: 8, End: 9},
		}},
	}}, false)

	out := buf.String()
	if !strings.Contains(out, "main.c:2:5: error PP") {
		t.Errorf("missing primary line:\n%s", out)
	}
	if !strings.Contains(out, "main.c:1:9: note: previous definition here") {
		t.Errorf("missing note line:\n%s", out)
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("int x;\n"))

	var buf strings.Builder
	Short(&buf, fs, []diag.Diagnostic{
		{
			Severity: diag.SevError,
			Code:     diag.LexUnterminatedString,
			Message:  "unterminated string literal",
			Primary:  source.Span{File: id, Start: 0, End: 3},
		},
		{
			Severity: diag.SevWarning,
			Code:     diag.DrvBadArgument,
			Message:  "bad flag",
		},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "error LEX1002 a.c:1:1 unterminated string literal" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "warning DRV4001 bad flag" {
		t.Errorf("line 2 = %q", lines[1])
	}
}
