package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.c", []byte("\xEF\xBB\xBFint x;\r\nint y;\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "int x;\nint y;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("virtual flag not set")
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.c")
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(fs.Get(id).Content) != "int x;\n" {
		t.Errorf("content = %q", fs.Get(id).Content)
	}
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.c")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRemapShadowsEarlierEntry(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.c", []byte("int old;\n"))
	fs.AddVirtual("a.c", []byte("int new_;\n"))
	f, ok := fs.GetByPath("a.c")
	if !ok {
		t.Fatal("path lookup failed")
	}
	if string(f.Content) != "int new_;\n" {
		t.Errorf("latest content not returned: %q", f.Content)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2 (both entries kept)", fs.Len())
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.c", []byte("one\ntwo\nthree\n"))

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{3, 1, 4},  // the newline itself
		{4, 2, 1},  // first byte of line 2
		{6, 2, 3},
		{8, 3, 1},
		{12, 3, 5},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("off %d = %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestOffsetForRoundtrip(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.c", []byte("one\ntwo\nthree\n"))
	f := fs.Get(id)

	for off := uint32(0); off < uint32(len(f.Content)); off++ {
		lc := toLineCol(f.LineIdx, off)
		back, ok := fs.OffsetFor(id, lc)
		if !ok || back != off {
			t.Errorf("off %d -> %d:%d -> %d (ok=%v)", off, lc.Line, lc.Col, back, ok)
		}
	}
	if _, ok := fs.OffsetFor(id, LineCol{Line: 99, Col: 1}); ok {
		t.Error("line past EOF must not resolve")
	}
	if _, ok := fs.OffsetFor(id, LineCol{Line: 0, Col: 1}); ok {
		t.Error("0-based positions must not resolve")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.c", []byte("one\ntwo\nthree")))
	tests := []struct {
		line uint32
		want string
	}{
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 10, End: 12}
	c := a.Cover(b)
	if c.Start != 4 || c.End != 12 {
		t.Errorf("Cover = %v", c)
	}
	if !a.Contains(4) || a.Contains(8) {
		t.Error("Contains must be half-open")
	}
	other := Span{File: 2, Start: 0, End: 1}
	if got := a.Cover(other); got != a {
		t.Error("Cover across files must be a no-op")
	}
}
