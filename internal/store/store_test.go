package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/endingly/clice/internal/compiler"
)

func buildPreamble(t *testing.T, dir, name string, content []byte) *compiler.PreambleArtifact {
	t.Helper()
	art, err := compiler.BuildPreamble(compiler.CompilationParams{
		Path:    name,
		Content: content,
		OutPath: filepath.Join(dir, name+".pch"),
	})
	if err != nil {
		t.Fatalf("BuildPreamble(%s): %v", name, err)
	}
	return art
}

func TestPreambleRetention(t *testing.T) {
	s, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Purge()

	dir := t.TempDir()
	content := []byte("#define A 1\nint x;\n")
	art := buildPreamble(t, dir, "main.c", content)
	s.PutPreamble(art)

	got, ok := s.Preamble("main.c")
	if !ok || got != art {
		t.Fatal("retained preamble not returned")
	}
	if _, ok := s.Preamble("other.c"); ok {
		t.Fatal("unexpected hit for unknown path")
	}
}

func TestPreambleForChecksValidity(t *testing.T) {
	s, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Purge()

	dir := t.TempDir()
	content := []byte("#define A 1\nint x;\n")
	s.PutPreamble(buildPreamble(t, dir, "main.c", content))

	if _, ok := s.PreambleFor("main.c", content); !ok {
		t.Error("matching content must hit")
	}
	stale := []byte("#define A 2\nint x;\n")
	if _, ok := s.PreambleFor("main.c", stale); ok {
		t.Error("edited preamble region must miss")
	}
}

func TestEvictionDropsOldest(t *testing.T) {
	s, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Purge()

	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("unit%d.c", i)
		s.PutPreamble(buildPreamble(t, dir, name, []byte("#define A 1\nint x;\n")))
	}
	if _, ok := s.Preamble("unit0.c"); ok {
		t.Error("oldest entry must be evicted at capacity 2")
	}
	if _, ok := s.Preamble("unit2.c"); !ok {
		t.Error("newest entry must survive")
	}
}

func TestModuleMap(t *testing.T) {
	s, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Purge()

	dir := t.TempDir()
	art, err := compiler.BuildModule(compiler.CompilationParams{
		Path:    "core.cppm",
		Content: []byte("export module core;\nexport int f();\n"),
		OutPath: filepath.Join(dir, "core.pcm"),
	})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	s.PutModule(art)

	if got, ok := s.Module("core"); !ok || got.Name() != "core" {
		t.Fatal("retained module not returned")
	}
	paths := s.ModulePaths()
	if paths["core"] != filepath.Join(dir, "core.pcm") {
		t.Errorf("ModulePaths = %v", paths)
	}
}

func TestDrop(t *testing.T) {
	s, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	s.PutPreamble(buildPreamble(t, dir, "main.c", []byte("#define A 1\n")))
	s.Drop("main.c")
	if _, ok := s.Preamble("main.c"); ok {
		t.Error("dropped entry still present")
	}
}
