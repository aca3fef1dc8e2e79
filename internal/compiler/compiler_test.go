package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/endingly/clice/internal/ast"
	"github.com/endingly/clice/internal/complete"
	"github.com/endingly/clice/internal/lexer"
)

func declNames(info *ASTInfo) []string {
	var out []string
	tree := info.Tree()
	if tree == nil {
		return out
	}
	for _, id := range tree.Decls {
		if d := info.Builder().Decl(id); d != nil {
			out = append(out, d.Name)
		}
	}
	return out
}

func hasName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func TestBuildASTBasic(t *testing.T) {
	info, err := BuildAST(CompilationParams{
		Path:    "main.c",
		Content: []byte("#define N 4\nint arr[N];\nint main() { return 0; }\n"),
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	defer info.Close()

	names := declNames(info)
	if !hasName(names, "arr") || !hasName(names, "main") {
		t.Errorf("decls = %v", names)
	}
	if info.Tokens() == nil || info.Tokens().Len() == 0 {
		t.Error("tree build must collect tokens")
	}
	if info.Diagnostics().HasErrors() {
		t.Errorf("unexpected errors: %v", info.Diagnostics().Items())
	}
}

func TestBuildASTEmitsDiagnosticsToWriter(t *testing.T) {
	var sink bytes.Buffer
	info, err := BuildAST(CompilationParams{
		Path:       "main.c",
		Content:    []byte("#include <missing.h>\nint x;\n"),
		DiagWriter: &sink,
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	defer info.Close()
	if sink.Len() == 0 {
		t.Error("diagnostics were not rendered to the configured writer")
	}
}

func TestCloseDropsTokensAndIsIdempotent(t *testing.T) {
	info, err := BuildAST(CompilationParams{
		Path:    "main.c",
		Content: []byte("int x;\n"),
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	if info.Tokens() == nil {
		t.Fatal("expected a token buffer before Close")
	}
	info.Close()
	if info.Tokens() != nil {
		t.Error("token buffer must be dropped on Close")
	}
	info.Close() // second close is a no-op
}

func TestUnknownTargetIsConfigurationFailure(t *testing.T) {
	_, err := BuildAST(CompilationParams{
		Path:    "main.c",
		Content: []byte("int x;\n"),
		Args:    []string{"--target=vax-unknown-plan9"},
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestMissingInputIsOpenFailure(t *testing.T) {
	_, err := BuildAST(CompilationParams{
		Path: filepath.Join(t.TempDir(), "does-not-exist.c"),
	})
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("err = %v, want ErrOpen", err)
	}
}

func TestUnreadablePreambleIsOpenFailure(t *testing.T) {
	_, err := BuildAST(CompilationParams{
		Path:    "main.c",
		Content: []byte("int x;\n"),
		Preamble: &PreambleRef{
			Path:   filepath.Join(t.TempDir(), "missing.pch"),
			Bounds: lexer.PreambleBounds{Size: 12, EndsAtStartOfLine: true},
		},
	})
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("err = %v, want ErrOpen", err)
	}
}

func TestNonModuleUnitIsExecutionFailure(t *testing.T) {
	_, err := BuildModule(CompilationParams{
		Path:    "main.c",
		Content: []byte("int x;\n"),
		OutPath: filepath.Join(t.TempDir(), "out.pcm"),
	})
	if !errors.Is(err, ErrExecution) {
		t.Fatalf("err = %v, want ErrExecution", err)
	}
}

func TestPreambleUnderOtherMainIsUnsupported(t *testing.T) {
	var sink bytes.Buffer
	_, err := BuildPreamble(CompilationParams{
		Path:       "header.h",
		MainPath:   "main.c",
		Content:    []byte("#define A 1\n"),
		OutPath:    filepath.Join(t.TempDir(), "out.pch"),
		DiagWriter: &sink,
	})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if sink.Len() == 0 {
		t.Error("unsupported request must still surface a diagnostic")
	}
}

func TestBuildPreambleWritesArtifact(t *testing.T) {
	out := filepath.Join(t.TempDir(), "main.pch")
	content := []byte("#define N 4\n#define TWICE(x) ((x) + (x))\nint arr[N];\n")
	art, err := BuildPreamble(CompilationParams{
		Path:    "main.c",
		Content: content,
		OutPath: out,
	})
	if err != nil {
		t.Fatalf("BuildPreamble: %v", err)
	}
	defer art.Close()

	if _, err := os.Stat(out); err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if art.Bounds().Size == 0 || !art.Bounds().EndsAtStartOfLine {
		t.Errorf("bounds = %+v", art.Bounds())
	}
	if art.OriginPath() != "main.c" {
		t.Errorf("origin = %q", art.OriginPath())
	}
}

func TestPreambleValidFor(t *testing.T) {
	content := []byte("#define N 4\nint arr[N];\n")
	art, err := BuildPreamble(CompilationParams{
		Path:    "main.c",
		Content: content,
		OutPath: filepath.Join(t.TempDir(), "main.pch"),
	})
	if err != nil {
		t.Fatalf("BuildPreamble: %v", err)
	}
	defer art.Close()

	if !art.ValidFor("main.c", content) {
		t.Error("artifact must be valid for the content it was built from")
	}
	// edits past the preamble keep it valid
	if !art.ValidFor("main.c", []byte("#define N 4\nint other;\n")) {
		t.Error("edit after the boundary must not invalidate the preamble")
	}
	// edits inside the preamble invalidate it
	if art.ValidFor("main.c", []byte("#define N 8\nint arr[N];\n")) {
		t.Error("edit inside the boundary must invalidate the preamble")
	}
	if art.ValidFor("other.c", content) {
		t.Error("a different unit must not reuse this preamble")
	}
}

func TestPreambleReuseMatchesFullBuild(t *testing.T) {
	content := []byte("#define N 4\n#define NAME(x) x\nint arr[N];\nint NAME(renamed);\n")

	full, err := BuildAST(CompilationParams{Path: "main.c", Content: content})
	if err != nil {
		t.Fatalf("full build: %v", err)
	}
	defer full.Close()

	art, err := BuildPreamble(CompilationParams{
		Path:    "main.c",
		Content: content,
		OutPath: filepath.Join(t.TempDir(), "main.pch"),
	})
	if err != nil {
		t.Fatalf("BuildPreamble: %v", err)
	}
	defer art.Close()

	reused, err := BuildAST(CompilationParams{
		Path:     "main.c",
		Content:  content,
		Preamble: art.Ref(),
	})
	if err != nil {
		t.Fatalf("reused build: %v", err)
	}
	defer reused.Close()

	want := declNames(full)
	got := declNames(reused)
	if len(want) == 0 {
		t.Fatalf("full build produced no decls")
	}
	if len(got) != len(want) {
		t.Fatalf("decls differ: full %v, reused %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("decl %d: full %q, reused %q", i, want[i], got[i])
		}
	}
}

func TestModuleBuildAndImport(t *testing.T) {
	dir := t.TempDir()
	pcm := filepath.Join(dir, "core.pcm")

	art, err := BuildModule(CompilationParams{
		Path:    "core.cppm",
		Content: []byte("export module core;\nexport int core_open();\nint internal_helper();\n"),
		OutPath: pcm,
	})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	defer art.Close()
	if art.Name() != "core" {
		t.Fatalf("module name = %q", art.Name())
	}

	info, err := BuildAST(CompilationParams{
		Path:    "main.cpp",
		Content: []byte("import core;\nint main() { return 0; }\n"),
		Modules: map[string]string{"core": pcm},
	})
	if err != nil {
		t.Fatalf("BuildAST with import: %v", err)
	}
	defer info.Close()

	names := declNames(info)
	if !hasName(names, "core_open") {
		t.Errorf("imported export missing from tree: %v", names)
	}
	if hasName(names, "internal_helper") {
		t.Errorf("non-exported decl leaked through the interface: %v", names)
	}
}

func TestUnmappedImportReportsButBuilds(t *testing.T) {
	info, err := BuildAST(CompilationParams{
		Path:    "main.cpp",
		Content: []byte("import nowhere;\nint main() { return 0; }\n"),
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	defer info.Close()
	if !info.Diagnostics().HasErrors() {
		t.Error("unmapped import must produce a diagnostic")
	}
	if !hasName(declNames(info), "main") {
		t.Error("build must still complete")
	}
}

func TestCodeCompleteAt(t *testing.T) {
	var collector complete.Collector
	info, err := CodeCompleteAt(CompilationParams{
		Path:    "main.c",
		Content: []byte("int counter;\nint main() {\n  co\n}\n"),
	}, complete.Request{Line: 3, Column: 5}, &collector)
	if err != nil {
		t.Fatalf("CodeCompleteAt: %v", err)
	}
	defer info.Close()

	var found bool
	for _, item := range collector.Items() {
		if item.Spelling == "counter" && item.Kind == complete.ItemVariable {
			found = true
		}
	}
	if !found {
		t.Errorf("counter missing from candidates: %v", collector.Items())
	}
	if info.Tokens() != nil {
		t.Error("completion builds must not collect a token buffer")
	}
}

func TestCodeCompleteAtBadPosition(t *testing.T) {
	var collector complete.Collector
	_, err := CodeCompleteAt(CompilationParams{
		Path:    "main.c",
		Content: []byte("int x;\n"),
	}, complete.Request{Line: 99, Column: 1}, &collector)
	if !errors.Is(err, ErrExecution) {
		t.Fatalf("err = %v, want ErrExecution", err)
	}
}

func TestQuotedIncludeFromDisk(t *testing.T) {
	dir := t.TempDir()
	header := filepath.Join(dir, "util.h")
	if err := os.WriteFile(header, []byte("int util_fn();\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mainPath := filepath.Join(dir, "main.c")

	info, err := BuildAST(CompilationParams{
		Path:    mainPath,
		Content: []byte("#include \"util.h\"\nint main() { return 0; }\n"),
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	defer info.Close()
	if !hasName(declNames(info), "util_fn") {
		t.Errorf("header declaration missing: %v", declNames(info))
	}
}

func TestIncludeDirFlag(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dep.h"), []byte("int dep_fn();\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := BuildAST(CompilationParams{
		Path:    "main.c",
		Content: []byte("#include <dep.h>\nint main() { return 0; }\n"),
		Args:    []string{"-I" + dir},
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	defer info.Close()
	if !hasName(declNames(info), "dep_fn") {
		t.Errorf("angled include not resolved through -I: %v", declNames(info))
	}
}

func TestOutputWriteFailureIsExecutionFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := BuildPreamble(CompilationParams{
		Path:    "main.c",
		Content: []byte("#define A 1\n"),
		OutPath: filepath.Join(blocker, "nested", "out.pch"),
	})
	if !errors.Is(err, ErrExecution) {
		t.Fatalf("err = %v, want ErrExecution", err)
	}
}

func TestImportSplicesAllExportsIntoLargeUnit(t *testing.T) {
	dir := t.TempDir()
	pcm := filepath.Join(dir, "big.pcm")

	var mod strings.Builder
	mod.WriteString("export module big;\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&mod, "export int exported_%d();\n", i)
	}
	art, err := BuildModule(CompilationParams{
		Path:    "big.cppm",
		Content: []byte(mod.String()),
		OutPath: pcm,
	})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	defer art.Close()

	// enough declarations before the splice that the arena has to grow
	// while the exports are appended
	var main strings.Builder
	main.WriteString("import big;\n")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&main, "int filler_%d;\n", i)
	}
	info, err := BuildAST(CompilationParams{
		Path:    "main.cpp",
		Content: []byte(main.String()),
		Modules: map[string]string{"big": pcm},
	})
	if err != nil {
		t.Fatalf("BuildAST with import: %v", err)
	}
	defer info.Close()

	var imp *ast.Decl
	for _, id := range info.Tree().Decls {
		if d := info.Builder().Decl(id); d != nil && d.Kind == ast.DeclImport {
			imp = d
			break
		}
	}
	if imp == nil {
		t.Fatal("import declaration missing from tree")
	}
	if len(imp.Members) != 12 {
		t.Fatalf("import decl holds %d of 12 export members", len(imp.Members))
	}
	names := declNames(info)
	for i := 0; i < 12; i++ {
		if !hasName(names, fmt.Sprintf("exported_%d", i)) {
			t.Errorf("exported_%d missing from tree", i)
		}
	}
}

func TestZeroSizePreambleRefIsNoReuse(t *testing.T) {
	content := []byte("#define N 4\nint arr[N];\nint main() { return 0; }\n")

	plain, err := BuildAST(CompilationParams{Path: "main.c", Content: content})
	if err != nil {
		t.Fatalf("plain build: %v", err)
	}
	defer plain.Close()

	// a zero-size ref must be ignored entirely: the path is never read
	withRef, err := BuildAST(CompilationParams{
		Path:     "main.c",
		Content:  content,
		Preamble: &PreambleRef{Path: filepath.Join(t.TempDir(), "never-written.pch")},
	})
	if err != nil {
		t.Fatalf("zero-size ref build: %v", err)
	}
	defer withRef.Close()

	want := declNames(plain)
	got := declNames(withRef)
	if len(want) == 0 || len(got) != len(want) {
		t.Fatalf("decls differ: plain %v, zero-size ref %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("decl %d: plain %q, ref %q", i, want[i], got[i])
		}
	}
}

func TestRepeatedReuseKeepsArtifactBytes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "main.pch")
	content := []byte("#define N 4\nint arr[N];\n")
	art, err := BuildPreamble(CompilationParams{
		Path:    "main.c",
		Content: content,
		OutPath: out,
	})
	if err != nil {
		t.Fatalf("BuildPreamble: %v", err)
	}
	defer art.Close()

	before, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		info, err := BuildAST(CompilationParams{
			Path:     "main.c",
			Content:  content,
			Preamble: art.Ref(),
		})
		if err != nil {
			t.Fatalf("reuse %d: %v", i, err)
		}
		info.Close()
	}
	after, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("reuse must never rewrite the artifact")
	}
}

func TestStaleReuseDoesNotCrash(t *testing.T) {
	art, err := BuildPreamble(CompilationParams{
		Path:    "main.c",
		Content: []byte("#define N 4\nint arr[N];\n"),
		OutPath: filepath.Join(t.TempDir(), "main.pch"),
	})
	if err != nil {
		t.Fatalf("BuildPreamble: %v", err)
	}
	defer art.Close()

	// content no longer matches the artifact, and is shorter than the
	// recorded boundary; the build may mis-resolve but must complete
	stale := []byte("int x;\n")
	if art.ValidFor("main.c", stale) {
		t.Fatal("stale content must fail validation")
	}
	info, err := BuildAST(CompilationParams{
		Path:     "main.c",
		Content:  stale,
		Preamble: art.Ref(),
	})
	if err != nil {
		t.Fatalf("stale reuse must not fail hard: %v", err)
	}
	info.Close()
}

func TestColorDiagnosticsFlagReachesRenderer(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	content := []byte("#include <missing.h>\nint x;\n")

	var plain bytes.Buffer
	info, err := BuildAST(CompilationParams{
		Path:       "main.c",
		Content:    content,
		DiagWriter: &plain,
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	info.Close()
	if bytes.Contains(plain.Bytes(), []byte("\x1b[")) {
		t.Error("colors rendered without ColorDiagnostics")
	}

	var colored bytes.Buffer
	info, err = BuildAST(CompilationParams{
		Path:             "main.c",
		Content:          content,
		DiagWriter:       &colored,
		ColorDiagnostics: true,
	})
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}
	info.Close()
	if !bytes.Contains(colored.Bytes(), []byte("\x1b[")) {
		t.Errorf("ColorDiagnostics produced no escapes:\n%s", colored.String())
	}
}
