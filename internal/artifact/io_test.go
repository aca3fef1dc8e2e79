package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/endingly/clice/internal/preproc"
)

func TestPreambleRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.pch")
	in := &PreamblePayload{
		OriginPath:      "src/unit.c",
		Size:            42,
		EndsAtLineStart: true,
		ContentDigest:   HashContent([]byte("#define A 1\n")),
		Macros: []preproc.MacroRecord{
			{Name: "A", Body: "1"},
			{Name: "ADD", FunctionLike: true, Params: []string{"x", "y"}, Body: "x + y"},
		},
		Includes: []string{"util.h"},
	}
	if err := WritePreamble(path, in); err != nil {
		t.Fatalf("WritePreamble: %v", err)
	}

	out, err := ReadPreamble(path)
	if err != nil {
		t.Fatalf("ReadPreamble: %v", err)
	}
	if out.OriginPath != in.OriginPath || out.Size != in.Size || !out.EndsAtLineStart {
		t.Errorf("header mismatch: %+v", out)
	}
	if out.ContentDigest != in.ContentDigest {
		t.Error("digest mismatch")
	}
	if len(out.Macros) != 2 || out.Macros[1].Name != "ADD" || !out.Macros[1].FunctionLike {
		t.Errorf("macros = %+v", out.Macros)
	}
	st := out.State()
	if len(st.Macros) != 2 || len(st.Includes) != 1 {
		t.Errorf("state = %+v", st)
	}
}

func TestModuleRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.pcm")
	in := &ModulePayload{
		ModuleName: "core",
		OriginPath: "src/core.cppm",
		Exports: []ExportRecord{
			{Name: "open_file", Kind: 1, Type: "int"},
		},
	}
	if err := WriteModule(path, in); err != nil {
		t.Fatalf("WriteModule: %v", err)
	}
	out, err := ReadModule(path)
	if err != nil {
		t.Fatalf("ReadModule: %v", err)
	}
	if out.ModuleName != "core" || len(out.Exports) != 1 || out.Exports[0].Name != "open_file" {
		t.Errorf("payload = %+v", out)
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.pch")
	in := &PreamblePayload{OriginPath: "unit.c"}
	if err := WritePreamble(path, in); err != nil {
		t.Fatal(err)
	}
	// rewrite with a bumped schema to simulate a future writer
	in.Schema = schemaVersion + 1
	if err := writePayload(path, in); err != nil {
		t.Fatal(err)
	}
	_, err := ReadPreamble(path)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := WritePreamble(filepath.Join(dir, "unit.pch"), &PreamblePayload{}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "unit.pch" {
		t.Errorf("directory contents = %v", entries)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadPreamble(filepath.Join(t.TempDir(), "nope.pch"))
	if err == nil {
		t.Fatal("expected an error for a missing artifact")
	}
}
