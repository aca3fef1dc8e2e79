package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrSchemaMismatch is returned when a payload was written by an
// incompatible version.
var ErrSchemaMismatch = errors.New("artifact schema mismatch")

// WritePreamble serializes a preamble payload to path atomically.
func WritePreamble(path string, payload *PreamblePayload) error {
	payload.Schema = schemaVersion
	return writePayload(path, payload)
}

// ReadPreamble deserializes a preamble payload from path.
func ReadPreamble(path string) (*PreamblePayload, error) {
	var payload PreamblePayload
	if err := readPayload(path, &payload); err != nil {
		return nil, err
	}
	if payload.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: preamble %q has schema %d, want %d",
			ErrSchemaMismatch, path, payload.Schema, schemaVersion)
	}
	return &payload, nil
}

// WriteModule serializes a module payload to path atomically.
func WriteModule(path string, payload *ModulePayload) error {
	payload.Schema = schemaVersion
	return writePayload(path, payload)
}

// ReadModule deserializes a module payload from path.
func ReadModule(path string) (*ModulePayload, error) {
	var payload ModulePayload
	if err := readPayload(path, &payload); err != nil {
		return nil, err
	}
	if payload.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: module %q has schema %d, want %d",
			ErrSchemaMismatch, path, payload.Schema, schemaVersion)
	}
	return &payload, nil
}

// writePayload encodes to a temp file in the target directory and
// renames into place, so readers never observe a partial artifact.
func writePayload(path string, payload any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func readPayload(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	return dec.Decode(out)
}
