// Package artifact defines the serialized on-disk form of reusable
// build products: preamble state and module interfaces. Payloads are
// msgpack-encoded behind a schema version and written atomically.
package artifact

import (
	"github.com/zeebo/blake3"

	"github.com/endingly/clice/internal/preproc"
)

// Current schema version - increment when payload formats change.
const schemaVersion uint16 = 1

// Digest is a BLAKE3 content hash.
type Digest [32]byte

// HashContent digests raw content bytes.
func HashContent(content []byte) Digest {
	return blake3.Sum256(content)
}

// PreamblePayload is the serialized form of a reusable preamble.
type PreamblePayload struct {
	Schema uint16

	// OriginPath is the unit the preamble was generated from.
	OriginPath string
	// Size and EndsAtLineStart are the preamble bounds of the origin.
	Size            uint32
	EndsAtLineStart bool
	// ContentDigest hashes the first Size bytes of the origin text.
	ContentDigest Digest

	// Macro and include state captured at the end of the preamble.
	Macros   []preproc.MacroRecord
	Includes []string
}

// State rebuilds the preprocessor state held in the payload.
func (p *PreamblePayload) State() *preproc.PreambleState {
	return &preproc.PreambleState{Macros: p.Macros, Includes: p.Includes}
}

// ExportRecord is one exported declaration of a module interface.
type ExportRecord struct {
	Name string
	Kind uint8 // ast.DeclKind
	Type string
	Doc  string
}

// ModulePayload is the serialized form of a module interface.
type ModulePayload struct {
	Schema uint16

	ModuleName string
	OriginPath string
	Exports    []ExportRecord
}
