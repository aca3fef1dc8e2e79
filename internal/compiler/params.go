package compiler

import (
	"io"

	"github.com/endingly/clice/internal/lexer"
)

// PreambleRef points a build at a previously generated preamble
// artifact. Bounds must be the bounds the artifact was generated
// with; the binder installs them verbatim and performs no validation.
type PreambleRef struct {
	Path   string
	Bounds lexer.PreambleBounds
}

// CompilationParams describes one build request. Content is the
// editor's live text for Path; it shadows whatever is on disk.
type CompilationParams struct {
	// Path is the unit being built.
	Path string
	// MainPath, when set, names the unit whose preamble governs Path
	// (header opened in the context of a source file). Only preamble
	// generation rejects the distinction; see BuildPreamble.
	MainPath string
	// Content is the in-memory text of Path.
	Content []byte
	// Args are compiler-style command-line arguments.
	Args []string

	// Preamble, when non-nil, is reused instead of re-lexing the
	// leading bytes of Content.
	Preamble *PreambleRef
	// Modules maps imported module names to prebuilt interface
	// artifact paths. Not consulted by preamble generation, which
	// never resolves imports.
	Modules map[string]string

	// OutPath receives the artifact for generation builds.
	OutPath string

	// DiagWriter receives rendered diagnostics. Nil discards them.
	DiagWriter io.Writer
	// ColorDiagnostics renders diagnostics with ANSI colors.
	ColorDiagnostics bool
	// MaxDiagnostics caps the per-build diagnostic bag. Zero means
	// the default cap.
	MaxDiagnostics int
}

func (p *CompilationParams) mainPath() string {
	if p.MainPath != "" {
		return p.MainPath
	}
	return p.Path
}
