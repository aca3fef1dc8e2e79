package frontend

import (
	"github.com/endingly/clice/internal/lexer"
	"github.com/endingly/clice/internal/preproc"
)

// Position is a 1-based line/column location used for completion.
type Position struct {
	Line   uint32
	Column uint32
	File   string
}

// FrontendOptions drive what the action run produces.
type FrontendOptions struct {
	ProgramAction    ActionKind
	OutputFile       string
	CodeCompletionAt Position
	// Inputs is the (single) input path after remapping.
	Inputs []string
}

// PreprocessorOptions configure the macro layer of a run.
type PreprocessorOptions struct {
	// UsePredefines injects builtin macros; disabled when a preamble
	// is reused.
	UsePredefines bool
	// ImplicitPreamble is the deserialized prior preamble state,
	// installed by the reuse binder.
	ImplicitPreamble *preproc.PreambleState
	// PreambleBytes is the reused byte extent of the main file.
	PreambleBytes lexer.PreambleBounds
	// DisablePreambleValidation skips any consistency check between
	// the preamble and the current session state. Set whenever a
	// preamble is reused; staleness detection is the caller's
	// contract.
	DisablePreambleValidation bool
	// GeneratePreamble marks a preamble-generation run.
	GeneratePreamble bool
	// RemappedFiles maps a path to in-memory content overriding any
	// on-disk file.
	RemappedFiles map[string][]byte
}

// HeaderSearchOptions configure include and module resolution.
type HeaderSearchOptions struct {
	IncludeDirs []string
	// PrebuiltModuleFiles maps module name to a serialized module
	// interface artifact path.
	PrebuiltModuleFiles map[string]string
}

// LangOptions are fixed-policy language toggles.
type LangOptions struct {
	Std string
	// ParseAllComments retains documentation comments everywhere,
	// including dependency headers; the hint feature reads them.
	ParseAllComments          bool
	RetainCommentsFromHeaders bool
	// CompilingPreamble marks the session as building a preamble.
	CompilingPreamble bool
}
