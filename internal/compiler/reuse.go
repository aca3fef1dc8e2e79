package compiler

import (
	"fmt"

	"github.com/endingly/clice/internal/artifact"
)

// applyReuse binds prior artifacts into the session's option groups.
// A preamble reference with zero size is ignored entirely: options
// stay untouched and the build lexes the file from byte zero. A
// non-zero reference installs the deserialized state, disables the
// builtin predefines (the preamble already carries their effect) and
// turns validation off; staleness detection is the caller's contract,
// the binder trusts what it is handed.
func (sess *Session) applyReuse(params *CompilationParams) error {
	if params.Preamble != nil && params.Preamble.Bounds.Size != 0 {
		payload, err := artifact.ReadPreamble(params.Preamble.Path)
		if err != nil {
			return fmt.Errorf("%w: reading preamble %s: %v", ErrOpen, params.Preamble.Path, err)
		}
		sess.ppOpts.UsePredefines = false
		sess.ppOpts.ImplicitPreamble = payload.State()
		sess.ppOpts.PreambleBytes = params.Preamble.Bounds
		sess.ppOpts.DisablePreambleValidation = true
	}
	for name, path := range params.Modules {
		sess.hsOpts.PrebuiltModuleFiles[name] = path
	}
	return nil
}
