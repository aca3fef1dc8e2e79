package compiler

import "errors"

// Build failures carry one of four sentinel causes so callers can
// branch on the failure stage with errors.Is instead of string
// matching.
var (
	// ErrConfiguration: the session could not be configured (bad
	// target triple, no input file).
	ErrConfiguration = errors.New("configuration failed")

	// ErrOpen: the action could not begin on the source file (input
	// unreadable, preamble artifact unreadable).
	ErrOpen = errors.New("failed to begin source file")

	// ErrExecution: the action started but could not finish (output
	// write failure, invalid completion position, missing module
	// declaration).
	ErrExecution = errors.New("failed to execute action")

	// ErrUnsupported: the request names a capability the pipeline
	// does not provide. Always a returned error, never a crash.
	ErrUnsupported = errors.New("unsupported request")
)
