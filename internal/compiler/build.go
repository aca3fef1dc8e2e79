// Package compiler orchestrates single-unit builds: it configures a
// session from compiler-style arguments, binds prior preamble and
// module artifacts into it, executes a frontend action and hands back
// the product wrapped with everything needed to keep using it.
package compiler

import (
	"fmt"

	"github.com/endingly/clice/internal/artifact"
	"github.com/endingly/clice/internal/complete"
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/frontend"
	"github.com/endingly/clice/internal/lexer"
	"github.com/endingly/clice/internal/source"
)

// newSessionFor builds the session every entry point starts from:
// args parsed, diagnostics wired, the live content shadowing disk and
// params.Path installed as the unit to build.
func newSessionFor(params *CompilationParams) *Session {
	sess := NewSession(params.Args, params.DiagWriter)
	sess.diagColor = params.ColorDiagnostics
	sess.setMaxDiagnostics(params.MaxDiagnostics)
	if params.Content != nil {
		sess.remap(params.Path, params.Content)
	}
	sess.frontOpts.Inputs = []string{params.Path}
	return sess
}

// BuildAST builds the unit's declaration tree with full token
// collection. The returned ASTInfo owns the session; callers Close it
// when done.
func BuildAST(params CompilationParams) (*ASTInfo, error) {
	sess := newSessionFor(&params)
	if err := sess.applyReuse(&params); err != nil {
		return nil, err
	}
	return executeAction(sess, &SyntaxOnlyAction{}, true)
}

// BuildPreamble computes the unit's preamble boundary, builds the
// truncated prefix and serializes the resulting state to
// params.OutPath. Requests where the unit is opened under a different
// main file are not supported and fail with ErrUnsupported.
func BuildPreamble(params CompilationParams) (*PreambleArtifact, error) {
	if params.mainPath() != params.Path {
		sess := newSessionFor(&params)
		diag.ReportError(sess.reporter(), diag.DrvUnsupportedUse, source.Span{},
			fmt.Sprintf("cannot build preamble for %s under main file %s", params.Path, params.MainPath))
		sess.FlushDiagnostics()
		return nil, fmt.Errorf("%w: preamble generation for a unit opened under %s", ErrUnsupported, params.MainPath)
	}

	bounds := lexer.ComputePreamble(params.Content)
	prefix := params.Content[:bounds.Size]

	sess := newSessionFor(&params)
	// the build sees only the preamble bytes
	sess.remap(params.Path, prefix)
	sess.frontOpts.ProgramAction = frontend.GeneratePreamble
	sess.frontOpts.OutputFile = params.OutPath
	sess.ppOpts.GeneratePreamble = true
	sess.ppOpts.PreambleBytes = bounds
	sess.langOpts.CompilingPreamble = true

	action := &GeneratePreambleAction{digest: artifact.HashContent(prefix)}
	info, err := executeAction(sess, action, false)
	if err != nil {
		return nil, err
	}
	snapshot := append([]byte(nil), params.Content...)
	return &PreambleArtifact{
		info:       info,
		outPath:    params.OutPath,
		originPath: params.Path,
		content:    snapshot,
		bounds:     bounds,
		digest:     action.digest,
	}, nil
}

// BuildModule builds the unit as a module interface and serializes
// its exports to params.OutPath. The unit must declare a module.
func BuildModule(params CompilationParams) (*ModuleArtifact, error) {
	sess := newSessionFor(&params)
	if err := sess.applyReuse(&params); err != nil {
		return nil, err
	}
	sess.frontOpts.ProgramAction = frontend.GenerateModuleInterface
	sess.frontOpts.OutputFile = params.OutPath

	action := &GenerateModuleInterfaceAction{}
	info, err := executeAction(sess, action, false)
	if err != nil {
		return nil, err
	}
	return &ModuleArtifact{info: info, outPath: params.OutPath, name: action.moduleName}, nil
}

// CodeCompleteAt builds the unit just far enough to push completion
// candidates at the requested 1-based position into consumer. An
// empty req.File means the unit itself. No token buffer is collected;
// the run's own expanded stream serves the position check.
func CodeCompleteAt(params CompilationParams, req complete.Request, consumer complete.Consumer) (*ASTInfo, error) {
	sess := newSessionFor(&params)
	if err := sess.applyReuse(&params); err != nil {
		return nil, err
	}
	file := req.File
	if file == "" {
		file = params.Path
	}
	sess.frontOpts.CodeCompletionAt = frontend.Position{Line: req.Line, Column: req.Column, File: file}
	sess.consumer = consumer
	return executeAction(sess, &SyntaxOnlyAction{}, false)
}
