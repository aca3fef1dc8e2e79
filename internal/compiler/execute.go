package compiler

import (
	"fmt"

	"github.com/endingly/clice/internal/artifact"
	"github.com/endingly/clice/internal/ast"
	"github.com/endingly/clice/internal/complete"
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/frontend"
	"github.com/endingly/clice/internal/parser"
	"github.com/endingly/clice/internal/preproc"
	"github.com/endingly/clice/internal/source"
)

// Action is one frontend product: syntax tree, preamble artifact or
// module interface artifact. Begin opens the main file and creates
// the run's preprocessor; Execute drives it to the product.
type Action interface {
	Kind() frontend.ActionKind
	BeginSourceFile(sess *Session) error
	Execute(sess *Session) error
	EndSourceFile(sess *Session)
}

// executeAction runs the full action protocol over a configured
// session. Each stage failure wraps its sentinel so callers can tell
// configuration, open and execution failures apart. The token
// collector is installed after begin: begin recreates the
// preprocessor, and a collector bound to the old instance would
// observe nothing.
func executeAction(sess *Session, action Action, collectTokens bool) (*ASTInfo, error) {
	if err := sess.createTarget(); err != nil {
		sess.FlushDiagnostics()
		return nil, fmt.Errorf("%w: creating target: %v", ErrConfiguration, err)
	}
	if len(sess.frontOpts.Inputs) == 0 {
		diag.ReportError(sess.reporter(), diag.DrvMissingInput, source.Span{}, "no input file")
		sess.FlushDiagnostics()
		return nil, fmt.Errorf("%w: no input file", ErrConfiguration)
	}

	if err := action.BeginSourceFile(sess); err != nil {
		sess.FlushDiagnostics()
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	var collector *preproc.TokenCollector
	if collectTokens {
		collector = preproc.NewTokenCollector()
		sess.pp.SetCollector(collector)
	}

	if err := action.Execute(sess); err != nil {
		action.EndSourceFile(sess)
		sess.FlushDiagnostics()
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	action.EndSourceFile(sess)
	sess.FlushDiagnostics()

	info := &ASTInfo{action: action, sess: sess}
	if collector != nil {
		info.tokens = collector.Buffer()
		if info.tokens != nil {
			info.tokens.IndexExpandedTokens()
		}
	}
	return info, nil
}

// beginCommon is the begin protocol shared by every action: surface
// deferred argument diagnostics, open the main input, build the
// preprocessor from the (possibly reuse-rewritten) option groups.
func beginCommon(sess *Session) (*source.File, error) {
	sess.reportUnknownArgs()
	main, err := sess.openMain(sess.frontOpts.Inputs[0])
	if err != nil {
		return nil, err
	}
	sess.newPreprocessor()
	return main, nil
}

// runFrontend expands and parses the main file, then resolves module
// imports against the prebuilt map. Every action that needs a tree
// goes through here.
func runFrontend(sess *Session, main *source.File) error {
	sess.expanded = sess.pp.Run(main)
	sess.builder = ast.NewBuilder()
	parser.ParseTokens(sess.builder, sess.expanded, parser.Options{Reporter: sess.reporter()})
	return resolveImports(sess)
}

// resolveImports loads prebuilt module interfaces for every import in
// the unit and splices their exports into the tree, so imported names
// resolve without re-parsing the module unit. An unmapped import is a
// diagnostic, not a build failure; an unreadable artifact aborts the
// action.
func resolveImports(sess *Session) error {
	file := sess.builder.File()
	if file == nil {
		return nil
	}
	for _, id := range file.Decls {
		d := sess.builder.Decl(id)
		if d == nil || d.Kind != ast.DeclImport {
			continue
		}
		path, ok := sess.hsOpts.PrebuiltModuleFiles[d.Name]
		if !ok {
			diag.ReportError(sess.reporter(), diag.PPModuleNotFound, d.Span,
				fmt.Sprintf("no prebuilt interface for module %q", d.Name))
			continue
		}
		payload, err := artifact.ReadModule(path)
		if err != nil {
			return fmt.Errorf("loading module %q from %s: %v", d.Name, path, err)
		}
		if payload.ModuleName != d.Name {
			diag.ReportError(sess.reporter(), diag.PPModuleNameMismatch, d.Span,
				fmt.Sprintf("artifact %s declares module %q, import names %q", path, payload.ModuleName, d.Name))
			continue
		}
		eids := make([]ast.DeclID, 0, len(payload.Exports))
		for _, exp := range payload.Exports {
			eids = append(eids, sess.builder.AddDecl(ast.Decl{
				Kind:     ast.DeclKind(exp.Kind),
				Name:     exp.Name,
				Type:     exp.Type,
				Doc:      exp.Doc,
				Exported: true,
			}))
		}
		// AddDecl may grow the arena, invalidating d; fetch again before
		// recording the members.
		imp := sess.builder.Decl(id)
		imp.Members = append(imp.Members, eids...)
		file.Decls = append(file.Decls, eids...)
	}
	return nil
}

// SyntaxOnlyAction builds the in-memory tree, optionally serving a
// completion request at the configured position.
type SyntaxOnlyAction struct {
	main *source.File
}

func (a *SyntaxOnlyAction) Kind() frontend.ActionKind { return frontend.ParseSyntaxOnly }

func (a *SyntaxOnlyAction) BeginSourceFile(sess *Session) error {
	main, err := beginCommon(sess)
	if err != nil {
		return err
	}
	a.main = main
	return nil
}

func (a *SyntaxOnlyAction) Execute(sess *Session) error {
	if err := runFrontend(sess, a.main); err != nil {
		return err
	}
	at := sess.frontOpts.CodeCompletionAt
	if at.File == "" {
		return nil
	}
	f, ok := sess.files.GetByPath(at.File)
	if !ok {
		return fmt.Errorf("completion file %s was not part of the build", at.File)
	}
	off, ok := sess.files.OffsetFor(f.ID, source.LineCol{Line: at.Line, Col: at.Column})
	if !ok {
		return fmt.Errorf("completion position %d:%d is outside %s", at.Line, at.Column, at.File)
	}
	complete.Run(sess.builder, preproc.NewTokenBuffer(sess.expanded), sess.pp.Macros(), f, off, sess.consumer)
	return nil
}

func (a *SyntaxOnlyAction) EndSourceFile(*Session) {}

// GeneratePreambleAction runs the frontend over the truncated unit
// and serializes the resulting preprocessor state.
type GeneratePreambleAction struct {
	main   *source.File
	digest artifact.Digest
}

func (a *GeneratePreambleAction) Kind() frontend.ActionKind { return frontend.GeneratePreamble }

func (a *GeneratePreambleAction) BeginSourceFile(sess *Session) error {
	main, err := beginCommon(sess)
	if err != nil {
		return err
	}
	a.main = main
	return nil
}

func (a *GeneratePreambleAction) Execute(sess *Session) error {
	if err := runFrontend(sess, a.main); err != nil {
		return err
	}
	st := sess.pp.CaptureState()
	payload := &artifact.PreamblePayload{
		OriginPath:      a.main.Path,
		Size:            sess.ppOpts.PreambleBytes.Size,
		EndsAtLineStart: sess.ppOpts.PreambleBytes.EndsAtStartOfLine,
		ContentDigest:   a.digest,
		Macros:          st.Macros,
		Includes:        st.Includes,
	}
	if err := artifact.WritePreamble(sess.frontOpts.OutputFile, payload); err != nil {
		diag.ReportError(sess.reporter(), diag.DrvOutputWrite, source.Span{},
			fmt.Sprintf("cannot write %s: %v", sess.frontOpts.OutputFile, err))
		return fmt.Errorf("writing preamble %s: %v", sess.frontOpts.OutputFile, err)
	}
	return nil
}

func (a *GeneratePreambleAction) EndSourceFile(*Session) {}

// GenerateModuleInterfaceAction serializes the unit's exported
// interface. The unit must declare a module.
type GenerateModuleInterfaceAction struct {
	main       *source.File
	moduleName string
}

func (a *GenerateModuleInterfaceAction) Kind() frontend.ActionKind {
	return frontend.GenerateModuleInterface
}

func (a *GenerateModuleInterfaceAction) BeginSourceFile(sess *Session) error {
	main, err := beginCommon(sess)
	if err != nil {
		return err
	}
	a.main = main
	return nil
}

func (a *GenerateModuleInterfaceAction) Execute(sess *Session) error {
	if err := runFrontend(sess, a.main); err != nil {
		return err
	}
	file := sess.builder.File()
	if file == nil || file.ModuleName == "" {
		return fmt.Errorf("%s does not declare a module", a.main.Path)
	}
	a.moduleName = file.ModuleName
	payload := &artifact.ModulePayload{
		ModuleName: file.ModuleName,
		OriginPath: a.main.Path,
		Exports:    collectExports(sess.builder, file),
	}
	if err := artifact.WriteModule(sess.frontOpts.OutputFile, payload); err != nil {
		diag.ReportError(sess.reporter(), diag.DrvOutputWrite, source.Span{},
			fmt.Sprintf("cannot write %s: %v", sess.frontOpts.OutputFile, err))
		return fmt.Errorf("writing module interface %s: %v", sess.frontOpts.OutputFile, err)
	}
	return nil
}

func (a *GenerateModuleInterfaceAction) EndSourceFile(*Session) {}

// collectExports flattens the exported declarations of a module unit.
func collectExports(b *ast.Builder, file *ast.File) []artifact.ExportRecord {
	var out []artifact.ExportRecord
	var walk func(ids []ast.DeclID)
	walk = func(ids []ast.DeclID) {
		for _, id := range ids {
			d := b.Decl(id)
			if d == nil {
				continue
			}
			if d.Kind == ast.DeclNamespace {
				walk(d.Members)
				continue
			}
			if !d.Exported {
				continue
			}
			out = append(out, artifact.ExportRecord{
				Name: d.Name,
				Kind: uint8(d.Kind),
				Type: d.Type,
				Doc:  d.Doc,
			})
		}
	}
	walk(file.Decls)
	return out
}
