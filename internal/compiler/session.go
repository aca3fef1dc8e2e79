package compiler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/endingly/clice/internal/ast"
	"github.com/endingly/clice/internal/complete"
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/diagfmt"
	"github.com/endingly/clice/internal/frontend"
	"github.com/endingly/clice/internal/preproc"
	"github.com/endingly/clice/internal/source"
)

// defaultMaxDiagnostics caps the per-build bag when the caller does
// not choose one.
const defaultMaxDiagnostics = 100

// Session owns every mutable piece of state one build touches: the
// parsed invocation, the option groups the setup phase rewrites, the
// file set, the diagnostic bag and its sink. A session serves exactly
// one build and is not safe for concurrent use.
type Session struct {
	inv    frontend.Invocation
	target frontend.Target

	frontOpts frontend.FrontendOptions
	ppOpts    frontend.PreprocessorOptions
	hsOpts    frontend.HeaderSearchOptions
	langOpts  frontend.LangOptions

	files      *source.FileSet
	bag        *diag.Bag
	diagWriter io.Writer
	diagColor  bool

	// mainDir anchors quoted include resolution.
	mainDir string

	// populated by action begin/execute
	pp       *preproc.Preprocessor
	builder  *ast.Builder
	expanded []preproc.ExpTok

	// completion consumer for code-complete builds
	consumer complete.Consumer

	targetReady bool
	released    bool
}

// NewSession parses args and builds a session with the fixed frontend
// policy applied: all comments are retained (dependency headers
// included) and per-file state survives the action so artifact
// wrappers stay readable after Execute. Argument parsing never fails;
// malformed arguments surface as diagnostics when the action begins.
func NewSession(args []string, diagWriter io.Writer) *Session {
	inv := frontend.ParseArgs(args)
	sess := &Session{
		inv:        inv,
		files:      source.NewFileSet(),
		bag:        diag.NewBag(defaultMaxDiagnostics),
		diagWriter: diagWriter,
	}
	sess.frontOpts.Inputs = inv.Inputs
	sess.frontOpts.OutputFile = inv.Output
	sess.hsOpts.IncludeDirs = inv.IncludeDirs
	sess.ppOpts.UsePredefines = true
	sess.ppOpts.RemappedFiles = make(map[string][]byte)
	sess.hsOpts.PrebuiltModuleFiles = make(map[string]string)
	sess.adjust()
	return sess
}

// adjust applies the non-negotiable language policy on top of the
// invocation. Callers cannot override these.
func (sess *Session) adjust() {
	sess.langOpts.Std = sess.inv.Std
	sess.langOpts.ParseAllComments = true
	sess.langOpts.RetainCommentsFromHeaders = true
}

func (sess *Session) setMaxDiagnostics(max int) {
	if max > 0 {
		sess.bag = diag.NewBag(max)
	}
}

// remap shadows path with in-memory content for the whole build.
func (sess *Session) remap(path string, content []byte) {
	sess.ppOpts.RemappedFiles[path] = content
}

// createTarget initializes the target from the invocation triple. An
// unknown triple is a configuration failure.
func (sess *Session) createTarget() error {
	if sess.targetReady {
		return nil
	}
	tgt, err := frontend.NewTarget(sess.inv.Triple)
	if err != nil {
		diag.ReportError(sess.reporter(), diag.DrvUnknownTarget, source.Span{}, err.Error())
		return err
	}
	sess.target = tgt
	sess.targetReady = true
	return nil
}

// Target returns the initialized target. Zero before createTarget.
func (sess *Session) Target() frontend.Target {
	return sess.target
}

func (sess *Session) reporter() diag.Reporter {
	return diag.BagReporter{Bag: sess.bag}
}

// Diagnostics exposes the session's bag.
func (sess *Session) Diagnostics() *diag.Bag {
	return sess.bag
}

// Files exposes the session's file set.
func (sess *Session) Files() *source.FileSet {
	return sess.files
}

// reportUnknownArgs surfaces unrecognized arguments as warnings. Runs
// once per build, at action begin.
func (sess *Session) reportUnknownArgs() {
	for _, arg := range sess.inv.Unknown {
		diag.ReportWarning(sess.reporter(), diag.DrvBadArgument, source.Span{}, fmt.Sprintf("unrecognized argument %q", arg))
	}
}

// openMain loads the main input file: the remap overlay wins, disk is
// the fallback.
func (sess *Session) openMain(path string) (*source.File, error) {
	sess.mainDir = filepath.Dir(path)
	if f, ok := sess.files.GetByPath(path); ok {
		return f, nil
	}
	if content, ok := sess.ppOpts.RemappedFiles[path]; ok {
		id := sess.files.AddVirtual(path, content)
		return sess.files.Get(id), nil
	}
	id, err := sess.files.Load(path)
	if err != nil {
		diag.ReportError(sess.reporter(), diag.DrvMissingInput, source.Span{}, fmt.Sprintf("cannot open %s: %v", path, err))
		return nil, err
	}
	return sess.files.Get(id), nil
}

// OpenInclude implements preproc.FileOpener. Quoted includes search
// the main file's directory first, then the include path; angled
// includes skip the main directory. The remap overlay shadows disk at
// every candidate.
func (sess *Session) OpenInclude(name string, angled bool) (*source.File, bool) {
	var dirs []string
	if !angled {
		dirs = append(dirs, sess.mainDir)
	}
	dirs = append(dirs, sess.hsOpts.IncludeDirs...)
	for _, dir := range dirs {
		candidate := name
		if dir != "" && !filepath.IsAbs(name) {
			candidate = filepath.Join(dir, name)
		}
		if f, ok := sess.files.GetByPath(candidate); ok {
			return f, true
		}
		if content, ok := sess.ppOpts.RemappedFiles[candidate]; ok {
			id := sess.files.AddVirtual(candidate, content)
			return sess.files.Get(id), true
		}
		if _, err := os.Stat(candidate); err == nil {
			if id, err := sess.files.Load(candidate); err == nil {
				return sess.files.Get(id), true
			}
		}
	}
	return nil, false
}

// newPreprocessor builds the per-run preprocessor from the session's
// option groups. Called during action begin, so a collector installed
// earlier would bind to nothing; executeAction installs collectors
// only after begin succeeds.
func (sess *Session) newPreprocessor() *preproc.Preprocessor {
	sess.pp = preproc.New(preproc.Config{
		Files:         sess.files,
		Opener:        sess,
		Reporter:      sess.reporter(),
		UsePredefines: sess.ppOpts.UsePredefines,
		Defines:       sess.inv.Defines,
		Undefines:     sess.inv.Undefines,
		Preamble:      sess.ppOpts.ImplicitPreamble,
		PreambleBytes: sess.ppOpts.PreambleBytes,
	})
	return sess.pp
}

// FlushDiagnostics renders the bag to the session's sink.
func (sess *Session) FlushDiagnostics() {
	if sess.diagWriter == nil || sess.bag.Len() == 0 {
		return
	}
	sess.bag.Sort()
	diagfmt.Render(sess.diagWriter, sess.files, sess.bag.Items(), sess.diagColor)
}

// release drops the heavy per-build state. Idempotent.
func (sess *Session) release() {
	if sess.released {
		return
	}
	sess.released = true
	sess.pp = nil
	sess.expanded = nil
}
