// Package preproc implements the directive-processing and
// macro-expansion layer between the lexer and the parser. It handles
// #include, #define, and #undef; other directives are recorded but not
// interpreted. Expansion keeps a reverse mapping from every expanded
// token to the source spelling that produced it.
package preproc

import (
	"strings"

	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/lexer"
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

const maxIncludeDepth = 64

// FileOpener resolves an include spelling to a loaded file. Angled
// says whether the include used <...> rather than "...".
type FileOpener interface {
	OpenInclude(name string, angled bool) (*source.File, bool)
}

// Config carries everything a Preprocessor needs beyond the main file.
type Config struct {
	Files    *source.FileSet
	Opener   FileOpener
	Reporter diag.Reporter

	// UsePredefines injects the builtin macro set before processing.
	// Disabled when a preamble is being reused (the preamble already
	// contains the predefines' effect).
	UsePredefines bool

	// Defines and Undefines come from -D/-U command-line flags. Like
	// the predefines they are skipped when a preamble is reused.
	Defines   []string // NAME or NAME=VALUE
	Undefines []string

	// Preamble, when non-nil, is restored instead of lexing the first
	// PreambleBytes.Size bytes of the main file.
	Preamble      *PreambleState
	PreambleBytes lexer.PreambleBounds
}

// Preprocessor drives directive processing and macro expansion for one
// main file. Exclusively owned by a single session; not safe for
// concurrent use.
type Preprocessor struct {
	files    *source.FileSet
	cfg      Config
	macros   *Table
	included map[string]bool
	reporter diag.Reporter

	collector *TokenCollector
}

// New creates a Preprocessor. The main file is supplied to Run.
func New(cfg Config) *Preprocessor {
	pp := &Preprocessor{
		files:    cfg.Files,
		cfg:      cfg,
		macros:   NewTable(),
		included: make(map[string]bool),
		reporter: cfg.Reporter,
	}
	if pp.reporter == nil {
		pp.reporter = diag.NopReporter{}
	}
	if cfg.UsePredefines && cfg.Preamble == nil {
		pp.definePredefines()
		pp.applyCommandMacros()
	}
	pp.RestoreState(cfg.Preamble)
	return pp
}

// SetCollector installs a token collector. Must be called before Run;
// the collector observes every expanded token the run produces.
func (pp *Preprocessor) SetCollector(c *TokenCollector) {
	pp.collector = c
}

// Macros exposes the live macro table (read-only use expected).
func (pp *Preprocessor) Macros() *Table {
	return pp.macros
}

// Run processes the main file: directives are applied in source order,
// macros are expanded, and the resulting token stream is returned.
// When a preamble is being reused, lexing starts past the reused byte
// extent instead of at offset zero.
func (pp *Preprocessor) Run(main *source.File) []ExpTok {
	var out []ExpTok

	start := uint32(0)
	atLineStart := true
	if pp.cfg.Preamble != nil && pp.cfg.PreambleBytes.Size != 0 {
		start = pp.cfg.PreambleBytes.Size
		if start > uint32(len(main.Content)) {
			start = uint32(len(main.Content))
		}
		atLineStart = pp.cfg.PreambleBytes.EndsAtStartOfLine
	}

	out = pp.processFile(main, start, atLineStart, 0, out)

	if pp.collector != nil {
		pp.collector.consume(out)
	}
	return out
}

func (pp *Preprocessor) processFile(f *source.File, startOff uint32, atLineStart bool, depth int, out []ExpTok) []ExpTok {
	lx := lexer.NewAt(f, lexer.Options{Reporter: pp.reporter}, startOff, atLineStart)
	for {
		tok := lx.Next()
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaDirective {
				out = pp.handleDirective(f, tr, depth, out)
			}
		}
		if tok.Kind == token.EOF {
			return out
		}
		out = pp.emit(tok, depth, lx, out)
	}
}

func (pp *Preprocessor) handleDirective(f *source.File, tr token.Trivia, depth int, out []ExpTok) []ExpTok {
	d := tr.Directive
	if d == nil {
		return out
	}
	switch d.Name {
	case "include":
		return pp.handleInclude(tr, depth, out)
	case "define":
		pp.handleDefine(tr)
	case "undef":
		name := strings.TrimSpace(d.Payload)
		if !pp.macros.Undef(name) {
			diag.ReportWarning(pp.reporter, diag.PPUndefUnknownMacro, tr.Span, "#undef of undefined macro '"+name+"'")
		}
	case "pragma", "if", "ifdef", "ifndef", "elif", "else", "endif", "error", "warning", "line":
		// recorded as trivia; not interpreted by this subset
	case "":
		// null directive ("#" alone) is valid and ignored
	default:
		diag.ReportWarning(pp.reporter, diag.PPUnknownDirective, tr.Span, "unknown directive '#"+d.Name+"'")
	}
	return out
}

func (pp *Preprocessor) handleInclude(tr token.Trivia, depth int, out []ExpTok) []ExpTok {
	if depth >= maxIncludeDepth {
		diag.ReportError(pp.reporter, diag.PPExpansionTooDeep, tr.Span, "include nesting too deep")
		return out
	}
	payload := strings.TrimSpace(tr.Directive.Payload)
	name, angled, ok := parseIncludeSpelling(payload)
	if !ok {
		diag.ReportError(pp.reporter, diag.LexBadDirective, tr.Span, "malformed #include")
		return out
	}
	if pp.included[name] {
		return out
	}
	pp.included[name] = true
	if pp.cfg.Opener == nil {
		diag.ReportError(pp.reporter, diag.PPIncludeNotFound, tr.Span, "'"+name+"' file not found")
		return out
	}
	inc, found := pp.cfg.Opener.OpenInclude(name, angled)
	if !found {
		diag.ReportError(pp.reporter, diag.PPIncludeNotFound, tr.Span, "'"+name+"' file not found")
		return out
	}
	return pp.processFile(inc, 0, true, depth+1, out)
}

// parseIncludeSpelling splits `<stdio.h>` / `"util.h"` into the bare
// name and the angled flag.
func parseIncludeSpelling(payload string) (name string, angled, ok bool) {
	if len(payload) < 2 {
		return "", false, false
	}
	switch {
	case payload[0] == '<' && payload[len(payload)-1] == '>':
		return payload[1 : len(payload)-1], true, true
	case payload[0] == '"' && payload[len(payload)-1] == '"':
		return payload[1 : len(payload)-1], false, true
	default:
		return "", false, false
	}
}

func (pp *Preprocessor) handleDefine(tr token.Trivia) {
	payload := tr.Directive.Payload
	m, ok := parseDefine(payload, tr.Span, pp)
	if !ok {
		diag.ReportError(pp.reporter, diag.LexBadDirective, tr.Span, "malformed #define")
		return
	}
	if pp.macros.Define(m) {
		diag.ReportWarning(pp.reporter, diag.PPMacroRedefined, tr.Span, "macro '"+m.Name+"' redefined")
	}
}

// parseDefine splits a #define payload into name, optional parameter
// list, and body tokens. A '(' immediately after the name (no space)
// makes the macro function-like.
func parseDefine(payload string, defSpan source.Span, pp *Preprocessor) (Macro, bool) {
	payload = strings.TrimLeft(payload, " \t")
	if payload == "" {
		return Macro{}, false
	}

	// name
	i := 0
	for i < len(payload) && (isIdentByte(payload[i])) {
		i++
	}
	if i == 0 {
		return Macro{}, false
	}
	m := Macro{Name: payload[:i], DefSpan: defSpan}
	rest := payload[i:]

	if strings.HasPrefix(rest, "(") {
		close := strings.IndexByte(rest, ')')
		if close < 0 {
			return Macro{}, false
		}
		m.FunctionLike = true
		paramList := rest[1:close]
		if strings.TrimSpace(paramList) != "" {
			for _, p := range strings.Split(paramList, ",") {
				m.Params = append(m.Params, strings.TrimSpace(p))
			}
		}
		rest = rest[close+1:]
	}

	m.Body = pp.lexFragment(strings.TrimSpace(rest))
	return m, true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// definePredefines installs the builtin macro set.
func (pp *Preprocessor) definePredefines() {
	builtins := map[string]string{
		"__clice__":        "1",
		"__STDC__":         "1",
		"__STDC_VERSION__": "201710L",
	}
	for name, body := range builtins {
		pp.macros.Define(Macro{Name: name, Body: pp.lexFragment(body)})
	}
}

// applyCommandMacros installs -D definitions and -U removals, in that
// order, mirroring how drivers hand them to the frontend.
func (pp *Preprocessor) applyCommandMacros() {
	for _, d := range pp.cfg.Defines {
		name, body := d, "1"
		if eq := strings.IndexByte(d, '='); eq >= 0 {
			name, body = d[:eq], d[eq+1:]
		}
		if name == "" {
			continue
		}
		pp.macros.Define(Macro{Name: name, Body: pp.lexFragment(body)})
	}
	for _, u := range pp.cfg.Undefines {
		pp.macros.Undef(u)
	}
}

// tokenizeFile lexes a whole file without diagnostics.
func tokenizeFile(f *source.File) []token.Token {
	return lexer.Tokenize(f, lexer.Options{})
}
