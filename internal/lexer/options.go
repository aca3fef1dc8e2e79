package lexer

import (
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics; nil drops them (lexing
	// still continues).
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
