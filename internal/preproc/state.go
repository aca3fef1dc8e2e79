package preproc

import (
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// MacroRecord carries one macro definition in a serialization-friendly
// shape (token bodies flattened back to text).
type MacroRecord struct {
	Name         string
	FunctionLike bool
	Params       []string
	Body         string
}

// PreambleState is the preprocessor state captured at the end of a
// preamble build: every macro the preamble defined and every file it
// included. Restoring it lets a later build skip re-lexing the
// preamble bytes entirely.
type PreambleState struct {
	Macros   []MacroRecord
	Includes []string
}

// CaptureState snapshots the preprocessor's macro table and include
// set into a PreambleState.
func (pp *Preprocessor) CaptureState() *PreambleState {
	st := &PreambleState{}
	for _, name := range pp.macros.Names() {
		m, _ := pp.macros.Lookup(name)
		st.Macros = append(st.Macros, MacroRecord{
			Name:         m.Name,
			FunctionLike: m.FunctionLike,
			Params:       m.Params,
			Body:         bodyText(m.Body),
		})
	}
	for path := range pp.included {
		st.Includes = append(st.Includes, path)
	}
	return st
}

// RestoreState rebuilds the macro table and include set from a
// captured PreambleState. Macro bodies are re-lexed from their stored
// text into a synthetic file.
func (pp *Preprocessor) RestoreState(st *PreambleState) {
	if st == nil {
		return
	}
	for _, rec := range st.Macros {
		pp.macros.Define(Macro{
			Name:         rec.Name,
			FunctionLike: rec.FunctionLike,
			Params:       rec.Params,
			Body:         pp.lexFragment(rec.Body),
		})
	}
	for _, path := range st.Includes {
		pp.included[path] = true
	}
}

// bodyText flattens body tokens back to a space-separated spelling.
func bodyText(body []token.Token) string {
	out := ""
	for i, tok := range body {
		if i > 0 {
			out += " "
		}
		out += tok.Text
	}
	return out
}

// lexFragment tokenizes a macro body fragment inside a synthetic file.
// Spans of the resulting tokens point into that synthetic file; they
// are only used as spelling fallbacks.
func (pp *Preprocessor) lexFragment(text string) []token.Token {
	if text == "" {
		return nil
	}
	id := pp.files.AddVirtual("macro-fragment", []byte(text))
	return significantTokens(pp.files.Get(id))
}

// significantTokens lexes a file and drops the trailing EOF.
func significantTokens(f *source.File) []token.Token {
	var out []token.Token
	for _, tok := range tokenizeFile(f) {
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tok)
	}
	return out
}
