package preproc

import (
	"sort"

	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

// Macro is one #define: object-like or function-like.
type Macro struct {
	Name         string
	FunctionLike bool
	Params       []string
	Body         []token.Token // spelled body tokens, no EOF
	DefSpan      source.Span
}

// Table holds the macros visible at the current point of translation.
type Table struct {
	byName map[string]Macro
}

func NewTable() *Table {
	return &Table{byName: make(map[string]Macro)}
}

// Define installs a macro, replacing any previous definition.
// Returns whether a previous definition existed.
func (t *Table) Define(m Macro) bool {
	_, redefined := t.byName[m.Name]
	t.byName[m.Name] = m
	return redefined
}

// Undef removes a macro. Returns whether it was defined.
func (t *Table) Undef(name string) bool {
	_, ok := t.byName[name]
	delete(t.byName, name)
	return ok
}

// Lookup returns the macro for name, if defined.
func (t *Table) Lookup(name string) (Macro, bool) {
	m, ok := t.byName[name]
	return m, ok
}

func (t *Table) Len() int {
	return len(t.byName)
}

// Names returns all defined macro names in sorted order.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.byName))
	for name := range t.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

