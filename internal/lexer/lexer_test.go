package lexer

import (
	"testing"

	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/source"
	"github.com/endingly/clice/internal/token"
)

func lexAll(t *testing.T, content string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(content)))
	return Tokenize(file, Options{})
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexDeclaration(t *testing.T) {
	tokens := lexAll(t, "int main() { return 0; }")
	want := []token.Kind{
		token.KwInt, token.Ident, token.LParen, token.RParen,
		token.LBrace, token.KwReturn, token.IntLit, token.Semicolon,
		token.RBrace, token.EOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if tokens[1].Text != "main" {
		t.Errorf("ident text = %q, want %q", tokens[1].Text, "main")
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"0x1F", token.IntLit},
		{"42u", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"1.5f", token.FloatLit},
		{".25", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens := lexAll(t, tt.src)
			if tokens[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != tt.src {
				t.Errorf("text = %q, want %q", tokens[0].Text, tt.src)
			}
		})
	}
}

func TestLexStringsAndChars(t *testing.T) {
	tokens := lexAll(t, `"hi\n" 'a'`)
	if tokens[0].Kind != token.StringLit {
		t.Errorf("first = %v, want StringLit", tokens[0].Kind)
	}
	if tokens[1].Kind != token.CharLit {
		t.Errorf("second = %v, want CharLit", tokens[1].Kind)
	}
}

func TestUnterminatedStringReports(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte("\"oops\n")))
	bag := diag.NewBag(16)
	Tokenize(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for the unterminated string")
	}
}

func TestDirectiveTrivia(t *testing.T) {
	tokens := lexAll(t, "#include <stdio.h>\n#define N 4\nint x;")
	first := tokens[0]
	if first.Kind != token.KwInt {
		t.Fatalf("first token = %v, want KwInt", first.Kind)
	}
	var directives []*token.Directive
	for _, tr := range first.Leading {
		if tr.Kind == token.TriviaDirective {
			directives = append(directives, tr.Directive)
		}
	}
	if len(directives) != 2 {
		t.Fatalf("got %d directives, want 2", len(directives))
	}
	if directives[0].Name != "include" || directives[0].Payload != "<stdio.h>" {
		t.Errorf("directive 0 = %q %q", directives[0].Name, directives[0].Payload)
	}
	if directives[1].Name != "define" || directives[1].Payload != "N 4" {
		t.Errorf("directive 1 = %q %q", directives[1].Name, directives[1].Payload)
	}
}

func TestDirectiveOnlyAtLineStart(t *testing.T) {
	tokens := lexAll(t, "int x; #not_a_directive\n")
	for _, tok := range tokens {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaDirective {
				t.Fatal("mid-line # must not produce a directive")
			}
		}
	}
}

func TestEOFKeepsTrailingTrivia(t *testing.T) {
	tokens := lexAll(t, "#define ONLY 1\n")
	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		t.Fatalf("last token = %v, want EOF", last.Kind)
	}
	found := false
	for _, tr := range last.Leading {
		if tr.Kind == token.TriviaDirective && tr.Directive.Name == "define" {
			found = true
		}
	}
	if !found {
		t.Fatal("directive-only file must surface its directives on EOF")
	}
}

func TestDocComments(t *testing.T) {
	tokens := lexAll(t, "/// adds things\nint add;")
	if doc := tokens[0].DocComment(); doc == "" {
		t.Fatal("expected doc comment on the following token")
	}
}

func TestNewAtSkipsPrefix(t *testing.T) {
	content := "#define X 1\nint x;"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(content)))

	lx := NewAt(file, Options{}, 12, true)
	tok := lx.Next()
	if tok.Kind != token.KwInt {
		t.Fatalf("first token after skip = %v, want KwInt", tok.Kind)
	}
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaDirective {
			t.Fatal("skipped prefix must not re-surface its directives")
		}
	}
}
