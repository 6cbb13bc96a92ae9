package lexer_test

import (
	"testing"

	"rblint/internal/diag"
	"rblint/internal/lexer"
	"rblint/internal/source"
	"rblint/internal/token"
)

// testReporter collects everything the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) errorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			count++
		}
	}
	return count
}

func tokenize(t *testing.T, src string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rb", []byte(src))
	r := &testReporter{}
	return lexer.Tokenize(fs.Get(id), r), r
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeCallChain(t *testing.T) {
	toks, r := tokenize(t, "s.gsub('a', 'b')")
	want := []token.Kind{
		token.Ident, token.Dot, token.Ident, token.LParen,
		token.StringLit, token.Comma, token.StringLit, token.RParen,
		token.EOF,
	}
	if r.errorCount() != 0 {
		t.Fatalf("unexpected errors: %+v", r.diagnostics)
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if toks[2].Text != "gsub" {
		t.Errorf("expected method text gsub, got %q", toks[2].Text)
	}
	if toks[4].Text != "'a'" {
		t.Errorf("string token must keep its quotes, got %q", toks[4].Text)
	}
}

func TestTokenizeBangMethod(t *testing.T) {
	toks, _ := tokenize(t, "s.gsub!(/x/, '')")
	if toks[2].Kind != token.Ident || toks[2].Text != "gsub!" {
		t.Errorf("expected gsub! ident, got %v %q", toks[2].Kind, toks[2].Text)
	}
	if toks[4].Kind != token.RegexpLit || toks[4].Text != "/x/" {
		t.Errorf("expected regexp literal /x/, got %v %q", toks[4].Kind, toks[4].Text)
	}
}

func TestRegexpVersusDivision(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want token.Kind // kind of the token following the first '/'-ish position
	}{
		{"after lparen", "f(/a/)", token.RegexpLit},
		{"after comma", "f(x, /a/)", token.RegexpLit},
		{"after assign", "x = /a/", token.RegexpLit},
		{"after ident is division", "x / y", token.Op},
		{"after int is division", "1 / 2", token.Op},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _ := tokenize(t, tt.src)
			found := token.Invalid
			for _, tok := range toks {
				if tok.Kind == token.RegexpLit || (tok.Kind == token.Op && tok.Text[0] == '/') {
					found = tok.Kind
					break
				}
			}
			if found != tt.want {
				t.Errorf("expected %v, got %v (%v)", tt.want, found, kinds(toks))
			}
		})
	}
}

func TestRegexpFlagsCaptured(t *testing.T) {
	toks, _ := tokenize(t, "x = /ab/im")
	var re token.Token
	for _, tok := range toks {
		if tok.Kind == token.RegexpLit {
			re = tok
		}
	}
	if re.Text != "/ab/im" {
		t.Errorf("expected flags in token text, got %q", re.Text)
	}
}

func TestPercentStrings(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"%q(a)", "%q(a)"},
		{"%Q[a(b)]", "%Q[a(b)]"},
		{"%q(nested (parens))", "%q(nested (parens))"},
		{"%q!bang!", "%q!bang!"},
	}
	for _, tt := range tests {
		toks, r := tokenize(t, tt.src)
		if r.errorCount() != 0 {
			t.Errorf("%s: unexpected errors %+v", tt.src, r.diagnostics)
			continue
		}
		if toks[0].Kind != token.StringLit || toks[0].Text != tt.want {
			t.Errorf("%s: expected StringLit %q, got %v %q", tt.src, tt.want, toks[0].Kind, toks[0].Text)
		}
	}
}

func TestInterpolationKeptVerbatim(t *testing.T) {
	toks, r := tokenize(t, `s.gsub("#{x}", 'y')`)
	if r.errorCount() != 0 {
		t.Fatalf("unexpected errors: %+v", r.diagnostics)
	}
	if toks[4].Kind != token.StringLit || toks[4].Text != `"#{x}"` {
		t.Errorf("expected interpolated string kept verbatim, got %v %q", toks[4].Kind, toks[4].Text)
	}
}

func TestCommentsAndNewlines(t *testing.T) {
	toks, _ := tokenize(t, "a # trailing comment\nb")
	want := []token.Kind{token.Ident, token.Newline, token.Ident, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, r := tokenize(t, "'oops")
	if r.errorCount() != 1 {
		t.Fatalf("expected one error, got %+v", r.diagnostics)
	}
	if r.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected LexUnterminatedString, got %v", r.diagnostics[0].Code)
	}
}

func TestUnterminatedRegexp(t *testing.T) {
	_, r := tokenize(t, "x = /abc\n")
	if r.errorCount() != 1 {
		t.Fatalf("expected one error, got %+v", r.diagnostics)
	}
	if r.diagnostics[0].Code != diag.LexUnterminatedRegexp {
		t.Errorf("expected LexUnterminatedRegexp, got %v", r.diagnostics[0].Code)
	}
}

func TestSymbolsAndVariables(t *testing.T) {
	toks, _ := tokenize(t, "@ivar = $gvar.send(:gsub)")
	want := []token.Kind{
		token.IVar, token.Assign, token.GVar, token.Dot, token.Ident,
		token.LParen, token.SymbolLit, token.RParen, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSpansAreExact(t *testing.T) {
	src := "s.gsub('a', 'b')"
	toks, _ := tokenize(t, src)
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		if src[tok.Span.Start:tok.Span.End] != tok.Text {
			t.Errorf("span %s does not match text %q", tok.Span, tok.Text)
		}
	}
}
