package strsub

import (
	"testing"

	"rblint/internal/ast"
	"rblint/internal/diag"
	"rblint/internal/parser"
	"rblint/internal/source"
)

// parseCall parses a one-line snippet and returns its outermost call.
func parseCall(t *testing.T, src string) (*source.File, *ast.CallExpr) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("snippet.rb", []byte(src))
	file := fs.Get(id)

	exprs := parser.ParseFile(file, diag.NopReporter{})
	var call *ast.CallExpr
	for _, e := range exprs {
		ast.Walk(e, func(n ast.Expr) {
			if c, ok := n.(*ast.CallExpr); ok && call == nil {
				if c.Method == "gsub" || c.Method == "gsub!" {
					call = c
				}
			}
		})
	}
	if call == nil {
		t.Fatalf("no gsub call parsed from %q", src)
	}
	return file, call
}

func TestClassifyTranslate(t *testing.T) {
	cases := []struct {
		src      string
		pat, rep rune
	}{
		{`'abc'.gsub(/b/, '2')`, 'b', '2'},
		{`str.gsub("b", "2")`, 'b', '2'},
		{`str.gsub!(/b/, '2')`, 'b', '2'},
		{`str.gsub(Regexp.new('b'), '2')`, 'b', '2'},
		{`str.gsub(Regexp.compile('b'), '2')`, 'b', '2'},
		{`str.gsub(/\./, ',')`, '.', ','},
		{`str.gsub(/\n/, ' ')`, '\n', ' '},
		{`str.gsub("\n", " ")`, '\n', ' '},
		{`str.gsub(/а/, 'b')`, 'а', 'b'},
		{`str.gsub('/', ':')`, '/', ':'},
		{`str.gsub(/\x41/, 'q')`, 'A', 'q'},
		{`str.gsub("A", 'q')`, 'A', 'q'},
		// Identity mapping is pointless but well-defined, so it still
		// qualifies for the cheaper method.
		{`str.gsub('a', 'a')`, 'a', 'a'},
		// In a replacement a trailing backslash has nothing to
		// backreference and stays a literal backslash, same as in tr.
		{`str.gsub('a', "\\")`, 'a', '\\'},
		{`str.gsub('a', '\\')`, 'a', '\\'},
	}
	for _, tc := range cases {
		_, call := parseCall(t, tc.src)
		out := classifyCall(call)
		if out.class != classTranslate {
			t.Errorf("%s: class = %v, want translate", tc.src, out.class)
			continue
		}
		if out.pat != tc.pat || out.rep != tc.rep {
			t.Errorf("%s: got (%q, %q), want (%q, %q)",
				tc.src, out.pat, out.rep, tc.pat, tc.rep)
		}
	}
}

func TestClassifyDelete(t *testing.T) {
	cases := []struct {
		src string
		pat rune
	}{
		{`str.gsub(/ /, '')`, ' '},
		{`str.gsub('a', '')`, 'a'},
		{`str.gsub!(/,/, "")`, ','},
		{`str.gsub(Regexp.new('x'), '')`, 'x'},
	}
	for _, tc := range cases {
		_, call := parseCall(t, tc.src)
		out := classifyCall(call)
		if out.class != classDelete {
			t.Errorf("%s: class = %v, want delete", tc.src, out.class)
			continue
		}
		if out.pat != tc.pat {
			t.Errorf("%s: pat = %q, want %q", tc.src, out.pat, tc.pat)
		}
	}
}

// Everything here must be left alone. False negatives are acceptable,
// false positives are not, so this table is the most important one.
func TestClassifyRejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"multi char pattern", `str.gsub('ab', 'cd')`},
		{"multi char replacement", `str.gsub('a', 'bc')`},
		{"empty pattern", `str.gsub('', 'x')`},
		{"dot metachar", `str.gsub(/./, 'x')`},
		{"quantified", `str.gsub(/a+/, 'x')`},
		{"star", `str.gsub(/a*/, 'x')`},
		{"optional", `str.gsub(/a?/, 'x')`},
		{"bounded repeat", `str.gsub(/a{2}/, 'x')`},
		{"char class", `str.gsub(/[ab]/, 'x')`},
		{"class escape", `str.gsub(/\d/, 'x')`},
		{"space class escape", `str.gsub(/\s/, '')`},
		{"anchor", `str.gsub(/^a/, 'x')`},
		{"alternation", `str.gsub(/a|b/, 'x')`},
		{"group", `str.gsub(/(a)/, 'x')`},
		{"case flag", `str.gsub(/a/i, 'x')`},
		{"multiline flag", `str.gsub(/a/m, 'x')`},
		{"interpolated pattern", `str.gsub(/#{c}/, 'x')`},
		{"interpolated replacement", `str.gsub('a', "#{r}")`},
		{"dynamic pattern", `str.gsub(pat, 'x')`},
		{"dynamic replacement", `str.gsub('a', rep)`},
		{"block", `str.gsub(/a/) { |m| m.upcase }`},
		{"block pass", `str.gsub(/a/, &blk)`},
		{"one arg", `str.gsub(/a/)`},
		{"three args", `str.gsub(/a/, 'x', 'y')`},
		{"constructor extra arg", `str.gsub(Regexp.new('a', flags), 'x')`},
		{"constructor dynamic", `str.gsub(Regexp.new(pat), 'x')`},
		{"sub not gsub", `str.sub('a', 'b')`},
	}
	for _, tc := range cases {
		fs := source.NewFileSet()
		id := fs.AddVirtual("snippet.rb", []byte(tc.src))
		exprs := parser.ParseFile(fs.Get(id), diag.NopReporter{})
		for _, e := range exprs {
			ast.Walk(e, func(n ast.Expr) {
				c, ok := n.(*ast.CallExpr)
				if !ok || (c.Method != "gsub" && c.Method != "gsub!" && c.Method != "sub") {
					return
				}
				if out := classifyCall(c); out.class != classNone {
					t.Errorf("%s: %s classified as %v, want none", tc.name, tc.src, out.class)
				}
			})
		}
	}
}

func TestPatternUnicodeLength(t *testing.T) {
	// One code point is one character even when it is several bytes.
	_, call := parseCall(t, `str.gsub('é', 'e')`)
	if out := classifyCall(call); out.class != classTranslate || out.pat != 'é' {
		t.Fatalf("got %+v", out)
	}
	// Two code points are two characters even when they render as one.
	_, call = parseCall(t, "str.gsub(\"e\\u0301\", 'e')")
	if out := classifyCall(call); out.class != classNone {
		t.Fatalf("combining sequence accepted: %+v", out)
	}
}
