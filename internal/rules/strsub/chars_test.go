package strsub

import (
	"testing"

	"rblint/internal/ast"
)

func TestDecodeString(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`'a'`, "a", true},
		{`''`, "", true},
		// Single quotes only unescape \\ and \'.
		{`'\n'`, `\n`, true},
		{`'\''`, `'`, true},
		{`'\\'`, `\`, true},
		{`'\d'`, `\d`, true},
		{`"a"`, "a", true},
		{`"\n"`, "\n", true},
		{`"\t"`, "\t", true},
		{`"\s"`, " ", true},
		{`"\e"`, "\x1b", true},
		{`"\0"`, "\x00", true},
		{`"\101"`, "A", true},
		{`"\x41"`, "A", true},
		{`"A"`, "A", true},
		{`"\u{1f600}"`, "\U0001F600", true},
		{`"\u{41 42}"`, "AB", true},
		// Unknown escapes collapse to the character itself.
		{`"\q"`, "q", true},
		{`"\""`, `"`, true},
		{`"é"`, "é", true},
		// Malformed escapes are not worth guessing about.
		{`"\u12"`, "", false},
		{`"\u{zz}"`, "", false},
		{`"\x"`, "", false},
	}
	for _, tc := range cases {
		got, ok := DecodeString(&ast.StrLit{Raw: tc.raw})
		if ok != tc.ok || got != tc.want {
			t.Errorf("DecodeString(%s) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFactOf(t *testing.T) {
	if f := factOf(""); f.fact != factEmpty {
		t.Errorf("empty string: %+v", f)
	}
	if f := factOf("a"); f.fact != factFixed || f.ch != 'a' {
		t.Errorf("single ascii: %+v", f)
	}
	if f := factOf("世"); f.fact != factFixed || f.ch != '世' {
		t.Errorf("single multibyte: %+v", f)
	}
	for _, s := range []string{"ab", "é́", "\xff", "a\x00"} {
		if f := factOf(s); f.fact == factFixed {
			t.Errorf("factOf(%q) claimed fixed %q", s, f.ch)
		}
	}
}
