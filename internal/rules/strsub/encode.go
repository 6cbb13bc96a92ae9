package strsub

import (
	"fmt"
	"unicode"

	"rblint/internal/ast"
)

// encodeChar renders a single character as a Ruby string literal. prefer
// carries the quote style of the literal the character came from, so
// rewrites keep the original flavor whenever both styles can express the
// character.
func encodeChar(r rune, prefer ast.QuoteKind) string {
	if esc, ok := namedEscape(r); ok {
		return `"` + esc + `"`
	}
	if !unicode.IsPrint(r) {
		return fmt.Sprintf(`"\u{%x}"`, r)
	}

	switch r {
	case '\'':
		return `"'"`
	case '"':
		return `'"'`
	case '\\':
		return `'\\'`
	case '#':
		// Safe either way, but single quotes avoid looking like the
		// start of interpolation.
		return `'#'`
	}
	if prefer == ast.QuoteDouble || prefer == ast.QuotePercentU {
		return `"` + string(r) + `"`
	}
	return `'` + string(r) + `'`
}

// namedEscape returns the conventional short escape for control
// characters that have one.
func namedEscape(r rune) (string, bool) {
	switch r {
	case '\n':
		return `\n`, true
	case '\t':
		return `\t`, true
	case '\r':
		return `\r`, true
	case 7:
		return `\a`, true
	case 8:
		return `\b`, true
	case 12:
		return `\f`, true
	case 11:
		return `\v`, true
	case 27:
		return `\e`, true
	case 0:
		return `\0`, true
	}
	return "", false
}
