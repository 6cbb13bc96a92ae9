package lexer

import (
	"rblint/internal/diag"
	"rblint/internal/token"
)

// scanRegexp handles /.../flags literals. The body is consumed verbatim,
// including interpolation; trailing modifier letters become part of the
// token text.
func (lx *Lexer) scanRegexp(start Mark) token.Token {
	lx.cursor.Bump() // opening '/'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '/' {
			lx.cursor.Bump()
			for !lx.cursor.EOF() && isRegexpFlag(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return lx.make(token.RegexpLit, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '#' && lx.cursor.PeekAt(1) == '{' {
			lx.skipInterpolation()
			continue
		}
		if b == '\n' {
			// Regexp literals do not span lines in the subset we lex.
			break
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRegexp, sp, "unterminated regexp literal")
	return lx.make(token.Invalid, start)
}

func isRegexpFlag(b byte) bool {
	switch b {
	case 'i', 'm', 'x', 'o', 'u', 'e', 's', 'n':
		return true
	default:
		return false
	}
}
