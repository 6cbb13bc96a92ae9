package lexer

import (
	"rblint/internal/diag"
	"rblint/internal/token"
)

// scanString handles '...' and "..." literals. Escapes are skipped, not
// decoded; interpolation in double quotes is consumed verbatim so the token
// text stays an exact source slice.
func (lx *Lexer) scanString(start Mark) token.Token {
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			return lx.make(token.StringLit, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '#' && quote == '"' && lx.cursor.PeekAt(1) == '{' {
			lx.skipInterpolation()
			continue
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.make(token.Invalid, start)
}

// scanPercentString handles %q(...) and %Q(...) with paired or identical
// delimiters.
func (lx *Lexer) scanPercentString(start Mark) token.Token {
	lx.cursor.Bump() // '%'
	variant := lx.cursor.Bump()
	open := lx.cursor.Bump()
	if open == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
		return lx.make(token.Invalid, start)
	}
	close := pairedDelimiter(open)

	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case b == open && close != open:
			depth++
			lx.cursor.Bump()
		case b == close:
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return lx.make(token.StringLit, start)
			}
		case b == '#' && variant == 'Q' && lx.cursor.PeekAt(1) == '{':
			lx.skipInterpolation()
		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.make(token.Invalid, start)
}

// skipInterpolation consumes '#{' through the matching '}'. Nested braces
// are balanced; nested literals inside the interpolation are not re-lexed.
func (lx *Lexer) skipInterpolation() {
	lx.cursor.Bump() // '#'
	lx.cursor.Bump() // '{'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch lx.cursor.Bump() {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
}

func pairedDelimiter(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	default:
		return open
	}
}
