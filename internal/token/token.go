package token

import (
	"rblint/internal/source"
)

// Token represents a single source token with its location.
// Text is the verbatim source slice, delimiters included.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a literal of any kind.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, SymbolLit, RegexpLit:
		return true
	default:
		return false
	}
}

// Terminates reports whether the token ends a statement.
func (t Token) Terminates() bool {
	switch t.Kind {
	case Newline, Semicolon, EOF:
		return true
	default:
		return false
	}
}
