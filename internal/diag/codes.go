package diag

import (
	"fmt"
)

// Code is a compact numeric identifier with a stable string form.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedRegexp Code = 1003
	LexBadEscape          Code = 1004

	// Syntax
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2002
	SynUnclosedBlock    Code = 2003
	SynExpectExpression Code = 2004
	SynExpectMethodName Code = 2005
	SynExpectArgument   Code = 2006

	// Style rules
	StyStringReplacement Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown issue",

	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexUnterminatedRegexp: "unterminated regexp literal",
	LexBadEscape:          "malformed escape sequence",

	SynUnexpectedToken:  "unexpected token",
	SynUnclosedParen:    "unclosed parenthesis",
	SynUnclosedBlock:    "unclosed block",
	SynExpectExpression: "expected an expression",
	SynExpectMethodName: "expected a method name",
	SynExpectArgument:   "expected an argument",

	StyStringReplacement: "gsub call reducible to tr or delete",
}

// ID returns the prefixed identifier shown to users, e.g. "STY4001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("STY%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
