package lexer

import (
	"rblint/internal/diag"
	"rblint/internal/source"
	"rblint/internal/token"
)

// Lexer turns a Ruby source file into the token subset rblint analyses.
// It is deliberately shallow: tokens it cannot place become Op/Invalid and
// the parser skips over them.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter

	// prev drives the regexp-vs-division decision: '/' opens a regexp only
	// in expression position.
	prev token.Kind
}

// New creates a lexer over file, reporting lexical problems to reporter.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: reporter,
		prev:     token.Invalid,
	}
}

// Tokenize scans the whole file.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	toks := make([]token.Token, 0, len(file.Content)/4)
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token, skipping whitespace and comments.
func (lx *Lexer) Next() token.Token {
	lx.skipBlanks()

	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		return lx.make(token.EOF, start)
	}

	b := lx.cursor.Peek()
	switch {
	case b == '\n':
		lx.cursor.Bump()
		return lx.make(token.Newline, start)

	case isIdentStart(b):
		return lx.scanIdent(start)

	case b == '@':
		lx.cursor.Bump()
		lx.cursor.Eat('@') // class variables lex like instance variables
		lx.eatIdent()
		return lx.make(token.IVar, start)

	case b == '$':
		lx.cursor.Bump()
		lx.eatIdent()
		return lx.make(token.GVar, start)

	case isDigit(b):
		for !lx.cursor.EOF() && (isDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
			lx.cursor.Bump()
		}
		return lx.make(token.IntLit, start)

	case b == ':' && isIdentStart(lx.cursor.PeekAt(1)):
		lx.cursor.Bump()
		lx.eatIdent()
		return lx.make(token.SymbolLit, start)

	case b == '\'' || b == '"':
		return lx.scanString(start)

	case b == '%' && (lx.cursor.PeekAt(1) == 'q' || lx.cursor.PeekAt(1) == 'Q'):
		return lx.scanPercentString(start)

	case b == '/' && lx.regexpAllowed():
		return lx.scanRegexp(start)
	}

	lx.cursor.Bump()
	switch b {
	case '.':
		return lx.make(token.Dot, start)
	case ',':
		return lx.make(token.Comma, start)
	case ';':
		return lx.make(token.Semicolon, start)
	case '(':
		return lx.make(token.LParen, start)
	case ')':
		return lx.make(token.RParen, start)
	case '{':
		return lx.make(token.LBrace, start)
	case '}':
		return lx.make(token.RBrace, start)
	case '|':
		return lx.make(token.Pipe, start)
	case '&':
		return lx.make(token.Amp, start)
	case '=':
		if isOpByte(lx.cursor.Peek()) {
			lx.eatOpRun()
			return lx.make(token.Op, start)
		}
		return lx.make(token.Assign, start)
	}

	if isOpByte(b) {
		lx.eatOpRun()
		return lx.make(token.Op, start)
	}
	if b >= 0x80 {
		// UTF-8 content outside literals: treat the whole rune as opaque.
		for !lx.cursor.EOF() && lx.cursor.Peek() >= 0x80 {
			lx.cursor.Bump()
		}
		return lx.make(token.Op, start)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return lx.make(token.Invalid, start)
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.prev = kind
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.reporter, code, sp, msg).Emit()
}

func (lx *Lexer) skipBlanks() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
		case '\\':
			// Line continuation.
			if lx.cursor.PeekAt(1) == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			return
		case '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdent(start Mark) token.Token {
	first := lx.cursor.Bump()
	lx.eatIdent()
	// Method names may end in ! or ?.
	if b := lx.cursor.Peek(); b == '!' || b == '?' {
		// '!=' after an identifier is a comparison, not a bang method.
		if !(b == '!' && lx.cursor.PeekAt(1) == '=') {
			lx.cursor.Bump()
		}
	}

	t := lx.make(token.Ident, start)
	switch t.Text {
	case "do":
		t.Kind = token.KwDo
	case "end":
		t.Kind = token.KwEnd
	default:
		if first >= 'A' && first <= 'Z' {
			t.Kind = token.Const
		}
	}
	lx.prev = t.Kind
	return t
}

func (lx *Lexer) eatIdent() {
	for !lx.cursor.EOF() && isIdentPart(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatOpRun() {
	for isOpByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// regexpAllowed reports whether a '/' at the current position starts a regexp
// literal rather than a division.
func (lx *Lexer) regexpAllowed() bool {
	switch lx.prev {
	case token.Ident, token.Const, token.IVar, token.GVar,
		token.IntLit, token.StringLit, token.SymbolLit, token.RegexpLit,
		token.RParen, token.KwEnd:
		return false
	default:
		return true
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isOpByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '<', '>', '!', '?', '^', '~', '=', '[', ']', ':':
		return true
	default:
		return false
	}
}
