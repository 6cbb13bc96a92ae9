// Package parser builds expression trees for the Ruby subset rblint lints.
//
// The parser is recovering and deliberately quiet: full Ruby programs contain
// plenty of syntax this subset does not model (class bodies, conditionals,
// heredocs), and a linter that shouts SYN errors at valid Ruby is useless.
// Anything unrecognised becomes a BadExpr or is skipped; diagnostics are only
// raised for structure that is broken in any dialect, such as an argument
// list left open at end of file.
package parser

import (
	"rblint/internal/ast"
	"rblint/internal/diag"
	"rblint/internal/lexer"
	"rblint/internal/source"
	"rblint/internal/token"
)

// Parser consumes a token stream and yields top-level expressions.
type Parser struct {
	toks     []token.Token
	pos      int
	reporter diag.Reporter
}

// ParseFile lexes and parses a file, returning every top-level expression.
func ParseFile(file *source.File, reporter diag.Reporter) []ast.Expr {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	p := &Parser{
		toks:     lexer.Tokenize(file, reporter),
		reporter: reporter,
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() []ast.Expr {
	exprs := make([]ast.Expr, 0)
	for !p.at(token.EOF) {
		if p.cur().Terminates() {
			p.bump()
			continue
		}
		expr := p.parseStatement()
		if expr != nil {
			exprs = append(exprs, expr)
		}
		p.syncStatement()
	}
	return exprs
}

// parseStatement parses one expression statement, folding a leading
// `target =` assignment when present.
func (p *Parser) parseStatement() ast.Expr {
	start := p.cur().Span

	if target := p.tryAssignTarget(); target != nil {
		p.bump() // '='
		value := p.parseExpr()
		if value == nil {
			value = &ast.BadExpr{Sp: p.cur().Span}
		}
		return &ast.AssignExpr{
			Target: target,
			Value:  value,
			Sp:     start.Cover(value.Span()),
		}
	}

	expr := p.parseExpr()
	if expr == nil {
		// Not a construct we model; swallow the token and move on.
		p.bump()
		return nil
	}
	return expr
}

// tryAssignTarget recognises `name =` (not `==`) and consumes the name,
// leaving the cursor on the Assign token. Returns nil without consuming
// anything otherwise.
func (p *Parser) tryAssignTarget() ast.Expr {
	cur := p.cur()
	if p.peek(1).Kind != token.Assign {
		return nil
	}
	switch cur.Kind {
	case token.Ident:
		p.bump()
		return &ast.Ident{Name: cur.Text, Sp: cur.Span}
	case token.Const:
		p.bump()
		return &ast.ConstRef{Name: cur.Text, Sp: cur.Span}
	case token.IVar, token.GVar:
		p.bump()
		return &ast.VarRef{Name: cur.Text, Sp: cur.Span}
	}
	return nil
}

// syncStatement advances to the next statement boundary.
func (p *Parser) syncStatement() {
	for !p.at(token.EOF) && !p.cur().Terminates() {
		p.bump()
	}
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) bump() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}
