package parser

import (
	"rblint/internal/ast"
	"rblint/internal/diag"
	"rblint/internal/source"
	"rblint/internal/token"
)

// parseExpr parses a primary expression followed by any chain of method
// calls.
func (p *Parser) parseExpr() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for p.at(token.Dot) {
		expr = p.parseMethodCall(expr)
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	cur := p.cur()
	switch cur.Kind {
	case token.StringLit:
		p.bump()
		return &ast.StrLit{Raw: cur.Text, Sp: cur.Span}
	case token.RegexpLit:
		p.bump()
		return &ast.RegexpLit{Raw: cur.Text, Sp: cur.Span}
	case token.IntLit:
		p.bump()
		return &ast.IntLit{Raw: cur.Text, Sp: cur.Span}
	case token.SymbolLit:
		p.bump()
		return &ast.SymbolLit{Raw: cur.Text, Sp: cur.Span}
	case token.IVar, token.GVar:
		p.bump()
		return &ast.VarRef{Name: cur.Text, Sp: cur.Span}
	case token.Const:
		p.bump()
		return &ast.ConstRef{Name: cur.Text, Sp: cur.Span}
	case token.Ident:
		p.bump()
		if p.at(token.LParen) || p.startsBareArg() {
			// Receiverless call: `gsub 'a', 'b'` or `foo(1)`.
			return p.parseCallTail(nil, cur)
		}
		return &ast.Ident{Name: cur.Text, Sp: cur.Span}
	case token.LParen:
		p.bump()
		p.skipNewlines()
		inner := p.parseExpr()
		p.skipNewlines()
		if !p.eat(token.RParen) {
			p.skimUntilCloser()
		}
		return inner
	}
	return nil
}

// parseMethodCall parses `.name [args] [block]` with recv as receiver.
func (p *Parser) parseMethodCall(recv ast.Expr) ast.Expr {
	dot := p.bump() // '.'
	name := p.cur()
	if name.Kind != token.Ident && name.Kind != token.Const {
		diag.ReportWarning(p.reporter, diag.SynExpectMethodName, name.Span,
			"expected a method name after '.'").Emit()
		return &ast.BadExpr{Sp: recv.Span().Cover(dot.Span)}
	}
	p.bump()
	return p.parseCallTail(recv, name)
}

// parseCallTail builds the CallExpr for a method name token, consuming an
// argument list and an optional block.
func (p *Parser) parseCallTail(recv ast.Expr, name token.Token) ast.Expr {
	call := &ast.CallExpr{
		Receiver: recv,
		Method:   name.Text,
		SelSpan:  name.Span,
		Sp:       name.Span,
	}
	if recv != nil {
		call.Sp = recv.Span().Cover(name.Span)
	}

	if p.at(token.LParen) {
		p.parseParenArgs(call)
	} else if p.startsBareArg() {
		p.parseBareArgs(call)
	}
	p.parseOptionalBlock(call)
	return call
}

func (p *Parser) parseParenArgs(call *ast.CallExpr) {
	lparen := p.bump()
	call.Parens = true
	p.skipNewlines()

	if p.at(token.RParen) {
		rp := p.bump()
		call.Sp = call.Sp.Cover(rp.Span)
		return
	}

	for {
		if p.at(token.EOF) {
			diag.ReportWarning(p.reporter, diag.SynUnclosedParen, lparen.Span,
				"argument list is never closed").Emit()
			return
		}
		p.parseOneArg(call, token.RParen)
		p.skipNewlines()
		if p.eat(token.Comma) {
			p.skipNewlines()
			continue
		}
		break
	}

	if p.at(token.RParen) {
		rp := p.bump()
		call.Sp = call.Sp.Cover(rp.Span)
		return
	}
	// Leftover junk between the last argument and ')'.
	p.skimUntilCloser()
	call.Sp = call.Sp.Cover(p.prevSpan())
}

func (p *Parser) parseBareArgs(call *ast.CallExpr) {
	for {
		p.parseOneArg(call, token.Invalid)
		if p.eat(token.Comma) {
			p.skipNewlines()
			continue
		}
		break
	}
	if len(call.Args) > 0 {
		call.Sp = call.Sp.Cover(call.Args[len(call.Args)-1].Span())
	}
}

// parseOneArg parses a single argument. An argument the subset cannot fully
// express degrades to a BadExpr covering its source, so downstream analysis
// sees it as dynamic rather than half-parsed.
func (p *Parser) parseOneArg(call *ast.CallExpr, closer token.Kind) {
	if p.at(token.Amp) {
		amp := p.bump()
		call.BlockPass = true
		rest := p.parseExpr()
		sp := amp.Span
		if rest != nil {
			sp = sp.Cover(rest.Span())
		}
		call.Args = append(call.Args, &ast.BadExpr{Sp: sp})
		return
	}

	arg := p.parseExpr()
	if arg == nil {
		arg = &ast.BadExpr{Sp: p.cur().Span}
		p.bump()
	}
	call.Args = append(call.Args, p.degradeArg(arg, closer))
}

// degradeArg checks that the parsed argument is followed by a legal
// separator; if operator soup follows (`a + 1`, `x ? y : z`), the whole
// argument collapses into a BadExpr.
func (p *Parser) degradeArg(arg ast.Expr, closer token.Kind) ast.Expr {
	if p.argBoundary(closer) {
		return arg
	}
	sp := arg.Span()
	depth := 0
	for !p.at(token.EOF) {
		cur := p.cur()
		if depth == 0 && p.argBoundary(closer) {
			break
		}
		if cur.Kind == token.LParen {
			depth++
		}
		if cur.Kind == token.RParen {
			if depth == 0 {
				break
			}
			depth--
		}
		if closer == token.Invalid && cur.Terminates() {
			break
		}
		sp = sp.Cover(cur.Span)
		p.bump()
	}
	return &ast.BadExpr{Sp: sp}
}

// argBoundary reports whether the current token may legally follow a
// complete argument.
func (p *Parser) argBoundary(closer token.Kind) bool {
	cur := p.cur()
	switch cur.Kind {
	case token.Comma, token.EOF, token.LBrace, token.KwDo,
		token.Newline, token.Semicolon:
		return true
	}
	if closer != token.Invalid && cur.Kind == closer {
		return true
	}
	return false
}

// parseOptionalBlock consumes `{ |params| body }` or `do |params| body end`
// and parses the body statements so rules see calls inside blocks.
func (p *Parser) parseOptionalBlock(call *ast.CallExpr) {
	var closer token.Kind
	switch p.cur().Kind {
	case token.LBrace:
		closer = token.RBrace
	case token.KwDo:
		closer = token.KwEnd
	default:
		return
	}

	open := p.bump()
	call.HasBlock = true
	p.skipBlockParams()
	call.BlockBody = p.parseBlockBody(closer, open.Span)
	call.Sp = call.Sp.Cover(p.prevSpan())
}

func (p *Parser) skipBlockParams() {
	p.skipNewlines()
	if !p.at(token.Pipe) {
		return
	}
	p.bump()
	for !p.at(token.EOF) && !p.at(token.Pipe) && !p.at(token.Newline) {
		p.bump()
	}
	p.eat(token.Pipe)
}

func (p *Parser) parseBlockBody(closer token.Kind, open source.Span) []ast.Expr {
	body := make([]ast.Expr, 0, 1)
	for {
		if p.at(token.EOF) {
			diag.ReportWarning(p.reporter, diag.SynUnclosedBlock, open,
				"block is never closed").Emit()
			return body
		}
		if p.at(closer) {
			p.bump()
			return body
		}
		if p.cur().Terminates() {
			p.bump()
			continue
		}
		expr := p.parseStatement()
		if expr != nil {
			body = append(body, expr)
		}
		p.syncBlock(closer)
	}
}

func (p *Parser) syncBlock(closer token.Kind) {
	for !p.at(token.EOF) && !p.cur().Terminates() && !p.at(closer) {
		p.bump()
	}
}

// startsBareArg reports whether the current token can open an
// unparenthesized argument list on the same line.
func (p *Parser) startsBareArg() bool {
	switch p.cur().Kind {
	case token.StringLit, token.RegexpLit, token.IntLit, token.SymbolLit,
		token.IVar, token.GVar, token.Ident, token.Const, token.Amp:
		return true
	default:
		return false
	}
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.bump()
	}
}

// skimUntilCloser drops tokens until the surrounding ')' is consumed or the
// statement ends.
func (p *Parser) skimUntilCloser() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			if depth == 0 {
				p.bump()
				return
			}
			depth--
		}
		p.bump()
	}
}

func (p *Parser) prevSpan() source.Span {
	if p.pos == 0 {
		return p.cur().Span
	}
	return p.toks[p.pos-1].Span
}

func (p *Parser) eat(kind token.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}
