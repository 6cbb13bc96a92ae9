// Package ast defines the expression tree rblint analyses. Nodes are plain
// pointers carrying exact source spans; literal nodes keep their raw source
// text (delimiters included) so rules can reason about quoting and escapes
// without re-reading the file.
package ast

import (
	"rblint/internal/source"
)

// Expr is implemented by every expression node.
type Expr interface {
	Span() source.Span
	exprNode()
}

// Ident is a lowercase identifier in value position.
type Ident struct {
	Name string
	Sp   source.Span
}

// ConstRef is a constant reference such as Regexp.
type ConstRef struct {
	Name string
	Sp   source.Span
}

// VarRef is an instance (@x) or global ($x) variable reference.
type VarRef struct {
	Name string
	Sp   source.Span
}

// IntLit is an integer literal.
type IntLit struct {
	Raw string
	Sp  source.Span
}

// SymbolLit is a :symbol literal.
type SymbolLit struct {
	Raw string
	Sp  source.Span
}

// StrLit is a string literal of any quoting style. Raw is the exact source
// text including delimiters.
type StrLit struct {
	Raw string
	Sp  source.Span
}

// RegexpLit is a /body/flags literal. Raw is the exact source text.
type RegexpLit struct {
	Raw string
	Sp  source.Span
}

// CallExpr is a method call, with or without an explicit receiver.
type CallExpr struct {
	Receiver  Expr   // nil for receiverless calls
	Method    string // trailing ! or ? included
	SelSpan   source.Span
	Args      []Expr
	Parens    bool // arguments were parenthesized
	HasBlock  bool // { } or do...end block attached
	BlockPass bool // &blk in the argument list
	BlockBody []Expr
	Sp        source.Span
}

// AssignExpr is `target = value`. Only the value side is analysed.
type AssignExpr struct {
	Target Expr
	Value  Expr
	Sp     source.Span
}

// BadExpr covers source the parser could not understand. It is inert: rules
// never look inside.
type BadExpr struct {
	Sp source.Span
}

func (e *Ident) Span() source.Span      { return e.Sp }
func (e *ConstRef) Span() source.Span   { return e.Sp }
func (e *VarRef) Span() source.Span     { return e.Sp }
func (e *IntLit) Span() source.Span     { return e.Sp }
func (e *SymbolLit) Span() source.Span  { return e.Sp }
func (e *StrLit) Span() source.Span     { return e.Sp }
func (e *RegexpLit) Span() source.Span  { return e.Sp }
func (e *CallExpr) Span() source.Span   { return e.Sp }
func (e *AssignExpr) Span() source.Span { return e.Sp }
func (e *BadExpr) Span() source.Span    { return e.Sp }

func (*Ident) exprNode()      {}
func (*ConstRef) exprNode()   {}
func (*VarRef) exprNode()     {}
func (*IntLit) exprNode()     {}
func (*SymbolLit) exprNode()  {}
func (*StrLit) exprNode()     {}
func (*RegexpLit) exprNode()  {}
func (*CallExpr) exprNode()   {}
func (*AssignExpr) exprNode() {}
func (*BadExpr) exprNode()    {}

// Walk calls fn for expr and every expression beneath it, receiver-first.
func Walk(expr Expr, fn func(Expr)) {
	if expr == nil {
		return
	}
	fn(expr)
	switch e := expr.(type) {
	case *CallExpr:
		Walk(e.Receiver, fn)
		for _, arg := range e.Args {
			Walk(arg, fn)
		}
		for _, stmt := range e.BlockBody {
			Walk(stmt, fn)
		}
	case *AssignExpr:
		Walk(e.Target, fn)
		Walk(e.Value, fn)
	}
}
