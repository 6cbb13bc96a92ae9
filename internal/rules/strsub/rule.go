// Package strsub flags gsub/gsub! calls whose pattern provably matches a
// single fixed character and whose replacement is a single character or
// empty, and rewrites them to tr/delete. The analysis is deliberately
// conservative: whenever any part of the call resists static evaluation
// the call is left alone.
package strsub

import (
	"rblint/internal/ast"
	"rblint/internal/diag"
	"rblint/internal/rules"
	"rblint/internal/source"
)

type Rule struct{}

func New() *Rule { return &Rule{} }

func (*Rule) Meta() rules.Meta {
	return rules.Meta{
		Name:            "string-replacement",
		Code:            diag.StyStringReplacement,
		DefaultSeverity: diag.SevWarning,
		Doc:             "Prefer `tr`/`delete` over `gsub` when the pattern is a single character.",
	}
}

func (*Rule) Check(ctx *rules.Context, call *ast.CallExpr) {
	out := classifyCall(call)
	if out.class == classNone {
		return
	}
	rw := buildRewrite(ctx.File, call, out)

	// The offense points at the arguments through the end of the call:
	// the method itself is fine, the argument shape is what is wasteful.
	primary := source.Span{
		File:  ctx.File.ID,
		Start: call.Args[0].Span().Start,
		End:   call.Sp.End,
	}

	d := diag.New(ctx.Severity, diag.StyStringReplacement, primary,
		"Use `"+rw.method+"` instead of `"+currentName(rw.method)+"`.")
	ctx.Reporter.Report(d.WithFix(rw.asFix()))
}
