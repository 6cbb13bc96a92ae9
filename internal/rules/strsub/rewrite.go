package strsub

import (
	"strings"

	"rblint/internal/ast"
	"rblint/internal/diag"
	"rblint/internal/source"
)

// rewrite is the fully rendered replacement for one offending call.
type rewrite struct {
	// method is the new selector, bang included ("tr", "delete!", ...).
	method string
	// text replaces everything from the selector through the end of the
	// call, argument style preserved.
	text string
	span source.Span
	old  string
}

// buildRewrite renders the tr/delete form of a classified call. The edit
// covers selector through call end so receiver and surrounding text stay
// untouched.
func buildRewrite(f *source.File, call *ast.CallExpr, out outcome) rewrite {
	bang := strings.HasSuffix(call.Method, "!")

	var method string
	var args []string
	switch out.class {
	case classTranslate:
		method = "tr"
		args = []string{
			encodeChar(out.pat, patternQuote(call)),
			encodeChar(out.rep, replacementQuote(call)),
		}
	case classDelete:
		method = "delete"
		args = []string{encodeChar(out.pat, patternQuote(call))}
	}
	if bang {
		method += "!"
	}

	var b strings.Builder
	b.WriteString(method)
	if call.Parens {
		b.WriteByte('(')
		b.WriteString(strings.Join(args, ", "))
		b.WriteByte(')')
	} else {
		b.WriteByte(' ')
		b.WriteString(strings.Join(args, ", "))
	}

	sp := source.Span{File: f.ID, Start: call.SelSpan.Start, End: call.Sp.End}
	return rewrite{
		method: method,
		text:   b.String(),
		span:   sp,
		old:    f.Text(sp),
	}
}

// patternQuote picks the quote flavor for the rewritten pattern argument.
// String patterns keep their own style; regexp patterns have none, so
// single quotes win.
func patternQuote(call *ast.CallExpr) ast.QuoteKind {
	if lit, ok := call.Args[0].(*ast.StrLit); ok {
		return lit.Quote()
	}
	return ast.QuoteSingle
}

func replacementQuote(call *ast.CallExpr) ast.QuoteKind {
	if lit, ok := call.Args[1].(*ast.StrLit); ok {
		return lit.Quote()
	}
	return ast.QuoteSingle
}

// asFix wraps the rewrite in a diagnostic fix with a hard OldText guard.
func (rw rewrite) asFix() diag.Fix {
	return diag.Fix{
		Title:         "Replace `" + currentName(rw.method) + "` with `" + rw.method + "`",
		Applicability: diag.FixApplicabilityAlwaysSafe,
		IsPreferred:   true,
		Edits: []diag.TextEdit{{
			Span:    rw.span,
			NewText: rw.text,
			OldText: rw.old,
		}},
	}
}

// currentName recovers the original selector name from the new one.
func currentName(method string) string {
	if strings.HasSuffix(method, "!") {
		return "gsub!"
	}
	return "gsub"
}
