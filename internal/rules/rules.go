// Package rules defines the lint-rule contract and the runner that feeds
// call expressions to every enabled rule.
package rules

import (
	"rblint/internal/ast"
	"rblint/internal/diag"
	"rblint/internal/source"
)

// Meta describes a rule for registration, configuration, and docs.
type Meta struct {
	// Name is the config-facing identifier, e.g. "string-replacement".
	Name string
	// Code is the diagnostic code the rule reports under.
	Code diag.Code
	// DefaultSeverity applies when config does not override it.
	DefaultSeverity diag.Severity
	// Doc is a one-line description.
	Doc string
}

// Rule inspects one call expression at a time. Implementations must be
// stateless: the runner may be used concurrently across files.
type Rule interface {
	Meta() Meta
	Check(ctx *Context, call *ast.CallExpr)
}

// Context gives a rule access to the file under analysis and the reporting
// sink. Severity is the effective severity after config overrides.
type Context struct {
	File     *source.File
	Reporter diag.Reporter
	Severity diag.Severity
}

// Enabled pairs a rule with its effective severity.
type Enabled struct {
	Rule     Rule
	Severity diag.Severity
}

// Runner walks expression trees and applies rules to every call expression.
type Runner struct {
	rules []Enabled
}

func NewRunner(rules []Enabled) *Runner {
	return &Runner{rules: rules}
}

// Run applies every rule to every call expression in exprs, receiver-first.
func (r *Runner) Run(file *source.File, exprs []ast.Expr, reporter diag.Reporter) {
	for _, expr := range exprs {
		ast.Walk(expr, func(e ast.Expr) {
			call, ok := e.(*ast.CallExpr)
			if !ok {
				return
			}
			for _, enabled := range r.rules {
				ctx := Context{
					File:     file,
					Reporter: reporter,
					Severity: enabled.Severity,
				}
				enabled.Rule.Check(&ctx, call)
			}
		})
	}
}
