package strsub

import (
	"rblint/internal/ast"
)

// argKind tags what an argument node resolved to.
type argKind uint8

const (
	// argDynamic covers everything the rule refuses to reason about:
	// variables, interpolation, nested calls, block passes.
	argDynamic argKind = iota
	argString
	argRegexp
)

// resolvedArg is the classified view of one call argument.
type resolvedArg struct {
	kind argKind
	str  *ast.StrLit
	re   *ast.RegexpLit
	// viaConstructor is set when the literal was wrapped in Regexp.new or
	// Regexp.compile.
	viaConstructor bool
}

// resolveArg classifies an argument node. Interpolated literals are dynamic:
// their runtime value is unknowable here.
func resolveArg(e ast.Expr) resolvedArg {
	switch n := e.(type) {
	case *ast.StrLit:
		if n.HasInterp() {
			return resolvedArg{kind: argDynamic}
		}
		return resolvedArg{kind: argString, str: n}

	case *ast.RegexpLit:
		if n.HasInterp() {
			return resolvedArg{kind: argDynamic}
		}
		return resolvedArg{kind: argRegexp, re: n}

	case *ast.CallExpr:
		if !isRegexpConstructor(n) {
			return resolvedArg{kind: argDynamic}
		}
		inner := resolveArg(n.Args[0])
		if inner.kind == argDynamic {
			return resolvedArg{kind: argDynamic}
		}
		inner.viaConstructor = true
		return inner
	}
	return resolvedArg{kind: argDynamic}
}

// isRegexpConstructor recognises Regexp.new(x) and Regexp.compile(x) with a
// single argument and no block.
func isRegexpConstructor(call *ast.CallExpr) bool {
	recv, ok := call.Receiver.(*ast.ConstRef)
	if !ok || recv.Name != "Regexp" {
		return false
	}
	if call.Method != "new" && call.Method != "compile" {
		return false
	}
	return len(call.Args) == 1 && !call.HasBlock && !call.BlockPass
}
