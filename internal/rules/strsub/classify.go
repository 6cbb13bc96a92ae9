package strsub

import (
	"rblint/internal/ast"
)

type classification uint8

const (
	classNone classification = iota
	classTranslate
	classDelete
)

// outcome carries everything the rewriter needs once a call is proven
// replaceable.
type outcome struct {
	class classification
	// pat is the single character the pattern matches.
	pat rune
	// rep is the replacement character; meaningful only for classTranslate.
	rep rune
}

// classifyCall decides whether a gsub/gsub! call can be rewritten. The
// result is classNone unless the pattern provably matches exactly one
// fixed character and the replacement is provably one character or empty.
func classifyCall(call *ast.CallExpr) outcome {
	if call.Method != "gsub" && call.Method != "gsub!" {
		return outcome{class: classNone}
	}
	if len(call.Args) != 2 || call.HasBlock || call.BlockPass {
		return outcome{class: classNone}
	}

	pat := patternFact(resolveArg(call.Args[0]))
	if pat.fact != factFixed {
		return outcome{class: classNone}
	}
	rep := replacementFact(resolveArg(call.Args[1]))
	switch rep.fact {
	case factEmpty:
		return outcome{class: classDelete, pat: pat.ch}
	case factFixed:
		return outcome{class: classTranslate, pat: pat.ch, rep: rep.ch}
	}
	return outcome{class: classNone}
}

// patternFact extracts the single-character fact from a first argument.
func patternFact(arg resolvedArg) stringFact {
	switch arg.kind {
	case argString:
		val, ok := DecodeString(arg.str)
		if !ok {
			return stringFact{fact: factIndeterminate}
		}
		if arg.viaConstructor {
			// The string is regexp source, not a literal match.
			return regexpFact(val)
		}
		f := factOf(val)
		if f.fact != factFixed {
			return stringFact{fact: factIndeterminate}
		}
		return f

	case argRegexp:
		if arg.re.Flags() != "" {
			// Flags can change what a pattern matches; stay away.
			return stringFact{fact: factIndeterminate}
		}
		return regexpFact(arg.re.Body())
	}
	return stringFact{fact: factIndeterminate}
}

// replacementFact extracts the fact for a second argument. Only plain
// string literals qualify; a regexp makes no sense as a replacement and a
// constructor-wrapped value is dynamic enough to skip.
func replacementFact(arg resolvedArg) stringFact {
	if arg.kind != argString || arg.viaConstructor {
		return stringFact{fact: factIndeterminate}
	}
	val, ok := DecodeString(arg.str)
	if !ok {
		return stringFact{fact: factIndeterminate}
	}
	return factOf(val)
}
