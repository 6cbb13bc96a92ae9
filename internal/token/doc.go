// Package token defines the token vocabulary for the Ruby expression subset
// rblint understands. The lexer only needs enough of the language to find
// method-call chains with literal arguments; everything it cannot categorise
// becomes an Op token the parser treats as opaque.
package token
