package strsub

import (
	"strings"
	"unicode/utf8"

	"rblint/internal/ast"
)

// charFact is what we could prove about a literal's runtime value.
type charFact uint8

const (
	// factIndeterminate means the value could not be pinned down to a
	// single character (or emptiness), so the call must be left alone.
	factIndeterminate charFact = iota
	// factFixed means the value is exactly one character, stored in ch.
	factFixed
	// factEmpty means the value is the empty string.
	factEmpty
)

type stringFact struct {
	fact charFact
	ch   rune
}

// factOf decodes a string literal body and reports whether its value is
// empty, a single character, or anything else.
func factOf(s string) stringFact {
	if s == "" {
		return stringFact{fact: factEmpty}
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return stringFact{fact: factIndeterminate}
	}
	if size != len(s) {
		return stringFact{fact: factIndeterminate}
	}
	return stringFact{fact: factFixed, ch: r}
}

// DecodeString evaluates a non-interpolated string literal to its runtime
// value. ok is false when the body contains something we do not model, in
// which case the caller must treat the argument as dynamic.
func DecodeString(lit *ast.StrLit) (string, bool) {
	body := lit.Body()
	switch lit.Quote() {
	case ast.QuoteSingle:
		return decodeSingleQuoted(body)
	case ast.QuoteDouble, ast.QuotePercentU:
		return decodeDoubleQuoted(body)
	case ast.QuotePercentQ:
		return decodeSingleQuoted(body)
	}
	return "", false
}

// decodeSingleQuoted handles the two escapes single quotes know about;
// every other backslash is literal.
func decodeSingleQuoted(body string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", false
		}
		next := body[i+1]
		switch next {
		case '\\', '\'':
			b.WriteByte(next)
		default:
			b.WriteByte('\\')
			b.WriteByte(next)
		}
		i += 2
	}
	return b.String(), true
}

// decodeDoubleQuoted evaluates double-quoted escape sequences. Unknown
// escapes collapse to the escaped character, matching Ruby.
func decodeDoubleQuoted(body string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(body) {
			return "", false
		}
		e := body[i]
		i++
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 's':
			b.WriteByte(' ')
		case 'a':
			b.WriteByte(7)
		case 'b':
			b.WriteByte(8)
		case 'e':
			b.WriteByte(27)
		case 'f':
			b.WriteByte(12)
		case 'v':
			b.WriteByte(11)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := int(e - '0')
			for k := 0; k < 2 && i < len(body) && body[i] >= '0' && body[i] <= '7'; k++ {
				n = n*8 + int(body[i]-'0')
				i++
			}
			if n > 0xFF {
				return "", false
			}
			b.WriteByte(byte(n))
		case 'x':
			n, w := scanHex(body[i:], 2)
			if w == 0 {
				return "", false
			}
			i += w
			b.WriteByte(byte(n))
		case 'u':
			if i < len(body) && body[i] == '{' {
				end := strings.IndexByte(body[i:], '}')
				if end < 0 {
					return "", false
				}
				inner := body[i+1 : i+end]
				i += end + 1
				for _, part := range strings.Fields(inner) {
					n, w := scanHex(part, 6)
					if w != len(part) || w == 0 || n > 0x10FFFF {
						return "", false
					}
					b.WriteRune(rune(n))
				}
				continue
			}
			n, w := scanHex(body[i:], 4)
			if w != 4 {
				return "", false
			}
			i += 4
			b.WriteRune(rune(n))
		default:
			b.WriteByte(e)
		}
	}
	return b.String(), true
}

// scanHex reads up to max hex digits, returning the value and digit count.
func scanHex(s string, max int) (int, int) {
	n, w := 0, 0
	for w < max && w < len(s) {
		c := s[w]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			return n, w
		}
		n = n*16 + d
		w++
	}
	return n, w
}

// regexpFact inspects regexp source text and decides whether the pattern
// matches exactly one fixed character. Anything that smells of regexp
// machinery makes the result indeterminate; under-claiming here only costs
// a missed rewrite, never a wrong one.
func regexpFact(src string) stringFact {
	if src == "" {
		// An empty pattern matches the empty string at every position.
		return stringFact{fact: factEmpty}
	}
	unit, rest, ok := decodeRegexpUnit(src)
	if !ok || rest != "" {
		return stringFact{fact: factIndeterminate}
	}
	return stringFact{fact: factFixed, ch: unit}
}

// regexp metacharacters that give a single character special meaning or
// open a larger construct.
const regexpMeta = `.*+?^$|()[]{}`

// decodeRegexpUnit consumes one pattern unit from src. ok is false when
// the unit is not a plain fixed character.
func decodeRegexpUnit(src string) (rune, string, bool) {
	if src == "" {
		return 0, "", false
	}
	if src[0] == '\\' {
		if len(src) < 2 {
			return 0, "", false
		}
		e := src[1]
		switch e {
		case 'n':
			return '\n', src[2:], true
		case 't':
			return '\t', src[2:], true
		case 'r':
			return '\r', src[2:], true
		case 'f':
			return 12, src[2:], true
		case 'v':
			return 11, src[2:], true
		case 'a':
			return 7, src[2:], true
		case 'e':
			return 27, src[2:], true
		case '0':
			return 0, src[2:], true
		case 'x':
			n, w := scanHex(src[2:], 2)
			if w == 0 {
				return 0, "", false
			}
			return rune(n), src[2+w:], true
		case 'u':
			if len(src) > 2 && src[2] == '{' {
				end := strings.IndexByte(src[2:], '}')
				if end < 0 {
					return 0, "", false
				}
				inner := src[3 : 2+end]
				n, w := scanHex(inner, 6)
				if w != len(inner) || w == 0 || n > 0x10FFFF {
					return 0, "", false
				}
				return rune(n), src[2+end+1:], true
			}
			n, w := scanHex(src[2:], 4)
			if w != 4 {
				return 0, "", false
			}
			return rune(n), src[6:], true
		}
		// Escaped metacharacters and punctuation mean themselves.
		// Character-class escapes (\d, \s, \w, ...) and anchors do not.
		if strings.IndexByte(regexpMeta+`/\-#, '"`+"`", e) >= 0 {
			return rune(e), src[2:], true
		}
		return 0, "", false
	}
	r, size := utf8.DecodeRuneInString(src)
	if r == utf8.RuneError && size <= 1 {
		return 0, "", false
	}
	if r < utf8.RuneSelf && strings.ContainsRune(regexpMeta, r) {
		return 0, "", false
	}
	// A fixed char followed by a quantifier is no longer a single match.
	rest := src[size:]
	if rest != "" {
		switch rest[0] {
		case '*', '+', '?', '{':
			return 0, "", false
		}
	}
	return r, rest, true
}
