package ast

import "strings"

// QuoteKind identifies how a string literal was written in source.
type QuoteKind uint8

const (
	QuoteSingle   QuoteKind = iota // '...'
	QuoteDouble                    // "..."
	QuotePercentQ                  // %q(...)
	QuotePercentU                  // %Q(...)
	QuoteUnknown
)

// Quote classifies the literal's quoting style.
func (s *StrLit) Quote() QuoteKind {
	if len(s.Raw) == 0 {
		return QuoteUnknown
	}
	switch s.Raw[0] {
	case '\'':
		return QuoteSingle
	case '"':
		return QuoteDouble
	case '%':
		if len(s.Raw) > 1 && s.Raw[1] == 'q' {
			return QuotePercentQ
		}
		return QuotePercentU
	}
	return QuoteUnknown
}

// Body returns the text between the delimiters, unmodified.
func (s *StrLit) Body() string {
	switch s.Quote() {
	case QuoteSingle, QuoteDouble:
		if len(s.Raw) < 2 {
			return ""
		}
		return s.Raw[1 : len(s.Raw)-1]
	case QuotePercentQ, QuotePercentU:
		if len(s.Raw) < 4 {
			return ""
		}
		return s.Raw[3 : len(s.Raw)-1]
	}
	return ""
}

// HasInterp reports whether the literal contains #{...} interpolation.
// Single-quoted and %q literals never interpolate.
func (s *StrLit) HasInterp() bool {
	switch s.Quote() {
	case QuoteDouble, QuotePercentU:
		return containsInterp(s.Body())
	}
	return false
}

// Body returns the pattern text between the slashes.
func (r *RegexpLit) Body() string {
	i := strings.LastIndexByte(r.Raw, '/')
	if i <= 0 {
		return ""
	}
	return r.Raw[1:i]
}

// Flags returns the modifier letters after the closing slash.
func (r *RegexpLit) Flags() string {
	i := strings.LastIndexByte(r.Raw, '/')
	if i < 0 || i+1 >= len(r.Raw) {
		return ""
	}
	return r.Raw[i+1:]
}

// HasInterp reports whether the pattern contains #{...} interpolation.
func (r *RegexpLit) HasInterp() bool {
	return containsInterp(r.Body())
}

// Name returns the symbol without the leading colon.
func (s *SymbolLit) Name() string {
	return strings.TrimPrefix(s.Raw, ":")
}

func containsInterp(body string) bool {
	for i := 0; i+1 < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '#':
			if body[i+1] == '{' {
				return true
			}
		}
	}
	return false
}
