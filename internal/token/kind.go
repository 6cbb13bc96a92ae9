package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is a statement-terminating line break.
	Newline

	// Ident represents a lowercase identifier or method name.
	Ident
	// Const represents a constant reference (Uppercase leading letter).
	Const
	// IVar represents an instance variable (@name).
	IVar
	// GVar represents a global variable ($name).
	GVar
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwEnd represents the 'end' keyword.
	KwEnd // end

	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a string literal of any quoting style.
	StringLit
	// SymbolLit represents a symbol literal (:name).
	SymbolLit
	// RegexpLit represents a /.../flags regexp literal.
	RegexpLit

	// Dot represents '.'.
	Dot
	// Comma represents ','.
	Comma
	// Semicolon represents ';'.
	Semicolon
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// Pipe represents '|'.
	Pipe
	// Amp represents '&' (block pass in argument position).
	Amp
	// Assign represents '='.
	Assign
	// Op represents any other operator byte sequence.
	Op
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Newline:   "Newline",
	Ident:     "Ident",
	Const:     "Const",
	IVar:      "IVar",
	GVar:      "GVar",
	KwDo:      "KwDo",
	KwEnd:     "KwEnd",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	SymbolLit: "SymbolLit",
	RegexpLit: "RegexpLit",
	Dot:       "Dot",
	Comma:     "Comma",
	Semicolon: "Semicolon",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	Pipe:      "Pipe",
	Amp:       "Amp",
	Assign:    "Assign",
	Op:        "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
