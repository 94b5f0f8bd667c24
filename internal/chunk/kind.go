package chunk

// Kind represents the structural category of a chunk.
type Kind uint8

const (
	// Invalid indicates an erroneous chunk.
	Invalid Kind = iota

	// Other represents an identifier, literal, or operator.
	Other
	// Comment represents a line or block comment.
	Comment
	// Newline represents a run of consecutive newlines.
	Newline

	// Semicolon represents a real ';'.
	Semicolon
	// VSemicolon represents a virtual statement terminator.
	VSemicolon
	// OpenParen represents '('.
	OpenParen
	// CloseParen represents ')'.
	CloseParen
	// OpenBrace represents a real '{'.
	OpenBrace
	// CloseBrace represents a real '}'.
	CloseBrace
	// VBraceOpen represents a virtual open brace.
	VBraceOpen
	// VBraceClose represents a virtual close brace.
	VBraceClose
	// OpenBracket represents '['.
	OpenBracket
	// CloseBracket represents ']'.
	CloseBracket
	// Colon represents ':'.
	Colon
	// Comma represents ','.
	Comma

	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// PPIf represents an '#if'/'#ifdef'/'#ifndef' directive line.
	PPIf
	// PPElif represents an '#elif'/'#elseif' directive line.
	PPElif
	// PPElse represents an '#else' directive line.
	PPElse
	// PPEndif represents an '#endif' directive line.
	PPEndif
	// PPOther represents any other '#' directive line.
	PPOther
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	Other:        "Other",
	Comment:      "Comment",
	Newline:      "Newline",
	Semicolon:    "Semicolon",
	VSemicolon:   "VSemicolon",
	OpenParen:    "OpenParen",
	CloseParen:   "CloseParen",
	OpenBrace:    "OpenBrace",
	CloseBrace:   "CloseBrace",
	VBraceOpen:   "VBraceOpen",
	VBraceClose:  "VBraceClose",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	Colon:        "Colon",
	Comma:        "Comma",
	KwIf:         "KwIf",
	KwElse:       "KwElse",
	KwFor:        "KwFor",
	KwWhile:      "KwWhile",
	KwDo:         "KwDo",
	KwSwitch:     "KwSwitch",
	KwCase:       "KwCase",
	KwDefault:    "KwDefault",
	KwReturn:     "KwReturn",
	PPIf:         "PPIf",
	PPElif:       "PPElif",
	PPElse:       "PPElse",
	PPEndif:      "PPEndif",
	PPOther:      "PPOther",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsControl reports whether the kind opens a brace-optional control construct.
func (k Kind) IsControl() bool {
	switch k {
	case KwIf, KwElse, KwFor, KwWhile, KwDo:
		return true
	default:
		return false
	}
}

// IsBlockOpen reports whether the kind opens a real or virtual block.
func (k Kind) IsBlockOpen() bool {
	return k == OpenBrace || k == VBraceOpen
}

// IsBlockClose reports whether the kind closes a real or virtual block.
func (k Kind) IsBlockClose() bool {
	return k == CloseBrace || k == VBraceClose
}

// IsTerminator reports whether the kind already ends a statement, so no
// virtual semicolon is needed after it.
func (k Kind) IsTerminator() bool {
	switch k {
	case Semicolon, VSemicolon, OpenBrace, CloseBrace, VBraceOpen, VBraceClose, Colon:
		return true
	default:
		return false
	}
}

// IsPreprocConditional reports whether the kind belongs to an #if/#endif chain.
func (k Kind) IsPreprocConditional() bool {
	switch k {
	case PPIf, PPElif, PPElse, PPEndif:
		return true
	default:
		return false
	}
}

// IsPreproc reports whether the kind is any preprocessor directive line.
func (k Kind) IsPreproc() bool {
	return k.IsPreprocConditional() || k == PPOther
}
