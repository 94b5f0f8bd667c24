// Package chunk defines the mutable token stream the formatting passes
// operate on.
// Invariants:
//   - Chunk.Text is the literal source text for real chunks; virtual chunks
//     carry no text.
//   - An Invisible chunk is always Virtual; the converse need not hold.
//   - Every VBraceOpen has exactly one matching VBraceClose at the same Level.
//   - Real chunk order and text never change after lexing; passes only add
//     virtual chunks and mutate Flags, Level, and Parent.
package chunk

import (
	"burnish/internal/source"
)

// ID addresses a chunk inside a Store. IDs are 1-based and stable: a chunk
// keeps its ID for the lifetime of the store even after unlinking.
type ID uint32

// None is the null chunk ID.
const None ID = 0

func (id ID) IsValid() bool { return id != None }

// Flags is a bitset of per-chunk markers.
type Flags uint8

const (
	// FlagVirtual marks a chunk with no source text, inserted to give the
	// layout passes a uniform brace/semicolon signal.
	FlagVirtual Flags = 1 << iota
	// FlagInvisible marks a virtual chunk retained for bookkeeping but
	// contributing zero width to rendered output.
	FlagInvisible
	// FlagStmtStart marks the first significant chunk of a statement.
	// Construct recognition anchors on it: только стартовый ident может
	// открывать определение функции.
	FlagStmtStart
)

// Parent records which control construct a close brace or close vbrace
// terminates. The scrub pass keys off this.
type Parent uint8

const (
	ParentNone Parent = iota
	ParentIf
	ParentElse
	ParentFor
	ParentWhile
	ParentDo
	ParentSwitch
	ParentCase
	ParentFunc
)

var parentNames = [...]string{
	ParentNone:   "None",
	ParentIf:     "If",
	ParentElse:   "Else",
	ParentFor:    "For",
	ParentWhile:  "While",
	ParentDo:     "Do",
	ParentSwitch: "Switch",
	ParentCase:   "Case",
	ParentFunc:   "Func",
}

func (p Parent) String() string {
	if int(p) < len(parentNames) {
		return parentNames[p]
	}
	return "Parent(?)"
}

// Chunk is one token (real or synthetic) in the formatting stream.
type Chunk struct {
	Kind Kind
	Text string
	Span source.Span

	// Level is the real+virtual brace nesting depth at this chunk.
	Level uint32
	// PPLevel is the nesting depth of open preprocessor conditional groups.
	PPLevel uint32
	// NLCount is the run length of a Newline chunk; zero for other kinds.
	NLCount uint32

	Flags  Flags
	Parent Parent

	prev, next ID
	pair       ID
}

// IsVirtual reports whether the chunk has no source text of its own.
func (c *Chunk) IsVirtual() bool { return c.Flags&FlagVirtual != 0 }

// IsInvisible reports whether the chunk is suppressed from rendered output.
func (c *Chunk) IsInvisible() bool { return c.Flags&FlagInvisible != 0 }

// IsStmtStart reports whether the chunk begins a statement.
func (c *Chunk) IsStmtStart() bool { return c.Flags&FlagStmtStart != 0 }

// ContinuesLine reports whether the chunk cannot end a statement, so a
// following newline does not terminate anything.
func (c *Chunk) ContinuesLine() bool {
	switch {
	case c.Kind == Comma:
		return true
	case c.Kind == OpenParen || c.Kind == OpenBracket:
		return true
	case c.Kind.IsControl() || c.Kind == KwSwitch:
		return true
	case c.Kind == Other && isOperatorText(c.Text):
		return true
	}
	return false
}

// isOperatorText reports whether text is a pure operator that continues the
// statement onto the next line. Postfix ++/-- do end statements.
func isOperatorText(text string) bool {
	if text == "" || text == "++" || text == "--" {
		return false
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~', '?':
		default:
			return false
		}
	}
	return true
}

// NewVirtual builds a virtual chunk of the given kind anchored at span.
// The span is zero-width: virtual chunks own no source bytes.
func NewVirtual(kind Kind, at source.Span) Chunk {
	return Chunk{
		Kind:  kind,
		Span:  source.Span{File: at.File, Start: at.End, End: at.End},
		Flags: FlagVirtual,
	}
}
