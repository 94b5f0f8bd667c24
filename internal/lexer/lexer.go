package lexer

import (
	"strings"

	"burnish/internal/chunk"
	"burnish/internal/source"
)

// Lexer превращает исходный текст в поток chunks внутри chunk.Store.
// Newline-раны и комментарии становятся полноценными chunks (не trivia):
// структурным проходам нужны границы строк.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	store  *chunk.Store
	ann    chunk.Annotator

	lineStart  bool // с начала строки видели только пробелы
	braceStack []chunk.ID
	parenStack []chunk.ID
}

// Scan tokenizes the whole file into a fresh chunk store. Real brace levels
// and preprocessor levels are seeded while scanning; brace and paren pairs
// get their back-references set where the source is well formed.
func Scan(file *source.File, opts Options) *chunk.Store {
	lx := &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		store:     chunk.NewStore(uint(len(file.Content)/4 + 16)),
		lineStart: true,
	}
	lx.run()
	return lx.store
}

func (lx *Lexer) emit(c chunk.Chunk) chunk.ID {
	id := lx.store.Append(c)
	lx.ann.Observe(lx.store.Get(id))
	if c.Kind != chunk.Newline {
		lx.lineStart = false
	}
	return id
}

func (lx *Lexer) run() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t':
			lx.cursor.Bump()
		case b == '\r':
			// Одиночные \r (CRLF нормализован при загрузке) игнорируем.
			lx.cursor.Bump()
		case b == '\n':
			lx.scanNewlines()
		case b == '#' && lx.lineStart:
			lx.scanDirective()
		case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
			lx.scanComment()
		case isIdentStart(b):
			lx.scanIdent()
		case b >= '0' && b <= '9':
			lx.scanNumber()
		case b == '"' || b == '\'':
			lx.scanString(b)
		default:
			lx.scanPunct()
		}
	}
}

func (lx *Lexer) scanNewlines() {
	start := lx.cursor.Mark()
	count := uint32(0)
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			count++
			lx.cursor.Bump()
			continue
		}
		if b == '\r' {
			lx.cursor.Bump()
			continue
		}
		break
	}
	lx.emit(chunk.Chunk{
		Kind:    chunk.Newline,
		Span:    lx.cursor.SpanFrom(start),
		NLCount: count,
	})
	lx.lineStart = true
}

// scanDirective читает всю строку '#...' как один chunk.
func (lx *Lexer) scanDirective() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	text := strings.TrimRight(lx.cursor.TextFrom(start), " \t\r")
	lx.emit(chunk.Chunk{
		Kind: classifyDirective(text),
		Text: text,
		Span: lx.cursor.SpanFrom(start),
	})
}

func classifyDirective(line string) chunk.Kind {
	word := strings.TrimLeft(line, "# \t")
	if i := strings.IndexAny(word, " \t("); i >= 0 {
		word = word[:i]
	}
	switch word {
	case "if", "ifdef", "ifndef":
		return chunk.PPIf
	case "elif", "elseif":
		return chunk.PPElif
	case "else":
		return chunk.PPElse
	case "endif":
		return chunk.PPEndif
	default:
		return chunk.PPOther
	}
}

func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Eat('/') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	} else {
		lx.cursor.Bump() // '*'
		closed := false
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.report("unterminated-block-comment", lx.cursor.SpanFrom(start), "block comment is not closed")
		}
	}
	lx.emit(chunk.Chunk{
		Kind: chunk.Comment,
		Text: strings.TrimRight(lx.cursor.TextFrom(start), " \t\r"),
		Span: lx.cursor.SpanFrom(start),
	})
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '@' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (lx *Lexer) scanIdent() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentPart(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	kind := chunk.Other
	if k, ok := lookupKeyword(normalizeIdent(text)); ok {
		kind = k
	}
	lx.emit(chunk.Chunk{
		Kind: kind,
		Text: text,
		Span: lx.cursor.SpanFrom(start),
	})
}

func (lx *Lexer) scanNumber() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		// hex/binary prefixes, digits, exponents, and '.' all glue together
		if isIdentPart(b) || b == '.' {
			lx.cursor.Bump()
			continue
		}
		break
	}
	lx.emit(chunk.Chunk{
		Kind: chunk.Other,
		Text: lx.cursor.TextFrom(start),
		Span: lx.cursor.SpanFrom(start),
	})
}

func (lx *Lexer) scanString(quote byte) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == quote {
			closed = true
			break
		}
	}
	if !closed {
		lx.report("unterminated-string", lx.cursor.SpanFrom(start), "string literal is not closed")
	}
	lx.emit(chunk.Chunk{
		Kind: chunk.Other,
		Text: lx.cursor.TextFrom(start),
		Span: lx.cursor.SpanFrom(start),
	})
}

func (lx *Lexer) scanPunct() {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	var kind chunk.Kind
	switch b {
	case '{':
		kind = chunk.OpenBrace
	case '}':
		kind = chunk.CloseBrace
	case '(':
		kind = chunk.OpenParen
	case ')':
		kind = chunk.CloseParen
	case '[':
		kind = chunk.OpenBracket
	case ']':
		kind = chunk.CloseBracket
	case ';':
		kind = chunk.Semicolon
	case ':':
		kind = chunk.Colon
	case ',':
		kind = chunk.Comma
	default:
		lx.scanOperatorTail(b)
		kind = chunk.Other
	}

	id := lx.emit(chunk.Chunk{
		Kind: kind,
		Text: lx.cursor.TextFrom(start),
		Span: lx.cursor.SpanFrom(start),
	})
	lx.trackPairs(kind, id)
}

var twoByteOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "<<": true, ">>": true,
	"&&": true, "||": true, "++": true, "--": true, "+=": true, "-=": true,
	"*=": true, "/=": true, "%=": true, "&=": true, "|=": true, "^=": true,
}

var threeByteOps = map[string]bool{
	"<<=": true, ">>=": true,
}

// scanOperatorTail доедает многосимвольные операторы (==, <<=, ...).
func (lx *Lexer) scanOperatorTail(first byte) {
	two := string([]byte{first, lx.cursor.Peek()})
	if !twoByteOps[two] {
		return
	}
	lx.cursor.Bump()
	if threeByteOps[two+string(lx.cursor.Peek())] {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) trackPairs(kind chunk.Kind, id chunk.ID) {
	switch kind {
	case chunk.OpenBrace:
		lx.braceStack = append(lx.braceStack, id)
	case chunk.CloseBrace:
		if n := len(lx.braceStack); n > 0 {
			lx.store.SetPair(lx.braceStack[n-1], id)
			lx.braceStack = lx.braceStack[:n-1]
		}
	case chunk.OpenParen:
		lx.parenStack = append(lx.parenStack, id)
	case chunk.CloseParen:
		if n := len(lx.parenStack); n > 0 {
			lx.store.SetPair(lx.parenStack[n-1], id)
			lx.parenStack = lx.parenStack[:n-1]
		}
	}
}
