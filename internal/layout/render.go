package layout

import (
	"bytes"

	"github.com/mattn/go-runewidth"

	"burnish/internal/chunk"
)

// Options controls the rendered shape of the output.
type Options struct {
	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int
	// UseTabs emits one tab per nesting level instead of spaces.
	UseTabs bool
	// MaxBlankLines caps consecutive blank lines between tokens.
	MaxBlankLines int
	// CommentColumn is the minimum column for trailing comments.
	// Zero keeps them a single space after the last token.
	CommentColumn int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	if o.MaxBlankLines == 0 {
		o.MaxBlankLines = 2
	}
	return o
}

type renderer struct {
	opt         Options
	buf         []byte
	atLineStart bool
}

// Render walks the stream and produces the formatted text. Virtual chunks
// contribute structure only and emit nothing; preprocessor directives are
// pinned to column zero.
func Render(s *chunk.Store, opt Options) []byte {
	r := renderer{
		opt:         opt.withDefaults(),
		buf:         make([]byte, 0, 1024),
		atLineStart: true,
	}
	var prev *chunk.Chunk
	for id := s.First(); id != chunk.None; id = s.Next(id) {
		c := s.Get(id)
		switch {
		case c.Kind == chunk.Newline:
			r.newlines(int(c.NLCount))
			prev = nil
		case c.IsVirtual():
			// Ничего не печатаем: виртуальные скобки и терминаторы уже
			// учтены в уровнях реальных токенов.
		default:
			r.token(c, prev)
			prev = c
		}
	}
	if len(r.buf) > 0 && r.buf[len(r.buf)-1] != '\n' {
		r.buf = append(r.buf, '\n')
	}
	return r.buf
}

func (r *renderer) token(c *chunk.Chunk, prev *chunk.Chunk) {
	switch {
	case r.atLineStart:
		if !c.Kind.IsPreproc() {
			r.indent(int(c.Level))
		}
		r.atLineStart = false
	case c.Kind == chunk.Comment && r.opt.CommentColumn > 0:
		r.padToColumn(r.opt.CommentColumn)
	case prev != nil && needSpace(prev, c):
		r.buf = append(r.buf, ' ')
	}
	r.buf = append(r.buf, c.Text...)
}

func (r *renderer) newlines(n int) {
	// Leading blank lines are dropped entirely.
	if len(r.buf) == 0 {
		r.atLineStart = true
		return
	}
	if n < 1 {
		n = 1
	}
	if limit := r.opt.MaxBlankLines + 1; n > limit {
		n = limit
	}
	for range n {
		r.buf = append(r.buf, '\n')
	}
	r.atLineStart = true
}

func (r *renderer) indent(level int) {
	if level <= 0 {
		return
	}
	if r.opt.UseTabs {
		for range level {
			r.buf = append(r.buf, '\t')
		}
		return
	}
	for range level * r.opt.IndentWidth {
		r.buf = append(r.buf, ' ')
	}
}

func (r *renderer) padToColumn(col int) {
	pad := col - r.lineWidth()
	if pad < 1 {
		pad = 1
	}
	for range pad {
		r.buf = append(r.buf, ' ')
	}
}

// lineWidth measures the current line in display cells, not bytes, so that
// comment alignment survives wide runes in identifiers and strings.
func (r *renderer) lineWidth() int {
	i := bytes.LastIndexByte(r.buf, '\n')
	return runewidth.StringWidth(string(r.buf[i+1:]))
}

func needSpace(prevC, curC *chunk.Chunk) bool {
	prev, cur := prevC.Kind, curC.Kind
	if cur == chunk.Other && (curC.Text == "++" || curC.Text == "--") {
		return false
	}
	if prev == chunk.Other && (prevC.Text == "!" || prevC.Text == "~") {
		return false
	}
	switch cur {
	case chunk.Semicolon, chunk.Comma, chunk.CloseParen, chunk.CloseBracket, chunk.Colon:
		return false
	}
	switch prev {
	case chunk.OpenParen, chunk.OpenBracket:
		return false
	}
	switch cur {
	case chunk.OpenParen, chunk.OpenBracket:
		// Call and index forms bind tight; control headers keep the space.
		switch prev {
		case chunk.Other, chunk.CloseParen, chunk.CloseBracket:
			return false
		}
	}
	return true
}
