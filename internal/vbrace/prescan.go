package vbrace

import (
	"burnish/internal/chunk"
)

// Prescan walks the stream once, forward, and brackets every brace-optional
// body with a virtual brace pair:
//
//   - control keywords (if, else, for, while, do) whose body is not a real
//     compound statement,
//   - level-0 function signatures immediately followed by a statement
//     instead of '{'.
//
// Real compound bodies get their open/close braces stamped with the owning
// construct instead; no chunks are inserted for them. A body cut off by the
// end of the stream is closed at the stream end rather than rejected.
func Prescan(s *chunk.Store) {
	p := &pass{store: s}
	id := s.First()
	for id != chunk.None {
		c := s.Get(id)
		var end chunk.ID
		switch {
		case c.Kind.IsControl():
			end = p.control(id)
		case c.Kind == chunk.KwSwitch:
			end = p.switchStmt(id)
		case c.Kind == chunk.OpenBrace:
			end = p.compound(id, chunk.ParentNone)
		case c.Kind == chunk.Other && c.Level == 0 && p.isFunctionHeader(id):
			end = p.function(id)
		default:
			id = s.Next(id)
			continue
		}
		if end == chunk.None {
			break
		}
		id = s.Next(end)
	}
}

type pass struct {
	store *chunk.Store
}

func parentOf(kind chunk.Kind) chunk.Parent {
	switch kind {
	case chunk.KwIf:
		return chunk.ParentIf
	case chunk.KwElse:
		return chunk.ParentElse
	case chunk.KwFor:
		return chunk.ParentFor
	case chunk.KwWhile:
		return chunk.ParentWhile
	case chunk.KwDo:
		return chunk.ParentDo
	case chunk.KwSwitch:
		return chunk.ParentSwitch
	default:
		return chunk.ParentNone
	}
}

// headerEnd возвращает последний chunk заголовка конструкции:
// закрывающую скобку условия, либо само ключевое слово (else, do).
func (p *pass) headerEnd(kwID chunk.ID) chunk.ID {
	s := p.store
	switch s.Get(kwID).Kind {
	case chunk.KwIf, chunk.KwFor, chunk.KwWhile, chunk.KwSwitch:
		par := s.NextNC(kwID)
		if par == chunk.None || s.Get(par).Kind != chunk.OpenParen {
			return kwID
		}
		if pr := s.PairOf(par); pr != chunk.None {
			return pr
		}
		// незакрытое условие: всё до конца потока — заголовок
		return s.Last()
	default:
		return kwID
	}
}

// control virtualizes one if/else/for/while/do construct and returns the last
// chunk of the whole construct (including else arms and the do-while tail).
func (p *pass) control(kwID chunk.ID) chunk.ID {
	s := p.store
	kind := s.Get(kwID).Kind

	headerEnd := p.headerEnd(kwID)
	bodyStart := s.NextNC(headerEnd)
	if bodyStart == chunk.None {
		return headerEnd
	}

	var last chunk.ID
	switch {
	case kind == chunk.KwElse && s.Get(bodyStart).Kind == chunk.KwIf:
		// else-if: вложенный if сам откроет vbrace, else не открывает свой
		return p.control(bodyStart)
	case s.Get(bodyStart).Kind == chunk.OpenBrace:
		last = p.compound(bodyStart, parentOf(kind))
	case s.Get(bodyStart).Kind == chunk.VBraceOpen:
		// уже виртуализовано предыдущим запуском
		last = s.PairOf(bodyStart)
		if last == chunk.None {
			last = bodyStart
		}
	default:
		last = p.virtualize(headerEnd, bodyStart, parentOf(kind))
	}

	if kind == chunk.KwDo {
		last = p.doTail(last)
	}
	if kind == chunk.KwIf {
		if nx := s.NextNC(last); nx != chunk.None && s.Get(nx).Kind == chunk.KwElse {
			return p.control(nx)
		}
	}
	return last
}

// virtualize brackets the single statement starting at bodyStart with a new
// vbrace pair right after headerEnd. A body ending at a newline boundary is
// terminated with a virtual semicolon before the close.
func (p *pass) virtualize(headerEnd, bodyStart chunk.ID, parent chunk.Parent) chunk.ID {
	s := p.store
	anchor := s.Get(headerEnd)

	vo := chunk.NewVirtual(chunk.VBraceOpen, anchor.Span)
	vo.Level = anchor.Level
	vo.PPLevel = anchor.PPLevel
	voID := s.InsertAfter(headerEnd, vo)

	last := p.statementEnd(bodyStart)
	if last == chunk.None {
		last = voID
	}

	closeAnchor := last
	if k := s.Get(last).Kind; k != chunk.Semicolon && k != chunk.VSemicolon {
		closeAnchor = AddVSemiAfter(s, last)
	}

	vcAnchor := s.Get(closeAnchor)
	vc := chunk.NewVirtual(chunk.VBraceClose, vcAnchor.Span)
	vc.Level = vo.Level
	vc.PPLevel = vcAnchor.PPLevel
	vc.Parent = parent
	vcID := s.InsertAfter(closeAnchor, vc)

	s.SetPair(voID, vcID)
	chunk.BumpLevels(s, voID, vcID, 1)
	return vcID
}

// compound walks a real-braced block, stamps its braces with the owning
// construct, and processes every nested brace-optional construct inside.
// Returns the close brace, or the last chunk when the block never closes.
func (p *pass) compound(openID chunk.ID, parent chunk.Parent) chunk.ID {
	s := p.store
	closeID := s.PairOf(openID)
	if parent != chunk.ParentNone {
		s.Get(openID).Parent = parent
		if closeID != chunk.None {
			s.Get(closeID).Parent = parent
		}
	}

	id := s.Next(openID)
	for id != chunk.None && id != closeID {
		c := s.Get(id)
		var end chunk.ID
		switch {
		case c.Kind.IsControl():
			end = p.control(id)
		case c.Kind == chunk.KwSwitch:
			end = p.switchStmt(id)
		case c.Kind == chunk.KwCase || c.Kind == chunk.KwDefault:
			end = p.caseLabel(id)
		case c.Kind == chunk.OpenBrace:
			end = p.compound(id, chunk.ParentNone)
		default:
			id = s.Next(id)
			continue
		}
		if end == chunk.None {
			break
		}
		id = s.Next(end)
	}

	if closeID != chunk.None {
		return closeID
	}
	return s.Last()
}

// switchStmt handles 'switch (cond) { ... }'. Switch bodies are compound in
// well-formed input; a braceless one still gets the vbrace treatment so the
// stream stays uniform.
func (p *pass) switchStmt(kwID chunk.ID) chunk.ID {
	s := p.store
	headerEnd := p.headerEnd(kwID)
	bodyStart := s.NextNC(headerEnd)
	if bodyStart == chunk.None {
		return headerEnd
	}
	switch s.Get(bodyStart).Kind {
	case chunk.OpenBrace:
		return p.compound(bodyStart, chunk.ParentSwitch)
	case chunk.VBraceOpen:
		if pr := s.PairOf(bodyStart); pr != chunk.None {
			return pr
		}
		return bodyStart
	default:
		return p.virtualize(headerEnd, bodyStart, chunk.ParentSwitch)
	}
}

// caseLabel advances past 'case expr:' / 'default:' and stamps a compound
// body, if any, with ParentCase.
func (p *pass) caseLabel(kwID chunk.ID) chunk.ID {
	s := p.store
	id := kwID
	for id != chunk.None {
		c := s.Get(id)
		if c.Kind == chunk.Colon {
			break
		}
		if c.Kind == chunk.CloseBrace || c.Kind == chunk.Newline {
			// метка без двоеточия — не наша забота
			return kwID
		}
		id = s.Next(id)
	}
	if id == chunk.None {
		return kwID
	}
	if nx := s.NextNC(id); nx != chunk.None && s.Get(nx).Kind == chunk.OpenBrace {
		return p.compound(nx, chunk.ParentCase)
	}
	return id
}

// doTail consumes the 'while (cond)' tail of a do construct and returns its
// trailing semicolon when present.
func (p *pass) doTail(last chunk.ID) chunk.ID {
	s := p.store
	nx := s.NextNC(last)
	if nx == chunk.None || s.Get(nx).Kind != chunk.KwWhile {
		return last
	}
	headerEnd := nx
	if par := s.NextNC(nx); par != chunk.None && s.Get(par).Kind == chunk.OpenParen {
		if pr := s.PairOf(par); pr != chunk.None {
			headerEnd = pr
		}
	}
	if t := s.NextNC(headerEnd); t != chunk.None && s.Get(t).Kind == chunk.Semicolon {
		return t
	}
	return headerEnd
}

// statementEnd returns the last significant chunk of the statement starting
// at start. Nested brace-optional constructs inside the statement are
// virtualized along the way.
func (p *pass) statementEnd(start chunk.ID) chunk.ID {
	s := p.store
	c := s.Get(start)
	switch {
	case c.Kind == chunk.OpenBrace:
		return p.compound(start, chunk.ParentNone)
	case c.Kind.IsControl():
		return p.control(start)
	case c.Kind == chunk.KwSwitch:
		return p.switchStmt(start)
	}

	last := start
	id := start
	for id != chunk.None {
		c := s.Get(id)
		switch {
		case c.Kind == chunk.Semicolon:
			return id
		case c.Kind == chunk.OpenParen, c.Kind == chunk.OpenBracket, c.Kind == chunk.OpenBrace:
			if pr := s.PairOf(id); pr != chunk.None {
				last = pr
				id = s.Next(pr)
				continue
			}
			// незакрытая скобка: статемент обрывается концом потока
			return p.lastSignificant()
		case c.Kind == chunk.CloseParen, c.Kind == chunk.CloseBracket, c.Kind == chunk.CloseBrace:
			// уровень упал ниже стартового — стейтмент кончился раньше
			return last
		case c.Kind.IsControl() || c.Kind == chunk.KwSwitch || c.Kind == chunk.KwCase || c.Kind == chunk.KwDefault:
			// началась новая конструкция без терминатора
			return last
		case c.Kind == chunk.Newline:
			if !s.Get(last).ContinuesLine() {
				return last
			}
		case c.Kind == chunk.Comment || c.Kind.IsPreproc():
			// прозрачны для границ стейтмента
		default:
			last = id
		}
		id = s.Next(id)
	}
	return last
}

func (p *pass) lastSignificant() chunk.ID {
	s := p.store
	id := s.Last()
	for id != chunk.None {
		k := s.Get(id).Kind
		if k != chunk.Newline && k != chunk.Comment {
			return id
		}
		id = s.Prev(id)
	}
	return chunk.None
}

// isFunctionHeader reports whether the level-0 ident at id opens a function
// definition: 'name ( ... )' followed by something other than a declaration
// terminator. The ident must sit at the start of its statement, возможно за
// цепочкой модификаторов и тега (public, stock, Float:); вызов внутри
// инициализатора декларации заголовком не является.
func (p *pass) isFunctionHeader(id chunk.ID) bool {
	s := p.store
	if !p.startsStatement(id) {
		return false
	}
	par := s.NextNC(id)
	if par == chunk.None || s.Get(par).Kind != chunk.OpenParen {
		return false
	}
	closeParen := s.PairOf(par)
	if closeParen == chunk.None {
		return false
	}
	after := s.NextNC(closeParen)
	if after == chunk.None {
		return false
	}
	switch c := s.Get(after); {
	case c.Kind == chunk.Semicolon || c.Kind == chunk.Comma || c.Kind == chunk.Colon:
		return false // forward/native декларация или список
	case c.Kind == chunk.CloseParen || c.Kind == chunk.CloseBracket || c.Kind == chunk.CloseBrace:
		return false
	case c.Kind.IsPreproc():
		return false
	case c.Kind == chunk.Other && c.ContinuesLine():
		return false // инициализатор декларации
	}
	return true
}

// startsStatement reports whether the chunk at id opens its statement,
// directly or through a chain of leading modifiers/tags.
func (p *pass) startsStatement(id chunk.ID) bool {
	s := p.store
	for id != chunk.None {
		c := s.Get(id)
		if c.IsStmtStart() {
			return true
		}
		prev := s.PrevNC(id)
		if prev == chunk.None {
			return false
		}
		pc := s.Get(prev)
		if pc.Kind == chunk.Colon || (pc.Kind == chunk.Other && !pc.ContinuesLine()) {
			id = prev
			continue
		}
		return false
	}
	return false
}

// function brackets an unbraced function body, or stamps a braced one.
func (p *pass) function(identID chunk.ID) chunk.ID {
	s := p.store
	par := s.NextNC(identID)
	closeParen := s.PairOf(par)
	after := s.NextNC(closeParen)
	if after == chunk.None {
		return closeParen
	}
	switch s.Get(after).Kind {
	case chunk.OpenBrace:
		return p.compound(after, chunk.ParentFunc)
	case chunk.VBraceOpen:
		if pr := s.PairOf(after); pr != chunk.None {
			return pr
		}
		return after
	default:
		return p.virtualize(closeParen, after, chunk.ParentFunc)
	}
}
