package vbrace

import (
	"burnish/internal/chunk"
)

// AddVirtualSemicolons scans line by line and terminates every statement that
// ends at a newline inside an active virtual-brace region. It must run after
// Prescan and before ScrubVSemi.
func AddVirtualSemicolons(s *chunk.Store) {
	vdepth := 0
	for id := s.First(); id != chunk.None; id = s.Next(id) {
		switch s.Get(id).Kind {
		case chunk.VBraceOpen:
			vdepth++
		case chunk.VBraceClose:
			if vdepth > 0 {
				vdepth--
			}
		case chunk.Newline:
			if vdepth > 0 {
				id = CheckVSemicolon(s, id)
			}
		}
	}
}

// CheckVSemicolon decides whether the newline at nl ends an unterminated
// statement. If so it inserts a virtual semicolon immediately before the
// newline and returns it; otherwise it returns nl unchanged. Re-running on
// an already-terminated position is a no-op.
func CheckVSemicolon(s *chunk.Store, nl chunk.ID) chunk.ID {
	prev := s.PrevNC(nl)
	if prev == chunk.None {
		return nl
	}
	pc := s.Get(prev)
	if pc.Kind.IsTerminator() || pc.Kind.IsPreproc() {
		return nl
	}
	if pc.ContinuesLine() {
		return nl
	}
	if pc.Kind == chunk.CloseParen && closesControlHeader(s, prev) {
		// Заголовок конструкции: тело ещё впереди, строка ничего не
		// завершает.
		return nl
	}

	v := chunk.NewVirtual(chunk.VSemicolon, pc.Span)
	v.Level = pc.Level
	v.PPLevel = pc.PPLevel
	return s.InsertBefore(nl, v)
}

// AddVSemiAfter inserts a fresh, visible virtual semicolon immediately after
// the given chunk and returns it. Prescan uses it when an implied block ends
// exactly at end-of-statement.
func AddVSemiAfter(s *chunk.Store, id chunk.ID) chunk.ID {
	anchor := s.Get(id)
	v := chunk.NewVirtual(chunk.VSemicolon, anchor.Span)
	v.Level = anchor.Level
	v.PPLevel = anchor.PPLevel
	return s.InsertAfter(id, v)
}

// ScrubVSemi marks invisible every virtual semicolon that directly follows a
// close brace (real or virtual) belonging to a self-terminating construct:
// switch, case, else, if. A close brace with no recorded parent keeps its
// terminator — losing one is worse than rendering a spare.
//
// Runs strictly after all virtual semicolon insertions are complete.
func ScrubVSemi(s *chunk.Store) {
	for id := s.First(); id != chunk.None; id = s.Next(id) {
		c := s.Get(id)
		if c.Kind != chunk.VSemicolon || c.IsInvisible() {
			continue
		}
		prev := s.PrevNC(id)
		if prev == chunk.None {
			continue
		}
		pc := s.Get(prev)
		if !pc.Kind.IsBlockClose() {
			continue
		}
		switch pc.Parent {
		case chunk.ParentSwitch, chunk.ParentCase, chunk.ParentElse, chunk.ParentIf:
			c.Flags |= chunk.FlagInvisible
		}
	}
}

// closesControlHeader reports whether the close paren at id ends an
// if/for/while/switch condition.
func closesControlHeader(s *chunk.Store, id chunk.ID) bool {
	open := s.PairOf(id)
	if open == chunk.None {
		return false
	}
	kw := s.PrevNC(open)
	if kw == chunk.None {
		return false
	}
	k := s.Get(kw).Kind
	return k.IsControl() || k == chunk.KwSwitch
}
