// Package preproc keeps structurally parallel branches of an
// #if/#elif/#else/#endif chain formatted consistently.
//
// Назначение: ветки, которые отличаются только текстом (одна декларация,
// один стейтмент, опциональный комментарий), не должны расползаться по
// вертикальным отступам — решение первой ветки переносится на остальные.
// Не делает: вычисления условий препроцессора, слияния веток, вставки
// отсутствующих директив.
// Зависимости: internal/chunk.
package preproc

import (
	"burnish/internal/chunk"
)

// Squeeze walks every matched conditional group in the stream and applies the
// first branch's blank-line decisions to the remaining branches when the
// branches are structurally parallel. Mismatched branches are left alone:
// losing normalization beats guessing an alignment. Groups with unmatched
// directives are skipped entirely.
func Squeeze(s *chunk.Store) {
	for _, g := range collectGroups(s) {
		squeezeGroup(s, g)
	}
}

// group is one complete #if ... #endif chain, innermost groups first.
type group struct {
	directives []chunk.ID
}

func collectGroups(s *chunk.Store) []group {
	var stack []group
	var complete []group
	for id := s.First(); id != chunk.None; id = s.Next(id) {
		switch s.Get(id).Kind {
		case chunk.PPIf:
			stack = append(stack, group{directives: []chunk.ID{id}})
		case chunk.PPElif, chunk.PPElse:
			if len(stack) == 0 {
				continue // #elif без #if: группу не выдумываем
			}
			top := &stack[len(stack)-1]
			top.directives = append(top.directives, id)
		case chunk.PPEndif:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.directives = append(top.directives, id)
			complete = append(complete, top)
		}
	}
	// незакрытый #if на конце потока остаётся в stack и не обрабатывается
	return complete
}

func squeezeGroup(s *chunk.Store, g group) {
	n := len(g.directives)
	if n < 2 {
		return
	}

	// Ветки параллельны, если их формы (kinds без комментариев и переносов)
	// совпадают поэлементно.
	first := branchShape(s, g.directives[0], g.directives[1])
	for i := 1; i < n-1; i++ {
		if !shapesEqual(first, branchShape(s, g.directives[i], g.directives[i+1])) {
			return
		}
	}

	afterCount := newlineCount(s, nlAfter(s, g.directives[0]))
	beforeCount := newlineCount(s, nlBefore(s, g.directives[1]))

	for i, d := range g.directives {
		if i < n-1 {
			setNewlineCount(s, nlAfter(s, d), afterCount)
		}
		if i >= 1 {
			setNewlineCount(s, nlBefore(s, d), beforeCount)
		}
	}

	for i := 0; i < n-1; i++ {
		attachComments(s, g.directives[i], g.directives[i+1])
	}
}

// branchShape collects the structural kinds between two directives.
// Comments, newlines, and invisible chunks play no structural role.
func branchShape(s *chunk.Store, from, to chunk.ID) []chunk.Kind {
	var shape []chunk.Kind
	for id := s.Next(from); id != chunk.None && id != to; id = s.Next(id) {
		c := s.Get(id)
		if c.Kind == chunk.Newline || c.Kind == chunk.Comment || c.IsInvisible() {
			continue
		}
		shape = append(shape, c.Kind)
	}
	return shape
}

func shapesEqual(a, b []chunk.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// nlAfter returns the newline chunk directly after the directive, or None.
func nlAfter(s *chunk.Store, d chunk.ID) chunk.ID {
	if nx := s.Next(d); nx != chunk.None && s.Get(nx).Kind == chunk.Newline {
		return nx
	}
	return chunk.None
}

// nlBefore returns the newline chunk directly before the directive, or None.
func nlBefore(s *chunk.Store, d chunk.ID) chunk.ID {
	if pv := s.Prev(d); pv != chunk.None && s.Get(pv).Kind == chunk.Newline {
		return pv
	}
	return chunk.None
}

func newlineCount(s *chunk.Store, id chunk.ID) uint32 {
	if id == chunk.None {
		return 1
	}
	return s.Get(id).NLCount
}

func setNewlineCount(s *chunk.Store, id chunk.ID, count uint32) {
	if id == chunk.None {
		return
	}
	s.Get(id).NLCount = count
}

// attachComments pins a branch's leading line comments to the code they
// describe: no blank line between a comment line and the next chunk.
func attachComments(s *chunk.Store, from, to chunk.ID) {
	for id := s.Next(from); id != chunk.None && id != to; id = s.Next(id) {
		c := s.Get(id)
		if c.Kind != chunk.Comment {
			continue
		}
		prev := s.Prev(id)
		if prev == chunk.None || (s.Get(prev).Kind != chunk.Newline && !s.Get(prev).Kind.IsPreproc()) {
			continue // хвостовой комментарий после кода — не трогаем
		}
		next := s.Next(id)
		if next == chunk.None || s.Get(next).Kind != chunk.Newline {
			continue
		}
		after := s.Next(next)
		if after == chunk.None || after == to || s.Get(after).Kind.IsPreproc() {
			continue
		}
		s.Get(next).NLCount = 1
	}
}
