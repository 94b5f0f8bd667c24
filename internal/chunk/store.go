package chunk

import (
	"fmt"

	"fortio.org/safecast"
)

// Store owns every chunk of one formatting run. Chunks live in an arena and
// are addressed by stable 1-based IDs; the doubly-linked order and the pair
// relation are stored as IDs, never as pointers.
//
// Все операции со ссылками O(1); обход всего потока O(n).
type Store struct {
	arena  []Chunk
	head   ID
	tail   ID
	linked int
	intern map[string]string
}

// NewStore creates a store with capacity for capHint chunks.
func NewStore(capHint uint) *Store {
	return &Store{
		arena:  make([]Chunk, 0, capHint),
		intern: make(map[string]string),
	}
}

func (s *Store) alloc(c Chunk) ID {
	s.arena = append(s.arena, c)
	n, err := safecast.Conv[uint32](len(s.arena))
	if err != nil {
		panic(fmt.Errorf("chunk arena overflow: %w", err))
	}
	return ID(n)
}

// Get returns the chunk for the given ID, or nil for None.
func (s *Store) Get(id ID) *Chunk {
	if id == None {
		return nil
	}
	return &s.arena[id-1]
}

// First returns the first linked chunk.
func (s *Store) First() ID { return s.head }

// Last returns the last linked chunk.
func (s *Store) Last() ID { return s.tail }

// Len returns the number of linked chunks.
func (s *Store) Len() int { return s.linked }

// Next returns the chunk after id, or None at the end.
func (s *Store) Next(id ID) ID {
	if id == None {
		return None
	}
	return s.Get(id).next
}

// Prev returns the chunk before id, or None at the start.
func (s *Store) Prev(id ID) ID {
	if id == None {
		return None
	}
	return s.Get(id).prev
}

// Append links a chunk at the end of the stream.
func (s *Store) Append(c Chunk) ID {
	c.Text = s.Intern(c.Text)
	c.prev = s.tail
	c.next = None
	id := s.alloc(c)
	if s.tail != None {
		s.Get(s.tail).next = id
	} else {
		s.head = id
	}
	s.tail = id
	s.linked++
	return id
}

// InsertAfter links a new chunk immediately after anchor.
// Levels are not recomputed here: only the caller knows the structural
// meaning of what it inserts.
func (s *Store) InsertAfter(anchor ID, c Chunk) ID {
	if anchor == None {
		panic("chunk: InsertAfter with no anchor")
	}
	c.Text = s.Intern(c.Text)
	a := s.Get(anchor)
	c.prev = anchor
	c.next = a.next
	id := s.alloc(c)
	a = s.Get(anchor) // re-fetch: alloc may have grown the arena
	if a.next != None {
		s.Get(a.next).prev = id
	} else {
		s.tail = id
	}
	a.next = id
	s.linked++
	return id
}

// InsertBefore links a new chunk immediately before anchor.
func (s *Store) InsertBefore(anchor ID, c Chunk) ID {
	if anchor == None {
		panic("chunk: InsertBefore with no anchor")
	}
	prev := s.Get(anchor).prev
	if prev == None {
		c.Text = s.Intern(c.Text)
		c.prev = None
		c.next = anchor
		id := s.alloc(c)
		s.Get(anchor).prev = id
		s.head = id
		s.linked++
		return id
	}
	return s.InsertAfter(prev, c)
}

// Remove unlinks a chunk. Only virtual chunks created and abandoned within
// the same pass may be removed; real tokens are never unlinked.
func (s *Store) Remove(id ID) {
	c := s.Get(id)
	if c == nil {
		return
	}
	if !c.IsVirtual() {
		panic("chunk: Remove called on a real token")
	}
	if c.prev != None {
		s.Get(c.prev).next = c.next
	} else {
		s.head = c.next
	}
	if c.next != None {
		s.Get(c.next).prev = c.prev
	} else {
		s.tail = c.prev
	}
	c.prev, c.next = None, None
	s.linked--
}

// SetPair records the open/close relation between two chunks.
// Это не ownership: просто обратные ссылки для O(1) перехода к паре.
func (s *Store) SetPair(open, close ID) {
	s.Get(open).pair = close
	s.Get(close).pair = open
}

// PairOf returns the matching open/close counterpart, or None.
func (s *Store) PairOf(id ID) ID {
	if id == None {
		return None
	}
	return s.Get(id).pair
}

// NextNC returns the next chunk that is neither a newline nor a comment nor
// invisible. The structural passes walk the stream through this.
func (s *Store) NextNC(id ID) ID {
	for id = s.Next(id); id != None; id = s.Next(id) {
		c := s.Get(id)
		if c.Kind == Newline || c.Kind == Comment || c.IsInvisible() {
			continue
		}
		return id
	}
	return None
}

// PrevNC returns the previous chunk that is neither a newline nor a comment
// nor invisible.
func (s *Store) PrevNC(id ID) ID {
	for id = s.Prev(id); id != None; id = s.Prev(id) {
		c := s.Get(id)
		if c.Kind == Newline || c.Kind == Comment || c.IsInvisible() {
			continue
		}
		return id
	}
	return None
}

// Intern deduplicates chunk text. Token texts repeat heavily (keywords,
// operators, common idents), so one copy per distinct string is kept.
func (s *Store) Intern(text string) string {
	if text == "" {
		return ""
	}
	if got, ok := s.intern[text]; ok {
		return got
	}
	s.intern[text] = text
	return text
}
