package chunk

// Annotator maintains the running brace and preprocessor nesting counters
// during a forward scan. It has no pass of its own: the lexer seeds levels
// through it, and the structural passes call it whenever they insert new
// structural chunks so later passes always read current levels.
type Annotator struct {
	level   uint32
	ppLevel uint32

	// Трекинг начал стейтментов.
	havePrev      bool
	afterBoundary bool // последний значимый chunk был терминатором
	prevContinues bool // последний значимый chunk продолжает строку
	newlineSeen   bool
	stmtHead      Kind // kind первого chunk текущего стейтмента
}

// Observe stamps the chunk with the current levels and advances the counters
// according to the chunk's kind.
//
// Open braces carry the level of the enclosing scope; contents sit one
// deeper; the matching close returns to the open's level.
func (a *Annotator) Observe(c *Chunk) {
	switch c.Kind {
	case OpenBrace, VBraceOpen:
		c.Level = a.level
		c.PPLevel = a.ppLevel
		a.level++
	case CloseBrace, VBraceClose:
		if a.level > 0 {
			a.level--
		}
		c.Level = a.level
		c.PPLevel = a.ppLevel
	case PPIf:
		c.Level = a.level
		c.PPLevel = a.ppLevel
		a.ppLevel++
	case PPElif, PPElse:
		c.Level = a.level
		c.PPLevel = a.ppLevel
		if c.PPLevel > 0 {
			c.PPLevel--
		}
	case PPEndif:
		if a.ppLevel > 0 {
			a.ppLevel--
		}
		c.Level = a.level
		c.PPLevel = a.ppLevel
	default:
		c.Level = a.level
		c.PPLevel = a.ppLevel
	}
	a.track(c)
}

// track помечает первый значимый chunk каждого стейтмента флагом StmtStart.
// Newlines, комментарии и директивы прозрачны для границ стейтмента.
func (a *Annotator) track(c *Chunk) {
	switch {
	case c.Kind == Newline:
		a.newlineSeen = true
		return
	case c.Kind == Comment || c.Kind.IsPreproc():
		return
	}
	if !a.havePrev || a.afterBoundary || (a.newlineSeen && !a.prevContinues) {
		c.Flags |= FlagStmtStart
		a.stmtHead = c.Kind
	}
	a.havePrev = true
	a.newlineSeen = false
	a.prevContinues = c.ContinuesLine()
	if c.Kind == Colon {
		// Двоеточие завершает только case/default-метку; тег и тернарный
		// оператор стейтмент не рвут.
		a.afterBoundary = a.stmtHead == KwCase || a.stmtHead == KwDefault
	} else {
		a.afterBoundary = c.Kind.IsTerminator()
	}
}

// Level returns the current brace nesting depth.
func (a *Annotator) Level() uint32 { return a.level }

// PPLevel returns the current preprocessor conditional depth.
func (a *Annotator) PPLevel() uint32 { return a.ppLevel }

// Annotate runs one full forward scan and restamps every linked chunk.
func Annotate(s *Store) {
	var a Annotator
	for id := s.First(); id != None; id = s.Next(id) {
		a.Observe(s.Get(id))
	}
}

// LevelOf returns the brace nesting depth stamped on the chunk.
func LevelOf(s *Store, id ID) uint32 {
	if id == None {
		return 0
	}
	return s.Get(id).Level
}

// PPLevelOf returns the preprocessor conditional depth stamped on the chunk.
func PPLevelOf(s *Store, id ID) uint32 {
	if id == None {
		return 0
	}
	return s.Get(id).PPLevel
}

// InsidePreprocBranch reports whether the chunk sits inside an open
// #if/#elif/#else branch.
func InsidePreprocBranch(s *Store, id ID) bool {
	if id == None {
		return false
	}
	return s.Get(id).PPLevel > 0
}

// BumpLevels adds delta to the Level of every chunk strictly between from
// and to. The virtualization pass uses it after bracketing a body with a
// new vbrace pair.
func BumpLevels(s *Store, from, to ID, delta uint32) {
	for id := s.Next(from); id != None && id != to; id = s.Next(id) {
		s.Get(id).Level += delta
	}
}
