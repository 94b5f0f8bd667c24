package driver

import (
	"burnish/internal/chunk"
	"burnish/internal/config"
	"burnish/internal/diag"
	"burnish/internal/lexer"
	"burnish/internal/preproc"
	"burnish/internal/source"
	"burnish/internal/vbrace"
)

// TokenRow is one line of the token dump: the chunk after all structural
// passes, with its position and annotations.
type TokenRow struct {
	Kind      string
	Text      string
	Line      uint32
	Col       uint32
	Level     uint32
	PPLevel   uint32
	NLCount   uint32
	Parent    string
	Virtual   bool
	Invisible bool
}

// Tokenize runs the structural passes over one file and dumps the stream.
// Rendering is skipped: the dump shows what layout would consume. The caller
// owns the FileSet so diagnostics can be resolved against it afterwards.
func Tokenize(fileSet *source.FileSet, id source.FileID, cfg config.Config, bag *diag.Bag) []TokenRow {
	sf := fileSet.Get(id)

	var reporter lexer.Reporter
	if bag != nil {
		reporter = &lexer.ReporterAdapter{Bag: bag}
	}
	s := lexer.Scan(sf, lexer.Options{Reporter: reporter})

	if cfg.Format.VirtualBraces {
		vbrace.Prescan(s)
		vbrace.AddVirtualSemicolons(s)
		vbrace.ScrubVSemi(s)
	}
	if cfg.Format.SqueezeIfdef {
		preproc.Squeeze(s)
	}

	rows := make([]TokenRow, 0, s.Len())
	for id := s.First(); id != chunk.None; id = s.Next(id) {
		c := s.Get(id)
		start, _ := fileSet.Resolve(c.Span)
		rows = append(rows, TokenRow{
			Kind:      c.Kind.String(),
			Text:      c.Text,
			Line:      start.Line,
			Col:       start.Col,
			Level:     c.Level,
			PPLevel:   c.PPLevel,
			NLCount:   c.NLCount,
			Parent:    c.Parent.String(),
			Virtual:   c.IsVirtual(),
			Invisible: c.IsInvisible(),
		})
	}
	return rows
}
