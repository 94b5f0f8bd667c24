package diagfmt

import (
	"encoding/json"
	"io"

	"burnish/internal/diag"
	"burnish/internal/source"
)

type jsonDiagnostic struct {
	Path     string `json:"path,omitempty"`
	Line     uint32 `json:"line,omitempty"`
	Col      uint32 `json:"col,omitempty"`
	Severity string `json:"severity"`
	Code     uint16 `json:"code"`
	Message  string `json:"message"`
}

// JSON пишет диагностики одним массивом. Max > 0 обрезает вывод.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	payload := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     uint16(d.Code),
			Message:  d.Message,
		}
		if fs != nil && int(d.Primary.File) < fs.Len() {
			file := fs.Get(d.Primary.File)
			jd.Path = displayPath(file.Path, opts.PathMode)
			if opts.IncludePositions {
				start, _ := fs.Resolve(d.Primary)
				jd.Line = start.Line
				jd.Col = start.Col
			}
		}
		payload = append(payload, jd)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
