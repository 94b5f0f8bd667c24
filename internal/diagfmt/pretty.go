package diagfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"burnish/internal/diag"
	"burnish/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	posColor  = color.New(color.Bold)
	gutter    = color.New(color.FgBlue)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает:
// <path>:<line>:<col>: <SEV> burnish[<code>]: <message>
// затем Context строк исходника с подчёркиванием ^~~~ по Span.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	bag.SortStable()
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}

	if fs == nil || int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s burnish[%04d]: %s\n", sev, uint16(d.Code), d.Message)
		return
	}

	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	head := fmt.Sprintf("%s:%d:%d", displayPath(file.Path, opts.PathMode), start.Line, start.Col)
	if opts.Color {
		head = posColor.Sprint(head)
	}
	fmt.Fprintf(w, "%s: %s burnish[%04d]: %s\n", head, sev, uint16(d.Code), d.Message)

	if opts.Context > 0 {
		printContext(w, file, d.Severity, start, end, opts)
	}
}

func printContext(w io.Writer, file *source.File, sev diag.Severity, start, end source.LineCol, opts PrettyOpts) {
	first := int(start.Line) - int(opts.Context) + 1
	if first < 1 {
		first = 1
	}
	for line := first; line <= int(start.Line); line++ {
		text := file.GetLine(uint32(line))
		prefix := fmt.Sprintf("%5d | ", line)
		if opts.Color {
			prefix = gutter.Sprint(prefix)
		}
		fmt.Fprintf(w, "%s%s\n", prefix, text)
	}

	// Подчёркивание только для однострочного span.
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = severityColor(sev).Sprint(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", 8), strings.Repeat(" ", int(start.Col)-1), marker)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if wd, err := os.Getwd(); err == nil {
			if rel, relErr := filepath.Rel(wd, path); relErr == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
