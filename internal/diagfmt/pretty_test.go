package diagfmt

import (
	"strings"
	"testing"

	"burnish/internal/diag"
	"burnish/internal/source"
)

func oneDiagnostic(t *testing.T, text string, start, end uint32) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pwn", []byte(text))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LexUnterminatedString,
		Message:  "string literal is not closed",
		Primary:  source.Span{File: id, Start: start, End: end},
	})
	return bag, fs
}

func TestPrettyHeaderLine(t *testing.T) {
	bag, fs := oneDiagnostic(t, "new s = \"abc\n", 8, 12)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "test.pwn:1:9:") {
		t.Errorf("missing position in %q", out)
	}
	if !strings.Contains(out, "WARNING burnish[1002]: string literal is not closed") {
		t.Errorf("missing header in %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape codes without Color: %q", out)
	}
}

func TestPrettyContextAndUnderline(t *testing.T) {
	bag, fs := oneDiagnostic(t, "new a;\nnew s = \"abc\n", 15, 19)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Context: 2})
	out := sb.String()

	if !strings.Contains(out, "1 | new a;") {
		t.Errorf("missing leading context in %q", out)
	}
	if !strings.Contains(out, "2 | new s = \"abc") {
		t.Errorf("missing source line in %q", out)
	}
	if !strings.Contains(out, "^~~~") {
		t.Errorf("missing underline in %q", out)
	}
}

func TestPrettyWithoutFileSet(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file",
	})

	var sb strings.Builder
	Pretty(&sb, bag, nil, PrettyOpts{})
	if !strings.Contains(sb.String(), "ERROR burnish[2001]: failed to load file") {
		t.Errorf("got %q", sb.String())
	}
}

func TestPrettyBasenamePathMode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("deep/nested/test.pwn", []byte("x\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.UnknownCode,
		Message:  "note",
		Primary:  source.Span{File: id},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(sb.String(), "test.pwn:1:1:") {
		t.Errorf("got %q", sb.String())
	}
}
