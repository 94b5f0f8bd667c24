package layout

import (
	"strings"
	"testing"

	"burnish/internal/chunk"
	"burnish/internal/lexer"
	"burnish/internal/preproc"
	"burnish/internal/source"
	"burnish/internal/vbrace"
)

func render(t *testing.T, text string, opt Options) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pwn", []byte(text))
	s := lexer.Scan(fs.Get(id), lexer.Options{})
	vbrace.Prescan(s)
	vbrace.AddVirtualSemicolons(s)
	vbrace.ScrubVSemi(s)
	preproc.Squeeze(s)
	return string(Render(s, opt))
}

func TestBracedFunctionIndentation(t *testing.T) {
	in := "main() {\n" +
		"new a = 1;\n" +
		"if (a)\n" +
		"a++;\n" +
		"}\n"
	want := "main() {\n" +
		"    new a = 1;\n" +
		"    if (a)\n" +
		"        a++;\n" +
		"}\n"
	got := render(t, in, Options{})
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestVirtualChunksEmitNothing(t *testing.T) {
	in := "if (a)\nb = 1\n"
	want := "if (a)\n    b = 1\n"
	got := render(t, in, Options{})
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestBlankLinesCapped(t *testing.T) {
	in := "new a;\n\n\n\n\n\nnew b;\n"
	want := "new a;\n\n\nnew b;\n"
	got := render(t, in, Options{MaxBlankLines: 2})
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTabIndentation(t *testing.T) {
	in := "main() {\nnew a;\n}\n"
	want := "main() {\n\tnew a;\n}\n"
	got := render(t, in, Options{UseTabs: true})
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDirectivesPinnedToColumnZero(t *testing.T) {
	in := "main() {\n#if defined X\nnew a;\n#endif\n}\n"
	got := render(t, in, Options{})
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "#") && strings.HasPrefix(line, " ") {
			t.Errorf("directive indented: %q", line)
		}
	}
	if !strings.Contains(got, "\n#if defined X\n") {
		t.Errorf("missing directive line in %q", got)
	}
	if !strings.Contains(got, "\n    new a;\n") {
		t.Errorf("body lost its indentation in %q", got)
	}
}

func TestTrailingCommentColumn(t *testing.T) {
	in := "new a; // tail\n"
	got := render(t, in, Options{CommentColumn: 20})
	want := "new a;              // tail\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTrailingCommentColumnCountsCells(t *testing.T) {
	// Wide runes occupy two cells, so the pad shrinks accordingly.
	in := "s = \"日本\"; // c\n"
	got := render(t, in, Options{CommentColumn: 16})
	if !strings.Contains(got, "\";     //") {
		t.Errorf("unexpected pad in %q", got)
	}
}

func TestTrailingCommentSingleSpaceByDefault(t *testing.T) {
	in := "new a;    // tail\n"
	got := render(t, in, Options{})
	want := "new a; // tail\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLeadingBlankLinesDropped(t *testing.T) {
	in := "\n\n\nnew a;\n"
	got := render(t, in, Options{})
	if got != "new a;\n" {
		t.Errorf("got %q", got)
	}
}

func TestTrailingNewlineEnsured(t *testing.T) {
	got := render(t, "new a;", Options{})
	if !strings.HasSuffix(got, ";\n") {
		t.Errorf("got %q", got)
	}
}

func TestRenderedTokensMatchInput(t *testing.T) {
	in := "main() { if (a) b = 1\nelse b = 2\n}\n"
	got := render(t, in, Options{})
	fs := source.NewFileSet()
	a := lexer.Scan(fs.Get(fs.AddVirtual("a.pwn", []byte(in))), lexer.Options{})
	b := lexer.Scan(fs.Get(fs.AddVirtual("b.pwn", []byte(got))), lexer.Options{})
	var wantTok, gotTok []string
	for id := a.First(); id != chunk.None; id = a.Next(id) {
		if c := a.Get(id); c.Kind != chunk.Newline {
			wantTok = append(wantTok, c.Text)
		}
	}
	for id := b.First(); id != chunk.None; id = b.Next(id) {
		if c := b.Get(id); c.Kind != chunk.Newline {
			gotTok = append(gotTok, c.Text)
		}
	}
	if len(wantTok) != len(gotTok) {
		t.Fatalf("token count changed: %v vs %v", wantTok, gotTok)
	}
	for i := range wantTok {
		if wantTok[i] != gotTok[i] {
			t.Errorf("token %d: %q vs %q", i, wantTok[i], gotTok[i])
		}
	}
}
