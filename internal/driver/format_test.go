package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"burnish/internal/config"
	"burnish/internal/diag"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestFormatPathsWritesAndSettles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.pwn", "if(a)\nb=1\n")
	want := "if (a)\n    b = 1\n"

	opts := FormatOptions{Config: config.Default()}
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if !results[0].Changed {
		t.Error("first run reported no change")
	}
	if got := readFile(t, path); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Повторный прогон ничего не меняет.
	results, err = FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second FormatPaths: %v", err)
	}
	if results[0].Changed {
		t.Error("second run reported a change")
	}
	if got := readFile(t, path); got != want {
		t.Errorf("file drifted on second run: %q", got)
	}
}

func TestFormatPathsCheckLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	in := "if(a)\nb=1\n"
	path := writeFile(t, dir, "a.pwn", in)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Config: config.Default(),
		Check:  true,
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed {
		t.Error("check did not flag the file")
	}
	if got := readFile(t, path); got != in {
		t.Errorf("check modified the file: %q", got)
	}
}

func TestFormatPathsStdoutReturnsContent(t *testing.T) {
	dir := t.TempDir()
	in := "if(a)\nb=1\n"
	path := writeFile(t, dir, "a.pwn", in)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Config: config.Default(),
		Stdout: true,
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if string(results[0].Formatted) != "if (a)\n    b = 1\n" {
		t.Errorf("unexpected stdout content %q", results[0].Formatted)
	}
	if got := readFile(t, path); got != in {
		t.Errorf("stdout mode modified the file: %q", got)
	}
}

func TestFormatPathsOrderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pwn", "c.pwn", "a.pwn", "e.pwn", "d.pwn"} {
		writeFile(t, dir, name, "new x;\n")
	}
	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{
		Config: config.Default(),
		Check:  true,
		Jobs:   4,
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	want := []string{"a.pwn", "b.pwn", "c.pwn", "d.pwn", "e.pwn"}
	if len(results) != len(want) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if filepath.Base(r.Path) != want[i] {
			t.Errorf("result %d is %s, want %s", i, filepath.Base(r.Path), want[i])
		}
	}
}

func TestFormatPathsNoSourcesIsAnError(t *testing.T) {
	if _, err := FormatPaths(context.Background(), []string{t.TempDir()}, FormatOptions{
		Config: config.Default(),
	}); err == nil {
		t.Error("expected an error for an empty tree")
	}
}

func TestConditionalBranchSpacingEndToEnd(t *testing.T) {
	in := "#if defined A\n" +
		"\n" +
		"new ax;\n" +
		"\n" +
		"#else\n" +
		"new cx;\n" +
		"#endif\n"
	want := "#if defined A\n" +
		"\n" +
		"new ax;\n" +
		"\n" +
		"#else\n" +
		"\n" +
		"new cx;\n" +
		"\n" +
		"#endif\n"
	got := string(FormatBytes("cond.pwn", []byte(in), config.Default(), nil))
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSqueezeDisabledKeepsBranchSpacing(t *testing.T) {
	cfg := config.Default()
	cfg.Format.SqueezeIfdef = false
	in := "#if defined A\n" +
		"\n" +
		"new ax;\n" +
		"\n" +
		"#else\n" +
		"new cx;\n" +
		"#endif\n"
	got := string(FormatBytes("cond.pwn", []byte(in), cfg, nil))
	if got != in {
		t.Errorf("got:\n%s\nwant input unchanged:\n%s", got, in)
	}
}

func TestVirtualBracesDisabledSkipsVirtualization(t *testing.T) {
	cfg := config.Default()
	cfg.Format.VirtualBraces = false
	in := "if (a)\nb = 1\n"
	got := string(FormatBytes("x.pwn", []byte(in), cfg, nil))
	// Без виртуальных скобок тело не получает дополнительного уровня.
	if got != "if (a)\nb = 1\n" {
		t.Errorf("got %q", got)
	}
}

func TestFormatPathsExposesFileSetForDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.pwn", "new s = \"abc\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{
		Config: config.Default(),
		Check:  true,
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}

	res := results[0]
	if res.Bag.Len() == 0 {
		t.Fatal("unterminated string produced no diagnostics")
	}
	if res.FileSet == nil {
		t.Fatal("result with diagnostics must carry the file set")
	}
	for _, d := range res.Bag.Items() {
		start, _ := res.FileSet.Resolve(d.Primary)
		if start.Line == 0 || start.Col == 0 {
			t.Errorf("diagnostic %q: unresolvable position %d:%d", d.Message, start.Line, start.Col)
		}
	}
}

func TestFormatBytesReportsLexFindings(t *testing.T) {
	bag := diag.NewBag(16)
	FormatBytes("bad.pwn", []byte("new s = \"abc\n"), config.Default(), bag)
	if !bag.HasWarnings() {
		t.Error("unterminated string produced no diagnostics")
	}
	if bag.HasErrors() {
		t.Error("lexer findings must not be fatal")
	}
}
