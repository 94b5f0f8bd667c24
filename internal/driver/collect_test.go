package driver

import (
	"context"
	"path/filepath"
	"testing"

	"burnish/internal/config"
)

func TestCollectFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pwn", "")
	writeFile(t, dir, "b.inc", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, "sub/c.sma", "")

	got, err := collectSourceFiles(context.Background(), []string{dir}, config.Default().Files)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{"a.pwn", "b.inc", filepath.Join("sub", "c.sma")}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i, w := range want {
		if got[i] != filepath.Join(dir, w) {
			t.Errorf("got[%d] = %q, want %q", i, got[i], filepath.Join(dir, w))
		}
	}
}

func TestCollectHonorsExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pwn", "")
	writeFile(t, dir, "vendor/lib/b.pwn", "")
	writeFile(t, dir, "gen_x.pwn", "")

	files := config.FilesConfig{
		Extensions: []string{".pwn"},
		Exclude:    []string{"vendor/**", "gen_*.pwn"},
	}
	got, err := collectSourceFiles(context.Background(), []string{dir}, files)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(dir, "a.pwn") {
		t.Errorf("got %v", got)
	}
}

func TestCollectDeduplicatesExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.pwn", "")

	got, err := collectSourceFiles(context.Background(), []string{path, dir}, config.Default().Files)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %v", got)
	}
}

func TestCollectSkipsExplicitNonSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "")

	got, err := collectSourceFiles(context.Background(), []string{path}, config.Default().Files)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestCollectExpandsGlobPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/a.pwn", "")
	writeFile(t, dir, "src/deep/b.pwn", "")
	writeFile(t, dir, "src/deep/c.inc", "")

	pattern := filepath.Join(dir, "src", "**", "*.pwn")
	got, err := collectSourceFiles(context.Background(), []string{pattern}, config.Default().Files)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{
		filepath.Join(dir, "src", "a.pwn"),
		filepath.Join(dir, "src", "deep", "b.pwn"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectMissingPathFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := collectSourceFiles(context.Background(), []string{missing}, config.Default().Files); err == nil {
		t.Error("expected an error for a missing path")
	}
}
