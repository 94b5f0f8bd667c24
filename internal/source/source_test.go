package source

import (
	"testing"
)

func TestAddAndGet(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.pwn", []byte("hello world"))
	if id != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id)
	}

	f := fs.Get(id)
	if f.Path != "test.pwn" {
		t.Errorf("Expected path test.pwn, got %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if !changed {
		t.Fatal("Expected changed to be true")
	}
	if string(out) != "a\nb\rc\n" {
		t.Errorf("Unexpected normalization result: %q", out)
	}

	// Быстрый путь без \r
	out, changed = normalizeCRLF([]byte("plain\n"))
	if changed {
		t.Error("Expected no change without CR")
	}
	if string(out) != "plain\n" {
		t.Errorf("Unexpected result: %q", out)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.pwn", []byte("ab\ncd\nef"))

	cases := []struct {
		name string
		off  uint32
		line uint32
		col  uint32
	}{
		{"start", 0, 1, 1},
		{"first line second byte", 1, 1, 2},
		{"second line start", 3, 2, 1},
		{"third line", 6, 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
			if start.Line != tc.line || start.Col != tc.col {
				t.Errorf("off %d: expected %d:%d, got %d:%d", tc.off, tc.line, tc.col, start.Line, start.Col)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.pwn", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "one" {
		t.Errorf("line 1: got %q", got)
	}
	if got := f.GetLine(2); got != "two" {
		t.Errorf("line 2: got %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Errorf("line 3: got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4: expected empty, got %q", got)
	}
}
