package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_AddAndLookup(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("dir/../a.txt", []byte("one"))
	second := fs.AddVirtual("a.txt", []byte("two"))

	if first == second {
		t.Fatalf("expected distinct ids, got %d twice", first)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", fs.Len())
	}
	id, ok := fs.GetLatest("./a.txt")
	if !ok || id != second {
		t.Fatalf("GetLatest returned (%d, %v), want (%d, true)", id, ok, second)
	}
	if f := fs.Get(second); f.Flags&FileVirtual == 0 {
		t.Fatal("expected virtual flag")
	}
	if fs.Get(FileID(42)) != nil {
		t.Fatal("expected nil for unknown id")
	}
}

func TestFileSet_ResolveAndOffset(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.txt", []byte("alpha\n  beta\ngamma"))

	start, end := fs.Resolve(Span{File: id, Start: 8, End: 12})
	if start != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("start = %+v, want 2:3", start)
	}
	if end != (LineCol{Line: 2, Col: 7}) {
		t.Errorf("end = %+v, want 2:7", end)
	}

	tests := []struct {
		pos  LineCol
		want uint32
	}{
		{LineCol{Line: 1, Col: 1}, 0},
		{LineCol{Line: 2, Col: 3}, 8},
		{LineCol{Line: 3, Col: 1}, 13},
		{LineCol{Line: 3, Col: 99}, 18},
		{LineCol{Line: 2, Col: 0}, 6},
	}
	for _, tt := range tests {
		got, err := fs.Offset(id, tt.pos)
		if err != nil {
			t.Fatalf("Offset(%+v) returned error: %v", tt.pos, err)
		}
		if got != tt.want {
			t.Errorf("Offset(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}

	if _, err := fs.Offset(id, LineCol{Line: 4, Col: 1}); err == nil {
		t.Error("expected error for line past the end")
	}
}

func TestFile_Lines(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.txt", []byte("a\r\nbb\n\nccc\n"))
	f := fs.Get(id)

	if got := f.LineCount(); got != 5 {
		t.Fatalf("LineCount = %d, want 5", got)
	}
	want := []string{"a", "bb", "", "ccc", ""}
	for i, w := range want {
		if got := f.GetLine(uint32(i + 1)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", i+1, got, w)
		}
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
	sp, ok := f.LineSpan(2)
	if !ok || f.Text(sp) != "bb" {
		t.Errorf("LineSpan(2) = %v (%v), text %q", sp, ok, f.Text(sp))
	}
}

func TestFileSet_LoadNormalizesBOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFx\r\ny\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x\ny\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}
