package diag

import (
	"strings"
	"testing"

	"quell/internal/source"
)

func TestWritePrettyUnderlinesSpan(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("main.q", []byte("var x = 1;\n"))

	var sb strings.Builder
	diags := []*Diagnostic{NewWarning("CA001", source.Span{File: file, Start: 4, End: 5}, "unused")}
	if err := WritePretty(&sb, diags, fs); err != nil {
		t.Fatalf("WritePretty: %v", err)
	}
	want := "warning[CA001]: unused\n  --> main.q:1:5\n   | var x = 1;\n   |     ^\n"
	if sb.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", sb.String(), want)
	}
}
