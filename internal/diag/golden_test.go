package diag

import (
	"testing"

	"quell/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("testdata/sample.q", []byte("a\n  b\n"))

	diags := []*Diagnostic{
		{
			Severity: SevWarning,
			ID:       "CA002",
			Message:  "first line\nsecond",
			Location: At(source.Span{File: file, Start: 4, End: 5}),
		},
		{
			Severity:   SevInfo,
			ID:         "CA001",
			Message:    "suppressed one",
			Location:   At(source.Span{File: file, Start: 0, End: 1}),
			Suppressed: true,
		},
		{
			Severity: SevError,
			ID:       "CA003",
			Message:  "project wide",
			Location: NoLocation(),
		},
	}

	expected := "warning CA002 testdata/sample.q:2:3 first line second\n" +
		"info CA001 testdata/sample.q:1:1 suppressed one [suppressed]\n" +
		"error CA003 <no location> project wide"

	if got := FormatGoldenDiagnostics(diags, fs); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatGoldenDiagnostics(nil, fs); got != "" {
		t.Fatalf("expected empty output for no diagnostics, got %q", got)
	}
}
