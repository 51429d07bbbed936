package harness

import (
	"context"
	"errors"
	"testing"

	"quell/internal/diag"
	"quell/internal/source"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		label string
		want  Scope
		err   error
	}{
		{"document", ScopeDocument, nil},
		{" Document ", ScopeDocument, nil},
		{"PROJECT", ScopeProject, nil},
		{"solution", 0, ErrUnknownScope},
		{"", 0, ErrUnknownScope},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.label)
		if !errors.Is(err, tt.err) || got != tt.want {
			t.Errorf("ParseScope(%q) = %v, %v; want %v, %v", tt.label, got, err, tt.want, tt.err)
		}
	}
}

func TestSelectActionPicksIndex(t *testing.T) {
	fixer := stubFixer{ids: []string{"CA001", "CA002"}}
	diags := []*diag.Diagnostic{
		diag.NewWarning("CA002", source.Span{Start: 0, End: 1}, "x"),
		diag.NewWarning("CA001", source.Span{Start: 2, End: 3}, "y"),
		diag.NewWarning("CA009", source.Span{Start: 4, End: 5}, "z"),
	}
	res, err := SelectAction(context.Background(), &SelectRequest{Diagnostics: diags, Fixer: fixer, Index: 1})
	if err != nil {
		t.Fatalf("SelectAction: %v", err)
	}
	if len(res.Actions) != 2 || res.Selected.Title != "fix CA001" {
		t.Fatalf("actions %+v, selected %q", res.Actions, res.Selected.Title)
	}
	if len(res.Diagnostics) != 3 || res.Diagnostics[0] != diags[0] {
		t.Fatalf("request diagnostics not passed through")
	}
}

func TestSelectActionFixAllNeedsDriver(t *testing.T) {
	fixer := stubFixer{ids: []string{"CA001"}}
	diags := []*diag.Diagnostic{diag.NewWarning("CA001", source.Span{Start: 0, End: 1}, "x")}
	_, err := SelectAction(context.Background(), &SelectRequest{Diagnostics: diags, Fixer: fixer, Annotation: "document"})
	if err == nil {
		t.Fatalf("fix-all without driver accepted")
	}
}
