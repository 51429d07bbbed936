package fix

import (
	"slices"
	"testing"

	"quell/internal/source"
)

func TestInsertTextOptions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.q", []byte("let x = 1"))

	span := source.Span{File: fileID, Start: 0, End: 0}
	action := InsertText("Test fix", span, "// ", "", Preferred(), WithID("custom-id"), WithKey("k"), ForDiagnostic("CA001"), nil)

	if !action.IsPreferred {
		t.Error("expected IsPreferred to be true")
	}
	if action.ID != "custom-id" {
		t.Errorf("expected ID 'custom-id', got %q", action.ID)
	}
	if action.Key != "k" {
		t.Errorf("expected key 'k', got %q", action.Key)
	}
	if !slices.Equal(action.DiagnosticIDs, []string{"CA001"}) {
		t.Errorf("unexpected diagnostic ids %v", action.DiagnosticIDs)
	}
	if len(action.Edits) != 1 || action.Edits[0].NewText != "// " {
		t.Fatalf("unexpected edits %+v", action.Edits)
	}
}

func TestDeleteAndReplaceSpan(t *testing.T) {
	span := source.Span{File: 0, Start: 9, End: 10}
	del := DeleteSpan("Remove semicolon", span, ";")
	if len(del.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(del.Edits))
	}
	if del.Edits[0].NewText != "" || del.Edits[0].OldText != ";" {
		t.Errorf("unexpected delete edit %+v", del.Edits[0])
	}

	rep := ReplaceSpan("Replace let with const", source.Span{Start: 0, End: 3}, "const", "let")
	if rep.Edits[0].NewText != "const" || rep.Edits[0].OldText != "let" {
		t.Errorf("unexpected replace edit %+v", rep.Edits[0])
	}
}

func TestMerge(t *testing.T) {
	a := InsertText("one", source.Span{Start: 0, End: 0}, "x", "", WithKey("k"), WithID("first"), ForDiagnostic("CA001"))
	b := InsertText("two", source.Span{Start: 0, End: 0}, "x", "", WithKey("k"), ForDiagnostic("CA001"))
	c := InsertText("three", source.Span{Start: 4, End: 4}, "y", "", WithKey("k"), ForDiagnostic("CA002"))

	merged := Merge("all", a, b, c)
	if merged.Title != "all" || merged.Key != "k" || merged.ID != "first" {
		t.Fatalf("unexpected merged header %+v", merged)
	}
	if len(merged.Edits) != 2 {
		t.Fatalf("expected duplicate edit to collapse, got %d edits", len(merged.Edits))
	}
	if !slices.Equal(merged.DiagnosticIDs, []string{"CA001", "CA002"}) {
		t.Fatalf("unexpected ids %v", merged.DiagnosticIDs)
	}
	if empty := Merge("none"); len(empty.Edits) != 0 || empty.Title != "none" {
		t.Fatalf("unexpected empty merge %+v", empty)
	}
}
