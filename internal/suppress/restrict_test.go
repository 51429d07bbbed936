package suppress

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/workspace"
)

// stubFixer can fix the IDs in can and returns one action per diagnostic.
type stubFixer struct {
	can   []string
	err   error
	calls [][]*diag.Diagnostic
}

func (s *stubFixer) CanFix(d *diag.Diagnostic) bool {
	return slices.Contains(s.can, d.ID)
}

func (s *stubFixer) Fixes(_ context.Context, _ *workspace.Document, diags []*diag.Diagnostic) ([]fix.Action, error) {
	s.calls = append(s.calls, diags)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]fix.Action, 0, len(diags))
	for _, d := range diags {
		out = append(out, fix.Action{Title: "fix " + d.ID, DiagnosticIDs: []string{d.ID}})
	}
	return out, nil
}

func TestRestrictedGating(t *testing.T) {
	inner := &stubFixer{can: []string{"CA001", "CA002"}}
	r := Restrict(inner, []string{"CA001", "CA003"})

	tests := []struct {
		id   string
		want bool
	}{
		{"CA001", true},  // allowed and fixable
		{"CA002", false}, // fixable but not allowed
		{"CA003", false}, // allowed but not fixable
		{"CA004", false},
	}
	for _, tt := range tests {
		if got := r.CanFix(inSource(tt.id, false)); got != tt.want {
			t.Errorf("CanFix(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
	if r.CanFix(nil) {
		t.Errorf("CanFix(nil) = true")
	}
	if diff := cmp.Diff([]string{"CA001", "CA003"}, r.Allowed()); diff != "" {
		t.Errorf("Allowed mismatch (-want +got):\n%s", diff)
	}
}

func TestRestrictedEmptyAllowList(t *testing.T) {
	r := Restrict(&stubFixer{can: []string{"CA001"}}, nil)
	if r.CanFix(inSource("CA001", false)) {
		t.Fatalf("empty allow-list let CA001 through")
	}
}

func TestRestrictCopiesAllowList(t *testing.T) {
	ids := []string{"CA001"}
	r := Restrict(&stubFixer{can: []string{"CA001", "CA002"}}, ids)
	ids[0] = "CA002"
	if !r.CanFix(inSource("CA001", false)) || r.CanFix(inSource("CA002", false)) {
		t.Fatalf("allow-list changed after construction")
	}
}

func TestRestrictedFixesDelegates(t *testing.T) {
	inner := &stubFixer{can: []string{"CA001"}}
	r := Restrict(inner, []string{"CA001"})
	input := []*diag.Diagnostic{inSource("CA001", false), inSource("CA009", false)}

	actions, err := r.Fixes(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("Fixes: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("Fixes filtered its input: %d actions", len(actions))
	}
	if len(inner.calls) != 1 || inner.calls[0][0] != input[0] || inner.calls[0][1] != input[1] {
		t.Fatalf("inner fixer did not see the same diagnostics")
	}
}

func TestRestrictedPropagatesErrors(t *testing.T) {
	boom := errors.New("fixer exploded")
	r := Restrict(&stubFixer{can: []string{"CA001"}, err: boom}, []string{"CA001"})
	_, err := r.Fixes(context.Background(), nil, []*diag.Diagnostic{inSource("CA001", false)})
	if err != boom {
		t.Fatalf("err = %v, want the inner error unchanged", err)
	}
}

// The fixer can fix CA001 and CA002, only CA001 survives filtering, so
// asking for CA002 through the adapter yields nothing.
func TestRestrictedNarrowsFixableSet(t *testing.T) {
	inner := &stubFixer{can: []string{"CA001", "CA002"}}
	all := []*diag.Diagnostic{inSource("CA001", false), inSource("CA002", true)}
	filtered := Filter(all, DefaultPolicy())
	r := Restrict(inner, IDs(filtered))

	if diff := cmp.Diff([]string{"CA001"}, r.Allowed()); diff != "" {
		t.Fatalf("Allowed mismatch (-want +got):\n%s", diff)
	}

	raw, err := EligibleFixes(context.Background(), inner, nil, all[1:])
	if err != nil || len(raw) != 1 {
		t.Fatalf("raw fixer: %d actions, err %v", len(raw), err)
	}

	inner.calls = nil
	got, err := EligibleFixes(context.Background(), r, nil, all[1:])
	if err != nil {
		t.Fatalf("EligibleFixes: %v", err)
	}
	if len(got) != 0 || len(inner.calls) != 0 {
		t.Fatalf("adapter produced %d actions for CA002", len(got))
	}

	got, err = EligibleFixes(context.Background(), r, nil, all)
	if err != nil {
		t.Fatalf("EligibleFixes: %v", err)
	}
	if len(got) != 1 || got[0].DiagnosticIDs[0] != "CA001" {
		t.Fatalf("EligibleFixes = %+v", got)
	}
}
