package suppress

import (
	"context"
	"slices"

	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/workspace"
)

// Restricted is a Fixer limited to an allow-list of diagnostic IDs. It
// refuses diagnostics outside the list in CanFix and otherwise answers
// exactly like the fixer it wraps. The list is fixed at construction.
type Restricted struct {
	inner   Fixer
	allowed map[string]struct{}
}

var _ Fixer = (*Restricted)(nil)

// Restrict wraps inner with the given allow-list. ids is copied.
func Restrict(inner Fixer, ids []string) *Restricted {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	return &Restricted{inner: inner, allowed: allowed}
}

// CanFix is false for IDs outside the allow-list and delegates otherwise.
func (r *Restricted) CanFix(d *diag.Diagnostic) bool {
	if d == nil {
		return false
	}
	if _, ok := r.allowed[d.ID]; !ok {
		return false
	}
	return r.inner.CanFix(d)
}

// Fixes delegates to the wrapped fixer. Callers pass only diagnostics that
// passed CanFix; the input is not filtered again and errors are returned
// as they are.
func (r *Restricted) Fixes(ctx context.Context, doc *workspace.Document, diags []*diag.Diagnostic) ([]fix.Action, error) {
	return r.inner.Fixes(ctx, doc, diags)
}

// Allowed returns the allow-list, sorted.
func (r *Restricted) Allowed() []string {
	out := make([]string, 0, len(r.allowed))
	for id := range r.allowed {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
