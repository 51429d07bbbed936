package suppress

import (
	"context"

	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/workspace"
)

// Fixer offers actions that suppress or unsuppress diagnostics.
type Fixer interface {
	// CanFix reports whether d can be suppressed or unsuppressed.
	CanFix(d *diag.Diagnostic) bool
	// Fixes returns candidate actions for diags, all located in doc or
	// without a location.
	Fixes(ctx context.Context, doc *workspace.Document, diags []*diag.Diagnostic) ([]fix.Action, error)
}

// Eligible returns the diagnostics f can fix, in order.
func Eligible(f Fixer, diags []*diag.Diagnostic) []*diag.Diagnostic {
	out := make([]*diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d != nil && f.CanFix(d) {
			out = append(out, d)
		}
	}
	return out
}

// EligibleFixes asks f for actions on the diagnostics it can fix. No
// eligible diagnostic means no actions, without calling Fixes.
func EligibleFixes(ctx context.Context, f Fixer, doc *workspace.Document, diags []*diag.Diagnostic) ([]fix.Action, error) {
	eligible := Eligible(f, diags)
	if len(eligible) == 0 {
		return nil, nil
	}
	return f.Fixes(ctx, doc, eligible)
}
