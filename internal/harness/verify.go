package harness

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/go-cmp/cmp"

	"quell/internal/fix"
	"quell/internal/workspace"
)

// DefaultDocument names the document Verify builds from its input.
const DefaultDocument = "test.q"

// Verify builds a one-document workspace from input markup, applies the
// selected action and compares the document with expected, normalised
// like the document.
func (h *Harness) Verify(ctx context.Context, input, expected string) error {
	ws, doc, err := workspace.FromMarkup(DefaultDocument, input)
	if err != nil {
		return err
	}
	applied, err := h.apply(ctx, ws)
	if err != nil {
		return err
	}
	return compare(doc.Name, workspace.Normalize(expected), applied.Text(ws.FileSet, doc.ID))
}

// VerifyArchive applies the selected action to ws and compares every
// document that has an expected/<name> entry. Documents without one must
// stay unchanged.
func (h *Harness) VerifyArchive(ctx context.Context, ws *workspace.Workspace) error {
	docs := ws.Documents()
	if !slices.ContainsFunc(docs, func(d *workspace.Document) bool {
		_, ok := ws.Expected(d.Name)
		return ok
	}) {
		return fmt.Errorf("harness: workspace has no expected/ entries")
	}

	applied, err := h.apply(ctx, ws)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		want, ok := ws.Expected(doc.Name)
		if !ok {
			want = doc.Text()
		}
		if err := compare(doc.Name, want, applied.Text(ws.FileSet, doc.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harness) apply(ctx context.Context, ws *workspace.Workspace) (*fix.ApplyResult, error) {
	res, err := h.DiagnosticsAndFixes(ctx, ws)
	if err != nil {
		return nil, err
	}
	return fix.Apply(ws.FileSet, res.Selected)
}

func compare(name, want, got string) error {
	if want == got {
		return nil
	}
	return fmt.Errorf("%w in %s (-want +got):\n%s", ErrMismatch, name, cmp.Diff(want, got))
}
