package harness

import (
	"context"

	"quell/internal/analysis"
	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/source"
	"quell/internal/suppress"
	"quell/internal/workspace"
)

// Result is what DiagnosticsAndFixes hands back to a test.
type Result struct {
	Diagnostics []*diag.Diagnostic
	Actions     []fix.Action
	Selected    fix.Action
}

// SelectRequest carries everything the fix selector may need. Fixer is the
// restricted adapter; Annotation is empty for selection targets.
type SelectRequest struct {
	Diagnostics []*diag.Diagnostic
	Analyzer    analysis.Analyzer
	Fixer       suppress.Fixer
	Driver      *analysis.Driver
	Document    *workspace.Document
	Span        source.Span
	Annotation  string
	Index       int
}

// SelectFunc computes the available actions and picks the one at Index.
type SelectFunc func(ctx context.Context, req *SelectRequest) (*Result, error)
