// Package analysis runs analyzers over workspace documents and collects
// their diagnostics with suppression state applied.
package analysis

import (
	"context"

	"quell/internal/diag"
	"quell/internal/source"
	"quell/internal/workspace"
)

// Analyzer produces diagnostics for one document per call.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, pass *Pass) error
}

// Pass is the input of one Analyze call. Diagnostics are reported through
// Report or any diag.Report* helper, since Pass is a diag.Reporter.
type Pass struct {
	Project  *workspace.Project
	Document *workspace.Document

	report func(d diag.Diagnostic)
}

// File returns the source file of the analysed document.
func (p *Pass) File() *source.File {
	return p.Document.File()
}

// Report records a diagnostic.
func (p *Pass) Report(d diag.Diagnostic) {
	if p.report != nil {
		p.report(d)
	}
}

type funcAnalyzer struct {
	name string
	run  func(ctx context.Context, pass *Pass) error
}

func (a *funcAnalyzer) Name() string { return a.name }

func (a *funcAnalyzer) Analyze(ctx context.Context, pass *Pass) error {
	return a.run(ctx, pass)
}

// NewAnalyzer wraps a function as an Analyzer. Each call returns a distinct
// analyzer, so analyzers can be compared for identity.
func NewAnalyzer(name string, run func(ctx context.Context, pass *Pass) error) Analyzer {
	return &funcAnalyzer{name: name, run: run}
}
