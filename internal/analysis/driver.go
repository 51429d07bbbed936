package analysis

import (
	"context"
	"fmt"
	"strconv"

	"quell/internal/diag"
	"quell/internal/pragma"
	"quell/internal/source"
	"quell/internal/trace"
	"quell/internal/workspace"
)

// Driver runs an analyzer over the documents of one project.
//
// In-source diagnostics covered by a pragma directive are marked suppressed
// and carry the *pragma.Directive as Payload. Diagnostics that arrive already
// suppressed stay suppressed. When includeSuppressed is false, suppressed
// diagnostics are dropped from every result.
type Driver struct {
	project           *workspace.Project
	analyzer          Analyzer
	includeSuppressed bool
	syntax            pragma.Syntax
}

// NewDriver returns a driver scoped to project.
func NewDriver(project *workspace.Project, analyzer Analyzer, includeSuppressed bool) *Driver {
	return &Driver{
		project:           project,
		analyzer:          analyzer,
		includeSuppressed: includeSuppressed,
		syntax:            pragma.DefaultSyntax,
	}
}

// WithSyntax changes the comment syntax used to find directives.
func (d *Driver) WithSyntax(syn pragma.Syntax) *Driver {
	d.syntax = syn
	return d
}

// Project returns the project the driver is scoped to.
func (d *Driver) Project() *workspace.Project {
	return d.project
}

// IncludeSuppressed reports whether suppressed diagnostics are kept.
func (d *Driver) IncludeSuppressed() bool {
	return d.includeSuppressed
}

// GetAllDiagnostics analyses doc with analyzer (the driver's own analyzer
// when nil) and returns the diagnostics of doc intersecting span together
// with every diagnostic that has no location, in report order.
func (d *Driver) GetAllDiagnostics(ctx context.Context, analyzer Analyzer, doc *workspace.Document, span source.Span) ([]*diag.Diagnostic, error) {
	if analyzer == nil {
		analyzer = d.analyzer
	}
	all, err := d.analyze(ctx, analyzer, doc)
	if err != nil {
		return nil, err
	}
	out := make([]*diag.Diagnostic, 0, len(all))
	for _, dg := range all {
		sp, ok := dg.Span()
		if !ok || sp.Intersects(span) {
			out = append(out, dg)
		}
	}
	return out, nil
}

// DocumentDiagnostics returns every diagnostic of doc, plus those without a
// location.
func (d *Driver) DocumentDiagnostics(ctx context.Context, doc *workspace.Document) ([]*diag.Diagnostic, error) {
	return d.analyze(ctx, d.analyzer, doc)
}

// ProjectDiagnostics analyses every document of the project. Diagnostics
// without a location reported by several documents are returned once.
func (d *Driver) ProjectDiagnostics(ctx context.Context) ([]*diag.Diagnostic, error) {
	bag := diag.NewBag(0)
	for _, doc := range d.project.Documents {
		diags, err := d.analyze(ctx, d.analyzer, doc)
		if err != nil {
			return nil, err
		}
		for _, dg := range diags {
			bag.Add(dg)
		}
	}
	bag.Dedup()
	return bag.Items(), nil
}

func (d *Driver) analyze(ctx context.Context, analyzer Analyzer, doc *workspace.Document) ([]*diag.Diagnostic, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("analysis: no analyzer")
	}
	if doc == nil || doc.Project != d.project {
		return nil, fmt.Errorf("analysis: document is not part of project %q", d.project.Name)
	}

	span, ctx := trace.Start(ctx, trace.ScopeDocument, "document:"+doc.Name)
	span.WithExtra("analyzer", analyzer.Name())

	var reported []*diag.Diagnostic
	pass := &Pass{
		Project:  d.project,
		Document: doc,
		report: func(dg diag.Diagnostic) {
			reported = append(reported, &dg)
		},
	}
	if err := analyzer.Analyze(ctx, pass); err != nil {
		span.End("error")
		return nil, err
	}

	fs := d.project.Workspace().FileSet
	dirs := pragma.Scan(doc.File(), d.syntax)
	out := make([]*diag.Diagnostic, 0, len(reported))
	for _, dg := range reported {
		sp, ok := dg.Span()
		if ok && sp.File != doc.ID {
			// Findings in other documents belong to their own pass.
			continue
		}
		if ok && !dg.Suppressed {
			start, _ := fs.Resolve(sp)
			if dir := pragma.Find(dirs, dg.ID, start.Line); dir != nil {
				dg.Suppressed = true
				dg.Payload = dir
			}
		}
		if dg.Suppressed && !d.includeSuppressed {
			continue
		}
		trace.Point(ctx, trace.ScopeDiagnostic, dg.ID, dg.Location.String())
		out = append(out, dg)
	}
	span.WithExtra("diagnostics", strconv.Itoa(len(out))).End("")
	return out, nil
}
