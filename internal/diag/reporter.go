package diag

import "quell/internal/source"

// Reporter is the minimal sink analyzers emit findings into.
// Implementations: BagReporter (stores into a Bag) and ReporterFunc.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, id string, loc Location, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Severity: sev,
			ID:       id,
			Message:  msg,
			Location: loc,
		},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, id string, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, id, At(primary), msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, id string, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, id, At(primary), msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, id string, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, id, At(primary), msg)
}

// ReportProject reports a finding that has no source location.
func ReportProject(r Reporter, sev Severity, id, msg string) *ReportBuilder {
	return NewReportBuilder(r, sev, id, NoLocation(), msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Span: sp, Msg: msg})
	return b
}

// Suppressed marks a finding that arrives already suppressed from outside the
// source (for example a SARIF result carrying an external suppression).
func (b *ReportBuilder) Suppressed() *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Suppressed = true
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter is an adapter that writes into *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(&d)
}
