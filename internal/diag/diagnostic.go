package diag

import (
	"quell/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one analyzer finding.
//
// Payload is opaque to the harness. The analysis driver stores the directive
// that suppresses the diagnostic there, and fixers read it back.
type Diagnostic struct {
	ID         string
	Severity   Severity
	Message    string
	Location   Location
	Suppressed bool
	Notes      []Note
	Payload    any
}

// InSource reports whether the diagnostic is anchored to a source span.
func (d *Diagnostic) InSource() bool {
	return d != nil && d.Location.InSource()
}

// Span returns the primary span; ok is false for diagnostics without a location.
func (d *Diagnostic) Span() (sp source.Span, ok bool) {
	if !d.InSource() {
		return source.Span{}, false
	}
	return d.Location.Span, true
}
