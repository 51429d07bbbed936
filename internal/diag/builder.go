package diag

import "quell/internal/source"

func New(sev Severity, id string, loc Location, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		ID:       id,
		Location: loc,
		Message:  msg,
	}
}

func NewWarning(id string, primary source.Span, msg string) *Diagnostic {
	return New(SevWarning, id, At(primary), msg)
}
