package diag

import "quell/internal/source"

// Location is either a span in a source file or no location at all
// (project-wide findings reported without a document anchor).
type Location struct {
	Span     source.Span
	inSource bool
}

// At anchors a location to a source span.
func At(span source.Span) Location {
	return Location{Span: span, inSource: true}
}

// NoLocation returns the location of a finding that is not tied to source.
func NoLocation() Location {
	return Location{}
}

func (l Location) InSource() bool {
	return l.inSource
}

func (l Location) String() string {
	if !l.inSource {
		return "<no location>"
	}
	return l.Span.String()
}
