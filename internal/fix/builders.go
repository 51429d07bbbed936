package fix

import (
	"quell/internal/source"
)

// Option mutates an action during construction.
type Option func(*Action)

// WithID sets stable identifier for the action.
func WithID(id string) Option {
	return func(a *Action) {
		a.ID = id
	}
}

// WithKey sets the equivalence key used for fix-all merging.
func WithKey(key string) Option {
	return func(a *Action) {
		a.Key = key
	}
}

// ForDiagnostic records the diagnostic ID the action addresses.
func ForDiagnostic(id string) Option {
	return func(a *Action) {
		a.DiagnosticIDs = append(a.DiagnosticIDs, id)
	}
}

// Preferred marks action as preferred suggestion.
func Preferred() Option {
	return func(a *Action) {
		a.IsPreferred = true
	}
}

func applyOptions(a Action, opts []Option) Action {
	for _, opt := range opts {
		if opt != nil {
			opt(&a)
		}
	}
	return a
}

// InsertText creates an action that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text string, guard string, opts ...Option) Action {
	edit := TextEdit{
		Span:    at,
		NewText: text,
		OldText: guard,
	}
	return applyOptions(Action{Title: title, Edits: []TextEdit{edit}}, opts)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) Action {
	edit := TextEdit{
		Span:    span,
		NewText: "",
		OldText: expect,
	}
	return applyOptions(Action{Title: title, Edits: []TextEdit{edit}}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) Action {
	edit := TextEdit{
		Span:    span,
		NewText: newText,
		OldText: expect,
	}
	return applyOptions(Action{Title: title, Edits: []TextEdit{edit}}, opts)
}
