package fix

import (
	"slices"

	"quell/internal/source"
)

// TextEdit replaces the text covered by Span with NewText.
// OldText, when set, guards the edit: the engine refuses to apply it if the
// covered text differs.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Action is one candidate fix offered to the user.
type Action struct {
	ID    string
	Title string
	// Key is the equivalence key: actions with the same key do the same kind
	// of change and can be merged into a fix-all action.
	Key           string
	DiagnosticIDs []string
	IsPreferred   bool
	Edits         []TextEdit
}

// Merge folds actions into one fix-all action titled title. The key and ID
// come from the first action; identical edits are kept once.
func Merge(title string, actions ...Action) Action {
	if len(actions) == 0 {
		return Action{Title: title}
	}
	out := Action{
		ID:          actions[0].ID,
		Title:       title,
		Key:         actions[0].Key,
		IsPreferred: actions[0].IsPreferred,
	}
	seen := make(map[TextEdit]bool)
	for _, a := range actions {
		for _, id := range a.DiagnosticIDs {
			if !slices.Contains(out.DiagnosticIDs, id) {
				out.DiagnosticIDs = append(out.DiagnosticIDs, id)
			}
		}
		for _, e := range a.Edits {
			if seen[e] {
				continue
			}
			seen[e] = true
			out.Edits = append(out.Edits, e)
		}
	}
	return out
}
