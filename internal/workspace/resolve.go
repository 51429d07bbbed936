package workspace

import (
	"errors"
	"fmt"

	"quell/internal/source"
)

var (
	// ErrNoSelection is returned when no document carries a selection.
	ErrNoSelection = errors.New("workspace: no selection span in markup")
	// ErrNoTarget is returned when neither a selection nor an annotation exists.
	ErrNoTarget = errors.New("workspace: no selection or annotated span in markup")
	// ErrAmbiguousTarget is returned when more than one candidate span exists.
	ErrAmbiguousTarget = errors.New("workspace: more than one candidate span in markup")
)

// TargetKind tells how a Target was found.
type TargetKind uint8

const (
	// TargetSelection comes from [| |] or $$ markup.
	TargetSelection TargetKind = iota
	// TargetAnnotation comes from {|Label:...|} markup and carries Label.
	TargetAnnotation
)

func (k TargetKind) String() string {
	switch k {
	case TargetSelection:
		return "selection"
	case TargetAnnotation:
		return "annotation"
	default:
		return "unknown"
	}
}

// Target is the document and span a scenario operates on.
// Label is set only for TargetAnnotation.
type Target struct {
	Kind     TargetKind
	Document *Document
	Span     source.Span
	Label    string
}

// ResolveSelection finds the single selection span of the workspace.
func ResolveSelection(ws *Workspace) (Target, error) {
	var found []Target
	for _, d := range ws.Documents() {
		if d.selection != nil {
			found = append(found, Target{Kind: TargetSelection, Document: d, Span: *d.selection})
		}
	}
	switch len(found) {
	case 0:
		return Target{}, ErrNoSelection
	case 1:
		return found[0], nil
	default:
		return Target{}, fmt.Errorf("%w: selections in %s and %s", ErrAmbiguousTarget, found[0].Document.Name, found[1].Document.Name)
	}
}

// Resolve tries the selection first and falls back to the single annotated
// span of the workspace.
func Resolve(ws *Workspace) (Target, error) {
	t, err := ResolveSelection(ws)
	if err == nil || !errors.Is(err, ErrNoSelection) {
		return t, err
	}

	var found []Target
	for _, d := range ws.Documents() {
		for _, a := range d.annotations {
			found = append(found, Target{Kind: TargetAnnotation, Document: d, Span: a.span, Label: a.label})
		}
	}
	switch len(found) {
	case 0:
		return Target{}, ErrNoTarget
	case 1:
		return found[0], nil
	default:
		return Target{}, fmt.Errorf("%w: %d annotated spans", ErrAmbiguousTarget, len(found))
	}
}
