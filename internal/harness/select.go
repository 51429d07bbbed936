package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/suppress"
	"quell/internal/workspace"
)

// Scope is the reach of a fix-all action.
type Scope uint8

const (
	ScopeDocument Scope = iota + 1
	ScopeProject
)

func (s Scope) String() string {
	switch s {
	case ScopeDocument:
		return "document"
	case ScopeProject:
		return "project"
	default:
		return "unknown"
	}
}

// ParseScope maps an annotation label to a fix-all scope, ignoring case.
func ParseScope(label string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "document":
		return ScopeDocument, nil
	case "project":
		return ScopeProject, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected document|project)", ErrUnknownScope, label)
	}
}

// SelectAction is the default SelectFunc. It asks the fixer for actions on
// the request diagnostics it can fix. With an annotation, each action is
// widened to every diagnostic of the named scope with the same ID, merging
// actions that share its equivalence key; the first action per key and ID
// set starts the widening and later ones are dropped. The action at Index
// is selected.
func SelectAction(ctx context.Context, req *SelectRequest) (*Result, error) {
	actions, err := suppress.EligibleFixes(ctx, req.Fixer, req.Document, req.Diagnostics)
	if err != nil {
		return nil, err
	}

	if req.Annotation != "" {
		scope, err := ParseScope(req.Annotation)
		if err != nil {
			return nil, err
		}
		actions, err = fixAll(ctx, req, scope, actions)
		if err != nil {
			return nil, err
		}
	}

	if req.Index < 0 || req.Index >= len(actions) {
		return nil, fmt.Errorf("%w: index %d, %d action(s) available", ErrActionIndexOutOfRange, req.Index, len(actions))
	}
	return &Result{
		Diagnostics: req.Diagnostics,
		Actions:     actions,
		Selected:    actions[req.Index],
	}, nil
}

func fixAll(ctx context.Context, req *SelectRequest, scope Scope, triggers []fix.Action) ([]fix.Action, error) {
	if req.Driver == nil {
		return nil, fmt.Errorf("harness: fix-all in %s scope needs a driver", scope)
	}

	var (
		pool []*diag.Diagnostic
		err  error
	)
	switch scope {
	case ScopeDocument:
		pool, err = req.Driver.DocumentDiagnostics(ctx, req.Document)
	default:
		pool, err = req.Driver.ProjectDiagnostics(ctx)
	}
	if err != nil {
		return nil, err
	}
	pool = suppress.Eligible(req.Fixer, pool)

	docs := []*workspace.Document{req.Document}
	if scope == ScopeProject {
		docs = req.Driver.Project().Documents
	}

	out := make([]fix.Action, 0, len(triggers))
	var widened []fix.Action
	for _, trigger := range triggers {
		// Triggers with the same key and IDs widen to the same action.
		if slices.ContainsFunc(widened, func(w fix.Action) bool {
			return w.Key == trigger.Key && slices.Equal(w.DiagnosticIDs, trigger.DiagnosticIDs)
		}) {
			continue
		}
		widened = append(widened, trigger)

		var parts []fix.Action
		for _, doc := range docs {
			diags := inDocument(pool, doc, trigger.DiagnosticIDs)
			if len(diags) == 0 {
				continue
			}
			actions, err := req.Fixer.Fixes(ctx, doc, diags)
			if err != nil {
				return nil, err
			}
			for _, a := range actions {
				if a.Key == trigger.Key {
					parts = append(parts, a)
				}
			}
		}
		if len(parts) == 0 {
			out = append(out, trigger)
			continue
		}
		merged := fix.Merge(fmt.Sprintf("%s (all in %s)", trigger.Title, scope), parts...)
		merged.ID = trigger.ID
		out = append(out, merged)
	}
	return out, nil
}

func inDocument(pool []*diag.Diagnostic, doc *workspace.Document, ids []string) []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, d := range pool {
		sp, ok := d.Span()
		if ok && sp.File == doc.ID && slices.Contains(ids, d.ID) {
			out = append(out, d)
		}
	}
	return out
}
