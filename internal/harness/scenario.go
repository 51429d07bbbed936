// Package harness drives suppression-fix scenarios: it resolves the target
// of a test workspace, collects and filters diagnostics, restricts the fixer
// to the surviving IDs and selects the fix under test.
package harness

import (
	"errors"

	"quell/internal/analysis"
	"quell/internal/pragma"
	"quell/internal/suppress"
	"quell/internal/workspace"
)

var (
	// ErrInvalidScenario is returned when a case has no usable analyzer and fixer.
	ErrInvalidScenario = errors.New("harness: scenario must provide an analyzer and a fixer")
	// ErrActionIndexOutOfRange is returned when the requested action does not exist.
	ErrActionIndexOutOfRange = errors.New("harness: action index out of range")
	// ErrUnknownScope is returned for annotation labels that name no fix-all scope.
	ErrUnknownScope = errors.New("harness: unknown fix-all scope")
	// ErrMismatch is returned by Verify when the fixed text differs from the expected text.
	ErrMismatch = errors.New("harness: fixed text does not match expected text")
)

// Scenario supplies the analyzer and the fixer under test for a workspace.
type Scenario interface {
	ProviderAndFixer(ws *workspace.Workspace) (analysis.Analyzer, suppress.Fixer, error)
}

// ScenarioFunc adapts a function to Scenario.
type ScenarioFunc func(ws *workspace.Workspace) (analysis.Analyzer, suppress.Fixer, error)

func (f ScenarioFunc) ProviderAndFixer(ws *workspace.Workspace) (analysis.Analyzer, suppress.Fixer, error) {
	return f(ws)
}

// Fixed returns a scenario that always yields analyzer and fixer.
func Fixed(analyzer analysis.Analyzer, fixer suppress.Fixer) Scenario {
	return ScenarioFunc(func(*workspace.Workspace) (analysis.Analyzer, suppress.Fixer, error) {
		return analyzer, fixer, nil
	})
}

// Case is the per-test declaration. Policy is used as given: the zero
// Policy keeps nothing, so start from NewCase or suppress.DefaultPolicy.
type Case struct {
	Name        string
	Scenario    Scenario
	Policy      suppress.Policy
	ActionIndex int
	// Syntax is the comment syntax the driver scans for directives. It
	// should match the fixer's; the zero value means pragma.DefaultSyntax.
	Syntax pragma.Syntax
}

func (c *Case) syntax() pragma.Syntax {
	if c.Syntax.CommentPrefix == "" {
		return pragma.DefaultSyntax
	}
	return c.Syntax
}

// NewCase returns a case with the default policy selecting the first action.
func NewCase(name string, s Scenario) Case {
	return Case{Name: name, Scenario: s, Policy: suppress.DefaultPolicy()}
}

// Resolver finds the target document and span of a workspace.
type Resolver interface {
	// ResolveSelection accepts selection markup only.
	ResolveSelection(ws *workspace.Workspace) (workspace.Target, error)
	// Resolve tries the selection first and falls back to an annotation.
	Resolve(ws *workspace.Workspace) (workspace.Target, error)
}

type markupResolver struct{}

func (markupResolver) ResolveSelection(ws *workspace.Workspace) (workspace.Target, error) {
	return workspace.ResolveSelection(ws)
}

func (markupResolver) Resolve(ws *workspace.Workspace) (workspace.Target, error) {
	return workspace.Resolve(ws)
}

// MarkupResolver resolves targets from [| |], $$ and {|Label:|} markup.
var MarkupResolver Resolver = markupResolver{}
