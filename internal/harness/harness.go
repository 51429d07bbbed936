package harness

import (
	"context"
	"fmt"
	"strconv"

	"quell/internal/analysis"
	"quell/internal/diag"
	"quell/internal/suppress"
	"quell/internal/trace"
	"quell/internal/workspace"
)

// Harness runs one Case. Nil Resolver and Select fall back to
// MarkupResolver and SelectAction.
type Harness struct {
	Case     Case
	Resolver Resolver
	Select   SelectFunc
}

// New returns a harness with the default collaborators.
func New(c Case) *Harness {
	return &Harness{Case: c}
}

func (h *Harness) resolver() Resolver {
	if h.Resolver != nil {
		return h.Resolver
	}
	return MarkupResolver
}

func (h *Harness) selector() SelectFunc {
	if h.Select != nil {
		return h.Select
	}
	return SelectAction
}

func (h *Harness) providerAndFixer(ws *workspace.Workspace) (analysis.Analyzer, suppress.Fixer, error) {
	if h.Case.Scenario == nil {
		return nil, nil, fmt.Errorf("%w: case %q has no scenario", ErrInvalidScenario, h.Case.Name)
	}
	analyzer, fixer, err := h.Case.Scenario.ProviderAndFixer(ws)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if analyzer == nil || fixer == nil {
		return nil, nil, fmt.Errorf("%w: case %q returned a nil analyzer or fixer", ErrInvalidScenario, h.Case.Name)
	}
	return analyzer, fixer, nil
}

// Diagnostics returns the filtered diagnostics at the selection of ws.
// Suppressed diagnostics are excluded before filtering, whatever the policy.
func (h *Harness) Diagnostics(ctx context.Context, ws *workspace.Workspace) (diags []*diag.Diagnostic, err error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "diagnostics")
	defer func() { span.End(outcome(err)) }()

	analyzer, _, err := h.providerAndFixer(ws)
	if err != nil {
		return nil, err
	}

	step, _ := trace.Start(ctx, trace.ScopePass, "resolve")
	target, err := h.resolver().ResolveSelection(ws)
	step.End(outcome(err))
	if err != nil {
		return nil, err
	}

	driver := analysis.NewDriver(target.Document.Project, analyzer, false).WithSyntax(h.Case.syntax())
	step, stepCtx := trace.Start(ctx, trace.ScopePass, "analyze")
	all, err := driver.GetAllDiagnostics(stepCtx, nil, target.Document, target.Span)
	step.WithExtra("diagnostics", strconv.Itoa(len(all))).End(outcome(err))
	if err != nil {
		return nil, err
	}

	step, _ = trace.Start(ctx, trace.ScopePass, "filter")
	diags = suppress.Filter(all, h.Case.Policy)
	step.WithExtra("kept", strconv.Itoa(len(diags))).End(h.Case.Policy.String())
	return diags, nil
}

// DiagnosticsAndFixes returns the filtered fixable diagnostics of the
// workspace target together with the available actions and the action at
// the case's index. The selector's result is returned as is.
func (h *Harness) DiagnosticsAndFixes(ctx context.Context, ws *workspace.Workspace) (res *Result, err error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "diagnostics-and-fixes")
	defer func() { span.End(outcome(err)) }()

	analyzer, fixer, err := h.providerAndFixer(ws)
	if err != nil {
		return nil, err
	}

	step, _ := trace.Start(ctx, trace.ScopePass, "resolve")
	target, err := h.resolver().Resolve(ws)
	step.WithExtra("kind", target.Kind.String()).End(outcome(err))
	if err != nil {
		return nil, err
	}

	driver := analysis.NewDriver(target.Document.Project, analyzer, h.Case.Policy.IncludeSuppressed).
		WithSyntax(h.Case.syntax())
	step, stepCtx := trace.Start(ctx, trace.ScopePass, "analyze")
	all, err := driver.GetAllDiagnostics(stepCtx, analyzer, target.Document, target.Span)
	step.WithExtra("diagnostics", strconv.Itoa(len(all))).End(outcome(err))
	if err != nil {
		return nil, err
	}

	step, _ = trace.Start(ctx, trace.ScopePass, "filter")
	filtered := suppress.Filter(suppress.Eligible(fixer, all), h.Case.Policy)
	step.WithExtra("kept", strconv.Itoa(len(filtered))).End(h.Case.Policy.String())

	step, _ = trace.Start(ctx, trace.ScopePass, "restrict")
	adapter := suppress.Restrict(fixer, suppress.IDs(filtered))
	step.WithExtra("allowed", strconv.Itoa(len(adapter.Allowed()))).End("")

	step, stepCtx = trace.Start(ctx, trace.ScopePass, "select")
	res, err = h.selector()(stepCtx, &SelectRequest{
		Diagnostics: filtered,
		Analyzer:    analyzer,
		Fixer:       adapter,
		Driver:      driver,
		Document:    target.Document,
		Span:        target.Span,
		Annotation:  target.Label,
		Index:       h.Case.ActionIndex,
	})
	step.WithExtra("index", strconv.Itoa(h.Case.ActionIndex)).End(outcome(err))
	return res, err
}

func outcome(err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return ""
}
