package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"quell/internal/casefile"
	"quell/internal/diag"
	"quell/internal/harness"
	"quell/internal/observ"
	"quell/internal/trace"
	"quell/internal/workspace"
)

// ErrNothingToCheck reports a case that declares neither golden diagnostics
// nor expected/ documents.
var ErrNothingToCheck = errors.New("runner: case has no golden diagnostics and no expected/ documents")

// Options configures Run.
type Options struct {
	// Jobs bounds the number of cases run at once; 0 means GOMAXPROCS.
	Jobs     int
	Progress ProgressSink
}

// Outcome is the result of one case.
type Outcome struct {
	Path    string
	Name    string
	Err     error
	Timings observ.Report
}

// Passed reports whether the case succeeded.
func (o *Outcome) Passed() bool { return o.Err == nil }

// Run executes the case files at paths concurrently. Outcomes keep the order
// of paths. Case failures are reported in the outcomes; the returned error
// is non-nil only when ctx is cancelled.
func Run(ctx context.Context, paths []string, opts Options) ([]Outcome, error) {
	sink := opts.Progress
	if sink == nil {
		sink = nopSink{}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span, ctx := trace.Start(ctx, trace.ScopeDriver, "run")
	span.WithExtra("cases", fmt.Sprint(len(paths)))
	defer span.End("")

	for _, p := range paths {
		sink.OnEvent(Event{Case: p, Status: StatusQueued})
	}

	outcomes := make([]Outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = Outcome{Path: p, Err: err}
				return err
			}
			outcomes[i] = RunCase(gctx, p, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

// RunCase loads and checks a single case file.
func RunCase(ctx context.Context, path string, sink ProgressSink) (out Outcome) {
	if sink == nil {
		sink = nopSink{}
	}
	out.Path = path
	timer := observ.NewTimer()
	defer func() { out.Timings = timer.Report() }()

	span, ctx := trace.Start(ctx, trace.ScopePass, "case")
	span.WithExtra("path", path)
	defer func() {
		if out.Err != nil {
			span.End("error")
			return
		}
		span.End("ok")
	}()

	fail := func(stage Stage, err error) Outcome {
		out.Err = err
		sink.OnEvent(Event{Case: path, Stage: stage, Status: StatusError, Err: err, Elapsed: timer.Total()})
		return out
	}

	sink.OnEvent(Event{Case: path, Stage: StageLoad, Status: StatusWorking})
	idx := timer.Begin(string(StageLoad))
	file, err := casefile.Load(path)
	if err != nil {
		timer.End(idx, "error")
		return fail(StageLoad, err)
	}
	out.Name = file.Name
	ws, err := file.LoadWorkspace()
	timer.End(idx, "")
	if err != nil {
		return fail(StageLoad, err)
	}

	h := harness.New(file.Case())
	checked := false

	if file.HasDiagnostics {
		checked = true
		sink.OnEvent(Event{Case: path, Stage: StageDiagnose, Status: StatusWorking, Elapsed: timer.Total()})
		idx := timer.Begin(string(StageDiagnose))
		err := checkDiagnostics(ctx, h, ws, file.Diagnostics)
		timer.End(idx, outcomeNote(err))
		if err != nil {
			return fail(StageDiagnose, err)
		}
	}

	if hasExpected(ws) {
		checked = true
		sink.OnEvent(Event{Case: path, Stage: StageFix, Status: StatusWorking, Elapsed: timer.Total()})
		idx := timer.Begin(string(StageFix))
		err := h.VerifyArchive(ctx, ws)
		timer.End(idx, outcomeNote(err))
		if err != nil {
			return fail(StageFix, err)
		}
	}

	if !checked {
		return fail(StageLoad, fmt.Errorf("%s: %w", path, ErrNothingToCheck))
	}
	sink.OnEvent(Event{Case: path, Status: StatusDone, Elapsed: timer.Total()})
	return out
}

func checkDiagnostics(ctx context.Context, h *harness.Harness, ws *workspace.Workspace, golden string) error {
	diags, err := h.Diagnostics(ctx, ws)
	if err != nil {
		return err
	}
	want := strings.TrimRight(golden, "\n")
	got := diag.FormatGoldenDiagnostics(diags, ws.FileSet)
	if want == got {
		return nil
	}
	return fmt.Errorf("%w in diagnostics (-want +got):\n%s", harness.ErrMismatch, cmp.Diff(want, got))
}

func hasExpected(ws *workspace.Workspace) bool {
	for _, doc := range ws.Documents() {
		if _, ok := ws.Expected(doc.Name); ok {
			return true
		}
	}
	return false
}

func outcomeNote(err error) string {
	if err != nil {
		return "error"
	}
	return ""
}

// Summary counts passed and failed outcomes and sums their durations.
func Summary(outcomes []Outcome) (passed, failed int, total time.Duration) {
	for i := range outcomes {
		if outcomes[i].Passed() {
			passed++
		} else {
			failed++
		}
		total += time.Duration(outcomes[i].Timings.TotalMS * float64(time.Millisecond))
	}
	return passed, failed, total
}
