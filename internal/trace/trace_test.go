package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("ParseLevel(loud) accepted")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeDocument, false},
		{LevelDetail, ScopeDocument, true},
		{LevelDetail, ScopeDiagnostic, false},
		{LevelDebug, ScopeDiagnostic, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)

	outer, ctx := Start(ctx, ScopeDriver, "diagnostics")
	inner, _ := Start(ctx, ScopePass, "filter")
	inner.WithExtra("kept", "2").End("")
	doc, _ := Start(ctx, ScopeDocument, "document:a.q")
	doc.End("")
	outer.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "  → filter") {
		t.Errorf("inner span not indented: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "← filter {kept=2}") {
		t.Errorf("extra not rendered: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "← diagnostics (ok)") {
		t.Errorf("detail not rendered: %q", lines[3])
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelDebug, FormatNDJSON))
	Point(ctx, ScopeDiagnostic, "CA001", "a.q:1:1")
	out := buf.String()
	if !strings.Contains(out, `"kind":"point"`) || !strings.Contains(out, `"detail":"a.q:1:1"`) {
		t.Fatalf("unexpected NDJSON: %s", out)
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("Snapshot = %+v", snap)
	}
}

func TestNopFromEmptyContext(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("tracer enabled without configuration")
	}
	s, ctx := Start(context.Background(), ScopeDriver, "x")
	if s.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("nop span leaked an ID")
	}
	if d := s.End(""); d != 0 {
		t.Fatalf("nop span duration = %v", d)
	}
}

func TestStartNestsUnderCurrentSpan(t *testing.T) {
	r := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), r)
	if !Enabled(ctx, ScopeDocument) || Enabled(ctx, ScopeDiagnostic) {
		t.Fatalf("Enabled does not follow the tracer level")
	}

	outer, ctx := Start(ctx, ScopeDriver, "outer")
	inner, innerCtx := Start(ctx, ScopePass, "inner")
	if sc := CurrentSpan(innerCtx); sc.SpanID != inner.ID() || sc.Scope != ScopePass {
		t.Fatalf("CurrentSpan = %+v, want inner pass span %d", sc, inner.ID())
	}
	Point(innerCtx, ScopeDiagnostic, "dropped", "")
	inner.End("")
	outer.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("got %d events, want 4 (diagnostic point filtered): %+v", len(snap), snap)
	}
	if snap[1].ParentID != outer.ID() {
		t.Errorf("inner parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
}
