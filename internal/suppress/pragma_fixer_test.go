package suppress

import (
	"context"
	"testing"

	"quell/internal/analysis"
	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/pragma"
	"quell/internal/testkit"
	"quell/internal/workspace"
)

// words reports CA001 at "bad", CA002 at "ugly" and the error CA900 at "fatal".
var words = testkit.Words(
	testkit.Warn("CA001", "bad"),
	testkit.Warn("CA002", "ugly"),
	testkit.Rule{ID: "CA900", Word: "fatal", Severity: diag.SevError},
)

func analyze(t *testing.T, src string) (*workspace.Workspace, *workspace.Document, []*diag.Diagnostic) {
	t.Helper()
	ws, doc, err := workspace.FromMarkup("a.q", src)
	if err != nil {
		t.Fatalf("FromMarkup: %v", err)
	}
	diags, err := analysis.NewDriver(doc.Project, words, true).DocumentDiagnostics(context.Background(), doc)
	if err != nil {
		t.Fatalf("DocumentDiagnostics: %v", err)
	}
	if err := testkit.CheckDiagnosticSpans(diags, ws.FileSet); err != nil {
		t.Fatalf("bad diagnostics: %v", err)
	}
	return ws, doc, diags
}

func byID(diags []*diag.Diagnostic, id string) []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, d := range diags {
		if d.ID == id {
			out = append(out, d)
		}
	}
	return out
}

func TestPragmaFixerActions(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		id    string
		index int
		title string
		want  string
	}{
		{
			name:  "suppress line keeps indentation",
			src:   "fn main() {\n    let bad = 1;\n}\n",
			id:    "CA001",
			index: 0,
			title: "Suppress CA001 on this line",
			want:  "fn main() {\n    // quell:ignore CA001\n    let bad = 1;\n}\n",
		},
		{
			name:  "suppress file",
			src:   "fn main() {\n    let bad = 1;\n}\n",
			id:    "CA001",
			index: 1,
			title: "Suppress CA001 in this file",
			want:  "// quell:ignore-file CA001\nfn main() {\n    let bad = 1;\n}\n",
		},
		{
			name:  "extend file directive",
			src:   "// quell:ignore-file CA002\nlet bad = 1;\n",
			id:    "CA001",
			index: 1,
			want:  "// quell:ignore-file CA002, CA001\nlet bad = 1;\n",
		},
		{
			name:  "extend line directive",
			src:   "// quell:ignore CA002\nlet bad = ugly;\n",
			id:    "CA001",
			index: 0,
			want:  "// quell:ignore CA002, CA001\nlet bad = ugly;\n",
		},
		{
			name:  "remove next-line directive",
			src:   "// quell:ignore CA001\nlet bad = 1;\n",
			id:    "CA001",
			index: 0,
			title: "Remove suppression of CA001",
			want:  "let bad = 1;\n",
		},
		{
			name:  "remove one ID from list",
			src:   "// quell:ignore CA001, CA002\nlet bad = ugly;\n",
			id:    "CA001",
			index: 0,
			want:  "// quell:ignore CA002\nlet bad = ugly;\n",
		},
		{
			name:  "remove trailing directive",
			src:   "let bad = 1; // quell:ignore CA001\n",
			id:    "CA001",
			index: 0,
			want:  "let bad = 1;\n",
		},
		{
			name:  "remove file directive",
			src:   "// quell:ignore-file CA001\nlet bad = 1;\nlet bad = 2;\n",
			id:    "CA001",
			index: 0,
			want:  "let bad = 1;\nlet bad = 2;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, doc, diags := analyze(t, tt.src)
			target := byID(diags, tt.id)
			if len(target) == 0 {
				t.Fatalf("no %s diagnostic", tt.id)
			}
			actions, err := NewPragmaFixer().Fixes(context.Background(), doc, target[:1])
			if err != nil {
				t.Fatalf("Fixes: %v", err)
			}
			if tt.index >= len(actions) {
				t.Fatalf("only %d actions", len(actions))
			}
			a := actions[tt.index]
			if tt.title != "" && a.Title != tt.title {
				t.Errorf("title = %q, want %q", a.Title, tt.title)
			}
			res, err := fix.Apply(ws.FileSet, a)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got := res.Text(ws.FileSet, doc.ID); got != tt.want {
				t.Errorf("fixed text:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestPragmaFixerActionOrderAndKeys(t *testing.T) {
	_, doc, diags := analyze(t, "// quell:ignore CA002\nlet bad = ugly;\n")
	actions, err := NewPragmaFixer().Fixes(context.Background(), doc, diags)
	if err != nil {
		t.Fatalf("Fixes: %v", err)
	}
	want := []string{KeySuppressLine, KeySuppressFile, KeyUnsuppress}
	if len(actions) != len(want) {
		t.Fatalf("got %d actions, want %d", len(actions), len(want))
	}
	for i, key := range want {
		if actions[i].Key != key {
			t.Errorf("action %d key = %q, want %q", i, actions[i].Key, key)
		}
	}
	if !actions[0].IsPreferred || actions[1].IsPreferred {
		t.Errorf("only the line suppression is preferred")
	}
}

func TestPragmaFixerCanFix(t *testing.T) {
	_, _, diags := analyze(t, "// quell:ignore CA002\nlet bad = ugly;\nfatal;\n")
	bad, ugly, fatal := byID(diags, "CA001")[0], byID(diags, "CA002")[0], byID(diags, "CA900")[0]

	external := *bad
	external.Suppressed = true

	tests := []struct {
		name  string
		fixer *PragmaFixer
		d     *diag.Diagnostic
		want  bool
	}{
		{"unsuppressed warning", NewPragmaFixer(), bad, true},
		{"suppressed by directive", NewPragmaFixer(), ugly, true},
		{"error severity", NewPragmaFixer(), fatal, false},
		{"no location", NewPragmaFixer(), diag.New(diag.SevWarning, "CA001", diag.NoLocation(), "x"), false},
		{"suppressed elsewhere", NewPragmaFixer(), &external, false},
		{"outside ID restriction", NewPragmaFixer("CA002"), bad, false},
		{"inside ID restriction", NewPragmaFixer("CA002"), ugly, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fixer.CanFix(tt.d); got != tt.want {
				t.Errorf("CanFix = %v, want %v", got, tt.want)
			}
		})
	}
	if _, ok := pragma.FromDiagnostic(ugly); !ok {
		t.Fatalf("driver did not attach the directive")
	}
}

func TestPragmaFixerSkipsOtherDocuments(t *testing.T) {
	ws, err := workspace.ParseArchive([]byte("-- a.q --\nbad\n-- b.q --\nbad\n"))
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}
	a, b := ws.Documents()[0], ws.Documents()[1]
	diags, err := analysis.NewDriver(b.Project, words, false).DocumentDiagnostics(context.Background(), b)
	if err != nil {
		t.Fatalf("DocumentDiagnostics: %v", err)
	}
	actions, err := NewPragmaFixer().Fixes(context.Background(), a, diags)
	if err != nil {
		t.Fatalf("Fixes: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("got %d actions for diagnostics of another document", len(actions))
	}
}
