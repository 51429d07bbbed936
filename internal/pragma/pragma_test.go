package pragma

import (
	"slices"
	"testing"

	"quell/internal/diag"
	"quell/internal/source"
)

func scan(t *testing.T, text string) (*source.File, []*Directive) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("main.q", []byte(text)))
	return f, Scan(f, DefaultSyntax)
}

func TestScanKinds(t *testing.T) {
	text := "// quell:ignore-file CA009\n" +
		"  // quell:ignore CA001, CA002\n" +
		"call();\n" +
		"other(); // quell:ignore CA003\n" +
		"// quell:ignored CA004\n" +
		"// quell:ignore\n" +
		"// plain comment\n"
	f, dirs := scan(t, text)

	if len(dirs) != 3 {
		t.Fatalf("expected 3 directives, got %d", len(dirs))
	}

	tests := []struct {
		kind   Kind
		ids    []string
		line   uint32
		target uint32
		list   string
	}{
		{KindFile, []string{"CA009"}, 1, 0, "CA009"},
		{KindNextLine, []string{"CA001", "CA002"}, 2, 3, "CA001, CA002"},
		{KindSameLine, []string{"CA003"}, 4, 4, "CA003"},
	}
	for i, tt := range tests {
		d := dirs[i]
		if d.Kind != tt.kind {
			t.Errorf("directive %d: kind %v, want %v", i, d.Kind, tt.kind)
		}
		if !slices.Equal(d.IDs, tt.ids) {
			t.Errorf("directive %d: ids %v, want %v", i, d.IDs, tt.ids)
		}
		if d.Line != tt.line || d.TargetLine() != tt.target {
			t.Errorf("directive %d: line %d target %d, want %d/%d", i, d.Line, d.TargetLine(), tt.line, tt.target)
		}
		if got := f.Text(d.List); got != tt.list {
			t.Errorf("directive %d: list text %q, want %q", i, got, tt.list)
		}
	}

	if got := f.Text(dirs[2].Comment); got != "// quell:ignore CA003" {
		t.Errorf("unexpected comment span text %q", got)
	}
	if got := f.Text(dirs[1].LineSpan); got != "  // quell:ignore CA001, CA002" {
		t.Errorf("unexpected line span text %q", got)
	}
}

func TestFindAndCovers(t *testing.T) {
	_, dirs := scan(t, "// quell:ignore-file CA009\n// quell:ignore CA001\nx\n")

	if d := Find(dirs, "CA001", 3); d == nil || d.Kind != KindNextLine {
		t.Fatalf("expected next-line directive for CA001 on line 3, got %+v", d)
	}
	if d := Find(dirs, "CA001", 2); d != nil {
		t.Fatalf("CA001 should not be suppressed on line 2, got %+v", d)
	}
	if d := Find(dirs, "CA009", 3); d == nil || d.Kind != KindFile {
		t.Fatalf("expected file directive for CA009, got %+v", d)
	}
	if d := Find(dirs, "CA404", 3); d != nil {
		t.Fatalf("unexpected directive for CA404: %+v", d)
	}
}

func TestFormatAndPayload(t *testing.T) {
	if got := Format(DefaultSyntax, KindNextLine, "CA001", "CA002"); got != "// quell:ignore CA001, CA002" {
		t.Errorf("unexpected format %q", got)
	}
	if got := Format(Syntax{CommentPrefix: "#"}, KindFile, "X1"); got != "# quell:ignore-file X1" {
		t.Errorf("unexpected format %q", got)
	}

	dir := &Directive{Kind: KindSameLine, IDs: []string{"CA001"}}
	d := &diag.Diagnostic{ID: "CA001", Payload: dir}
	if got, ok := FromDiagnostic(d); !ok || got != dir {
		t.Fatalf("FromDiagnostic = %v, %v", got, ok)
	}
	if _, ok := FromDiagnostic(&diag.Diagnostic{Payload: "other"}); ok {
		t.Fatal("expected no directive for foreign payload")
	}
}

func TestScanHashComments(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("main.py", []byte("x = 1  # quell:ignore PY100\n")))
	dirs := Scan(f, Syntax{CommentPrefix: "#"})
	if len(dirs) != 1 || dirs[0].Kind != KindSameLine || dirs[0].IDs[0] != "PY100" {
		t.Fatalf("unexpected directives %+v", dirs)
	}
}

func TestScanSkipsPrefixInsideLiteral(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind Kind
		ids  []string
	}{
		{"url before trailing", "let u = \"http://x\"; // quell:ignore CA001\n", KindSameLine, []string{"CA001"}},
		{"two urls", "f(\"a://b\", \"c://d\") // quell:ignore-file CA003\n", KindFile, []string{"CA003"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, dirs := scan(t, tt.text)
			if len(dirs) != 1 {
				t.Fatalf("expected 1 directive, got %d", len(dirs))
			}
			d := dirs[0]
			if d.Kind != tt.kind || !slices.Equal(d.IDs, tt.ids) {
				t.Fatalf("directive = %v %v, want %v %v", d.Kind, d.IDs, tt.kind, tt.ids)
			}
			if got := f.Text(d.List); got != tt.ids[0] {
				t.Errorf("list text %q, want %q", got, tt.ids[0])
			}
		})
	}

	if _, dirs := scan(t, "open(\"http://quell:ignore\")\n"); len(dirs) != 0 {
		t.Fatalf("expected no directive, got %+v", dirs)
	}
}
