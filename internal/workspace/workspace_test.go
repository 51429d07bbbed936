package workspace

import (
	"errors"
	"strings"
	"testing"
)

func TestFromMarkup(t *testing.T) {
	ws, doc, err := FromMarkup("a.q", "let [|x|] = 1;\n")
	if err != nil {
		t.Fatalf("FromMarkup: %v", err)
	}
	if got := doc.Text(); got != "let x = 1;\n" {
		t.Fatalf("Text = %q", got)
	}
	if doc.Project.Name != DefaultProject || doc.Project.Workspace() != ws {
		t.Fatalf("document not linked to its project")
	}
	if ws.Document(doc.ID) != doc {
		t.Fatalf("Document lookup failed")
	}
	if sp := doc.FullSpan(); sp.Start != 0 || sp.End != 11 {
		t.Fatalf("FullSpan = %v", sp)
	}
}

func TestParseArchive(t *testing.T) {
	data := []byte(`case comment
-- a.q --
let [|x|] = 1;
-- b.q --
let y = 2;
-- expected/a.q --
// quell:ignore CA001
let x = 1;
`)
	ws, err := ParseArchive(data)
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}
	docs := ws.Documents()
	if len(docs) != 2 || docs[0].Name != "a.q" || docs[1].Name != "b.q" {
		t.Fatalf("documents = %v", docs)
	}
	want, ok := ws.Expected("a.q")
	if !ok || want != "// quell:ignore CA001\nlet x = 1;\n" {
		t.Fatalf("Expected(a.q) = %q, %v", want, ok)
	}
	if _, ok := ws.Expected("b.q"); ok {
		t.Fatalf("unexpected expected output for b.q")
	}
}

func TestParseArchiveNormalizesExpected(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	ws, err := ParseArchive([]byte("-- a.q --\nlet s = \"cafe\u0301\";\n-- expected/a.q --\nlet s = \"cafe\u0301\";\n"))
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}
	doc := ws.Documents()[0]
	want, _ := ws.Expected("a.q")
	if doc.Text() != want || !strings.Contains(want, "caf\u00e9") {
		t.Fatalf("document %q and expected %q differ in normal form", doc.Text(), want)
	}
	if got := Normalize("e\u0301"); got != "\u00e9" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestParseArchiveErrors(t *testing.T) {
	if _, err := ParseArchive([]byte("-- expected/a.q --\nx\n")); err == nil {
		t.Fatalf("archive without documents accepted")
	}
	if _, err := ParseArchive([]byte("-- a.q --\n[|x\n")); !errors.Is(err, ErrMarkup) {
		t.Fatalf("bad markup err = %v", err)
	}
}
