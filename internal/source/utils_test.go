package source

import "testing"

func TestToLineCol(t *testing.T) {
	idx := buildLineIndex([]byte("ab\ncd\n"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(out) != "a\rb\nc" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, changed := normalizeCRLF([]byte("plain")); changed {
		t.Fatal("expected no change without CR")
	}
}
