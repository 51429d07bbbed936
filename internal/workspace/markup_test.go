package workspace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Markup
	}{
		{
			name:  "plain",
			input: "let x = 1;",
			want:  Markup{Text: "let x = 1;"},
		},
		{
			name:  "selection",
			input: "let [|x|] = 1;",
			want:  Markup{Text: "let x = 1;", Selection: &Range{Start: 4, End: 5}},
		},
		{
			name:  "caret",
			input: "let $$x = 1;",
			want:  Markup{Text: "let x = 1;", Selection: &Range{Start: 4, End: 4}},
		},
		{
			name:  "annotation",
			input: "{|document:let x = 1;|}",
			want: Markup{
				Text:        "let x = 1;",
				Annotations: []Annotation{{Label: "document", Range: Range{Start: 0, End: 10}}},
			},
		},
		{
			name:  "selection inside annotation",
			input: "{|project:a [|b|] c|}",
			want: Markup{
				Text:        "a b c",
				Selection:   &Range{Start: 2, End: 3},
				Annotations: []Annotation{{Label: "project", Range: Range{Start: 0, End: 5}}},
			},
		},
		{
			name:  "nfc",
			input: "e\u0301[|x|]",
			want:  Markup{Text: "\u00e9x", Selection: &Range{Start: 2, End: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMarkup(tt.input)
			if err != nil {
				t.Fatalf("ParseMarkup: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("markup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMarkupErrors(t *testing.T) {
	inputs := []string{
		"[|x",
		"x|]",
		"{|x|}",
		"{|a:x|]",
		"[|a|] [|b|]",
		"$$ $$",
		"$$[|x|]",
	}
	for _, in := range inputs {
		if _, err := ParseMarkup(in); !errors.Is(err, ErrMarkup) {
			t.Errorf("ParseMarkup(%q) err = %v, want ErrMarkup", in, err)
		}
	}
}
