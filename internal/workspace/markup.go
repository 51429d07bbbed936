package workspace

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Markup syntax understood in test sources:
//
//	[|text|]          selection span
//	$$                empty selection (caret) when no [| |] is present
//	{|Label:text|}    annotated span
const (
	selOpen   = "[|"
	selClose  = "|]"
	annOpen   = "{|"
	annClose  = "|}"
	caretMark = "$$"
)

// ErrMarkup is returned for malformed markup.
var ErrMarkup = errors.New("workspace: malformed markup")

// Range is a half-open byte range in the markup-free text.
type Range struct {
	Start, End int
}

// Annotation is a labelled range.
type Annotation struct {
	Label string
	Range Range
}

// Markup is the result of stripping markup from a test source.
type Markup struct {
	Text        string
	Selection   *Range
	Annotations []Annotation
}

type openMark struct {
	annotation bool
	label      string
	start      int
	at         int // position in the input, for error messages
}

// Normalize returns text in the form documents are stored in (NFC). Text
// compared against documents, like expected output, goes through it too.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// ParseMarkup strips selection, caret and annotation markers from input.
// The input is normalised first so offsets match what editors produce.
func ParseMarkup(input string) (Markup, error) {
	input = Normalize(input)

	var (
		out   strings.Builder
		stack []openMark
		m     Markup
		caret = -1
	)
	out.Grow(len(input))

	for i := 0; i < len(input); {
		rest := input[i:]
		switch {
		case strings.HasPrefix(rest, selOpen):
			stack = append(stack, openMark{start: out.Len(), at: i})
			i += len(selOpen)
		case strings.HasPrefix(rest, annOpen):
			colon := strings.IndexByte(rest, ':')
			if colon < 0 || strings.ContainsAny(rest[len(annOpen):colon], "\n|") {
				return Markup{}, fmt.Errorf("%w: annotation at offset %d has no label", ErrMarkup, i)
			}
			label := rest[len(annOpen):colon]
			stack = append(stack, openMark{annotation: true, label: label, start: out.Len(), at: i})
			i += colon + 1
		case strings.HasPrefix(rest, selClose), strings.HasPrefix(rest, annClose):
			wantAnnotation := strings.HasPrefix(rest, annClose)
			if len(stack) == 0 || stack[len(stack)-1].annotation != wantAnnotation {
				return Markup{}, fmt.Errorf("%w: unexpected %q at offset %d", ErrMarkup, rest[:2], i)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			r := Range{Start: top.start, End: out.Len()}
			if top.annotation {
				m.Annotations = append(m.Annotations, Annotation{Label: top.label, Range: r})
			} else {
				if m.Selection != nil {
					return Markup{}, fmt.Errorf("%w: more than one selection", ErrMarkup)
				}
				m.Selection = &r
			}
			i += 2
		case strings.HasPrefix(rest, caretMark):
			if caret >= 0 {
				return Markup{}, fmt.Errorf("%w: more than one caret", ErrMarkup)
			}
			caret = out.Len()
			i += len(caretMark)
		default:
			out.WriteByte(input[i])
			i++
		}
	}
	if len(stack) > 0 {
		return Markup{}, fmt.Errorf("%w: unclosed marker at offset %d", ErrMarkup, stack[len(stack)-1].at)
	}
	if caret >= 0 {
		if m.Selection != nil {
			return Markup{}, fmt.Errorf("%w: both caret and selection present", ErrMarkup)
		}
		m.Selection = &Range{Start: caret, End: caret}
	}
	m.Text = out.String()
	return m, nil
}
