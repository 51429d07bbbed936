// Package pragma recognises in-source suppression directives:
//
//	// quell:ignore CA001, CA002      (own line: applies to the next line)
//	x := f() // quell:ignore CA001    (trailing: applies to its own line)
//	// quell:ignore-file CA003        (applies to the whole file)
package pragma

import (
	"slices"
	"strings"

	"fortio.org/safecast"

	"quell/internal/diag"
	"quell/internal/source"
)

const (
	MarkerLine = "quell:ignore"
	MarkerFile = "quell:ignore-file"
)

// Kind tells which lines a directive covers.
type Kind uint8

const (
	KindNextLine Kind = iota
	KindSameLine
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindNextLine:
		return "next-line"
	case KindSameLine:
		return "same-line"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Syntax describes how comments look in the analysed language.
type Syntax struct {
	CommentPrefix string
}

// DefaultSyntax uses C-style line comments.
var DefaultSyntax = Syntax{CommentPrefix: "//"}

// Directive is one parsed suppression comment.
type Directive struct {
	Kind Kind
	IDs  []string
	// Line is the 1-based line holding the comment.
	Line uint32
	// LineSpan covers the whole line without the trailing newline.
	LineSpan source.Span
	// Comment covers the comment from the prefix to the end of the line.
	Comment source.Span
	// List covers the comma separated ID list.
	List source.Span
}

// TargetLine returns the line the directive suppresses, or 0 for file directives.
func (d *Directive) TargetLine() uint32 {
	switch d.Kind {
	case KindNextLine:
		return d.Line + 1
	case KindSameLine:
		return d.Line
	default:
		return 0
	}
}

// Covers reports whether the directive suppresses id on the given line.
func (d *Directive) Covers(id string, line uint32) bool {
	if !slices.Contains(d.IDs, id) {
		return false
	}
	return d.Kind == KindFile || d.TargetLine() == line
}

// Scan returns the directives of f in source order.
func Scan(f *source.File, syn Syntax) []*Directive {
	if f == nil || syn.CommentPrefix == "" {
		return nil
	}
	var out []*Directive
	for line := uint32(1); line <= f.LineCount(); line++ {
		sp, _ := f.LineSpan(line)
		if d, ok := parseLine(f.Text(sp), sp, line, syn); ok {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the first directive suppressing id on line.
func Find(dirs []*Directive, id string, line uint32) *Directive {
	for _, d := range dirs {
		if d.Covers(id, line) {
			return d
		}
	}
	return nil
}

// FromDiagnostic extracts the suppressing directive stored in the diagnostic payload.
func FromDiagnostic(d *diag.Diagnostic) (*Directive, bool) {
	if d == nil {
		return nil, false
	}
	dir, ok := d.Payload.(*Directive)
	return dir, ok && dir != nil
}

// Format renders a directive comment for the given kind and IDs.
func Format(syn Syntax, kind Kind, ids ...string) string {
	marker := MarkerLine
	if kind == KindFile {
		marker = MarkerFile
	}
	return syn.CommentPrefix + " " + marker + " " + strings.Join(ids, ", ")
}

// parseLine tries every comment prefix on the line; the first one that
// starts a directive wins, so a prefix inside a string literal is skipped.
func parseLine(text string, lineSpan source.Span, line uint32, syn Syntax) (*Directive, bool) {
	for from := 0; from < len(text); {
		rel := strings.Index(text[from:], syn.CommentPrefix)
		if rel < 0 {
			return nil, false
		}
		idx := from + rel
		if d, ok := parseAt(text, idx, lineSpan, line, syn); ok {
			return d, true
		}
		from = idx + len(syn.CommentPrefix)
	}
	return nil, false
}

func parseAt(text string, idx int, lineSpan source.Span, line uint32, syn Syntax) (*Directive, bool) {
	body := text[idx+len(syn.CommentPrefix):]
	trimmed := strings.TrimLeft(body, " \t")
	bodyOff := idx + len(syn.CommentPrefix) + len(body) - len(trimmed)

	kind := KindNextLine
	var rest string
	switch {
	case strings.HasPrefix(trimmed, MarkerFile):
		kind = KindFile
		rest = trimmed[len(MarkerFile):]
		bodyOff += len(MarkerFile)
	case strings.HasPrefix(trimmed, MarkerLine):
		rest = trimmed[len(MarkerLine):]
		bodyOff += len(MarkerLine)
	default:
		return nil, false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false
	}
	if kind != KindFile && strings.TrimSpace(text[:idx]) != "" {
		kind = KindSameLine
	}

	list := strings.TrimSpace(rest)
	if list == "" {
		return nil, false
	}
	listOff := bodyOff + strings.Index(rest, list)

	var ids []string
	for _, part := range strings.Split(list, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, false
	}

	return &Directive{
		Kind:     kind,
		IDs:      ids,
		Line:     line,
		LineSpan: lineSpan,
		Comment:  sub(lineSpan, idx, len(text)),
		List:     sub(lineSpan, listOff, listOff+len(list)),
	}, true
}

func sub(lineSpan source.Span, from, to int) source.Span {
	start, err := safecast.Conv[uint32](from)
	if err != nil {
		panic(err)
	}
	end, err := safecast.Conv[uint32](to)
	if err != nil {
		panic(err)
	}
	return source.Span{File: lineSpan.File, Start: lineSpan.Start + start, End: lineSpan.Start + end}
}
