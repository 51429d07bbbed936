package suppress

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/pragma"
	"quell/internal/source"
	"quell/internal/workspace"
)

// Equivalence keys of the actions produced by PragmaFixer.
const (
	KeySuppressLine = "quell.suppress.line"
	KeySuppressFile = "quell.suppress.file"
	KeyUnsuppress   = "quell.unsuppress"
)

// PragmaFixer suppresses diagnostics by editing pragma directives.
//
// For an unsuppressed diagnostic it offers two actions, in this order:
// suppress on this line, then suppress in the whole file. For a diagnostic
// suppressed by a directive it offers one action removing the ID from that
// directive.
type PragmaFixer struct {
	Syntax pragma.Syntax
	// IDs restricts the fixer to these diagnostic IDs; empty means any.
	IDs []string
}

var _ Fixer = (*PragmaFixer)(nil)

// NewPragmaFixer returns a fixer using the default comment syntax.
func NewPragmaFixer(ids ...string) *PragmaFixer {
	return &PragmaFixer{Syntax: pragma.DefaultSyntax, IDs: ids}
}

// CanFix accepts in-source diagnostics below error severity. A suppressed
// diagnostic is fixable only when its suppressing directive is known.
func (f *PragmaFixer) CanFix(d *diag.Diagnostic) bool {
	if d == nil || !d.InSource() || d.Severity >= diag.SevError {
		return false
	}
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, d.ID) {
		return false
	}
	if d.Suppressed {
		_, ok := pragma.FromDiagnostic(d)
		return ok
	}
	return true
}

// Fixes returns actions for the diagnostics of doc, in input order.
// Diagnostics it cannot fix or located elsewhere are skipped.
func (f *PragmaFixer) Fixes(ctx context.Context, doc *workspace.Document, diags []*diag.Diagnostic) ([]fix.Action, error) {
	file := doc.File()
	if file == nil {
		return nil, fmt.Errorf("suppress: document %s has no file", doc.Name)
	}
	fs := doc.Project.Workspace().FileSet
	dirs := pragma.Scan(file, f.Syntax)

	var out []fix.Action
	for _, d := range diags {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !f.CanFix(d) {
			continue
		}
		sp, _ := d.Span()
		if sp.File != doc.ID {
			continue
		}
		if d.Suppressed {
			dir, _ := pragma.FromDiagnostic(d)
			out = append(out, f.unsuppress(file, d, dir))
			continue
		}
		start, _ := fs.Resolve(sp)
		out = append(out,
			f.suppressLine(file, d, start.Line, dirs),
			f.suppressFile(file, d, dirs),
		)
	}
	return out, nil
}

func (f *PragmaFixer) suppressLine(file *source.File, d *diag.Diagnostic, line uint32, dirs []*pragma.Directive) fix.Action {
	title := fmt.Sprintf("Suppress %s on this line", d.ID)
	opts := []fix.Option{
		fix.WithID(fmt.Sprintf("%s:%s:%d", KeySuppressLine, d.ID, line)),
		fix.WithKey(KeySuppressLine),
		fix.ForDiagnostic(d.ID),
		fix.Preferred(),
	}
	for _, dir := range dirs {
		if dir.Kind != pragma.KindFile && dir.TargetLine() == line {
			return extendList(file, title, dir, d.ID, opts)
		}
	}

	lineSpan, _ := file.LineSpan(line)
	text := file.Text(lineSpan)
	indent := text[:len(text)-len(strings.TrimLeft(text, " \t"))]
	at := source.Span{File: file.ID, Start: lineSpan.Start, End: lineSpan.Start}
	return fix.InsertText(title, at, indent+pragma.Format(f.Syntax, pragma.KindNextLine, d.ID)+"\n", "", opts...)
}

func (f *PragmaFixer) suppressFile(file *source.File, d *diag.Diagnostic, dirs []*pragma.Directive) fix.Action {
	title := fmt.Sprintf("Suppress %s in this file", d.ID)
	opts := []fix.Option{
		fix.WithID(fmt.Sprintf("%s:%s", KeySuppressFile, d.ID)),
		fix.WithKey(KeySuppressFile),
		fix.ForDiagnostic(d.ID),
	}
	for _, dir := range dirs {
		if dir.Kind == pragma.KindFile {
			return extendList(file, title, dir, d.ID, opts)
		}
	}
	at := source.Span{File: file.ID}
	return fix.InsertText(title, at, pragma.Format(f.Syntax, pragma.KindFile, d.ID)+"\n", "", opts...)
}

func (f *PragmaFixer) unsuppress(file *source.File, d *diag.Diagnostic, dir *pragma.Directive) fix.Action {
	title := fmt.Sprintf("Remove suppression of %s", d.ID)
	opts := []fix.Option{
		fix.WithID(fmt.Sprintf("%s:%s:%d", KeyUnsuppress, d.ID, dir.Line)),
		fix.WithKey(KeyUnsuppress),
		fix.ForDiagnostic(d.ID),
	}

	rest := slices.DeleteFunc(slices.Clone(dir.IDs), func(id string) bool { return id == d.ID })
	if len(rest) > 0 {
		return fix.ReplaceSpan(title, dir.List, strings.Join(rest, ", "), file.Text(dir.List), opts...)
	}

	if dir.Kind == pragma.KindSameLine {
		start := dir.Comment.Start
		for start > dir.LineSpan.Start && (file.Content[start-1] == ' ' || file.Content[start-1] == '\t') {
			start--
		}
		sp := source.Span{File: file.ID, Start: start, End: dir.Comment.End}
		return fix.DeleteSpan(title, sp, file.Text(sp), opts...)
	}

	sp := dir.LineSpan
	if int(sp.End) < len(file.Content) {
		sp.End++
	}
	return fix.DeleteSpan(title, sp, file.Text(sp), opts...)
}

// extendList appends id to the ID list of an existing directive.
func extendList(file *source.File, title string, dir *pragma.Directive, id string, opts []fix.Option) fix.Action {
	old := file.Text(dir.List)
	return fix.ReplaceSpan(title, dir.List, old+", "+id, old, opts...)
}
