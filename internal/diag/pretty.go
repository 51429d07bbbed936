package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"quell/internal/source"
)

// WritePretty prints each diagnostic with its source line and a caret
// underline. Column math uses display width so wide runes line up.
func WritePretty(w io.Writer, diags []*Diagnostic, fs *source.FileSet) error {
	for _, d := range diags {
		header := fmt.Sprintf("%s[%s]: %s", severityLabel(d.Severity), d.ID, sanitizeMessage(d.Message))
		if d.Suppressed {
			header += " (suppressed)"
		}
		if _, err := fmt.Fprintf(w, "%s\n  --> %s\n", header, formatLocation(fs, d)); err != nil {
			return err
		}
		sp, ok := d.Span()
		if !ok || fs == nil || fs.Get(sp.File) == nil {
			continue
		}
		file := fs.Get(sp.File)
		start, end := fs.Resolve(sp)
		line := file.GetLine(start.Line)
		underlineEnd := len(line)
		if end.Line == start.Line && int(end.Col-1) <= len(line) {
			underlineEnd = int(end.Col - 1)
		}
		startCol := min(int(start.Col-1), len(line))
		pad := runewidth.StringWidth(strings.ReplaceAll(line[:startCol], "\t", "    "))
		width := max(runewidth.StringWidth(line[startCol:max(underlineEnd, startCol)]), 1)
		if _, err := fmt.Fprintf(w, "   | %s\n   | %s%s\n", strings.ReplaceAll(line, "\t", "    "), strings.Repeat(" ", pad), strings.Repeat("^", width)); err != nil {
			return err
		}
	}
	return nil
}
