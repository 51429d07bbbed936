package diag

import (
	"fmt"
	"strings"

	"quell/internal/source"
)

// FormatGoldenDiagnostics renders diagnostics one per line, in the given order,
// in a stable form suitable for assertions:
//
//	warning CA001 main.q:3:5 message
//	warning CA002 main.q:4:1 message [suppressed]
//	info CA003 <no location> message
//
// Order is kept as is: callers rely on analyzer order.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", severityLabel(d.Severity), d.ID, formatLocation(fs, d), sanitizeMessage(d.Message))
		if d.Suppressed {
			b.WriteString(" [suppressed]")
		}
	}
	return b.String()
}

func formatLocation(fs *source.FileSet, d *Diagnostic) string {
	sp, ok := d.Span()
	if !ok {
		return "<no location>"
	}
	if fs == nil {
		return sp.String()
	}
	file := fs.Get(sp.File)
	if file == nil {
		return sp.String()
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
