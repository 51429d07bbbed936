package analysis

import (
	"context"
	"fmt"

	"quell/internal/diag"
	"quell/internal/recording"
)

// Replay returns an analyzer that reports the entries of rec. Entries are
// matched to documents by path; entries without a location are reported
// for every document and collapse to one in ProjectDiagnostics.
func Replay(rec *recording.Recording) Analyzer {
	name := "replay"
	if rec.Tool != "" {
		name = "replay:" + rec.Tool
	}
	return NewAnalyzer(name, func(ctx context.Context, pass *Pass) error {
		fs := pass.Project.Workspace().FileSet
		for i := range rec.Entries {
			e := &rec.Entries[i]
			sev, err := diag.ParseSeverity(e.Severity)
			if err != nil {
				return fmt.Errorf("replay %s: %w", e.RuleID, err)
			}
			var b *diag.ReportBuilder
			switch {
			case !e.InSource():
				b = diag.ReportProject(pass, sev, e.RuleID, e.Message)
			case e.Path == pass.Document.Name:
				sp, err := e.Span(fs, pass.Document.ID)
				if err != nil {
					return fmt.Errorf("replay %s at %s:%d: %w", e.RuleID, e.Path, e.StartLine, err)
				}
				b = diag.NewReportBuilder(pass, sev, e.RuleID, diag.At(sp), e.Message)
			default:
				continue
			}
			if e.Suppressed {
				b.Suppressed()
			}
			b.Emit()
		}
		return nil
	})
}
