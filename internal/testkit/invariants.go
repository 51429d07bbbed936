package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"quell/internal/diag"
	"quell/internal/source"
)

// CheckDiagnosticSpans runs a minimal set of invariants on diagnostics:
// 1) no entry is nil
// 2) every in-source span points to a known file and lies within its content
// 3) no span is reversed
func CheckDiagnosticSpans(diags []*diag.Diagnostic, fs *source.FileSet) error {
	for i, d := range diags {
		if d == nil {
			return fmt.Errorf("diagnostic %d is nil", i)
		}
		sp, ok := d.Span()
		if !ok {
			continue
		}
		f := fs.Get(sp.File)
		if f == nil {
			return fmt.Errorf("%s: span points to unknown file %d", d.ID, sp.File)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("%s: reversed span %v", d.ID, sp)
		}
		lenContent, err := safecast.Conv[uint32](len(f.Content))
		if err != nil {
			return fmt.Errorf("len content overflow: %w", err)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s: span end beyond content: %d > %d", d.ID, sp.End, lenContent)
		}
	}
	return nil
}
