package suppress

import "quell/internal/diag"

// Filter returns the diagnostics allowed by p in their original order. The
// result is a new slice; diags is not modified. Nil entries are skipped.
func Filter(diags []*diag.Diagnostic, p Policy) []*diag.Diagnostic {
	out := make([]*diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d != nil && p.Allows(d) {
			out = append(out, d)
		}
	}
	return out
}

// IDs returns the distinct diagnostic IDs of diags in first-seen order.
func IDs(diags []*diag.Diagnostic) []string {
	seen := make(map[string]struct{}, len(diags))
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		if d == nil {
			continue
		}
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d.ID)
	}
	return out
}
