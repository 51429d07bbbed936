// Package suppress narrows diagnostics by suppression state and restricts a
// suppression fixer to an allow-list of diagnostic IDs.
//
// The typical flow is
//
//	filtered := suppress.Filter(diags, policy)
//	adapter := suppress.Restrict(fixer, suppress.IDs(filtered))
//	actions, err := suppress.EligibleFixes(ctx, adapter, doc, filtered)
//
// Filter never reorders, so action indexes computed from its output are
// stable across runs.
package suppress
