// Package diag defines the diagnostic model consumed by the suppression harness.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - ID – the analyzer rule identifier (for example "CA001"); the harness
//     builds its fixer allow-lists from it.
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Location – either At(span) or NoLocation() for project-wide findings.
//   - Suppressed – whether the finding is currently suppressed, either by an
//     in-source directive (set by the analysis driver) or externally.
//   - Payload – opaque data for fixers; the driver stores the suppressing
//     directive there.
//
// Diagnostics travel as *Diagnostic so that identity survives filtering: the
// object a test asserts on is the same object the fixer receives.
//
// # Emitting diagnostics
//
// Analyzers report through a Reporter. NewReportBuilder (or ReportWarning /
// ReportError / ReportInfo / ReportProject) builds a record and Emit sends it
// exactly once. BagReporter collects into a Bag which supports a size limit and
// deduplication.
//
// # Rendering
//
// FormatGoldenDiagnostics gives a one-line-per-entry form for assertions;
// WritePretty prints source excerpts with caret underlines for the CLI.
package diag
