// Package trace records what the harness and the CLI did, as nested spans.
//
// # Usage
//
//	quell run --trace=- --trace-level=detail cases/*.toml
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver (CLI commands, harness entry points) and
// ScopePass (resolve, analyze, filter, restrict, select). LevelDetail adds
// ScopeDocument (per-document analysis). LevelDebug adds ScopeDiagnostic
// point events for every diagnostic the analysis driver produces.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "filter", parentID)
//	defer span.End("")
package trace
