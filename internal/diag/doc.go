// Package diag defines the diagnostic model shared by all front-end phases.
//
// Diagnostic is the central record: Severity, a stable numeric Code, a short
// message, the primary source.Span, and optional Notes with secondary spans.
// Producers emit through a Reporter so they stay decoupled from storage;
// BagReporter aggregates into a Bag, which supports sorting and dedup for
// deterministic output.
//
// The upgrade engine only consumes diagnostics for gating (does the unit set
// still carry errors?) and for reporting. Patches are never derived from
// diagnostics; they come from rules inspecting the syntax tree.
package diag
