// Package diag defines the diagnostic model shared by all compiler phases.
//
// Diagnostic is the central record: severity, a numeric Code with a stable
// textual ID, a short message, the primary source.Span and optional notes and
// fix suggestions.
//
// Phases emit through a Reporter so they never depend on storage or formatting.
// BagReporter collects into a Bag, which supports limits, sorting and
// deduplication. Rendering lives in internal/diagfmt.
//
// Conditions the semantic core signals as absent results (an unresolved name, a
// redeclaration) become diagnostics at the call site that decides their
// severity; type mismatches arrive here from parse failures converted by the
// driver.
package diag
