// Package diag defines the diagnostic model shared by the lexer, parser, and
// lint rules.
//
// Diagnostic is the central record: severity, stable code, message, primary
// span, optional notes and fix suggestions. Fixes are data-only; each carries
// structured text edits (span + new/old text) that internal/fix can validate
// and apply. OldText acts as a guard the fix engine checks before patching.
//
// Producers emit through the Reporter interface so they stay decoupled from
// storage and formatting. BagReporter aggregates into a Bag, which the driver
// sorts and deduplicates before handing to internal/diagfmt or internal/fix.
package diag
