// Package sema performs semantic analysis over parsed Mica units: it
// resolves contract inheritance, computes override relations, finds
// unimplemented members, and types array lvalues well enough to flag
// assignments to resizable array lengths.
//
// Analysis is best-effort and recoverable: every finding is reported as a
// diagnostic, the annotated Info is returned even when errors are present.
// Callers that need a reliable tree must gate on the parser's error count
// first.
package sema
