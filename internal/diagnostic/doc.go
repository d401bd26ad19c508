// Package diagnostic collects structured errors, warnings and notes raised
// while applying batches to a store.
//
// Key capabilities:
//   - Per-step, per-path error reporting with stable codes
//   - "did you mean" suggestions attached to missing-path diagnostics
//   - Aggregation into a single error for callers that only need pass/fail
package diagnostic
