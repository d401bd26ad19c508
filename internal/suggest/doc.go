// Package suggest ranks known paths by similarity to a path that was not
// found, for "did you mean" hints.
//
// Key functions:
//   - NormalizeSegment: folds case and separators of a single segment
//   - Score: edit-distance similarity of two paths, segment by segment
//   - Rank: orders known paths by score against a target
package suggest
