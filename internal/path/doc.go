// Package path converts between dot-delimited path strings and their
// segments, and flattens nested records into path-keyed leaf mappings.
//
// # Path Syntax
//
// A path is a sequence of non-empty segments joined by the codec's
// separator (default "."):
//   - Top-level key: "name"
//   - Nested key: "user.name"
//   - Ancestor wildcard: "user.*" (produced by Wildcard, never parsed)
//
// No segment may contain the separator, so Split and Join round-trip.
//
// # Records
//
// A record is a tree of map[string]any nodes. Any other value, including
// slices and empty maps, is a leaf.
package path
