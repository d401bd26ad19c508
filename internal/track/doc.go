// Package track records path writes and reduces them into change sets.
//
// Writes are logged as (path, value) pairs and reduced on demand, newest
// first, so only the last write per path in a batch counts. A loud
// computation consumes the log, advances the current snapshot and yields
// triggers: one per changed path plus one wildcard per ancestor, e.g. a
// change to "a.b.c" triggers "a.b.c", "a.b.*" and "a.*" in that order.
// A quiet computation only refreshes the changed map.
//
// A Tracker is not safe for concurrent use.
package track
