// Package access reads and writes values inside nested records by path.
//
// Reads never fail for missing data: a path that runs through a missing,
// nil or non-map intermediate simply reports the value as absent. Writes
// create intermediate maps on demand and overwrite any non-map value that
// sits in an intermediate position. Only malformed paths are errors.
package access
