// Package attrs provides a nested attribute store with change tracking.
//
// A Store holds a record of nested map[string]any values addressed by
// dot-delimited paths. Every Set is a batch: values are written in place,
// logged, and reduced into the paths that actually changed. The returned
// triggers name each changed path followed by a wildcard for each of its
// ancestors, so a holder of the store can notify listeners subscribed to
// "user.name" or to "user.*".
//
//	s, _ := attrs.New()
//	triggers, _ := s.SetPath("user.name", "ann")
//	// triggers: user.name, user.*
//
// Stores are meant to be held by higher-level entities rather than
// extended. A Store is not safe for concurrent use; callers serialize
// access to a given instance.
package attrs
