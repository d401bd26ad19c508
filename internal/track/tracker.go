package track

import (
	"maps"

	"github.com/golang/glog"

	"attrstore/internal/common"
	"attrstore/internal/path"
)

type entry struct {
	path  string
	value any
	unset bool
}

// Tracker logs writes and computes which paths changed.
type Tracker struct {
	codec path.Codec

	log      []entry
	current  map[string]any
	changed  map[string]any
	computed bool

	previous path.Record
}

// New creates an empty Tracker.
func New(codec path.Codec) *Tracker {
	return &Tracker{
		codec:   codec,
		current: make(map[string]any),
		changed: make(map[string]any),
	}
}

// RecordWrite appends a write to the log and invalidates the changed map.
func (t *Tracker) RecordWrite(p string, value any) {
	t.log = append(t.log, entry{path: p, value: value})
	t.computed = false
}

// RecordUnset appends a deletion of p to the log. A deleted path is absent,
// which differs from a present nil.
func (t *Tracker) RecordUnset(p string) {
	t.log = append(t.log, entry{path: p, unset: true})
	t.computed = false
}

// Pending returns the number of logged writes not yet consumed.
func (t *Tracker) Pending() int {
	return len(t.log)
}

// Compute reduces the log into the changed map. When loud is true the log
// is consumed, the current snapshot advances and the returned triggers list
// every changed path followed by its ancestor wildcards.
func (t *Tracker) Compute(loud bool) []Trigger {
	var triggers []Trigger

	t.changed = make(map[string]any)
	seen := make(map[string]struct{}, len(t.log))

	for i := len(t.log) - 1; i >= 0; i-- {
		e := t.log[i]
		if _, ok := seen[e.path]; ok {
			continue
		}

		seen[e.path] = struct{}{}

		cur, ok := t.current[e.path]
		if e.unset && !ok {
			continue
		}

		if !e.unset && ok && strictEqual(cur, e.value) {
			continue
		}

		t.changed[e.path] = e.value

		if !loud {
			continue
		}

		triggers = append(triggers, Trigger{Path: e.path, Value: e.value})

		if e.unset {
			delete(t.current, e.path)
		} else {
			t.current[e.path] = e.value
		}

		for _, ancestor := range t.codec.Ancestors(e.path) {
			triggers = append(triggers, Trigger{
				Path:     t.codec.Wildcard(ancestor),
				Value:    e.value,
				Wildcard: true,
			})
		}
	}

	if glog.V(2) {
		glog.Infof("track: computed %d changes from %d writes (loud=%t, triggers=%d)",
			len(t.changed), len(t.log), loud, len(triggers))
	}

	if loud {
		t.log = nil
	}

	t.computed = true

	return triggers
}

// Commit consumes the log into the current snapshot without reporting
// anything as changed. Used to seed a tracker with initial values.
func (t *Tracker) Commit() {
	t.Compute(true)
	t.changed = make(map[string]any)
}

// Changed returns a copy of the changed map, or false when nothing changed.
// A stale map is refreshed with a quiet computation first.
func (t *Tracker) Changed() (map[string]any, bool) {
	if !t.computed {
		t.Compute(false)
	}

	if len(t.changed) == 0 {
		return nil, false
	}

	return maps.Clone(t.changed), true
}

// HasChanged reports whether any of the given paths is in the changed map.
// With no path it reports whether anything changed.
func (t *Tracker) HasChanged(paths ...string) bool {
	if !t.computed {
		t.Compute(false)
	}

	if common.IsEmpty(paths) {
		return len(t.changed) > 0
	}

	for _, p := range paths {
		if _, ok := t.changed[p]; ok {
			return true
		}
	}

	return false
}

// Current returns the last value reported as changed for p.
func (t *Tracker) Current(p string) (any, bool) {
	v, ok := t.current[p]

	return v, ok
}

// SetPrevious stores the snapshot used by ChangedAgainst and Previous.
// The tracker keeps rec as given; callers pass a copy.
func (t *Tracker) SetPrevious(rec path.Record) {
	t.previous = rec
}

// Previous returns the previous-attributes snapshot.
func (t *Tracker) Previous() path.Record {
	return t.previous
}

// ChangedAgainst diffs candidate against the previous-attributes snapshot,
// ignoring the log.
func (t *Tracker) ChangedAgainst(candidate path.Record) (map[string]any, bool) {
	return Diff(t.codec, t.previous, candidate)
}

// Reset drops the log, the current snapshot and the changed map.
func (t *Tracker) Reset() {
	t.log = nil
	t.current = make(map[string]any)
	t.changed = make(map[string]any)
	t.computed = false
	t.previous = nil
}

// Diff flattens both records and returns the candidate paths whose values
// are not deeply equal to the previous ones, or false when none differ.
func Diff(codec path.Codec, previous, candidate path.Record) (map[string]any, bool) {
	old := codec.Flatten(previous)

	var out map[string]any

	for p, val := range codec.Flatten(candidate) {
		if prev, ok := old[p]; ok && deepEqual(prev, val) {
			continue
		}

		if out == nil {
			out = make(map[string]any)
		}

		out[p] = val
	}

	return out, out != nil
}
