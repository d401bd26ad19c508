package access

import (
	"attrstore/internal/path"
)

// Accessor resolves paths against records using a fixed codec.
type Accessor struct {
	codec path.Codec
}

// New creates an Accessor for the given codec.
func New(codec path.Codec) Accessor {
	return Accessor{codec: codec}
}

// Codec returns the codec used to split paths.
func (a Accessor) Codec() path.Codec {
	return a.codec
}

// Get returns the value stored at p. The boolean is false when the value is
// absent, which is distinct from a present nil value.
func (a Accessor) Get(rec path.Record, p string) (any, bool, error) {
	segments, err := a.codec.Split(p)
	if err != nil {
		return nil, false, err
	}

	var current any = rec

	for _, seg := range segments {
		node, ok := asNode(current)
		if !ok {
			return nil, false, nil
		}

		next, found := node[seg]
		if !found {
			return nil, false, nil
		}

		current = next
	}

	return current, true, nil
}

// Exists reports whether every segment of p is an own key of the node it is
// looked up in. A nil intermediate is treated as an empty map.
func (a Accessor) Exists(rec path.Record, p string) (bool, error) {
	_, ok, err := a.Get(rec, p)

	return ok, err
}

// Set stores value at p, replacing missing or non-map intermediates with
// fresh maps. A nil record is left untouched.
func (a Accessor) Set(rec path.Record, p string, value any) error {
	return a.write(rec, p, value, false)
}

// Unset deletes the key at p. Intermediates are created the same way Set
// creates them.
func (a Accessor) Unset(rec path.Record, p string) error {
	return a.write(rec, p, nil, true)
}

func (a Accessor) write(rec path.Record, p string, value any, unset bool) error {
	segments, err := a.codec.Split(p)
	if err != nil {
		return err
	}

	if rec == nil {
		return nil
	}

	node := rec
	last := len(segments) - 1

	for _, seg := range segments[:last] {
		child, ok := node[seg].(map[string]any)
		if !ok || child == nil {
			child = make(map[string]any)
			node[seg] = child
		}

		node = child
	}

	if unset {
		delete(node, segments[last])
	} else {
		node[segments[last]] = value
	}

	return nil
}

// asNode returns v as a walkable map. Nil counts as an empty node.
func asNode(v any) (map[string]any, bool) {
	if v == nil {
		return nil, true
	}

	node, ok := v.(map[string]any)

	return node, ok
}
