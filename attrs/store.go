package attrs

import (
	"fmt"
	"reflect"

	"github.com/golang/glog"
	jsoniter "github.com/json-iterator/go"

	"attrstore/internal/access"
	"attrstore/internal/common"
	"attrstore/internal/path"
	"attrstore/internal/track"
)

// Record is a nested attribute tree.
type Record = path.Record

// Trigger names a changed path or an ancestor wildcard.
type Trigger = track.Trigger

var (
	// ErrInvalidPath is matched by every malformed path error.
	ErrInvalidPath = path.ErrInvalidPath
	// ErrInvalidSeparator is returned by New for an empty separator.
	ErrInvalidSeparator = path.ErrInvalidSeparator
)

// Store is a nested attribute record with change tracking.
type Store struct {
	codec    path.Codec
	accessor access.Accessor
	tracker  *track.Tracker
	record   Record
}

// New creates a Store. Defaults and initial attributes are applied without
// being reported as changes.
func New(opts ...Option) (*Store, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	codec, err := path.NewCodec(cfg.Separator)
	if err != nil {
		return nil, err
	}

	s := newStore(codec)

	for _, initial := range []Record{cfg.Defaults, cfg.Attributes} {
		if len(initial) == 0 {
			continue
		}

		if _, err := s.Set(initial, SetOptions{Silent: true}); err != nil {
			return nil, fmt.Errorf("initial attributes: %w", err)
		}
	}

	s.tracker.Commit()
	s.tracker.SetPrevious(path.Clone(s.record))

	return s, nil
}

func newStore(codec path.Codec) *Store {
	return &Store{
		codec:    codec,
		accessor: access.New(codec),
		tracker:  track.New(codec),
		record:   make(Record),
	}
}

// Separator returns the path separator of this store.
func (s *Store) Separator() string {
	return s.codec.Separator()
}

// Get returns the value at p. The boolean is false when the value is absent.
func (s *Store) Get(p string) (any, bool, error) {
	return s.accessor.Get(s.record, p)
}

// Exists reports whether every segment of p is present.
func (s *Store) Exists(p string) (bool, error) {
	return s.accessor.Exists(s.record, p)
}

// Has reports whether p holds a non-nil value. Malformed paths report false.
func (s *Store) Has(p string) bool {
	v, ok, err := s.accessor.Get(s.record, p)

	return err == nil && ok && v != nil
}

// Set writes a batch of attributes. Keys are paths; nested map values are
// flattened into leaf writes. All paths are validated before the record is
// touched; a batch holding both a path and one of its descendants is
// rejected. Unless opts.Silent is set, the batch is consumed and the
// resulting triggers are returned.
func (s *Store) Set(attrs Record, opts SetOptions) ([]Trigger, error) {
	flat := s.codec.Flatten(attrs)
	keys := common.SortedKeys(flat)

	if err := s.validateBatch(keys); err != nil {
		return nil, err
	}

	s.tracker.SetPrevious(path.Clone(s.record))

	for _, k := range keys {
		cur, present, err := s.accessor.Get(s.record, k)
		if err != nil {
			return nil, err
		}

		if opts.Unset {
			if present {
				s.recordUnset(k, cur)
			}

			err = s.accessor.Unset(s.record, k)
		} else {
			val := flat[k]
			if !present || !reflect.DeepEqual(cur, val) {
				s.tracker.RecordWrite(k, val)
			}

			err = s.accessor.Set(s.record, k, val)
		}

		if err != nil {
			return nil, err
		}
	}

	return s.finish(opts.Silent, "set", len(keys)), nil
}

// validateBatch checks every path and rejects keys that sit below another
// key of the same batch.
func (s *Store) validateBatch(keys []string) error {
	seen := make(map[string]struct{}, len(keys))

	for _, k := range keys {
		if _, err := s.codec.Split(k); err != nil {
			return err
		}

		seen[k] = struct{}{}
	}

	for _, k := range keys {
		for _, ancestor := range s.codec.Ancestors(k) {
			if _, ok := seen[ancestor]; ok {
				return &path.InvalidPathError{
					Path:   k,
					Reason: fmt.Sprintf("conflicts with %q in the same batch", ancestor),
				}
			}
		}
	}

	return nil
}

// recordUnset logs the deletion of p and, when p held a subtree, of every
// leaf below it.
func (s *Store) recordUnset(p string, cur any) {
	s.tracker.RecordUnset(p)

	sub, ok := cur.(map[string]any)
	if !ok {
		return
	}

	flat := s.codec.Flatten(sub)
	for _, leaf := range common.SortedKeys(flat) {
		s.tracker.RecordUnset(s.codec.Join(p, leaf))
	}
}

// finish computes the logged batch: quietly for silent batches, otherwise
// consuming it into triggers.
func (s *Store) finish(silent bool, op string, n int) []Trigger {
	if silent {
		s.tracker.Compute(false)

		return nil
	}

	triggers := s.tracker.Compute(true)

	if glog.V(2) {
		glog.Infof("attrs: %s %d paths, triggers %v", op, n, track.Paths(triggers))
	}

	return triggers
}

// SetPath writes a single value.
func (s *Store) SetPath(p string, value any) ([]Trigger, error) {
	if _, err := s.codec.Split(p); err != nil {
		return nil, err
	}

	return s.Set(Record{p: value}, SetOptions{})
}

// Unset deletes the value at p.
func (s *Store) Unset(p string) ([]Trigger, error) {
	if _, err := s.codec.Split(p); err != nil {
		return nil, err
	}

	return s.Set(Record{p: nil}, SetOptions{Unset: true})
}

// Clear removes every top-level attribute. Keys are deleted as they are,
// without being parsed as paths.
func (s *Store) Clear() ([]Trigger, error) {
	s.tracker.SetPrevious(path.Clone(s.record))

	keys := common.SortedKeys(s.record)
	for _, k := range keys {
		s.recordUnset(k, s.record[k])
		delete(s.record, k)
	}

	return s.finish(false, "clear", len(keys)), nil
}

// Changed returns the paths changed by the last batch, or false when none.
func (s *Store) Changed() (map[string]any, bool) {
	return s.tracker.Changed()
}

// ChangedAgainst returns the paths of candidate whose values differ from
// the attributes as they were before the last Set, or false when none.
func (s *Store) ChangedAgainst(candidate Record) (map[string]any, bool) {
	return s.tracker.ChangedAgainst(candidate)
}

// HasChanged reports whether any of p changed in the last batch. With no path it
// reports whether anything changed.
func (s *Store) HasChanged(p ...string) bool {
	return s.tracker.HasChanged(p...)
}

// Previous returns the value at p before the last Set.
func (s *Store) Previous(p string) (any, bool) {
	v, ok, err := s.accessor.Get(s.tracker.Previous(), p)
	if err != nil {
		return nil, false
	}

	return v, ok
}

// PreviousAttributes returns a copy of the attributes before the last Set.
func (s *Store) PreviousAttributes() Record {
	return path.Clone(s.tracker.Previous())
}

// Attributes returns a deep copy of the record.
func (s *Store) Attributes() Record {
	return path.Clone(s.record)
}

// Flatten returns the record as a path-keyed leaf mapping.
func (s *Store) Flatten() map[string]any {
	return s.codec.Flatten(s.record)
}

// Clone returns a new Store with a copy of the attributes and the same
// separator. The copy starts with no changes.
func (s *Store) Clone() *Store {
	c := newStore(s.codec)
	c.record = path.Clone(s.record)

	for p, v := range c.codec.Flatten(c.record) {
		c.tracker.RecordWrite(p, v)
	}

	c.tracker.Commit()
	c.tracker.SetPrevious(path.Clone(c.record))

	return c
}

// MarshalJSON encodes the attributes.
func (s *Store) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(s.record)
}
