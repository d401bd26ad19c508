package track

import "reflect"

// strictEqual compares two values by identity semantics: comparable values
// with the same dynamic type compare with ==, everything else (maps, slices)
// is never equal.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}

	return a == b
}

// deepEqual compares structurally, descending into maps and slices.
func deepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
