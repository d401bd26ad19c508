package common

import (
	"cmp"
	"maps"
	"slices"
)

// UnknownStr is the fallback String() value for out-of-range enums.
const UnknownStr = "unknown"

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}
