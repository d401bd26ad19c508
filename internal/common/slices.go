package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Limit returns at most n leading elements of s. Non-positive n means no limit.
func Limit[S ~[]E, E any](s S, n int) S {
	if n <= 0 || n >= len(s) {
		return s
	}

	return s[:n]
}
