package common

import "math"

// Coalesce returns the first of values that is not the zero value of T, or the zero value.
// Descriptor-like structs use it to fill unset fields with defaults.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero candidate
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// IsNonNegativeFinite reports whether v is a finite number >= 0.
func IsNonNegativeFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
