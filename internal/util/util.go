// Package util provides small numeric helpers shared by the marker,
// timeline and overlay packages.
package util

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SafeDenom returns d, or 1 when d is zero. Used to guard divisions over
// empty frame ranges and zero-length stroke spans.
func SafeDenom(d float64) float64 {
	if d == 0 {
		return 1
	}
	return d
}
