// Package mathutil has the small integer helpers the renderer leans on.
package mathutil

// IntMin returns the smaller of two ints.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits x to [lo, hi]. When hi < lo the result is lo.
func IntClamp(x, lo, hi int) int {
	return IntMax(lo, IntMin(x, hi))
}
