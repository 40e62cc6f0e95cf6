package common

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SanitizeDelta turns a host supplied elapsed time into a usable step.
// Negative, NaN and infinite values become zero.
func SanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return 0
	}
	return dt
}
