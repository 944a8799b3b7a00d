package util

import "math"

// FloatTolerance is the tolerance used for span and duration sum checks.
const FloatTolerance = 1e-6

// AbsFloat64 returns the absolute value of x.
func AbsFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// NormalizeDegrees maps any angle onto [0, 360).
// Cyclic inputs never fail: 360 -> 0, -30 -> 330, NaN stays NaN.
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// AlmostEqual reports whether a and b differ by at most tol.
func AlmostEqual(a, b, tol float64) bool {
	return AbsFloat64(a-b) <= tol
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
