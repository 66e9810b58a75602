package cga

import "math"

// Epsilon is the absolute tolerance used by every approximate comparison in
// the kernel.
const Epsilon = 1e-6

// IsApproxZero reports whether x is within Epsilon of zero.
func IsApproxZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// ApproxEq reports whether a and b are within Epsilon of each other.
func ApproxEq(a, b float64) bool {
	return IsApproxZero(a - b)
}

// ApproxCmp returns -1, 0 or 1 depending on the sign of x, treating values
// within Epsilon of zero as zero.
func ApproxCmp(x float64) int {
	switch {
	case IsApproxZero(x):
		return 0
	case x > 0:
		return 1
	default:
		return -1
	}
}
