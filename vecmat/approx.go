package vecmat

import "math"

// equalWithinAbsOrRel reports whether a and b are within tol of each other,
// either in absolute terms or relative to their magnitude. Grounded on the
// teacher's floats.EqualWithinAbsOrRel.
func equalWithinAbsOrRel(a, b, tol float64) bool {
	if equalWithinAbs(a, b, tol) {
		return true
	}
	return equalWithinRel(a, b, tol)
}

func equalWithinAbs(a, b, tol float64) bool {
	return a == b || math.Abs(a-b) <= tol
}

func equalWithinRel(a, b, tol float64) bool {
	if a == b {
		return true
	}
	delta := math.Abs(a - b)
	if delta <= 0 {
		return true
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	return delta/denom <= tol
}

// ApproxEqual reports whether a and b have equal length and every element
// pair is within tol of each other (absolute or relative).
func ApproxEqual(a, b Vec, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalWithinAbsOrRel(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

// MatApproxEqual reports whether a and b have equal shape and every
// element pair is within tol of each other.
func MatApproxEqual(a, b Mat, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if !equalWithinAbsOrRel(a.data[i], b.data[i], tol) {
			return false
		}
	}
	return true
}
