package math3d

// Mix blends a and b: a at t=0, b at t=1.
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Smootherstep is the quintic ease t³(t(6t−15)+10). It has zero first and
// second derivatives at both ends.
func Smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

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
