package arm

import "math"

// Canonical joint angle windows. Theta1 lives in [Theta1Min, Theta1Min+2π),
// Theta2 in [0, 2π).
const (
	Theta1Min = math.Pi
	Theta2Min = 0.0
)

func mod(x, m float64) float64 {
	return x - m*math.Floor(x/m)
}

// NormalizeTheta1 maps an angle into [π, 3π).
func NormalizeTheta1(a float64) float64 {
	return wrapInto(a, Theta1Min)
}

// NormalizeTheta2 maps an angle into [0, 2π).
func NormalizeTheta2(a float64) float64 {
	return wrapInto(a, Theta2Min)
}

func wrapInto(a, lo float64) float64 {
	r := mod(a-lo, 2*math.Pi) + lo
	// Floor rounding can land exactly on the open end.
	if r >= lo+2*math.Pi {
		r = lo
	}
	return r
}

// WrapDelta maps an angular difference into (-π, π], the shortest rotation
// between two angles.
func WrapDelta(d float64) float64 {
	r := math.Pi - mod(math.Pi-d, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}
