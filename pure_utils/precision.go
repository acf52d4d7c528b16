package pure_utils

import (
	"math"
	"strconv"
)

// DefaultSignificantFigures is the precision used when comparing a submitted
// value against a recomputed or declared one. It tolerates serialization
// round-trip noise without hiding genuine disagreements.
const DefaultSignificantFigures = 7

// RoundHalfUp rounds to the nearest integer, with ties going away from zero.
func RoundHalfUp(v float64) float64 {
	if v < 0 {
		return -math.Floor(-v + 0.5)
	}
	return math.Floor(v + 0.5)
}

// ToPrecision rounds value to the given number of significant figures using
// round-half-up semantics. Zero, NaN and infinities are returned unchanged.
func ToPrecision(value float64, sigFigs int) float64 {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	exponent := math.Floor(math.Log10(math.Abs(value)))
	scale := math.Pow(10, float64(sigFigs-1)-exponent)
	return RoundHalfUp(value*scale) / scale
}

// AlmostEqual compares two floats after rounding both to sigFigs significant
// figures.
func AlmostEqual(a, b float64, sigFigs int) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return ToPrecision(a, sigFigs) == ToPrecision(b, sigFigs)
}

// FormatToPrecision renders a float with the given number of significant
// figures, the default display applied when a test has no format string.
func FormatToPrecision(value float64, sigFigs int) string {
	return strconv.FormatFloat(ToPrecision(value, sigFigs), 'g', sigFigs, 64)
}
