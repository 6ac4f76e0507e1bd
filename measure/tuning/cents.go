package tuning

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidReference is returned for a reference frequency that is not a
// positive finite number.
var ErrInvalidReference = errors.New("tuning: invalid reference frequency")

// ErrorCurve holds the per-frame deviation in cents. Missing frames are NaN.
type ErrorCurve []float64

// Cents returns 1200*log2(f/referenceHz) for every entry of curve. Missing
// (NaN) entries stay missing.
func Cents(curve []float64, referenceHz float64) (ErrorCurve, error) {
	if !validReference(referenceHz) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReference, referenceHz)
	}

	out := make(ErrorCurve, len(curve))
	for i, f := range curve {
		out[i] = centsOf(f, referenceHz)
	}
	return out, nil
}

// CentsBetween returns the interval from referenceHz to f in cents. It
// returns NaN when either argument is not a positive number.
func CentsBetween(f, referenceHz float64) float64 {
	if !validReference(referenceHz) {
		return math.NaN()
	}
	return centsOf(f, referenceHz)
}

func centsOf(f, ref float64) float64 {
	if math.IsNaN(f) || f <= 0 {
		return math.NaN()
	}
	return 1200 * math.Log2(f/ref)
}

func validReference(ref float64) bool {
	return ref > 0 && !math.IsInf(ref, 0)
}
