package spectrum

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidGrid is returned by InterpolateLinear for malformed sample points.
var ErrInvalidGrid = errors.New("spectrum: invalid interpolation grid")

// InterpolateLinear evaluates the piecewise-linear curve through (x[i], y[i])
// at every queryX. Queries outside [x[0], x[len(x)-1]] take the nearest end
// value and queries equal to a sample point return its y exactly.
//
// x must be strictly increasing and have the same length as y.
func InterpolateLinear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("%w: empty x or y", ErrInvalidGrid)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: x/y length mismatch: %d != %d", ErrInvalidGrid, len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("%w: x not strictly increasing at index %d", ErrInvalidGrid, i)
		}
	}

	last := len(x) - 1
	out := make([]float64, len(queryX))
	for i, q := range queryX {
		switch {
		case q <= x[0]:
			out[i] = y[0]
			continue
		case q >= x[last]:
			out[i] = y[last]
			continue
		}

		j := sort.SearchFloat64s(x, q)
		if x[j] == q {
			out[i] = y[j]
			continue
		}
		t := (q - x[j-1]) / (x[j] - x[j-1])
		out[i] = y[j-1] + t*(y[j]-y[j-1])
	}
	return out, nil
}
