package pitch

import (
	"math"

	"github.com/cwbudde/algo-tuner/dsp/spectrum"
)

// PostProcess applies Gate, Smooth and FillGaps in that order and returns a
// new slice of the same length.
func PostProcess(f0 []float64, minFreq, maxFreq float64, smoothWindow int) []float64 {
	return FillGaps(Smooth(Gate(f0, minFreq, maxFreq), smoothWindow))
}

// Gate returns a copy of f0 with estimates outside [minFreq, maxFreq] marked
// missing.
func Gate(f0 []float64, minFreq, maxFreq float64) []float64 {
	out := make([]float64, len(f0))
	for i, v := range f0 {
		if IsMissing(v) || v < minFreq || v > maxFreq {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

// Smooth returns a centered moving average of width w over f0. Missing
// entries are excluded from each average, the window is truncated at the
// curve edges and a neighbourhood without valid entries stays missing.
// Curves shorter than w and widths below 2 are returned unchanged.
func Smooth(f0 []float64, w int) []float64 {
	out := make([]float64, len(f0))
	if w < 2 || len(f0) < w {
		copy(out, f0)
		return out
	}

	for i := range f0 {
		lo := max(i-w/2, 0)
		hi := min(i-w/2+w, len(f0))

		var sum float64
		n := 0
		for _, v := range f0[lo:hi] {
			if IsMissing(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// FillGaps replaces missing entries by linear interpolation between the
// nearest valid entries by index. Leading and trailing gaps take the nearest
// valid value. With fewer than two valid entries f0 is returned unchanged.
func FillGaps(f0 []float64) []float64 {
	out := make([]float64, len(f0))
	copy(out, f0)

	idx := make([]float64, 0, len(f0))
	vals := make([]float64, 0, len(f0))
	for i, v := range f0 {
		if !IsMissing(v) {
			idx = append(idx, float64(i))
			vals = append(vals, v)
		}
	}
	if len(idx) < 2 {
		return out
	}

	frames := make([]float64, len(f0))
	for i := range frames {
		frames[i] = float64(i)
	}
	// idx is strictly increasing and matches vals, so the grid is valid.
	filled, err := spectrum.InterpolateLinear(idx, vals, frames)
	if err != nil {
		return out
	}
	return filled
}
