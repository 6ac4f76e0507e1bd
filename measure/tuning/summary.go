package tuning

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// InTuneCents is the deviation treated as in tune by Summary.WithinTolerance.
const InTuneCents = 5.0

// Histogram is a fixed-width histogram. Counts[i] covers
// [Edges[i], Edges[i+1]); the last bin is closed.
type Histogram struct {
	Edges  []float64
	Counts []float64
}

// Summary describes an ErrorCurve. Statistics cover valid entries only and
// are NaN when there are none.
type Summary struct {
	Count   int
	Missing int

	Mean         float64
	StdDev       float64
	Median       float64
	Min          float64
	Max          float64
	MeanAbsolute float64
	// WithinTolerance is the share of valid frames within +/-InTuneCents.
	WithinTolerance float64

	Histogram Histogram
}

// Summarize computes descriptive statistics and a histogram with the given
// number of bins over [Min, Max]. bins < 1 omits the histogram.
func Summarize(ec ErrorCurve, bins int) Summary {
	valid := make([]float64, 0, len(ec))
	for _, v := range ec {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	s := Summary{Count: len(valid), Missing: len(ec) - len(valid)}
	if len(valid) == 0 {
		nan := math.NaN()
		s.Mean, s.StdDev, s.Median, s.Min, s.Max, s.MeanAbsolute, s.WithinTolerance = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	slices.Sort(valid)
	s.Mean, s.StdDev = stat.PopMeanStdDev(valid, nil)
	s.Median = median(valid)
	s.Min = valid[0]
	s.Max = valid[len(valid)-1]

	abs := make([]float64, len(valid))
	inTune := 0
	for i, v := range valid {
		abs[i] = math.Abs(v)
		if abs[i] <= InTuneCents {
			inTune++
		}
	}
	s.MeanAbsolute = floats.Sum(abs) / float64(len(abs))
	s.WithinTolerance = float64(inTune) / float64(len(valid))

	if bins > 0 {
		s.Histogram = histogram(valid, bins)
	}
	return s
}

// median of sorted values; even lengths average the two middle values.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

// histogram bins sorted values into equal-width bins over their range.
func histogram(sorted []float64, bins int) Histogram {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)

	// stat.Histogram wants the last divider strictly above the largest value.
	dividers := slices.Clone(edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	return Histogram{Edges: edges, Counts: counts}
}
