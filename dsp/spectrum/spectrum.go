package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// splitPool recycles the real/imaginary planes used to hand bins to vecmath.
var splitPool = sync.Pool{
	New: func() any { return new([]float64) },
}

// Magnitude returns |X[k]| for every bin of a one-sided spectrum.
// Only the returned slice is allocated once the pool is warm.
func Magnitude(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}

	planes := splitPool.Get().(*[]float64)
	defer splitPool.Put(planes)

	n := len(bins)
	*planes = core.EnsureLen(*planes, 2*n)
	re := (*planes)[:n]
	im := (*planes)[n : 2*n]
	for k, c := range bins {
		re[k], im[k] = real(c), imag(c)
	}

	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)
	return mag
}
