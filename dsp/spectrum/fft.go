package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-tuner/dsp/core"
	"gonum.org/v1/gonum/dsp/fourier"
)

// realFFT returns the one-sided DFT of x: len(x)/2+1 bins.
// Power-of-two sizes use an algo-fft plan; other sizes use gonum's
// mixed-radix transform.
func realFFT(x []float64) ([]complex128, error) {
	n := len(x)
	switch {
	case n == 0:
		return nil, nil
	case n == 1:
		return []complex128{complex(x[0], 0)}, nil
	case !core.IsPowerOfTwo(n):
		return fourier.NewFFT(n).Coefficients(nil, x), nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan %d: %w", n, err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: fft forward %d: %w", n, err)
	}

	return out[:n/2+1], nil
}
