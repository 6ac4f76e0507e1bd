package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/window"
	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidSize is returned for a non-positive FFT size.
	ErrInvalidSize = errors.New("spectrum: invalid FFT size")
	// ErrInsufficientSamples is returned when the buffer is shorter than the FFT size.
	ErrInsufficientSamples = errors.New("spectrum: fewer samples than FFT size")
	// ErrInvalidSampleRate is returned for a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("spectrum: invalid sample rate")
)

// Config selects one spectral view.
type Config struct {
	FFTSize int
	Window  window.Type
}

// String returns a compact label such as "hann/4096".
func (c Config) String() string {
	return fmt.Sprintf("%s/%d", c.Window, c.FFTSize)
}

// Check reports whether c can be analyzed over a buffer of n samples,
// returning the error Analyze would: window.ErrUnsupported, ErrInvalidSize
// or ErrInsufficientSamples.
func (c Config) Check(n int) error {
	if !c.Window.Valid() {
		return fmt.Errorf("%w: %v", window.ErrUnsupported, c.Window)
	}
	if c.FFTSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, c.FFTSize)
	}
	if c.FFTSize > n {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientSamples, c.FFTSize, n)
	}
	return nil
}

// DefaultConfigs returns the resolution (2048 vs 8192, Hann) and window
// (Hann vs Hamming at 4096) comparisons.
func DefaultConfigs() []Config {
	return []Config{
		{FFTSize: 2048, Window: window.TypeHann},
		{FFTSize: 8192, Window: window.TypeHann},
		{FFTSize: 4096, Window: window.TypeHann},
		{FFTSize: 4096, Window: window.TypeHamming},
	}
}

// Result is a one-sided magnitude spectrum.
// Frequencies[k] = k*SampleRate/FFTSize for k in [0, FFTSize/2].
type Result struct {
	Frequencies []float64
	Magnitudes  []float64
	FFTSize     int
	Window      window.Type
	SampleRate  float64
}

// Config returns the configuration that produced r.
func (r Result) Config() Config {
	return Config{FFTSize: r.FFTSize, Window: r.Window}
}

// BinWidth returns the frequency resolution in Hz.
func (r Result) BinWidth() float64 {
	if r.FFTSize <= 0 {
		return 0
	}
	return r.SampleRate / float64(r.FFTSize)
}

// Peak returns the frequency and magnitude of the largest non-DC bin,
// refined by parabolic interpolation of the neighbouring bins. It returns
// NaN for spectra without non-DC bins.
func (r Result) Peak() (freq, mag float64) {
	if len(r.Magnitudes) < 2 {
		return math.NaN(), math.NaN()
	}

	k := floats.MaxIdx(r.Magnitudes[1:]) + 1
	if k == len(r.Magnitudes)-1 {
		return r.Frequencies[k], r.Magnitudes[k]
	}

	offset, value := core.ParabolicPeak(r.Magnitudes[k-1], r.Magnitudes[k], r.Magnitudes[k+1])
	return (float64(k) + offset) * r.BinWidth(), value
}

// Analyze returns the magnitude spectrum of the first fftSize samples
// multiplied by a symmetric w window. Magnitudes are unnormalized |X[k]|.
// samples is not modified.
func Analyze(samples []float64, sampleRate float64, fftSize int, w window.Type) (Result, error) {
	if err := (Config{FFTSize: fftSize, Window: w}).Check(len(samples)); err != nil {
		return Result{}, err
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	coeffs, err := window.Coefficients(w, fftSize)
	if err != nil {
		return Result{}, err
	}

	frame := make([]float64, fftSize)
	vecmath.MulBlock(frame, samples[:fftSize], coeffs)

	bins, err := realFFT(frame)
	if err != nil {
		return Result{}, err
	}

	freqs := make([]float64, len(bins))
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(fftSize)
	}

	return Result{
		Frequencies: freqs,
		Magnitudes:  Magnitude(bins),
		FFTSize:     fftSize,
		Window:      w,
		SampleRate:  sampleRate,
	}, nil
}

// AnalyzeAll runs Analyze for every configuration concurrently and returns
// the results in request order. The first error is returned.
func AnalyzeAll(samples []float64, sampleRate float64, configs []Config) ([]Result, error) {
	out := make([]Result, len(configs))

	var g errgroup.Group
	for i, cfg := range configs {
		g.Go(func() error {
			res, err := Analyze(samples, sampleRate, cfg.FFTSize, cfg.Window)
			if err != nil {
				return fmt.Errorf("%s: %w", cfg, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
