package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidFrequency is returned for a target frequency outside (0, Nyquist).
var ErrInvalidFrequency = errors.New("spectrum: invalid target frequency")

// goertzel evaluates one DFT term at an arbitrary frequency.
type goertzel struct {
	coeff  float64
	s0, s1 float64
}

func newGoertzel(frequency, sampleRate float64) goertzel {
	return goertzel{coeff: 2 * math.Cos(2*math.Pi*frequency/sampleRate)}
}

func (g *goertzel) processBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// power is equivalent to |X(f)|^2 of a DFT over the processed block.
func (g *goertzel) power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Partial is the level of one harmonic of a known fundamental.
type Partial struct {
	// Harmonic is the 1-based harmonic number.
	Harmonic  int
	Frequency float64
	// Magnitude is the unnormalized |X(f)| of the windowed block.
	Magnitude float64
	// RelativeDB is the level relative to the fundamental.
	RelativeDB float64
}

// Partials measures the first count harmonics of fundamental over the whole
// of samples after applying a symmetric w window. Harmonics at or above
// Nyquist are omitted.
func Partials(samples []float64, sampleRate, fundamental float64, count int, w window.Type) ([]Partial, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %v", window.ErrUnsupported, w)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if !(fundamental > 0) || fundamental >= sampleRate/2 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, fundamental)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInsufficientSamples)
	}

	block := make([]float64, len(samples))
	vecmath.MulBlock(block, samples, window.Generate(w, len(samples)))

	out := make([]Partial, 0, count)
	for k := 1; k <= count; k++ {
		f := fundamental * float64(k)
		if f >= sampleRate/2 {
			break
		}

		g := newGoertzel(f, sampleRate)
		g.processBlock(block)

		mag := math.Sqrt(math.Max(g.power(), 0))
		out = append(out, Partial{Harmonic: k, Frequency: f, Magnitude: mag})
	}

	if len(out) > 0 && out[0].Magnitude > 0 {
		ref := out[0].Magnitude
		for i := range out {
			out[i].RelativeDB = core.LinearToDB(out[i].Magnitude / ref)
		}
	}
	return out, nil
}
