package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// Generator synthesizes reference tones at a fixed sample rate.
type Generator struct {
	sampleRate float64
}

// NewGenerator returns a Generator using the processor sample rate
// (48 kHz unless overridden).
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{sampleRate: core.ApplyProcessorOptions(opts...).SampleRate}
}

// SampleRate returns the generator rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Sine returns samples of amplitude*sin(2*pi*freqHz*t).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Note(freqHz, amplitude, 1, 0, samples)
}

// Note returns a decaying harmonic tone resembling a plucked string.
// Partial k (1-based) has frequency k*freqHz and amplitude amplitude/k.
// Partials at or above Nyquist are dropped. decaySeconds is the time
// constant of the exponential envelope; zero holds the level.
func (g *Generator) Note(freqHz, amplitude float64, harmonics int, decaySeconds float64, samples int) ([]float64, error) {
	switch {
	case samples <= 0:
		return nil, fmt.Errorf("%w: note length %d", ErrInvalidConfig, samples)
	case freqHz <= 0 || !core.IsFinite(freqHz):
		return nil, fmt.Errorf("%w: note frequency %v", ErrInvalidConfig, freqHz)
	case harmonics < 1:
		return nil, fmt.Errorf("%w: note harmonics %d", ErrInvalidConfig, harmonics)
	case decaySeconds < 0:
		return nil, fmt.Errorf("%w: note decay %v", ErrInvalidConfig, decaySeconds)
	}

	out := make([]float64, samples)
	for k := 1; k <= harmonics; k++ {
		f := freqHz * float64(k)
		if f >= g.sampleRate/2 {
			break
		}
		w := 2 * math.Pi * f / g.sampleRate
		a := amplitude / float64(k)
		for i := range out {
			out[i] += a * math.Sin(w*float64(i))
		}
	}

	if decaySeconds == 0 {
		return out, nil
	}
	tau := decaySeconds * g.sampleRate
	for i := range out {
		out[i] *= math.Exp(-float64(i) / tau)
	}
	return out, nil
}
