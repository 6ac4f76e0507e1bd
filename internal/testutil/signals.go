package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// PluckedNote generates a decaying harmonic tone resembling a plucked string:
// harmonic k has amplitude 1/k and all partials decay with the given time
// constant in seconds. A non-positive decay disables the envelope.
func PluckedNote(freqHz, sampleRate float64, harmonics int, decay float64, length int) []float64 {
	out := make([]float64, length)
	if harmonics < 1 {
		harmonics = 1
	}
	for i := range out {
		t := float64(i) / sampleRate
		env := 1.0
		if decay > 0 {
			env = math.Exp(-t / decay)
		}
		var v float64
		for k := 1; k <= harmonics; k++ {
			v += math.Sin(2*math.Pi*freqHz*float64(k)*t) / float64(k)
		}
		out[i] = env * v
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Interleave builds interleaved multi-channel data from per-channel slices.
// All channels must have the length of the first one.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	n := len(channels[0])
	out := make([]float64, n*len(channels))
	for i := range n {
		for c, ch := range channels {
			out[i*len(channels)+c] = ch[i]
		}
	}
	return out
}
