package pitch

import "math"

// Curve is a per-frame f0 trajectory.
type Curve struct {
	// Frequencies holds the post-processed estimates in Hz.
	Frequencies []float64
	// Raw holds the frame estimates before post-processing.
	Raw []float64
	// Aperiodicity is the CMNDF value at the selected lag, in [0, 1].
	Aperiodicity []float64
	// Confidence records how each raw estimate was obtained.
	Confidence []Confidence
	HopLength  int
	SampleRate float64
}

// IsMissing reports whether v marks a missing estimate.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Len returns the number of frames.
func (c Curve) Len() int { return len(c.Frequencies) }

// Times returns the start time of every frame in seconds.
func (c Curve) Times() []float64 {
	out := make([]float64, len(c.Frequencies))
	if c.SampleRate <= 0 {
		return out
	}
	for i := range out {
		out[i] = float64(i*c.HopLength) / c.SampleRate
	}
	return out
}

// Valid returns the number of non-missing post-processed estimates.
func (c Curve) Valid() int { return countValid(c.Frequencies) }

// Voiced returns the number of frames with a raw estimate.
func (c Curve) Voiced() int { return countValid(c.Raw) }

// FallbackFrames returns the number of frames resolved by the global
// minimum fallback.
func (c Curve) FallbackFrames() int {
	n := 0
	for _, conf := range c.Confidence {
		if conf == ConfidenceFallback {
			n++
		}
	}
	return n
}

func countValid(x []float64) int {
	n := 0
	for _, v := range x {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}
