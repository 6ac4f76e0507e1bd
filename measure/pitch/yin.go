package pitch

import (
	"math"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// Confidence describes how a frame estimate was obtained.
type Confidence uint8

const (
	// ConfidenceNone marks a frame without a usable estimate.
	ConfidenceNone Confidence = iota
	// ConfidenceThreshold marks a trough that cleared the threshold.
	ConfidenceThreshold
	// ConfidenceFallback marks the global CMNDF minimum used because no
	// trough cleared the threshold.
	ConfidenceFallback
)

// String returns the confidence name.
func (c Confidence) String() string {
	switch c {
	case ConfidenceThreshold:
		return "threshold"
	case ConfidenceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// estimate is the per-frame result of the YIN pass.
type estimate struct {
	freq         float64
	aperiodicity float64
	confidence   Confidence
}

// yin holds scratch buffers for one worker.
type yin struct {
	sampleRate float64
	minFreq    float64
	maxFreq    float64
	threshold  float64
	window     int
	minLag     int
	maxLag     int
	diff       []float64
}

func newYIN(p Params, sampleRate float64) *yin {
	minLag, maxLag := p.lagRange(sampleRate)
	return &yin{
		sampleRate: sampleRate,
		minFreq:    p.MinFrequency,
		maxFreq:    p.MaxFrequency,
		threshold:  p.TroughThreshold,
		window:     p.FrameLength / 2,
		minLag:     minLag,
		maxLag:     maxLag,
		diff:       make([]float64, maxLag+1),
	}
}

// estimate runs YIN on one frame. len(frame) must be >= window+maxLag.
func (y *yin) estimate(frame []float64) estimate {
	missing := estimate{freq: math.NaN(), aperiodicity: 1, confidence: ConfidenceNone}

	d := y.diff
	d[0] = 0
	for tau := 1; tau <= y.maxLag; tau++ {
		var sum float64
		shifted := frame[tau : tau+y.window]
		for j, v := range frame[:y.window] {
			delta := v - shifted[j]
			sum += delta * delta
		}
		d[tau] = sum
	}

	// Cumulative mean normalized difference, in place.
	var running float64
	d[0] = 1
	for tau := 1; tau <= y.maxLag; tau++ {
		running += d[tau]
		if running == 0 {
			d[tau] = 1
			continue
		}
		d[tau] *= float64(tau) / running
	}
	if running == 0 {
		return missing
	}

	tau, conf := y.pickLag(d)

	refined, value := float64(tau), d[tau]
	if tau > 1 && tau < y.maxLag {
		offset, v := core.ParabolicPeak(d[tau-1], d[tau], d[tau+1])
		refined += offset
		value = v
	}

	freq := y.sampleRate / refined
	if !core.IsFinite(freq) || freq < y.minFreq || freq > y.maxFreq {
		return estimate{freq: math.NaN(), aperiodicity: core.Clamp(value, 0, 1), confidence: ConfidenceNone}
	}

	return estimate{freq: freq, aperiodicity: core.Clamp(value, 0, 1), confidence: conf}
}

// pickLag returns the first trough below the threshold, or the global
// minimum of the search range when none qualifies.
func (y *yin) pickLag(d []float64) (int, Confidence) {
	for tau := y.minLag; tau <= y.maxLag; tau++ {
		if d[tau] >= y.threshold {
			continue
		}
		for tau+1 <= y.maxLag && d[tau+1] < d[tau] {
			tau++
		}
		return tau, ConfidenceThreshold
	}

	best := y.minLag
	for tau := y.minLag + 1; tau <= y.maxLag; tau++ {
		if d[tau] < d[best] {
			best = tau
		}
	}
	return best, ConfidenceFallback
}
