package pitch

import (
	"fmt"
	"math"
)

// Params configures Track.
type Params struct {
	// FrameLength is the analysis frame size in samples.
	FrameLength int
	// HopLength is the distance between frame starts in samples.
	HopLength int
	// MinFrequency and MaxFrequency bound the search range in Hz.
	MinFrequency float64
	MaxFrequency float64
	// TroughThreshold is the absolute CMNDF threshold.
	TroughThreshold float64
	// SmoothWindow is the moving-average width of the post-processing
	// pass. Values below 2 disable smoothing.
	SmoothWindow int
	// Workers bounds frame-level parallelism; <= 0 uses GOMAXPROCS.
	Workers int
}

// DefaultParams returns the defaults used for guitar string analysis.
func DefaultParams() Params {
	return Params{
		FrameLength:     2048,
		HopLength:       1024,
		MinFrequency:    50,
		MaxFrequency:    400,
		TroughThreshold: 0.1,
		SmoothWindow:    5,
	}
}

// Validate checks p against sampleRate.
func (p Params) Validate(sampleRate float64) error {
	switch {
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidParams, sampleRate)
	case p.FrameLength <= 0:
		return fmt.Errorf("%w: frame length must be > 0: %d", ErrInvalidParams, p.FrameLength)
	case p.HopLength <= 0:
		return fmt.Errorf("%w: hop length must be > 0: %d", ErrInvalidParams, p.HopLength)
	case !(p.MinFrequency > 0):
		return fmt.Errorf("%w: min frequency must be > 0: %v", ErrInvalidParams, p.MinFrequency)
	case !(p.MaxFrequency > p.MinFrequency) || math.IsInf(p.MaxFrequency, 0):
		return fmt.Errorf("%w: max frequency %v must exceed min frequency %v",
			ErrInvalidParams, p.MaxFrequency, p.MinFrequency)
	case !(p.TroughThreshold > 0):
		return fmt.Errorf("%w: trough threshold must be > 0: %v", ErrInvalidParams, p.TroughThreshold)
	case p.SmoothWindow < 0:
		return fmt.Errorf("%w: smooth window must be >= 0: %d", ErrInvalidParams, p.SmoothWindow)
	}

	minLag, maxLag := p.lagRange(sampleRate)
	if minLag > maxLag {
		return fmt.Errorf("%w: empty lag range [%d,%d] for frame length %d at %v Hz",
			ErrInvalidParams, minLag, maxLag, p.FrameLength, sampleRate)
	}
	return nil
}

// lagRange returns the inclusive lag search interval in samples.
func (p Params) lagRange(sampleRate float64) (minLag, maxLag int) {
	minLag = max(int(math.Floor(sampleRate/p.MaxFrequency)), 1)
	maxLag = min(int(math.Ceil(sampleRate/p.MinFrequency)), p.FrameLength/2)
	return minLag, maxLag
}

// FrameCount returns the number of complete frames in n samples.
func (p Params) FrameCount(n int) int {
	if p.FrameLength <= 0 || p.HopLength <= 0 || n < p.FrameLength {
		return 0
	}
	return (n-p.FrameLength)/p.HopLength + 1
}
