package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/resample"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// ConditionConfig controls Condition.
type ConditionConfig struct {
	// TargetSampleRate is the rate of the returned buffer in Hz.
	TargetSampleRate float64
	// AttackSeconds of leading signal are discarded after normalization.
	AttackSeconds float64
	// MinimumLength is the minimum number of output samples; shorter
	// signals are right-padded with zeros.
	MinimumLength int
	// Quality selects the resampler profile.
	Quality resample.Quality
}

// DefaultConditionConfig returns the analysis defaults.
func DefaultConditionConfig() ConditionConfig {
	return ConditionConfig{
		TargetSampleRate: core.AnalysisSampleRate,
		AttackSeconds:    0.05,
		MinimumLength:    4096,
		Quality:          resample.QualityBalanced,
	}
}

// Validate reports the first problem with cfg.
func (c ConditionConfig) Validate() error {
	switch {
	case !(c.TargetSampleRate > 0) || math.IsInf(c.TargetSampleRate, 0):
		return fmt.Errorf("%w: target sample rate must be > 0: %v", ErrInvalidConfig, c.TargetSampleRate)
	case c.AttackSeconds < 0 || math.IsNaN(c.AttackSeconds):
		return fmt.Errorf("%w: attack must be >= 0: %v", ErrInvalidConfig, c.AttackSeconds)
	case c.MinimumLength < 0:
		return fmt.Errorf("%w: minimum length must be >= 0: %d", ErrInvalidConfig, c.MinimumLength)
	}
	return nil
}

// Condition turns decoder output into a mono analysis buffer.
//
// The first channel is taken without mixing, scaled so its peak magnitude is
// 1, trimmed by AttackSeconds (measured at the raw rate), zero-padded to
// MinimumLength, resampled to TargetSampleRate and padded again if the
// conversion left it shorter than MinimumLength.
func Condition(raw Raw, cfg ConditionConfig) (Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return Buffer{}, err
	}
	if len(raw.Data) == 0 {
		return Buffer{}, fmt.Errorf("%w: empty input", ErrInvalidConfig)
	}
	if !(raw.SampleRate > 0) || math.IsInf(raw.SampleRate, 0) {
		return Buffer{}, fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidConfig, raw.SampleRate)
	}

	mono, err := raw.Channel(0)
	if err != nil {
		return Buffer{}, err
	}
	if len(mono) == 0 {
		return Buffer{}, fmt.Errorf("%w: input holds less than one frame", ErrInvalidConfig)
	}

	if err := normalizePeak(mono); err != nil {
		return Buffer{}, err
	}

	trim := int(cfg.AttackSeconds * raw.SampleRate)
	if trim >= len(mono) {
		return Buffer{}, fmt.Errorf("%w: trimming %d of %d samples", ErrInsufficientSignal, trim, len(mono))
	}
	mono = core.ZeroPad(mono[trim:], cfg.MinimumLength)

	out, err := resample.Convert(mono, raw.SampleRate, cfg.TargetSampleRate, resample.WithQuality(cfg.Quality))
	if err != nil {
		return Buffer{}, fmt.Errorf("signal: resample: %w", err)
	}

	return Buffer{
		Samples:    core.ZeroPad(out, cfg.MinimumLength),
		SampleRate: cfg.TargetSampleRate,
	}, nil
}

// normalizePeak scales x in place so that max |x| == 1.
func normalizePeak(x []float64) error {
	if floats.HasNaN(x) {
		return fmt.Errorf("%w: NaN samples", ErrInvalidConfig)
	}
	peak := math.Max(floats.Max(x), -floats.Min(x))
	if peak == 0 {
		return ErrSilentSignal
	}
	if math.IsInf(peak, 0) {
		return fmt.Errorf("%w: non-finite samples", ErrInvalidConfig)
	}
	vecmath.ScaleBlock(x, x, 1/peak)
	return nil
}
