package analysis

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-tuner/dsp/resample"
	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/cwbudde/algo-tuner/dsp/spectrum"
	"github.com/cwbudde/algo-tuner/dsp/window"
	"github.com/cwbudde/algo-tuner/measure/pitch"
)

// Config holds every tunable of a Run.
type Config struct {
	TargetSampleRate float64          `yaml:"target_sample_rate" json:"target_sample_rate"`
	ResampleQuality  resample.Quality `yaml:"resample_quality" json:"resample_quality"`
	AttackSeconds    float64          `yaml:"attack_seconds" json:"attack_seconds"`
	MinimumLength    int              `yaml:"minimum_length" json:"minimum_length"`

	FrameLength     int     `yaml:"frame_length" json:"frame_length"`
	HopLength       int     `yaml:"hop_length" json:"hop_length"`
	MinFrequency    float64 `yaml:"fmin" json:"fmin"`
	MaxFrequency    float64 `yaml:"fmax" json:"fmax"`
	TroughThreshold float64 `yaml:"trough_threshold" json:"trough_threshold"`
	SmoothWindow    int     `yaml:"smooth_window" json:"smooth_window"`

	FFTSizes []int         `yaml:"fft_sizes" json:"fft_sizes"`
	Windows  []window.Type `yaml:"windows" json:"windows"`
	// DescriptorMaxHz limits spectral descriptors to (0, DescriptorMaxHz];
	// zero describes the whole spectrum.
	DescriptorMaxHz float64 `yaml:"descriptor_max_hz" json:"descriptor_max_hz"`
	// Partials is the number of harmonics measured at the reference pitch.
	Partials int `yaml:"partials" json:"partials"`

	HistogramBins int `yaml:"histogram_bins" json:"histogram_bins"`
	// Workers bounds clip-level parallelism in RunBatch and frame-level
	// parallelism in pitch tracking; <= 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultConfig returns the settings used for guitar string recordings.
func DefaultConfig() Config {
	cond := signal.DefaultConditionConfig()
	p := pitch.DefaultParams()
	return Config{
		TargetSampleRate: cond.TargetSampleRate,
		ResampleQuality:  cond.Quality,
		AttackSeconds:    cond.AttackSeconds,
		MinimumLength:    cond.MinimumLength,
		FrameLength:      p.FrameLength,
		HopLength:        p.HopLength,
		MinFrequency:     p.MinFrequency,
		MaxFrequency:     p.MaxFrequency,
		TroughThreshold:  p.TroughThreshold,
		SmoothWindow:     p.SmoothWindow,
		FFTSizes:         []int{2048, 4096, 8192},
		Windows:          []window.Type{window.TypeHann, window.TypeHamming},
		DescriptorMaxHz:  2000,
		Partials:         8,
		HistogramBins:    50,
	}
}

// ConditionConfig returns the conditioning part of c.
func (c Config) ConditionConfig() signal.ConditionConfig {
	return signal.ConditionConfig{
		TargetSampleRate: c.TargetSampleRate,
		AttackSeconds:    c.AttackSeconds,
		MinimumLength:    c.MinimumLength,
		Quality:          c.ResampleQuality,
	}
}

// PitchParams returns the pitch tracking part of c.
func (c Config) PitchParams() pitch.Params {
	return pitch.Params{
		FrameLength:     c.FrameLength,
		HopLength:       c.HopLength,
		MinFrequency:    c.MinFrequency,
		MaxFrequency:    c.MaxFrequency,
		TroughThreshold: c.TroughThreshold,
		SmoothWindow:    c.SmoothWindow,
		Workers:         c.Workers,
	}
}

// SpectrumConfigs returns every FFT size combined with every window, sizes
// ascending and windows in configured order.
func (c Config) SpectrumConfigs() []spectrum.Config {
	sizes := slices.Clone(c.FFTSizes)
	slices.Sort(sizes)
	sizes = slices.Compact(sizes)

	out := make([]spectrum.Config, 0, len(sizes)*len(c.Windows))
	for _, n := range sizes {
		for _, w := range c.Windows {
			out = append(out, spectrum.Config{FFTSize: n, Window: w})
		}
	}
	return out
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var errs []error

	if err := c.ConditionConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.PitchParams().Validate(c.TargetSampleRate); err != nil {
		errs = append(errs, err)
	}
	if len(c.FFTSizes) == 0 {
		errs = append(errs, errors.New("fft_sizes must not be empty"))
	}
	for _, n := range c.FFTSizes {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("fft_sizes: %w: %d", spectrum.ErrInvalidSize, n))
		}
	}
	if len(c.Windows) == 0 {
		errs = append(errs, errors.New("windows must not be empty"))
	}
	for _, w := range c.Windows {
		if !w.Valid() {
			errs = append(errs, fmt.Errorf("windows: %w: %v", window.ErrUnsupported, w))
		}
	}
	if c.DescriptorMaxHz < 0 {
		errs = append(errs, fmt.Errorf("descriptor_max_hz must be >= 0: %v", c.DescriptorMaxHz))
	}
	if c.Partials < 0 {
		errs = append(errs, fmt.Errorf("partials must be >= 0: %d", c.Partials))
	}
	if c.HistogramBins < 0 {
		errs = append(errs, fmt.Errorf("histogram_bins must be >= 0: %d", c.HistogramBins))
	}

	return errors.Join(errs...)
}
