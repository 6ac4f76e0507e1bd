package resample

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

var qualityNames = [...]string{QualityFast: "fast", QualityBalanced: "balanced", QualityBest: "best"}

// String returns the quality name.
func (q Quality) String() string {
	if q >= 0 && int(q) < len(qualityNames) {
		return qualityNames[q]
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if q < 0 || int(q) >= len(qualityNames) {
		return nil, fmt.Errorf("resample: unknown quality %d", int(q))
	}
	return []byte(qualityNames[q]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range qualityNames {
		if n == name {
			*q = Quality(i)
			return nil
		}
	}
	return fmt.Errorf("resample: unknown quality %q", text)
}

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
	maxDen       int
}

// Option configures the converter.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 equals the theoretical anti-aliasing cutoff.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta > 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithMaxDenominator caps denominator size for rate-ratio approximation.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		quality: QualityBalanced,
		maxDen:  4096,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := QualityProfile(cfg.quality)
	if cfg.tapsPerPhase <= 0 {
		cfg.tapsPerPhase = p.TapsPerPhase
	}
	if cfg.cutoffScale <= 0 || cfg.cutoffScale > 1 {
		cfg.cutoffScale = p.CutoffScale
	}
	if cfg.kaiserBeta <= 0 {
		cfg.kaiserBeta = p.KaiserBeta
	}

	return cfg
}

// Converter performs rational sample-rate conversion of whole buffers.
// It holds no per-call state and is safe for concurrent use.
type Converter struct {
	up      int
	down    int
	quality Quality

	taps   []float64
	phases [][]float64
	delay  int
}

// NewRational creates a converter for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Converter, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := newConfig(opts)

	taps, phases, err := designPolyphaseFIR(up, down, cfg)
	if err != nil {
		return nil, err
	}

	return &Converter{
		up:      up,
		down:    down,
		quality: cfg.quality,
		taps:    taps,
		phases:  phases,
		delay:   (len(taps) - 1) / 2,
	}, nil
}

// NewForRates creates a converter by approximating outRate/inRate as a ratio.
func NewForRates(inRate, outRate float64, opts ...Option) (*Converter, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, ErrInvalidRate
	}

	cfg := newConfig(opts)
	up, down := approximateRatio(outRate/inRate, cfg.maxDen)

	return NewRational(up, down, opts...)
}

// Convert resamples input from inRate to outRate in one shot. Equal rates
// return a copy of input.
func Convert(input []float64, inRate, outRate float64, opts ...Option) ([]float64, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, ErrInvalidRate
	}

	if inRate == outRate {
		return append([]float64(nil), input...), nil
	}

	c, err := NewForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	return c.Convert(input), nil
}

// Convert returns the resampled buffer. The filter delay is compensated, and
// the output holds OutputLen(len(input)) samples.
func (c *Converter) Convert(input []float64) []float64 {
	n := len(input)
	if n == 0 {
		return nil
	}

	if c.up == 1 && c.down == 1 {
		return append([]float64(nil), input...)
	}

	out := make([]float64, c.OutputLen(n))
	for m := range out {
		t := m*c.down + c.delay
		base := t / c.up

		var y float64
		for j, h := range c.phases[t%c.up] {
			idx := base - j
			if idx < 0 {
				break
			}
			if idx >= n {
				continue
			}
			y += h * input[idx]
		}

		out[m] = y
	}

	return out
}

// OutputLen returns the number of samples Convert produces for inputLen samples.
func (c *Converter) OutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}

	return (inputLen*c.up + c.down - 1) / c.down
}

// Ratio returns reduced up/down conversion factors.
func (c *Converter) Ratio() (up, down int) {
	return c.up, c.down
}

// Quality returns the configured quality mode.
func (c *Converter) Quality() Quality {
	return c.quality
}

// TapsPerPhase returns taps in the longest polyphase branch.
func (c *Converter) TapsPerPhase() int {
	if len(c.phases) == 0 {
		return 0
	}
	return len(c.phases[0])
}

// Prototype returns a copy of the underlying prototype FIR taps.
func (c *Converter) Prototype() []float64 {
	return append([]float64(nil), c.taps...)
}

func validRate(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}
