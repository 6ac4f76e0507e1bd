package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/cwbudde/algo-tuner/dsp/spectrum"
	"github.com/cwbudde/algo-tuner/dsp/window"
	"github.com/cwbudde/algo-tuner/measure/pitch"
	"github.com/cwbudde/algo-tuner/measure/tuning"
	"github.com/cwbudde/algo-tuner/stats/frequency"
	"golang.org/x/sync/errgroup"
)

// ErrNoClipName is returned for clips without a name.
var ErrNoClipName = errors.New("analysis: clip name is empty")

// lowConfidenceShare is the fraction of fallback frames above which a
// curve is reported as unreliable.
const lowConfidenceShare = 0.5

// Clip is one recording to analyze.
type Clip struct {
	Name        string
	Raw         signal.Raw
	// Load, when set, supplies Raw at analysis time. A Load error fails
	// only this clip.
	Load        func() (signal.Raw, error)
	ReferenceHz float64
}

// SkippedSpectrum is a configured spectrum that could not be computed.
// Err wraps spectrum.ErrInsufficientSamples.
type SkippedSpectrum struct {
	Config spectrum.Config
	Err    error
}

// Report is the outcome of a Run.
type Report struct {
	Name        string
	ReferenceHz float64

	Buffer signal.Buffer
	// Padded is set when the trimmed clip was shorter than MinimumLength.
	Padded bool

	Pitch   pitch.Curve
	Cents   tuning.ErrorCurve
	Summary tuning.Summary
	// MedianHz is the median post-processed f0, NaN without estimates.
	MedianHz     float64
	NearestNote  tuning.Note
	NearestCents float64

	Spectra     []spectrum.Result
	Descriptors []frequency.Stats
	// Skipped lists spectral configurations larger than the buffer.
	Skipped  []SkippedSpectrum
	Partials []spectrum.Partial

	Elapsed time.Duration
}

// Option configures Run and RunBatch.
type Option func(*runOptions)

type runOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func newRunOptions(opts []Option) runOptions {
	o := runOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Run analyzes one clip. ctx is checked between stages.
func Run(ctx context.Context, clip Clip, cfg Config, opts ...Option) (*Report, error) {
	o := newRunOptions(opts)
	return run(ctx, clip, cfg, o.logger.With("clip", clip.Name))
}

func run(ctx context.Context, clip Clip, cfg Config, log *slog.Logger) (*Report, error) {
	start := time.Now()

	if clip.Name == "" {
		return nil, ErrNoClipName
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis: config: %w", err)
	}
	if !(clip.ReferenceHz > 0) || math.IsInf(clip.ReferenceHz, 0) {
		return nil, fmt.Errorf("%w: %s: %v", tuning.ErrInvalidReference, clip.Name, clip.ReferenceHz)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := clip.Raw
	if clip.Load != nil {
		var err error
		if raw, err = clip.Load(); err != nil {
			return nil, fmt.Errorf("analysis: load %s: %w", clip.Name, err)
		}
		log.Debug("loaded", "frames", raw.Frames(), "channels", raw.Channels, "sample_rate", raw.SampleRate)
	}

	buf, err := signal.Condition(raw, cfg.ConditionConfig())
	if err != nil {
		return nil, fmt.Errorf("analysis: condition %s: %w", clip.Name, err)
	}

	rep := &Report{
		Name:        clip.Name,
		ReferenceHz: clip.ReferenceHz,
		Buffer:      buf,
		Padded:      trimmedLength(raw, cfg.AttackSeconds) < cfg.MinimumLength,
	}
	if rep.Padded {
		log.Warn("clip shorter than minimum length after attack trim, zero-padded",
			"minimum_length", cfg.MinimumLength)
	}
	log.Debug("conditioned", "samples", buf.Len(), "sample_rate", buf.SampleRate,
		"elapsed", time.Since(start))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pitchBranch(gctx, rep, cfg, log) })
	g.Go(func() error { return spectralBranch(gctx, rep, cfg, log) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.Elapsed = time.Since(start)
	log.Debug("analyzed", "elapsed", rep.Elapsed)
	return rep, nil
}

func pitchBranch(ctx context.Context, rep *Report, cfg Config, log *slog.Logger) error {
	start := time.Now()

	curve, err := pitch.Track(rep.Buffer, cfg.PitchParams())
	if err != nil {
		return fmt.Errorf("analysis: pitch %s: %w", rep.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cents, err := tuning.Cents(curve.Frequencies, rep.ReferenceHz)
	if err != nil {
		return fmt.Errorf("analysis: cents %s: %w", rep.Name, err)
	}

	rep.Pitch = curve
	rep.Cents = cents
	rep.Summary = tuning.Summarize(cents, cfg.HistogramBins)
	rep.MedianHz = math.NaN()
	if rep.Summary.Count > 0 {
		rep.MedianHz = rep.ReferenceHz * math.Exp2(rep.Summary.Median/1200)
		note, cents, err := tuning.NearestNote(rep.MedianHz)
		if err != nil {
			return fmt.Errorf("analysis: nearest note %s: %w", rep.Name, err)
		}
		rep.NearestNote, rep.NearestCents = note, cents
	}

	switch {
	case curve.Voiced() == 0:
		log.Warn("no frame produced a pitch estimate", "frames", curve.Len())
	case float64(curve.FallbackFrames()) > lowConfidenceShare*float64(curve.Len()):
		log.Warn("most frames used the fallback minimum",
			"fallback", curve.FallbackFrames(), "frames", curve.Len())
	case curve.FallbackFrames() > 0:
		log.Info("some frames used the fallback minimum",
			"fallback", curve.FallbackFrames(), "frames", curve.Len())
	}
	log.Debug("pitch tracked", "frames", curve.Len(), "voiced", curve.Voiced(),
		"mean_cents", rep.Summary.Mean, "elapsed", time.Since(start))
	return nil
}

func spectralBranch(ctx context.Context, rep *Report, cfg Config, log *slog.Logger) error {
	start := time.Now()
	buf := rep.Buffer

	var configs []spectrum.Config
	for _, sc := range cfg.SpectrumConfigs() {
		err := sc.Check(buf.Len())
		switch {
		case errors.Is(err, spectrum.ErrInsufficientSamples):
			rep.Skipped = append(rep.Skipped, SkippedSpectrum{Config: sc, Err: err})
			log.Warn("spectrum skipped", "config", sc.String(), "err", err)
			continue
		case err != nil:
			return fmt.Errorf("analysis: spectrum %s: %w", rep.Name, err)
		}
		configs = append(configs, sc)
	}

	results, err := spectrum.AnalyzeAll(buf.Samples, buf.SampleRate, configs)
	if err != nil {
		return fmt.Errorf("analysis: spectrum %s: %w", rep.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	maxHz := cfg.DescriptorMaxHz
	if maxHz == 0 {
		maxHz = math.Inf(1)
	}
	rep.Spectra = results
	rep.Descriptors = make([]frequency.Stats, len(results))
	for i, res := range results {
		rep.Descriptors[i] = frequency.DescribeBand(res, math.SmallestNonzeroFloat64, maxHz)
	}

	if cfg.Partials > 0 && rep.ReferenceHz < buf.SampleRate/2 {
		parts, err := spectrum.Partials(buf.Samples, buf.SampleRate, rep.ReferenceHz, cfg.Partials, window.TypeHann)
		if err != nil {
			return fmt.Errorf("analysis: partials %s: %w", rep.Name, err)
		}
		rep.Partials = parts
	}

	log.Debug("spectra computed", "count", len(results), "skipped", len(rep.Skipped),
		"elapsed", time.Since(start))
	return nil
}

// trimmedLength is the per-channel sample count left after the attack trim,
// measured at the raw rate.
func trimmedLength(raw signal.Raw, attackSeconds float64) int {
	return raw.Frames() - int(attackSeconds*raw.SampleRate)
}
