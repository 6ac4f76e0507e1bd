package pitch

import (
	"fmt"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/signal"
	"golang.org/x/sync/errgroup"
)

// Track estimates the f0 trajectory of buf and post-processes it.
//
// The returned curve has p.FrameCount(buf.Len()) entries; frame i starts at
// sample i*p.HopLength. Raw and Confidence describe the frame estimates,
// Frequencies the result of PostProcess.
func Track(buf signal.Buffer, p Params) (Curve, error) {
	c, err := Estimate(buf, p)
	if err != nil {
		return Curve{}, err
	}
	c.Frequencies = PostProcess(c.Raw, p.MinFrequency, p.MaxFrequency, p.SmoothWindow)
	return c, nil
}

// Estimate runs the frame-local YIN pass only. Frequencies equals Raw.
func Estimate(buf signal.Buffer, p Params) (Curve, error) {
	if err := p.Validate(buf.SampleRate); err != nil {
		return Curve{}, err
	}
	if buf.Len() < p.FrameLength {
		return Curve{}, fmt.Errorf("%w: %d samples, frame length %d",
			ErrInsufficientSamples, buf.Len(), p.FrameLength)
	}

	frames := p.FrameCount(buf.Len())
	c := Curve{
		Raw:          make([]float64, frames),
		Aperiodicity: make([]float64, frames),
		Confidence:   make([]Confidence, frames),
		HopLength:    p.HopLength,
		SampleRate:   buf.SampleRate,
	}

	workers := min(core.Parallelism(p.Workers), frames)
	chunk := (frames + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < frames; start += chunk {
		end := min(start+chunk, frames)
		g.Go(func() error {
			y := newYIN(p, buf.SampleRate)
			for i := start; i < end; i++ {
				off := i * p.HopLength
				e := y.estimate(buf.Samples[off : off+p.FrameLength])
				c.Raw[i] = e.freq
				c.Aperiodicity[i] = e.aperiodicity
				c.Confidence[i] = e.confidence
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Curve{}, err
	}

	c.Frequencies = append([]float64(nil), c.Raw...)
	return c, nil
}
