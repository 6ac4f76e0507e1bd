package analysis

import (
	"context"
	"time"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"golang.org/x/sync/errgroup"
)

// ClipResult is the outcome of one clip in a batch. Exactly one of Report
// and Err is set.
type ClipResult struct {
	Name   string
	Report *Report
	Err    error
}

// RunBatch analyzes clips with at most cfg.Workers clips in flight and
// returns one result per clip in input order. A failing clip does not stop
// the others; once ctx is done, remaining clips fail with ctx.Err().
func RunBatch(ctx context.Context, clips []Clip, cfg Config, opts ...Option) []ClipResult {
	o := newRunOptions(opts)
	start := time.Now()

	limit := core.Parallelism(cfg.Workers)

	// Parallelism is across clips when there are several.
	clipCfg := cfg
	if len(clips) > 1 {
		clipCfg.Workers = 1
	}

	out := make([]ClipResult, len(clips))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, clip := range clips {
		g.Go(func() error {
			out[i].Name = clip.Name
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}

			log := o.logger.With("clip", clip.Name)
			rep, err := run(ctx, clip, clipCfg, log)
			if err != nil {
				log.Error("clip failed", "err", err)
				out[i].Err = err
				return nil
			}
			out[i].Report = rep
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range out {
		if r.Err != nil {
			failed++
		}
	}
	o.logger.Info("batch finished", "clips", len(clips), "failed", failed, "elapsed", time.Since(start))
	return out
}
