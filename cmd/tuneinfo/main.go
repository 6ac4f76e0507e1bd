// Command tuneinfo measures the tuning of recorded single-note clips.
//
// Usage:
//
//	tuneinfo [flags]
//
// It reads a YAML clip list, tracks the fundamental of every clip, reports
// the deviation from the target pitch in cents and compares magnitude
// spectra across FFT sizes and windows.
//
// Examples:
//
//	tuneinfo -config clips.yaml
//	tuneinfo -demo
//	tuneinfo -demo -write-demo ./notes
//	tuneinfo -config clips.yaml -json
//	tuneinfo -windows
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/cwbudde/algo-tuner/analysis"
	"github.com/cwbudde/algo-tuner/internal/config"
)

type options struct {
	configPath string
	demo       bool
	writeDemo  string
	jsonOut    bool
	windows    bool
	logLevel   string
	workers    int
	size       int
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML file with analysis settings and clips")
	flag.BoolVar(&o.demo, "demo", false, "analyze synthesized A2, D3, G3 and B3 notes")
	flag.StringVar(&o.writeDemo, "write-demo", "", "directory to write the synthesized notes as WAV")
	flag.BoolVar(&o.jsonOut, "json", false, "print summaries as JSON")
	flag.BoolVar(&o.windows, "windows", false, "measure the supported analysis windows and exit")
	flag.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flag.IntVar(&o.workers, "workers", 0, "clips analyzed in parallel (0 = GOMAXPROCS)")
	flag.IntVar(&o.size, "size", 1024, "window length measured by -windows")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tuneinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Measures the tuning of single-note recordings.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tuneinfo -config clips.yaml\n")
		fmt.Fprintf(os.Stderr, "  tuneinfo -demo -json\n")
		fmt.Fprintf(os.Stderr, "  tuneinfo -windows\n")
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, stdout, stderr io.Writer) error {
	if o.windows {
		return printWindows(stdout, o.size)
	}

	level, err := parseLevel(o.logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := analysis.DefaultConfig()
	var clips []analysis.Clip

	switch {
	case o.configPath != "" && o.demo:
		return fmt.Errorf("-config and -demo are mutually exclusive")
	case o.configPath != "":
		file, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = file.Analysis
		if clips, err = file.LoadClips(); err != nil {
			return err
		}
	case o.demo:
		if clips, err = demoClips(cfg.TargetSampleRate); err != nil {
			return err
		}
		if o.writeDemo != "" {
			if err := writeDemo(o.writeDemo, clips); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("nothing to do: pass -config, -demo or -windows")
	}

	if o.workers > 0 {
		cfg.Workers = o.workers
	}

	results := analysis.RunBatch(ctx, clips, cfg, analysis.WithLogger(logger))

	if o.jsonOut {
		err = printJSON(stdout, results)
	} else {
		err = printText(stdout, results)
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%d of %d clips failed", countFailed(results), len(results))
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid -log-level %q: %w", s, err)
	}
	return l, nil
}

func countFailed(results []analysis.ClipResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
