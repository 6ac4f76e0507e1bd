package config

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-tuner/analysis"
	"github.com/cwbudde/algo-tuner/dsp/resample"
	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/cwbudde/algo-tuner/dsp/window"
	"github.com/cwbudde/algo-tuner/internal/testutil"
	"github.com/cwbudde/algo-tuner/internal/wavio"
	"github.com/cwbudde/algo-tuner/measure/tuning"
)

const sample = `
analysis:
  fft_sizes: [2048, 8192]
  windows: [hann, blackman-harris]
  smooth_window: 7
  resample_quality: best
clips:
  - name: A2
    path: note_A2.wav
    reference_hz: 110
  - name: D3
    path: /abs/note_D3.wav
    note: D3
`

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	a := cfg.Analysis
	if len(a.FFTSizes) != 2 || a.FFTSizes[1] != 8192 {
		t.Fatalf("fft_sizes = %v", a.FFTSizes)
	}
	if len(a.Windows) != 2 || a.Windows[1] != window.TypeBlackmanHarris {
		t.Fatalf("windows = %v", a.Windows)
	}
	if a.SmoothWindow != 7 || a.ResampleQuality != resample.QualityBest {
		t.Fatalf("smooth = %d quality = %v", a.SmoothWindow, a.ResampleQuality)
	}
	// Untouched keys keep their defaults.
	if a.FrameLength != 2048 || a.MaxFrequency != 400 {
		t.Fatalf("defaults lost: %+v", a)
	}

	if len(cfg.Clips) != 2 {
		t.Fatalf("clips = %d, want 2", len(cfg.Clips))
	}
	ref, err := cfg.Clips[1].Reference()
	if err != nil {
		t.Fatalf("Reference() error = %v", err)
	}
	if math.Abs(ref-146.832) > 1e-3 {
		t.Fatalf("D3 reference = %v", ref)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("analysis:\n  fft_size: 1024\n"))
	if err == nil || !strings.Contains(err.Error(), "fft_size") {
		t.Fatalf("LoadFromReader() error = %v, want unknown field error", err)
	}
}

func TestValidateAggregates(t *testing.T) {
	doc := `
analysis:
  fmin: 500
clips:
  - name: x
    path: a.wav
  - name: x
    note: H2
  - path: c.wav
    note: A2
    reference_hz: 110
`
	_, err := LoadFromReader(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, tuning.ErrInvalidReference) || !errors.Is(err, tuning.ErrInvalidNote) {
		t.Fatalf("error %v misses wrapped sentinels", err)
	}
	for _, want := range []string{"analysis", "duplicated", "clips[1].path", "clips[2].name", "not both"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if len(cfg.Clips) != 0 || cfg.Analysis.FrameLength != 2048 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadResolvesAndReadsClips(t *testing.T) {
	dir := t.TempDir()
	x := testutil.PluckedNote(196, 48000, 4, 1, 9600)
	for i := range x {
		x[i] *= 0.5
	}
	if err := wavio.Write(filepath.Join(dir, "g3.wav"), signal.Raw{Data: x, Channels: 1, SampleRate: 48000}, 16); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	path := filepath.Join(dir, "clips.yaml")
	doc := "clips:\n  - name: G3\n    path: g3.wav\n    note: G3\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.ClipPath(cfg.Clips[0]); got != filepath.Join(dir, "g3.wav") {
		t.Fatalf("ClipPath() = %q", got)
	}

	clips, err := cfg.LoadClips()
	if err != nil {
		t.Fatalf("LoadClips() error = %v", err)
	}
	if len(clips) != 1 || math.Abs(clips[0].ReferenceHz-196) > 0.01 {
		t.Fatalf("clips = %+v", clips)
	}
	raw, err := clips[0].Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if raw.Frames() != 9600 || raw.SampleRate != 48000 {
		t.Fatalf("decoded %d frames at %v Hz, want 9600 at 48000", raw.Frames(), raw.SampleRate)
	}
}

func TestUnreadableClipFailsAlone(t *testing.T) {
	dir := t.TempDir()
	x := testutil.PluckedNote(147, 48000, 4, 1, 24000)
	for i := range x {
		x[i] *= 0.5
	}
	if err := wavio.Write(filepath.Join(dir, "d3.wav"), signal.Raw{Data: x, Channels: 1, SampleRate: 48000}, 16); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.wav"), []byte("RIFF garbage"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	path := filepath.Join(dir, "clips.yaml")
	doc := `clips:
  - name: A2
    path: missing.wav
    note: A2
  - name: D3
    path: d3.wav
    note: D3
  - name: G3
    path: bad.wav
    note: G3
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	clips, err := cfg.LoadClips()
	if err != nil {
		t.Fatalf("LoadClips() error = %v", err)
	}

	results := analysis.RunBatch(context.Background(), clips, cfg.Analysis)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if !errors.Is(results[0].Err, os.ErrNotExist) {
		t.Fatalf("A2 error = %v, want not exist", results[0].Err)
	}
	if results[1].Err != nil || results[1].Report == nil {
		t.Fatalf("D3 = %+v, want a report", results[1])
	}
	if results[1].Report.Summary.Count == 0 {
		t.Fatal("D3 produced no pitch estimates")
	}
	if !errors.Is(results[2].Err, wavio.ErrInvalidFile) {
		t.Fatalf("G3 error = %v, want ErrInvalidFile", results[2].Err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want not exist", err)
	}
}
