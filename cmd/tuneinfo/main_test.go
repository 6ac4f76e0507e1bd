package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-tuner/analysis"
)

func TestRunDemoText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), options{demo: true, logLevel: "error"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"A2", "D3", "G3", "B3", "hamming", "8192", "partials:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDemoJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), options{demo: true, jsonOut: true, logLevel: "warn", workers: 2}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var got []struct {
		Name    string `json:"name"`
		Nearest string `json:"nearest_note"`
		Cents   struct {
			Median *float64 `json:"median"`
		} `json:"cents"`
		Spectra []struct {
			Window  string `json:"window"`
			FFTSize int    `json:"fft_size"`
		} `json:"spectra"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if len(got) != 4 {
		t.Fatalf("clips = %d, want 4", len(got))
	}

	// D3 = 146.83 Hz measured against 147 Hz and B3 = 246.94 Hz against 247 Hz.
	want := map[string]float64{"A2": 0, "D3": -1.98, "G3": 0.0, "B3": -0.41}
	for _, c := range got {
		if c.Cents.Median == nil {
			t.Fatalf("%s: missing median", c.Name)
		}
		if math.Abs(*c.Cents.Median-want[c.Name]) > 1.5 {
			t.Fatalf("%s: median = %v cents, want ~%v", c.Name, *c.Cents.Median, want[c.Name])
		}
		if c.Nearest != c.Name {
			t.Fatalf("%s: nearest = %q", c.Name, c.Nearest)
		}
		if len(c.Spectra) != 6 || c.Spectra[0].Window != "hann" || c.Spectra[0].FFTSize != 2048 {
			t.Fatalf("%s: spectra = %+v", c.Name, c.Spectra)
		}
	}
}

func TestRunConfigWithFailingClip(t *testing.T) {
	dir := t.TempDir()
	if err := writeDemo(dir, mustDemo(t)); err != nil {
		t.Fatalf("writeDemo() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("not audio"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	doc := "clips:\n  - name: A2\n    path: note_A2.wav\n    note: A2\n"
	path := filepath.Join(dir, "clips.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), options{configPath: path, logLevel: "info"}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "A2") {
		t.Fatalf("output = %s", stdout.String())
	}

	broken := doc +
		"  - name: X\n    path: broken.wav\n    reference_hz: 100\n" +
		"  - name: Y\n    path: missing.wav\n    reference_hz: 100\n"
	if err := os.WriteFile(path, []byte(broken), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	stdout.Reset()
	err := run(context.Background(), options{configPath: path, logLevel: "info"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "2 of 3 clips failed") {
		t.Fatalf("run() error = %v, want 2 of 3 clips failed", err)
	}
	out := stdout.String()
	for _, want := range []string{"A2 spectra", "X  ", "Y  ", "error:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	if err := run(ctx, options{logLevel: "warn"}, &stdout, &stderr); err == nil {
		t.Fatal("expected error without a mode")
	}
	if err := run(ctx, options{demo: true, configPath: "x.yaml", logLevel: "warn"}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for -config with -demo")
	}
	if err := run(ctx, options{demo: true, logLevel: "loud"}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestRunWindows(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), options{windows: true, size: 1024}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"hann", "blackman-harris", "flat-top", "1.500", "-31.5", "-13.3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFloat(t *testing.T) {
	b, err := json.Marshal([]jsonFloat{1.5, jsonFloat(math.NaN()), jsonFloat(math.Inf(1))})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != "[1.5,null,null]" {
		t.Fatalf("Marshal() = %s", b)
	}
}

func mustDemo(t *testing.T) []analysis.Clip {
	t.Helper()
	clips, err := demoClips(48000)
	if err != nil {
		t.Fatalf("demoClips() error = %v", err)
	}
	return clips
}
