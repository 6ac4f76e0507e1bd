package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	x, err := g.Sine(1000, 1, 128)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(x) != 128 {
		t.Fatalf("len = %d, want 128", len(x))
	}
}

func TestGeneratorSampleRate(t *testing.T) {
	if got := NewGenerator().SampleRate(); got != 48000 {
		t.Fatalf("SampleRate() = %v, want 48000", got)
	}
	if got := NewGenerator(core.WithSampleRate(44100)).SampleRate(); got != 44100 {
		t.Fatalf("SampleRate() = %v, want 44100", got)
	}
}

func TestNoteHarmonics(t *testing.T) {
	const sr = 8000.0
	g := NewGenerator(core.WithSampleRate(sr))

	x, err := g.Note(1000, 1, 10, 0, 8000)
	if err != nil {
		t.Fatalf("Note() error = %v", err)
	}

	// Partials 4..10 fall at or above Nyquist; only 1..3 remain.
	want := make([]float64, len(x))
	for k := 1; k <= 3; k++ {
		step := 2 * math.Pi * 1000 * float64(k) / sr
		for i := range want {
			want[i] += math.Sin(step*float64(i)) / float64(k)
		}
	}
	for i := range x {
		if math.Abs(x[i]-want[i]) > 1e-9 {
			t.Fatalf("sample %d = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestNoteDecay(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	x, err := g.Note(10, 1, 1, 0.1, 1000)
	if err != nil {
		t.Fatalf("Note() error = %v", err)
	}

	peak := func(s []float64) float64 {
		m := 0.0
		for _, v := range s {
			m = math.Max(m, math.Abs(v))
		}
		return m
	}
	if head, tail := peak(x[:200]), peak(x[800:]); tail >= head*0.01 {
		t.Fatalf("tail peak %v not decayed relative to head %v", tail, head)
	}
}

func TestNoteErrors(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	cases := []struct {
		name      string
		freq      float64
		harmonics int
		decay     float64
		n         int
	}{
		{name: "samples", freq: 10, harmonics: 1, n: 0},
		{name: "frequency", freq: 0, harmonics: 1, n: 10},
		{name: "harmonics", freq: 10, harmonics: 0, n: 10},
		{name: "decay", freq: 10, harmonics: 1, decay: -1, n: 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Note(tc.freq, 1, tc.harmonics, tc.decay, tc.n)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Note() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
