package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-tuner/dsp/window"
	"github.com/cwbudde/algo-tuner/internal/testutil"
)

func TestGoertzelMatchesDFT(t *testing.T) {
	sampleRate := 48000.0
	freq0 := 1234.5
	sig := testutil.DeterministicSine(1000, sampleRate, 1.0, 1024)

	g := newGoertzel(freq0, sampleRate)
	g.processBlock(sig[:500])
	g.processBlock(sig[500:])

	var dft complex128
	for n, x := range sig {
		angle := -2 * math.Pi * freq0 / sampleRate * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}
	want := real(dft)*real(dft) + imag(dft)*imag(dft)

	if got := g.power(); math.Abs(got-want) > 1e-7*want {
		t.Fatalf("power = %v, want %v", got, want)
	}
}

func TestPartials(t *testing.T) {
	const sr = 48000.0
	x := testutil.PluckedNote(110, sr, 4, 0, 48000)

	parts, err := Partials(x, sr, 110, 6, window.TypeHann)
	if err != nil {
		t.Fatalf("Partials() error = %v", err)
	}
	if len(parts) != 6 {
		t.Fatalf("partials = %d, want 6", len(parts))
	}

	for _, p := range parts[:4] {
		want := 20 * math.Log10(1/float64(p.Harmonic))
		if math.Abs(p.RelativeDB-want) > 0.1 {
			t.Fatalf("harmonic %d: %v dB, want %v dB", p.Harmonic, p.RelativeDB, want)
		}
		if p.Frequency != 110*float64(p.Harmonic) {
			t.Fatalf("harmonic %d frequency = %v", p.Harmonic, p.Frequency)
		}
	}
	// Harmonics 5 and 6 are absent from the signal.
	for _, p := range parts[4:] {
		if p.RelativeDB > -60 {
			t.Fatalf("harmonic %d: %v dB, want < -60 dB", p.Harmonic, p.RelativeDB)
		}
	}
}

func TestPartialsStopsAtNyquist(t *testing.T) {
	parts, err := Partials(testutil.DeterministicSine(300, 1000, 1, 1000), 1000, 300, 5, window.TypeHann)
	if err != nil {
		t.Fatalf("Partials() error = %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("partials = %d, want 1", len(parts))
	}
	if parts[0].RelativeDB != 0 {
		t.Fatalf("fundamental level = %v, want 0", parts[0].RelativeDB)
	}
}

func TestPartialsErrors(t *testing.T) {
	x := make([]float64, 64)
	tests := []struct {
		name string
		f    float64
		sr   float64
		x    []float64
		w    window.Type
		want error
	}{
		{name: "window", f: 100, sr: 1000, x: x, w: window.Type(-1), want: window.ErrUnsupported},
		{name: "rate", f: 100, sr: 0, x: x, w: window.TypeHann, want: ErrInvalidSampleRate},
		{name: "frequency", f: 600, sr: 1000, x: x, w: window.TypeHann, want: ErrInvalidFrequency},
		{name: "empty", f: 100, sr: 1000, x: nil, w: window.TypeHann, want: ErrInsufficientSamples},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Partials(tt.x, tt.sr, tt.f, 3, tt.w); !errors.Is(err, tt.want) {
				t.Fatalf("Partials() error = %v, want %v", err, tt.want)
			}
		})
	}
}
