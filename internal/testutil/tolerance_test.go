package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1.0, 2.0, 3.0}, []float64{1.0, 2.1, 3.0})
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS(DC(-2, 16)); got != 2 {
		t.Fatalf("RMS(DC) = %v, want 2", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}
}

func TestZeroCrossingFrequency(t *testing.T) {
	s := DeterministicSine(440.5, 44100, 0.7, 44100)
	if got := ZeroCrossingFrequency(s[10:], 44100); math.Abs(got-440.5) > 0.01 {
		t.Fatalf("ZeroCrossingFrequency = %v, want 440.5", got)
	}
	if got := ZeroCrossingFrequency(DC(1, 8), 48000); got != 0 {
		t.Fatalf("ZeroCrossingFrequency(DC) = %v, want 0", got)
	}
}
