package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 1024, 8192} {
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{0, -2, 3, 1000, 6144} {
		if IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true", n)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) || IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Fatal("IsFinite misclassified a value")
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(10); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("LinearToDB(10) = %v, want 20", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestParabolicPeak(t *testing.T) {
	// y = -(x-0.25)^2 + 1 sampled at -1, 0, 1.
	f := func(x float64) float64 { return 1 - (x-0.25)*(x-0.25) }

	offset, value := ParabolicPeak(f(-1), f(0), f(1))
	if !NearlyEqual(offset, 0.25, 1e-12) {
		t.Fatalf("offset = %v, want 0.25", offset)
	}
	if !NearlyEqual(value, 1, 1e-12) {
		t.Fatalf("value = %v, want 1", value)
	}

	offset, value = ParabolicPeak(2, 2, 2)
	if offset != 0 || value != 2 {
		t.Fatalf("flat neighborhood = (%v, %v), want (0, 2)", offset, value)
	}

	offset, value = ParabolicPeak(0.5, 1, 0.5)
	if offset != 0 || math.Signbit(offset) || value != 1 {
		t.Fatalf("symmetric neighborhood = (%v, %v), want (+0, 1)", offset, value)
	}
}
