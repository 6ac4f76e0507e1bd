package window

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzeKnownWindows(t *testing.T) {
	tests := []struct {
		typ       Type
		enbw      float64
		bw3dB     float64
		null      float64
		sidelobe  float64
		scallop   float64
		tolerance float64
	}{
		{typ: TypeRectangular, enbw: 1, bw3dB: 0.886, null: 1, sidelobe: -13.26, scallop: -3.92, tolerance: 0.05},
		{typ: TypeHann, enbw: 1.5, bw3dB: 1.44, null: 2, sidelobe: -31.47, scallop: -1.42, tolerance: 0.05},
		{typ: TypeHamming, enbw: 1.363, bw3dB: 1.30, null: 2, sidelobe: -42.7, scallop: -1.75, tolerance: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			coeffs, err := Coefficients(tt.typ, 256, WithPeriodic())
			if err != nil {
				t.Fatalf("Coefficients() error = %v", err)
			}
			got, err := Analyze(coeffs)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}

			checks := []struct {
				name      string
				got, want float64
			}{
				{"ENBW", got.ENBW, tt.enbw},
				{"Bandwidth3dB", got.Bandwidth3dB, tt.bw3dB},
				{"FirstNull", got.FirstNull, tt.null},
				{"HighestSidelobeDB", got.HighestSidelobeDB, tt.sidelobe},
				{"ScallopLossDB", got.ScallopLossDB, tt.scallop},
			}
			for _, c := range checks {
				if !almostEqual(c.got, c.want, tt.tolerance) {
					t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
				}
			}
		})
	}
}

func TestAnalyzeMatchesMetadataOrdering(t *testing.T) {
	// Lower sidelobes cost main lobe width.
	measure := func(typ Type) Analysis {
		coeffs, err := Coefficients(typ, 128, WithPeriodic())
		if err != nil {
			t.Fatalf("Coefficients(%s) error = %v", typ, err)
		}
		a, err := Analyze(coeffs)
		if err != nil {
			t.Fatalf("Analyze(%s) error = %v", typ, err)
		}
		return a
	}

	hann, blackman := measure(TypeHann), measure(TypeBlackmanHarris)
	if !(blackman.HighestSidelobeDB < hann.HighestSidelobeDB) || !(blackman.ENBW > hann.ENBW) {
		t.Fatalf("blackman-harris %+v not lower/wider than hann %+v", blackman, hann)
	}

	flat := measure(TypeFlatTop)
	if math.Abs(flat.ScallopLossDB) > 0.1 {
		t.Fatalf("flat-top scallop loss = %v dB, want ~0", flat.ScallopLossDB)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil); !errors.Is(err, errEmptyCoeffs) {
		t.Fatalf("Analyze(nil) error = %v, want errEmptyCoeffs", err)
	}
	if _, err := Analyze([]float64{1, -1}); !errors.Is(err, errZeroCoherentGain) {
		t.Fatalf("Analyze(zero sum) error = %v, want errZeroCoherentGain", err)
	}
}
