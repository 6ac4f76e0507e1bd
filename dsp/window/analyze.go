package window

import (
	"math"
	"math/cmplx"
)

// Analysis holds spectral properties measured from window coefficients.
// Bandwidths and positions are in bins of a transform the window's length.
type Analysis struct {
	// CoherentGain is sum(w)/N, the amplitude a bin-centered tone keeps.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width.
	Bandwidth3dB float64
	// FirstNull is the distance from DC to the first response minimum.
	FirstNull float64
	// HighestSidelobeDB is the largest response past FirstNull relative to DC.
	HighestSidelobeDB float64
	// ScallopLossDB is the response half a bin off center relative to DC.
	ScallopLossDB float64
}

// scanSteps is the number of evaluation points per bin in coarse scans.
const scanSteps = 8

// Analyze measures coefficients by evaluating their DTFT numerically.
func Analyze(coeffs []float64) (Analysis, error) {
	enbw, err := EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return Analysis{}, err
	}

	n := float64(len(coeffs))
	dc := power(coeffs, 0)

	var sum float64
	for _, c := range coeffs {
		sum += c
	}

	null := firstNull(coeffs, dc)
	return Analysis{
		CoherentGain:      sum / n,
		ENBW:              enbw,
		Bandwidth3dB:      halfPowerWidth(coeffs, dc),
		FirstNull:         null,
		HighestSidelobeDB: highestSidelobe(coeffs, dc, null),
		ScallopLossDB:     10 * math.Log10(power(coeffs, 0.5)/dc),
	}, nil
}

// power returns |W(f)|^2 with f in bins of len(coeffs).
func power(coeffs []float64, bins float64) float64 {
	step := cmplx.Rect(1, -2*math.Pi*bins/float64(len(coeffs)))
	rot := complex(1, 0)
	var acc complex128
	for _, c := range coeffs {
		acc += complex(c, 0) * rot
		rot *= step
	}
	re, im := real(acc), imag(acc)
	return re*re + im*im
}

// halfPowerWidth bisects for the -3 dB point of the main lobe.
func halfPowerWidth(coeffs []float64, dc float64) float64 {
	lo, hi := 0.0, float64(len(coeffs))/2
	for range 80 {
		mid := 0.5 * (lo + hi)
		if power(coeffs, mid) > 0.5*dc {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 2 * lo
}

// firstNull scans outward from DC for the first local minimum once the
// response has fallen below a tenth of DC, then refines it by golden-section
// search. The tenth keeps flat-top plateaus from reading as nulls.
func firstNull(coeffs []float64, dc float64) float64 {
	const step = 1.0 / scanSteps
	nyquist := float64(len(coeffs)) / 2

	coarse := step
	prev := dc
	for f := step; f < nyquist; f += step {
		v := power(coeffs, f)
		if prev < 0.1*dc && v > prev {
			coarse = f - step
			break
		}
		prev = v
	}

	a := math.Max(coarse-2*step, 0)
	b := math.Min(coarse+2*step, nyquist)
	const phi = 0.6180339887498949
	for range 80 {
		c := b - phi*(b-a)
		d := a + phi*(b-a)
		if power(coeffs, c) < power(coeffs, d) {
			b = d
		} else {
			a = c
		}
	}
	return 0.5 * (a + b)
}

// highestSidelobe returns the peak response past the first null in dB
// relative to DC.
func highestSidelobe(coeffs []float64, dc, null float64) float64 {
	const step = 1.0 / scanSteps
	nyquist := float64(len(coeffs)) / 2

	peak, at := 0.0, null
	for f := null; f < nyquist; f += step {
		if v := power(coeffs, f); v > peak {
			peak, at = v, f
		}
	}
	for f := math.Max(at-step, 0); f <= at+step; f += step / 32 {
		peak = math.Max(peak, power(coeffs, f))
	}

	if peak <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(peak/dc)
}
