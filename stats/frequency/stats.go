package frequency

import (
	"math"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/spectrum"
	"github.com/cwbudde/algo-tuner/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Stats holds descriptors of one magnitude spectrum, restricted to a band.
type Stats struct {
	FFTSize  int
	Window   window.Type
	BinWidth float64
	// Low and High are the band limits in Hz.
	Low  float64
	High float64

	PeakFrequency float64 // parabolic peak estimate (Hz)
	PeakMagnitude float64
	PeakDB        float64
	Energy        float64 // sum of squared magnitudes in band

	Centroid  float64 // spectral centroid (Hz)
	Spread    float64 // spectral spread (Hz)
	Flatness  float64 // spectral flatness (Wiener entropy), 0..1
	Rolloff   float64 // frequency below which 85% of the energy lies (Hz)
	Bandwidth float64 // 3 dB bandwidth around the peak (Hz)
}

// RolloffFraction is the energy fraction used for Stats.Rolloff.
const RolloffFraction = 0.85

// Describe computes Stats over the whole spectrum except the DC bin.
func Describe(res spectrum.Result) Stats {
	return DescribeBand(res, math.SmallestNonzeroFloat64, math.Inf(1))
}

// DescribeBand computes Stats over bins with low <= f <= high.
// Empty bands yield NaN descriptors.
func DescribeBand(res spectrum.Result, low, high float64) Stats {
	s := Stats{
		FFTSize:  res.FFTSize,
		Window:   res.Window,
		BinWidth: res.BinWidth(),
		Low:      low,
		High:     high,
	}

	lo, hi := bandIndices(res.Frequencies, low, high)
	if lo >= hi {
		nan := math.NaN()
		s.PeakFrequency, s.PeakMagnitude, s.PeakDB = nan, nan, nan
		s.Centroid, s.Spread, s.Flatness, s.Rolloff, s.Bandwidth = nan, nan, nan, nan, nan
		return s
	}

	freqs := res.Frequencies[lo:hi]
	mag := res.Magnitudes[lo:hi]

	k := floats.MaxIdx(mag)
	s.PeakFrequency, s.PeakMagnitude = freqs[k], mag[k]
	if k > 0 && k < len(mag)-1 {
		offset, v := core.ParabolicPeak(mag[k-1], mag[k], mag[k+1])
		s.PeakFrequency += offset * s.BinWidth
		s.PeakMagnitude = v
	}
	s.PeakDB = core.LinearToDB(s.PeakMagnitude)

	sum := floats.Sum(mag)
	s.Energy = floats.Dot(mag, mag)
	s.Centroid = centroid(freqs, mag, sum)
	s.Spread = spread(freqs, mag, s.Centroid, sum)
	s.Flatness = Flatness(mag)
	s.Rolloff = rolloff(freqs, mag, RolloffFraction, s.Energy)
	s.Bandwidth = bandwidth(freqs, mag, k)

	return s
}

// bandIndices returns the half-open index range of freqs inside [low, high].
// freqs must be ascending.
func bandIndices(freqs []float64, low, high float64) (int, int) {
	lo := 0
	for lo < len(freqs) && freqs[lo] < low {
		lo++
	}
	hi := lo
	for hi < len(freqs) && freqs[hi] <= high {
		hi++
	}
	return lo, hi
}

// Centroid returns the magnitude-weighted mean frequency.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(freqs, magnitude []float64) float64 {
	return centroid(freqs, magnitude, floats.Sum(magnitude))
}

func centroid(freqs, magnitude []float64, sumMag float64) float64 {
	if len(magnitude) == 0 || sumMag == 0 {
		return 0
	}
	return floats.Dot(freqs, magnitude) / sumMag
}

// spread is the standard deviation of the spectrum around the centroid.
func spread(freqs, magnitude []float64, cent, sumMag float64) float64 {
	if len(magnitude) == 0 || sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := freqs[i] - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
//	Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// If any bin is zero the geometric mean, and thus the flatness, is zero.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n == 0 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range magnitude {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(n)) / (sumLin / float64(n))
}

func rolloff(freqs, magnitude []float64, percent, totalEnergy float64) float64 {
	if len(magnitude) == 0 || totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// bandwidth returns the distance between the -3 dB points on both sides of
// the peak bin, linearly interpolated between bins.
func bandwidth(freqs, magnitude []float64, peakBin int) float64 {
	n := len(magnitude)
	peakVal := magnitude[peakBin]
	if n < 2 || peakVal == 0 {
		return 0
	}

	threshold := peakVal / math.Sqrt2

	lowerFreq := freqs[0]
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lowerFreq = interpFreq(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upperFreq := freqs[n-1]
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upperFreq = interpFreq(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	return math.Max(upperFreq-lowerFreq, 0)
}

// interpFreq finds where the magnitude crosses threshold between two bins.
func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}
