package tuning

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	nan := math.NaN()
	s := Summarize(ErrorCurve{-10, 0, 2, 4, nan, 14}, 4)

	if s.Count != 5 || s.Missing != 1 {
		t.Fatalf("count=%d missing=%d, want 5 1", s.Count, s.Missing)
	}
	if s.Mean != 2 {
		t.Fatalf("Mean = %v, want 2", s.Mean)
	}
	if s.Median != 2 {
		t.Fatalf("Median = %v, want 2", s.Median)
	}
	if s.Min != -10 || s.Max != 14 {
		t.Fatalf("range = [%v,%v], want [-10,14]", s.Min, s.Max)
	}
	// population std dev of {-10,0,2,4,14}: variance (144+4+0+4+144)/5
	if want := math.Sqrt(296.0 / 5); math.Abs(s.StdDev-want) > 1e-12 {
		t.Fatalf("StdDev = %v, want %v", s.StdDev, want)
	}
	if s.MeanAbsolute != 6 {
		t.Fatalf("MeanAbsolute = %v, want 6", s.MeanAbsolute)
	}
	if s.WithinTolerance != 0.6 {
		t.Fatalf("WithinTolerance = %v, want 0.6", s.WithinTolerance)
	}

	h := s.Histogram
	if len(h.Edges) != 5 || len(h.Counts) != 4 {
		t.Fatalf("histogram shape = %d edges %d counts", len(h.Edges), len(h.Counts))
	}
	wantEdges := []float64{-10, -4, 2, 8, 14}
	wantCounts := []float64{1, 1, 2, 1}
	for i := range wantEdges {
		if math.Abs(h.Edges[i]-wantEdges[i]) > 1e-12 {
			t.Fatalf("edges = %v, want %v", h.Edges, wantEdges)
		}
	}
	for i := range wantCounts {
		if h.Counts[i] != wantCounts[i] {
			t.Fatalf("counts = %v, want %v", h.Counts, wantCounts)
		}
	}
}

func TestSummarizeAllMissing(t *testing.T) {
	s := Summarize(ErrorCurve{math.NaN(), math.NaN()}, 10)
	if s.Count != 0 || s.Missing != 2 {
		t.Fatalf("count=%d missing=%d", s.Count, s.Missing)
	}
	if !math.IsNaN(s.Mean) || !math.IsNaN(s.Median) || s.Histogram.Counts != nil {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestSummarizeConstant(t *testing.T) {
	s := Summarize(ErrorCurve{3, 3, 3}, 3)
	if s.StdDev != 0 || s.Mean != 3 {
		t.Fatalf("summary = %+v", s)
	}
	total := 0.0
	for _, c := range s.Histogram.Counts {
		total += c
	}
	if total != 3 {
		t.Fatalf("histogram total = %v, want 3", total)
	}
}

func TestSummarizeNoHistogram(t *testing.T) {
	s := Summarize(ErrorCurve{1, 2}, 0)
	if s.Histogram.Edges != nil {
		t.Fatalf("histogram = %+v, want empty", s.Histogram)
	}
}

func TestSummarizeEvenMedian(t *testing.T) {
	s := Summarize(ErrorCurve{4, 1, 3, 2}, 0)
	if s.Median != 2.5 {
		t.Fatalf("Median = %v, want 2.5", s.Median)
	}
}
