package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-tuner/analysis"
	"github.com/cwbudde/algo-tuner/dsp/window"
)

func printText(w io.Writer, results []analysis.ClipResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Clip\tRef [Hz]\tMedian [Hz]\tNearest\tMean [c]\tMedian [c]\tStd [c]\tMAE [c]\tIn tune\tFrames\tFallback\n")
	fmt.Fprintf(tw, "----\t--------\t-----------\t-------\t--------\t----------\t-------\t-------\t-------\t------\t--------\n")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\n", r.Name, r.Err)
			continue
		}
		rep := r.Report
		s := rep.Summary
		nearest := "-"
		if s.Count > 0 {
			nearest = fmt.Sprintf("%s %+.1fc", rep.NearestNote, rep.NearestCents)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\t%+.2f\t%+.2f\t%.2f\t%.2f\t%.0f%%\t%d/%d\t%d\n",
			rep.Name, rep.ReferenceHz, rep.MedianHz, nearest,
			s.Mean, s.Median, s.StdDev, s.MeanAbsolute, 100*s.WithinTolerance,
			rep.Pitch.Voiced(), rep.Pitch.Len(), rep.Pitch.FallbackFrames())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	for _, r := range results {
		if r.Report == nil {
			continue
		}
		if err := printSpectra(w, r.Report); err != nil {
			return err
		}
	}
	return nil
}

func printSpectra(w io.Writer, rep *analysis.Report) error {
	fmt.Fprintf(w, "\n%s spectra\n", rep.Name)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tFFT\tBin [Hz]\tPeak [Hz]\tPeak [dB]\tCentroid [Hz]\tBW 3dB [Hz]\tFlatness\n")
	fmt.Fprintf(tw, "------\t---\t--------\t---------\t---------\t-------------\t-----------\t--------\n")
	for _, d := range rep.Descriptors {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.2f\t%.1f\t%.1f\t%.2f\t%.4f\n",
			d.Window, d.FFTSize, d.BinWidth, d.PeakFrequency, d.PeakDB, d.Centroid, d.Bandwidth, d.Flatness)
	}
	for _, sk := range rep.Skipped {
		fmt.Fprintf(tw, "%s\t%d\tskipped: %v\n", sk.Config.Window, sk.Config.FFTSize, sk.Err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write spectra: %w", err)
	}

	if len(rep.Partials) == 0 {
		return nil
	}
	fmt.Fprintf(w, "partials:")
	for _, p := range rep.Partials {
		fmt.Fprintf(w, " %d:%.1fdB", p.Harmonic, p.RelativeDB)
	}
	fmt.Fprintln(w)
	return nil
}

func printWindows(w io.Writer, size int) error {
	if size <= 0 {
		return fmt.Errorf("invalid -size %d", size)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tName\tCoherent Gain\tENBW [bins]\t3dB BW [bins]\tFirst Null [bins]\tSidelobe [dB]\tScallop [dB]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\t-----------------\t-------------\t------------\n")
	for _, t := range window.Types() {
		coeffs, err := window.Coefficients(t, size, window.WithPeriodic())
		if err != nil {
			return err
		}
		a, err := window.Analyze(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.3f\t%.3f\t%.3f\t%.1f\t%.2f\n",
			t, window.Info(t).Name, a.CoherentGain, a.ENBW, a.Bandwidth3dB, a.FirstNull,
			a.HighestSidelobeDB, a.ScallopLossDB)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write windows: %w", err)
	}
	return nil
}

// jsonFloat encodes NaN and infinities as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

type clipDigest struct {
	Name        string          `json:"name"`
	Error       string          `json:"error,omitempty"`
	ReferenceHz jsonFloat       `json:"reference_hz,omitempty"`
	MedianHz    jsonFloat       `json:"median_hz,omitempty"`
	NearestNote string          `json:"nearest_note,omitempty"`
	Frames      int             `json:"frames,omitempty"`
	Voiced      int             `json:"voiced,omitempty"`
	Fallback    int             `json:"fallback_frames,omitempty"`
	Cents       *centsDigest    `json:"cents,omitempty"`
	Spectra     []spectrumEntry `json:"spectra,omitempty"`
}

type centsDigest struct {
	Mean            jsonFloat   `json:"mean"`
	Median          jsonFloat   `json:"median"`
	StdDev          jsonFloat   `json:"std_dev"`
	Min             jsonFloat   `json:"min"`
	Max             jsonFloat   `json:"max"`
	MeanAbsolute    jsonFloat   `json:"mean_absolute"`
	WithinTolerance jsonFloat   `json:"within_tolerance"`
	HistogramEdges  []jsonFloat `json:"histogram_edges,omitempty"`
	HistogramCounts []float64   `json:"histogram_counts,omitempty"`
}

type spectrumEntry struct {
	Window    window.Type `json:"window"`
	FFTSize   int         `json:"fft_size"`
	PeakHz    jsonFloat   `json:"peak_hz"`
	PeakDB    jsonFloat   `json:"peak_db"`
	Centroid  jsonFloat   `json:"centroid_hz"`
	Bandwidth jsonFloat   `json:"bandwidth_hz"`
	Flatness  jsonFloat   `json:"flatness"`
}

func digest(r analysis.ClipResult) clipDigest {
	d := clipDigest{Name: r.Name}
	if r.Err != nil {
		d.Error = r.Err.Error()
		return d
	}

	rep := r.Report
	s := rep.Summary
	d.ReferenceHz = jsonFloat(rep.ReferenceHz)
	d.MedianHz = jsonFloat(rep.MedianHz)
	if s.Count > 0 {
		d.NearestNote = rep.NearestNote.Name
	}
	d.Frames = rep.Pitch.Len()
	d.Voiced = rep.Pitch.Voiced()
	d.Fallback = rep.Pitch.FallbackFrames()

	edges := make([]jsonFloat, len(s.Histogram.Edges))
	for i, e := range s.Histogram.Edges {
		edges[i] = jsonFloat(e)
	}
	d.Cents = &centsDigest{
		Mean:            jsonFloat(s.Mean),
		Median:          jsonFloat(s.Median),
		StdDev:          jsonFloat(s.StdDev),
		Min:             jsonFloat(s.Min),
		Max:             jsonFloat(s.Max),
		MeanAbsolute:    jsonFloat(s.MeanAbsolute),
		WithinTolerance: jsonFloat(s.WithinTolerance),
		HistogramEdges:  edges,
		HistogramCounts: s.Histogram.Counts,
	}

	for _, st := range rep.Descriptors {
		d.Spectra = append(d.Spectra, spectrumEntry{
			Window:    st.Window,
			FFTSize:   st.FFTSize,
			PeakHz:    jsonFloat(st.PeakFrequency),
			PeakDB:    jsonFloat(st.PeakDB),
			Centroid:  jsonFloat(st.Centroid),
			Bandwidth: jsonFloat(st.Bandwidth),
			Flatness:  jsonFloat(st.Flatness),
		})
	}
	return d
}

func printJSON(w io.Writer, results []analysis.ClipResult) error {
	out := make([]clipDigest, len(results))
	for i, r := range results {
		out[i] = digest(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
