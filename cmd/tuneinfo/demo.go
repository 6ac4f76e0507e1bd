package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-tuner/analysis"
	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/cwbudde/algo-tuner/internal/wavio"
	"github.com/cwbudde/algo-tuner/measure/tuning"
)

// demoNotes are the open strings measured against rounded reference pitches.
var demoNotes = []struct {
	name      string
	reference float64
}{
	{name: "A2", reference: 110},
	{name: "D3", reference: 147},
	{name: "G3", reference: 196},
	{name: "B3", reference: 247},
}

const (
	demoSeconds   = 2.0
	demoHarmonics = 8
	demoDecay     = 1.2
	demoAmplitude = 0.5
)

// demoClips synthesizes one plucked-string clip per demo note at its
// equal-tempered frequency.
func demoClips(sampleRate float64) ([]analysis.Clip, error) {
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	n := int(demoSeconds * sampleRate)

	clips := make([]analysis.Clip, 0, len(demoNotes))
	for _, dn := range demoNotes {
		f, err := tuning.NoteFrequency(dn.name)
		if err != nil {
			return nil, err
		}
		x, err := g.Note(f, demoAmplitude, demoHarmonics, demoDecay, n)
		if err != nil {
			return nil, fmt.Errorf("demo %s: %w", dn.name, err)
		}
		clips = append(clips, analysis.Clip{
			Name:        dn.name,
			Raw:         signal.Raw{Data: x, Channels: 1, SampleRate: sampleRate},
			ReferenceHz: dn.reference,
		})
	}
	return clips, nil
}

func writeDemo(dir string, clips []analysis.Clip) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %q: %w", dir, err)
	}
	for _, c := range clips {
		path := filepath.Join(dir, "note_"+c.Name+".wav")
		if err := wavio.Write(path, c.Raw, 16); err != nil {
			return err
		}
	}
	return nil
}
