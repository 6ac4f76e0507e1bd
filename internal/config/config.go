// Package config loads clip lists and analysis settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-tuner/analysis"
	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/cwbudde/algo-tuner/internal/wavio"
	"github.com/cwbudde/algo-tuner/measure/tuning"
	"gopkg.in/yaml.v3"
)

// File is the top-level document.
//
//	analysis:
//	  fft_sizes: [2048, 8192]
//	clips:
//	  - name: A2
//	    path: note_A2.wav
//	    reference_hz: 110
//	  - name: D3
//	    path: note_D3.wav
//	    note: D3
type File struct {
	Analysis analysis.Config `yaml:"analysis"`
	Clips    []Clip          `yaml:"clips"`

	// dir resolves relative clip paths; empty means the working directory.
	dir string
}

// Clip names one recording and its target pitch. Exactly one of
// ReferenceHz and Note is set.
type Clip struct {
	Name        string  `yaml:"name"`
	Path        string  `yaml:"path"`
	ReferenceHz float64 `yaml:"reference_hz"`
	Note        string  `yaml:"note"`
}

// Reference returns the target frequency in Hz.
func (c Clip) Reference() (float64, error) {
	if c.Note != "" {
		return tuning.NoteFrequency(c.Note)
	}
	return c.ReferenceHz, nil
}

// Load reads the YAML file at path and returns a validated [File]. Relative
// clip paths are resolved against the directory of path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// LoadFromReader decodes a YAML document from r and validates the result.
// Keys missing from the analysis section keep their defaults.
func LoadFromReader(r io.Reader) (*File, error) {
	cfg := &File{Analysis: analysis.DefaultConfig()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *File) error {
	var errs []error

	if err := cfg.Analysis.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("analysis: %w", err))
	}

	seen := make(map[string]bool, len(cfg.Clips))
	for i, c := range cfg.Clips {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("clips[%d].name is required", i))
		case seen[c.Name]:
			errs = append(errs, fmt.Errorf("clips[%d].name %q is duplicated", i, c.Name))
		}
		seen[c.Name] = true

		if c.Path == "" {
			errs = append(errs, fmt.Errorf("clips[%d].path is required", i))
		}

		switch {
		case c.Note != "" && c.ReferenceHz != 0:
			errs = append(errs, fmt.Errorf("clips[%d]: set either note or reference_hz, not both", i))
		case c.Note != "":
			if _, err := tuning.ParseNote(c.Note); err != nil {
				errs = append(errs, fmt.Errorf("clips[%d].note: %w", i, err))
			}
		case !(c.ReferenceHz > 0) || math.IsInf(c.ReferenceHz, 0):
			errs = append(errs, fmt.Errorf("clips[%d].reference_hz: %w: %v", i, tuning.ErrInvalidReference, c.ReferenceHz))
		}
	}

	return errors.Join(errs...)
}

// ClipPath returns the path of c resolved against the config directory.
func (f *File) ClipPath(c Clip) string {
	if filepath.IsAbs(c.Path) || f.dir == "" {
		return c.Path
	}
	return filepath.Join(f.dir, c.Path)
}

// LoadClips resolves every clip's reference pitch. WAV files are decoded
// when the clip is analyzed, so an unreadable file fails only its clip.
func (f *File) LoadClips() ([]analysis.Clip, error) {
	out := make([]analysis.Clip, 0, len(f.Clips))
	for _, c := range f.Clips {
		ref, err := c.Reference()
		if err != nil {
			return nil, fmt.Errorf("config: clip %q: %w", c.Name, err)
		}
		path := f.ClipPath(c)
		out = append(out, analysis.Clip{
			Name:        c.Name,
			Load:        func() (signal.Raw, error) { return wavio.Read(path) },
			ReferenceHz: ref,
		})
	}
	return out, nil
}
