// Package wavio reads and writes PCM WAV files as signal.Raw.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidFile is returned for input that is not a readable PCM WAV file.
var ErrInvalidFile = errors.New("wavio: invalid WAV file")

// Read decodes the WAV file at path.
func Read(path string) (signal.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Raw{}, fmt.Errorf("wavio: open %q: %w", path, err)
	}
	defer f.Close()

	raw, err := Decode(f)
	if err != nil {
		return signal.Raw{}, fmt.Errorf("wavio: %q: %w", path, err)
	}
	return raw, nil
}

// Decode reads a whole PCM WAV stream. Integer samples are kept at their
// native scale.
func Decode(r io.ReadSeeker) (signal.Raw, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return signal.Raw{}, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return signal.Raw{}, fmt.Errorf("%w: read PCM: %v", ErrInvalidFile, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate <= 0 {
		return signal.Raw{}, fmt.Errorf("%w: missing format", ErrInvalidFile)
	}

	return signal.FromInts(buf.Data, buf.Format.NumChannels, float64(buf.Format.SampleRate)), nil
}

// Write encodes mono or interleaved samples in [-1, 1] as PCM WAV with the
// given bit depth (16 or 24). Values outside [-1, 1] are clipped.
func Write(path string, raw signal.Raw, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("wavio: unsupported bit depth %d", bitDepth)
	}
	if raw.Channels < 1 || raw.SampleRate <= 0 || raw.SampleRate != math.Trunc(raw.SampleRate) {
		return fmt.Errorf("wavio: invalid format: %d channels at %v Hz", raw.Channels, raw.SampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %q: %w", path, err)
	}

	full := float64(int(1)<<(bitDepth-1) - 1)
	data := make([]int, len(raw.Data))
	for i, v := range raw.Data {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * full))
	}

	enc := wav.NewEncoder(f, int(raw.SampleRate), bitDepth, raw.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: raw.Channels, SampleRate: int(raw.SampleRate)},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("wavio: write %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("wavio: finalize %q: %w", path, err)
	}
	return f.Close()
}
