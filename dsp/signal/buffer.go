package signal

import "fmt"

// Buffer is a mono, conditioned sample stream ready for analysis.
// Consumers must treat Samples as read-only.
type Buffer struct {
	Samples    []float64
	SampleRate float64
}

// Len returns the number of samples.
func (b Buffer) Len() int { return len(b.Samples) }

// Duration returns the buffer length in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / b.SampleRate
}

// Raw is interleaved decoder output prior to conditioning.
type Raw struct {
	Data       []float64
	Channels   int
	SampleRate float64
}

// Frames returns the number of sample frames (samples per channel).
func (r Raw) Frames() int {
	if r.Channels < 1 {
		return 0
	}
	return len(r.Data) / r.Channels
}

// Channel extracts one channel from the interleaved data.
func (r Raw) Channel(ch int) ([]float64, error) {
	if r.Channels < 1 {
		return nil, fmt.Errorf("%w: channels must be >= 1: %d", ErrInvalidConfig, r.Channels)
	}
	if ch < 0 || ch >= r.Channels {
		return nil, fmt.Errorf("%w: channel %d out of range [0,%d)", ErrInvalidConfig, ch, r.Channels)
	}

	out := make([]float64, r.Frames())
	for i := range out {
		out[i] = r.Data[i*r.Channels+ch]
	}
	return out, nil
}

// FromInts converts interleaved integer PCM into Raw. Integer magnitudes are
// kept as is; Condition normalizes by peak, so bit depth does not matter.
func FromInts(data []int, channels int, sampleRate float64) Raw {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return Raw{Data: out, Channels: channels, SampleRate: sampleRate}
}
