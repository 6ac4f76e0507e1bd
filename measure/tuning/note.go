package tuning

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ConcertA is the reference pitch of A4 in Hz.
const ConcertA = 440.0

// ErrInvalidNote is returned for unparsable note names.
var ErrInvalidNote = errors.New("tuning: invalid note name")

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var naturalOffsets = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// Note is an equal-tempered pitch.
type Note struct {
	Name      string
	MIDI      int
	Frequency float64
}

// String returns the note name with octave, e.g. "A2".
func (n Note) String() string { return n.Name }

// ParseNote parses scientific pitch notation such as "A2", "D#3", "Bb3" or
// "C-1".
func ParseNote(name string) (Note, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}

	semitone, ok := naturalOffsets[byte(strings.ToUpper(s[:1])[0])]
	if !ok {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}

	return noteFromMIDI(12*(octave+1) + semitone), nil
}

// NoteFrequency returns the equal-tempered frequency of a named note.
func NoteFrequency(name string) (float64, error) {
	n, err := ParseNote(name)
	if err != nil {
		return 0, err
	}
	return n.Frequency, nil
}

// NearestNote returns the equal-tempered note closest to hz and the
// deviation of hz from it in cents.
func NearestNote(hz float64) (Note, float64, error) {
	if !validReference(hz) {
		return Note{}, 0, fmt.Errorf("%w: %v", ErrInvalidReference, hz)
	}
	midi := int(math.Round(69 + 12*math.Log2(hz/ConcertA)))
	n := noteFromMIDI(midi)
	return n, centsOf(hz, n.Frequency), nil
}

func noteFromMIDI(midi int) Note {
	pc := ((midi % 12) + 12) % 12
	octave := (midi-pc)/12 - 1
	return Note{
		Name:      sharpNames[pc] + strconv.Itoa(octave),
		MIDI:      midi,
		Frequency: ConcertA * math.Exp2(float64(midi-69)/12),
	}
}
