package pitch

import "errors"

var (
	// ErrInvalidParams is returned for malformed tracking parameters.
	ErrInvalidParams = errors.New("pitch: invalid parameters")
	// ErrInsufficientSamples is returned when the buffer is shorter than one frame.
	ErrInsufficientSamples = errors.New("pitch: buffer shorter than one frame")
)
