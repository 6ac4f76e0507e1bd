package signal

import "errors"

var (
	// ErrInvalidConfig is returned for malformed raw input or conditioning settings.
	ErrInvalidConfig = errors.New("signal: invalid configuration")
	// ErrSilentSignal is returned when the selected channel has zero peak amplitude.
	ErrSilentSignal = errors.New("signal: silent input")
	// ErrInsufficientSignal is returned when the attack trim consumes the whole signal.
	ErrInsufficientSignal = errors.New("signal: no samples left after attack trim")
)
