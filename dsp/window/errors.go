package window

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned for window types or names outside the supported set.
var ErrUnsupported = errors.New("window: unsupported window function")

var (
	errEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d", size)
	}
	return nil
}
