package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-datefield/internal/config"
)

// Parse rejections. Both are terminal for the whole input.
var (
	ErrMalformedInput = errors.New(config.ErrMalformedInput)
	ErrOutOfRange     = errors.New(config.ErrOutOfRange)
)

// malformedError returns an error which unwraps to ErrMalformedInput, and to
// cause as well when the matcher itself failed (a match timeout).
func malformedError(input string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %q: %w", ErrMalformedInput, input, cause)
	}
	return fmt.Errorf("%w: %q", ErrMalformedInput, input)
}

// outOfRangeError returns an error which unwraps to ErrOutOfRange.
func outOfRangeError(f Field, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrOutOfRange, f, value)
}
