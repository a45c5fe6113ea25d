package sanitizer

import (
	"errors"
	"fmt"
)

// ErrInputTooLarge is returned when input exceeds Config.MaxInputChars
// (spec §6, §7). It is fatal to the call: no partial output is returned.
var ErrInputTooLarge = errors.New("input exceeds max_input_characters")

// newInputTooLargeError reports the offending size alongside the sentinel
// so callers can log useful detail while still matching errors.Is.
func newInputTooLargeError(got, limit int) error {
	return fmt.Errorf("%w: %d characters exceeds limit of %d", ErrInputTooLarge, got, limit)
}
