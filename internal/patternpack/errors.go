package patternpack

import "errors"

// Error kinds surfaced at load time (spec §6/§7). All are fatal to Load —
// pattern pack problems are configuration errors, never call-time errors.
var (
	// ErrPatternPackInvalid wraps schema or regex-compilation failures.
	ErrPatternPackInvalid = errors.New("pattern pack invalid")
	// ErrValidatorUnknown is returned when a rule names a validator hook
	// that has not been registered.
	ErrValidatorUnknown = errors.New("unknown validator")
	// ErrPackNotFound is returned when a requested pack name resolves to
	// neither a built-in pack nor a file in the configured search directory.
	ErrPackNotFound = errors.New("pattern pack not found")
)
