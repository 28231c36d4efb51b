package slotgrid

import "errors"

// Sentinel error kinds. Every error returned by this package wraps
// exactly one of these; the wrapped message carries the offending value
// so failures stay actionable.
var (
	// ErrValidation marks a config-level problem: non-positive
	// durations, negative buffers, a non-positive cap, an unknown
	// alignment or timezone.
	ErrValidation = errors.New("invalid config")

	// ErrInvalidFormat marks a string value that matches none of the
	// recognized shapes.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrFieldRange marks a recognized shape whose numeric field is out
	// of range (month 13, hour 25, ...).
	ErrFieldRange = errors.New("field out of range")

	// ErrMissingContext marks a time-only or date-omitted boundary used
	// without a default day to resolve it against.
	ErrMissingContext = errors.New("missing default day")

	// ErrInvalidRange marks a resolved range whose end is not strictly
	// after its start, a window eliminated by buffers, or a multi-day
	// period exceeding its day limit.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidInput marks a supplied value that is not a usable point
	// in time (an empty boundary, an unparseable record field).
	ErrInvalidInput = errors.New("invalid input")
)
