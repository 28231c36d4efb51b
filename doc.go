// Package slotgrid turns a declarative schedule description into an
// ordered sequence of time slots.
//
// # Overview
//
// A schedule description names a working window (its endpoints may be
// absolute instants, date-only or time-only strings, full datetimes, or
// a clock reading paired with a calendar date), an optional IANA
// timezone, a slot duration and step, optional leading/trailing buffers,
// exclusion windows to carve out, an alignment strategy, and limits.
// Generate resolves the window against the timezone, removes the
// exclusions, and tiles slots across the remaining segments.
//
// The package is a pure calculation engine: identical inputs always
// produce identical outputs, nothing is logged, and no state survives a
// call apart from a memoized timezone lookup cache.
//
// # Alignment
//
//   - AlignStart tiles forward from each segment's start; a too-short
//     tail becomes a shorter edge slot when IncludeEdge allows it.
//   - AlignEnd anchors full slots against the segment's end and may emit
//     a shorter leading edge slot.
//   - AlignCenter centers the run of full slots, splitting the leftover
//     evenly between both ends.
//
// Setting SlotInterval below SlotDuration is legal and produces
// overlapping slots (a sliding window).
//
// # Multi-day generation
//
// GenerateDaily drives the single-day engine over every calendar day of
// an outer period and keeps the slots that fall fully inside the
// period's resolved bounds. The iteration is capped (DefaultMaxDays) so
// a malformed period fails fast instead of spinning.
//
// # Errors
//
// All failures wrap one of the package's sentinel errors (ErrValidation,
// ErrInvalidFormat, ErrFieldRange, ErrMissingContext, ErrInvalidRange,
// ErrInvalidInput); match them with errors.Is.
package slotgrid
