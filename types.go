package slotgrid

import (
	"fmt"
	"time"
)

// CalendarDate is a civil date with no time-of-day or zone attached.
type CalendarDate struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// String renders the date as "YYYY-MM-DD".
func (c CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day)
}

// next returns the following calendar day, rolling over month and year
// boundaries.
func (c CalendarDate) next() CalendarDate {
	t := time.Date(c.Year, time.Month(c.Month), c.Day+1, 0, 0, 0, 0, time.UTC)
	return CalendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (c CalendarDate) after(o CalendarDate) bool {
	if c.Year != o.Year {
		return c.Year > o.Year
	}
	if c.Month != o.Month {
		return c.Month > o.Month
	}
	return c.Day > o.Day
}

// TimeOfDay is a civil clock reading with no date or zone attached.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// Boundary is one endpoint of a range. Exactly one input shape is used
// per value, checked in this order:
//
//  1. Instant: an absolute point in time (used when non-zero).
//  2. Value: a string holding "YYYY-MM-DD", "H:MM[:SS]", or a full
//     datetime such as "2024-01-01T09:00:00Z". A space may stand in for
//     the "T" separator. Time-only values need a default day from the
//     surrounding config.
//  3. Time (with optional Date): a clock reading paired with a calendar
//     date string; an empty Date falls back to the default day.
type Boundary struct {
	Instant time.Time
	Value   string
	Date    string
	Time    *TimeOfDay
}

// At builds an absolute-instant boundary.
func At(t time.Time) Boundary { return Boundary{Instant: t} }

// Text builds a string boundary (date-only, time-only, or datetime).
func Text(s string) Boundary { return Boundary{Value: s} }

// Clock builds an object-form boundary pairing a clock reading with an
// optional date string ("" means "use the default day").
func Clock(date string, tod TimeOfDay) Boundary {
	return Boundary{Date: date, Time: &tod}
}

// Range is a pair of boundaries describing a half-open window.
type Range struct {
	Start Boundary
	End   Boundary
}

// Alignment selects how slots are anchored across a segment.
type Alignment string

const (
	// AlignStart tiles forward from the segment start (the default).
	AlignStart Alignment = "start"
	// AlignEnd anchors full slots against the segment end.
	AlignEnd Alignment = "end"
	// AlignCenter centers the slot run, splitting leftover evenly.
	AlignCenter Alignment = "center"
)

// Metadata describes an emitted slot.
type Metadata struct {
	// Index is the 0-based position in the generated sequence.
	Index int `json:"index"`
	// DurationMinutes is the slot's actual span in minutes; edge slots
	// make it fractional.
	DurationMinutes float64 `json:"durationMinutes"`
	// Label is set only when a LabelFormatter chose to produce one; a
	// present-but-empty label is distinct from an absent one.
	Label *string `json:"label,omitempty"`
}

// Slot is one generated interval. Start is inclusive, End exclusive.
// Slots are value objects; the engine never mutates them after emission.
type Slot struct {
	Start    time.Time
	End      time.Time
	Metadata *Metadata
}

// LabelFormatter derives an optional label for a slot about to be
// emitted. Returning ok=false leaves the slot unlabeled.
type LabelFormatter func(start, end time.Time, index int, durationMinutes float64) (label string, ok bool)

// Config is the declarative input to Generate.
type Config struct {
	// Range is the working window. Time-only boundaries resolve against
	// Day.
	Range Range

	// SlotDuration is the length of a full slot. Required, positive.
	SlotDuration time.Duration

	// SlotInterval is the step between consecutive slot starts. Zero
	// defaults to SlotDuration; a value below SlotDuration yields
	// overlapping slots.
	SlotInterval time.Duration

	// BufferBefore and BufferAfter trim the working window before any
	// exclusion or packing logic runs.
	BufferBefore time.Duration
	BufferAfter  time.Duration

	// Exclusions are windows carved out of the working range. They are
	// resolved with the same timezone and default day as Range, clamped
	// to the window, and merged before subtraction.
	Exclusions []Range

	// Timezone is an IANA zone name; empty means the ambient local zone.
	Timezone string

	// Day supplies the default calendar date for time-only boundaries,
	// as "YYYY-MM-DD" or a full datetime (whose civil date in Timezone
	// is used).
	Day string

	// MinSlotDuration is the shortest edge slot worth emitting. Zero
	// defaults to SlotDuration.
	MinSlotDuration time.Duration

	// MaxSlots caps the output length. Zero means uncapped.
	MaxSlots int

	// IncludeEdge controls whether shorter boundary slots are emitted
	// when a segment does not divide evenly. Nil defaults to true.
	IncludeEdge *bool

	// Alignment picks the anchoring strategy; empty means AlignStart.
	Alignment Alignment

	// LabelFormatter optionally derives Metadata.Label per slot.
	LabelFormatter LabelFormatter
}
