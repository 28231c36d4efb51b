package slotgrid

import (
	"fmt"
	"time"
)

// recordTimeFormat is the transport representation for instants: UTC
// RFC 3339 with exactly millisecond precision.
const recordTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Record is the transport-safe shape of a Slot: instants as RFC 3339
// text, metadata carried through untouched.
type Record struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// ToRecord converts a slot to its transport representation. Instants
// are rendered in UTC with millisecond precision.
func ToRecord(s Slot) Record {
	r := Record{
		Start: s.Start.UTC().Format(recordTimeFormat),
		End:   s.End.UTC().Format(recordTimeFormat),
	}
	if s.Metadata != nil {
		m := *s.Metadata
		if s.Metadata.Label != nil {
			label := *s.Metadata.Label
			m.Label = &label
		}
		r.Metadata = &m
	}
	return r
}

// FromRecord parses a transport record back into a slot. The round trip
// is exact to the millisecond. Unparseable time fields fail with
// ErrInvalidInput, an end at or before the start with ErrInvalidRange.
func FromRecord(r Record) (Slot, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: record start %q: %v", ErrInvalidInput, r.Start, err)
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: record end %q: %v", ErrInvalidInput, r.End, err)
	}
	if !end.After(start) {
		return Slot{}, fmt.Errorf("%w: record end must be after its start", ErrInvalidRange)
	}

	s := Slot{Start: start, End: end}
	if r.Metadata != nil {
		m := *r.Metadata
		if r.Metadata.Label != nil {
			label := *r.Metadata.Label
			m.Label = &label
		}
		s.Metadata = &m
	}
	return s, nil
}
