package slotgrid

import (
	"fmt"
	"sort"
	"time"
)

// NewSlot builds a validated slot, ensuring end is strictly after
// start.
func NewSlot(start, end time.Time) (Slot, error) {
	if start.IsZero() || end.IsZero() {
		return Slot{}, fmt.Errorf("%w: slot times must be set", ErrInvalidInput)
	}
	if !end.After(start) {
		return Slot{}, fmt.Errorf("%w: slot end must be after its start", ErrInvalidRange)
	}
	return Slot{Start: start, End: end}, nil
}

// Overlaps reports whether two slots share any interior point. Touching
// edges do not count.
func Overlaps(a, b Slot) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether t falls within the slot: inclusive of Start,
// exclusive of End.
func Contains(s Slot, t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// MergeSlots sorts by start time and folds overlapping or touching
// slots into their widest span. Merged output carries no metadata.
func MergeSlots(slots []Slot) []Slot {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	merged := []Slot{{Start: sorted[0].Start, End: sorted[0].End}}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !cur.Start.After(last.End) {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		merged = append(merged, Slot{Start: cur.Start, End: cur.End})
	}
	return merged
}

// FindGaps returns the free intervals of [start, end) not covered by
// the given booked slots.
func FindGaps(booked []Slot, start, end time.Time) []Slot {
	inRange := make([]Slot, 0, len(booked))
	for _, s := range booked {
		if s.Start.Before(end) && s.End.After(start) {
			inRange = append(inRange, s)
		}
	}
	merged := MergeSlots(inRange)

	var gaps []Slot
	cursor := start
	for _, s := range merged {
		slotStart := maxTime(s.Start, start)
		if cursor.Before(slotStart) {
			gaps = append(gaps, Slot{Start: cursor, End: slotStart})
		}
		if slotEnd := minTime(s.End, end); slotEnd.After(cursor) {
			cursor = slotEnd
		}
	}
	if cursor.Before(end) {
		gaps = append(gaps, Slot{Start: cursor, End: end})
	}
	return gaps
}
