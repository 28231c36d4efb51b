package slotgrid

import "time"

// packSegment appends the slots for one contiguous segment to out,
// honoring the alignment strategy and the global cap. The running
// output length is the only cross-segment state: it enforces the cap
// and numbers the slots.
func packSegment(out []Slot, seg interval, cfg normalizedConfig) []Slot {
	span := seg.end.Sub(seg.start)
	if span <= 0 || cfg.capped(len(out)) {
		return out
	}

	switch cfg.alignment {
	case AlignCenter:
		return packCentered(out, seg, span, cfg)
	case AlignEnd:
		return packFromEnd(out, seg, span, cfg)
	default:
		return packFromStart(out, seg, cfg)
	}
}

// packFromStart walks forward from the segment start in interval steps.
// A tail too short for a full slot becomes an edge slot when allowed.
func packFromStart(out []Slot, seg interval, cfg normalizedConfig) []Slot {
	for start := seg.start; start.Before(seg.end) && !cfg.capped(len(out)); start = start.Add(cfg.interval) {
		end := start.Add(cfg.duration)
		if !end.After(seg.end) {
			out = pushSlot(out, start, end, cfg)
			continue
		}
		if cfg.includeEdge && seg.end.Sub(start) >= cfg.minDuration {
			out = pushSlot(out, start, seg.end, cfg)
		}
	}
	return out
}

// packFromEnd tiles full slots backward from the segment end, then
// emits them in chronological order, preceded by an optional leading
// edge slot covering the leftover at the front.
func packFromEnd(out []Slot, seg interval, span time.Duration, cfg normalizedConfig) []Slot {
	if span < cfg.duration {
		if cfg.includeEdge && span >= cfg.minDuration {
			out = pushSlot(out, seg.start, seg.end, cfg)
		}
		return out
	}

	count := int((span-cfg.duration)/cfg.interval) + 1
	first := seg.end.Add(-cfg.duration - time.Duration(count-1)*cfg.interval)

	if leftover := first.Sub(seg.start); cfg.includeEdge && leftover >= cfg.minDuration {
		out = pushSlot(out, seg.start, first, cfg)
	}

	for i := 0; i < count; i++ {
		if cfg.capped(len(out)) {
			break
		}
		start := first.Add(time.Duration(i) * cfg.interval)
		out = pushSlot(out, start, start.Add(cfg.duration), cfg)
	}
	return out
}

// packCentered emits only full-duration slots, shifted so the unused
// span splits evenly between the segment's ends. A segment too short
// for one full slot falls back to a single whole-segment edge slot.
func packCentered(out []Slot, seg interval, span time.Duration, cfg normalizedConfig) []Slot {
	if span < cfg.duration {
		if cfg.includeEdge && span >= cfg.minDuration {
			out = pushSlot(out, seg.start, seg.end, cfg)
		}
		return out
	}

	count := int((span-cfg.duration)/cfg.interval) + 1
	if count <= 0 {
		if cfg.includeEdge && span >= cfg.minDuration {
			out = pushSlot(out, seg.start, seg.end, cfg)
		}
		return out
	}

	used := cfg.duration + time.Duration(count-1)*cfg.interval
	offset := ((span - used) / 2).Round(time.Millisecond)

	for i := 0; i < count; i++ {
		if cfg.capped(len(out)) {
			break
		}
		start := seg.start.Add(offset + time.Duration(i)*cfg.interval)
		out = pushSlot(out, start, start.Add(cfg.duration), cfg)
	}
	return out
}

// pushSlot is the single funnel every emission path goes through: it
// enforces the cap, discards degenerate candidates, numbers the slot,
// and attaches the optional label.
func pushSlot(out []Slot, start, end time.Time, cfg normalizedConfig) []Slot {
	if cfg.capped(len(out)) {
		return out
	}
	if !end.After(start) {
		return out
	}

	index := len(out)
	durationMinutes := float64(end.Sub(start)) / float64(time.Minute)
	meta := &Metadata{Index: index, DurationMinutes: durationMinutes}

	if cfg.label != nil {
		if label, ok := cfg.label(start, end, index, durationMinutes); ok {
			meta.Label = &label
		}
	}

	return append(out, Slot{Start: start, End: end, Metadata: meta})
}
