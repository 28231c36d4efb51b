package slotgrid

import (
	"sort"
	"time"
)

// interval is a raw instant pair with end strictly after start. The
// algebra below filters degenerate results instead of emitting them.
type interval struct {
	start time.Time
	end   time.Time
}

// mergeIntervals sorts by start and folds overlapping or touching
// intervals into their widest span. The result is disjoint and ordered.
func mergeIntervals(ivs []interval) []interval {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start.Before(sorted[j].start) })

	merged := []interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !cur.start.After(last.end) {
			if cur.end.After(last.end) {
				last.end = cur.end
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// subtractExclusions carves every exclusion out of source, in input
// order, keeping only non-degenerate remainders. The result does not
// depend on exclusion order.
func subtractExclusions(source interval, exclusions []interval) []interval {
	segments := []interval{source}

	for _, ex := range exclusions {
		next := make([]interval, 0, len(segments)+1)
		for _, seg := range segments {
			cutStart := maxTime(ex.start, seg.start)
			cutEnd := minTime(ex.end, seg.end)

			if !cutEnd.After(cutStart) {
				next = append(next, seg)
				continue
			}
			if cutStart.After(seg.start) {
				next = append(next, interval{start: seg.start, end: cutStart})
			}
			if cutEnd.Before(seg.end) {
				next = append(next, interval{start: cutEnd, end: seg.end})
			}
		}
		segments = next
		if len(segments) == 0 {
			break
		}
	}
	return segments
}

// normalizeExclusions resolves each exclusion range against the same
// context as the working window, clamps it to the window, drops the
// ones that vanish, and merges the survivors.
func normalizeExclusions(exclusions []Range, ctx boundaryContext, window interval) ([]interval, error) {
	if len(exclusions) == 0 {
		return nil, nil
	}

	clamped := make([]interval, 0, len(exclusions))
	for _, ex := range exclusions {
		resolved, err := resolveRange(ex, ctx)
		if err != nil {
			return nil, err
		}
		if !resolved.end.After(window.start) || !window.end.After(resolved.start) {
			continue
		}
		iv := interval{
			start: maxTime(resolved.start, window.start),
			end:   minTime(resolved.end, window.end),
		}
		if iv.end.After(iv.start) {
			clamped = append(clamped, iv)
		}
	}
	return mergeIntervals(clamped), nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
