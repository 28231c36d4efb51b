package slotgrid

import "fmt"

// Generate runs the single-day engine: validate the config, resolve the
// working range, trim it by the buffers, carve out the exclusions, and
// pack each remaining segment in chronological order.
//
// Generation is all-or-nothing: any error means no slots.
func Generate(cfg Config) ([]Slot, error) {
	norm, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	ctx := boundaryContext{res: newResolver(cfg.zone())}
	if cfg.Day != "" {
		day, err := calendarFromDateString(cfg.Day, ctx.res)
		if err != nil {
			return nil, err
		}
		ctx.defaultDay = &day
	}

	window, err := resolveRange(cfg.Range, ctx)
	if err != nil {
		return nil, err
	}

	window.start = window.start.Add(cfg.BufferBefore)
	window.end = window.end.Add(-cfg.BufferAfter)
	if !window.end.After(window.start) {
		return nil, fmt.Errorf("%w: buffers eliminate the available window", ErrInvalidRange)
	}

	exclusions, err := normalizeExclusions(cfg.Exclusions, ctx, window)
	if err != nil {
		return nil, err
	}
	segments := subtractExclusions(window, exclusions)

	var slots []Slot
	for _, seg := range segments {
		if norm.capped(len(slots)) {
			break
		}
		slots = packSegment(slots, seg, norm)
	}
	return slots, nil
}
