package slotgrid

import "fmt"

// DefaultMaxDays bounds multi-day iteration when DailyConfig.MaxDays is
// unset. It exists purely to fail fast on pathologically large periods.
const DefaultMaxDays = 10000

// DailyConfig drives GenerateDaily. The embedded Config describes each
// individual day; its Day field is overwritten per iteration and its
// Range is interpreted relative to the iterated day.
type DailyConfig struct {
	Config

	// MaxDays caps the number of calendar days iterated. Zero defaults
	// to DefaultMaxDays.
	MaxDays int
}

// GenerateDaily invokes the single-day engine once per calendar day of
// the outer period (inclusive on both ends) and keeps the slots that
// fall fully inside the period's resolved instant bounds.
//
// Slot metadata keeps the per-day index numbering, so Metadata.Index
// restarts at 0 on each day boundary.
func GenerateDaily(period Range, cfg DailyConfig) ([]Slot, error) {
	maxDays := cfg.MaxDays
	if maxDays == 0 {
		maxDays = DefaultMaxDays
	}
	if maxDays < 0 {
		return nil, fmt.Errorf("%w: MaxDays must be positive, got %d", ErrValidation, cfg.MaxDays)
	}

	res := newResolver(cfg.zone())
	bounds, err := resolveRange(period, boundaryContext{res: res})
	if err != nil {
		return nil, err
	}

	first, err := res.instantToCalendar(bounds.start)
	if err != nil {
		return nil, err
	}
	last, err := res.instantToCalendar(bounds.end)
	if err != nil {
		return nil, err
	}

	var out []Slot
	days := 0
	for day := first; !day.after(last); day = day.next() {
		days++
		if days > maxDays {
			return nil, fmt.Errorf("%w: period exceeds the %d-day iteration limit", ErrInvalidRange, maxDays)
		}

		dayCfg := cfg.Config
		dayCfg.Day = day.String()
		slots, err := Generate(dayCfg)
		if err != nil {
			return nil, err
		}

		for _, s := range slots {
			if !s.Start.Before(bounds.start) && !s.End.After(bounds.end) {
				out = append(out, s)
			}
		}
	}
	return out, nil
}
