package slotgrid

import (
	"fmt"
	"strings"
	"time"
)

// boundaryContext carries everything a boundary needs to become an
// instant: the zone-aware resolver and the fallback calendar date used
// when a boundary supplies a time but no date.
type boundaryContext struct {
	res        resolver
	defaultDay *CalendarDate
}

// resolvedBoundary pairs an instant with its civil date in the active
// zone (or the supplied/default date that produced the instant).
type resolvedBoundary struct {
	instant  time.Time
	calendar CalendarDate
}

// resolveBoundary interprets one boundary input. Shapes are checked in
// a fixed order: absolute instant, then string sub-shapes, then the
// object form; reordering could misclassify malformed values.
func resolveBoundary(b Boundary, ctx boundaryContext) (resolvedBoundary, error) {
	if !b.Instant.IsZero() {
		instant := b.Instant.Truncate(time.Millisecond)
		cal, err := ctx.res.instantToCalendar(instant)
		if err != nil {
			return resolvedBoundary{}, err
		}
		return resolvedBoundary{instant: instant, calendar: cal}, nil
	}

	if b.Value != "" {
		return resolveStringBoundary(b.Value, ctx)
	}

	if b.Time != nil {
		tod := *b.Time
		if err := validateTimeOfDay(tod, fmt.Sprintf("%02d:%02d:%02d", tod.Hour, tod.Minute, tod.Second)); err != nil {
			return resolvedBoundary{}, err
		}
		var cal CalendarDate
		switch {
		case b.Date != "":
			c, err := calendarFromDateString(b.Date, ctx.res)
			if err != nil {
				return resolvedBoundary{}, err
			}
			cal = c
		case ctx.defaultDay != nil:
			cal = *ctx.defaultDay
		default:
			return resolvedBoundary{}, fmt.Errorf("%w: clock boundary %02d:%02d needs a date or a default day", ErrMissingContext, tod.Hour, tod.Minute)
		}
		instant, err := ctx.res.civilToInstant(cal, tod)
		if err != nil {
			return resolvedBoundary{}, err
		}
		return resolvedBoundary{instant: instant, calendar: cal}, nil
	}

	return resolvedBoundary{}, fmt.Errorf("%w: empty boundary", ErrInvalidInput)
}

func resolveStringBoundary(value string, ctx boundaryContext) (resolvedBoundary, error) {
	trimmed := strings.TrimSpace(value)

	if isTimeOnly(trimmed) {
		if ctx.defaultDay == nil {
			return resolvedBoundary{}, fmt.Errorf("%w: time-only boundary %q needs config.Day or an explicit date", ErrMissingContext, value)
		}
		tod, err := ParseTimeOfDay(trimmed)
		if err != nil {
			return resolvedBoundary{}, err
		}
		instant, err := ctx.res.civilToInstant(*ctx.defaultDay, tod)
		if err != nil {
			return resolvedBoundary{}, err
		}
		return resolvedBoundary{instant: instant, calendar: *ctx.defaultDay}, nil
	}

	if isDateOnly(trimmed) {
		cal, err := parseCalendarDate(trimmed)
		if err != nil {
			return resolvedBoundary{}, err
		}
		instant, err := ctx.res.civilToInstant(cal, TimeOfDay{})
		if err != nil {
			return resolvedBoundary{}, err
		}
		return resolvedBoundary{instant: instant, calendar: cal}, nil
	}

	instant, err := parseDatetime(trimmed)
	if err != nil {
		return resolvedBoundary{}, err
	}
	instant = instant.Truncate(time.Millisecond)
	cal, err := ctx.res.instantToCalendar(instant)
	if err != nil {
		return resolvedBoundary{}, err
	}
	return resolvedBoundary{instant: instant, calendar: cal}, nil
}

// resolveRange resolves a start/end pair into a validated interval. The
// end resolves with the start's calendar date as its default day, so
// {start: "09:00", end: "17:00"} shares one implied day.
func resolveRange(rg Range, ctx boundaryContext) (interval, error) {
	start, err := resolveBoundary(rg.Start, ctx)
	if err != nil {
		return interval{}, err
	}

	endCtx := ctx
	startCal := start.calendar
	endCtx.defaultDay = &startCal
	end, err := resolveBoundary(rg.End, endCtx)
	if err != nil {
		return interval{}, err
	}

	if !end.instant.After(start.instant) {
		return interval{}, fmt.Errorf("%w: range end %s is not after start %s",
			ErrInvalidRange, end.instant.Format(time.RFC3339), start.instant.Format(time.RFC3339))
	}
	return interval{start: start.instant, end: end.instant}, nil
}
