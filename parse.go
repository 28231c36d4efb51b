package slotgrid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeOnlyRe = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})(?::([0-9]{2}))?$`)
)

func isDateOnly(s string) bool { return dateOnlyRe.MatchString(s) }
func isTimeOnly(s string) bool { return timeOnlyRe.MatchString(s) }

// ParseTimeOfDay parses an "H:MM" or "H:MM:SS" clock string. Wrong
// shapes fail with ErrInvalidFormat, out-of-range fields with
// ErrFieldRange.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOnlyRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%w: invalid time string %q", ErrInvalidFormat, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	tod := TimeOfDay{Hour: hour, Minute: minute, Second: second}
	if err := validateTimeOfDay(tod, s); err != nil {
		return TimeOfDay{}, err
	}
	return tod, nil
}

func validateTimeOfDay(tod TimeOfDay, origin string) error {
	if tod.Hour < 0 || tod.Hour > 23 {
		return fmt.Errorf("%w: hour %d in %q", ErrFieldRange, tod.Hour, origin)
	}
	if tod.Minute < 0 || tod.Minute > 59 {
		return fmt.Errorf("%w: minute %d in %q", ErrFieldRange, tod.Minute, origin)
	}
	if tod.Second < 0 || tod.Second > 59 {
		return fmt.Errorf("%w: second %d in %q", ErrFieldRange, tod.Second, origin)
	}
	return nil
}

// parseCalendarDate parses a strict "YYYY-MM-DD" string. Days are only
// range-checked 1..31; a day past the month's length rolls over during
// conversion, same as the calendar arithmetic everywhere else.
func parseCalendarDate(s string) (CalendarDate, error) {
	t := strings.TrimSpace(s)
	if !isDateOnly(t) {
		return CalendarDate{}, fmt.Errorf("%w: invalid date string %q", ErrInvalidFormat, s)
	}
	year, _ := strconv.Atoi(t[0:4])
	month, _ := strconv.Atoi(t[5:7])
	day, _ := strconv.Atoi(t[8:10])
	if month < 1 || month > 12 {
		return CalendarDate{}, fmt.Errorf("%w: month %d in %q", ErrFieldRange, month, s)
	}
	if day < 1 || day > 31 {
		return CalendarDate{}, fmt.Errorf("%w: day %d in %q", ErrFieldRange, day, s)
	}
	return CalendarDate{Year: year, Month: month, Day: day}, nil
}

// Layouts tried for full datetime strings, most specific first. The
// offset-free layouts read in the ambient local zone: a bare datetime
// literal means "wall time on this machine", independent of any
// configured zone.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// parseDatetime parses an ISO-like datetime string into an instant. A
// single space between the date and time parts is accepted in place of
// "T".
func parseDatetime(s string) (time.Time, error) {
	n := strings.TrimSpace(s)
	if !strings.Contains(n, "T") {
		n = strings.Replace(n, " ", "T", 1)
	}
	rangeErr := false
	for _, layout := range datetimeLayouts {
		t, err := time.ParseInLocation(layout, n, time.Local)
		if err == nil {
			return t, nil
		}
		if strings.Contains(err.Error(), "out of range") {
			rangeErr = true
		}
	}
	if rangeErr {
		return time.Time{}, fmt.Errorf("%w: datetime field out of range in %q", ErrFieldRange, s)
	}
	return time.Time{}, fmt.Errorf("%w: invalid datetime string %q", ErrInvalidFormat, s)
}

// calendarFromDateString derives a calendar date from a date-only or
// datetime string; datetimes are read back through the resolver's zone.
func calendarFromDateString(s string, r resolver) (CalendarDate, error) {
	t := strings.TrimSpace(s)
	if isDateOnly(t) {
		return parseCalendarDate(t)
	}
	inst, err := parseDatetime(t)
	if err != nil {
		return CalendarDate{}, err
	}
	return r.instantToCalendar(inst)
}
