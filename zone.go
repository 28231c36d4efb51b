package slotgrid

import (
	"fmt"
	"sync"
	"time"
)

// Zone selects how civil fields are interpreted: against a named IANA
// zone or against the ambient local zone. "No timezone configured" is
// the Local variant, not a nil special case, so both code paths go
// through the same conversion logic.
type Zone struct {
	name string
}

// LocalZone interprets civil fields in the ambient local zone.
func LocalZone() Zone { return Zone{} }

// NamedZone interprets civil fields in the given IANA zone.
func NamedZone(id string) Zone { return Zone{name: id} }

// IsLocal reports whether this is the ambient-local variant.
func (z Zone) IsLocal() bool { return z.name == "" }

func (z Zone) String() string {
	if z.name == "" {
		return "Local"
	}
	return z.name
}

// locationCache memoizes IANA zone database lookups.
// time.LoadLocation reads the on-disk database on every call, so
// resolvers share a read-through cache keyed by zone name. Entries are
// written once and never evicted.
type locationCache struct {
	mu     sync.Mutex
	byName map[string]*time.Location
}

func newLocationCache() *locationCache {
	return &locationCache{byName: make(map[string]*time.Location)}
}

func (c *locationCache) load(name string) (*time.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if loc, ok := c.byName[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrValidation, name)
	}
	c.byName[name] = loc
	return loc, nil
}

// sharedLocations backs resolvers created through the public entry
// points. Tests construct isolated caches instead.
var sharedLocations = newLocationCache()

// resolver converts civil readings to instants and back for one zone.
type resolver struct {
	zone Zone
	locs *locationCache
}

func newResolver(zone Zone) resolver {
	return resolver{zone: zone, locs: sharedLocations}
}

func (r resolver) location() (*time.Location, error) {
	if r.zone.IsLocal() {
		return time.Local, nil
	}
	return r.locs.load(r.zone.name)
}

// civilToInstant finds the instant whose wall clock in the resolver's
// zone reads (cal, tod). The civil fields are first treated as UTC to
// build a trial instant, which is then shifted by the zone's offset at
// the trial; if the shift crossed a zone transition the offset at the
// shifted instant wins. Ambiguous (repeated) and skipped wall times
// resolve to whichever offset the second pass lands on.
func (r resolver) civilToInstant(cal CalendarDate, tod TimeOfDay) (time.Time, error) {
	loc, err := r.location()
	if err != nil {
		return time.Time{}, err
	}
	trial := time.Date(cal.Year, time.Month(cal.Month), cal.Day,
		tod.Hour, tod.Minute, tod.Second, 0, time.UTC)
	off := zoneOffset(trial, loc)
	shifted := trial.Add(-off)
	if off2 := zoneOffset(shifted, loc); off2 != off {
		return trial.Add(-off2), nil
	}
	return shifted, nil
}

// instantToCalendar reads the civil date of an instant in the
// resolver's zone.
func (r resolver) instantToCalendar(t time.Time) (CalendarDate, error) {
	loc, err := r.location()
	if err != nil {
		return CalendarDate{}, err
	}
	y, m, d := t.In(loc).Date()
	return CalendarDate{Year: y, Month: int(m), Day: d}, nil
}

// zoneOffset is the zone's UTC offset at t, straight from the zone
// database so historical and future transitions stay correct.
func zoneOffset(t time.Time, loc *time.Location) time.Duration {
	_, secs := t.In(loc).Zone()
	return time.Duration(secs) * time.Second
}
