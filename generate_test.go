package slotgrid

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func baseConfig() Config {
	return Config{
		Range:        Range{Start: Text("09:00"), End: Text("18:00")},
		SlotDuration: 30 * time.Minute,
		Timezone:     "UTC",
		Day:          "2024-01-01",
	}
}

func mustGenerate(t *testing.T, cfg Config) []Slot {
	t.Helper()
	slots, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return slots
}

func utc(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestGenerateBasicDay(t *testing.T) {
	t.Parallel()
	slots := mustGenerate(t, baseConfig())

	if len(slots) != 18 {
		t.Fatalf("len = %d, want 18", len(slots))
	}
	if !slots[0].Start.Equal(utc(9, 0)) {
		t.Fatalf("first start = %v, want 09:00Z", slots[0].Start)
	}
	if !slots[len(slots)-1].End.Equal(utc(18, 0)) {
		t.Fatalf("last end = %v, want 18:00Z", slots[len(slots)-1].End)
	}
}

func TestGenerateWithBuffers(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.SlotDuration = time.Hour
	cfg.BufferBefore = 30 * time.Minute
	cfg.BufferAfter = 30 * time.Minute

	slots := mustGenerate(t, cfg)
	if len(slots) != 8 {
		t.Fatalf("len = %d, want 8", len(slots))
	}
	if !slots[0].Start.Equal(utc(9, 30)) {
		t.Fatalf("first start = %v, want 09:30Z", slots[0].Start)
	}
	if !slots[7].End.Equal(utc(17, 30)) {
		t.Fatalf("last end = %v, want 17:30Z", slots[7].End)
	}
}

func TestGenerateWithExclusion(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.Range = Range{Start: Text("09:00"), End: Text("17:00")}
	cfg.SlotDuration = time.Hour
	cfg.Exclusions = []Range{{Start: Text("12:00"), End: Text("13:00")}}

	slots := mustGenerate(t, cfg)
	if len(slots) != 7 {
		t.Fatalf("len = %d, want 7", len(slots))
	}
	excluded := Slot{Start: utc(12, 0), End: utc(13, 0)}
	for _, s := range slots {
		if s.Start.Equal(utc(12, 0)) {
			t.Fatalf("slot starting at the excluded 12:00Z: %+v", s)
		}
		if Overlaps(s, excluded) {
			t.Fatalf("slot [%v, %v] overlaps the exclusion", s.Start, s.End)
		}
	}
}

func TestGenerateEndAlignedWithEdge(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Range:           Range{Start: Text("09:00"), End: Text("10:10")},
		SlotDuration:    30 * time.Minute,
		MinSlotDuration: 10 * time.Minute,
		Alignment:       AlignEnd,
		Timezone:        "UTC",
		Day:             "2024-01-01",
	}

	slots := mustGenerate(t, cfg)
	want := [][2]time.Time{
		{utc(9, 0), utc(9, 10)},
		{utc(9, 10), utc(9, 40)},
		{utc(9, 40), utc(10, 10)},
	}
	if len(slots) != len(want) {
		t.Fatalf("len = %d, want %d", len(slots), len(want))
	}
	for i, w := range want {
		if !slots[i].Start.Equal(w[0]) || !slots[i].End.Equal(w[1]) {
			t.Fatalf("slot %d = [%v, %v], want [%v, %v]", i, slots[i].Start, slots[i].End, w[0], w[1])
		}
	}
}

func TestGenerateCenterAligned(t *testing.T) {
	t.Parallel()
	// 09:00-10:10 with 30m slots: two full slots fit, 10m leftover
	// splits into 5m on each side.
	cfg := Config{
		Range:        Range{Start: Text("09:00"), End: Text("10:10")},
		SlotDuration: 30 * time.Minute,
		Alignment:    AlignCenter,
		Timezone:     "UTC",
		Day:          "2024-01-01",
	}

	slots := mustGenerate(t, cfg)
	if len(slots) != 2 {
		t.Fatalf("len = %d, want 2", len(slots))
	}
	if !slots[0].Start.Equal(utc(9, 5)) {
		t.Fatalf("first start = %v, want 09:05Z", slots[0].Start)
	}
	if !slots[1].End.Equal(utc(10, 5)) {
		t.Fatalf("last end = %v, want 10:05Z", slots[1].End)
	}
}

func TestGenerateSlidingWindow(t *testing.T) {
	t.Parallel()
	// Interval below duration deliberately overlaps slots.
	cfg := Config{
		Range:        Range{Start: Text("09:00"), End: Text("10:00")},
		SlotDuration: 30 * time.Minute,
		SlotInterval: 15 * time.Minute,
		Timezone:     "UTC",
		Day:          "2024-01-01",
	}

	slots := mustGenerate(t, cfg)
	if len(slots) != 3 {
		t.Fatalf("len = %d, want 3", len(slots))
	}
	if !Overlaps(slots[0], slots[1]) {
		t.Fatal("expected consecutive sliding-window slots to overlap")
	}
}

func TestGenerateMaxSlots(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	uncapped := mustGenerate(t, cfg)

	cfg.MaxSlots = 5
	capped := mustGenerate(t, cfg)
	if len(capped) != 5 {
		t.Fatalf("len = %d, want 5", len(capped))
	}
	if !reflect.DeepEqual(capped, uncapped[:5]) {
		t.Fatal("capped output should be a prefix of the uncapped output")
	}

	cfg.MaxSlots = 1000
	if got := mustGenerate(t, cfg); len(got) != len(uncapped) {
		t.Fatalf("len = %d, want %d", len(got), len(uncapped))
	}
}

func TestGenerateExcludeEdge(t *testing.T) {
	t.Parallel()
	off := false
	cfg := Config{
		Range:        Range{Start: Text("09:00"), End: Text("10:10")},
		SlotDuration: 30 * time.Minute,
		IncludeEdge:  &off,
		Timezone:     "UTC",
		Day:          "2024-01-01",
	}

	slots := mustGenerate(t, cfg)
	if len(slots) != 2 {
		t.Fatalf("len = %d, want 2 full slots only", len(slots))
	}
	for _, s := range slots {
		if got := s.End.Sub(s.Start); got != 30*time.Minute {
			t.Fatalf("slot span = %v, want 30m", got)
		}
	}
}

func TestGenerateTrailingEdgeSlot(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Range:           Range{Start: Text("09:00"), End: Text("10:10")},
		SlotDuration:    30 * time.Minute,
		MinSlotDuration: 10 * time.Minute,
		Timezone:        "UTC",
		Day:             "2024-01-01",
	}

	slots := mustGenerate(t, cfg)
	if len(slots) != 3 {
		t.Fatalf("len = %d, want 3", len(slots))
	}
	last := slots[2]
	if !last.Start.Equal(utc(10, 0)) || !last.End.Equal(utc(10, 10)) {
		t.Fatalf("edge slot = [%v, %v], want [10:00Z, 10:10Z]", last.Start, last.End)
	}
	if last.Metadata.DurationMinutes != 10 {
		t.Fatalf("edge DurationMinutes = %v, want 10", last.Metadata.DurationMinutes)
	}
}

func TestGenerateOrderingAndIndexes(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.Exclusions = []Range{
		{Start: Text("11:00"), End: Text("11:30")},
		{Start: Text("15:00"), End: Text("16:00")},
	}

	slots := mustGenerate(t, cfg)
	for i, s := range slots {
		if !s.End.After(s.Start) {
			t.Fatalf("slot %d has non-positive span", i)
		}
		if s.Metadata == nil || s.Metadata.Index != i {
			t.Fatalf("slot %d metadata index = %+v, want %d", i, s.Metadata, i)
		}
		if wantMin := float64(s.End.Sub(s.Start)) / float64(time.Minute); s.Metadata.DurationMinutes != wantMin {
			t.Fatalf("slot %d DurationMinutes = %v, want %v", i, s.Metadata.DurationMinutes, wantMin)
		}
		if i > 0 && !slots[i-1].Start.Before(s.Start) {
			t.Fatalf("slots not strictly increasing at %d", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.Exclusions = []Range{{Start: Text("12:00"), End: Text("13:00")}}

	first := mustGenerate(t, cfg)
	second := mustGenerate(t, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated generation with equal inputs differs")
	}
}

func TestGenerateTimezoneResolution(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Range:        Range{Start: Text("09:00"), End: Text("10:00")},
		SlotDuration: 30 * time.Minute,
		Timezone:     "America/New_York",
		Day:          "2024-01-15",
	}
	slots := mustGenerate(t, cfg)
	if want := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC); !slots[0].Start.Equal(want) {
		t.Fatalf("winter first start = %v, want %v", slots[0].Start, want)
	}

	cfg.Day = "2024-06-15"
	slots = mustGenerate(t, cfg)
	if want := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC); !slots[0].Start.Equal(want) {
		t.Fatalf("summer first start = %v, want %v", slots[0].Start, want)
	}
}

func TestGenerateLabels(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.MaxSlots = 3
	cfg.LabelFormatter = func(start, end time.Time, index int, _ float64) (string, bool) {
		switch index {
		case 0:
			return "first", true
		case 1:
			return "", true // deliberate empty label, still present
		default:
			return "", false // no label at all
		}
	}

	slots := mustGenerate(t, cfg)
	if slots[0].Metadata.Label == nil || *slots[0].Metadata.Label != "first" {
		t.Fatalf("slot 0 label = %v, want \"first\"", slots[0].Metadata.Label)
	}
	if slots[1].Metadata.Label == nil || *slots[1].Metadata.Label != "" {
		t.Fatal("slot 1 should carry a present-but-empty label")
	}
	if slots[2].Metadata.Label != nil {
		t.Fatalf("slot 2 label = %q, want absent", *slots[2].Metadata.Label)
	}
}

func TestGenerateSlotsAvoidExclusionInterior(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.SlotDuration = 25 * time.Minute
	cfg.MinSlotDuration = 5 * time.Minute
	cfg.Exclusions = []Range{
		{Start: Text("10:00"), End: Text("10:45")},
		{Start: Text("13:10"), End: Text("14:05")},
	}

	exclusions := []Slot{
		{Start: utc(10, 0), End: utc(10, 45)},
		{Start: utc(13, 10), End: utc(14, 5)},
	}
	for _, s := range mustGenerate(t, cfg) {
		for _, ex := range exclusions {
			if Overlaps(s, ex) {
				t.Fatalf("slot [%v, %v] overlaps exclusion [%v, %v]", s.Start, s.End, ex.Start, ex.End)
			}
		}
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Config)
		kind   error
	}{
		{name: "zero duration", mutate: func(c *Config) { c.SlotDuration = 0 }, kind: ErrValidation},
		{name: "negative duration", mutate: func(c *Config) { c.SlotDuration = -time.Minute }, kind: ErrValidation},
		{name: "negative interval", mutate: func(c *Config) { c.SlotInterval = -time.Minute }, kind: ErrValidation},
		{name: "negative buffer", mutate: func(c *Config) { c.BufferBefore = -time.Minute }, kind: ErrValidation},
		{name: "negative min duration", mutate: func(c *Config) { c.MinSlotDuration = -time.Minute }, kind: ErrValidation},
		{name: "negative cap", mutate: func(c *Config) { c.MaxSlots = -1 }, kind: ErrValidation},
		{name: "unknown alignment", mutate: func(c *Config) { c.Alignment = "diagonal" }, kind: ErrValidation},
		{name: "unknown timezone", mutate: func(c *Config) { c.Timezone = "Mars/OlympusMons" }, kind: ErrValidation},
		{name: "day without range date", mutate: func(c *Config) { c.Day = ""; c.Range = Range{Start: Text("09:00"), End: Text("17:00")} }, kind: ErrMissingContext},
		{
			name: "buffers eliminate window",
			mutate: func(c *Config) {
				c.Range = Range{Start: Text("09:00"), End: Text("10:00")}
				c.BufferBefore = 40 * time.Minute
				c.BufferAfter = 40 * time.Minute
			},
			kind: ErrInvalidRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			if _, err := Generate(cfg); !errors.Is(err, tt.kind) {
				t.Fatalf("Generate error = %v, want %v", err, tt.kind)
			}
		})
	}
}
