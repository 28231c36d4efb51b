// Package cli holds the plumbing for cmd/slotgrid: strict config
// decoding, file watching, and output rendering. The library core stays
// pure; everything with side effects lives here.
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"slotgrid"
)

// File is the on-disk schedule description. Durations are Go duration
// strings ("30m", "1h30m"). Presence of "period" selects multi-day
// generation.
type File struct {
	Timezone        string      `json:"timezone"`
	Day             string      `json:"day"`
	Range           RangeSpec   `json:"range"`
	Period          *RangeSpec  `json:"period"`
	SlotDuration    string      `json:"slot_duration"`
	SlotInterval    string      `json:"slot_interval"`
	BufferBefore    string      `json:"buffer_before"`
	BufferAfter     string      `json:"buffer_after"`
	MinSlotDuration string      `json:"min_slot_duration"`
	Exclusions      []RangeSpec `json:"exclusions"`
	MaxSlots        int         `json:"max_slots"`
	MaxDays         int         `json:"max_days"`
	Alignment       string      `json:"alignment"`
	IncludeEdge     *bool       `json:"include_edge"`
	LabelFormat     string      `json:"label_format"`
}

// RangeSpec is a start/end boundary pair.
type RangeSpec struct {
	Start BoundarySpec `json:"start"`
	End   BoundarySpec `json:"end"`
}

// BoundarySpec accepts either a plain string ("09:00", "2024-01-01",
// a full datetime) or an object {date, time} with a clock-string time.
type BoundarySpec struct {
	Value string
	Date  string
	Time  string
}

func (b *BoundarySpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = BoundarySpec{Value: s}
		return nil
	}

	var obj struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("boundary must be a string or {date, time}: %w", err)
	}
	if obj.Time == "" {
		return errors.New("boundary object needs a time")
	}
	*b = BoundarySpec{Date: obj.Date, Time: obj.Time}
	return nil
}

func (b BoundarySpec) boundary(path string) (slotgrid.Boundary, error) {
	if b.Time != "" {
		tod, err := slotgrid.ParseTimeOfDay(b.Time)
		if err != nil {
			return slotgrid.Boundary{}, fmt.Errorf("%s: %w", path, err)
		}
		return slotgrid.Clock(b.Date, tod), nil
	}
	if b.Value == "" {
		return slotgrid.Boundary{}, fmt.Errorf("%s: boundary is empty", path)
	}
	return slotgrid.Text(b.Value), nil
}

func (r RangeSpec) toRange(path string) (slotgrid.Range, error) {
	start, err := r.Start.boundary(path + ".start")
	if err != nil {
		return slotgrid.Range{}, err
	}
	end, err := r.End.boundary(path + ".end")
	if err != nil {
		return slotgrid.Range{}, err
	}
	return slotgrid.Range{Start: start, End: end}, nil
}

// Job is a ready-to-run generation request built from a File.
type Job struct {
	Config  slotgrid.Config
	Period  *slotgrid.Range
	MaxDays int
}

// Run executes the job: the multi-day driver when a period is present,
// the single-day engine otherwise.
func (j Job) Run() ([]slotgrid.Slot, error) {
	if j.Period != nil {
		return slotgrid.GenerateDaily(*j.Period, slotgrid.DailyConfig{
			Config:  j.Config,
			MaxDays: j.MaxDays,
		})
	}
	return slotgrid.Generate(j.Config)
}

// Load reads and strictly decodes a schedule file, then builds the Job.
func Load(path string) (Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Job{}, err
	}
	f, err := decode(path, b)
	if err != nil {
		return Job{}, err
	}
	return f.job()
}

// decode parses YAML or JSON bytes into a File. YAML is coerced to JSON
// first so one strict decoder (DisallowUnknownFields) covers both
// formats.
func decode(path string, data []byte) (*File, error) {
	jb, err := coerceToJSONBytes(path, data)
	if err != nil {
		return nil, err
	}

	var f File
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%s: trailing data", path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func coerceToJSONBytes(path string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	j, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, nil
}

// normalizeYAML ensures all map keys are strings so the result can be
// JSON-marshaled.
func normalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = normalizeYAML(v)
		}
		return m
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}

func (f *File) job() (Job, error) {
	var job Job

	rng, err := f.Range.toRange("range")
	if err != nil {
		return Job{}, err
	}

	duration, err := parseDurationField("slot_duration", f.SlotDuration)
	if err != nil {
		return Job{}, err
	}
	interval, err := parseDurationField("slot_interval", f.SlotInterval)
	if err != nil {
		return Job{}, err
	}
	before, err := parseDurationField("buffer_before", f.BufferBefore)
	if err != nil {
		return Job{}, err
	}
	after, err := parseDurationField("buffer_after", f.BufferAfter)
	if err != nil {
		return Job{}, err
	}
	minDuration, err := parseDurationField("min_slot_duration", f.MinSlotDuration)
	if err != nil {
		return Job{}, err
	}

	exclusions := make([]slotgrid.Range, 0, len(f.Exclusions))
	for i, ex := range f.Exclusions {
		r, err := ex.toRange(fmt.Sprintf("exclusions[%d]", i))
		if err != nil {
			return Job{}, err
		}
		exclusions = append(exclusions, r)
	}

	job.Config = slotgrid.Config{
		Range:           rng,
		SlotDuration:    duration,
		SlotInterval:    interval,
		BufferBefore:    before,
		BufferAfter:     after,
		Exclusions:      exclusions,
		Timezone:        f.Timezone,
		Day:             f.Day,
		MinSlotDuration: minDuration,
		MaxSlots:        f.MaxSlots,
		IncludeEdge:     f.IncludeEdge,
		Alignment:       slotgrid.Alignment(f.Alignment),
	}

	if f.LabelFormat != "" {
		loc, err := labelLocation(f.Timezone)
		if err != nil {
			return Job{}, err
		}
		layout := f.LabelFormat
		job.Config.LabelFormatter = func(start, end time.Time, _ int, _ float64) (string, bool) {
			return start.In(loc).Format(layout) + " - " + end.In(loc).Format(layout), true
		}
	}

	if f.Period != nil {
		period, err := f.Period.toRange("period")
		if err != nil {
			return Job{}, err
		}
		job.Period = &period
		job.MaxDays = f.MaxDays
	}
	return job, nil
}

// labelLocation picks the zone labels render in: the configured zone,
// or the ambient local zone when none is set.
func labelLocation(timezone string) (*time.Location, error) {
	tz := strings.TrimSpace(timezone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

func parseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}
