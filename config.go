package slotgrid

import (
	"fmt"
	"strings"
	"time"
)

// normalizedConfig is the validated projection of Config that the
// packer consumes. Derived once per Generate call, never mutated.
type normalizedConfig struct {
	duration    time.Duration
	interval    time.Duration
	minDuration time.Duration
	includeEdge bool
	alignment   Alignment
	maxSlots    int // 0 = uncapped
	label       LabelFormatter
}

// capped reports whether the global slot cap has been reached at the
// given output length.
func (c normalizedConfig) capped(emitted int) bool {
	return c.maxSlots > 0 && emitted >= c.maxSlots
}

// normalize validates the config eagerly, before any date resolution is
// attempted.
func (c Config) normalize() (normalizedConfig, error) {
	if c.SlotDuration <= 0 {
		return normalizedConfig{}, fmt.Errorf("%w: SlotDuration must be positive, got %v", ErrValidation, c.SlotDuration)
	}

	interval := c.SlotInterval
	if interval == 0 {
		interval = c.SlotDuration
	}
	if interval < 0 {
		return normalizedConfig{}, fmt.Errorf("%w: SlotInterval must be positive, got %v", ErrValidation, c.SlotInterval)
	}

	if c.BufferBefore < 0 {
		return normalizedConfig{}, fmt.Errorf("%w: BufferBefore cannot be negative, got %v", ErrValidation, c.BufferBefore)
	}
	if c.BufferAfter < 0 {
		return normalizedConfig{}, fmt.Errorf("%w: BufferAfter cannot be negative, got %v", ErrValidation, c.BufferAfter)
	}

	minDuration := c.MinSlotDuration
	if minDuration == 0 {
		minDuration = c.SlotDuration
	}
	if minDuration < 0 {
		return normalizedConfig{}, fmt.Errorf("%w: MinSlotDuration must be positive, got %v", ErrValidation, c.MinSlotDuration)
	}

	if c.MaxSlots < 0 {
		return normalizedConfig{}, fmt.Errorf("%w: MaxSlots must be positive when set, got %d", ErrValidation, c.MaxSlots)
	}

	alignment := c.Alignment
	if alignment == "" {
		alignment = AlignStart
	}
	switch alignment {
	case AlignStart, AlignEnd, AlignCenter:
	default:
		return normalizedConfig{}, fmt.Errorf("%w: unknown alignment %q", ErrValidation, c.Alignment)
	}

	includeEdge := true
	if c.IncludeEdge != nil {
		includeEdge = *c.IncludeEdge
	}

	return normalizedConfig{
		duration:    c.SlotDuration,
		interval:    interval,
		minDuration: minDuration,
		includeEdge: includeEdge,
		alignment:   alignment,
		maxSlots:    c.MaxSlots,
		label:       c.LabelFormatter,
	}, nil
}

// zone maps the Timezone field onto its explicit variant.
func (c Config) zone() Zone {
	if strings.TrimSpace(c.Timezone) == "" {
		return LocalZone()
	}
	return NamedZone(strings.TrimSpace(c.Timezone))
}
