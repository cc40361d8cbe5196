/*
Package schedule provides the core interval arithmetic for shift rostering.

PURPOSE:
  This package contains the pure time computations the rest of the system is
  built on: splitting a working interval into day-rate and night-rate minutes,
  deciding whether two intervals conflict, assigning a shift to a staffing
  slot, and sampling headcount at staffing checkpoints.

KEY CONCEPTS IN THIS FILE (types.go):
  - ClockTime: A local time of day with minute precision (e.g., 22:00)
  - BandConfig: The day/night wage band boundaries
  - Slot: One of two staffing slots (early / late) with its band
  - RequirementTable: Per-weekday default headcount requirements

DESIGN PRINCIPLES:
  1. Purity: Every function here is a total function over its inputs.
     No I/O, no clocks, no shared state - safe to call concurrently.
  2. Config over globals: Band boundaries and requirement defaults are
     values passed into the computations, never package-level state,
     so tests and alternate venue policies can substitute their own.
  3. One source of truth: Slot classification and checkpoint coverage
     derive from the same SlotBands value, so they can never diverge.

USAGE:
  seg := schedule.Segmenter{Bands: schedule.DefaultBands()}
  out := seg.ComputeMinutes(window, breaks, time.UTC)
  // out.DayMinutes + out.NightMinutes == worked minutes

SEE ALSO:
  - interval.go: Interval type, overlap checks, break subtraction
  - segment.go:  Day/night minute segmentation
  - slot.go:     Early/late slot classification
  - coverage.go: Checkpoint headcount and requirement defaults
*/
package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// CLOCK TIME - Local time of day, minute precision
// =============================================================================

// ClockTime is a time of day without a date. Shift and break times are
// entered as times of day; which calendar day they land on is resolved
// against the shift's work date (see interval.go).
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ParseClockTime parses "15:04" formatted input.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time of day %q (use HH:MM): %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MinuteOfDay returns minutes elapsed since local midnight.
func (c ClockTime) MinuteOfDay() int { return c.Hour*60 + c.Minute }

// On anchors the clock time to the calendar day of date, in date's location.
func (c ClockTime) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

func (c ClockTime) Before(other ClockTime) bool { return c.MinuteOfDay() < other.MinuteOfDay() }
func (c ClockTime) Equal(other ClockTime) bool  { return c.MinuteOfDay() == other.MinuteOfDay() }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// =============================================================================
// WAGE BANDS - Day vs night rate boundaries
// =============================================================================

// BandConfig defines the daily day-rate band. Everything outside
// [DayStart, DayEnd) is the night band.
type BandConfig struct {
	DayStart ClockTime
	DayEnd   ClockTime
}

// DefaultBands returns the standard venue policy: day rate between
// 05:00 and 22:00 local time, night rate otherwise.
func DefaultBands() BandConfig {
	return BandConfig{
		DayStart: ClockTime{Hour: 5},
		DayEnd:   ClockTime{Hour: 22},
	}
}

// =============================================================================
// STAFFING SLOTS - Early / late board buckets
// =============================================================================

// Slot identifies one of the two staffing periods a shift is assigned
// to for board and requirement purposes.
type Slot string

const (
	SlotEarly Slot = "early"
	SlotLate  Slot = "late"
)

// SlotBands defines the early slot's daily band. The late slot is the
// complement: [EarlyEnd, EarlyStart next day).
type SlotBands struct {
	EarlyStart ClockTime
	EarlyEnd   ClockTime
}

// DefaultSlotBands returns the standard venue policy: early slot
// between 10:00 and 22:00 local time.
func DefaultSlotBands() SlotBands {
	return SlotBands{
		EarlyStart: ClockTime{Hour: 10},
		EarlyEnd:   ClockTime{Hour: 22},
	}
}

// =============================================================================
// STAFFING REQUIREMENTS - Headcount defaults per weekday
// =============================================================================

// MaxRequiredCount bounds a staffing requirement. Anything above this
// is a data-entry mistake, not a real roster.
const MaxRequiredCount = 20

// RequiredCounts is the headcount required at a slot's start and end
// checkpoints.
type RequiredCounts struct {
	Start int
	End   int
}

// Clamp bounds both counts to [0, MaxRequiredCount].
func (rc RequiredCounts) Clamp() RequiredCounts {
	clamp := func(n int) int {
		if n < 0 {
			return 0
		}
		if n > MaxRequiredCount {
			return MaxRequiredCount
		}
		return n
	}
	return RequiredCounts{Start: clamp(rc.Start), End: clamp(rc.End)}
}

// RequirementTable holds the default required headcounts per weekday,
// indexed by time.Weekday (Sunday = 0).
type RequirementTable struct {
	Early [7]RequiredCounts
	Late  [7]RequiredCounts
}

// DefaultRequirementTable returns the standard venue policy:
//
//	early: Sat/Sun {4,4}, otherwise {3,4}
//	late:  Fri/Sat {5,4}, otherwise {4,3}
func DefaultRequirementTable() RequirementTable {
	var t RequirementTable
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		switch wd {
		case time.Saturday, time.Sunday:
			t.Early[wd] = RequiredCounts{Start: 4, End: 4}
		default:
			t.Early[wd] = RequiredCounts{Start: 3, End: 4}
		}
		switch wd {
		case time.Friday, time.Saturday:
			t.Late[wd] = RequiredCounts{Start: 5, End: 4}
		default:
			t.Late[wd] = RequiredCounts{Start: 4, End: 3}
		}
	}
	return t
}

// RequiredFor returns the required headcounts for a date and slot. An
// explicit override wins over the weekday default. Counts are clamped
// to the allowed range either way.
func (t RequirementTable) RequiredFor(date time.Time, slot Slot, override *RequiredCounts) RequiredCounts {
	if override != nil {
		return override.Clamp()
	}
	wd := date.Weekday()
	if slot == SlotLate {
		return t.Late[wd].Clamp()
	}
	return t.Early[wd].Clamp()
}
