/*
Package roster implements the shift rostering domain on top of the
schedule engine.

PURPOSE:
  This package owns the Shift entity and everything that turns raw
  roster input into validated, resolved schedule intervals: field-level
  validation of new and edited shifts, explicit partial-update patches,
  and the staffing board that reconciles checkpoint coverage against
  required headcounts.

KEY CONCEPTS IN THIS FILE (types.go):
  - Shift: A worker's assignment on a work date, with rest breaks
  - BreakSpec: A rest break expressed as times of day
  - StaffingRequirement: An explicit per-date headcount override
  - SpecialWage: A supplemental hourly rate a shift can reference

DESIGN PRINCIPLES:
  1. Times of day in, absolute intervals out: shifts are entered the way
     staff think about them (work date + clock times); the resolved
     Window/BreakWindows methods produce the absolute intervals the
     schedule package computes with.
  2. Validation before computation: the segmentation and coverage
     engines assume well-formed windows; this package is where
     malformed input is turned into field-level errors.

SEE ALSO:
  - patch.go:    Partial-update types with explicit set/clear semantics
  - validate.go: Shift and break conflict validation
  - board.go:    Staffing board assembly
*/
package roster

import (
	"time"

	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// SHIFT - A worker's assignment on a work date
// =============================================================================

// Shift is a single rostered assignment. Start and end are times of
// day on the work date; an end not after the start means the shift runs
// into the next calendar day.
type Shift struct {
	ID      string
	StaffID string
	StoreID string

	// WorkDate is the nominal calendar day the shift belongs to, even
	// when the shift itself runs past midnight.
	WorkDate time.Time

	StartTime schedule.ClockTime
	EndTime   schedule.ClockTime

	Breaks []BreakSpec

	// SpecialWageID optionally references a supplemental hourly rate.
	// nil means no special wage applies.
	SpecialWageID *string
}

// BreakSpec is a rest break expressed as times of day. Which calendar
// day it lands on is inferred from the shift (see Shift.BreakWindows).
type BreakSpec struct {
	Start schedule.ClockTime
	End   schedule.ClockTime
}

// CrossesMidnight reports whether the shift's end time of day does not
// follow its start, i.e. the shift continues into the next day.
func (s Shift) CrossesMidnight() bool {
	return s.EndTime.MinuteOfDay() <= s.StartTime.MinuteOfDay()
}

// day returns the shift's work date anchored to midnight in loc.
func (s Shift) day(loc *time.Location) time.Time {
	return time.Date(s.WorkDate.Year(), s.WorkDate.Month(), s.WorkDate.Day(), 0, 0, 0, 0, loc)
}

// Window resolves the shift to an absolute working interval in loc.
func (s Shift) Window(loc *time.Location) schedule.Interval {
	if loc == nil {
		loc = time.UTC
	}
	return schedule.ResolveShiftWindow(s.day(loc), s.StartTime, s.EndTime)
}

// BreakWindows resolves every break to an absolute interval relative to
// the shift's work date and midnight crossing.
func (s Shift) BreakWindows(loc *time.Location) []schedule.Interval {
	if loc == nil {
		loc = time.UTC
	}
	if len(s.Breaks) == 0 {
		return nil
	}
	day := s.day(loc)
	crosses := s.CrossesMidnight()
	windows := make([]schedule.Interval, len(s.Breaks))
	for i, br := range s.Breaks {
		windows[i] = schedule.ResolveBreakWindow(day, s.StartTime, crosses, br.Start, br.End)
	}
	return windows
}

// SameWorkDate reports whether two shifts share a nominal work date.
func (s Shift) SameWorkDate(other Shift) bool {
	return s.WorkDate.Year() == other.WorkDate.Year() &&
		s.WorkDate.Month() == other.WorkDate.Month() &&
		s.WorkDate.Day() == other.WorkDate.Day()
}

// =============================================================================
// STAFFING REQUIREMENT - Explicit headcount override
// =============================================================================

// StaffingRequirement is a stored override of the weekday-default
// headcounts for one (store, date, slot).
type StaffingRequirement struct {
	ID            string
	StoreID       string
	TargetDate    time.Time
	Slot          schedule.Slot
	StartRequired int
	EndRequired   int
}

// Counts returns the override as the schedule package's counts type.
func (r StaffingRequirement) Counts() schedule.RequiredCounts {
	return schedule.RequiredCounts{Start: r.StartRequired, End: r.EndRequired}
}

// =============================================================================
// SPECIAL WAGE - Supplemental hourly rate reference
// =============================================================================

// SpecialWage is a supplemental hourly amount a shift can opt into
// (e.g. a trainer rate or an event premium). The payroll aggregator
// itemizes these per shift.
type SpecialWage struct {
	ID        string
	StoreID   string
	Label     string
	UnitPrice float64 // currency units per hour
}
