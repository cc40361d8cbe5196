/*
board.go - Staffing board assembly

PURPOSE:
  Builds the per-(date, slot) staffing board for a store over a date
  range: how many workers the venue needs at each checkpoint, how many
  the roster actually provides, and which shifts fall into each slot
  bucket.

  Actual coverage and slot classification both derive from the same
  SlotBands value, so the board can never disagree with itself about
  where a band boundary lies.

  The wall clock is sampled exactly once per build (the now argument)
  and reused for every row's editability flag, so a build straddling
  midnight yields a consistent board.
*/
package roster

import (
	"time"

	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// BOARD TYPES
// =============================================================================

// BoardRow is one (date, slot) cell of the staffing board.
type BoardRow struct {
	Date     time.Time
	Slot     schedule.Slot
	Required schedule.RequiredCounts
	Actual   schedule.Coverage

	// Shifts classified into this slot on this date, in input order.
	ShiftIDs []string

	// HasOverride is true when Required comes from a stored override
	// rather than the weekday default.
	HasOverride bool

	// Editable is false once the date is in the past.
	Editable bool
}

// Board is the full staffing board for a date range: two rows per day.
type Board struct {
	From time.Time
	To   time.Time
	Rows []BoardRow
}

// =============================================================================
// BOARD BUILDER
// =============================================================================

// BoardBuilder assembles staffing boards from shifts and requirement
// overrides. All policy (bands, defaults, timezone) is carried here as
// values so alternate venue policies are a construction away.
type BoardBuilder struct {
	Bands schedule.SlotBands
	Table schedule.RequirementTable
	Loc   *time.Location
}

// NewBoardBuilder returns a builder with the standard venue policy.
func NewBoardBuilder(loc *time.Location) BoardBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return BoardBuilder{
		Bands: schedule.DefaultSlotBands(),
		Table: schedule.DefaultRequirementTable(),
		Loc:   loc,
	}
}

// Build produces the board for [from, to] inclusive. An empty shift
// list or zero overrides is a valid roster: rows carry zero actuals and
// weekday-default requireds. now is the single wall-clock snapshot used
// for editability.
func (b BoardBuilder) Build(shifts []Shift, overrides []StaffingRequirement, from, to time.Time, now time.Time) Board {
	loc := b.Loc
	if loc == nil {
		loc = time.UTC
	}

	// Resolve every shift window once; coverage and classification both
	// reuse the same resolved intervals.
	windows := make([]schedule.Interval, len(shifts))
	for i, s := range shifts {
		windows[i] = s.Window(loc)
	}
	classifier := schedule.Classifier{Bands: b.Bands}

	overrideFor := indexOverrides(overrides)

	board := Board{From: from, To: to}
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)

	for !day.After(end) {
		for _, slot := range []schedule.Slot{schedule.SlotEarly, schedule.SlotLate} {
			var override *schedule.RequiredCounts
			if r, ok := overrideFor[overrideKey(day, slot)]; ok {
				c := r.Counts()
				override = &c
			}

			row := BoardRow{
				Date:        day,
				Slot:        slot,
				Required:    b.Table.RequiredFor(day, slot, override),
				Actual:      b.Bands.ActualCoverage(windows, day, slot),
				HasOverride: override != nil,
				Editable:    EditableOn(day, now, loc),
			}

			for i, s := range shifts {
				if !sameDay(s.WorkDate, day) {
					continue
				}
				if classifier.Classify(windows[i], loc) == slot {
					row.ShiftIDs = append(row.ShiftIDs, s.ID)
				}
			}

			board.Rows = append(board.Rows, row)
		}
		day = day.AddDate(0, 0, 1)
	}

	return board
}

func indexOverrides(overrides []StaffingRequirement) map[string]StaffingRequirement {
	idx := make(map[string]StaffingRequirement, len(overrides))
	for _, r := range overrides {
		idx[overrideKey(r.TargetDate, r.Slot)] = r
	}
	return idx
}

func overrideKey(date time.Time, slot schedule.Slot) string {
	return date.Format("2006-01-02") + "/" + string(slot)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
