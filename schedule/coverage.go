/*
coverage.go - Staffing checkpoint coverage

PURPOSE:
  Each (date, slot) pair on the staffing board has two checkpoints: the
  slot's start instant and its end instant. Coverage is how many shift
  windows contain each checkpoint, inclusive of endpoints - a worker
  clocking out exactly at the checkpoint still counts as present.

  Coverage is independent of a shift's own classified slot: a
  late-classified shift still running at an early checkpoint counts
  toward the early checkpoint.

  Required headcounts come from RequirementTable (types.go), with an
  explicit per-date override taking precedence over weekday defaults.
  An empty shift list is a valid board: zero actuals, never an error.
*/
package schedule

import "time"

// Coverage is the number of shift windows present at a slot's start and
// end checkpoints.
type Coverage struct {
	StartActual int
	EndActual   int
}

// Checkpoints returns the absolute start and end checkpoint instants
// for a date and slot. The early slot's checkpoints are the band's
// start and end on that date; the late slot runs from the band's end on
// that date to the band's start on the following date.
func (b SlotBands) Checkpoints(date time.Time, slot Slot) (start, end time.Time) {
	if slot == SlotLate {
		return b.EarlyEnd.On(date), b.EarlyStart.On(date.AddDate(0, 0, 1))
	}
	return b.EarlyStart.On(date), b.EarlyEnd.On(date)
}

// ActualCoverage counts how many of the resolved shift windows contain
// each of the slot's checkpoints for the given date. Containment is
// inclusive of both window endpoints.
func (b SlotBands) ActualCoverage(windows []Interval, date time.Time, slot Slot) Coverage {
	start, end := b.Checkpoints(date, slot)

	var cov Coverage
	for _, w := range windows {
		if w.Contains(start) {
			cov.StartActual++
		}
		if w.Contains(end) {
			cov.EndActual++
		}
	}
	return cov
}
