/*
validate.go - Shift and requirement validation

PURPOSE:
  Turns conflicting or malformed roster input into field-level errors
  before anything reaches the segmentation or coverage engines. The
  engines themselves are total functions; this is the gate in front of
  them.

WHAT IS REJECTED:
  - A new/edited shift whose interval intersects another shift of the
    same worker on the same nominal work date
  - A break extending outside its shift's resolved window
  - Breaks on one shift intersecting each other
  - Requirement headcounts outside [0, MaxRequiredCount]
  - Requirement edits targeting a date already in the past

  Overlap uses the open-interval rule throughout: a shift ending 18:00
  and one starting 18:00 do not conflict.
*/
package roster

import (
	"fmt"
	"time"

	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// SHIFT VALIDATION
// =============================================================================

// ValidateShift checks a new or edited shift against the worker's other
// shifts and its own breaks. existing should hold the worker's shifts
// on or around the same work date; the shift itself (matched by ID) is
// skipped so edits don't conflict with their own stored row.
func ValidateShift(s Shift, existing []Shift, loc *time.Location) ValidationErrors {
	if loc == nil {
		loc = time.UTC
	}
	var errs ValidationErrors

	window := s.Window(loc)

	for _, other := range existing {
		if other.ID == s.ID || other.StaffID != s.StaffID || !s.SameWorkDate(other) {
			continue
		}
		if window.Overlaps(other.Window(loc)) {
			errs = append(errs, FieldError{
				Field:   "work_time",
				Code:    CodeOverlap,
				Message: fmt.Sprintf("overlaps shift %s-%s on the same date", other.StartTime, other.EndTime),
			})
		}
	}

	errs = append(errs, validateBreaks(s, window, loc)...)
	return errs
}

// validateBreaks checks each break for bounds and for conflicts with
// the shift's other breaks.
func validateBreaks(s Shift, window schedule.Interval, loc *time.Location) ValidationErrors {
	var errs ValidationErrors

	windows := s.BreakWindows(loc)
	for i, bw := range windows {
		field := fmt.Sprintf("breaks[%d]", i)

		if bw.Start.Before(window.Start) || bw.End.After(window.End) {
			errs = append(errs, FieldError{
				Field:   field,
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("break %s-%s is outside the shift", s.Breaks[i].Start, s.Breaks[i].End),
			})
		}

		for j := 0; j < i; j++ {
			if bw.Overlaps(windows[j]) {
				errs = append(errs, FieldError{
					Field:   field,
					Code:    CodeOverlap,
					Message: fmt.Sprintf("break %s-%s overlaps break %s-%s", s.Breaks[i].Start, s.Breaks[i].End, s.Breaks[j].Start, s.Breaks[j].End),
				})
			}
		}
	}
	return errs
}

// =============================================================================
// REQUIREMENT VALIDATION
// =============================================================================

// ValidateRequirement checks headcount bounds and, when now is
// non-zero, that the target date is still editable. now must be a
// single snapshot taken once per request so a computation straddling
// midnight stays consistent.
func ValidateRequirement(r StaffingRequirement, now time.Time, loc *time.Location) ValidationErrors {
	if loc == nil {
		loc = time.UTC
	}
	var errs ValidationErrors

	check := func(field string, n int) {
		if n < 0 || n > schedule.MaxRequiredCount {
			errs = append(errs, FieldError{
				Field:   field,
				Code:    CodeInvalid,
				Message: fmt.Sprintf("must be between 0 and %d", schedule.MaxRequiredCount),
			})
		}
	}
	check("start_required", r.StartRequired)
	check("end_required", r.EndRequired)

	if r.Slot != schedule.SlotEarly && r.Slot != schedule.SlotLate {
		errs = append(errs, FieldError{
			Field:   "slot",
			Code:    CodeInvalid,
			Message: fmt.Sprintf("unknown slot %q", r.Slot),
		})
	}

	if !now.IsZero() && !EditableOn(r.TargetDate, now, loc) {
		errs = append(errs, FieldError{
			Field:   "target_date",
			Code:    CodeReadOnly,
			Message: "past dates are read-only",
		})
	}

	return errs
}

// EditableOn reports whether a target date can still be edited given a
// wall-clock snapshot: today and future dates are editable, past dates
// are read-only.
func EditableOn(date, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return !target.Before(today)
}
