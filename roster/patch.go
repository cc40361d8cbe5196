/*
patch.go - Explicit partial-update types

PURPOSE:
  Shift and requirement edits arrive as partial updates. A nullable
  field cannot distinguish "leave this unchanged" from "clear this
  value" when absence is itself a legitimate value (clearing a shift's
  special-wage reference, for example). Field[T] makes the distinction
  explicit: a field is either untouched or set to a concrete value,
  and for optional references the set value may itself be nil,
  meaning "clear".

USAGE:
  patch := roster.ShiftPatch{
      EndTime:       roster.SetField(schedule.NewClockTime(23, 0)),
      SpecialWageID: roster.SetField[*string](nil), // clear the reference
  }
  updated := patch.Apply(shift)
*/
package roster

import "github.com/tilehouse/staffing-engine/schedule"

// =============================================================================
// FIELD - Set-or-untouched wrapper
// =============================================================================

// Field is an optional patch field: either untouched (the zero value)
// or set to a concrete value.
type Field[T any] struct {
	value T
	set   bool
}

// SetField returns a Field carrying the given value.
func SetField[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// IsSet reports whether the field was provided in the patch.
func (f Field[T]) IsSet() bool { return f.set }

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) { return f.value, f.set }

// =============================================================================
// SHIFT PATCH
// =============================================================================

// ShiftPatch is a partial update to a shift. Untouched fields keep
// their current value; SpecialWageID set to nil clears the reference.
type ShiftPatch struct {
	StartTime     Field[schedule.ClockTime]
	EndTime       Field[schedule.ClockTime]
	Breaks        Field[[]BreakSpec]
	SpecialWageID Field[*string]
}

// Apply returns a copy of the shift with the patch's set fields applied.
func (p ShiftPatch) Apply(s Shift) Shift {
	if v, ok := p.StartTime.Get(); ok {
		s.StartTime = v
	}
	if v, ok := p.EndTime.Get(); ok {
		s.EndTime = v
	}
	if v, ok := p.Breaks.Get(); ok {
		s.Breaks = v
	}
	if v, ok := p.SpecialWageID.Get(); ok {
		s.SpecialWageID = v
	}
	return s
}

// IsEmpty reports whether the patch touches nothing.
func (p ShiftPatch) IsEmpty() bool {
	return !p.StartTime.IsSet() && !p.EndTime.IsSet() && !p.Breaks.IsSet() && !p.SpecialWageID.IsSet()
}

// =============================================================================
// REQUIREMENT PATCH
// =============================================================================

// RequirementPatch is a partial update to a staffing requirement's
// headcounts.
type RequirementPatch struct {
	StartRequired Field[int]
	EndRequired   Field[int]
}

// Apply returns a copy of the requirement with set fields applied.
func (p RequirementPatch) Apply(r StaffingRequirement) StaffingRequirement {
	if v, ok := p.StartRequired.Get(); ok {
		r.StartRequired = v
	}
	if v, ok := p.EndRequired.Get(); ok {
		r.EndRequired = v
	}
	return r
}

// IsEmpty reports whether the patch touches nothing.
func (p RequirementPatch) IsEmpty() bool {
	return !p.StartRequired.IsSet() && !p.EndRequired.IsSet()
}
