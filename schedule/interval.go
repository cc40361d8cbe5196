/*
interval.go - Absolute intervals, midnight resolution, overlap, subtraction

PURPOSE:
  The Interval type and the operations the rest of the engine is built
  from: resolving times of day into absolute timestamps (including the
  "end before start means next day" rule), open-interval overlap checks,
  and subtracting break intervals from a working interval.

MIDNIGHT RESOLUTION:
  Shift and break times are entered as local times of day. A shift whose
  end time of day is not after its start time of day continues into the
  next calendar day. A break inherits its calendar day from the shift:
  if the shift crosses midnight and the break starts at a time of day
  earlier than the shift's start, the break belongs to the next day.

BREAK SUBTRACTION:
  Breaks are removed from the working interval by maintaining a list of
  free sub-intervals. Each break trims, splits, or removes the free
  sub-intervals it touches. Input breaks may be unsorted and may overlap
  each other or extend outside the shift - the subtraction collapses all
  of that.

SEE ALSO:
  - segment.go: walks the free sub-intervals against the wage bands
  - roster/validate.go: converts overlap hits into field-level errors
*/
package schedule

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// INTERVAL - Absolute [Start, End) span
// =============================================================================

// Interval is a span between two absolute instants. A well-formed
// interval has End strictly after Start; degenerate intervals are
// produced (and dropped) during break subtraction.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// Minutes returns the whole elapsed minutes, truncated.
func (iv Interval) Minutes() int { return int(iv.Duration() / time.Minute) }

// IsDegenerate reports whether the interval has no positive extent.
func (iv Interval) IsDegenerate() bool { return !iv.End.After(iv.Start) }

// Overlaps reports whether two intervals intersect, treating both as
// half-open: touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return other.Start.Before(iv.End) && iv.Start.Before(other.End)
}

// Contains reports whether t lies within the interval, inclusive of
// both endpoints. Checkpoint coverage counts boundary touches.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// Intersect returns the overlapping portion of two intervals, if any.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	out := Interval{Start: iv.Start, End: iv.End}
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	if out.IsDegenerate() {
		return Interval{}, false
	}
	return out, true
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// =============================================================================
// CLOCK-ONLY OVERLAP - Same-day times of day, no date attached
// =============================================================================

// OverlapsClock checks two same-day time-of-day pairs for overlap.
// Each pair is normalized first: an end not after its start continues
// into the next day (one full day is added before comparing).
func OverlapsClock(aStart, aEnd, bStart, bEnd ClockTime) bool {
	const dayMinutes = 24 * 60
	as, ae := aStart.MinuteOfDay(), aEnd.MinuteOfDay()
	bs, be := bStart.MinuteOfDay(), bEnd.MinuteOfDay()
	if ae <= as {
		ae += dayMinutes
	}
	if be <= bs {
		be += dayMinutes
	}
	return bs < ae && as < be
}

// =============================================================================
// MIDNIGHT RESOLUTION - Times of day onto calendar days
// =============================================================================

// ResolveShiftWindow resolves a work date plus start/end times of day
// into an absolute interval. An end time of day not after the start
// time of day means the shift runs into the next calendar day.
// workDate's location determines local time.
func ResolveShiftWindow(workDate time.Time, start, end ClockTime) Interval {
	s := start.On(workDate)
	e := end.On(workDate)
	if !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	return Interval{Start: s, End: e}
}

// ResolveBreakWindow places a break's times of day on the correct
// calendar day relative to its shift. If the shift crosses midnight and
// the break starts at a time of day earlier than the shift start, the
// break belongs to the day after the work date. A break whose own end
// is not after its start also runs into the following day.
func ResolveBreakWindow(workDate time.Time, shiftStart ClockTime, shiftCrossesMidnight bool, start, end ClockTime) Interval {
	day := workDate
	if shiftCrossesMidnight && start.Before(shiftStart) {
		day = day.AddDate(0, 0, 1)
	}
	s := start.On(day)
	e := end.On(day)
	if !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	return Interval{Start: s, End: e}
}

// =============================================================================
// BREAK SUBTRACTION - Free sub-interval list
// =============================================================================

// SubtractAll removes the break intervals from the working interval and
// returns the remaining free sub-intervals in chronological order.
// Breaks may be unsorted, may overlap each other, and may extend
// outside the working interval; a break entirely outside is a no-op.
func SubtractAll(work Interval, breaks []Interval) []Interval {
	free := []Interval{work}
	if len(breaks) == 0 {
		return free
	}

	sorted := make([]Interval, len(breaks))
	copy(sorted, breaks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for _, br := range sorted {
		next := make([]Interval, 0, len(free)+1)
		for _, f := range free {
			if !f.Overlaps(br) {
				next = append(next, f)
				continue
			}
			// Left remainder: free time before the break starts.
			if br.Start.After(f.Start) {
				left := Interval{Start: f.Start, End: br.Start}
				if !left.IsDegenerate() {
					next = append(next, left)
				}
			}
			// Right remainder: free time after the break ends.
			if br.End.Before(f.End) {
				right := Interval{Start: br.End, End: f.End}
				if !right.IsDegenerate() {
					next = append(next, right)
				}
			}
		}
		free = next
	}
	return free
}
