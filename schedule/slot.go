/*
slot.go - Early/late staffing slot classification

PURPOSE:
  Staffing boards need exactly one bucket per shift for headcount
  planning even though a shift may span both slot bands. A shift is
  classified by where the majority of its raw (break-inclusive) minutes
  fall; ties resolve to the early slot so the assignment is
  deterministic and auditable.

ALGORITHM:
  Overlap with the early band is summed across every daily recurrence
  the shift touches, walking day by day from the shift's first local
  day. A shift longer than 24 hours (atypical, but representable)
  accumulates early minutes from each day cycle. Late minutes are the
  remainder of the raw duration.
*/
package schedule

import "time"

// Classifier assigns shifts to staffing slots using a slot band policy.
type Classifier struct {
	Bands SlotBands
}

// NewClassifier returns a classifier using the standard venue bands.
func NewClassifier() Classifier {
	return Classifier{Bands: DefaultSlotBands()}
}

// Classify assigns the shift's resolved window to a slot: late if the
// window spends strictly more minutes in the late band than the early
// band, early otherwise (ties are early).
func (c Classifier) Classify(window Interval, loc *time.Location) Slot {
	early, late := c.SplitMinutes(window, loc)
	if late > early {
		return SlotLate
	}
	return SlotEarly
}

// SplitMinutes returns the window's raw minutes falling in the early
// band and in its complement. The two always sum to the window's total
// elapsed minutes.
func (c Classifier) SplitMinutes(window Interval, loc *time.Location) (earlyMinutes, lateMinutes int) {
	if loc == nil {
		loc = time.UTC
	}
	total := window.Minutes()

	// Walk the early band's daily recurrences across the window.
	local := window.Start.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	for {
		band := Interval{
			Start: c.Bands.EarlyStart.On(day),
			End:   c.Bands.EarlyEnd.On(day),
		}
		if !band.Start.Before(window.End) {
			break
		}
		if x, ok := band.Intersect(window); ok {
			earlyMinutes += x.Minutes()
		}
		day = day.AddDate(0, 0, 1)
	}

	return earlyMinutes, total - earlyMinutes
}
