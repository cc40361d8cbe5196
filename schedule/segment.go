/*
segment.go - Day/night minute segmentation

PURPOSE:
  Splits a shift's working interval, with rest breaks removed, into
  day-rate and night-rate minute totals. This is the input to payroll:
  night minutes earn the night differential.

ALGORITHM:
  1. Subtract the breaks from the working interval (interval.go),
     leaving a list of free sub-intervals.
  2. Walk each free sub-interval forward. At every step, decide whether
     the current instant falls in the day band or the night band, find
     the next band boundary, and advance to whichever comes first - the
     boundary or the sub-interval end - crediting the elapsed seconds
     to the matching bucket.
  3. Convert each bucket to whole minutes, truncating.

  The walk supports shifts spanning any number of midnights without
  special cases: every day boundary is just another band boundary.

FAILURE SEMANTICS:
  None. Malformed windows (end not after start) are a precondition the
  validation layer enforces before anything reaches this engine.
*/
package schedule

import "time"

// Segments is the day/night split of a shift's worked minutes.
type Segments struct {
	DayMinutes   int
	NightMinutes int
}

// TotalMinutes returns the combined worked minutes.
func (s Segments) TotalMinutes() int { return s.DayMinutes + s.NightMinutes }

// Add accumulates another split into this one.
func (s Segments) Add(other Segments) Segments {
	return Segments{
		DayMinutes:   s.DayMinutes + other.DayMinutes,
		NightMinutes: s.NightMinutes + other.NightMinutes,
	}
}

// Segmenter splits working intervals against a day/night band policy.
// The zero value is not usable; construct with a BandConfig.
type Segmenter struct {
	Bands BandConfig
}

// NewSegmenter returns a segmenter using the standard venue bands.
func NewSegmenter() Segmenter {
	return Segmenter{Bands: DefaultBands()}
}

// ComputeMinutes returns the day/night minute split of the working
// interval after subtracting the given break intervals. Band membership
// is decided in loc's local time.
func (sg Segmenter) ComputeMinutes(work Interval, breaks []Interval, loc *time.Location) Segments {
	if loc == nil {
		loc = time.UTC
	}

	var daySecs, nightSecs int64
	for _, free := range SubtractAll(work, breaks) {
		d, n := sg.walk(free, loc)
		daySecs += d
		nightSecs += n
	}

	return Segments{
		DayMinutes:   int(daySecs / 60),
		NightMinutes: int(nightSecs / 60),
	}
}

// walk advances through one free sub-interval boundary by boundary,
// returning day and night seconds.
func (sg Segmenter) walk(free Interval, loc *time.Location) (daySecs, nightSecs int64) {
	cur := free.Start
	for cur.Before(free.End) {
		local := cur.In(loc)
		inDay := sg.inDayBand(local)

		boundary := sg.nextBoundary(local, inDay)
		next := boundary
		if free.End.Before(next) {
			next = free.End
		}

		elapsed := int64(next.Sub(cur) / time.Second)
		if inDay {
			daySecs += elapsed
		} else {
			nightSecs += elapsed
		}
		cur = next
	}
	return daySecs, nightSecs
}

// inDayBand reports whether the local instant falls in [DayStart, DayEnd).
func (sg Segmenter) inDayBand(local time.Time) bool {
	mod := local.Hour()*60 + local.Minute()
	// Sub-minute positions count toward the minute they are in.
	return mod >= sg.Bands.DayStart.MinuteOfDay() && mod < sg.Bands.DayEnd.MinuteOfDay()
}

// nextBoundary returns the next band-change instant strictly after (or
// at the band edge following) the local instant: DayEnd of the same
// local day when currently in the day band, otherwise DayStart of the
// same or next local day.
func (sg Segmenter) nextBoundary(local time.Time, inDay bool) time.Time {
	if inDay {
		return sg.Bands.DayEnd.On(local)
	}
	mod := local.Hour()*60 + local.Minute()
	if mod < sg.Bands.DayStart.MinuteOfDay() {
		return sg.Bands.DayStart.On(local)
	}
	return sg.Bands.DayStart.On(local.AddDate(0, 0, 1))
}
