package schedule_test

import (
	"testing"
	"time"

	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func iv(start, end time.Time) schedule.Interval {
	return schedule.Interval{Start: start, End: end}
}

func clock(h, m int) schedule.ClockTime {
	return schedule.NewClockTime(h, m)
}

// =============================================================================
// REFERENCE FIXTURE
// =============================================================================

func TestComputeMinutes_OvernightShiftWithBreak(t *testing.T) {
	// GIVEN: A shift 21:00 -> 03:00 next day with a 23:00-23:30 break
	// WHEN: Segmenting against the standard 05:00-22:00 day band
	// THEN: 60 day minutes (21:00-22:00), 270 night minutes (22:00-03:00 minus 30)

	seg := schedule.NewSegmenter()
	work := iv(at(2025, time.January, 1, 21, 0), at(2025, time.January, 2, 3, 0))
	breaks := []schedule.Interval{
		iv(at(2025, time.January, 1, 23, 0), at(2025, time.January, 1, 23, 30)),
	}

	out := seg.ComputeMinutes(work, breaks, time.UTC)

	if out.DayMinutes != 60 {
		t.Errorf("expected 60 day minutes, got %d", out.DayMinutes)
	}
	if out.NightMinutes != 270 {
		t.Errorf("expected 270 night minutes, got %d", out.NightMinutes)
	}
}

// =============================================================================
// DAY + NIGHT == TOTAL PROPERTY
// =============================================================================

func TestComputeMinutes_BucketsSumToWorkedMinutes(t *testing.T) {
	// For any break placement, day + night minutes must equal the raw
	// minutes minus the effective (clipped, deduplicated) break minutes.

	work := iv(at(2025, time.March, 10, 9, 0), at(2025, time.March, 11, 2, 0)) // 17h raw

	cases := []struct {
		name    string
		breaks  []schedule.Interval
		wantMin int
	}{
		{
			name:    "no breaks",
			breaks:  nil,
			wantMin: 17 * 60,
		},
		{
			name: "break fully inside day band",
			breaks: []schedule.Interval{
				iv(at(2025, time.March, 10, 12, 0), at(2025, time.March, 10, 13, 0)),
			},
			wantMin: 16 * 60,
		},
		{
			name: "break straddling the 22:00 boundary",
			breaks: []schedule.Interval{
				iv(at(2025, time.March, 10, 21, 30), at(2025, time.March, 10, 22, 30)),
			},
			wantMin: 16 * 60,
		},
		{
			name: "break overlapping the shift start",
			breaks: []schedule.Interval{
				iv(at(2025, time.March, 10, 8, 0), at(2025, time.March, 10, 9, 30)),
			},
			wantMin: 16*60 + 30,
		},
		{
			name: "break fully outside the shift is ignored",
			breaks: []schedule.Interval{
				iv(at(2025, time.March, 11, 3, 0), at(2025, time.March, 11, 4, 0)),
			},
			wantMin: 17 * 60,
		},
		{
			name: "duplicated and overlapping breaks collapse",
			breaks: []schedule.Interval{
				iv(at(2025, time.March, 10, 12, 0), at(2025, time.March, 10, 13, 0)),
				iv(at(2025, time.March, 10, 12, 0), at(2025, time.March, 10, 13, 0)),
				iv(at(2025, time.March, 10, 12, 30), at(2025, time.March, 10, 13, 30)),
			},
			wantMin: 15*60 + 30,
		},
	}

	seg := schedule.NewSegmenter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := seg.ComputeMinutes(work, tc.breaks, time.UTC)
			if got := out.TotalMinutes(); got != tc.wantMin {
				t.Errorf("expected %d total minutes, got %d (day=%d night=%d)",
					tc.wantMin, got, out.DayMinutes, out.NightMinutes)
			}
		})
	}
}

func TestComputeMinutes_BreakEqualToShiftRemovesEverything(t *testing.T) {
	seg := schedule.NewSegmenter()
	work := iv(at(2025, time.March, 10, 9, 0), at(2025, time.March, 10, 18, 0))

	out := seg.ComputeMinutes(work, []schedule.Interval{work}, time.UTC)

	if out.TotalMinutes() != 0 {
		t.Errorf("expected zero minutes, got day=%d night=%d", out.DayMinutes, out.NightMinutes)
	}
}

func TestComputeMinutes_NoBreaksMatchesRawSegmentation(t *testing.T) {
	seg := schedule.NewSegmenter()
	work := iv(at(2025, time.March, 10, 20, 0), at(2025, time.March, 11, 6, 0))

	plain := seg.ComputeMinutes(work, nil, time.UTC)
	empty := seg.ComputeMinutes(work, []schedule.Interval{}, time.UTC)

	if plain != empty {
		t.Errorf("nil and empty break lists should agree: %+v vs %+v", plain, empty)
	}
	// 20:00-22:00 day, 22:00-05:00 night, 05:00-06:00 day
	if plain.DayMinutes != 180 || plain.NightMinutes != 420 {
		t.Errorf("expected day=180 night=420, got day=%d night=%d", plain.DayMinutes, plain.NightMinutes)
	}
}

// =============================================================================
// MULTI-MIDNIGHT WALK
// =============================================================================

func TestComputeMinutes_ShiftSpanningMultipleMidnights(t *testing.T) {
	// GIVEN: A 48h interval starting at 22:00
	// THEN: Each day cycle contributes 17h day / 7h night without special-casing

	seg := schedule.NewSegmenter()
	work := iv(at(2025, time.June, 1, 22, 0), at(2025, time.June, 3, 22, 0))

	out := seg.ComputeMinutes(work, nil, time.UTC)

	if out.DayMinutes != 2*17*60 {
		t.Errorf("expected %d day minutes, got %d", 2*17*60, out.DayMinutes)
	}
	if out.NightMinutes != 2*7*60 {
		t.Errorf("expected %d night minutes, got %d", 2*7*60, out.NightMinutes)
	}
	if out.TotalMinutes() != work.Minutes() {
		t.Errorf("buckets must sum to elapsed minutes: %d != %d", out.TotalMinutes(), work.Minutes())
	}
}

func TestComputeMinutes_AlternateBandConfig(t *testing.T) {
	// Band boundaries are injected config, not package state.
	seg := schedule.Segmenter{Bands: schedule.BandConfig{
		DayStart: clock(8, 0),
		DayEnd:   clock(20, 0),
	}}
	work := iv(at(2025, time.March, 10, 6, 0), at(2025, time.March, 10, 22, 0))

	out := seg.ComputeMinutes(work, nil, time.UTC)

	if out.DayMinutes != 12*60 || out.NightMinutes != 4*60 {
		t.Errorf("expected day=720 night=240, got day=%d night=%d", out.DayMinutes, out.NightMinutes)
	}
}

func TestComputeMinutes_NonUTCLocation(t *testing.T) {
	// The band membership is decided in local wall time, not UTC.
	loc := time.FixedZone("UTC+9", 9*3600)
	// 13:00Z = 22:00 local; everything after is night locally.
	work := schedule.Interval{
		Start: time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 1, 14, 0, 0, 0, time.UTC),
	}

	out := schedule.NewSegmenter().ComputeMinutes(work, nil, loc)

	if out.DayMinutes != 60 || out.NightMinutes != 60 {
		t.Errorf("expected day=60 night=60 in UTC+9, got day=%d night=%d", out.DayMinutes, out.NightMinutes)
	}
}
