package schedule_test

import (
	"testing"
	"time"

	"github.com/tilehouse/staffing-engine/schedule"
)

func TestCheckpoints(t *testing.T) {
	bands := schedule.DefaultSlotBands()
	date := at(2025, time.July, 4, 0, 0)

	start, end := bands.Checkpoints(date, schedule.SlotEarly)
	if !start.Equal(at(2025, time.July, 4, 10, 0)) || !end.Equal(at(2025, time.July, 4, 22, 0)) {
		t.Errorf("early checkpoints: got %v / %v", start, end)
	}

	start, end = bands.Checkpoints(date, schedule.SlotLate)
	if !start.Equal(at(2025, time.July, 4, 22, 0)) || !end.Equal(at(2025, time.July, 5, 10, 0)) {
		t.Errorf("late checkpoints must cross midnight: got %v / %v", start, end)
	}
}

func TestActualCoverage_InclusiveEndpoints(t *testing.T) {
	// A window ending exactly at a checkpoint still covers it.
	bands := schedule.DefaultSlotBands()
	date := at(2025, time.July, 4, 0, 0)

	windows := []schedule.Interval{
		iv(at(2025, time.July, 4, 9, 0), at(2025, time.July, 4, 22, 0)),  // covers both checkpoints, end inclusive
		iv(at(2025, time.July, 4, 12, 0), at(2025, time.July, 4, 21, 0)), // covers neither
		iv(at(2025, time.July, 4, 10, 0), at(2025, time.July, 4, 15, 0)), // starts exactly at the 10:00 checkpoint
	}

	cov := bands.ActualCoverage(windows, date, schedule.SlotEarly)
	if cov.StartActual != 2 {
		t.Errorf("expected 2 windows at the 10:00 checkpoint, got %d", cov.StartActual)
	}
	if cov.EndActual != 1 {
		t.Errorf("expected 1 window at the 22:00 checkpoint, got %d", cov.EndActual)
	}
}

func TestActualCoverage_LateSlotCrossesMidnight(t *testing.T) {
	bands := schedule.DefaultSlotBands()
	date := at(2025, time.July, 4, 0, 0)

	windows := []schedule.Interval{
		// Overnight shift running past the next morning's 10:00 checkpoint.
		iv(at(2025, time.July, 4, 21, 0), at(2025, time.July, 5, 10, 0)),
		// Evening shift ending before midnight.
		iv(at(2025, time.July, 4, 18, 0), at(2025, time.July, 4, 23, 0)),
	}

	cov := bands.ActualCoverage(windows, date, schedule.SlotLate)
	if cov.StartActual != 2 {
		t.Errorf("expected 2 windows at the 22:00 checkpoint, got %d", cov.StartActual)
	}
	if cov.EndActual != 1 {
		t.Errorf("expected 1 window at next-day 10:00, got %d", cov.EndActual)
	}
}

func TestActualCoverage_CountsRegardlessOfClassifiedSlot(t *testing.T) {
	// A shift that classifies late but is still running at the early
	// checkpoint counts toward the early checkpoint.
	bands := schedule.DefaultSlotBands()
	classifier := schedule.NewClassifier()
	date := at(2025, time.July, 4, 0, 0)

	overnight := iv(at(2025, time.July, 3, 22, 0), at(2025, time.July, 4, 10, 0))
	if classifier.Classify(overnight, time.UTC) != schedule.SlotLate {
		t.Fatal("fixture shift should classify late")
	}

	cov := bands.ActualCoverage([]schedule.Interval{overnight}, date, schedule.SlotEarly)
	if cov.StartActual != 1 {
		t.Errorf("late-classified shift still present at 10:00 must count, got %d", cov.StartActual)
	}
}

func TestActualCoverage_EmptyWindows(t *testing.T) {
	bands := schedule.DefaultSlotBands()
	cov := bands.ActualCoverage(nil, at(2025, time.July, 4, 0, 0), schedule.SlotEarly)
	if cov.StartActual != 0 || cov.EndActual != 0 {
		t.Errorf("empty roster must yield zero actuals, got %+v", cov)
	}
}

// =============================================================================
// REQUIREMENT DEFAULTS
// =============================================================================

func TestDefaultRequirementTable(t *testing.T) {
	table := schedule.DefaultRequirementTable()

	cases := []struct {
		date time.Time // 2025-07-04 is a Friday
		slot schedule.Slot
		want schedule.RequiredCounts
	}{
		{at(2025, time.July, 4, 0, 0), schedule.SlotEarly, schedule.RequiredCounts{Start: 3, End: 4}},  // Friday
		{at(2025, time.July, 5, 0, 0), schedule.SlotEarly, schedule.RequiredCounts{Start: 4, End: 4}},  // Saturday
		{at(2025, time.July, 6, 0, 0), schedule.SlotEarly, schedule.RequiredCounts{Start: 4, End: 4}},  // Sunday
		{at(2025, time.July, 4, 0, 0), schedule.SlotLate, schedule.RequiredCounts{Start: 5, End: 4}},   // Friday
		{at(2025, time.July, 5, 0, 0), schedule.SlotLate, schedule.RequiredCounts{Start: 5, End: 4}},   // Saturday
		{at(2025, time.July, 6, 0, 0), schedule.SlotLate, schedule.RequiredCounts{Start: 4, End: 3}},   // Sunday
		{at(2025, time.July, 7, 0, 0), schedule.SlotEarly, schedule.RequiredCounts{Start: 3, End: 4}},  // Monday
	}

	for _, tc := range cases {
		got := table.RequiredFor(tc.date, tc.slot, nil)
		if got != tc.want {
			t.Errorf("%s %s: expected %+v, got %+v", tc.date.Weekday(), tc.slot, tc.want, got)
		}
	}
}

func TestRequiredFor_OverrideWinsAndIsClamped(t *testing.T) {
	table := schedule.DefaultRequirementTable()
	date := at(2025, time.July, 4, 0, 0)

	override := &schedule.RequiredCounts{Start: 7, End: 2}
	if got := table.RequiredFor(date, schedule.SlotEarly, override); got != *override {
		t.Errorf("explicit override must win, got %+v", got)
	}

	wild := &schedule.RequiredCounts{Start: 99, End: -3}
	got := table.RequiredFor(date, schedule.SlotEarly, wild)
	if got.Start != schedule.MaxRequiredCount || got.End != 0 {
		t.Errorf("override must be clamped to [0, %d], got %+v", schedule.MaxRequiredCount, got)
	}
}
