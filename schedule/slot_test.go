package schedule_test

import (
	"testing"
	"time"

	"github.com/tilehouse/staffing-engine/schedule"
)

func TestClassify_DayShiftIsEarly(t *testing.T) {
	c := schedule.NewClassifier()
	window := iv(at(2025, time.February, 1, 9, 0), at(2025, time.February, 1, 18, 0))

	if got := c.Classify(window, time.UTC); got != schedule.SlotEarly {
		t.Errorf("09:00-18:00 should classify early, got %s", got)
	}
}

func TestClassify_OvernightShiftIsLate(t *testing.T) {
	// 21:00-01:00: 60 minutes in the early band, 180 outside it.
	c := schedule.NewClassifier()
	window := iv(at(2025, time.February, 1, 21, 0), at(2025, time.February, 2, 1, 0))

	if got := c.Classify(window, time.UTC); got != schedule.SlotLate {
		t.Errorf("21:00-01:00 should classify late, got %s", got)
	}
}

func TestClassify_ExactTieResolvesEarly(t *testing.T) {
	// 16:00-04:00: 360 early minutes (16:00-22:00), 360 late minutes.
	c := schedule.NewClassifier()
	window := iv(at(2025, time.February, 1, 16, 0), at(2025, time.February, 2, 4, 0))

	early, late := c.SplitMinutes(window, time.UTC)
	if early != late {
		t.Fatalf("fixture is supposed to be an exact tie, got early=%d late=%d", early, late)
	}
	if got := c.Classify(window, time.UTC); got != schedule.SlotEarly {
		t.Errorf("exact tie must resolve early, got %s", got)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	c := schedule.NewClassifier()
	window := iv(at(2025, time.February, 1, 21, 0), at(2025, time.February, 2, 1, 0))

	first := c.Classify(window, time.UTC)
	for i := 0; i < 3; i++ {
		if got := c.Classify(window, time.UTC); got != first {
			t.Fatalf("classification changed between calls: %s then %s", first, got)
		}
	}
}

func TestSplitMinutes_SumsToElapsed(t *testing.T) {
	c := schedule.NewClassifier()

	windows := []schedule.Interval{
		iv(at(2025, time.February, 1, 9, 0), at(2025, time.February, 1, 18, 0)),
		iv(at(2025, time.February, 1, 21, 0), at(2025, time.February, 2, 1, 0)),
		iv(at(2025, time.February, 1, 16, 0), at(2025, time.February, 2, 4, 0)),
		iv(at(2025, time.February, 1, 23, 0), at(2025, time.February, 2, 2, 0)),
	}

	for _, w := range windows {
		early, late := c.SplitMinutes(w, time.UTC)
		if early+late != w.Minutes() {
			t.Errorf("split of %v must sum to %d, got early=%d late=%d", w, w.Minutes(), early, late)
		}
	}
}

func TestSplitMinutes_ShiftLongerThanADay(t *testing.T) {
	// A 30h shift touches the early band on two successive days.
	c := schedule.NewClassifier()
	window := iv(at(2025, time.February, 1, 9, 0), at(2025, time.February, 2, 15, 0))

	early, late := c.SplitMinutes(window, time.UTC)

	// Day 1: 10:00-22:00 = 720. Day 2: 10:00-15:00 = 300.
	if early != 1020 {
		t.Errorf("expected 1020 early minutes across two band recurrences, got %d", early)
	}
	if early+late != window.Minutes() {
		t.Errorf("split must sum to elapsed minutes")
	}
}
