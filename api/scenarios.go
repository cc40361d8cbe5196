/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates shifts, overrides,
	wage data and incomes that demonstrate specific features.

AVAILABLE SCENARIOS:

	weekend-rush:   A store's weekend board with requirement overrides
	overnight-crew: Overnight shifts crossing midnight with breaks
	payday:         One worker's full month ready for payroll

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Seed shifts, overrides, wage policies, incomes and advances
 3. Leave the data for the UI or curl to explore

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "payday"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler helpers and response writers
  - server.go: Scenario routes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilehouse/staffing-engine/payroll"
	"github.com/tilehouse/staffing-engine/roster"
	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "weekend-rush",
		Name:        "Weekend Rush",
		Description: "A busy weekend board with raised headcount overrides",
	},
	{
		ID:          "overnight-crew",
		Name:        "Overnight Crew",
		Description: "Overnight shifts crossing midnight, with breaks on both sides",
	},
	{
		ID:          "payday",
		Name:        "Payday",
		Description: "One worker's month: shifts, special wage, game income and an advance",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "weekend-rush":
		err = h.loadWeekendRush(ctx)
	case "overnight-crew":
		err = h.loadOvernightCrew(ctx)
	case "payday":
		err = h.loadPayday(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// nextWeekday returns the next occurrence of wd strictly after the
// current local day, so seeded dates are always editable.
func (h *Handler) nextWeekday(wd time.Weekday) time.Time {
	now := h.now().In(h.Loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.Loc)
	for {
		day = day.AddDate(0, 0, 1)
		if day.Weekday() == wd {
			return day
		}
	}
}

func (h *Handler) seedShift(ctx context.Context, staff, store string, date time.Time, start, end schedule.ClockTime, breaks ...roster.BreakSpec) error {
	_, err := h.Store.CreateShift(ctx, roster.Shift{
		StaffID: staff, StoreID: store, WorkDate: date,
		StartTime: start, EndTime: end, Breaks: breaks,
	})
	return err
}

// loadWeekendRush seeds an upcoming Saturday/Sunday with partial
// coverage and raised requirement overrides, so the board shows both
// met and missed checkpoints.
func (h *Handler) loadWeekendRush(ctx context.Context) error {
	sat := h.nextWeekday(time.Saturday)
	sun := sat.AddDate(0, 0, 1)

	ct := schedule.NewClockTime
	seeds := []struct {
		staff      string
		date       time.Time
		start, end schedule.ClockTime
	}{
		{"akira", sat, ct(9, 30), ct(18, 0)},
		{"beni", sat, ct(10, 0), ct(22, 0)},
		{"chika", sat, ct(12, 0), ct(22, 0)},
		{"daigo", sat, ct(21, 0), ct(5, 0)},
		{"eri", sat, ct(22, 0), ct(4, 0)},
		{"akira", sun, ct(9, 30), ct(18, 0)},
		{"daigo", sun, ct(21, 0), ct(3, 0)},
	}
	for _, s := range seeds {
		if err := h.seedShift(ctx, s.staff, "main-floor", s.date, s.start, s.end); err != nil {
			return err
		}
	}

	// Saturday evening needs more hands than the default table says.
	_, err := h.Store.UpsertRequirement(ctx, roster.StaffingRequirement{
		StoreID: "main-floor", TargetDate: sat, Slot: schedule.SlotLate,
		StartRequired: 6, EndRequired: 4,
	})
	return err
}

// loadOvernightCrew seeds shifts that cross midnight, with breaks
// landing before and after the day boundary.
func (h *Handler) loadOvernightCrew(ctx context.Context) error {
	day := h.nextWeekday(time.Friday)
	ct := schedule.NewClockTime

	if err := h.seedShift(ctx, "daigo", "main-floor", day, ct(21, 0), ct(5, 0),
		roster.BreakSpec{Start: ct(23, 30), End: ct(0, 0)},
		roster.BreakSpec{Start: ct(2, 0), End: ct(2, 30)},
	); err != nil {
		return err
	}
	if err := h.seedShift(ctx, "eri", "main-floor", day, ct(22, 0), ct(6, 0),
		roster.BreakSpec{Start: ct(1, 0), End: ct(1, 45)},
	); err != nil {
		return err
	}
	return h.seedShift(ctx, "fumi", "main-floor", day.AddDate(0, 0, 1), ct(0, 0), ct(8, 0))
}

// loadPayday seeds one worker's current month end to end: a mix of day
// and overnight shifts, a special-wage shift, recorded game income and
// a pay advance. GET /api/staff/akira/payroll?month=<this month> shows
// the full breakdown.
func (h *Handler) loadPayday(ctx context.Context) error {
	now := h.now().In(h.Loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.Loc)
	ct := schedule.NewClockTime

	dealer, err := h.Store.CreateSpecialWage(ctx, roster.SpecialWage{
		StoreID: "main-floor", Label: "Head dealer", UnitPrice: 200,
	})
	if err != nil {
		return err
	}

	for d := 2; d <= 20; d += 3 {
		day := first.AddDate(0, 0, d-1)
		if d%2 == 0 {
			if err := h.seedShift(ctx, "akira", "main-floor", day, ct(10, 0), ct(19, 0),
				roster.BreakSpec{Start: ct(14, 0), End: ct(15, 0)}); err != nil {
				return err
			}
		} else {
			if err := h.seedShift(ctx, "akira", "main-floor", day, ct(21, 0), ct(3, 0),
				roster.BreakSpec{Start: ct(23, 0), End: ct(23, 30)}); err != nil {
				return err
			}
		}
	}

	// One shift at the dealer rate.
	if _, err := h.Store.CreateShift(ctx, roster.Shift{
		StaffID: "akira", StoreID: "main-floor",
		WorkDate:      first.AddDate(0, 0, 21),
		StartTime:     ct(18, 0),
		EndTime:       ct(23, 0),
		SpecialWageID: &dealer.ID,
	}); err != nil {
		return err
	}

	if err := h.Store.SetWagePolicy(ctx, "akira", payroll.DefaultWagePolicy()); err != nil {
		return err
	}
	if _, err := h.Store.RecordGameIncome(ctx, "akira", "main-floor",
		first.AddDate(0, 0, 9), decimal.NewFromInt(4500), "tournament night"); err != nil {
		return err
	}
	return h.Store.RecordAdvance(ctx, "akira", first.Year(), first.Month(), decimal.NewFromInt(20000))
}
