/*
handlers.go - HTTP API handlers for the staffing engine

PURPOSE:
  Exposes the rostering and payroll engines via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Shifts:
    POST   /api/shifts                   Roster a shift
    GET    /api/shifts/{id}              Get one shift
    PUT    /api/shifts/{id}              Replace a shift
    PATCH  /api/shifts/{id}              Partially update a shift
    DELETE /api/shifts/{id}              Remove a shift

  Board:
    GET    /api/board                    Staffing board for a store/range
    GET    /api/requirements             List requirement overrides
    PUT    /api/requirements             Override a (date, slot) headcount

  Payroll:
    GET    /api/staff/{id}/shifts        Shifts with day/night minute split
    GET    /api/staff/{id}/payroll       Monthly breakdown
    GET    /api/staff/{id}/wage-policy   Pay terms
    PUT    /api/staff/{id}/wage-policy   Set pay terms
    POST   /api/incomes                  Record game income
    POST   /api/advances                 Record a pay advance
    GET    /api/special-wages            List supplemental rates
    POST   /api/special-wages            Create a supplemental rate

  Scenarios:
    GET    /api/scenarios                List demo scenarios
    GET    /api/scenarios/current        Currently loaded scenario
    POST   /api/scenarios/load           Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Config: Venue policy (bands, requirement table, wage defaults)
  - A clock function, sampled once per request for editability

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (segmenter, board builder, aggregator)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (overlapping shifts, read-only past dates)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/tilehouse/staffing-engine/factory"
	"github.com/tilehouse/staffing-engine/payroll"
	"github.com/tilehouse/staffing-engine/roster"
	"github.com/tilehouse/staffing-engine/schedule"
	"github.com/tilehouse/staffing-engine/store/sqlite"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Config factory.VenueConfig
	Loc    *time.Location

	boards     roster.BoardBuilder
	aggregator payroll.Aggregator
	classifier schedule.Classifier

	// now is sampled once per request; editability decisions within one
	// request never straddle midnight.
	now func() time.Time

	currentScenario string
}

// NewHandler creates a new handler with the given store and venue
// configuration.
func NewHandler(store *sqlite.Store, cfg factory.VenueConfig, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	agg := payroll.NewAggregator(loc)
	agg.Segmenter = schedule.Segmenter{Bands: cfg.Bands}

	return &Handler{
		Store:  store,
		Config: cfg,
		Loc:    loc,
		boards: roster.BoardBuilder{
			Bands: cfg.Slots,
			Table: cfg.Requirements,
			Loc:   loc,
		},
		aggregator: agg,
		classifier: schedule.Classifier{Bands: cfg.Slots},
		now:        time.Now,
	}
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// CreateShift rosters a new shift.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StaffID == "" || req.StoreID == "" {
		writeError(w, http.StatusBadRequest, "staff_id and store_id are required", nil)
		return
	}

	shift, err := h.shiftFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	if ok := h.validateAgainstRoster(w, r, shift); !ok {
		return
	}

	created, err := h.Store.CreateShift(r.Context(), shift)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create shift", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.shiftDTO(created))
}

// GetShift returns one shift.
// GET /api/shifts/{id}
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift, err := h.Store.GetShift(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, roster.ErrShiftNotFound) {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	writeJSON(w, http.StatusOK, h.shiftDTO(shift))
}

// UpdateShift replaces a shift.
// PUT /api/shifts/{id}
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	shift, err := h.shiftFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}
	shift.ID = id

	if ok := h.validateAgainstRoster(w, r, shift); !ok {
		return
	}

	if err := h.Store.UpdateShift(r.Context(), shift); err != nil {
		if errors.Is(err, roster.ErrShiftNotFound) {
			writeError(w, http.StatusNotFound, "Shift not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update shift", err)
		return
	}

	writeJSON(w, http.StatusOK, h.shiftDTO(shift))
}

// PatchShift applies a partial update. Absent fields are left alone; an
// explicit null special_wage_id clears the reference.
// PATCH /api/shifts/{id}
func (h *Handler) PatchShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	patch, err := decodeShiftPatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid patch body", err)
		return
	}

	shift, err := h.Store.GetShift(r.Context(), id)
	if errors.Is(err, roster.ErrShiftNotFound) {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}

	updated := patch.Apply(shift)

	if ok := h.validateAgainstRoster(w, r, updated); !ok {
		return
	}

	if err := h.Store.UpdateShift(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update shift", err)
		return
	}

	writeJSON(w, http.StatusOK, h.shiftDTO(updated))
}

// DeleteShift removes a shift.
// DELETE /api/shifts/{id}
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteShift(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, roster.ErrShiftNotFound) {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateAgainstRoster runs shift validation against the worker's
// other shifts on the same work date and writes the error response on
// failure. Returns true when the shift is valid.
func (h *Handler) validateAgainstRoster(w http.ResponseWriter, r *http.Request, shift roster.Shift) bool {
	existing, err := h.Store.ListShiftsForWorkerDate(r.Context(), shift.StaffID, shift.WorkDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return false
	}
	if errs := roster.ValidateShift(shift, existing, h.Loc); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return false
	}
	return true
}

func (h *Handler) shiftFromRequest(req CreateShiftRequest) (roster.Shift, error) {
	workDate, err := time.ParseInLocation(dateLayout, req.WorkDate, h.Loc)
	if err != nil {
		return roster.Shift{}, fmt.Errorf("invalid work_date (use YYYY-MM-DD): %w", err)
	}
	start, err := schedule.ParseClockTime(req.StartTime)
	if err != nil {
		return roster.Shift{}, err
	}
	end, err := schedule.ParseClockTime(req.EndTime)
	if err != nil {
		return roster.Shift{}, err
	}

	shift := roster.Shift{
		StaffID:       req.StaffID,
		StoreID:       req.StoreID,
		WorkDate:      workDate,
		StartTime:     start,
		EndTime:       end,
		SpecialWageID: req.SpecialWageID,
	}
	for _, b := range req.Breaks {
		bs, err := schedule.ParseClockTime(b.Start)
		if err != nil {
			return roster.Shift{}, err
		}
		be, err := schedule.ParseClockTime(b.End)
		if err != nil {
			return roster.Shift{}, err
		}
		shift.Breaks = append(shift.Breaks, roster.BreakSpec{Start: bs, End: be})
	}
	return shift, nil
}

func (h *Handler) shiftDTO(s roster.Shift) ShiftDTO {
	slot := h.classifier.Classify(s.Window(h.Loc), h.Loc)
	return toShiftDTO(s, slot)
}

// decodeShiftPatch maps a JSON body onto a ShiftPatch, preserving the
// absent vs null distinction for special_wage_id.
func decodeShiftPatch(r *http.Request) (roster.ShiftPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return roster.ShiftPatch{}, err
	}

	var patch roster.ShiftPatch

	clockField := func(key string) (schedule.ClockTime, bool, error) {
		v, ok := raw[key]
		if !ok {
			return schedule.ClockTime{}, false, nil
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return schedule.ClockTime{}, false, fmt.Errorf("invalid %s: %w", key, err)
		}
		ct, err := schedule.ParseClockTime(s)
		return ct, true, err
	}

	if ct, ok, err := clockField("start_time"); err != nil {
		return roster.ShiftPatch{}, err
	} else if ok {
		patch.StartTime = roster.SetField(ct)
	}
	if ct, ok, err := clockField("end_time"); err != nil {
		return roster.ShiftPatch{}, err
	} else if ok {
		patch.EndTime = roster.SetField(ct)
	}

	if v, ok := raw["breaks"]; ok {
		var dtos []BreakDTO
		if err := json.Unmarshal(v, &dtos); err != nil {
			return roster.ShiftPatch{}, fmt.Errorf("invalid breaks: %w", err)
		}
		breaks := make([]roster.BreakSpec, 0, len(dtos))
		for _, b := range dtos {
			bs, err := schedule.ParseClockTime(b.Start)
			if err != nil {
				return roster.ShiftPatch{}, err
			}
			be, err := schedule.ParseClockTime(b.End)
			if err != nil {
				return roster.ShiftPatch{}, err
			}
			breaks = append(breaks, roster.BreakSpec{Start: bs, End: be})
		}
		patch.Breaks = roster.SetField(breaks)
	}

	if v, ok := raw["special_wage_id"]; ok {
		if string(v) == "null" {
			patch.SpecialWageID = roster.SetField[*string](nil)
		} else {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return roster.ShiftPatch{}, fmt.Errorf("invalid special_wage_id: %w", err)
			}
			patch.SpecialWageID = roster.SetField(&s)
		}
	}

	return patch, nil
}

// ListStaffShifts returns a worker's shifts in a date range, each with
// its day/night minute split.
// GET /api/staff/{id}/shifts?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListStaffShifts(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "id")
	from, errFrom := time.ParseInLocation(dateLayout, r.URL.Query().Get("from"), h.Loc)
	to, errTo := time.ParseInLocation(dateLayout, r.URL.Query().Get("to"), h.Loc)
	if errFrom != nil || errTo != nil {
		writeError(w, http.StatusBadRequest, "from and to are required (use YYYY-MM-DD)", nil)
		return
	}

	shifts, err := h.Store.ListShiftsForWorkerRange(r.Context(), staffID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}

	dtos := make([]StaffShiftDTO, len(shifts))
	for i, s := range shifts {
		seg := h.aggregator.Segmenter.ComputeMinutes(s.Window(h.Loc), s.BreakWindows(h.Loc), h.Loc)
		dtos[i] = StaffShiftDTO{
			ShiftDTO:     h.shiftDTO(s),
			DayMinutes:   seg.DayMinutes,
			NightMinutes: seg.NightMinutes,
			TotalMinutes: seg.TotalMinutes(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// BOARD HANDLERS
// =============================================================================

// GetBoard returns the staffing board for a store and date range.
// GET /api/board?store={id}&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("store")
	if storeID == "" {
		writeError(w, http.StatusBadRequest, "store query parameter is required", nil)
		return
	}
	from, err := time.ParseInLocation(dateLayout, r.URL.Query().Get("from"), h.Loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}
	to, err := time.ParseInLocation(dateLayout, r.URL.Query().Get("to"), h.Loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to must not precede from", nil)
		return
	}

	shifts, err := h.Store.ListShiftsForStoreRange(r.Context(), storeID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	overrides, err := h.Store.ListRequirements(r.Context(), storeID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load requirements", err)
		return
	}

	board := h.boards.Build(shifts, overrides, from, to, h.now())
	writeJSON(w, http.StatusOK, toBoardDTO(storeID, board))
}

// ListRequirements returns a store's explicit overrides in a range.
// GET /api/requirements?store={id}&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListRequirements(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("store")
	from, errFrom := time.ParseInLocation(dateLayout, r.URL.Query().Get("from"), h.Loc)
	to, errTo := time.ParseInLocation(dateLayout, r.URL.Query().Get("to"), h.Loc)
	if storeID == "" || errFrom != nil || errTo != nil {
		writeError(w, http.StatusBadRequest, "store, from and to are required", nil)
		return
	}

	reqs, err := h.Store.ListRequirements(r.Context(), storeID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load requirements", err)
		return
	}

	dtos := make([]RequirementDTO, len(reqs))
	for i, req := range reqs {
		dtos[i] = toRequirementDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// PutRequirement overrides the headcounts for one (store, date, slot).
// Past dates are read-only.
// PUT /api/requirements
func (h *Handler) PutRequirement(w http.ResponseWriter, r *http.Request) {
	var req RequirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StoreID == "" {
		writeError(w, http.StatusBadRequest, "store_id is required", nil)
		return
	}
	targetDate, err := time.ParseInLocation(dateLayout, req.TargetDate, h.Loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid target_date (use YYYY-MM-DD)", err)
		return
	}

	requirement := roster.StaffingRequirement{
		StoreID:       req.StoreID,
		TargetDate:    targetDate,
		Slot:          schedule.Slot(req.Slot),
		StartRequired: req.StartRequired,
		EndRequired:   req.EndRequired,
	}

	if errs := roster.ValidateRequirement(requirement, h.now(), h.Loc); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	stored, err := h.Store.UpsertRequirement(r.Context(), requirement)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store requirement", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequirementDTO(stored))
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// GetPayroll computes the monthly breakdown for a worker.
// GET /api/staff/{id}/payroll?month=YYYY-MM
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "id")
	month, err := time.ParseInLocation("2006-01", r.URL.Query().Get("month"), h.Loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	ctx := r.Context()
	shifts, err := h.Store.ListShiftsForWorkerMonth(ctx, staffID, month.Year(), month.Month())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}

	// Resolve special wages for every store the worker touched.
	specialWages := make(map[string]roster.SpecialWage)
	seen := make(map[string]bool)
	for _, s := range shifts {
		if seen[s.StoreID] {
			continue
		}
		seen[s.StoreID] = true
		wages, err := h.Store.SpecialWagesByID(ctx, s.StoreID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load special wages", err)
			return
		}
		for id, sw := range wages {
			specialWages[id] = sw
		}
	}

	policy, _, err := h.Store.GetWagePolicy(ctx, staffID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load wage policy", err)
		return
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, h.Loc)
	last := first.AddDate(0, 1, -1)
	gameIncome, err := h.Store.SumGameIncome(ctx, staffID, first, last)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load game income", err)
		return
	}
	advance, err := h.Store.GetAdvance(ctx, staffID, month.Year(), month.Month())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load advance", err)
		return
	}

	breakdown, err := h.aggregator.ComputeMonthly(shifts, specialWages, policy, payroll.Incidentals{
		GameIncomeTotal: gameIncome,
		AdvanceAmount:   advance,
	})
	if err != nil {
		var errs roster.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationErrors(w, errs)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute payroll", err)
		return
	}

	writeJSON(w, http.StatusOK, toPayrollDTO(staffID, month, breakdown))
}

// GetWagePolicy returns a worker's pay terms (defaults if none stored).
// GET /api/staff/{id}/wage-policy
func (h *Handler) GetWagePolicy(w http.ResponseWriter, r *http.Request) {
	policy, _, err := h.Store.GetWagePolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load wage policy", err)
		return
	}
	writeJSON(w, http.StatusOK, toWagePolicyRequest(policy))
}

// SetWagePolicy stores a worker's pay terms.
// PUT /api/staff/{id}/wage-policy
func (h *Handler) SetWagePolicy(w http.ResponseWriter, r *http.Request) {
	var req WagePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	policy := payroll.DefaultWagePolicy()
	switch req.Kind {
	case "fixed":
		policy.Kind = payroll.PolicyFixed
	case "hourly", "":
		policy.Kind = payroll.PolicyHourly
	default:
		writeError(w, http.StatusBadRequest, "kind must be hourly or fixed", nil)
		return
	}
	set := func(dst *decimal.Decimal, v *float64) {
		if v != nil {
			*dst = decimal.NewFromFloat(*v)
		}
	}
	set(&policy.HourlyWage, req.HourlyWage)
	set(&policy.FixedSalary, req.FixedSalary)
	set(&policy.NightRateMultiplier, req.NightRateMultiplier)
	set(&policy.TransportPerShift, req.TransportPerShift)
	set(&policy.IncomeTaxRate, req.IncomeTaxRate)

	if errs := payroll.ValidatePolicy(policy); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.Store.SetWagePolicy(r.Context(), chi.URLParam(r, "id"), policy); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store wage policy", err)
		return
	}
	writeJSON(w, http.StatusOK, toWagePolicyRequest(policy))
}

// RecordIncome records one game income entry.
// POST /api/incomes
func (h *Handler) RecordIncome(w http.ResponseWriter, r *http.Request) {
	var req IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StaffID == "" || req.StoreID == "" {
		writeError(w, http.StatusBadRequest, "staff_id and store_id are required", nil)
		return
	}
	playedOn, err := time.ParseInLocation(dateLayout, req.PlayedOn, h.Loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid played_on (use YYYY-MM-DD)", err)
		return
	}

	id, err := h.Store.RecordGameIncome(r.Context(), req.StaffID, req.StoreID, playedOn, decimal.NewFromFloat(req.Amount), req.Note)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record income", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// RecordAdvance records the pay advance for a worker/month.
// POST /api/advances
func (h *Handler) RecordAdvance(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	if err := h.Store.RecordAdvance(r.Context(), req.StaffID, month.Year(), month.Month(), decimal.NewFromFloat(req.Amount)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record advance", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateSpecialWage creates a supplemental hourly rate.
// POST /api/special-wages
func (h *Handler) CreateSpecialWage(w http.ResponseWriter, r *http.Request) {
	var req SpecialWageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StoreID == "" || req.Label == "" {
		writeError(w, http.StatusBadRequest, "store_id and label are required", nil)
		return
	}

	created, err := h.Store.CreateSpecialWage(r.Context(), roster.SpecialWage{
		StoreID:   req.StoreID,
		Label:     req.Label,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create special wage", err)
		return
	}
	writeJSON(w, http.StatusCreated, SpecialWageDTO{
		ID: created.ID, StoreID: created.StoreID, Label: created.Label, UnitPrice: created.UnitPrice,
	})
}

// ListSpecialWages returns a store's supplemental rates.
// GET /api/special-wages?store={id}
func (h *Handler) ListSpecialWages(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("store")
	if storeID == "" {
		writeError(w, http.StatusBadRequest, "store query parameter is required", nil)
		return
	}

	wages, err := h.Store.SpecialWagesByID(r.Context(), storeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load special wages", err)
		return
	}

	dtos := make([]SpecialWageDTO, 0, len(wages))
	for _, sw := range wages {
		dtos = append(dtos, SpecialWageDTO{ID: sw.ID, StoreID: sw.StoreID, Label: sw.Label, UnitPrice: sw.UnitPrice})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func toWagePolicyRequest(p payroll.WagePolicy) WagePolicyRequest {
	f := func(d decimal.Decimal) *float64 {
		v, _ := d.Float64()
		return &v
	}
	req := WagePolicyRequest{
		Kind:                string(p.Kind),
		HourlyWage:          f(p.HourlyWage),
		NightRateMultiplier: f(p.NightRateMultiplier),
		TransportPerShift:   f(p.TransportPerShift),
		IncomeTaxRate:       f(p.IncomeTaxRate),
	}
	if p.FixedSalary.IsPositive() {
		req.FixedSalary = f(p.FixedSalary)
	}
	return req
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeValidationErrors aggregates field errors into one response.
// Conflicting rosters and read-only dates are conflicts; everything
// else is a plain bad request.
func writeValidationErrors(w http.ResponseWriter, errs roster.ValidationErrors) {
	status := http.StatusBadRequest
	for _, e := range errs {
		if e.Code == roster.CodeOverlap || e.Code == roster.CodeReadOnly {
			status = http.StatusConflict
			break
		}
	}
	writeJSON(w, status, ErrorResponse{
		Error:   "validation failed",
		Code:    "validation",
		Details: toFieldErrorDTOs(errs),
	})
}
