/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY AT THE EDGE:
  The engines compute in decimals; DTOs convert to float64 rounded to
  two places. Presentation is the only place rounding happens.

PATCH BODIES:
  PATCH /api/shifts/{id} must distinguish an absent field (leave it
  alone) from an explicit null (clear it), so the patch body is decoded
  as raw JSON per field rather than into a plain struct. See
  decodeShiftPatch in handlers.go.

SEE ALSO:
  - handlers.go: Uses these types
  - roster/patch.go: The patch semantics these bodies map onto
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilehouse/staffing-engine/payroll"
	"github.com/tilehouse/staffing-engine/roster"
	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// SHIFT TYPES
// =============================================================================

// BreakDTO is one break as times of day.
type BreakDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShiftDTO represents a shift in API responses.
type ShiftDTO struct {
	ID            string     `json:"id"`
	StaffID       string     `json:"staff_id"`
	StoreID       string     `json:"store_id"`
	WorkDate      string     `json:"work_date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Breaks        []BreakDTO `json:"breaks"`
	SpecialWageID *string    `json:"special_wage_id,omitempty"`
	Slot          string     `json:"slot"`
}

// StaffShiftDTO is a shift together with its day/night minute split.
type StaffShiftDTO struct {
	ShiftDTO
	DayMinutes   int `json:"day_minutes"`
	NightMinutes int `json:"night_minutes"`
	TotalMinutes int `json:"total_minutes"`
}

// CreateShiftRequest is the request to roster a shift.
type CreateShiftRequest struct {
	StaffID       string     `json:"staff_id"`
	StoreID       string     `json:"store_id"`
	WorkDate      string     `json:"work_date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Breaks        []BreakDTO `json:"breaks,omitempty"`
	SpecialWageID *string    `json:"special_wage_id,omitempty"`
}

// =============================================================================
// BOARD TYPES
// =============================================================================

// BoardRowDTO is one (date, slot) cell of the staffing board.
type BoardRowDTO struct {
	Date          string   `json:"date"`
	Slot          string   `json:"slot"`
	StartRequired int      `json:"start_required"`
	EndRequired   int      `json:"end_required"`
	StartActual   int      `json:"start_actual"`
	EndActual     int      `json:"end_actual"`
	ShiftIDs      []string `json:"shift_ids"`
	HasOverride   bool     `json:"has_override"`
	Editable      bool     `json:"editable"`
}

// BoardDTO is the staffing board for a date range.
type BoardDTO struct {
	StoreID string        `json:"store_id"`
	From    string        `json:"from"`
	To      string        `json:"to"`
	Rows    []BoardRowDTO `json:"rows"`
}

// RequirementRequest is the request to override a (date, slot)
// headcount requirement.
type RequirementRequest struct {
	StoreID       string `json:"store_id"`
	TargetDate    string `json:"target_date"`
	Slot          string `json:"slot"`
	StartRequired int    `json:"start_required"`
	EndRequired   int    `json:"end_required"`
}

// RequirementDTO is a stored override in responses.
type RequirementDTO struct {
	ID            string `json:"id"`
	StoreID       string `json:"store_id"`
	TargetDate    string `json:"target_date"`
	Slot          string `json:"slot"`
	StartRequired int    `json:"start_required"`
	EndRequired   int    `json:"end_required"`
}

// =============================================================================
// PAYROLL TYPES
// =============================================================================

// AllowanceItemDTO is one itemized special allowance.
type AllowanceItemDTO struct {
	Type      string  `json:"type"`
	Label     string  `json:"label"`
	UnitPrice float64 `json:"unit_price"`
	Hours     float64 `json:"hours"`
	Amount    float64 `json:"amount"`
	SourceID  string  `json:"source_id"`
}

// PayrollDTO is the monthly breakdown for one worker.
type PayrollDTO struct {
	StaffID string `json:"staff_id"`
	Month   string `json:"month"`

	TotalWorkMinutes  int64 `json:"total_work_minutes"`
	TotalDayMinutes   int64 `json:"total_day_minutes"`
	TotalNightMinutes int64 `json:"total_night_minutes"`

	BaseWageTotal         float64 `json:"base_wage_total"`
	NightExtraTotal       float64 `json:"night_extra_total"`
	SpecialAllowanceTotal float64 `json:"special_allowance_total"`
	GameIncomeTotal       float64 `json:"game_income_total"`
	TransportTotal        float64 `json:"transport_total"`
	AdvanceAmount         float64 `json:"advance_amount"`

	GrossSalary float64 `json:"gross_salary"`
	IncomeTax   float64 `json:"income_tax"`
	NetSalary   float64 `json:"net_salary"`

	Allowances []AllowanceItemDTO `json:"allowances"`
}

// IncomeRequest records one game income entry.
type IncomeRequest struct {
	StaffID  string  `json:"staff_id"`
	StoreID  string  `json:"store_id"`
	PlayedOn string  `json:"played_on"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

// AdvanceRequest records the advance for a worker/month.
type AdvanceRequest struct {
	StaffID string  `json:"staff_id"`
	Month   string  `json:"month"` // YYYY-MM
	Amount  float64 `json:"amount"`
}

// SpecialWageRequest creates a supplemental hourly rate.
type SpecialWageRequest struct {
	StoreID   string  `json:"store_id"`
	Label     string  `json:"label"`
	UnitPrice float64 `json:"unit_price"`
}

// SpecialWageDTO is a stored special wage.
type SpecialWageDTO struct {
	ID        string  `json:"id"`
	StoreID   string  `json:"store_id"`
	Label     string  `json:"label"`
	UnitPrice float64 `json:"unit_price"`
}

// WagePolicyRequest sets a worker's pay terms.
type WagePolicyRequest struct {
	Kind                string   `json:"kind"`
	HourlyWage          *float64 `json:"hourly_wage,omitempty"`
	FixedSalary         *float64 `json:"fixed_salary,omitempty"`
	NightRateMultiplier *float64 `json:"night_rate_multiplier,omitempty"`
	TransportPerShift   *float64 `json:"transport_per_shift,omitempty"`
	IncomeTaxRate       *float64 `json:"income_tax_rate,omitempty"`
}

// =============================================================================
// SCENARIO AND ERROR TYPES
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// FieldErrorDTO is one field-level validation violation.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toShiftDTO(s roster.Shift, slot schedule.Slot) ShiftDTO {
	breaks := make([]BreakDTO, len(s.Breaks))
	for i, b := range s.Breaks {
		breaks[i] = BreakDTO{Start: b.Start.String(), End: b.End.String()}
	}
	return ShiftDTO{
		ID:            s.ID,
		StaffID:       s.StaffID,
		StoreID:       s.StoreID,
		WorkDate:      s.WorkDate.Format("2006-01-02"),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		Breaks:        breaks,
		SpecialWageID: s.SpecialWageID,
		Slot:          string(slot),
	}
}

func toBoardDTO(storeID string, b roster.Board) BoardDTO {
	dto := BoardDTO{
		StoreID: storeID,
		From:    b.From.Format("2006-01-02"),
		To:      b.To.Format("2006-01-02"),
		Rows:    make([]BoardRowDTO, len(b.Rows)),
	}
	for i, row := range b.Rows {
		shiftIDs := row.ShiftIDs
		if shiftIDs == nil {
			shiftIDs = []string{}
		}
		dto.Rows[i] = BoardRowDTO{
			Date:          row.Date.Format("2006-01-02"),
			Slot:          string(row.Slot),
			StartRequired: row.Required.Start,
			EndRequired:   row.Required.End,
			StartActual:   row.Actual.StartActual,
			EndActual:     row.Actual.EndActual,
			ShiftIDs:      shiftIDs,
			HasOverride:   row.HasOverride,
			Editable:      row.Editable,
		}
	}
	return dto
}

func toPayrollDTO(staffID string, month time.Time, bd payroll.Breakdown) PayrollDTO {
	money := func(d decimal.Decimal) float64 {
		f, _ := d.Round(2).Float64()
		return f
	}

	allowances := make([]AllowanceItemDTO, len(bd.Allowances))
	for i, a := range bd.Allowances {
		allowances[i] = AllowanceItemDTO{
			Type:      a.Type,
			Label:     a.Label,
			UnitPrice: money(a.UnitPrice),
			Hours:     money(a.Hours),
			Amount:    money(a.Amount),
			SourceID:  a.SourceID,
		}
	}

	return PayrollDTO{
		StaffID:           staffID,
		Month:             month.Format("2006-01"),
		TotalWorkMinutes:  bd.TotalWorkMinutes,
		TotalDayMinutes:   bd.TotalDayMinutes,
		TotalNightMinutes: bd.TotalNightMinutes,

		BaseWageTotal:         money(bd.BaseWageTotal),
		NightExtraTotal:       money(bd.NightExtraTotal),
		SpecialAllowanceTotal: money(bd.SpecialAllowanceTotal),
		GameIncomeTotal:       money(bd.GameIncomeTotal),
		TransportTotal:        money(bd.TransportTotal),
		AdvanceAmount:         money(bd.AdvanceAmount),

		GrossSalary: money(bd.GrossSalary),
		IncomeTax:   money(bd.IncomeTax),
		NetSalary:   money(bd.NetSalary),

		Allowances: allowances,
	}
}

func toRequirementDTO(r roster.StaffingRequirement) RequirementDTO {
	return RequirementDTO{
		ID:            r.ID,
		StoreID:       r.StoreID,
		TargetDate:    r.TargetDate.Format("2006-01-02"),
		Slot:          string(r.Slot),
		StartRequired: r.StartRequired,
		EndRequired:   r.EndRequired,
	}
}

func toFieldErrorDTOs(errs roster.ValidationErrors) []FieldErrorDTO {
	dtos := make([]FieldErrorDTO, len(errs))
	for i, e := range errs {
		dtos[i] = FieldErrorDTO{Field: e.Field, Code: e.Code, Message: e.Message}
	}
	return dtos
}
