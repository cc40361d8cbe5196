/*
types.go - Payroll domain types

PURPOSE:
  Defines the wage policy, the incidental inputs gathered by upstream
  collaborators, and the monthly breakdown value object. The breakdown
  is derived and recomputed on demand: it has no identity, no
  lifecycle, and is never mutated after construction.

KEY CONCEPTS:
  WagePolicy:
    - Hourly or fixed-monthly base, selected by Kind
    - Night multiplier, transport-per-shift, income tax rate
    - Carried as a value; a worker without a stored policy gets
      DefaultWagePolicy() rather than an error

  Incidentals:
    - Totals the aggregator cannot compute itself: recorded game
      income over the month and any pay advance already disbursed

  Breakdown:
    - Minute totals are integers; money is decimal end to end and
      rounded only at presentation time

MONEY:
  All monetary fields use shopspring/decimal. Intermediate sub-totals
  keep full precision so rounding error never compounds across the
  gross/tax/net chain.
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// WAGE POLICY
// =============================================================================

// PolicyKind selects how the base wage is computed.
type PolicyKind string

const (
	// PolicyHourly pays HourlyWage per worked hour.
	PolicyHourly PolicyKind = "hourly"

	// PolicyFixed pays FixedSalary per month regardless of worked time;
	// time totals are still reported for information.
	PolicyFixed PolicyKind = "fixed"
)

// WagePolicy is one worker's pay terms for a month.
//
// HourlyWage is meaningful under both kinds: the night differential is
// an hourly premium additive even to a fixed base.
type WagePolicy struct {
	Kind PolicyKind

	HourlyWage  decimal.Decimal
	FixedSalary decimal.Decimal

	// NightRateMultiplier scales night hours, e.g. 1.25 pays night
	// time at 125% (the extra 25% lands in nightExtraTotal).
	NightRateMultiplier decimal.Decimal

	// TransportPerShift is paid once per distinct worked day.
	TransportPerShift decimal.Decimal

	IncomeTaxRate decimal.Decimal

	// Venue defaults used when recording game income; the aggregator
	// itself only sees the summed result.
	GameFeeDefault decimal.Decimal
	TipUnit        decimal.Decimal
}

// DefaultWagePolicy is the fallback for workers with no stored policy.
func DefaultWagePolicy() WagePolicy {
	return WagePolicy{
		Kind:                PolicyHourly,
		HourlyWage:          decimal.NewFromInt(1200),
		NightRateMultiplier: decimal.NewFromFloat(1.25),
		TransportPerShift:   decimal.NewFromInt(500),
		IncomeTaxRate:       decimal.NewFromFloat(0.1021),
		GameFeeDefault:      decimal.NewFromInt(500),
		TipUnit:             decimal.NewFromInt(100),
	}
}

// =============================================================================
// INCIDENTAL INPUTS
// =============================================================================

// Incidentals carries the month's externally-recorded amounts.
type Incidentals struct {
	// GameIncomeTotal is the summed recorded game income for the
	// worker over the month's date range.
	GameIncomeTotal decimal.Decimal

	// AdvanceAmount is the recorded pay advance for the worker/month,
	// zero when none exists.
	AdvanceAmount decimal.Decimal
}

// =============================================================================
// BREAKDOWN
// =============================================================================

// AllowanceItem itemizes one special-allowance line in the breakdown.
type AllowanceItem struct {
	Type      string          `json:"type"`
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Hours     decimal.Decimal `json:"hours"`
	Amount    decimal.Decimal `json:"amount"`
	SourceID  string          `json:"sourceId"`
}

// Breakdown is the monthly payroll result for one worker.
//
// Invariants: TotalWorkMinutes == TotalDayMinutes + TotalNightMinutes,
// and NetSalary == GrossSalary - IncomeTax - AdvanceAmount.
type Breakdown struct {
	TotalWorkMinutes  int64 `json:"totalWorkMinutes"`
	TotalDayMinutes   int64 `json:"totalDayMinutes"`
	TotalNightMinutes int64 `json:"totalNightMinutes"`

	BaseWageTotal         decimal.Decimal `json:"baseWageTotal"`
	NightExtraTotal       decimal.Decimal `json:"nightExtraTotal"`
	SpecialAllowanceTotal decimal.Decimal `json:"specialAllowanceTotal"`
	GameIncomeTotal       decimal.Decimal `json:"gameIncomeTotal"`
	TransportTotal        decimal.Decimal `json:"transportTotal"`
	AdvanceAmount         decimal.Decimal `json:"advanceAmount"`

	GrossSalary decimal.Decimal `json:"grossSalary"`
	IncomeTax   decimal.Decimal `json:"incomeTax"`
	NetSalary   decimal.Decimal `json:"netSalary"`

	Allowances []AllowanceItem `json:"allowances"`
}
