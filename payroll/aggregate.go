/*
aggregate.go - Monthly payroll aggregation

PURPOSE:
  Folds one worker's month of shifts, wage policy and incidental
  amounts into a Breakdown. The aggregator is a pure fold: every
  shift is segmented with the same day/night bands used everywhere
  else, minute totals are summed, and the monetary chain is computed
  in order:

    base -> night extra -> allowances -> transport -> game income
         -> gross -> tax -> net

  Transport is excluded from the taxable base; advances are deducted
  after tax.

FAILURE SEMANTICS:
  The fold itself is total. The only rejection is a malformed policy
  (fixed kind with no fixed amount), caught by ValidatePolicy before
  any computation.
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilehouse/staffing-engine/roster"
	"github.com/tilehouse/staffing-engine/schedule"
)

var sixty = decimal.NewFromInt(60)

// =============================================================================
// POLICY VALIDATION
// =============================================================================

// ValidatePolicy rejects policies the aggregator cannot price. A fixed
// policy must carry a positive fixed amount; everything else has a
// usable zero value.
func ValidatePolicy(p WagePolicy) roster.ValidationErrors {
	var errs roster.ValidationErrors

	switch p.Kind {
	case PolicyHourly, PolicyFixed:
	default:
		errs = append(errs, roster.FieldError{
			Field:   "kind",
			Code:    roster.CodeInvalid,
			Message: "wage policy kind must be hourly or fixed",
		})
	}

	if p.Kind == PolicyFixed && !p.FixedSalary.IsPositive() {
		errs = append(errs, roster.FieldError{
			Field:   "fixed_salary",
			Code:    roster.CodeRequired,
			Message: "fixed-salary policy needs a fixed amount",
		})
	}

	return errs
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator computes monthly breakdowns. The segmenter and allowance
// rule are carried as values so alternate band layouts or allowance
// formulas plug in without touching the fold.
type Aggregator struct {
	Segmenter schedule.Segmenter
	Allowance AllowanceRule
	Loc       *time.Location
}

// NewAggregator returns an aggregator with the standard bands and the
// hourly allowance rule.
func NewAggregator(loc *time.Location) Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return Aggregator{
		Segmenter: schedule.NewSegmenter(),
		Allowance: HourlyAllowanceRule{},
		Loc:       loc,
	}
}

// ComputeMonthly produces the breakdown for one worker and one
// calendar month. shifts are the worker's shifts in that month;
// specialWages resolves the special-wage references they may carry;
// incidentals holds the externally-recorded game income and advance.
func (a Aggregator) ComputeMonthly(shifts []roster.Shift, specialWages map[string]roster.SpecialWage, policy WagePolicy, inc Incidentals) (Breakdown, error) {
	if err := ValidatePolicy(policy).OrNil(); err != nil {
		return Breakdown{}, err
	}

	loc := a.Loc
	if loc == nil {
		loc = time.UTC
	}
	rule := a.Allowance
	if rule == nil {
		rule = HourlyAllowanceRule{}
	}

	var bd Breakdown
	workedDays := make(map[string]struct{}, len(shifts))

	for _, s := range shifts {
		seg := a.Segmenter.ComputeMinutes(s.Window(loc), s.BreakWindows(loc), loc)
		bd.TotalDayMinutes += int64(seg.DayMinutes)
		bd.TotalNightMinutes += int64(seg.NightMinutes)

		workedDays[s.WorkDate.Format("2006-01-02")] = struct{}{}

		if s.SpecialWageID != nil {
			if sw, ok := specialWages[*s.SpecialWageID]; ok {
				hours := decimal.NewFromInt(int64(seg.TotalMinutes())).Div(sixty)
				unitPrice := decimal.NewFromFloat(sw.UnitPrice)
				bd.Allowances = append(bd.Allowances, AllowanceItem{
					Type:      "special_wage",
					Label:     sw.Label,
					UnitPrice: unitPrice,
					Hours:     hours,
					Amount:    rule.Amount(unitPrice, hours),
					SourceID:  s.ID,
				})
			}
		}
	}
	bd.TotalWorkMinutes = bd.TotalDayMinutes + bd.TotalNightMinutes

	totalHours := decimal.NewFromInt(bd.TotalWorkMinutes).Div(sixty)
	nightHours := decimal.NewFromInt(bd.TotalNightMinutes).Div(sixty)

	switch policy.Kind {
	case PolicyFixed:
		bd.BaseWageTotal = policy.FixedSalary
	default:
		bd.BaseWageTotal = policy.HourlyWage.Mul(totalHours)
	}

	// Night premium: the extra fraction above 1.0, applied to night
	// hours. Additive even under a fixed base.
	premium := policy.NightRateMultiplier.Sub(decimal.NewFromInt(1))
	bd.NightExtraTotal = policy.HourlyWage.Mul(premium).Mul(nightHours)

	for _, item := range bd.Allowances {
		bd.SpecialAllowanceTotal = bd.SpecialAllowanceTotal.Add(item.Amount)
	}

	bd.TransportTotal = policy.TransportPerShift.Mul(decimal.NewFromInt(int64(len(workedDays))))
	bd.GameIncomeTotal = inc.GameIncomeTotal
	bd.AdvanceAmount = inc.AdvanceAmount

	bd.GrossSalary = bd.BaseWageTotal.
		Add(bd.NightExtraTotal).
		Add(bd.SpecialAllowanceTotal).
		Add(bd.TransportTotal).
		Add(bd.GameIncomeTotal)

	taxable := bd.BaseWageTotal.
		Add(bd.NightExtraTotal).
		Add(bd.SpecialAllowanceTotal).
		Add(bd.GameIncomeTotal)
	bd.IncomeTax = taxable.Mul(policy.IncomeTaxRate)

	bd.NetSalary = bd.GrossSalary.Sub(bd.IncomeTax).Sub(bd.AdvanceAmount)

	return bd, nil
}
