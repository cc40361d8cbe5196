/*
allowance.go - Special-allowance computation

PURPOSE:
  A shift may reference a special wage: a supplemental hourly amount
  for a role or table the venue pays extra for. How the unit price and
  worked hours combine into a payable amount is a business rule that
  has varied, so it is a pluggable AllowanceRule rather than a
  hard-coded formula. The shipped rule multiplies unit price by worked
  hours.
*/
package payroll

import "github.com/shopspring/decimal"

// AllowanceRule turns a special wage's unit price and a shift's worked
// hours into a payable amount.
type AllowanceRule interface {
	Amount(unitPrice, hours decimal.Decimal) decimal.Decimal
}

// HourlyAllowanceRule pays unitPrice for every worked hour.
type HourlyAllowanceRule struct{}

func (HourlyAllowanceRule) Amount(unitPrice, hours decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(hours)
}

// FlatAllowanceRule pays the unit price once per shift, independent of
// hours worked.
type FlatAllowanceRule struct{}

func (FlatAllowanceRule) Amount(unitPrice, _ decimal.Decimal) decimal.Decimal {
	return unitPrice
}
