/*
payroll.go - Wage policy, special wage, income and advance persistence

PURPOSE:
  Stores the monetary inputs the payroll aggregator consumes. Amounts
  are stored as decimal strings so nothing is lost to float encoding
  between write and read.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilehouse/staffing-engine/payroll"
	"github.com/tilehouse/staffing-engine/roster"
)

const monthLayout = "2006-01"

// =============================================================================
// WAGE POLICIES
// =============================================================================

type wagePolicyRow struct {
	StaffID             string         `db:"staff_id"`
	Kind                string         `db:"kind"`
	HourlyWage          string         `db:"hourly_wage"`
	FixedSalary         sql.NullString `db:"fixed_salary"`
	NightRateMultiplier string         `db:"night_rate_multiplier"`
	TransportPerShift   string         `db:"transport_per_shift"`
	IncomeTaxRate       string         `db:"income_tax_rate"`
	GameFeeDefault      string         `db:"game_fee_default"`
	TipUnit             string         `db:"tip_unit"`
	UpdatedAt           string         `db:"updated_at"`
}

// SetWagePolicy stores a worker's pay terms, replacing any existing row.
func (s *Store) SetWagePolicy(ctx context.Context, staffID string, p payroll.WagePolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fixed := sql.NullString{}
	if p.FixedSalary.IsPositive() {
		fixed = sql.NullString{String: p.FixedSalary.String(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wage_policies
		(staff_id, kind, hourly_wage, fixed_salary, night_rate_multiplier, transport_per_shift, income_tax_rate, game_fee_default, tip_unit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(staff_id) DO UPDATE SET
			kind = excluded.kind,
			hourly_wage = excluded.hourly_wage,
			fixed_salary = excluded.fixed_salary,
			night_rate_multiplier = excluded.night_rate_multiplier,
			transport_per_shift = excluded.transport_per_shift,
			income_tax_rate = excluded.income_tax_rate,
			game_fee_default = excluded.game_fee_default,
			tip_unit = excluded.tip_unit,
			updated_at = excluded.updated_at`,
		staffID, string(p.Kind), p.HourlyWage.String(), fixed,
		p.NightRateMultiplier.String(), p.TransportPerShift.String(),
		p.IncomeTaxRate.String(), p.GameFeeDefault.String(), p.TipUnit.String(),
		nowStamp(),
	)
	if err != nil {
		return fmt.Errorf("failed to store wage policy: %w", err)
	}
	return nil
}

// GetWagePolicy loads a worker's pay terms. Workers without a stored
// policy get the default policy and found=false, never an error.
func (s *Store) GetWagePolicy(ctx context.Context, staffID string) (payroll.WagePolicy, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var row wagePolicyRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM wage_policies WHERE staff_id = ?`, staffID)
	if errors.Is(err, sql.ErrNoRows) {
		return payroll.DefaultWagePolicy(), false, nil
	}
	if err != nil {
		return payroll.WagePolicy{}, false, fmt.Errorf("failed to load wage policy: %w", err)
	}

	p := payroll.WagePolicy{Kind: payroll.PolicyKind(row.Kind)}
	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&p.HourlyWage, row.HourlyWage},
		{&p.NightRateMultiplier, row.NightRateMultiplier},
		{&p.TransportPerShift, row.TransportPerShift},
		{&p.IncomeTaxRate, row.IncomeTaxRate},
		{&p.GameFeeDefault, row.GameFeeDefault},
		{&p.TipUnit, row.TipUnit},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return payroll.WagePolicy{}, false, fmt.Errorf("bad amount in wage policy for %s: %w", staffID, err)
		}
		*f.dst = d
	}
	if row.FixedSalary.Valid {
		d, err := decimal.NewFromString(row.FixedSalary.String)
		if err != nil {
			return payroll.WagePolicy{}, false, fmt.Errorf("bad fixed salary for %s: %w", staffID, err)
		}
		p.FixedSalary = d
	}

	return p, true, nil
}

// =============================================================================
// SPECIAL WAGES
// =============================================================================

type specialWageRow struct {
	ID        string  `db:"id"`
	StoreID   string  `db:"store_id"`
	Label     string  `db:"label"`
	UnitPrice float64 `db:"unit_price"`
	CreatedAt string  `db:"created_at"`
}

// CreateSpecialWage stores a supplemental hourly rate. A blank ID gets
// a fresh UUID.
func (s *Store) CreateSpecialWage(ctx context.Context, w roster.SpecialWage) (roster.SpecialWage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO special_wages (id, store_id, label, unit_price, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.StoreID, w.Label, w.UnitPrice, nowStamp(),
	)
	if err != nil {
		return roster.SpecialWage{}, fmt.Errorf("failed to store special wage: %w", err)
	}
	return w, nil
}

// SpecialWagesByID returns all of a store's special wages keyed by ID,
// the lookup shape the aggregator wants.
func (s *Store) SpecialWagesByID(ctx context.Context, storeID string) (map[string]roster.SpecialWage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []specialWageRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM special_wages WHERE store_id = ?`, storeID); err != nil {
		return nil, fmt.Errorf("failed to query special wages: %w", err)
	}

	wages := make(map[string]roster.SpecialWage, len(rows))
	for _, r := range rows {
		wages[r.ID] = roster.SpecialWage{ID: r.ID, StoreID: r.StoreID, Label: r.Label, UnitPrice: r.UnitPrice}
	}
	return wages, nil
}

// =============================================================================
// GAME INCOME
// =============================================================================

// RecordGameIncome appends one recorded income entry for a worker.
func (s *Store) RecordGameIncome(ctx context.Context, staffID, storeID string, playedOn time.Time, amount decimal.Decimal, note string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_incomes (id, staff_id, store_id, played_on, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, staffID, storeID, playedOn.Format(dateLayout), amount.String(), note, nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record game income: %w", err)
	}
	return id, nil
}

// SumGameIncome totals a worker's recorded income over [from, to]
// inclusive. Summed in Go so amounts stay decimal end to end.
func (s *Store) SumGameIncome(ctx context.Context, staffID string, from, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var amounts []string
	err := s.db.SelectContext(ctx, &amounts, `
		SELECT amount FROM game_incomes
		WHERE staff_id = ? AND played_on >= ? AND played_on <= ?`,
		staffID, from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query game income: %w", err)
	}

	total := decimal.Zero
	for _, a := range amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, fmt.Errorf("bad game income amount: %w", err)
		}
		total = total.Add(d)
	}
	return total, nil
}

// =============================================================================
// ADVANCES
// =============================================================================

// RecordAdvance stores the pay advance for a worker/month, replacing
// any existing amount.
func (s *Store) RecordAdvance(ctx context.Context, staffID string, year int, month time.Month, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
	now := nowStamp()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO advances (staff_id, month, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(staff_id, month) DO UPDATE SET
			amount = excluded.amount,
			updated_at = excluded.updated_at`,
		staffID, key, amount.String(), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to record advance: %w", err)
	}
	return nil
}

// GetAdvance returns the recorded advance for a worker/month, or zero
// when none exists.
func (s *Store) GetAdvance(ctx context.Context, staffID string, year int, month time.Month) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
	var amount string
	err := s.db.GetContext(ctx, &amount, `SELECT amount FROM advances WHERE staff_id = ? AND month = ?`, staffID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load advance: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad advance amount: %w", err)
	}
	return d, nil
}
