/*
shifts.go - Shift and break persistence

PURPOSE:
  Stores rostered shifts and their break rows and reassembles them
  into roster.Shift values. Breaks live in their own table, keyed by
  (shift_id, position), and are always written and read as a unit with
  their shift.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tilehouse/staffing-engine/roster"
	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// ROW TYPES
// =============================================================================

type shiftRow struct {
	ID            string         `db:"id"`
	StaffID       string         `db:"staff_id"`
	StoreID       string         `db:"store_id"`
	WorkDate      string         `db:"work_date"`
	StartTime     string         `db:"start_time"`
	EndTime       string         `db:"end_time"`
	SpecialWageID sql.NullString `db:"special_wage_id"`
	CreatedAt     string         `db:"created_at"`
	UpdatedAt     string         `db:"updated_at"`
}

type breakRow struct {
	ShiftID   string `db:"shift_id"`
	Position  int    `db:"position"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

func (r shiftRow) toShift(breaks []breakRow) (roster.Shift, error) {
	workDate, err := parseDate(r.WorkDate)
	if err != nil {
		return roster.Shift{}, fmt.Errorf("bad work_date on shift %s: %w", r.ID, err)
	}
	start, err := schedule.ParseClockTime(r.StartTime)
	if err != nil {
		return roster.Shift{}, fmt.Errorf("bad start_time on shift %s: %w", r.ID, err)
	}
	end, err := schedule.ParseClockTime(r.EndTime)
	if err != nil {
		return roster.Shift{}, fmt.Errorf("bad end_time on shift %s: %w", r.ID, err)
	}

	s := roster.Shift{
		ID:        r.ID,
		StaffID:   r.StaffID,
		StoreID:   r.StoreID,
		WorkDate:  workDate,
		StartTime: start,
		EndTime:   end,
	}
	if r.SpecialWageID.Valid {
		v := r.SpecialWageID.String
		s.SpecialWageID = &v
	}

	for _, br := range breaks {
		bs, err := schedule.ParseClockTime(br.StartTime)
		if err != nil {
			return roster.Shift{}, fmt.Errorf("bad break start on shift %s: %w", r.ID, err)
		}
		be, err := schedule.ParseClockTime(br.EndTime)
		if err != nil {
			return roster.Shift{}, fmt.Errorf("bad break end on shift %s: %w", r.ID, err)
		}
		s.Breaks = append(s.Breaks, roster.BreakSpec{Start: bs, End: be})
	}

	return s, nil
}

// =============================================================================
// WRITES
// =============================================================================

// CreateShift inserts a shift and its breaks. A blank ID is assigned a
// fresh UUID; the stored shift is returned either way.
func (s *Store) CreateShift(ctx context.Context, sh roster.Shift) (roster.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sh.ID == "" {
		sh.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return roster.Shift{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := nowStamp()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO shifts (id, staff_id, store_id, work_date, start_time, end_time, special_wage_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.StaffID, sh.StoreID, sh.WorkDate.Format(dateLayout),
		sh.StartTime.String(), sh.EndTime.String(), nullable(sh.SpecialWageID), now, now,
	)
	if err != nil {
		return roster.Shift{}, fmt.Errorf("failed to insert shift: %w", err)
	}

	if err := insertBreaks(ctx, tx, sh); err != nil {
		return roster.Shift{}, err
	}

	if err := tx.Commit(); err != nil {
		return roster.Shift{}, err
	}
	return sh, nil
}

// UpdateShift replaces a shift's row and breaks in one transaction.
func (s *Store) UpdateShift(ctx context.Context, sh roster.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE shifts
		SET staff_id = ?, store_id = ?, work_date = ?, start_time = ?, end_time = ?, special_wage_id = ?, updated_at = ?
		WHERE id = ?`,
		sh.StaffID, sh.StoreID, sh.WorkDate.Format(dateLayout),
		sh.StartTime.String(), sh.EndTime.String(), nullable(sh.SpecialWageID), nowStamp(), sh.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrShiftNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_breaks WHERE shift_id = ?`, sh.ID); err != nil {
		return fmt.Errorf("failed to clear breaks: %w", err)
	}
	if err := insertBreaks(ctx, tx, sh); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteShift removes a shift; break rows cascade.
func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrShiftNotFound
	}
	return nil
}

func insertBreaks(ctx context.Context, tx *sqlx.Tx, sh roster.Shift) error {
	for i, b := range sh.Breaks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shift_breaks (shift_id, position, start_time, end_time)
			VALUES (?, ?, ?, ?)`,
			sh.ID, i, b.Start.String(), b.End.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert break %d: %w", i, err)
		}
	}
	return nil
}

// =============================================================================
// READS
// =============================================================================

// GetShift loads one shift with its breaks.
func (s *Store) GetShift(ctx context.Context, id string) (roster.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var row shiftRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM shifts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return roster.Shift{}, roster.ErrShiftNotFound
	}
	if err != nil {
		return roster.Shift{}, fmt.Errorf("failed to load shift: %w", err)
	}

	var breaks []breakRow
	if err := s.db.SelectContext(ctx, &breaks, `
		SELECT shift_id, position, start_time, end_time
		FROM shift_breaks WHERE shift_id = ? ORDER BY position`, id); err != nil {
		return roster.Shift{}, fmt.Errorf("failed to load breaks: %w", err)
	}

	return row.toShift(breaks)
}

// ListShiftsForWorkerMonth returns a worker's shifts whose work date
// falls in the given calendar month, ordered by date and start time.
func (s *Store) ListShiftsForWorkerMonth(ctx context.Context, staffID string, year int, month time.Month) ([]roster.Shift, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.listShifts(ctx, `
		SELECT * FROM shifts
		WHERE staff_id = ? AND work_date >= ? AND work_date <= ?
		ORDER BY work_date, start_time`,
		staffID, first.Format(dateLayout), last.Format(dateLayout))
}

// ListShiftsForWorkerDate returns a worker's shifts on one work date,
// the set overlap validation compares against.
func (s *Store) ListShiftsForWorkerDate(ctx context.Context, staffID string, workDate time.Time) ([]roster.Shift, error) {
	return s.listShifts(ctx, `
		SELECT * FROM shifts
		WHERE staff_id = ? AND work_date = ?
		ORDER BY start_time`,
		staffID, workDate.Format(dateLayout))
}

// ListShiftsForWorkerRange returns a worker's shifts with work dates in
// [from, to] inclusive.
func (s *Store) ListShiftsForWorkerRange(ctx context.Context, staffID string, from, to time.Time) ([]roster.Shift, error) {
	return s.listShifts(ctx, `
		SELECT * FROM shifts
		WHERE staff_id = ? AND work_date >= ? AND work_date <= ?
		ORDER BY work_date, start_time`,
		staffID, from.Format(dateLayout), to.Format(dateLayout))
}

// ListShiftsForStoreRange returns a store's shifts with work dates in
// [from, to] inclusive, the board's input set.
func (s *Store) ListShiftsForStoreRange(ctx context.Context, storeID string, from, to time.Time) ([]roster.Shift, error) {
	return s.listShifts(ctx, `
		SELECT * FROM shifts
		WHERE store_id = ? AND work_date >= ? AND work_date <= ?
		ORDER BY work_date, start_time`,
		storeID, from.Format(dateLayout), to.Format(dateLayout))
}

func (s *Store) listShifts(ctx context.Context, query string, args ...any) ([]roster.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []shiftRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// One query for all break rows, grouped in memory.
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	query, args, err := sqlx.In(`
		SELECT shift_id, position, start_time, end_time
		FROM shift_breaks WHERE shift_id IN (?) ORDER BY shift_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to expand break query: %w", err)
	}
	var breaks []breakRow
	if err := s.db.SelectContext(ctx, &breaks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query breaks: %w", err)
	}
	byShift := make(map[string][]breakRow, len(rows))
	for _, br := range breaks {
		byShift[br.ShiftID] = append(byShift[br.ShiftID], br)
	}

	shifts := make([]roster.Shift, 0, len(rows))
	for _, r := range rows {
		sh, err := r.toShift(byShift[r.ID])
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	return shifts, nil
}

func nullable(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
