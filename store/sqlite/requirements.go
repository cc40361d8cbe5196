/*
requirements.go - Staffing requirement override persistence

PURPOSE:
  Stores explicit (store, date, slot) headcount overrides. Days without
  a row fall back to the weekday default table; the board builder only
  ever sees the overrides that exist.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tilehouse/staffing-engine/roster"
	"github.com/tilehouse/staffing-engine/schedule"
)

type requirementRow struct {
	ID            string `db:"id"`
	StoreID       string `db:"store_id"`
	TargetDate    string `db:"target_date"`
	Slot          string `db:"slot"`
	StartRequired int    `db:"start_required"`
	EndRequired   int    `db:"end_required"`
	UpdatedAt     string `db:"updated_at"`
}

func (r requirementRow) toRequirement() (roster.StaffingRequirement, error) {
	date, err := parseDate(r.TargetDate)
	if err != nil {
		return roster.StaffingRequirement{}, fmt.Errorf("bad target_date on requirement %s: %w", r.ID, err)
	}
	return roster.StaffingRequirement{
		ID:            r.ID,
		StoreID:       r.StoreID,
		TargetDate:    date,
		Slot:          schedule.Slot(r.Slot),
		StartRequired: r.StartRequired,
		EndRequired:   r.EndRequired,
	}, nil
}

// UpsertRequirement stores an override for its (store, date, slot),
// replacing any existing one. The stored requirement is returned with
// its row ID filled in.
func (s *Store) UpsertRequirement(ctx context.Context, r roster.StaffingRequirement) (roster.StaffingRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requirement_overrides (id, store_id, target_date, slot, start_required, end_required, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(store_id, target_date, slot) DO UPDATE SET
			start_required = excluded.start_required,
			end_required = excluded.end_required,
			updated_at = excluded.updated_at`,
		r.ID, r.StoreID, r.TargetDate.Format(dateLayout), string(r.Slot),
		r.StartRequired, r.EndRequired, nowStamp(),
	)
	if err != nil {
		return roster.StaffingRequirement{}, fmt.Errorf("failed to store requirement: %w", err)
	}

	// An upsert onto an existing row keeps that row's ID.
	stored, err := s.getRequirement(ctx, r.StoreID, r.TargetDate, r.Slot)
	if err != nil {
		return roster.StaffingRequirement{}, err
	}
	return stored, nil
}

// GetRequirement loads the override for one (store, date, slot), with
// found=false when the weekday default applies.
func (s *Store) GetRequirement(ctx context.Context, storeID string, date time.Time, slot schedule.Slot) (roster.StaffingRequirement, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.getRequirement(ctx, storeID, date, slot)
	if errors.Is(err, sql.ErrNoRows) {
		return roster.StaffingRequirement{}, false, nil
	}
	if err != nil {
		return roster.StaffingRequirement{}, false, err
	}
	return r, true, nil
}

func (s *Store) getRequirement(ctx context.Context, storeID string, date time.Time, slot schedule.Slot) (roster.StaffingRequirement, error) {
	var row requirementRow
	err := s.db.GetContext(ctx, &row, `
		SELECT * FROM requirement_overrides
		WHERE store_id = ? AND target_date = ? AND slot = ?`,
		storeID, date.Format(dateLayout), string(slot))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return roster.StaffingRequirement{}, err
		}
		return roster.StaffingRequirement{}, fmt.Errorf("failed to load requirement: %w", err)
	}
	return row.toRequirement()
}

// ListRequirements returns a store's overrides with target dates in
// [from, to] inclusive.
func (s *Store) ListRequirements(ctx context.Context, storeID string, from, to time.Time) ([]roster.StaffingRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []requirementRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM requirement_overrides
		WHERE store_id = ? AND target_date >= ? AND target_date <= ?
		ORDER BY target_date, slot`,
		storeID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}

	reqs := make([]roster.StaffingRequirement, 0, len(rows))
	for _, r := range rows {
		req, err := r.toRequirement()
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
