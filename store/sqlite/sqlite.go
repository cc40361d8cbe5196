/*
Package sqlite provides a SQLite-backed implementation of the storage layer.

PURPOSE:
  Persists shifts (with their breaks), wage policies, special wages,
  recorded game income, pay advances and staffing-requirement overrides.
  The engines themselves are pure; this package is the collaborator that
  fetches their inputs. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  shifts:                One row per rostered shift
  shift_breaks:          Ordered break rows per shift
  wage_policies:         One pay-terms row per worker
  special_wages:         Supplemental hourly rates per store
  game_incomes:          Recorded per-game income entries
  advances:              One advance row per worker/month
  requirement_overrides: Explicit (store, date, slot) headcounts

ENCODING:
  Dates are stored as "2006-01-02" strings, times of day as "HH:MM",
  monetary amounts as decimal strings. Everything round-trips through
  the same ClockTime/decimal parsers the engines use.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/staffing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - shifts.go:       Shift and break persistence
  - payroll.go:      Wage policies, special wages, incomes, advances
  - requirements.go: Staffing-requirement overrides
*/
package sqlite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	dateLayout = "2006-01-02"
)

// Store implements the storage layer using SQLite.
type Store struct {
	db *sqlx.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Shifts
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		store_id TEXT NOT NULL,
		work_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		special_wage_id TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Hot path: a worker's shifts for a month, a store's board range
	CREATE INDEX IF NOT EXISTS idx_shifts_staff_date
		ON shifts(staff_id, work_date);
	CREATE INDEX IF NOT EXISTS idx_shifts_store_date
		ON shifts(store_id, work_date);

	-- Break rows, ordered by position within their shift
	CREATE TABLE IF NOT EXISTS shift_breaks (
		shift_id TEXT NOT NULL REFERENCES shifts(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		PRIMARY KEY (shift_id, position)
	);

	-- Wage policies, one per worker
	CREATE TABLE IF NOT EXISTS wage_policies (
		staff_id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		hourly_wage TEXT NOT NULL,
		fixed_salary TEXT,
		night_rate_multiplier TEXT NOT NULL,
		transport_per_shift TEXT NOT NULL,
		income_tax_rate TEXT NOT NULL,
		game_fee_default TEXT NOT NULL,
		tip_unit TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Special wages (supplemental hourly rates)
	CREATE TABLE IF NOT EXISTS special_wages (
		id TEXT PRIMARY KEY,
		store_id TEXT NOT NULL,
		label TEXT NOT NULL,
		unit_price REAL NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_special_wages_store
		ON special_wages(store_id);

	-- Recorded game income entries
	CREATE TABLE IF NOT EXISTS game_incomes (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		store_id TEXT NOT NULL,
		played_on TEXT NOT NULL,
		amount TEXT NOT NULL,
		note TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_game_incomes_staff_date
		ON game_incomes(staff_id, played_on);

	-- Pay advances, one per worker/month
	CREATE TABLE IF NOT EXISTS advances (
		staff_id TEXT NOT NULL,
		month TEXT NOT NULL,
		amount TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (staff_id, month)
	);

	-- Staffing requirement overrides
	CREATE TABLE IF NOT EXISTS requirement_overrides (
		id TEXT PRIMARY KEY,
		store_id TEXT NOT NULL,
		target_date TEXT NOT NULL,
		slot TEXT NOT NULL,
		start_required INTEGER NOT NULL,
		end_required INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(store_id, target_date, slot)
	);

	CREATE INDEX IF NOT EXISTS idx_requirement_overrides_store_date
		ON requirement_overrides(store_id, target_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset clears every table. Development and demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"shift_breaks", "shifts", "wage_policies", "special_wages",
		"game_incomes", "advances", "requirement_overrides",
	}
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("failed to clear %s: %w", t, err)
		}
	}
	return nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
