/*
Package factory provides JSON to Go venue configuration conversion.

PURPOSE:
  Converts JSON venue definitions into the band, requirement and wage
  values the engines consume. This enables venue configuration without
  code changes - operators can define a venue's bands, staffing
  defaults and pay terms in JSON, and the factory creates the proper
  Go structs.

WHY JSON?
  - Non-developers can adjust staffing defaults and pay terms
  - Easy integration with an admin UI
  - Version control for venue definitions
  - Database storage of venue configs

JSON SCHEMA:
  {
    "id": "main-floor",
    "name": "Main floor",
    "bands": {
      "day_start": "05:00",
      "day_end": "22:00",
      "early_start": "10:00",
      "early_end": "22:00"
    },
    "requirements": {
      "early": {"saturday": {"start": 4, "end": 4}},
      "late":  {"friday":   {"start": 5, "end": 4}}
    },
    "wage": {
      "kind": "hourly",
      "hourly_wage": 1200,
      "night_rate_multiplier": 1.25,
      "transport_per_shift": 500,
      "income_tax_rate": 0.1021
    }
  }

KEY FEATURES:
  - Every section is optional; omitted sections take the standard
    venue defaults
  - Requirement entries override single weekdays, the rest keep the
    default table
  - Round-trips: ToJSON(FromJSON(x)) preserves the configuration

USAGE:
  f := factory.NewConfigFactory()
  cfg, err := f.ParseConfig(jsonStr)

  builder := roster.BoardBuilder{Bands: cfg.Slots, Table: cfg.Requirements, Loc: loc}

SEE ALSO:
  - schedule/types.go: BandConfig, SlotBands, RequirementTable
  - payroll/types.go: WagePolicy
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilehouse/staffing-engine/payroll"
	"github.com/tilehouse/staffing-engine/schedule"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// VenueConfigJSON is the JSON representation of a venue configuration.
type VenueConfigJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Bands        *BandsJSON        `json:"bands,omitempty"`
	Requirements *RequirementsJSON `json:"requirements,omitempty"`
	Wage         *WageJSON         `json:"wage,omitempty"`
}

// BandsJSON carries the day/night and early/late band boundaries as
// "HH:MM" clock strings.
type BandsJSON struct {
	DayStart   string `json:"day_start,omitempty"`
	DayEnd     string `json:"day_end,omitempty"`
	EarlyStart string `json:"early_start,omitempty"`
	EarlyEnd   string `json:"early_end,omitempty"`
}

// RequirementsJSON overrides single weekdays of the default staffing
// table. Keys are lowercase weekday names ("sunday" .. "saturday").
type RequirementsJSON struct {
	Early map[string]CountsJSON `json:"early,omitempty"`
	Late  map[string]CountsJSON `json:"late,omitempty"`
}

// CountsJSON is a start/end headcount pair.
type CountsJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// WageJSON carries the pay terms.
type WageJSON struct {
	Kind                string   `json:"kind,omitempty"` // hourly, fixed
	HourlyWage          *float64 `json:"hourly_wage,omitempty"`
	FixedSalary         *float64 `json:"fixed_salary,omitempty"`
	NightRateMultiplier *float64 `json:"night_rate_multiplier,omitempty"`
	TransportPerShift   *float64 `json:"transport_per_shift,omitempty"`
	IncomeTaxRate       *float64 `json:"income_tax_rate,omitempty"`
	GameFeeDefault      *float64 `json:"game_fee_default,omitempty"`
	TipUnit             *float64 `json:"tip_unit,omitempty"`
}

// =============================================================================
// VENUE CONFIG
// =============================================================================

// VenueConfig is the parsed, ready-to-use configuration.
type VenueConfig struct {
	ID   string
	Name string

	Bands        schedule.BandConfig
	Slots        schedule.SlotBands
	Requirements schedule.RequirementTable
	Wage         payroll.WagePolicy
}

// DefaultVenueConfig is the standard venue: 05:00/22:00 day band,
// 10:00/22:00 slot band, the default staffing table and the default
// hourly wage policy.
func DefaultVenueConfig() VenueConfig {
	return VenueConfig{
		Bands:        schedule.DefaultBands(),
		Slots:        schedule.DefaultSlotBands(),
		Requirements: schedule.DefaultRequirementTable(),
		Wage:         payroll.DefaultWagePolicy(),
	}
}

// =============================================================================
// CONFIG FACTORY
// =============================================================================

// ConfigFactory converts JSON venue configs to Go structs.
type ConfigFactory struct{}

// NewConfigFactory creates a new config factory.
func NewConfigFactory() *ConfigFactory {
	return &ConfigFactory{}
}

// ParseConfig parses a JSON string into a VenueConfig.
func (f *ConfigFactory) ParseConfig(jsonStr string) (VenueConfig, error) {
	var cj VenueConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return VenueConfig{}, fmt.Errorf("failed to parse venue config JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts VenueConfigJSON to a VenueConfig, filling omitted
// sections with the standard defaults.
func (f *ConfigFactory) FromJSON(cj VenueConfigJSON) (VenueConfig, error) {
	cfg := DefaultVenueConfig()
	cfg.ID = cj.ID
	cfg.Name = cj.Name

	if cj.Bands != nil {
		if err := applyBands(&cfg, *cj.Bands); err != nil {
			return VenueConfig{}, err
		}
	}
	if cj.Requirements != nil {
		if err := applyRequirements(&cfg.Requirements, *cj.Requirements); err != nil {
			return VenueConfig{}, err
		}
	}
	if cj.Wage != nil {
		applyWage(&cfg.Wage, *cj.Wage)
	}

	return cfg, nil
}

// ToJSON converts a VenueConfig to its JSON representation.
func (f *ConfigFactory) ToJSON(cfg VenueConfig) VenueConfigJSON {
	cj := VenueConfigJSON{
		ID:   cfg.ID,
		Name: cfg.Name,
		Bands: &BandsJSON{
			DayStart:   cfg.Bands.DayStart.String(),
			DayEnd:     cfg.Bands.DayEnd.String(),
			EarlyStart: cfg.Slots.EarlyStart.String(),
			EarlyEnd:   cfg.Slots.EarlyEnd.String(),
		},
		Requirements: &RequirementsJSON{
			Early: countsMap(cfg.Requirements.Early),
			Late:  countsMap(cfg.Requirements.Late),
		},
	}

	hourly, _ := cfg.Wage.HourlyWage.Float64()
	mult, _ := cfg.Wage.NightRateMultiplier.Float64()
	transport, _ := cfg.Wage.TransportPerShift.Float64()
	tax, _ := cfg.Wage.IncomeTaxRate.Float64()
	cj.Wage = &WageJSON{
		Kind:                string(cfg.Wage.Kind),
		HourlyWage:          &hourly,
		NightRateMultiplier: &mult,
		TransportPerShift:   &transport,
		IncomeTaxRate:       &tax,
	}
	if cfg.Wage.FixedSalary.IsPositive() {
		fixed, _ := cfg.Wage.FixedSalary.Float64()
		cj.Wage.FixedSalary = &fixed
	}

	return cj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func applyBands(cfg *VenueConfig, bj BandsJSON) error {
	set := func(dst *schedule.ClockTime, s, field string) error {
		if s == "" {
			return nil
		}
		ct, err := schedule.ParseClockTime(s)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
		*dst = ct
		return nil
	}

	if err := set(&cfg.Bands.DayStart, bj.DayStart, "day_start"); err != nil {
		return err
	}
	if err := set(&cfg.Bands.DayEnd, bj.DayEnd, "day_end"); err != nil {
		return err
	}
	if err := set(&cfg.Slots.EarlyStart, bj.EarlyStart, "early_start"); err != nil {
		return err
	}
	return set(&cfg.Slots.EarlyEnd, bj.EarlyEnd, "early_end")
}

func applyRequirements(table *schedule.RequirementTable, rj RequirementsJSON) error {
	apply := func(dst *[7]schedule.RequiredCounts, m map[string]CountsJSON) error {
		for name, c := range m {
			wd, err := parseWeekday(name)
			if err != nil {
				return err
			}
			counts := schedule.RequiredCounts{Start: c.Start, End: c.End}
			dst[wd] = counts.Clamp()
		}
		return nil
	}

	if err := apply(&table.Early, rj.Early); err != nil {
		return err
	}
	return apply(&table.Late, rj.Late)
}

func applyWage(w *payroll.WagePolicy, wj WageJSON) {
	switch wj.Kind {
	case "fixed":
		w.Kind = payroll.PolicyFixed
	case "hourly":
		w.Kind = payroll.PolicyHourly
	}

	set := func(dst *decimal.Decimal, v *float64) {
		if v != nil {
			*dst = decimal.NewFromFloat(*v)
		}
	}
	set(&w.HourlyWage, wj.HourlyWage)
	set(&w.FixedSalary, wj.FixedSalary)
	set(&w.NightRateMultiplier, wj.NightRateMultiplier)
	set(&w.TransportPerShift, wj.TransportPerShift)
	set(&w.IncomeTaxRate, wj.IncomeTaxRate)
	set(&w.GameFeeDefault, wj.GameFeeDefault)
	set(&w.TipUnit, wj.TipUnit)
}

func parseWeekday(s string) (time.Weekday, error) {
	switch s {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday: %s", s)
	}
}

func countsMap(row [7]schedule.RequiredCounts) map[string]CountsJSON {
	names := [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	m := make(map[string]CountsJSON, 7)
	for wd, c := range row {
		m[names[wd]] = CountsJSON{Start: c.Start, End: c.End}
	}
	return m
}

// =============================================================================
// PRESETS
// =============================================================================

// StandardVenueJSON returns the JSON definition of the standard venue
// configuration, useful as a seed or admin-UI starting point.
func StandardVenueJSON(id, name string) string {
	f := NewConfigFactory()
	cfg := DefaultVenueConfig()
	cfg.ID = id
	cfg.Name = name
	b, _ := json.MarshalIndent(f.ToJSON(cfg), "", "  ")
	return string(b)
}
