package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilehouse/staffing-engine/factory"
	"github.com/tilehouse/staffing-engine/payroll"
	"github.com/tilehouse/staffing-engine/schedule"
)

func TestParseConfig_Defaults(t *testing.T) {
	f := factory.NewConfigFactory()

	cfg, err := f.ParseConfig(`{"id": "main-floor", "name": "Main floor"}`)
	require.NoError(t, err)

	assert.Equal(t, "main-floor", cfg.ID)
	assert.Equal(t, schedule.DefaultBands(), cfg.Bands)
	assert.Equal(t, schedule.DefaultSlotBands(), cfg.Slots)
	assert.Equal(t, schedule.DefaultRequirementTable(), cfg.Requirements)
	assert.Equal(t, payroll.PolicyHourly, cfg.Wage.Kind)
}

func TestParseConfig_CustomBandsAndWage(t *testing.T) {
	f := factory.NewConfigFactory()

	cfg, err := f.ParseConfig(`{
		"id": "annex",
		"bands": {"day_start": "06:00", "day_end": "23:00", "early_start": "11:00"},
		"wage": {"kind": "fixed", "fixed_salary": 250000, "night_rate_multiplier": 1.5}
	}`)
	require.NoError(t, err)

	assert.Equal(t, schedule.NewClockTime(6, 0), cfg.Bands.DayStart)
	assert.Equal(t, schedule.NewClockTime(23, 0), cfg.Bands.DayEnd)
	assert.Equal(t, schedule.NewClockTime(11, 0), cfg.Slots.EarlyStart)
	// Untouched boundary keeps the default.
	assert.Equal(t, schedule.NewClockTime(22, 0), cfg.Slots.EarlyEnd)

	assert.Equal(t, payroll.PolicyFixed, cfg.Wage.Kind)
	assert.True(t, cfg.Wage.FixedSalary.Equal(decimal.NewFromInt(250000)))
	assert.True(t, cfg.Wage.NightRateMultiplier.Equal(decimal.NewFromFloat(1.5)))
	// Untouched wage fields keep defaults.
	assert.True(t, cfg.Wage.HourlyWage.Equal(payroll.DefaultWagePolicy().HourlyWage))
}

func TestParseConfig_RequirementOverridesSingleWeekday(t *testing.T) {
	f := factory.NewConfigFactory()

	cfg, err := f.ParseConfig(`{
		"requirements": {"late": {"wednesday": {"start": 9, "end": 2}}}
	}`)
	require.NoError(t, err)

	assert.Equal(t, schedule.RequiredCounts{Start: 9, End: 2}, cfg.Requirements.Late[3])
	// Other weekdays keep the default table.
	assert.Equal(t, schedule.DefaultRequirementTable().Late[5], cfg.Requirements.Late[5])
	assert.Equal(t, schedule.DefaultRequirementTable().Early, cfg.Requirements.Early)
}

func TestParseConfig_RequirementClamped(t *testing.T) {
	f := factory.NewConfigFactory()

	cfg, err := f.ParseConfig(`{
		"requirements": {"early": {"monday": {"start": 99, "end": -5}}}
	}`)
	require.NoError(t, err)

	assert.Equal(t, schedule.RequiredCounts{Start: schedule.MaxRequiredCount, End: 0}, cfg.Requirements.Early[1])
}

func TestParseConfig_Rejections(t *testing.T) {
	f := factory.NewConfigFactory()

	_, err := f.ParseConfig(`{"bands": {"day_start": "25:00"}}`)
	assert.Error(t, err)

	_, err = f.ParseConfig(`{"requirements": {"early": {"wed": {"start": 1, "end": 1}}}}`)
	assert.Error(t, err)

	_, err = f.ParseConfig(`not json`)
	assert.Error(t, err)
}

func TestStandardVenueJSON_RoundTrips(t *testing.T) {
	f := factory.NewConfigFactory()

	cfg, err := f.ParseConfig(factory.StandardVenueJSON("main-floor", "Main floor"))
	require.NoError(t, err)

	assert.Equal(t, "main-floor", cfg.ID)
	assert.Equal(t, "Main floor", cfg.Name)
	assert.Equal(t, schedule.DefaultBands(), cfg.Bands)
	assert.Equal(t, schedule.DefaultRequirementTable(), cfg.Requirements)
	assert.True(t, cfg.Wage.HourlyWage.Equal(payroll.DefaultWagePolicy().HourlyWage))
}
