/*
Package factory converts settings documents into engine configuration.

PURPOSE:
  Company administrators describe the working-week policy, accrual rates,
  and the holiday calendar as JSON (admin UI, database column) or YAML
  (seed files). This package parses either form into engine types, applies
  defaults, and validates the result so a malformed document is rejected at
  load time instead of misclassifying days later.

DOCUMENT SCHEMA:
  working_days:
    saturday_policy: all_working | all_off | alternate | custom
    off_saturdays: [1, 3]        # ordinal Saturdays of the month, 1..5
    sunday_off: true
  entitlement:
    casual_monthly_rate: 1.5
    sick_annual_days: 12
  holidays:
    - date: 2025-01-26
      name: Republic Day

DEFAULTS:
  Omitted sections fall back to the engine's safe defaults: alternate
  Saturdays (1st and 3rd off), Sundays off, 1.5 casual days/month, 12 sick
  days/year.

SEE ALSO:
  - engine/calendar.go: WorkingDaysConfig consumed here
  - entitlement/: Policy consumed here
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/entitlement"
)

// =============================================================================
// DOCUMENT SCHEMA
// =============================================================================

type SettingsDoc struct {
	WorkingDays *WorkingDaysDoc `json:"working_days" yaml:"working_days"`
	Entitlement *EntitlementDoc `json:"entitlement" yaml:"entitlement"`
	Holidays    []HolidayDoc    `json:"holidays" yaml:"holidays"`
}

type WorkingDaysDoc struct {
	SaturdayPolicy string `json:"saturday_policy" yaml:"saturday_policy"`
	OffSaturdays   []int  `json:"off_saturdays" yaml:"off_saturdays"`
	SundayOff      *bool  `json:"sunday_off" yaml:"sunday_off"`
}

type EntitlementDoc struct {
	CasualMonthlyRate *float64 `json:"casual_monthly_rate" yaml:"casual_monthly_rate"`
	SickAnnualDays    *float64 `json:"sick_annual_days" yaml:"sick_annual_days"`
}

type HolidayDoc struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
}

// Settings is the parsed, validated configuration bundle.
type Settings struct {
	WorkingDays engine.WorkingDaysConfig
	Entitlement entitlement.Policy
	Holidays    []engine.Holiday
}

// =============================================================================
// PARSING
// =============================================================================

// ParseJSON parses a JSON settings document.
func ParseJSON(data []byte) (Settings, error) {
	var doc SettingsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("parse settings json: %w", err)
	}
	return build(doc)
}

// ParseYAML parses a YAML settings document (seed files).
func ParseYAML(data []byte) (Settings, error) {
	var doc SettingsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("parse settings yaml: %w", err)
	}
	return build(doc)
}

func build(doc SettingsDoc) (Settings, error) {
	settings := Settings{
		WorkingDays: engine.DefaultWorkingDaysConfig(),
		Entitlement: entitlement.DefaultPolicy(),
	}

	if doc.WorkingDays != nil {
		cfg, err := buildWorkingDays(*doc.WorkingDays)
		if err != nil {
			return Settings{}, err
		}
		settings.WorkingDays = cfg
	}

	if doc.Entitlement != nil {
		if doc.Entitlement.CasualMonthlyRate != nil {
			rate := *doc.Entitlement.CasualMonthlyRate
			if rate < 0 {
				return Settings{}, fmt.Errorf("casual_monthly_rate must not be negative, got %v", rate)
			}
			settings.Entitlement.CasualMonthlyRate = decimal.NewFromFloat(rate)
		}
		if doc.Entitlement.SickAnnualDays != nil {
			days := *doc.Entitlement.SickAnnualDays
			if days < 0 {
				return Settings{}, fmt.Errorf("sick_annual_days must not be negative, got %v", days)
			}
			settings.Entitlement.SickAnnualDays = decimal.NewFromFloat(days)
		}
	}

	for _, h := range doc.Holidays {
		date, err := engine.ParseDate(h.Date)
		if err != nil {
			return Settings{}, fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		settings.Holidays = append(settings.Holidays, engine.Holiday{Date: date, Name: h.Name})
	}

	return settings, nil
}

func buildWorkingDays(doc WorkingDaysDoc) (engine.WorkingDaysConfig, error) {
	cfg := engine.DefaultWorkingDaysConfig()

	if doc.SaturdayPolicy != "" {
		policy := engine.SaturdayPolicy(doc.SaturdayPolicy)
		switch policy {
		case engine.SaturdayAllWorking, engine.SaturdayAllOff, engine.SaturdayAlternate, engine.SaturdayCustom:
			cfg.SaturdayPolicy = policy
		default:
			return engine.WorkingDaysConfig{}, fmt.Errorf("unknown saturday_policy %q", doc.SaturdayPolicy)
		}
	}

	if doc.OffSaturdays != nil {
		for _, n := range doc.OffSaturdays {
			if n < 1 || n > 5 {
				return engine.WorkingDaysConfig{}, fmt.Errorf("off_saturdays entries must be 1..5, got %d", n)
			}
		}
		cfg.OffSaturdays = doc.OffSaturdays
	}

	if doc.SundayOff != nil {
		cfg.SundayOff = *doc.SundayOff
	}

	return cfg, nil
}
