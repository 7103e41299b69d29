/*
calendar.go - Calendar policy resolution

PURPOSE:
  Decides, for any calendar day, whether it is a working day and classifies
  it as holiday, weekend, or working. This is the leaf of the derivation
  pipeline: attendance classification and monthly aggregation both sit on
  top of it.

RESOLUTION ORDER:
  1. Holiday match          -> DayHoliday (always wins, even on a Saturday)
  2. Sunday + sundayOff     -> DayWeekend
  3. Saturday, by policy    -> DayWeekend or DayWorking
  4. Any other weekday      -> DayWorking

ALTERNATE SATURDAYS:
  The ordinal Saturday-of-month (1st..5th) is computed from calendar month
  boundaries only: locate the first Saturday of the month and count 7-day
  strides. ISO week numbers are never used, so the result is stable across
  locales and timezones.

SEE ALSO:
  - attendance.go: Consumes DayType in the classifier state machine
  - factory/: Parses WorkingDaysConfig from settings documents
*/
package engine

import "time"

// =============================================================================
// WORKING DAYS CONFIG
// =============================================================================

// SaturdayPolicy controls how Saturdays classify.
type SaturdayPolicy string

const (
	SaturdayAllWorking SaturdayPolicy = "all_working"
	SaturdayAllOff     SaturdayPolicy = "all_off"
	SaturdayAlternate  SaturdayPolicy = "alternate"
	SaturdayCustom     SaturdayPolicy = "custom"
)

// WorkingDaysConfig is the company-level weekly off-day policy. It is
// read-only to the engine and immutable per evaluation.
type WorkingDaysConfig struct {
	SaturdayPolicy SaturdayPolicy
	// OffSaturdays holds the 1-indexed ordinal Saturdays of the month that
	// are OFF. Consulted for alternate and custom policies.
	OffSaturdays []int
	SundayOff    bool
}

// DefaultWorkingDaysConfig is the fallback when settings are unavailable:
// 1st and 3rd Saturdays off, Sundays off. A missing configuration must never
// fail attendance derivation.
func DefaultWorkingDaysConfig() WorkingDaysConfig {
	return WorkingDaysConfig{
		SaturdayPolicy: SaturdayAlternate,
		OffSaturdays:   []int{1, 3},
		SundayOff:      true,
	}
}

func (c WorkingDaysConfig) saturdayOff(ordinal int) bool {
	for _, n := range c.OffSaturdays {
		if n == ordinal {
			return true
		}
	}
	return false
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holiday is a company holiday. A date matching any holiday overrides
// weekday-based classification.
type Holiday struct {
	Date Date
	Name string
}

// HolidaySet provides date lookup over a holiday list.
type HolidaySet struct {
	byDate map[string]Holiday
}

func NewHolidaySet(holidays []Holiday) HolidaySet {
	set := HolidaySet{byDate: make(map[string]Holiday, len(holidays))}
	for _, h := range holidays {
		set.byDate[h.Date.String()] = h
	}
	return set
}

// Find returns the holiday on the given date, if any.
func (s HolidaySet) Find(d Date) (Holiday, bool) {
	h, ok := s.byDate[d.String()]
	return h, ok
}

func (s HolidaySet) Contains(d Date) bool {
	_, ok := s.Find(d)
	return ok
}

// =============================================================================
// DAY TYPE RESOLUTION
// =============================================================================

// DayType is the calendar classification of a single day.
type DayType string

const (
	DayHoliday DayType = "holiday"
	DayWeekend DayType = "weekend"
	DayWorking DayType = "working"
)

// ResolveDayType classifies a date under the given policy and holiday set.
func ResolveDayType(d Date, cfg WorkingDaysConfig, holidays HolidaySet) DayType {
	if holidays.Contains(d) {
		return DayHoliday
	}

	switch d.Weekday() {
	case time.Sunday:
		if cfg.SundayOff {
			return DayWeekend
		}
		return DayWorking

	case time.Saturday:
		switch cfg.SaturdayPolicy {
		case SaturdayAllOff:
			return DayWeekend
		case SaturdayAllWorking:
			return DayWorking
		case SaturdayAlternate, SaturdayCustom:
			if cfg.saturdayOff(SaturdayOrdinal(d)) {
				return DayWeekend
			}
			return DayWorking
		default:
			return DayWorking
		}

	default:
		return DayWorking
	}
}

// SaturdayOrdinal returns the 1-indexed occurrence of d's Saturday within its
// calendar month. Only meaningful for Saturdays; computed from the first
// Saturday of the month in 7-day strides.
func SaturdayOrdinal(d Date) int {
	first := NewDate(d.Year(), d.Month(), 1)
	offset := (int(time.Saturday) - int(first.Weekday()) + 7) % 7
	firstSaturday := 1 + offset
	return (d.Day()-firstSaturday)/7 + 1
}
