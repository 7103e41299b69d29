package engine_test

import (
	"testing"
	"time"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) engine.Date {
	return engine.NewDate(year, month, day)
}

func defaultConfig() engine.WorkingDaysConfig {
	return engine.DefaultWorkingDaysConfig()
}

func noHolidays() engine.HolidaySet {
	return engine.NewHolidaySet(nil)
}

// =============================================================================
// SATURDAY ORDINAL TESTS
// =============================================================================

func TestSaturdayOrdinal_MonthStartingOnSaturday(t *testing.T) {
	// GIVEN: March 2025, where the 1st is a Saturday
	// WHEN: Computing the ordinal of each Saturday
	// THEN: March 1 is the 1st Saturday, March 29 the 5th

	cases := []struct {
		day     int
		ordinal int
	}{
		{1, 1},
		{8, 2},
		{15, 3},
		{22, 4},
		{29, 5},
	}
	for _, c := range cases {
		got := engine.SaturdayOrdinal(date(2025, time.March, c.day))
		if got != c.ordinal {
			t.Errorf("March %d: expected ordinal %d, got %d", c.day, c.ordinal, got)
		}
	}
}

func TestSaturdayOrdinal_MidMonthFirstSaturday(t *testing.T) {
	// GIVEN: June 2025, where the first Saturday is the 7th
	// WHEN: Computing ordinals
	// THEN: June 7 is 1st, June 28 is 4th

	if got := engine.SaturdayOrdinal(date(2025, time.June, 7)); got != 1 {
		t.Errorf("June 7: expected ordinal 1, got %d", got)
	}
	if got := engine.SaturdayOrdinal(date(2025, time.June, 28)); got != 4 {
		t.Errorf("June 28: expected ordinal 4, got %d", got)
	}
}

func TestSaturdayOrdinal_StableAcrossYearBoundary(t *testing.T) {
	// GIVEN: The Saturdays around New Year, where ISO week numbers reset
	// WHEN: Computing ordinals from calendar month boundaries
	// THEN: The pattern restarts at 1 in January regardless of week numbers

	// Dec 2025 Saturdays: 6, 13, 20, 27. Jan 2026 Saturdays: 3, 10, ...
	if got := engine.SaturdayOrdinal(date(2025, time.December, 27)); got != 4 {
		t.Errorf("Dec 27: expected ordinal 4, got %d", got)
	}
	if got := engine.SaturdayOrdinal(date(2026, time.January, 3)); got != 1 {
		t.Errorf("Jan 3: expected ordinal 1, got %d", got)
	}
}

// =============================================================================
// DAY TYPE RESOLUTION TESTS
// =============================================================================

func TestResolveDayType_AlternateSaturdays(t *testing.T) {
	// GIVEN: Default policy (1st and 3rd Saturdays off, Sundays off)
	// WHEN: Classifying every Saturday of June 2025
	// THEN: June 7 (1st) and 21 (3rd) are weekend; 14 and 28 are working

	cfg := defaultConfig()

	cases := []struct {
		day  int
		want engine.DayType
	}{
		{7, engine.DayWeekend},
		{14, engine.DayWorking},
		{21, engine.DayWeekend},
		{28, engine.DayWorking},
	}
	for _, c := range cases {
		got := engine.ResolveDayType(date(2025, time.June, c.day), cfg, noHolidays())
		if got != c.want {
			t.Errorf("June %d: expected %s, got %s", c.day, c.want, got)
		}
	}
}

func TestResolveDayType_HolidayAlwaysWins(t *testing.T) {
	// GIVEN: A holiday falling on a working Saturday (June 14, 2nd Saturday)
	// WHEN: Resolving the day type
	// THEN: It classifies as holiday, not working

	holidays := engine.NewHolidaySet([]engine.Holiday{
		{Date: date(2025, time.June, 14), Name: "Founders Day"},
	})

	got := engine.ResolveDayType(date(2025, time.June, 14), defaultConfig(), holidays)
	if got != engine.DayHoliday {
		t.Errorf("expected holiday, got %s", got)
	}

	// And on an off Saturday too.
	holidays = engine.NewHolidaySet([]engine.Holiday{
		{Date: date(2025, time.June, 7), Name: "Founders Day"},
	})
	got = engine.ResolveDayType(date(2025, time.June, 7), defaultConfig(), holidays)
	if got != engine.DayHoliday {
		t.Errorf("expected holiday on off Saturday, got %s", got)
	}
}

func TestResolveDayType_SundayPolicies(t *testing.T) {
	// GIVEN: June 1 2025, a Sunday
	// WHEN: Resolving with SundayOff true and false
	// THEN: Weekend when off, working when not

	sunday := date(2025, time.June, 1)

	cfg := defaultConfig()
	if got := engine.ResolveDayType(sunday, cfg, noHolidays()); got != engine.DayWeekend {
		t.Errorf("expected weekend, got %s", got)
	}

	cfg.SundayOff = false
	if got := engine.ResolveDayType(sunday, cfg, noHolidays()); got != engine.DayWorking {
		t.Errorf("expected working, got %s", got)
	}
}

func TestResolveDayType_SaturdayPolicies(t *testing.T) {
	// GIVEN: A Saturday (June 14 2025, 2nd of the month)
	// WHEN: Resolving under each Saturday policy
	// THEN: Classification follows the policy

	saturday := date(2025, time.June, 14)

	cases := []struct {
		policy engine.SaturdayPolicy
		off    []int
		want   engine.DayType
	}{
		{engine.SaturdayAllWorking, nil, engine.DayWorking},
		{engine.SaturdayAllOff, nil, engine.DayWeekend},
		{engine.SaturdayAlternate, []int{1, 3}, engine.DayWorking},
		{engine.SaturdayAlternate, []int{2, 4}, engine.DayWeekend},
		{engine.SaturdayCustom, []int{2}, engine.DayWeekend},
		{engine.SaturdayCustom, []int{5}, engine.DayWorking},
	}
	for _, c := range cases {
		cfg := engine.WorkingDaysConfig{
			SaturdayPolicy: c.policy,
			OffSaturdays:   c.off,
			SundayOff:      true,
		}
		got := engine.ResolveDayType(saturday, cfg, noHolidays())
		if got != c.want {
			t.Errorf("policy %s off %v: expected %s, got %s", c.policy, c.off, c.want, got)
		}
	}
}

func TestResolveDayType_RegularWeekday(t *testing.T) {
	// GIVEN: A plain Wednesday
	// WHEN: Resolving the day type
	// THEN: Working

	got := engine.ResolveDayType(date(2025, time.June, 11), defaultConfig(), noHolidays())
	if got != engine.DayWorking {
		t.Errorf("expected working, got %s", got)
	}
}
