package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar point
// =============================================================================

// Date is a calendar day. All comparisons normalize to midnight UTC so the
// same calendar day always compares equal regardless of the time-of-day or
// location carried by the underlying time.Time. Calendar classification must
// depend on date components only, never on wall-clock time.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf strips the time-of-day from t.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.normalize().AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.normalize().AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.normalize().Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) String() string { return d.normalize().Format("2006-01-02") }

// =============================================================================
// MONTH - Year+month key for aggregation and rating state
// =============================================================================

// MonthKey identifies an employee-month bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthOf(d Date) MonthKey { return MonthKey{Year: d.Year(), Month: d.Month()} }

// Prev returns the preceding calendar month.
func (m MonthKey) Prev() MonthKey {
	if m.Month == time.January {
		return MonthKey{Year: m.Year - 1, Month: time.December}
	}
	return MonthKey{Year: m.Year, Month: m.Month - 1}
}

// Next returns the following calendar month.
func (m MonthKey) Next() MonthKey {
	if m.Month == time.December {
		return MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return MonthKey{Year: m.Year, Month: m.Month + 1}
}

// First returns the first day of the month.
func (m MonthKey) First() Date { return NewDate(m.Year, m.Month, 1) }

// Last returns the last day of the month, by calendar month boundaries.
func (m MonthKey) Last() Date { return m.First().AddMonths(1).AddDays(-1) }

// Contains reports whether d falls inside the month.
func (m MonthKey) Contains(d Date) bool { return d.Year() == m.Year && d.Month() == m.Month }

// Days returns every day of the month in order.
func (m MonthKey) Days() []Date {
	var days []Date
	for d := m.First(); d.BeforeOrEqual(m.Last()); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// EndedBefore reports whether the month is fully in the past as of the given
// day. A month still in progress (or future) has not ended.
func (m MonthKey) EndedBefore(today Date) bool { return m.Last().Before(today) }

func (m MonthKey) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }

// =============================================================================
// TIME OF DAY - Hour:minute within a single day (overtime bounds)
// =============================================================================

// TimeOfDay is a wall-clock time within one day, minute precision. Overtime
// intervals never cross midnight, so a pair of these fully describes one.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TotalMinutes returns minutes since midnight.
func (t TimeOfDay) TotalMinutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.TotalMinutes() < other.TotalMinutes() }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t.TotalMinutes() > other.TotalMinutes() }

// OnHalfHour reports whether the minute component is exactly 00 or 30.
func (t TimeOfDay) OnHalfHour() bool { return t.Minute == 0 || t.Minute == 30 }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// =============================================================================
// CLOCK - Injectable "today" for deterministic evaluation
// =============================================================================

// Clock supplies the current day and wall-clock time. The engine itself never
// reads the system clock; callers inject one so evaluations stay reproducible.
type Clock interface {
	Today() Date
	Now() TimeOfDay
}

// SystemClock reads the real clock.
type SystemClock struct{}

func (SystemClock) Today() Date { return DateOf(time.Now()) }
func (SystemClock) Now() TimeOfDay {
	now := time.Now()
	return TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}
}

// FixedClock pins today/now, for tests and replays.
type FixedClock struct {
	Day  Date
	Time TimeOfDay
}

func (c FixedClock) Today() Date     { return c.Day }
func (c FixedClock) Now() TimeOfDay  { return c.Time }
