/*
providers.go - External data collaborators

PURPOSE:
  Interfaces between the derivation engine and whatever persists its inputs.
  The engine queries these once per evaluation and computes over the
  resulting immutable snapshot; it never writes through them.

CONTRACTS:
  - Leave and overtime sources return ALL statuses; filtering is the
    caller's job (the classifier and validator apply their own precedence).
  - A settings source with no stored configuration returns
    ErrConfigurationMissing; the engine recovers with the safe default.
  - Providers own write isolation: approving overtime or closing a rating
    must be serialized per employee-month on their side.

IMPLEMENTATIONS:
  - store/sqlite: production store
  - engine/store: in-memory store for tests

SEE ALSO:
  - engine.go: Snapshot fetch and the evaluation facade
*/
package engine

import "context"

// SettingsSource supplies the company working-days configuration.
type SettingsSource interface {
	// WorkingDays returns the current configuration, or
	// ErrConfigurationMissing when none is stored.
	WorkingDays(ctx context.Context) (WorkingDaysConfig, error)
}

// HolidaySource supplies company holidays in a date range (inclusive).
type HolidaySource interface {
	Holidays(ctx context.Context, from, to Date) ([]Holiday, error)
}

// LeaveSource supplies leave requests for one employee, all statuses.
type LeaveSource interface {
	LeavesByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
}

// AttendanceSource supplies explicit attendance records for an
// employee-month. Most days have none; auto-attendance fills the rest.
type AttendanceSource interface {
	RecordsForMonth(ctx context.Context, employeeID string, month MonthKey) ([]AttendanceRecord, error)
}

// OvertimeSource supplies overtime logs for one employee, all statuses.
type OvertimeSource interface {
	OvertimeByEmployee(ctx context.Context, employeeID string) ([]OvertimeLog, error)
}

// LateArrivalSource supplies late-arrival rows for an employee-month.
type LateArrivalSource interface {
	LateArrivalsForMonth(ctx context.Context, employeeID string, month MonthKey) ([]LateArrival, error)
}

// DataSource bundles every provider the engine evaluates against.
type DataSource interface {
	SettingsSource
	HolidaySource
	LeaveSource
	AttendanceSource
	OvertimeSource
	LateArrivalSource
}
