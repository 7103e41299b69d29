/*
Package engine derives attendance, overtime, and monthly work statistics
from immutable snapshots of HR data.

PURPOSE:
  This package is the single home for the rules that decide, per employee
  and calendar day, whether the day counts as working time, what attendance
  status applies, whether a proposed overtime entry is acceptable, and how a
  month rolls up. Every page and report calls this one engine instead of
  carrying its own copy of the rules.

KEY CONCEPTS:
  - Date / TimeOfDay: component-based calendar arithmetic, no timezone drift
  - DayType: holiday | weekend | working (calendar.go)
  - DayStatus: the authoritative per-day derivation (attendance.go)
  - OvertimeLog: half-hour-quantized intervals with derived hours (overtime.go)
  - MonthlySummary: deterministic month fold (aggregate.go)

DESIGN PRINCIPLES:
  1. Purity: evaluation reads a snapshot once, then computes without side
     effects; parallel evaluations share no mutable state
  2. Precision: decimal.Decimal for every hour/day quantity
  3. Explicit time: "today" is an injected Clock, never a hidden time.Now()
  4. Recoverable config: missing settings fall back to a safe default

SEE ALSO:
  - rating/: monthly performance rating fold over this package's outputs
  - entitlement/: leave balance accrual
  - store/sqlite: production providers
*/
package engine

import (
	"context"
	"fmt"

	"errors"
)

// Engine evaluates attendance, overtime, and monthly summaries against a
// DataSource. It holds no mutable state; one Engine serves all employees
// concurrently.
type Engine struct {
	Source DataSource
	Clock  Clock
	Events *Dispatcher
}

// New creates an engine over the given source using the system clock.
func New(source DataSource) *Engine {
	return &Engine{Source: source, Clock: SystemClock{}, Events: NewDispatcher()}
}

// =============================================================================
// SNAPSHOT LOADING
// =============================================================================

// monthInputs fetches the immutable evaluation snapshot for one
// employee-month: config (with safe-default fallback), the month's holidays,
// and the employee's leave requests and attendance overrides.
func (e *Engine) monthInputs(ctx context.Context, employeeID string, month MonthKey) (DayInputs, error) {
	cfg, err := e.Source.WorkingDays(ctx)
	if err != nil {
		if !errors.Is(err, ErrConfigurationMissing) {
			return DayInputs{}, fmt.Errorf("load working-days config: %w", err)
		}
		cfg = DefaultWorkingDaysConfig()
	}

	holidays, err := e.Source.Holidays(ctx, month.First(), month.Last())
	if err != nil {
		return DayInputs{}, fmt.Errorf("load holidays: %w", err)
	}

	leaves, err := e.Source.LeavesByEmployee(ctx, employeeID)
	if err != nil {
		return DayInputs{}, fmt.Errorf("load leave requests: %w", err)
	}

	records, err := e.Source.RecordsForMonth(ctx, employeeID, month)
	if err != nil {
		return DayInputs{}, fmt.Errorf("load attendance records: %w", err)
	}

	return DayInputs{
		Config:   cfg,
		Holidays: NewHolidaySet(holidays),
		Leaves:   leaves,
		Records:  records,
		Today:    e.Clock.Today(),
	}, nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ClassifyDay derives the status of one employee-day. ok is false for future
// days with no approved leave.
func (e *Engine) ClassifyDay(ctx context.Context, employeeID string, d Date) (DayStatus, bool, error) {
	in, err := e.monthInputs(ctx, employeeID, MonthOf(d))
	if err != nil {
		return DayStatus{}, false, err
	}
	status, ok := ClassifyDay(d, in)
	return status, ok, nil
}

// ClassifyMonth derives statuses for every resolvable day of the month, in
// calendar order. Future days appear only when previewable as approved leave.
func (e *Engine) ClassifyMonth(ctx context.Context, employeeID string, month MonthKey) ([]DayStatus, error) {
	in, err := e.monthInputs(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}
	var statuses []DayStatus
	for _, d := range month.Days() {
		if status, ok := ClassifyDay(d, in); ok {
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

// AggregateMonth rolls one employee-month up into a summary.
func (e *Engine) AggregateMonth(ctx context.Context, employeeID string, month MonthKey) (MonthlySummary, error) {
	in, err := e.monthInputs(ctx, employeeID, month)
	if err != nil {
		return MonthlySummary{}, err
	}
	overtime, err := e.Source.OvertimeByEmployee(ctx, employeeID)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("load overtime logs: %w", err)
	}
	return AggregateMonth(employeeID, month, in, overtime), nil
}

// ValidateOvertime checks a proposal against existing overtime and leave for
// the day. On success the returned entry carries derived hours and initial
// status; persisting it is the caller's job.
func (e *Engine) ValidateOvertime(ctx context.Context, p OvertimeProposal) (OvertimeLog, error) {
	leaves, err := e.Source.LeavesByEmployee(ctx, p.EmployeeID)
	if err != nil {
		return OvertimeLog{}, fmt.Errorf("load leave requests: %w", err)
	}
	existing, err := e.Source.OvertimeByEmployee(ctx, p.EmployeeID)
	if err != nil {
		return OvertimeLog{}, fmt.Errorf("load overtime logs: %w", err)
	}
	return ValidateOvertime(p, existing, leaves, e.Clock)
}

// CheckOvertimeIntegrity re-derives stored OT hours and returns one
// IntegrityError per mismatching entry. Faults are reported, never repaired.
func (e *Engine) CheckOvertimeIntegrity(ctx context.Context, employeeID string) ([]error, error) {
	logs, err := e.Source.OvertimeByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load overtime logs: %w", err)
	}
	var faults []error
	for _, log := range logs {
		if err := log.VerifyHours(); err != nil {
			faults = append(faults, err)
		}
	}
	return faults, nil
}
