/*
overtime.go - Overtime entry validation

PURPOSE:
  Validates a proposed overtime entry before it is accepted: half-hour
  quantization, ordering, duration multiples, no approved-leave conflict,
  today-only/no-future rules for the employee-facing path, and non-overlap
  with already-logged entries.

RULE ORDER:
  Rules run in a fixed order and each failure surfaces a distinct
  RejectionCode, so callers can show the exact violated rule rather than a
  generic failure.

PATHS:
  Employee path: date must be today and the entry must not extend past the
  current wall-clock time; accepted entries start pending.
  Admin path: exempt from the today/future rules, auto-approves; still
  subject to quantization and non-overlap.

DERIVED HOURS:
  OTHours is computed exactly once at validation time from the minute span
  and stored immutably with the entry. VerifyHours re-derives it for
  integrity checks and flags mismatches instead of fixing them.

SEE ALSO:
  - errors.go: RejectionCode values and OvertimeRejection
  - aggregate.go: Sums approved entries into the monthly summary
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OVERTIME LOG
// =============================================================================

type OvertimeStatus string

const (
	OvertimePending  OvertimeStatus = "pending"
	OvertimeApproved OvertimeStatus = "approved"
	OvertimeRejected OvertimeStatus = "rejected"
)

// OvertimeLog is a logged overtime interval on a single day. OTHours is
// derived from FromTime/ToTime at acceptance and never recomputed in place.
type OvertimeLog struct {
	ID         string
	EmployeeID string
	Date       Date
	FromTime   TimeOfDay
	ToTime     TimeOfDay
	OTHours    decimal.Decimal
	Project    string
	Notes      string
	Status     OvertimeStatus
	CreatedAt  Date
}

// Overlaps reports whether two half-open minute intervals on the same day
// intersect. Touching endpoints (18:00-19:00 and 19:00-20:00) do not overlap.
func (o OvertimeLog) Overlaps(from, to TimeOfDay) bool {
	return from.TotalMinutes() < o.ToTime.TotalMinutes() &&
		o.FromTime.TotalMinutes() < to.TotalMinutes()
}

// HoursBetween derives the span in hours from a minute-quantized interval.
func HoursBetween(from, to TimeOfDay) decimal.Decimal {
	return decimal.NewFromInt(int64(to.TotalMinutes() - from.TotalMinutes())).
		Div(decimal.NewFromInt(60))
}

// VerifyHours checks that the stored OTHours reproduces from FromTime/ToTime.
// A mismatch is a data-integrity fault to flag, not to repair.
func (o OvertimeLog) VerifyHours() error {
	derived := HoursBetween(o.FromTime, o.ToTime)
	if !o.OTHours.Equal(derived) {
		return &IntegrityError{
			Kind:     "overtime_hours",
			RecordID: o.ID,
			Detail:   fmt.Sprintf("stored %s hours, derived %s from %s-%s", o.OTHours, derived, o.FromTime, o.ToTime),
		}
	}
	return nil
}

// =============================================================================
// VALIDATOR
// =============================================================================

// OvertimeProposal is an entry awaiting validation.
type OvertimeProposal struct {
	EmployeeID string
	Date       Date
	FromTime   TimeOfDay
	ToTime     TimeOfDay
	Project    string
	Notes      string
	// AdminLogged marks the admin-assisted path: exempt from today/future
	// rules and auto-approved on acceptance.
	AdminLogged bool
}

var halfHour = decimal.NewFromFloat(0.5)

// ValidateOvertime checks a proposal against the fixed rule order and, on
// success, returns the accepted entry with OTHours derived and status set
// (pending for the employee path, approved for the admin path).
//
// existing must hold the employee's already-logged OT entries for the day;
// leaves the employee's leave requests. clock supplies today/now for the
// employee-path rules.
func ValidateOvertime(p OvertimeProposal, existing []OvertimeLog, leaves []LeaveRequest, clock Clock) (OvertimeLog, error) {
	// Rule 1: both endpoints on a half-hour boundary.
	if !p.FromTime.OnHalfHour() || !p.ToTime.OnHalfHour() {
		return OvertimeLog{}, &OvertimeRejection{
			Code:   RejectNotHalfHour,
			Reason: fmt.Sprintf("times must end in :00 or :30, got %s-%s", p.FromTime, p.ToTime),
		}
	}

	// Rule 2: strictly increasing, no overnight wraparound.
	if !p.ToTime.After(p.FromTime) {
		return OvertimeLog{}, &OvertimeRejection{
			Code:   RejectOrdering,
			Reason: fmt.Sprintf("end time %s must be after start time %s", p.ToTime, p.FromTime),
		}
	}

	// Rule 3: duration is an exact multiple of 0.5 hours.
	hours := HoursBetween(p.FromTime, p.ToTime)
	if !hours.Mod(halfHour).IsZero() {
		return OvertimeLog{}, &OvertimeRejection{
			Code:   RejectNotHalfHourSpan,
			Reason: fmt.Sprintf("duration %s hours must be a multiple of 0.5", hours),
		}
	}

	// Rule 4: no approved leave on the day.
	if leave, ok := FindLeave(p.Date, leaves, LeaveApproved); ok {
		return OvertimeLog{}, &OvertimeRejection{
			Code:   RejectLeaveConflict,
			Reason: fmt.Sprintf("an approved %s leave covers %s", leave.LeaveType, p.Date),
		}
	}

	// Rules 5a/5b: employee path logs for today only, never into the future.
	if !p.AdminLogged {
		today := clock.Today()
		if !p.Date.Equal(today) {
			return OvertimeLog{}, &OvertimeRejection{
				Code:   RejectNotToday,
				Reason: fmt.Sprintf("overtime can only be logged for today (%s), got %s", today, p.Date),
			}
		}
		if p.ToTime.After(clock.Now()) {
			return OvertimeLog{}, &OvertimeRejection{
				Code:   RejectFutureTime,
				Reason: fmt.Sprintf("end time %s is in the future (now %s)", p.ToTime, clock.Now()),
			}
		}
	}

	// Rule 6: no overlap with already-logged entries for the day.
	for _, other := range existing {
		if !other.Date.Equal(p.Date) || other.Status == OvertimeRejected {
			continue
		}
		if other.Overlaps(p.FromTime, p.ToTime) {
			return OvertimeLog{}, &OvertimeRejection{
				Code:   RejectOverlap,
				Reason: fmt.Sprintf("overlaps existing overtime %s-%s", other.FromTime, other.ToTime),
			}
		}
	}

	status := OvertimePending
	if p.AdminLogged {
		status = OvertimeApproved
	}

	return OvertimeLog{
		EmployeeID: p.EmployeeID,
		Date:       p.Date,
		FromTime:   p.FromTime,
		ToTime:     p.ToTime,
		OTHours:    hours,
		Project:    p.Project,
		Notes:      p.Notes,
		Status:     status,
		CreatedAt:  clock.Today(),
	}, nil
}
