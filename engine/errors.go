/*
errors.go - Error taxonomy for the derivation engine

PURPOSE:
  All engine error types in one place. Callers discriminate with errors.Is /
  errors.As; every overtime rejection carries a specific user-facing reason
  string, never a generic "failed".

CATEGORIES:
  1. Configuration - settings unavailable (recovered via safe defaults)
  2. Overtime      - quantization/ordering/overlap/future-time violations
  3. Leave         - OT attempted on an approved-leave day
  4. Integrity     - stored data inconsistent with its derivation

SEE ALSO:
  - overtime.go: Produces OvertimeRejection values
  - attendance.go: Recovers from ErrConfigurationMissing locally
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrConfigurationMissing is returned by settings providers when no
	// working-days configuration exists. The classifier recovers with
	// DefaultWorkingDaysConfig; derivation never fails on it.
	ErrConfigurationMissing = errors.New("working-days configuration missing")

	// ErrInvalidOvertimeInterval is the root of every overtime validation
	// rejection. Wrap-carried by OvertimeRejection.
	ErrInvalidOvertimeInterval = errors.New("invalid overtime interval")

	// ErrLeaveConflict is returned when overtime is logged on a day covered
	// by an approved leave.
	ErrLeaveConflict = errors.New("overtime conflicts with approved leave")

	// ErrInconsistentState marks a data-integrity fault, e.g. a stored OT
	// entry whose hours do not match its own from/to times. Flagged, never
	// silently recalculated: recalculation could mask upstream corruption.
	ErrInconsistentState = errors.New("inconsistent stored state")

	// ErrEmployeeNotFound is returned by providers for unknown employees.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRatingClosed is returned when closing an employee-month whose
	// rating has already been finalized.
	ErrRatingClosed = errors.New("month rating already closed")

	// ErrInsufficientLeaveBalance is returned when approving a leave request
	// would push the employee's remaining balance negative.
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")
)

// =============================================================================
// OVERTIME REJECTION - Typed reason per validation rule
// =============================================================================

// RejectionCode identifies which overtime rule failed. Each code maps to a
// distinct, user-facing reason string.
type RejectionCode string

const (
	RejectNotHalfHour     RejectionCode = "not_half_hour"     // minutes not 00/30
	RejectOrdering        RejectionCode = "ordering"          // end not after start
	RejectNotHalfHourSpan RejectionCode = "not_half_hour_span" // duration not a 0.5h multiple
	RejectLeaveConflict   RejectionCode = "leave_conflict"    // approved leave covers the day
	RejectNotToday        RejectionCode = "not_today"         // employee path: date != today
	RejectFutureTime      RejectionCode = "future_time"       // employee path: end past current time
	RejectOverlap         RejectionCode = "overlap"           // overlaps an existing OT entry
)

// OvertimeRejection explains why a proposed overtime entry was refused.
type OvertimeRejection struct {
	Code   RejectionCode
	Reason string // user-facing, specific to the violated rule
}

func (e *OvertimeRejection) Error() string {
	return fmt.Sprintf("overtime rejected (%s): %s", e.Code, e.Reason)
}

func (e *OvertimeRejection) Unwrap() error {
	if e.Code == RejectLeaveConflict {
		return ErrLeaveConflict
	}
	return ErrInvalidOvertimeInterval
}

// =============================================================================
// INTEGRITY FAULT - Stored value disagrees with its derivation
// =============================================================================

// IntegrityError reports a persisted record whose derived field does not
// reproduce from its source fields.
type IntegrityError struct {
	Kind     string // e.g. "overtime_hours"
	RecordID string
	Detail   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity fault in %s %s: %s", e.Kind, e.RecordID, e.Detail)
}

func (e *IntegrityError) Unwrap() error { return ErrInconsistentState }

// IsRejection reports whether err is an overtime rejection (client input),
// as opposed to a provider or integrity failure.
func IsRejection(err error) bool {
	var rej *OvertimeRejection
	return errors.As(err, &rej)
}
