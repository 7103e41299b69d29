/*
leave.go - Leave overlap resolution

PURPOSE:
  Finds the leave request (if any) covering a given calendar day for one
  employee. Overlap is inclusive on both ends and compared with time-of-day
  stripped.

CONTRACT:
  The resolver does not arbitrate between statuses. When a rejected leave and
  a later approved leave both cover the same day, the caller supplies the
  statuses it cares about; precedence between overlapping statuses lives in
  the attendance classifier, not here.

SEE ALSO:
  - attendance.go: Applies approved-over-pending precedence per day
  - overtime.go: Rejects OT on approved-leave days
*/
package engine

import "sort"

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// LeaveRequest is an employee leave interval [StartDate, EndDate], inclusive.
// Immutable once created except for status transitions performed by the
// external approval workflow.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  Date
	EndDate    Date
	Status     LeaveStatus
	LeaveType  string
	HalfDay    bool
}

// Covers reports whether the request's inclusive range contains the date.
func (l LeaveRequest) Covers(d Date) bool {
	return d.AfterOrEqual(l.StartDate) && d.BeforeOrEqual(l.EndDate)
}

// Days returns the inclusive day count of the interval, counting a half-day
// request as 0.5 per covered day.
func (l LeaveRequest) Days() float64 {
	n := 0
	for d := l.StartDate; d.BeforeOrEqual(l.EndDate); d = d.AddDays(1) {
		n++
	}
	if l.HalfDay {
		return float64(n) * 0.5
	}
	return float64(n)
}

// =============================================================================
// OVERLAP RESOLVER
// =============================================================================

// FindLeave returns the first leave covering d whose status is in statuses
// (all statuses when none given), ordered by start date ascending.
func FindLeave(d Date, leaves []LeaveRequest, statuses ...LeaveStatus) (LeaveRequest, bool) {
	matches := LeavesCovering(d, leaves, statuses...)
	if len(matches) == 0 {
		return LeaveRequest{}, false
	}
	return matches[0], true
}

// LeavesCovering returns every leave covering d whose status is in statuses
// (all statuses when none given), ordered by start date ascending.
func LeavesCovering(d Date, leaves []LeaveRequest, statuses ...LeaveStatus) []LeaveRequest {
	var matches []LeaveRequest
	for _, l := range leaves {
		if !l.Covers(d) {
			continue
		}
		if len(statuses) > 0 && !statusIn(l.Status, statuses) {
			continue
		}
		matches = append(matches, l)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartDate.Before(matches[j].StartDate)
	})
	return matches
}

func statusIn(s LeaveStatus, set []LeaveStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
