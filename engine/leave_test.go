package engine_test

import (
	"testing"
	"time"

	"github.com/warp/attendance-engine/engine"
)

func leave(id string, status engine.LeaveStatus, start, end engine.Date) engine.LeaveRequest {
	return engine.LeaveRequest{
		ID:         id,
		EmployeeID: "emp-1",
		StartDate:  start,
		EndDate:    end,
		Status:     status,
		LeaveType:  "casual",
	}
}

// =============================================================================
// OVERLAP RESOLVER TESTS
// =============================================================================

func TestLeaveRequest_CoversInclusive(t *testing.T) {
	// GIVEN: A leave from June 10 to June 12
	// WHEN: Checking coverage day by day
	// THEN: Both endpoints are covered, neighbors are not

	l := leave("l-1", engine.LeaveApproved, date(2025, time.June, 10), date(2025, time.June, 12))

	if !l.Covers(date(2025, time.June, 10)) || !l.Covers(date(2025, time.June, 12)) {
		t.Error("endpoints should be covered")
	}
	if l.Covers(date(2025, time.June, 9)) || l.Covers(date(2025, time.June, 13)) {
		t.Error("days outside the interval should not be covered")
	}
}

func TestLeaveRequest_DaysCountsHalfDays(t *testing.T) {
	full := leave("l-1", engine.LeaveApproved, date(2025, time.June, 10), date(2025, time.June, 12))
	if full.Days() != 3 {
		t.Errorf("expected 3 days, got %v", full.Days())
	}

	half := full
	half.HalfDay = true
	if half.Days() != 1.5 {
		t.Errorf("expected 1.5 days, got %v", half.Days())
	}
}

func TestFindLeave_FiltersByStatus(t *testing.T) {
	// GIVEN: A rejected and an approved leave both covering June 10
	// WHEN: Resolving for approved only
	// THEN: The approved one is returned; resolving for rejected finds the other

	day := date(2025, time.June, 10)
	leaves := []engine.LeaveRequest{
		leave("l-rejected", engine.LeaveRejected, date(2025, time.June, 9), date(2025, time.June, 11)),
		leave("l-approved", engine.LeaveApproved, date(2025, time.June, 10), date(2025, time.June, 10)),
	}

	got, ok := engine.FindLeave(day, leaves, engine.LeaveApproved)
	if !ok || got.ID != "l-approved" {
		t.Errorf("expected l-approved, got %+v ok=%v", got, ok)
	}

	got, ok = engine.FindLeave(day, leaves, engine.LeaveRejected)
	if !ok || got.ID != "l-rejected" {
		t.Errorf("expected l-rejected, got %+v ok=%v", got, ok)
	}

	if _, ok := engine.FindLeave(day, leaves, engine.LeaveCancelled); ok {
		t.Error("expected no cancelled leave")
	}
}

func TestLeavesCovering_OrderedByStartDate(t *testing.T) {
	// GIVEN: Two pending leaves overlapping June 10, created out of order
	// WHEN: Listing leaves covering the day
	// THEN: Result is ordered by start date ascending

	day := date(2025, time.June, 10)
	leaves := []engine.LeaveRequest{
		leave("l-late", engine.LeavePending, date(2025, time.June, 10), date(2025, time.June, 12)),
		leave("l-early", engine.LeavePending, date(2025, time.June, 8), date(2025, time.June, 10)),
	}

	got := engine.LeavesCovering(day, leaves)
	if len(got) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(got))
	}
	if got[0].ID != "l-early" || got[1].ID != "l-late" {
		t.Errorf("expected [l-early l-late], got [%s %s]", got[0].ID, got[1].ID)
	}
}
