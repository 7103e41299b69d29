/*
attendance.go - Per-day attendance classification

PURPOSE:
  Derives the single authoritative status of one calendar day for one
  employee, combining calendar policy, leave overlap, and any explicit
  attendance record. This is the state machine every page must share;
  re-implementing it per page is where classification drift comes from.

RESOLUTION ORDER (first match wins, for dates not in the future):
  1. Holiday                       -> holiday, 0h
  2. Approved leave covers day     -> leave (0h) or half-day (4h)
  3. Weekend                       -> weekend, 0h
  4. Pending/rejected/cancelled
     leave covers day              -> present, full day, leave annotated
  5. Explicit attendance record    -> stored status/hours verbatim
  6. Default (auto-attendance)     -> present, full day, synthesized

FUTURE DAYS:
  A future date produces no status unless an approved leave covers it, in
  which case it resolves as leave so the UI can preview it.

AUTO-ATTENDANCE:
  Every past working day not caught by rules 1-5 is present with the fixed
  full-day duration. The synthesized flag marks records that exist only by
  derivation.

SEE ALSO:
  - calendar.go: DayType resolution (rules 1 and 3)
  - leave.go: Overlap resolution (rules 2 and 4)
  - aggregate.go: Folds these statuses over a month
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// CONSTANTS - Standard working day
// =============================================================================

var (
	// FullDayHours is the fixed duration of a standard working day
	// (08:30-17:30 with a one-hour break).
	FullDayHours = decimal.NewFromInt(8)

	// HalfDayHours is the duration credited for a half-day leave.
	HalfDayHours = decimal.NewFromInt(4)

	// ExpectedCheckIn is the start of the standard working window; late
	// arrivals are measured against it.
	ExpectedCheckIn = TimeOfDay{Hour: 8, Minute: 30}
)

// =============================================================================
// ATTENDANCE RECORDS
// =============================================================================

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusHalfDay AttendanceStatus = "half-day"
	StatusLeave   AttendanceStatus = "leave"
	StatusHoliday AttendanceStatus = "holiday"
	StatusWeekend AttendanceStatus = "weekend"
)

// AttendanceRecord is an explicitly persisted day status, e.g. an admin
// marking an employee absent. Its stored values override auto-attendance.
type AttendanceRecord struct {
	EmployeeID   string
	Date         Date
	Status       AttendanceStatus
	WorkingHours decimal.Decimal
}

// LateArrival records a check-in after ExpectedCheckIn. LateMinutes is
// derived at creation and feeds the monthly rating fold.
type LateArrival struct {
	EmployeeID    string
	Date          Date
	ActualCheckIn TimeOfDay
	LateMinutes   int
}

// NewLateArrival derives the late-minute count from the fixed expected
// check-in time. Returns false when the check-in is on time.
func NewLateArrival(employeeID string, date Date, checkIn TimeOfDay) (LateArrival, bool) {
	late := checkIn.TotalMinutes() - ExpectedCheckIn.TotalMinutes()
	if late <= 0 {
		return LateArrival{}, false
	}
	return LateArrival{
		EmployeeID:    employeeID,
		Date:          date,
		ActualCheckIn: checkIn,
		LateMinutes:   late,
	}, true
}

// =============================================================================
// DAY STATUS - Classifier output
// =============================================================================

// DayStatus is the authoritative derivation for one employee-day.
type DayStatus struct {
	Date         Date
	Status       AttendanceStatus
	WorkingHours decimal.Decimal
	DayType      DayType

	// Leave holds the covering leave request, when one influenced the
	// outcome. For non-approved statuses this is UI metadata only and does
	// not affect hours or rating.
	Leave *LeaveRequest

	// Synthesized marks a status produced by auto-attendance rather than a
	// stored record.
	Synthesized bool
}

// DayInputs is the immutable per-evaluation snapshot the classifier reads.
type DayInputs struct {
	Config   WorkingDaysConfig
	Holidays HolidaySet
	Leaves   []LeaveRequest
	Records  []AttendanceRecord
	Today    Date
}

func (in DayInputs) recordFor(d Date) (AttendanceRecord, bool) {
	for _, r := range in.Records {
		if r.Date.Equal(d) {
			return r, true
		}
	}
	return AttendanceRecord{}, false
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// ClassifyDay resolves the status of a single day. The second return value is
// false for future days with no approved leave: such days have no status yet.
func ClassifyDay(d Date, in DayInputs) (DayStatus, bool) {
	dayType := ResolveDayType(d, in.Config, in.Holidays)

	if d.After(in.Today) {
		// Only an approved future leave is previewable.
		if leave, ok := FindLeave(d, in.Leaves, LeaveApproved); ok {
			return leaveStatus(d, dayType, leave), true
		}
		return DayStatus{}, false
	}

	// Rule 1: holiday always wins.
	if dayType == DayHoliday {
		return DayStatus{Date: d, Status: StatusHoliday, WorkingHours: decimal.Zero, DayType: dayType}, true
	}

	// Rule 2: approved leave.
	if leave, ok := FindLeave(d, in.Leaves, LeaveApproved); ok {
		return leaveStatus(d, dayType, leave), true
	}

	// Rule 3: weekend.
	if dayType == DayWeekend {
		return DayStatus{Date: d, Status: StatusWeekend, WorkingHours: decimal.Zero, DayType: dayType}, true
	}

	// Rule 4: non-approved leave annotates a normal working day.
	if leave, ok := FindLeave(d, in.Leaves, LeavePending, LeaveRejected, LeaveCancelled); ok {
		return DayStatus{
			Date:         d,
			Status:       StatusPresent,
			WorkingHours: FullDayHours,
			DayType:      dayType,
			Leave:        &leave,
			Synthesized:  true,
		}, true
	}

	// Rule 5: explicit record overrides auto-attendance.
	if record, ok := in.recordFor(d); ok {
		return DayStatus{
			Date:         d,
			Status:       record.Status,
			WorkingHours: record.WorkingHours,
			DayType:      dayType,
		}, true
	}

	// Rule 6: auto-attendance.
	return DayStatus{
		Date:         d,
		Status:       StatusPresent,
		WorkingHours: FullDayHours,
		DayType:      dayType,
		Synthesized:  true,
	}, true
}

func leaveStatus(d Date, dayType DayType, leave LeaveRequest) DayStatus {
	status := StatusLeave
	hours := decimal.Zero
	if leave.HalfDay {
		status = StatusHalfDay
		hours = HalfDayHours
	}
	l := leave
	return DayStatus{
		Date:         d,
		Status:       status,
		WorkingHours: hours,
		DayType:      dayType,
		Leave:        &l,
	}
}
