/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request shape (required fields, formats) is declared with validator
  struct tags and checked once in the handler before any domain call.
  Domain rules (quantization, overlap, balances) stay in the engine; a DTO
  passing shape validation can still be rejected there, with a specific
  reason.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/overtime.go: Domain-level rejection reasons
*/
package api

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	JoiningDate    string  `json:"joiningDate"`
	IsOnProbation  bool    `json:"isOnProbation"`
	ProbationEnd   *string `json:"probationEndDate,omitempty"`
	CarriedForward string  `json:"carriedForward"`
}

type CreateEmployeeRequest struct {
	Name           string  `json:"name" validate:"required"`
	JoiningDate    string  `json:"joiningDate" validate:"required,datetime=2006-01-02"`
	IsOnProbation  bool    `json:"isOnProbation"`
	ProbationEnd   *string `json:"probationEndDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CarriedForward float64 `json:"carriedForward" validate:"gte=0"`
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type DayStatusDTO struct {
	Date         string       `json:"date"`
	Status       string       `json:"status"`
	WorkingHours string       `json:"workingHours"`
	DayType      string       `json:"dayType"`
	Synthesized  bool         `json:"synthesized"`
	Leave        *LeaveRefDTO `json:"leave,omitempty"`
}

// LeaveRefDTO annotates a day with the covering leave request, for UI
// display only.
type LeaveRefDTO struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LeaveType string `json:"leaveType"`
	HalfDay   bool   `json:"halfDay"`
}

type MonthlySummaryDTO struct {
	EmployeeID          string `json:"employeeId"`
	Month               string `json:"month"`
	PresentDays         int    `json:"presentDays"`
	LeaveDays           int    `json:"leaveDays"`
	HalfDays            int    `json:"halfDays"`
	AbsentDays          int    `json:"absentDays"`
	Holidays            int    `json:"holidays"`
	Weekends            int    `json:"weekends"`
	RegularWorkingHours string `json:"regularWorkingHours"`
	OTHours             string `json:"otHours"`
	TotalHours          string `json:"totalHours"`
}

type MonthViewResponse struct {
	Days    []DayStatusDTO    `json:"days"`
	Summary MonthlySummaryDTO `json:"summary"`
}

type OverrideAttendanceRequest struct {
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status       string  `json:"status" validate:"required,oneof=present absent half-day leave holiday weekend"`
	WorkingHours float64 `json:"workingHours" validate:"gte=0,lte=24"`
}

type CheckInRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	CheckIn string `json:"checkIn" validate:"required,datetime=15:04"`
}

// =============================================================================
// OVERTIME
// =============================================================================

type SubmitOvertimeRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	FromTime   string `json:"fromTime" validate:"required,datetime=15:04"`
	ToTime     string `json:"toTime" validate:"required,datetime=15:04"`
	Project    string `json:"project"`
	Notes      string `json:"notes"`
}

type OvertimeDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	FromTime   string `json:"fromTime"`
	ToTime     string `json:"toTime"`
	OTHours    string `json:"otHours"`
	Project    string `json:"project,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// OvertimeRejectionDTO carries the specific violated rule back to the UI.
type OvertimeRejectionDTO struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// =============================================================================
// LEAVE
// =============================================================================

type CreateLeaveRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
	LeaveType  string `json:"leaveType" validate:"required"`
	HalfDay    bool   `json:"halfDay"`
}

type LeaveDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
	LeaveType  string `json:"leaveType"`
	HalfDay    bool   `json:"halfDay"`
}

// =============================================================================
// RATING & ENTITLEMENT
// =============================================================================

type RatingBreakdownDTO struct {
	EmployeeID       string `json:"employeeId"`
	Month            string `json:"month"`
	StartingRating   string `json:"startingRating"`
	LateCount        int    `json:"lateCount"`
	LatePenalty      string `json:"latePenalty"`
	OTHours          string `json:"otHours"`
	OTBonus          string `json:"otBonus"`
	PunctualityBonus string `json:"punctualityBonus"`
	PendingBonus     string `json:"pendingBonus"`
	Rating           string `json:"rating"`
	Closed           bool   `json:"closed"`
}

type EntitlementDTO struct {
	EmployeeID      string `json:"employeeId"`
	AsOf            string `json:"asOf"`
	CasualAccrued   string `json:"casualAccrued"`
	CasualUsed      string `json:"casualUsed"`
	CasualAvailable string `json:"casualAvailable"`
	SickTotal       string `json:"sickTotal"`
	SickUsed        string `json:"sickUsed"`
	SickAvailable   string `json:"sickAvailable"`
	CarriedForward  string `json:"carriedForward"`
	AnnualTotal     string `json:"annualTotal"`
}

// =============================================================================
// HOLIDAYS & SETTINGS
// =============================================================================

type HolidayDTO struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Name string `json:"name" validate:"required"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error     string                `json:"error"`
	Details   string                `json:"details,omitempty"`
	Rejection *OvertimeRejectionDTO `json:"rejection,omitempty"`
}
