/*
aggregate.go - Monthly roll-up of daily classifications

PURPOSE:
  Folds the per-day classifier output and the month's approved overtime into
  one summary: day counts, regular hours, OT hours, total hours. The summary
  feeds the rating fold and the dashboard/attendance pages.

DETERMINISM:
  The fold depends only on its inputs plus the explicit Today date in
  DayInputs, which truncates future days. Running it twice over an unchanged
  snapshot yields identical output; there is no hidden clock.

SEE ALSO:
  - attendance.go: The per-day classifier this folds over
  - rating/: Consumes approved OT hours and late counts per month
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// MonthlySummary is the roll-up of one employee-month.
type MonthlySummary struct {
	EmployeeID string
	Month      MonthKey

	PresentDays int
	LeaveDays   int
	HalfDays    int
	AbsentDays  int
	Holidays    int
	Weekends    int

	// RegularWorkingHours sums working hours over present and half-day days.
	RegularWorkingHours decimal.Decimal
	// OTHours sums the month's approved overtime entries.
	OTHours decimal.Decimal
	// TotalHours = RegularWorkingHours + OTHours.
	TotalHours decimal.Decimal
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// AggregateMonth folds day statuses up to in.Today (inclusive) and the
// month's approved overtime into a MonthlySummary. Future days contribute
// nothing, previewable approved leave included.
func AggregateMonth(employeeID string, month MonthKey, in DayInputs, overtime []OvertimeLog) MonthlySummary {
	summary := MonthlySummary{
		EmployeeID:          employeeID,
		Month:               month,
		RegularWorkingHours: decimal.Zero,
		OTHours:             decimal.Zero,
	}

	for _, d := range month.Days() {
		if d.After(in.Today) {
			break
		}
		status, ok := ClassifyDay(d, in)
		if !ok {
			continue
		}

		switch status.Status {
		case StatusPresent:
			summary.PresentDays++
			summary.RegularWorkingHours = summary.RegularWorkingHours.Add(status.WorkingHours)
		case StatusHalfDay:
			summary.HalfDays++
			summary.RegularWorkingHours = summary.RegularWorkingHours.Add(status.WorkingHours)
		case StatusLeave:
			summary.LeaveDays++
		case StatusAbsent:
			summary.AbsentDays++
		case StatusHoliday:
			summary.Holidays++
		case StatusWeekend:
			summary.Weekends++
		}
	}

	for _, ot := range overtime {
		if ot.Status != OvertimeApproved || !month.Contains(ot.Date) {
			continue
		}
		summary.OTHours = summary.OTHours.Add(ot.OTHours)
	}

	summary.TotalHours = summary.RegularWorkingHours.Add(summary.OTHours)
	return summary
}

// ApprovedOTHours sums approved overtime hours falling inside the month.
func ApprovedOTHours(month MonthKey, overtime []OvertimeLog) decimal.Decimal {
	total := decimal.Zero
	for _, ot := range overtime {
		if ot.Status == OvertimeApproved && month.Contains(ot.Date) {
			total = total.Add(ot.OTHours)
		}
	}
	return total
}
