/*
Package entitlement computes leave balances from accrual rate, service
length, and consumption.

PURPOSE:
  Balances are derived on demand, never stored: casual leave accrues monthly
  from the date of joining, sick leave is a fixed annual pool, and unused
  balance carried forward from a previous accrual period adds to the annual
  pool. A probation period zeroes all entitlements until it ends.

ACCRUAL WINDOW:
  The current accrual period is the calendar year. Casual accrual counts
  calendar months from the later of the joining date and January 1st through
  the as-of date; the joining month counts as month one. Earlier periods are
  represented solely by the carried-forward amount.

FLOORS:
  Displayed balances never go negative. Over-consumption is additionally
  prevented at approval time: CheckApproval rejects an approval that would
  push a balance below zero.

SEE ALSO:
  - engine/leave.go: LeaveRequest and day counting
  - factory/: Parses accrual rates from settings documents
*/
package entitlement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// POLICY & PROFILE
// =============================================================================

// Leave types recognized by the accrual rules. Other types consume nothing.
const (
	TypeCasual = "casual"
	TypeSick   = "sick"
)

// Policy holds the configurable accrual rates.
type Policy struct {
	// CasualMonthlyRate is the casual days accrued per service month.
	CasualMonthlyRate decimal.Decimal
	// SickAnnualDays is the fixed annual sick pool.
	SickAnnualDays decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		CasualMonthlyRate: decimal.NewFromFloat(1.5),
		SickAnnualDays:    decimal.NewFromInt(12),
	}
}

// Profile is the employee data the accrual reads.
type Profile struct {
	EmployeeID       string
	JoiningDate      engine.Date
	IsOnProbation    bool
	ProbationEndDate *engine.Date
	// CarriedForward is unused balance rolled over from the previous
	// accrual period.
	CarriedForward decimal.Decimal
}

// onProbation reports whether the probation period is still running as of d.
func (p Profile) onProbation(d engine.Date) bool {
	if !p.IsOnProbation {
		return false
	}
	if p.ProbationEndDate == nil {
		return true
	}
	return d.Before(*p.ProbationEndDate)
}

// =============================================================================
// ENTITLEMENT - Derived balances
// =============================================================================

// Entitlement is the derived balance set. Recomputed on demand.
type Entitlement struct {
	EmployeeID     string
	AsOf           engine.Date
	CasualAccrued  decimal.Decimal
	CasualUsed     decimal.Decimal
	SickTotal      decimal.Decimal
	SickUsed       decimal.Decimal
	CarriedForward decimal.Decimal
	// AnnualTotal is the full-year casual entitlement plus carry-forward.
	AnnualTotal decimal.Decimal
}

// CasualAvailable is accrued-to-date plus carry-forward minus usage,
// floored at zero.
func (e Entitlement) CasualAvailable() decimal.Decimal {
	return floorZero(e.CasualAccrued.Add(e.CarriedForward).Sub(e.CasualUsed))
}

// SickAvailable is the annual pool minus usage, floored at zero.
func (e Entitlement) SickAvailable() decimal.Decimal {
	return floorZero(e.SickTotal.Sub(e.SickUsed))
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// COMPUTATION
// =============================================================================

// Compute derives the balance set as of a date. leaves may contain all
// statuses; only approved requests inside the current accrual period count
// as consumption.
func Compute(profile Profile, policy Policy, leaves []engine.LeaveRequest, asOf engine.Date) Entitlement {
	ent := Entitlement{
		EmployeeID:     profile.EmployeeID,
		AsOf:           asOf,
		CasualAccrued:  decimal.Zero,
		CasualUsed:     decimal.Zero,
		SickTotal:      decimal.Zero,
		SickUsed:       decimal.Zero,
		CarriedForward: decimal.Zero,
		AnnualTotal:    decimal.Zero,
	}

	if profile.onProbation(asOf) {
		return ent
	}

	ent.CarriedForward = profile.CarriedForward
	ent.SickTotal = policy.SickAnnualDays
	ent.AnnualTotal = policy.CasualMonthlyRate.Mul(decimal.NewFromInt(12)).Add(profile.CarriedForward)

	ent.CasualAccrued = policy.CasualMonthlyRate.Mul(decimal.NewFromInt(int64(serviceMonths(profile.JoiningDate, asOf))))

	periodStart := engine.NewDate(asOf.Year(), time.January, 1)
	for _, l := range leaves {
		if l.Status != engine.LeaveApproved || l.StartDate.Before(periodStart) || l.StartDate.After(asOf) {
			continue
		}
		switch normalizeType(l.LeaveType) {
		case TypeCasual:
			ent.CasualUsed = ent.CasualUsed.Add(decimal.NewFromFloat(l.Days()))
		case TypeSick:
			ent.SickUsed = ent.SickUsed.Add(decimal.NewFromFloat(l.Days()))
		}
	}

	return ent
}

// serviceMonths counts accruing months in the current period: from the later
// of joining and January 1st of asOf's year, joining month inclusive.
func serviceMonths(joining, asOf engine.Date) int {
	if joining.After(asOf) {
		return 0
	}
	start := engine.NewDate(asOf.Year(), time.January, 1)
	if joining.After(start) {
		start = joining
	}
	return (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month()) + 1
}

func normalizeType(leaveType string) string {
	return strings.ToLower(strings.TrimSpace(leaveType))
}

// =============================================================================
// APPROVAL-TIME CHECK
// =============================================================================

// CheckApproval rejects approving a leave request that would push the
// employee's balance for its type below zero. Clamping at display time hides
// over-consumption; the approval workflow calls this instead.
func CheckApproval(req engine.LeaveRequest, ent Entitlement) error {
	requested := decimal.NewFromFloat(req.Days())
	switch normalizeType(req.LeaveType) {
	case TypeCasual:
		if requested.GreaterThan(ent.CasualAvailable()) {
			return engine.ErrInsufficientLeaveBalance
		}
	case TypeSick:
		if requested.GreaterThan(ent.SickAvailable()) {
			return engine.ErrInsufficientLeaveBalance
		}
	}
	return nil
}
