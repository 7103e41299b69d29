/*
Package rating folds monthly attendance events into a cumulative
performance rating.

PURPOSE:
  Each employee-month has a rating in [0, 5] derived from the previous
  month's final rating plus this month's late arrivals and approved
  overtime. The punctuality bonus is credited only when the month closes;
  while a month is in progress the bonus is reported as pending, never
  added. Pages query this package for the pending state instead of
  duplicating the arithmetic.

FOLD (in order):
  starting  = 4.0 for January, else previous month's stored final rating
              (4.0 when absent)
  penalty   = 0.02 x late-arrival count
  bonus     = 0.01 x approved OT hours
  punctual  = 0.15, only when late count == 0 AND the month has closed
  final     = clamp(starting - penalty + bonus + punctual, 0, 5)

IDEMPOTENCE:
  Close records the month's late count and OT hours alongside the final
  rating. Recomputing a closed month rebuilds the breakdown from those
  recorded inputs and reproduces the stored value exactly; the fold is never
  applied twice. The store must serialize Save per employee-month.

SEE ALSO:
  - engine/aggregate.go: ApprovedOTHours
  - api/scheduler.go: Closes ended months automatically
*/
package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// CONSTANTS
// =============================================================================

var (
	// Baseline is the starting rating for January and for employees with no
	// prior month on record.
	Baseline = decimal.NewFromFloat(4.0)

	// LatePenalty is deducted per late arrival in the month.
	LatePenalty = decimal.NewFromFloat(0.02)

	// OTBonusPerHour is credited per approved overtime hour in the month.
	OTBonusPerHour = decimal.NewFromFloat(0.01)

	// PunctualityBonus is credited once at month close for a month with zero
	// late arrivals.
	PunctualityBonus = decimal.NewFromFloat(0.15)

	ratingFloor = decimal.Zero
	ratingCap   = decimal.NewFromInt(5)
)

func clamp(r decimal.Decimal) decimal.Decimal {
	if r.LessThan(ratingFloor) {
		return ratingFloor
	}
	if r.GreaterThan(ratingCap) {
		return ratingCap
	}
	return r
}

// =============================================================================
// STATE & BREAKDOWN
// =============================================================================

// State is the persisted rating of one employee-month. LateCount and OTHours
// are recorded at close so a closed month recomputes from its own inputs.
type State struct {
	EmployeeID     string
	Month          engine.MonthKey
	StartingRating decimal.Decimal
	Rating         decimal.Decimal
	LateCount      int
	OTHours        decimal.Decimal
	Closed         bool
}

// Breakdown is the queryable decomposition of one month's rating.
type Breakdown struct {
	EmployeeID     string
	Month          engine.MonthKey
	StartingRating decimal.Decimal
	LateCount      int
	LatePenalty    decimal.Decimal // total deducted
	OTHours        decimal.Decimal
	OTBonus        decimal.Decimal // total credited
	// PunctualityBonus is the credited amount (non-zero only once closed).
	PunctualityBonus decimal.Decimal
	// PendingBonus reports the provisional punctuality bonus of a month
	// still in progress: shown to the user, not yet added to Rating.
	PendingBonus decimal.Decimal
	Rating       decimal.Decimal
	Closed       bool
}

// Store persists rating states. Implementations must serialize Save per
// employee-month; two concurrent closes must not double-apply the bonus.
type Store interface {
	GetRating(ctx context.Context, employeeID string, month engine.MonthKey) (State, bool, error)
	SaveRating(ctx context.Context, state State) error
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes and closes monthly ratings.
type Engine struct {
	Lates    engine.LateArrivalSource
	Overtime engine.OvertimeSource
	States   Store
	Clock    engine.Clock
	Events   *engine.Dispatcher
}

// startingRating resolves the fold's seed: the January baseline or the
// previous month's stored final rating.
func (e *Engine) startingRating(ctx context.Context, employeeID string, month engine.MonthKey) (decimal.Decimal, error) {
	if month.Month == time.January {
		return Baseline, nil
	}
	prev, ok, err := e.States.GetRating(ctx, employeeID, month.Prev())
	if err != nil {
		return decimal.Zero, fmt.Errorf("load previous rating: %w", err)
	}
	if !ok {
		return Baseline, nil
	}
	return prev.Rating, nil
}

// monthInputs reads the fold's event counts for the month.
func (e *Engine) monthInputs(ctx context.Context, employeeID string, month engine.MonthKey) (lateCount int, otHours decimal.Decimal, err error) {
	lates, err := e.Lates.LateArrivalsForMonth(ctx, employeeID, month)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("load late arrivals: %w", err)
	}
	logs, err := e.Overtime.OvertimeByEmployee(ctx, employeeID)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("load overtime logs: %w", err)
	}
	return len(lates), engine.ApprovedOTHours(month, logs), nil
}

func fold(employeeID string, month engine.MonthKey, starting decimal.Decimal, lateCount int, otHours decimal.Decimal, closed bool) Breakdown {
	b := Breakdown{
		EmployeeID:       employeeID,
		Month:            month,
		StartingRating:   starting,
		LateCount:        lateCount,
		LatePenalty:      LatePenalty.Mul(decimal.NewFromInt(int64(lateCount))),
		OTHours:          otHours,
		OTBonus:          OTBonusPerHour.Mul(otHours),
		PunctualityBonus: decimal.Zero,
		PendingBonus:     decimal.Zero,
		Closed:           closed,
	}

	rating := starting.Sub(b.LatePenalty).Add(b.OTBonus)
	if lateCount == 0 {
		if closed {
			b.PunctualityBonus = PunctualityBonus
			rating = rating.Add(PunctualityBonus)
		} else {
			b.PendingBonus = PunctualityBonus
		}
	}

	b.Rating = clamp(rating)
	return b
}

// Compute returns the month's rating breakdown. A closed month is rebuilt
// from its recorded inputs and reproduces the stored rating exactly; an open
// month folds live inputs and reports the punctuality bonus as pending.
func (e *Engine) Compute(ctx context.Context, employeeID string, month engine.MonthKey) (Breakdown, error) {
	state, ok, err := e.States.GetRating(ctx, employeeID, month)
	if err != nil {
		return Breakdown{}, fmt.Errorf("load rating state: %w", err)
	}
	if ok && state.Closed {
		return fold(employeeID, month, state.StartingRating, state.LateCount, state.OTHours, true), nil
	}

	starting, err := e.startingRating(ctx, employeeID, month)
	if err != nil {
		return Breakdown{}, err
	}
	lateCount, otHours, err := e.monthInputs(ctx, employeeID, month)
	if err != nil {
		return Breakdown{}, err
	}

	closed := month.EndedBefore(e.Clock.Today())
	return fold(employeeID, month, starting, lateCount, otHours, closed), nil
}

// Close finalizes an ended month: applies the fold with the punctuality
// bonus, clamps, and records the result as next month's starting point.
// Closing an already-closed month returns ErrRatingClosed; closing a month
// still in progress is refused.
func (e *Engine) Close(ctx context.Context, employeeID string, month engine.MonthKey) (Breakdown, error) {
	if !month.EndedBefore(e.Clock.Today()) {
		return Breakdown{}, fmt.Errorf("month %s has not ended", month)
	}

	existing, ok, err := e.States.GetRating(ctx, employeeID, month)
	if err != nil {
		return Breakdown{}, fmt.Errorf("load rating state: %w", err)
	}
	if ok && existing.Closed {
		return Breakdown{}, engine.ErrRatingClosed
	}

	starting, err := e.startingRating(ctx, employeeID, month)
	if err != nil {
		return Breakdown{}, err
	}
	lateCount, otHours, err := e.monthInputs(ctx, employeeID, month)
	if err != nil {
		return Breakdown{}, err
	}

	b := fold(employeeID, month, starting, lateCount, otHours, true)

	if err := e.States.SaveRating(ctx, State{
		EmployeeID:     employeeID,
		Month:          month,
		StartingRating: starting,
		Rating:         b.Rating,
		LateCount:      lateCount,
		OTHours:        otHours,
		Closed:         true,
	}); err != nil {
		return Breakdown{}, fmt.Errorf("save rating state: %w", err)
	}

	if e.Events != nil {
		e.Events.Publish(engine.Event{Type: engine.EventRatingClosed, EmployeeID: employeeID, Month: month})
	}
	return b, nil
}
