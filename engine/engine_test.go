package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/engine/store"
)

func newTestEngine(clock engine.Clock) (*engine.Engine, *store.Memory) {
	mem := store.NewMemory()
	eng := engine.New(mem)
	eng.Clock = clock
	return eng, mem
}

// =============================================================================
// ENGINE OVER SOURCE TESTS
// =============================================================================

func TestEngine_FallsBackToDefaultConfig(t *testing.T) {
	// GIVEN: A source with no working-days settings stored
	// WHEN: Classifying a day
	// THEN: The safe default applies instead of failing

	eng, _ := newTestEngine(engine.FixedClock{Day: date(2025, time.June, 30)})
	ctx := context.Background()

	// June 7 is the 1st Saturday: off under the default policy.
	status, ok, err := eng.ClassifyDay(ctx, "emp-1", date(2025, time.June, 7))
	if err != nil {
		t.Fatalf("missing config must not fail derivation: %v", err)
	}
	if !ok || status.Status != engine.StatusWeekend {
		t.Errorf("expected weekend under default policy, got %+v ok=%v", status, ok)
	}
}

func TestEngine_ClassifyMonthSkipsFutureDays(t *testing.T) {
	// GIVEN: Today is June 15 and an approved leave on June 20
	// WHEN: Classifying June
	// THEN: 15 past days plus the one previewable leave day

	eng, mem := newTestEngine(engine.FixedClock{Day: date(2025, time.June, 15)})
	mem.AddLeave(leave("l-1", engine.LeaveApproved, date(2025, time.June, 20), date(2025, time.June, 20)))

	statuses, err := eng.ClassifyMonth(context.Background(), "emp-1", june())
	if err != nil {
		t.Fatalf("classify month: %v", err)
	}
	if len(statuses) != 16 {
		t.Fatalf("expected 16 statuses, got %d", len(statuses))
	}
	last := statuses[len(statuses)-1]
	if !last.Date.Equal(date(2025, time.June, 20)) || last.Status != engine.StatusLeave {
		t.Errorf("expected June 20 leave preview last, got %+v", last)
	}
}

func TestEngine_AggregateUsesStoredOvertime(t *testing.T) {
	// GIVEN: One approved and one pending OT entry in the store
	// WHEN: Aggregating the month
	// THEN: Only the approved hours count

	eng, mem := newTestEngine(engine.FixedClock{Day: date(2025, time.June, 30)})
	mem.AddOvertime(approvedOT("ot-1", 12, 2))
	pending := approvedOT("ot-2", 13, 3)
	pending.Status = engine.OvertimePending
	mem.AddOvertime(pending)

	summary, err := eng.AggregateMonth(context.Background(), "emp-1", june())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !summary.OTHours.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected 2 OT hours, got %s", summary.OTHours)
	}
}

func TestEngine_ValidateOvertimeSeesStoredEntries(t *testing.T) {
	// GIVEN: An accepted entry persisted in the store
	// WHEN: Validating an overlapping proposal through the engine
	// THEN: Rejected for overlap

	clock := engine.FixedClock{Day: date(2025, time.June, 11), Time: engine.TimeOfDay{Hour: 21}}
	eng, mem := newTestEngine(clock)
	mem.AddOvertime(engine.OvertimeLog{
		ID:         "ot-1",
		EmployeeID: "emp-1",
		Date:       date(2025, time.June, 11),
		FromTime:   engine.TimeOfDay{Hour: 18},
		ToTime:     engine.TimeOfDay{Hour: 20},
		OTHours:    decimal.NewFromInt(2),
		Status:     engine.OvertimePending,
	})

	_, err := eng.ValidateOvertime(context.Background(), engine.OvertimeProposal{
		EmployeeID: "emp-1",
		Date:       date(2025, time.June, 11),
		FromTime:   engine.TimeOfDay{Hour: 19},
		ToTime:     engine.TimeOfDay{Hour: 21},
	})
	if !engine.IsRejection(err) {
		t.Fatalf("expected a rejection, got %v", err)
	}
}

func TestEngine_CheckOvertimeIntegrity(t *testing.T) {
	// GIVEN: One clean and one tampered entry
	// WHEN: Running the integrity check
	// THEN: Exactly the tampered entry is flagged

	eng, mem := newTestEngine(engine.FixedClock{Day: date(2025, time.June, 30)})
	clean := approvedOT("ot-clean", 10, 1)
	clean.FromTime = engine.TimeOfDay{Hour: 18}
	clean.ToTime = engine.TimeOfDay{Hour: 19}
	mem.AddOvertime(clean)

	tampered := approvedOT("ot-bad", 11, 4)
	tampered.FromTime = engine.TimeOfDay{Hour: 18}
	tampered.ToTime = engine.TimeOfDay{Hour: 19}
	mem.AddOvertime(tampered)

	faults, err := eng.CheckOvertimeIntegrity(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("integrity check: %v", err)
	}
	if len(faults) != 1 {
		t.Fatalf("expected 1 fault, got %d: %v", len(faults), faults)
	}
}

// =============================================================================
// EVENT DISPATCH TESTS
// =============================================================================

func TestDispatcher_DeliversToAllSubscribers(t *testing.T) {
	d := engine.NewDispatcher()

	var got []engine.EventType
	d.Subscribe(func(ev engine.Event) { got = append(got, ev.Type) })
	d.Subscribe(func(ev engine.Event) { got = append(got, ev.Type) })

	d.Publish(engine.Event{Type: engine.EventOvertimeApproved, EmployeeID: "emp-1"})

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	for _, ty := range got {
		if ty != engine.EventOvertimeApproved {
			t.Errorf("expected overtime_approved, got %s", ty)
		}
	}
}
