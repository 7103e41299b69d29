package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/rating"
	"github.com/warp/attendance-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(year int, month time.Month, day int) engine.Date {
	return engine.NewDate(year, month, day)
}

// =============================================================================
// EMPLOYEE TESTS
// =============================================================================

func TestEmployee_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	probationEnd := date(2025, time.September, 1)
	emp := sqlite.Employee{
		ID:               "emp-1",
		Name:             "Asha",
		JoiningDate:      date(2025, time.March, 17),
		IsOnProbation:    true,
		ProbationEndDate: &probationEnd,
		CarriedForward:   decimal.NewFromFloat(2.5),
	}
	require.NoError(t, store.CreateEmployee(ctx, emp))

	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.True(t, got.JoiningDate.Equal(emp.JoiningDate))
	assert.True(t, got.IsOnProbation)
	require.NotNil(t, got.ProbationEndDate)
	assert.True(t, got.ProbationEndDate.Equal(probationEnd))
	assert.True(t, got.CarriedForward.Equal(decimal.NewFromFloat(2.5)))
}

func TestEmployee_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetEmployee(context.Background(), "nobody")
	assert.ErrorIs(t, err, engine.ErrEmployeeNotFound)
}

// =============================================================================
// SETTINGS TESTS
// =============================================================================

func TestSettings_MissingReportsConfigurationMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.WorkingDays(context.Background())
	assert.ErrorIs(t, err, engine.ErrConfigurationMissing)

	// The entitlement policy falls back to defaults instead.
	policy, err := store.EntitlementPolicy(context.Background())
	require.NoError(t, err)
	assert.True(t, policy.CasualMonthlyRate.Equal(decimal.NewFromFloat(1.5)))
}

func TestSettings_SaveValidatesAndRoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// An invalid document is rejected before anything is stored.
	err := store.SaveSettings(ctx, `{"working_days": {"saturday_policy": "whenever"}}`)
	require.Error(t, err)
	_, err = store.WorkingDays(ctx)
	assert.ErrorIs(t, err, engine.ErrConfigurationMissing)

	require.NoError(t, store.SaveSettings(ctx, `{"working_days": {"saturday_policy": "all_off"}}`))
	cfg, err := store.WorkingDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.SaturdayAllOff, cfg.SaturdayPolicy)

	// Saving again replaces the single settings row.
	require.NoError(t, store.SaveSettings(ctx, `{"working_days": {"saturday_policy": "all_working"}}`))
	cfg, err = store.WorkingDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.SaturdayAllWorking, cfg.SaturdayPolicy)
}

// =============================================================================
// HOLIDAY TESTS
// =============================================================================

func TestHolidays_RangeQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddHoliday(ctx, engine.Holiday{Date: date(2025, time.January, 26), Name: "Republic Day"}))
	require.NoError(t, store.AddHoliday(ctx, engine.Holiday{Date: date(2025, time.August, 15), Name: "Independence Day"}))
	require.NoError(t, store.AddHoliday(ctx, engine.Holiday{Date: date(2026, time.January, 26), Name: "Republic Day"}))

	got, err := store.Holidays(ctx, date(2025, time.January, 1), date(2025, time.December, 31))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Republic Day", got[0].Name)
	assert.Equal(t, "Independence Day", got[1].Name)

	require.NoError(t, store.DeleteHoliday(ctx, date(2025, time.January, 26)))
	got, err = store.Holidays(ctx, date(2025, time.January, 1), date(2025, time.December, 31))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// =============================================================================
// LEAVE TESTS
// =============================================================================

func TestLeaves_StatusTransition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateLeave(ctx, engine.LeaveRequest{
		ID:         "l-1",
		EmployeeID: "emp-1",
		StartDate:  date(2025, time.June, 10),
		EndDate:    date(2025, time.June, 12),
		Status:     engine.LeavePending,
		LeaveType:  "casual",
	}))

	require.NoError(t, store.SetLeaveStatus(ctx, "l-1", engine.LeaveApproved))

	leaves, err := store.LeavesByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, engine.LeaveApproved, leaves[0].Status)

	assert.Error(t, store.SetLeaveStatus(ctx, "l-missing", engine.LeaveApproved))
}

// =============================================================================
// ATTENDANCE RECORD TESTS
// =============================================================================

func TestRecords_UpsertReplacesOverride(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	day := date(2025, time.June, 11)

	require.NoError(t, store.UpsertRecord(ctx, engine.AttendanceRecord{
		EmployeeID:   "emp-1",
		Date:         day,
		Status:       engine.StatusAbsent,
		WorkingHours: decimal.Zero,
	}))
	require.NoError(t, store.UpsertRecord(ctx, engine.AttendanceRecord{
		EmployeeID:   "emp-1",
		Date:         day,
		Status:       engine.StatusHalfDay,
		WorkingHours: decimal.NewFromInt(4),
	}))

	records, err := store.RecordsForMonth(ctx, "emp-1", engine.MonthKey{Year: 2025, Month: time.June})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, engine.StatusHalfDay, records[0].Status)
	assert.True(t, records[0].WorkingHours.Equal(decimal.NewFromInt(4)))
}

// =============================================================================
// OVERTIME TESTS
// =============================================================================

func overtimeEntry(id string) engine.OvertimeLog {
	return engine.OvertimeLog{
		ID:         id,
		EmployeeID: "emp-1",
		Date:       date(2025, time.June, 11),
		FromTime:   engine.TimeOfDay{Hour: 18},
		ToTime:     engine.TimeOfDay{Hour: 19, Minute: 30},
		OTHours:    decimal.NewFromFloat(1.5),
		Project:    "migration",
		Status:     engine.OvertimePending,
		CreatedAt:  date(2025, time.June, 11),
	}
}

func TestOvertime_DecimalHoursRoundTripExactly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertOvertime(ctx, overtimeEntry("ot-1")))

	logs, err := store.OvertimeByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "1.5", logs[0].OTHours.String())
	assert.Equal(t, "18:00", logs[0].FromTime.String())
	assert.Equal(t, "19:30", logs[0].ToTime.String())
	assert.NoError(t, logs[0].VerifyHours())
}

func TestOvertime_StatusGuardBlocksDoubleTransition(t *testing.T) {
	// GIVEN: A pending entry
	// WHEN: Approving it twice
	// THEN: The second transition fails on the pending-only guard

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.InsertOvertime(ctx, overtimeEntry("ot-1")))

	require.NoError(t, store.SetOvertimeStatus(ctx, "ot-1", engine.OvertimeApproved))
	assert.Error(t, store.SetOvertimeStatus(ctx, "ot-1", engine.OvertimeRejected))

	logs, err := store.OvertimeByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, engine.OvertimeApproved, logs[0].Status)
}

// =============================================================================
// LATE ARRIVAL TESTS
// =============================================================================

func TestLateArrivals_OnePerDayLatestWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	day := date(2025, time.June, 11)

	first, _ := engine.NewLateArrival("emp-1", day, engine.TimeOfDay{Hour: 8, Minute: 45})
	require.NoError(t, store.InsertLateArrival(ctx, first))
	second, _ := engine.NewLateArrival("emp-1", day, engine.TimeOfDay{Hour: 9, Minute: 0})
	require.NoError(t, store.InsertLateArrival(ctx, second))

	arrivals, err := store.LateArrivalsForMonth(ctx, "emp-1", engine.MonthKey{Year: 2025, Month: time.June})
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Equal(t, 30, arrivals[0].LateMinutes)
}

// =============================================================================
// RATING STATE TESTS
// =============================================================================

func TestRatingState_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	month := engine.MonthKey{Year: 2025, Month: time.January}

	_, ok, err := store.GetRating(ctx, "emp-1", month)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveRating(ctx, rating.State{
		EmployeeID:     "emp-1",
		Month:          month,
		StartingRating: decimal.NewFromFloat(4.0),
		Rating:         decimal.NewFromFloat(4.21),
		LateCount:      2,
		OTHours:        decimal.NewFromInt(10),
		Closed:         true,
	}))

	got, ok, err := store.GetRating(ctx, "emp-1", month)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Closed)
	assert.Equal(t, 2, got.LateCount)
	assert.Equal(t, "4.21", got.Rating.String())
	assert.True(t, got.OTHours.Equal(decimal.NewFromInt(10)))
}
