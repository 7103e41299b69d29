/*
Package sqlite provides a SQLite-backed implementation of the engine's data
providers and write paths.

PURPOSE:
  Implements engine.DataSource and rating.Store over SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:          Profile data the entitlement accrual reads
  settings:           One JSON settings document (working days, rates)
  holidays:           Company holiday calendar
  leave_requests:     Leave intervals with status transitions
  attendance_records: Explicit per-day overrides (admin corrections)
  overtime_logs:      Quantized OT intervals with derived hours
  late_arrivals:      Late check-ins with derived minutes
  rating_states:      Closed monthly ratings (carry-forward chain)

WRITE ISOLATION:
  A single write mutex serializes all mutations, which covers the
  per-employee-month serialization the rating close and OT approval need.
  With PostgreSQL, row-level guards (status = 'pending' in the UPDATE WHERE
  clause) provide the same property across processes.

NUMERIC COLUMNS:
  Hour and day quantities are stored as decimal strings, never floats, so a
  stored value round-trips exactly.

WAL MODE:
  Opened with WAL for concurrent readers and crash recovery.

SEE ALSO:
  - engine/providers.go: Interface contracts
  - engine/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/entitlement"
	"github.com/warp/attendance-engine/factory"
	"github.com/warp/attendance-engine/rating"
)

// Store implements the provider interfaces over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ engine.DataSource = (*Store)(nil)
	_ rating.Store      = (*Store)(nil)
)

// New opens (creating if needed) the database at dbPath. Use ":memory:" for
// an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		joining_date TEXT NOT NULL,
		on_probation INTEGER NOT NULL DEFAULT 0,
		probation_end TEXT,
		carried_forward TEXT NOT NULL DEFAULT '0'
	);

	-- Single-row settings document; parsed by the factory package.
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holidays (
		date TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		half_day INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_leave_employee
		ON leave_requests(employee_id, start_date);

	CREATE TABLE IF NOT EXISTS attendance_records (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		working_hours TEXT NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	CREATE TABLE IF NOT EXISTS overtime_logs (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		from_time TEXT NOT NULL,
		to_time TEXT NOT NULL,
		ot_hours TEXT NOT NULL,
		project TEXT,
		notes TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_overtime_employee_date
		ON overtime_logs(employee_id, date);

	CREATE TABLE IF NOT EXISTS late_arrivals (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		check_in TEXT NOT NULL,
		late_minutes INTEGER NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	CREATE TABLE IF NOT EXISTS rating_states (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		starting_rating TEXT NOT NULL,
		rating TEXT NOT NULL,
		late_count INTEGER NOT NULL,
		ot_hours TEXT NOT NULL,
		closed INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (employee_id, year, month)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// Employee is the stored profile. Profile() adapts it for the entitlement
// accrual.
type Employee struct {
	ID               string
	Name             string
	JoiningDate      engine.Date
	IsOnProbation    bool
	ProbationEndDate *engine.Date
	CarriedForward   decimal.Decimal
}

func (e Employee) Profile() entitlement.Profile {
	return entitlement.Profile{
		EmployeeID:       e.ID,
		JoiningDate:      e.JoiningDate,
		IsOnProbation:    e.IsOnProbation,
		ProbationEndDate: e.ProbationEndDate,
		CarriedForward:   e.CarriedForward,
	}
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var probationEnd any
	if emp.ProbationEndDate != nil {
		probationEnd = emp.ProbationEndDate.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, joining_date, on_probation, probation_end, carried_forward)
		VALUES (?, ?, ?, ?, ?, ?)`,
		emp.ID, emp.Name, emp.JoiningDate.String(), emp.IsOnProbation, probationEnd, emp.CarriedForward.String())
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, joining_date, on_probation, probation_end, carried_forward
		FROM employees WHERE id = ?`, id)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, engine.ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, joining_date, on_probation, probation_end, carried_forward
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (Employee, error) {
	var (
		emp            Employee
		joining        string
		probationEnd   sql.NullString
		carriedForward string
	)
	if err := row.Scan(&emp.ID, &emp.Name, &joining, &emp.IsOnProbation, &probationEnd, &carriedForward); err != nil {
		return Employee{}, err
	}

	var err error
	if emp.JoiningDate, err = engine.ParseDate(joining); err != nil {
		return Employee{}, err
	}
	if probationEnd.Valid {
		date, err := engine.ParseDate(probationEnd.String)
		if err != nil {
			return Employee{}, err
		}
		emp.ProbationEndDate = &date
	}
	if emp.CarriedForward, err = decimal.NewFromString(carriedForward); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

// =============================================================================
// SETTINGS (engine.SettingsSource)
// =============================================================================

// SaveSettings validates and stores the JSON settings document.
func (s *Store) SaveSettings(ctx context.Context, configJSON string) error {
	if _, err := factory.ParseJSON([]byte(configJSON)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, config_json) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET config_json = excluded.config_json`, configJSON)
	return err
}

// Settings returns the full parsed settings bundle, or
// ErrConfigurationMissing when none is stored.
func (s *Store) Settings(ctx context.Context) (factory.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var configJSON string
	err := s.db.QueryRowContext(ctx, `SELECT config_json FROM settings WHERE id = 1`).Scan(&configJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return factory.Settings{}, engine.ErrConfigurationMissing
	}
	if err != nil {
		return factory.Settings{}, err
	}
	return factory.ParseJSON([]byte(configJSON))
}

func (s *Store) WorkingDays(ctx context.Context) (engine.WorkingDaysConfig, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return engine.WorkingDaysConfig{}, err
	}
	return settings.WorkingDays, nil
}

// EntitlementPolicy returns the stored accrual rates, defaulting when no
// settings document exists.
func (s *Store) EntitlementPolicy(ctx context.Context) (entitlement.Policy, error) {
	settings, err := s.Settings(ctx)
	if errors.Is(err, engine.ErrConfigurationMissing) {
		return entitlement.DefaultPolicy(), nil
	}
	if err != nil {
		return entitlement.Policy{}, err
	}
	return settings.Entitlement, nil
}

// =============================================================================
// HOLIDAYS (engine.HolidaySource)
// =============================================================================

func (s *Store) AddHoliday(ctx context.Context, h engine.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (date, name) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET name = excluded.name`,
		h.Date.String(), h.Name)
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, date engine.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE date = ?`, date.String())
	return err
}

func (s *Store) Holidays(ctx context.Context, from, to engine.Date) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, name FROM holidays WHERE date >= ? AND date <= ? ORDER BY date`,
		from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []engine.Holiday
	for rows.Next() {
		var dateStr, name string
		if err := rows.Scan(&dateStr, &name); err != nil {
			return nil, err
		}
		date, err := engine.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, engine.Holiday{Date: date, Name: name})
	}
	return holidays, rows.Err()
}

// =============================================================================
// LEAVE REQUESTS (engine.LeaveSource)
// =============================================================================

func (s *Store) CreateLeave(ctx context.Context, l engine.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests (id, employee_id, start_date, end_date, status, leave_type, half_day)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.EmployeeID, l.StartDate.String(), l.EndDate.String(), string(l.Status), l.LeaveType, l.HalfDay)
	return err
}

// SetLeaveStatus transitions a leave request. Status transitions are the
// only mutation leave requests ever receive.
func (s *Store) SetLeaveStatus(ctx context.Context, id string, status engine.LeaveStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `UPDATE leave_requests SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("leave request %s not found", id)
	}
	return nil
}

func (s *Store) LeavesByEmployee(ctx context.Context, employeeID string) ([]engine.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, start_date, end_date, status, leave_type, half_day
		FROM leave_requests WHERE employee_id = ? ORDER BY start_date`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []engine.LeaveRequest
	for rows.Next() {
		var (
			l          engine.LeaveRequest
			start, end string
			status     string
		)
		if err := rows.Scan(&l.ID, &l.EmployeeID, &start, &end, &status, &l.LeaveType, &l.HalfDay); err != nil {
			return nil, err
		}
		if l.StartDate, err = engine.ParseDate(start); err != nil {
			return nil, err
		}
		if l.EndDate, err = engine.ParseDate(end); err != nil {
			return nil, err
		}
		l.Status = engine.LeaveStatus(status)
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// =============================================================================
// ATTENDANCE OVERRIDES (engine.AttendanceSource)
// =============================================================================

// UpsertRecord stores an explicit attendance override for one day,
// replacing any previous override.
func (s *Store) UpsertRecord(ctx context.Context, r engine.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_records (employee_id, date, status, working_hours)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			status = excluded.status, working_hours = excluded.working_hours`,
		r.EmployeeID, r.Date.String(), string(r.Status), r.WorkingHours.String())
	return err
}

func (s *Store) RecordsForMonth(ctx context.Context, employeeID string, month engine.MonthKey) ([]engine.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, date, status, working_hours
		FROM attendance_records WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		employeeID, month.First().String(), month.Last().String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.AttendanceRecord
	for rows.Next() {
		var (
			r             engine.AttendanceRecord
			dateStr       string
			status, hours string
		)
		if err := rows.Scan(&r.EmployeeID, &dateStr, &status, &hours); err != nil {
			return nil, err
		}
		if r.Date, err = engine.ParseDate(dateStr); err != nil {
			return nil, err
		}
		r.Status = engine.AttendanceStatus(status)
		if r.WorkingHours, err = decimal.NewFromString(hours); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// =============================================================================
// OVERTIME LOGS (engine.OvertimeSource)
// =============================================================================

// InsertOvertime persists an already-validated entry. OTHours is stored
// exactly as derived; it is never recomputed on read.
func (s *Store) InsertOvertime(ctx context.Context, o engine.OvertimeLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overtime_logs (id, employee_id, date, from_time, to_time, ot_hours, project, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.EmployeeID, o.Date.String(), o.FromTime.String(), o.ToTime.String(),
		o.OTHours.String(), o.Project, o.Notes, string(o.Status), o.CreatedAt.String())
	return err
}

// SetOvertimeStatus transitions a pending entry to approved or rejected.
// The status guard in the WHERE clause makes a second concurrent approval a
// no-op instead of a double-count.
func (s *Store) SetOvertimeStatus(ctx context.Context, id string, status engine.OvertimeStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `
		UPDATE overtime_logs SET status = ? WHERE id = ? AND status = 'pending'`,
		string(status), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("overtime log %s not found or not pending", id)
	}
	return nil
}

func (s *Store) OvertimeByEmployee(ctx context.Context, employeeID string) ([]engine.OvertimeLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, date, from_time, to_time, ot_hours, project, notes, status, created_at
		FROM overtime_logs WHERE employee_id = ? ORDER BY date, from_time`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []engine.OvertimeLog
	for rows.Next() {
		var (
			o                        engine.OvertimeLog
			dateStr, fromStr, toStr  string
			hours, status, createdAt string
			project, notes           sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.EmployeeID, &dateStr, &fromStr, &toStr, &hours, &project, &notes, &status, &createdAt); err != nil {
			return nil, err
		}
		if o.Date, err = engine.ParseDate(dateStr); err != nil {
			return nil, err
		}
		if o.FromTime, err = engine.ParseTimeOfDay(fromStr); err != nil {
			return nil, err
		}
		if o.ToTime, err = engine.ParseTimeOfDay(toStr); err != nil {
			return nil, err
		}
		if o.OTHours, err = decimal.NewFromString(hours); err != nil {
			return nil, err
		}
		if o.CreatedAt, err = engine.ParseDate(createdAt); err != nil {
			return nil, err
		}
		o.Project = project.String
		o.Notes = notes.String
		o.Status = engine.OvertimeStatus(status)
		logs = append(logs, o)
	}
	return logs, rows.Err()
}

// =============================================================================
// LATE ARRIVALS (engine.LateArrivalSource)
// =============================================================================

func (s *Store) InsertLateArrival(ctx context.Context, a engine.LateArrival) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO late_arrivals (employee_id, date, check_in, late_minutes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			check_in = excluded.check_in, late_minutes = excluded.late_minutes`,
		a.EmployeeID, a.Date.String(), a.ActualCheckIn.String(), a.LateMinutes)
	return err
}

func (s *Store) LateArrivalsForMonth(ctx context.Context, employeeID string, month engine.MonthKey) ([]engine.LateArrival, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, date, check_in, late_minutes
		FROM late_arrivals WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		employeeID, month.First().String(), month.Last().String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var arrivals []engine.LateArrival
	for rows.Next() {
		var (
			a                engine.LateArrival
			dateStr, checkIn string
		)
		if err := rows.Scan(&a.EmployeeID, &dateStr, &checkIn, &a.LateMinutes); err != nil {
			return nil, err
		}
		if a.Date, err = engine.ParseDate(dateStr); err != nil {
			return nil, err
		}
		if a.ActualCheckIn, err = engine.ParseTimeOfDay(checkIn); err != nil {
			return nil, err
		}
		arrivals = append(arrivals, a)
	}
	return arrivals, rows.Err()
}

// =============================================================================
// RATING STATES (rating.Store)
// =============================================================================

func (s *Store) GetRating(ctx context.Context, employeeID string, month engine.MonthKey) (rating.State, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT starting_rating, rating, late_count, ot_hours, closed
		FROM rating_states WHERE employee_id = ? AND year = ? AND month = ?`,
		employeeID, month.Year, int(month.Month))

	var (
		state                    rating.State
		starting, final, otHours string
	)
	err := row.Scan(&starting, &final, &state.LateCount, &otHours, &state.Closed)
	if errors.Is(err, sql.ErrNoRows) {
		return rating.State{}, false, nil
	}
	if err != nil {
		return rating.State{}, false, err
	}

	state.EmployeeID = employeeID
	state.Month = month
	if state.StartingRating, err = decimal.NewFromString(starting); err != nil {
		return rating.State{}, false, err
	}
	if state.Rating, err = decimal.NewFromString(final); err != nil {
		return rating.State{}, false, err
	}
	if state.OTHours, err = decimal.NewFromString(otHours); err != nil {
		return rating.State{}, false, err
	}
	return state, true, nil
}

func (s *Store) SaveRating(ctx context.Context, state rating.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rating_states (employee_id, year, month, starting_rating, rating, late_count, ot_hours, closed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year, month) DO UPDATE SET
			starting_rating = excluded.starting_rating,
			rating = excluded.rating,
			late_count = excluded.late_count,
			ot_hours = excluded.ot_hours,
			closed = excluded.closed`,
		state.EmployeeID, state.Month.Year, int(state.Month.Month),
		state.StartingRating.String(), state.Rating.String(),
		state.LateCount, state.OTHours.String(), state.Closed)
	return err
}
