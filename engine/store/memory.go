// Package store provides DataSource implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds engine inputs in plain slices. Safe for concurrent use; every
// read returns a copy so evaluations see an immutable snapshot.
type Memory struct {
	mu sync.RWMutex

	config    *engine.WorkingDaysConfig
	holidays  []engine.Holiday
	leaves    map[string][]engine.LeaveRequest
	records   map[string][]engine.AttendanceRecord
	overtime  map[string][]engine.OvertimeLog
	arrivals  map[string][]engine.LateArrival
}

func NewMemory() *Memory {
	return &Memory{
		leaves:   make(map[string][]engine.LeaveRequest),
		records:  make(map[string][]engine.AttendanceRecord),
		overtime: make(map[string][]engine.OvertimeLog),
		arrivals: make(map[string][]engine.LateArrival),
	}
}

var _ engine.DataSource = (*Memory)(nil)

// -----------------------------------------------------------------------------
// Writes (test setup + write paths)
// -----------------------------------------------------------------------------

func (m *Memory) SetWorkingDays(cfg engine.WorkingDaysConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = &cfg
}

func (m *Memory) AddHoliday(h engine.Holiday) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays = append(m.holidays, h)
}

func (m *Memory) AddLeave(l engine.LeaveRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves[l.EmployeeID] = append(m.leaves[l.EmployeeID], l)
}

func (m *Memory) AddRecord(r engine.AttendanceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.EmployeeID] = append(m.records[r.EmployeeID], r)
}

func (m *Memory) AddOvertime(o engine.OvertimeLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overtime[o.EmployeeID] = append(m.overtime[o.EmployeeID], o)
}

// SetOvertimeStatus transitions one OT entry, returning false when not found.
func (m *Memory) SetOvertimeStatus(employeeID, id string, status engine.OvertimeStatus) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := m.overtime[employeeID]
	for i := range logs {
		if logs[i].ID == id {
			logs[i].Status = status
			return true
		}
	}
	return false
}

func (m *Memory) AddLateArrival(a engine.LateArrival) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arrivals[a.EmployeeID] = append(m.arrivals[a.EmployeeID], a)
}

// -----------------------------------------------------------------------------
// engine.DataSource
// -----------------------------------------------------------------------------

func (m *Memory) WorkingDays(_ context.Context) (engine.WorkingDaysConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return engine.WorkingDaysConfig{}, engine.ErrConfigurationMissing
	}
	return *m.config, nil
}

func (m *Memory) Holidays(_ context.Context, from, to engine.Date) ([]engine.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.Holiday
	for _, h := range m.holidays {
		if h.Date.AfterOrEqual(from) && h.Date.BeforeOrEqual(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *Memory) LeavesByEmployee(_ context.Context, employeeID string) ([]engine.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.LeaveRequest, len(m.leaves[employeeID]))
	copy(out, m.leaves[employeeID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (m *Memory) RecordsForMonth(_ context.Context, employeeID string, month engine.MonthKey) ([]engine.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.AttendanceRecord
	for _, r := range m.records[employeeID] {
		if month.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) OvertimeByEmployee(_ context.Context, employeeID string) ([]engine.OvertimeLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.OvertimeLog, len(m.overtime[employeeID]))
	copy(out, m.overtime[employeeID])
	return out, nil
}

func (m *Memory) LateArrivalsForMonth(_ context.Context, employeeID string, month engine.MonthKey) ([]engine.LateArrival, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.LateArrival
	for _, a := range m.arrivals[employeeID] {
		if month.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out, nil
}
