/*
handlers.go - HTTP handlers for the attendance engine

PURPOSE:
  Implements the REST endpoints every page calls. Handlers follow one
  pattern:
  1. Parse and shape-validate input (validator tags on the DTO)
  2. Call the engine / store
  3. Serialize response
  4. Map errors to status codes

ERROR HANDLING:
  - 400: Malformed input, failed shape validation
  - 404: Unknown employee / record
  - 409: Conflicts (already-closed rating, insufficient balance)
  - 422: Overtime rejections, with the violated rule's code and reason
  - 500: Provider failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/entitlement"
	"github.com/warp/attendance-engine/rating"
	"github.com/warp/attendance-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *engine.Engine
	Rating *rating.Engine

	validate *validator.Validate
}

// NewHandler wires the engine, rating fold, and validators over one store.
func NewHandler(store *sqlite.Store) *Handler {
	eng := engine.New(store)
	return &Handler{
		Store:  store,
		Engine: eng,
		Rating: &rating.Engine{
			Lates:    store,
			Overtime: store,
			States:   store,
			Clock:    eng.Clock,
			Events:   eng.Events,
		},
		validate: validator.New(),
	}
}

// decodeValid decodes the body into dst and runs shape validation.
func (h *Handler) decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// monthFromQuery reads ?year=&month=, defaulting to the current month.
func (h *Handler) monthFromQuery(r *http.Request) (engine.MonthKey, error) {
	today := h.Engine.Clock.Today()
	month := engine.MonthOf(today)

	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return engine.MonthKey{}, fmt.Errorf("invalid year %q", y)
		}
		month.Year = year
	}
	if m := r.URL.Query().Get("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			return engine.MonthKey{}, fmt.Errorf("invalid month %q", m)
		}
		month.Month = time.Month(n)
	}
	return month, nil
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	joining, err := engine.ParseDate(req.JoiningDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid joining date", err)
		return
	}
	emp := sqlite.Employee{
		ID:             uuid.NewString(),
		Name:           req.Name,
		JoiningDate:    joining,
		IsOnProbation:  req.IsOnProbation,
		CarriedForward: decimal.NewFromFloat(req.CarriedForward),
	}
	if req.ProbationEnd != nil {
		end, err := engine.ParseDate(*req.ProbationEnd)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid probation end date", err)
			return
		}
		emp.ProbationEndDate = &end
	}

	if err := h.Store.CreateEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, engine.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// GetMonthView returns the classified days and summary for one
// employee-month: the single source every calendar/dashboard page renders.
func (h *Handler) GetMonthView(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	month, err := h.monthFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	days, err := h.Engine.ClassifyMonth(r.Context(), employeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to classify month", err)
		return
	}
	summary, err := h.Engine.AggregateMonth(r.Context(), employeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate month", err)
		return
	}

	resp := MonthViewResponse{Summary: toSummaryDTO(summary)}
	for _, d := range days {
		resp.Days = append(resp.Days, toDayStatusDTO(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	date, err := engine.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	status, ok, err := h.Engine.ClassifyDay(r.Context(), employeeID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to classify day", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No status for future date", nil)
		return
	}
	writeJSON(w, http.StatusOK, toDayStatusDTO(status))
}

// OverrideAttendance stores an explicit per-day record (admin correction).
func (h *Handler) OverrideAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	var req OverrideAttendanceRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid override", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	record := engine.AttendanceRecord{
		EmployeeID:   employeeID,
		Date:         date,
		Status:       engine.AttendanceStatus(req.Status),
		WorkingHours: decimal.NewFromFloat(req.WorkingHours),
	}
	if err := h.Store.UpsertRecord(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store record", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// RecordCheckIn derives and stores a late arrival when the check-in is past
// the expected time. On-time check-ins store nothing.
func (h *Handler) RecordCheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	var req CheckInRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check-in", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	checkIn, err := engine.ParseTimeOfDay(req.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check-in time", err)
		return
	}

	arrival, late := engine.NewLateArrival(employeeID, date, checkIn)
	if !late {
		writeJSON(w, http.StatusOK, map[string]any{"late": false})
		return
	}
	if err := h.Store.InsertLateArrival(r.Context(), arrival); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store late arrival", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"late": true, "lateMinutes": arrival.LateMinutes})
}

// =============================================================================
// OVERTIME HANDLERS
// =============================================================================

// SubmitOvertime is the employee-facing path: today only, no future end
// time, accepted entries start pending.
func (h *Handler) SubmitOvertime(w http.ResponseWriter, r *http.Request) {
	h.logOvertime(w, r, false)
}

// AdminLogOvertime is the admin-assisted path: any date, auto-approved.
func (h *Handler) AdminLogOvertime(w http.ResponseWriter, r *http.Request) {
	h.logOvertime(w, r, true)
}

func (h *Handler) logOvertime(w http.ResponseWriter, r *http.Request, adminLogged bool) {
	var req SubmitOvertimeRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid overtime entry", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	from, err := engine.ParseTimeOfDay(req.FromTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from time", err)
		return
	}
	to, err := engine.ParseTimeOfDay(req.ToTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to time", err)
		return
	}

	entry, err := h.Engine.ValidateOvertime(r.Context(), engine.OvertimeProposal{
		EmployeeID:  req.EmployeeID,
		Date:        date,
		FromTime:    from,
		ToTime:      to,
		Project:     req.Project,
		Notes:       req.Notes,
		AdminLogged: adminLogged,
	})
	if err != nil {
		var rejection *engine.OvertimeRejection
		if errors.As(err, &rejection) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:     "Overtime rejected",
				Rejection: &OvertimeRejectionDTO{Code: string(rejection.Code), Reason: rejection.Reason},
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to validate overtime", err)
		return
	}

	entry.ID = uuid.NewString()
	if err := h.Store.InsertOvertime(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store overtime", err)
		return
	}

	eventType := engine.EventOvertimeLogged
	if entry.Status == engine.OvertimeApproved {
		eventType = engine.EventOvertimeApproved
	}
	h.Engine.Events.Publish(engine.Event{
		Type:       eventType,
		EmployeeID: entry.EmployeeID,
		Month:      engine.MonthOf(entry.Date),
		Ref:        entry.ID,
	})
	writeJSON(w, http.StatusCreated, toOvertimeDTO(entry))
}

func (h *Handler) ListOvertime(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Store.OvertimeByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list overtime", err)
		return
	}
	dtos := make([]OvertimeDTO, len(logs))
	for i, o := range logs {
		dtos[i] = toOvertimeDTO(o)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) ApproveOvertime(w http.ResponseWriter, r *http.Request) {
	h.setOvertimeStatus(w, r, engine.OvertimeApproved, engine.EventOvertimeApproved)
}

func (h *Handler) RejectOvertime(w http.ResponseWriter, r *http.Request) {
	h.setOvertimeStatus(w, r, engine.OvertimeRejected, engine.EventOvertimeRejected)
}

func (h *Handler) setOvertimeStatus(w http.ResponseWriter, r *http.Request, status engine.OvertimeStatus, eventType engine.EventType) {
	employeeID := chi.URLParam(r, "id")
	otID := chi.URLParam(r, "otID")

	if err := h.Store.SetOvertimeStatus(r.Context(), otID, status); err != nil {
		writeError(w, http.StatusConflict, "Failed to update overtime status", err)
		return
	}
	h.Engine.Events.Publish(engine.Event{
		Type:       eventType,
		EmployeeID: employeeID,
		Month:      engine.MonthOf(h.Engine.Clock.Today()),
		Ref:        otID,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave request", err)
		return
	}

	start, err := engine.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	end, err := engine.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "End date before start date", nil)
		return
	}

	leave := engine.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Status:     engine.LeavePending,
		LeaveType:  req.LeaveType,
		HalfDay:    req.HalfDay,
	}
	if err := h.Store.CreateLeave(r.Context(), leave); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create leave", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(leave))
}

func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Store.LeavesByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
		return
	}
	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = toLeaveDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveLeave checks the balance before approving: an approval that would
// push the balance negative is refused rather than clamped later.
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	leaveID := chi.URLParam(r, "leaveID")
	ctx := r.Context()

	leaves, err := h.Store.LeavesByEmployee(ctx, employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leaves", err)
		return
	}
	var target *engine.LeaveRequest
	for i := range leaves {
		if leaves[i].ID == leaveID {
			target = &leaves[i]
			break
		}
	}
	if target == nil {
		writeError(w, http.StatusNotFound, "Leave request not found", nil)
		return
	}

	ent, err := h.computeEntitlement(r, employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute entitlement", err)
		return
	}
	if err := entitlement.CheckApproval(*target, ent); err != nil {
		writeError(w, http.StatusConflict, "Insufficient leave balance", err)
		return
	}

	if err := h.Store.SetLeaveStatus(ctx, leaveID, engine.LeaveApproved); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to approve leave", err)
		return
	}
	h.Engine.Events.Publish(engine.Event{
		Type:       engine.EventLeaveApproved,
		EmployeeID: employeeID,
		Month:      engine.MonthOf(target.StartDate),
		Ref:        leaveID,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": string(engine.LeaveApproved)})
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	leaveID := chi.URLParam(r, "leaveID")
	if err := h.Store.SetLeaveStatus(r.Context(), leaveID, engine.LeaveRejected); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reject leave", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(engine.LeaveRejected)})
}

// =============================================================================
// RATING HANDLERS
// =============================================================================

func (h *Handler) GetRating(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	month, err := h.monthFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	breakdown, err := h.Rating.Compute(r.Context(), employeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute rating", err)
		return
	}
	writeJSON(w, http.StatusOK, toBreakdownDTO(breakdown))
}

func (h *Handler) CloseRating(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	month, err := h.monthFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	breakdown, err := h.Rating.Close(r.Context(), employeeID, month)
	if errors.Is(err, engine.ErrRatingClosed) {
		writeError(w, http.StatusConflict, "Month already closed", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to close rating", err)
		return
	}
	writeJSON(w, http.StatusOK, toBreakdownDTO(breakdown))
}

// =============================================================================
// ENTITLEMENT HANDLERS
// =============================================================================

func (h *Handler) computeEntitlement(r *http.Request, employeeID string) (entitlement.Entitlement, error) {
	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, employeeID)
	if err != nil {
		return entitlement.Entitlement{}, err
	}
	policy, err := h.Store.EntitlementPolicy(ctx)
	if err != nil {
		return entitlement.Entitlement{}, err
	}
	leaves, err := h.Store.LeavesByEmployee(ctx, employeeID)
	if err != nil {
		return entitlement.Entitlement{}, err
	}
	return entitlement.Compute(emp.Profile(), policy, leaves, h.Engine.Clock.Today()), nil
}

func (h *Handler) GetEntitlement(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	ent, err := h.computeEntitlement(r, employeeID)
	if errors.Is(err, engine.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute entitlement", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntitlementDTO(ent))
}

// =============================================================================
// HOLIDAY & SETTINGS HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := h.Engine.Clock.Today().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	holidays, err := h.Store.Holidays(r.Context(),
		engine.NewDate(year, time.January, 1), engine.NewDate(year, time.December, 31))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{Date: hol.Date.String(), Name: hol.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday", err)
		return
	}
	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if err := h.Store.AddHoliday(r.Context(), engine.Holiday{Date: date, Name: req.Name}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := engine.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if err := h.Store.DeleteHoliday(r.Context(), date); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.Settings(r.Context())
	if errors.Is(err, engine.ErrConfigurationMissing) {
		writeError(w, http.StatusNotFound, "No settings stored", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SaveSettings accepts the raw settings document; the factory validates it
// before anything is stored.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read body", err)
		return
	}
	if err := h.Store.SaveSettings(r.Context(), string(body)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings document", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// =============================================================================
// INTEGRITY HANDLERS
// =============================================================================

// CheckIntegrity re-derives stored OT hours for one employee and reports
// mismatches. Faults are surfaced for investigation, never auto-repaired.
func (h *Handler) CheckIntegrity(w http.ResponseWriter, r *http.Request) {
	faults, err := h.Engine.CheckOvertimeIntegrity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check integrity", err)
		return
	}
	messages := make([]string, len(faults))
	for i, f := range faults {
		messages[i] = f.Error()
	}
	writeJSON(w, http.StatusOK, map[string]any{"faults": messages})
}

// =============================================================================
// DTO MAPPING
// =============================================================================

func toEmployeeDTO(e sqlite.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:             e.ID,
		Name:           e.Name,
		JoiningDate:    e.JoiningDate.String(),
		IsOnProbation:  e.IsOnProbation,
		CarriedForward: e.CarriedForward.String(),
	}
	if e.ProbationEndDate != nil {
		s := e.ProbationEndDate.String()
		dto.ProbationEnd = &s
	}
	return dto
}

func toDayStatusDTO(d engine.DayStatus) DayStatusDTO {
	dto := DayStatusDTO{
		Date:         d.Date.String(),
		Status:       string(d.Status),
		WorkingHours: d.WorkingHours.String(),
		DayType:      string(d.DayType),
		Synthesized:  d.Synthesized,
	}
	if d.Leave != nil {
		dto.Leave = &LeaveRefDTO{
			ID:        d.Leave.ID,
			Status:    string(d.Leave.Status),
			LeaveType: d.Leave.LeaveType,
			HalfDay:   d.Leave.HalfDay,
		}
	}
	return dto
}

func toSummaryDTO(s engine.MonthlySummary) MonthlySummaryDTO {
	return MonthlySummaryDTO{
		EmployeeID:          s.EmployeeID,
		Month:               s.Month.String(),
		PresentDays:         s.PresentDays,
		LeaveDays:           s.LeaveDays,
		HalfDays:            s.HalfDays,
		AbsentDays:          s.AbsentDays,
		Holidays:            s.Holidays,
		Weekends:            s.Weekends,
		RegularWorkingHours: s.RegularWorkingHours.String(),
		OTHours:             s.OTHours.String(),
		TotalHours:          s.TotalHours.String(),
	}
}

func toOvertimeDTO(o engine.OvertimeLog) OvertimeDTO {
	return OvertimeDTO{
		ID:         o.ID,
		EmployeeID: o.EmployeeID,
		Date:       o.Date.String(),
		FromTime:   o.FromTime.String(),
		ToTime:     o.ToTime.String(),
		OTHours:    o.OTHours.String(),
		Project:    o.Project,
		Notes:      o.Notes,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.String(),
	}
}

func toLeaveDTO(l engine.LeaveRequest) LeaveDTO {
	return LeaveDTO{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		StartDate:  l.StartDate.String(),
		EndDate:    l.EndDate.String(),
		Status:     string(l.Status),
		LeaveType:  l.LeaveType,
		HalfDay:    l.HalfDay,
	}
}

func toBreakdownDTO(b rating.Breakdown) RatingBreakdownDTO {
	return RatingBreakdownDTO{
		EmployeeID:       b.EmployeeID,
		Month:            b.Month.String(),
		StartingRating:   b.StartingRating.String(),
		LateCount:        b.LateCount,
		LatePenalty:      b.LatePenalty.String(),
		OTHours:          b.OTHours.String(),
		OTBonus:          b.OTBonus.String(),
		PunctualityBonus: b.PunctualityBonus.String(),
		PendingBonus:     b.PendingBonus.String(),
		Rating:           b.Rating.String(),
		Closed:           b.Closed,
	}
}

func toEntitlementDTO(e entitlement.Entitlement) EntitlementDTO {
	return EntitlementDTO{
		EmployeeID:      e.EmployeeID,
		AsOf:            e.AsOf.String(),
		CasualAccrued:   e.CasualAccrued.String(),
		CasualUsed:      e.CasualUsed.String(),
		CasualAvailable: e.CasualAvailable().String(),
		SickTotal:       e.SickTotal.String(),
		SickUsed:        e.SickUsed.String(),
		SickAvailable:   e.SickAvailable().String(),
		CarriedForward:  e.CarriedForward.String(),
		AnnualTotal:     e.AnnualTotal.String(),
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
