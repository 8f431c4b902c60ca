package http

import (
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	StartLunch(w http.ResponseWriter, r *http.Request)
	EndLunch(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)

	Checks(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, clk clock.Clock) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		clock:             clk,
	}
}

func (h *attendanceHandlerImpl) transition(w http.ResponseWriter, r *http.Request, do func(*http.Request, string) (attendance.Outcome, error)) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	outcome, err := do(r, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var data interface{}
	if outcome.Record != nil {
		data = attendance.NewRecordResponse(*outcome.Record)
	}
	response.Outcome(w, outcome, data)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id string) (attendance.Outcome, error) {
		return h.attendanceService.CheckIn(r.Context(), id)
	})
}

// StartLunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartLunch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id string) (attendance.Outcome, error) {
		return h.attendanceService.StartLunch(r.Context(), id)
	})
}

// EndLunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndLunch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id string) (attendance.Outcome, error) {
		return h.attendanceService.EndLunch(r.Context(), id)
	})
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id string) (attendance.Outcome, error) {
		return h.attendanceService.CheckOut(r.Context(), id)
	})
}

// Checks implements AttendanceHandler.
func (h *attendanceHandlerImpl) Checks(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	checks, err := h.attendanceService.Checks(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, checks)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	record, err := h.attendanceService.Today(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if record == nil {
		response.SuccessWithMessage(w, "No attendance recorded today", nil)
		return
	}
	response.Success(w, record)
}

func historyQuery(r *http.Request) attendance.HistoryQuery {
	q := r.URL.Query()
	return attendance.HistoryQuery{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: q.Get("limit"),
	}
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	records, err := h.attendanceService.History(r.Context(), employeeID, historyQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	summary, err := h.attendanceService.Summary(r.Context(), employeeID, historyQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// Daily implements AttendanceHandler. The date defaults to today.
func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	date := clock.Date(now)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := validator.ParseDate(raw, now.Location())
		if err != nil {
			response.ValidationError(w, map[string]string{"date": "date must be in YYYY-MM-DD format"})
			return
		}
		date = parsed
	}

	daily, err := h.attendanceService.Daily(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, daily)
}
