package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Reassign(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

// Me returns the shift that currently governs the caller's attendance
func (h *shiftHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	s, err := h.shiftService.Resolve(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if s == nil {
		response.SuccessWithMessage(w, "No active shift configured", nil)
		return
	}
	response.Success(w, shift.NewShiftResponse(*s))
}

func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.List(r.Context(), getBoolQueryParam(r, "include_inactive", false))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.shiftService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s)
}

func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateShift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift created successfully", created)
}

func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateShift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.shiftService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift updated successfully", updated)
}

func (h *shiftHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Activate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift activated", nil)
}

func (h *shiftHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift deactivated", nil)
}

// Reassign moves every employee on the path shift to target_shift_id
func (h *shiftHandlerImpl) Reassign(w http.ResponseWriter, r *http.Request) {
	var req shift.ReassignEmployeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReassignEmployees decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.FromShiftID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	moved, err := h.shiftService.ReassignEmployees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employees reassigned", moved)
}
