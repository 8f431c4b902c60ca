package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
	clock           clock.Clock
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService, clk clock.Clock) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
		clock:           clk,
	}
}

// CreateRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreateOvertimeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOvertimeRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.EmployeeID = employeeIDFromContext(r)
	if req.EmployeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.overtimeService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Overtime request submitted successfully", created)
}

// GetMyRequests implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.overtimeService.Mine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// ListRequests implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	status, err := statusFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.overtimeService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// GetRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.overtimeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, req)
}

// PendingCount implements OvertimeHandler.
func (h *overtimeHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.overtimeService.PendingCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int64{"pending_count": count})
}

// ApproveRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	review(w, r, h.overtimeService, true)
}

// RejectRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	review(w, r, h.overtimeService, false)
}

// Monthly returns the caller's recorded overtime for ?year=&month=,
// defaulting to the current month.
func (h *overtimeHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	now := h.clock.Now()
	year, month := now.Year(), now.Month()
	details := map[string]string{}

	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			details["year"] = "year must be a positive integer"
		}
		year = y
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			details["month"] = "month must be an integer"
		}
		month = time.Month(m)
	}
	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}

	summary, err := h.overtimeService.MonthlyOvertime(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
