package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LateConsiderationHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type lateConsiderationHandlerImpl struct {
	service lateconsideration.LateConsiderationService
}

func NewLateConsiderationHandler(service lateconsideration.LateConsiderationService) LateConsiderationHandler {
	return &lateConsiderationHandlerImpl{service: service}
}

func (h *lateConsiderationHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req lateconsideration.CreateLateConsiderationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLateConsideration decode error", "error", err)
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

	created, err := h.service.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Late consideration submitted successfully", created)
}

func (h *lateConsiderationHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.service.Mine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *lateConsiderationHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	status, err := statusFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.service.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *lateConsiderationHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, req)
}

func (h *lateConsiderationHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.PendingCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int64{"pending_count": count})
}

func (h *lateConsiderationHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	review(w, r, h.service, true)
}

func (h *lateConsiderationHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	review(w, r, h.service, false)
}
