package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	approvalsvc "github.com/cmlabs-hris/worklog-backend-go/internal/service/approval"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	workflow *approvalsvc.Workflow[leave.LeaveRequest]
	clock    clock.Clock
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := s.clock.Now()
	lr, err := req.ToLeaveRequest(now.Location())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if lr.StartDate.Before(clock.Date(now)) {
		return leave.LeaveRequestResponse{}, validator.ValidationErrors{
			{Field: "start_date", Message: "start_date cannot be in the past"},
		}
	}

	created, err := s.workflow.Submit(ctx, lr)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(created), nil
}

// Approve implements approval.Reviewer.
func (s *LeaveServiceImpl) Approve(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return s.workflow.Approve(ctx, in)
}

// Reject implements approval.Reviewer.
func (s *LeaveServiceImpl) Reject(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return s.workflow.Reject(ctx, in)
}

// Mine implements leave.LeaveService.
func (s *LeaveServiceImpl) Mine(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	rows, err := s.LeaveRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(rows), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, status *approval.Status) ([]leave.LeaveRequestResponse, error) {
	rows, err := s.LeaveRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(rows), nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	lr, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(lr), nil
}

// PendingCount implements leave.LeaveService.
func (s *LeaveServiceImpl) PendingCount(ctx context.Context) (int64, error) {
	return s.LeaveRepository.CountPending(ctx)
}

// Settle implements leave.LeaveService.
func (s *LeaveServiceImpl) Settle(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	lr, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if lr.Status != approval.StatusApproved {
		return leave.LeaveRequestResponse{}, leave.ErrNotApproved
	}
	if lr.CreditsDebited {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadySettled
	}

	n, err := s.LeaveRepository.SettleCredits(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrInsufficientCredits) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, database.NewStorageError("settle leave credits", err)
	}
	if n == 0 {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadySettled
	}
	slog.Info("Leave credits settled", "request_id", id, "employee_id", lr.EmployeeID, "days", lr.DaysCount)

	lr.CreditsDebited = true
	return leave.NewLeaveRequestResponse(lr), nil
}

// Reconcile implements leave.LeaveService.
func (s *LeaveServiceImpl) Reconcile(ctx context.Context, opts leave.ReconcileOptions) (leave.ReconcileReport, error) {
	report := leave.ReconcileReport{
		Unsettled: []string{},
		Settled:   []string{},
		Failed:    []string{},
	}

	cutoff := s.clock.Now().Add(-opts.MinAge)
	rows, err := s.LeaveRepository.ListUnsettled(ctx, cutoff)
	if err != nil {
		return report, database.NewStorageError("list unsettled leave", err)
	}

	for _, lr := range rows {
		report.Unsettled = append(report.Unsettled, lr.ID)
		slog.Warn("Approved leave request has no credit debit",
			"request_id", lr.ID, "employee_id", lr.EmployeeID, "days", lr.DaysCount, "reviewed_at", lr.ReviewedAt)

		if !opts.AutoSettle {
			continue
		}
		n, err := s.LeaveRepository.SettleCredits(ctx, lr.ID)
		if err != nil {
			report.Failed = append(report.Failed, lr.ID)
			slog.Error("Failed to settle leave credits", "request_id", lr.ID, "employee_id", lr.EmployeeID, "error", err)
			continue
		}
		if n > 0 {
			report.Settled = append(report.Settled, lr.ID)
			slog.Info("Leave credits settled", "request_id", lr.ID, "employee_id", lr.EmployeeID, "days", lr.DaysCount)
		}
	}
	return report, nil
}

func toResponses(rows []leave.LeaveRequest) []leave.LeaveRequestResponse {
	resp := make([]leave.LeaveRequestResponse, 0, len(rows))
	for _, lr := range rows {
		resp = append(resp, leave.NewLeaveRequestResponse(lr))
	}
	return resp
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	listener approval.Listener,
	clk clock.Clock,
) leave.LeaveService {
	policy := creditPolicy{employees: employeeRepo, leaves: leaveRepo}
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepo,
		workflow:        approvalsvc.NewWorkflow[leave.LeaveRequest](approval.KindLeave, leaveRepo, policy, listener, clk),
		clock:           clk,
	}
}
