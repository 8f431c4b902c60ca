package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	approvalsvc "github.com/cmlabs-hris/worklog-backend-go/internal/service/approval"
	"github.com/shopspring/decimal"
)

type OvertimeServiceImpl struct {
	overtime.OvertimeRepository
	workflow *approvalsvc.Workflow[overtime.OvertimeRequest]
	clock    clock.Clock
}

// Submit implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Submit(ctx context.Context, req overtime.CreateOvertimeRequest) (overtime.OvertimeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}

	now := s.clock.Now()
	ot, err := req.ToOvertimeRequest(now.Location())
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}
	if ot.RequestDate.Before(clock.Date(now)) {
		return overtime.OvertimeRequestResponse{}, validator.ValidationErrors{
			{Field: "request_date", Message: "request_date cannot be in the past"},
		}
	}

	approved, err := s.OvertimeRepository.FindApprovedForDate(ctx, ot.EmployeeID, ot.RequestDate)
	if err != nil {
		return overtime.OvertimeRequestResponse{}, database.NewStorageError("check approved overtime", err)
	}
	if approved != nil {
		return overtime.OvertimeRequestResponse{}, overtime.ErrAlreadyApproved
	}

	created, err := s.workflow.Submit(ctx, ot)
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}
	return overtime.NewOvertimeRequestResponse(created), nil
}

// Approve implements approval.Reviewer.
func (s *OvertimeServiceImpl) Approve(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return s.workflow.Approve(ctx, in)
}

// Reject implements approval.Reviewer.
func (s *OvertimeServiceImpl) Reject(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return s.workflow.Reject(ctx, in)
}

// Mine implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Mine(ctx context.Context, employeeID string) ([]overtime.OvertimeRequestResponse, error) {
	rows, err := s.OvertimeRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	return toResponses(rows), nil
}

// List implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) List(ctx context.Context, status *approval.Status) ([]overtime.OvertimeRequestResponse, error) {
	rows, err := s.OvertimeRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	return toResponses(rows), nil
}

// Get implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Get(ctx context.Context, id string) (overtime.OvertimeRequestResponse, error) {
	ot, err := s.OvertimeRepository.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}
	return overtime.NewOvertimeRequestResponse(ot), nil
}

// PendingCount implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) PendingCount(ctx context.Context) (int64, error) {
	return s.OvertimeRepository.CountPending(ctx)
}

// MonthlyOvertime implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) MonthlyOvertime(ctx context.Context, employeeID string, year int, month time.Month) (overtime.MonthlyOvertimeResponse, error) {
	if month < time.January || month > time.December {
		return overtime.MonthlyOvertimeResponse{}, overtime.ErrInvalidMonth
	}

	total, err := s.OvertimeRepository.MonthlyOvertime(ctx, employeeID, year, month)
	if err != nil {
		return overtime.MonthlyOvertimeResponse{}, fmt.Errorf("failed to sum overtime: %w", err)
	}

	return overtime.MonthlyOvertimeResponse{
		EmployeeID:    employeeID,
		Year:          year,
		Month:         int(month),
		TotalOvertime: decimal.NewFromFloat(total).Round(2).InexactFloat64(),
	}, nil
}

func toResponses(rows []overtime.OvertimeRequest) []overtime.OvertimeRequestResponse {
	resp := make([]overtime.OvertimeRequestResponse, 0, len(rows))
	for _, ot := range rows {
		resp = append(resp, overtime.NewOvertimeRequestResponse(ot))
	}
	return resp
}

func NewOvertimeService(repo overtime.OvertimeRepository, listener approval.Listener, clk clock.Clock) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		OvertimeRepository: repo,
		workflow:           approvalsvc.NewWorkflow[overtime.OvertimeRequest](approval.KindOvertime, repo, nil, listener, clk),
		clock:              clk,
	}
}
