package lateconsideration

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	approvalsvc "github.com/cmlabs-hris/worklog-backend-go/internal/service/approval"
)

type LateConsiderationServiceImpl struct {
	lateconsideration.LateConsiderationRepository
	attendanceRepo attendance.AttendanceRepository
	workflow       *approvalsvc.Workflow[lateconsideration.LateConsideration]
	clock          clock.Clock
}

// Submit implements lateconsideration.LateConsiderationService.
func (s *LateConsiderationServiceImpl) Submit(ctx context.Context, req lateconsideration.CreateLateConsiderationRequest) (lateconsideration.LateConsiderationResponse, error) {
	if err := req.Validate(); err != nil {
		return lateconsideration.LateConsiderationResponse{}, err
	}

	now := s.clock.Now()
	lc, err := req.ToLateConsideration(now.Location())
	if err != nil {
		return lateconsideration.LateConsiderationResponse{}, err
	}
	if lc.AttendanceDate.After(clock.Date(now)) {
		return lateconsideration.LateConsiderationResponse{}, validator.ValidationErrors{
			{Field: "attendance_date", Message: "attendance_date cannot be in the future"},
		}
	}

	// Only a day recorded as late can be reconsidered.
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, lc.EmployeeID, lc.AttendanceDate)
	if err != nil {
		return lateconsideration.LateConsiderationResponse{}, database.NewStorageError("load attendance", err)
	}
	if rec == nil || !rec.IsLate() {
		return lateconsideration.LateConsiderationResponse{}, validator.ValidationErrors{
			{Field: "attendance_date", Message: "no late attendance recorded on attendance_date"},
		}
	}

	created, err := s.workflow.Submit(ctx, lc)
	if err != nil {
		return lateconsideration.LateConsiderationResponse{}, err
	}
	return lateconsideration.NewLateConsiderationResponse(created), nil
}

// Approve implements approval.Reviewer.
func (s *LateConsiderationServiceImpl) Approve(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return s.workflow.Approve(ctx, in)
}

// Reject implements approval.Reviewer.
func (s *LateConsiderationServiceImpl) Reject(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return s.workflow.Reject(ctx, in)
}

// Mine implements lateconsideration.LateConsiderationService.
func (s *LateConsiderationServiceImpl) Mine(ctx context.Context, employeeID string) ([]lateconsideration.LateConsiderationResponse, error) {
	rows, err := s.LateConsiderationRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list late considerations: %w", err)
	}
	return toResponses(rows), nil
}

// List implements lateconsideration.LateConsiderationService.
func (s *LateConsiderationServiceImpl) List(ctx context.Context, status *approval.Status) ([]lateconsideration.LateConsiderationResponse, error) {
	rows, err := s.LateConsiderationRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list late considerations: %w", err)
	}
	return toResponses(rows), nil
}

// Get implements lateconsideration.LateConsiderationService.
func (s *LateConsiderationServiceImpl) Get(ctx context.Context, id string) (lateconsideration.LateConsiderationResponse, error) {
	lc, err := s.LateConsiderationRepository.GetByID(ctx, id)
	if err != nil {
		return lateconsideration.LateConsiderationResponse{}, err
	}
	return lateconsideration.NewLateConsiderationResponse(lc), nil
}

// PendingCount implements lateconsideration.LateConsiderationService.
func (s *LateConsiderationServiceImpl) PendingCount(ctx context.Context) (int64, error) {
	return s.LateConsiderationRepository.CountPending(ctx)
}

func toResponses(rows []lateconsideration.LateConsideration) []lateconsideration.LateConsiderationResponse {
	resp := make([]lateconsideration.LateConsiderationResponse, 0, len(rows))
	for _, lc := range rows {
		resp = append(resp, lateconsideration.NewLateConsiderationResponse(lc))
	}
	return resp
}

func NewLateConsiderationService(
	repo lateconsideration.LateConsiderationRepository,
	attendanceRepo attendance.AttendanceRepository,
	listener approval.Listener,
	clk clock.Clock,
) lateconsideration.LateConsiderationService {
	return &LateConsiderationServiceImpl{
		LateConsiderationRepository: repo,
		attendanceRepo:              attendanceRepo,
		workflow:                    approvalsvc.NewWorkflow[lateconsideration.LateConsideration](approval.KindLateConsideration, repo, nil, listener, clk),
		clock:                       clk,
	}
}
