package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (overtime.OvertimeService, overtime.OvertimeRepository, string) {
	t.Helper()
	clk := clock.Fixed(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(memory.WithClock(clk))
	e, err := memory.NewEmployeeRepository(store).Create(context.Background(), employee.Employee{
		EmployeeCode: "EMP001",
		FullName:     "Juan Dela Cruz",
		Position:     "Analyst",
		Department:   "Finance",
		IsActive:     true,
	})
	require.NoError(t, err)

	repo := memory.NewOvertimeRepository(store)
	return NewOvertimeService(repo, nil, clk), repo, e.ID
}

func TestSubmit_Validation(t *testing.T) {
	svc, _, empID := setup(t)

	_, err := svc.Submit(context.Background(), overtime.CreateOvertimeRequest{
		EmployeeID:     empID,
		RequestDate:    "2026-03-03",
		HoursRequested: 9,
		Reason:         "Audit",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "hours_requested")

	_, err = svc.Submit(context.Background(), overtime.CreateOvertimeRequest{
		EmployeeID:     empID,
		RequestDate:    "2026-03-02",
		HoursRequested: 2,
		Reason:         "Audit",
	})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "request_date cannot be in the past", verrs.ToMap()["request_date"])
}

func TestSubmit_DuplicateAndAlreadyApproved(t *testing.T) {
	svc, _, empID := setup(t)
	ctx := context.Background()
	req := overtime.CreateOvertimeRequest{
		EmployeeID:     empID,
		RequestDate:    "2026-03-05",
		HoursRequested: 2,
		Reason:         "Month-end close",
	}

	created, err := svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusPending, created.Status)

	_, err = svc.Submit(ctx, req)
	assert.ErrorIs(t, err, approval.ErrDuplicateRequest)

	res, err := svc.Approve(ctx, approval.ReviewInput{RequestID: created.ID, ReviewerID: "admin-1"})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "Overtime request approved successfully.", res.Message)

	_, err = svc.Submit(ctx, req)
	assert.ErrorIs(t, err, overtime.ErrAlreadyApproved)
}

func TestMonthlyOvertime(t *testing.T) {
	svc, repo, empID := setup(t)
	ctx := context.Background()

	for _, day := range []int{5, 6} {
		ot, err := svc.Submit(ctx, overtime.CreateOvertimeRequest{
			EmployeeID:     empID,
			RequestDate:    time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			HoursRequested: 2,
			Reason:         "Inventory",
		})
		require.NoError(t, err)
		_, err = svc.Approve(ctx, approval.ReviewInput{RequestID: ot.ID, ReviewerID: "admin-1"})
		require.NoError(t, err)
		_, err = repo.UpdateActualOvertime(ctx, ot.ID, 1.335)
		require.NoError(t, err)
	}

	got, err := svc.MonthlyOvertime(ctx, empID, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, 2.67, got.TotalOvertime)
	assert.Equal(t, 3, got.Month)

	_, err = svc.MonthlyOvertime(ctx, empID, 2026, time.Month(13))
	assert.ErrorIs(t, err, overtime.ErrInvalidMonth)
}

func TestSubmit_KeepsEvidence(t *testing.T) {
	svc, _, empID := setup(t)
	evidence := "uploads/overtime/approval-memo.pdf"

	created, err := svc.Submit(context.Background(), overtime.CreateOvertimeRequest{
		EmployeeID:     empID,
		RequestDate:    "2026-03-05",
		HoursRequested: 2,
		Reason:         "Quarter close",
		EvidencePath:   &evidence,
	})
	require.NoError(t, err)
	require.NotNil(t, created.EvidencePath)
	assert.Equal(t, evidence, *created.EvidencePath)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EvidencePath)
	assert.Equal(t, evidence, *got.EvidencePath)
}
