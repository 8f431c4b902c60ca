package leave

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
)

// creditPolicy refuses approvals the employee's live balance cannot cover
// and debits the balance once the approval is stored.
type creditPolicy struct {
	employees employee.EmployeeRepository
	leaves    leave.LeaveRepository
}

func (p creditPolicy) CheckApprove(ctx context.Context, req leave.LeaveRequest) error {
	credits, err := p.employees.GetLeaveCredits(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return database.NewStorageError("read leave credits", err)
	}
	if credits < req.DaysCount {
		return &leave.InsufficientCreditsError{Available: credits, Required: req.DaysCount}
	}
	return nil
}

func (p creditPolicy) OnApproved(ctx context.Context, req leave.LeaveRequest) error {
	n, err := p.leaves.SettleCredits(ctx, req.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return database.ErrNoRowsAffected
	}
	return nil
}
