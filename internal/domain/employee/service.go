package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, activeOnly bool) ([]EmployeeResponse, error)
	SetLeaveCredits(ctx context.Context, req SetLeaveCreditsRequest) (EmployeeResponse, error)
	AssignShift(ctx context.Context, req AssignShiftRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, requesterID string) error
}
