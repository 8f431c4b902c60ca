package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)

	// LastEmployeeCode returns "" when no employee exists yet.
	LastEmployeeCode(ctx context.Context) (string, error)

	// GetLeaveCredits re-reads the live balance.
	GetLeaveCredits(ctx context.Context, id string) (int, error)
	SetLeaveCredits(ctx context.Context, id string, credits int) error
	AssignShift(ctx context.Context, id string, shiftID *string) error
	SetActive(ctx context.Context, id string, active bool) error

	// Delete removes the employee together with attendance and requests.
	Delete(ctx context.Context, id string) error
}
