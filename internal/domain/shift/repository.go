package shift

import "context"

type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context, includeInactive bool) ([]Shift, error)

	// FindAssignedActive returns the active shift assigned to the employee,
	// or nil when the employee has none or it is inactive.
	FindAssignedActive(ctx context.Context, employeeID string) (*Shift, error)
	FindDefaultActive(ctx context.Context) (*Shift, error)
	FindAnyActive(ctx context.Context) (*Shift, error)

	Create(ctx context.Context, s Shift) (Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)

	// ClearDefault unsets is_default on every shift except exceptID.
	ClearDefault(ctx context.Context, exceptID string) error
	SetActive(ctx context.Context, id string, active bool) (int64, error)

	CountActiveEmployees(ctx context.Context, shiftID string) (int64, error)
	ReassignEmployees(ctx context.Context, fromShiftID, toShiftID string) (int64, error)
}
