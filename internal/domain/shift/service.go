package shift

import "context"

// Resolver picks the shift that governs an employee's attendance guards.
type Resolver interface {
	// Resolve returns nil when no active shift exists at all.
	Resolve(ctx context.Context, employeeID string) (*Shift, error)
}

type ShiftService interface {
	Resolver

	List(ctx context.Context, includeInactive bool) ([]ShiftResponse, error)
	Get(ctx context.Context, id string) (ShiftResponse, error)
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	ReassignEmployees(ctx context.Context, req ReassignEmployeesRequest) (ReassignEmployeesResponse, error)
}
