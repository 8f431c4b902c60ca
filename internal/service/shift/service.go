package shift

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	db database.Transactor
}

// Resolve implements shift.Resolver. Lookup order is the employee's own
// active shift, then the active default, then any active shift.
func (s *ShiftServiceImpl) Resolve(ctx context.Context, employeeID string) (*shift.Shift, error) {
	lookups := []func() (*shift.Shift, error){
		func() (*shift.Shift, error) { return s.ShiftRepository.FindAssignedActive(ctx, employeeID) },
		func() (*shift.Shift, error) { return s.ShiftRepository.FindDefaultActive(ctx) },
		func() (*shift.Shift, error) { return s.ShiftRepository.FindAnyActive(ctx) },
	}
	for _, lookup := range lookups {
		sh, err := lookup()
		if err != nil {
			return nil, database.NewStorageError("resolve shift", err)
		}
		if sh != nil {
			return sh, nil
		}
	}
	return nil, nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context, includeInactive bool) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	resp := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, shift.NewShiftResponse(sh))
	}
	return resp, nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	if !validator.IsValidUUID(id) {
		return shift.ShiftResponse{}, shift.ErrShiftNotFound
	}
	sh, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(sh), nil
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var created shift.Shift
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.IsDefault {
			if err := s.ShiftRepository.ClearDefault(ctx, ""); err != nil {
				return err
			}
		}
		var err error
		created, err = s.ShiftRepository.Create(ctx, req.ToShift())
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	slog.Info("shift created", "shift_id", created.ID, "name", created.Name, "default", created.IsDefault)
	return shift.NewShiftResponse(created), nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var updated shift.Shift
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.ShiftRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		next := req.Apply(current)
		if next.StartTime == next.EndTime {
			return validator.ValidationErrors{
				{Field: "end_time", Message: "end_time must differ from start_time"},
			}
		}
		if next.IsDefault && !next.IsActive {
			return shift.ErrShiftInactive
		}

		if next.IsDefault && !current.IsDefault {
			if err := s.ShiftRepository.ClearDefault(ctx, next.ID); err != nil {
				return err
			}
		}
		updated, err = s.ShiftRepository.Update(ctx, next)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return shift.NewShiftResponse(updated), nil
}

// Activate implements shift.ShiftService.
func (s *ShiftServiceImpl) Activate(ctx context.Context, id string) error {
	if _, err := s.ShiftRepository.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.ShiftRepository.SetActive(ctx, id, true)
	if err != nil {
		return database.NewStorageError("activate shift", err)
	}
	if n == 0 {
		return database.NewStorageError("activate shift", database.ErrNoRowsAffected)
	}
	return nil
}

// Deactivate implements shift.ShiftService.
func (s *ShiftServiceImpl) Deactivate(ctx context.Context, id string) error {
	sh, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sh.IsDefault {
		return shift.ErrDefaultShiftDeactivation
	}

	assigned, err := s.ShiftRepository.CountActiveEmployees(ctx, id)
	if err != nil {
		return database.NewStorageError("count shift employees", err)
	}
	if assigned > 0 {
		return fmt.Errorf("%w: %d active employee(s)", shift.ErrShiftInUse, assigned)
	}

	n, err := s.ShiftRepository.SetActive(ctx, id, false)
	if err != nil {
		return database.NewStorageError("deactivate shift", err)
	}
	if n == 0 {
		return database.NewStorageError("deactivate shift", database.ErrNoRowsAffected)
	}

	slog.Info("shift deactivated", "shift_id", id, "name", sh.Name)
	return nil
}

// ReassignEmployees implements shift.ShiftService.
func (s *ShiftServiceImpl) ReassignEmployees(ctx context.Context, req shift.ReassignEmployeesRequest) (shift.ReassignEmployeesResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ReassignEmployeesResponse{}, err
	}
	if req.FromShiftID == req.ToShiftID {
		return shift.ReassignEmployeesResponse{}, shift.ErrSameShift
	}

	var moved int64
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ShiftRepository.GetByID(ctx, req.FromShiftID); err != nil {
			return err
		}
		target, err := s.ShiftRepository.GetByID(ctx, req.ToShiftID)
		if err != nil {
			return err
		}
		if !target.IsActive {
			return shift.ErrShiftInactive
		}
		moved, err = s.ShiftRepository.ReassignEmployees(ctx, req.FromShiftID, req.ToShiftID)
		return err
	})
	if err != nil {
		return shift.ReassignEmployeesResponse{}, fmt.Errorf("failed to reassign employees: %w", err)
	}

	slog.Info("employees reassigned", "from_shift_id", req.FromShiftID, "to_shift_id", req.ToShiftID, "moved", moved)
	return shift.ReassignEmployeesResponse{
		FromShiftID: req.FromShiftID,
		ToShiftID:   req.ToShiftID,
		Moved:       moved,
	}, nil
}

func NewShiftService(repo shift.ShiftRepository, db database.Transactor) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository: repo,
		db:              db,
	}
}
