package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	shiftRepo shift.ShiftRepository
	db        database.Transactor
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.ShiftID != nil {
		if err := s.requireActiveShift(ctx, *req.ShiftID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	e := employee.Employee{
		FullName:     strings.TrimSpace(req.FullName),
		Position:     strings.TrimSpace(req.Position),
		Department:   strings.TrimSpace(req.Department),
		Email:        blankToNil(req.Email),
		Phone:        blankToNil(req.Phone),
		LeaveCredits: employee.DefaultLeaveCredits,
		ShiftID:      req.ShiftID,
		IsActive:     true,
	}
	if req.LeaveCredits != nil {
		e.LeaveCredits = *req.LeaveCredits
	}

	var created employee.Employee
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		last, err := s.EmployeeRepository.LastEmployeeCode(ctx)
		if err != nil {
			return err
		}
		e.EmployeeCode, err = NextEmployeeCode(last)
		if err != nil {
			return err
		}
		created, err = s.EmployeeRepository.Create(ctx, e)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return s.toResponse(ctx, created), nil
}

// NextEmployeeCode returns the code after last, starting at EMP001.
func NextEmployeeCode(last string) (string, error) {
	if last == "" {
		return "EMP001", nil
	}
	if !validator.IsValidEmployeeCode(last) {
		return "", fmt.Errorf("%w: %q", employee.ErrInvalidEmployeeCode, last)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(last, "EMP"))
	if err != nil {
		return "", fmt.Errorf("parse employee code %q: %w", last, err)
	}
	return fmt.Sprintf("EMP%03d", n+1), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(ctx, e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	rows, err := s.EmployeeRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	shifts, err := s.shiftRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	displays := make(map[string]string, len(shifts))
	for _, sh := range shifts {
		displays[sh.ID] = sh.Display()
	}

	resp := make([]employee.EmployeeResponse, 0, len(rows))
	for _, e := range rows {
		r := employee.NewEmployeeResponse(e)
		if e.ShiftID != nil {
			if d, ok := displays[*e.ShiftID]; ok {
				r.ShiftDisplay = &d
			}
		}
		resp = append(resp, r)
	}
	return resp, nil
}

// SetLeaveCredits implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetLeaveCredits(ctx context.Context, req employee.SetLeaveCreditsRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.EmployeeRepository.SetLeaveCredits(ctx, req.EmployeeID, req.LeaveCredits); err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("leave credits set", "employee_id", req.EmployeeID, "leave_credits", req.LeaveCredits)
	return s.Get(ctx, req.EmployeeID)
}

// AssignShift implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignShift(ctx context.Context, req employee.AssignShiftRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.ShiftID != nil {
		if err := s.requireActiveShift(ctx, *req.ShiftID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if err := s.EmployeeRepository.AssignShift(ctx, req.EmployeeID, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.Get(ctx, req.EmployeeID)
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !e.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}
	return s.EmployeeRepository.SetActive(ctx, id, false)
}

// Delete implements employee.EmployeeService. Attendance and requests of the
// employee go with it.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string, requesterID string) error {
	if id == requesterID {
		return employee.ErrCannotDeleteSelf
	}
	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return database.NewStorageError("delete employee", err)
	}

	slog.Warn("employee deleted", "employee_id", id, "deleted_by", requesterID)
	return nil
}

func (s *EmployeeServiceImpl) requireActiveShift(ctx context.Context, shiftID string) error {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if !sh.IsActive {
		return shift.ErrShiftInactive
	}
	return nil
}

func (s *EmployeeServiceImpl) toResponse(ctx context.Context, e employee.Employee) employee.EmployeeResponse {
	resp := employee.NewEmployeeResponse(e)
	if e.ShiftID == nil {
		return resp
	}
	sh, err := s.shiftRepo.GetByID(ctx, *e.ShiftID)
	if err != nil {
		slog.Warn("failed to load employee shift", "employee_id", e.ID, "shift_id", *e.ShiftID, "error", err)
		return resp
	}
	display := sh.Display()
	resp.ShiftDisplay = &display
	return resp
}

func blankToNil(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, shiftRepo shift.ShiftRepository, db database.Transactor) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		shiftRepo:          shiftRepo,
		db:                 db,
	}
}
