package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]employee.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return strings.Compare(a.FullName, b.FullName)
	})
	return out, nil
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	if e.ShiftID != nil {
		if _, ok := r.s.shifts[*e.ShiftID]; !ok {
			return employee.Employee{}, errForeignKey("shift", *e.ShiftID)
		}
	}

	now := r.s.now()
	e.ID = newID()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.s.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepository) LastEmployeeCode(ctx context.Context) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	last := ""
	for _, e := range r.s.employees {
		code := e.EmployeeCode
		if !strings.HasPrefix(code, "EMP") {
			continue
		}
		if len(code) > len(last) || (len(code) == len(last) && code > last) {
			last = code
		}
	}
	return last, nil
}

func (r *employeeRepository) GetLeaveCredits(ctx context.Context, id string) (int, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return e.LeaveCredits, nil
}

func (r *employeeRepository) SetLeaveCredits(ctx context.Context, id string, credits int) error {
	if credits < 0 {
		return employee.ErrNegativeLeaveCredits
	}
	return r.update(id, func(e *employee.Employee) { e.LeaveCredits = credits })
}

func (r *employeeRepository) AssignShift(ctx context.Context, id string, shiftID *string) error {
	r.s.mu.RLock()
	if shiftID != nil {
		if _, ok := r.s.shifts[*shiftID]; !ok {
			r.s.mu.RUnlock()
			return errForeignKey("shift", *shiftID)
		}
	}
	r.s.mu.RUnlock()

	return r.update(id, func(e *employee.Employee) { e.ShiftID = shiftID })
}

func (r *employeeRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(id, func(e *employee.Employee) { e.IsActive = active })
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}

	for key, rec := range r.s.attendance {
		if rec.EmployeeID == id {
			delete(r.s.attendance, key)
		}
	}
	r.s.leaves.deleteEmployee(id)
	r.s.overtime.deleteEmployee(id)
	r.s.lates.deleteEmployee(id)
	delete(r.s.employees, id)
	return nil
}

func (r *employeeRepository) update(id string, fn func(*employee.Employee)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	fn(&e)
	e.UpdatedAt = r.s.now()
	r.s.employees[id] = e
	return nil
}
