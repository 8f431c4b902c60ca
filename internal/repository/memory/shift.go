package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
)

type shiftRepository struct {
	s *Store
}

func NewShiftRepository(s *Store) shift.ShiftRepository {
	return &shiftRepository{s: s}
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sh, ok := r.s.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return sh, nil
}

// List orders the default shift first, then by name.
func (r *shiftRepository) List(ctx context.Context, includeInactive bool) ([]shift.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.sorted(func(sh shift.Shift) bool { return includeInactive || sh.IsActive }), nil
}

func (r *shiftRepository) FindAssignedActive(ctx context.Context, employeeID string) (*shift.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[employeeID]
	if !ok || e.ShiftID == nil {
		return nil, nil
	}
	sh, ok := r.s.shifts[*e.ShiftID]
	if !ok || !sh.IsActive {
		return nil, nil
	}
	return &sh, nil
}

func (r *shiftRepository) FindDefaultActive(ctx context.Context) (*shift.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.first(func(sh shift.Shift) bool { return sh.IsActive && sh.IsDefault }), nil
}

func (r *shiftRepository) FindAnyActive(ctx context.Context) (*shift.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.first(func(sh shift.Shift) bool { return sh.IsActive }), nil
}

func (r *shiftRepository) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(sh.Name, "") {
		return shift.Shift{}, shift.ErrShiftNameExists
	}

	now := r.s.now()
	sh.ID = newID()
	sh.CreatedAt = now
	sh.UpdatedAt = now
	r.s.shifts[sh.ID] = sh
	return sh, nil
}

func (r *shiftRepository) Update(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.shifts[sh.ID]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	if r.nameTaken(sh.Name, sh.ID) {
		return shift.Shift{}, shift.ErrShiftNameExists
	}

	sh.CreatedAt = existing.CreatedAt
	sh.UpdatedAt = r.s.now()
	r.s.shifts[sh.ID] = sh
	return sh, nil
}

func (r *shiftRepository) ClearDefault(ctx context.Context, exceptID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, sh := range r.s.shifts {
		if id != exceptID && sh.IsDefault {
			sh.IsDefault = false
			sh.UpdatedAt = r.s.now()
			r.s.shifts[id] = sh
		}
	}
	return nil
}

func (r *shiftRepository) SetActive(ctx context.Context, id string, active bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh, ok := r.s.shifts[id]
	if !ok || (!active && sh.IsDefault) {
		return 0, nil
	}
	sh.IsActive = active
	sh.UpdatedAt = r.s.now()
	r.s.shifts[id] = sh
	return 1, nil
}

func (r *shiftRepository) CountActiveEmployees(ctx context.Context, shiftID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, e := range r.s.employees {
		if e.IsActive && e.ShiftID != nil && *e.ShiftID == shiftID {
			n++
		}
	}
	return n, nil
}

func (r *shiftRepository) ReassignEmployees(ctx context.Context, fromShiftID, toShiftID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, e := range r.s.employees {
		if e.ShiftID != nil && *e.ShiftID == fromShiftID {
			to := toShiftID
			e.ShiftID = &to
			e.UpdatedAt = r.s.now()
			r.s.employees[id] = e
			n++
		}
	}
	return n, nil
}

func (r *shiftRepository) nameTaken(name, exceptID string) bool {
	for id, sh := range r.s.shifts {
		if id != exceptID && strings.EqualFold(sh.Name, name) {
			return true
		}
	}
	return false
}

func (r *shiftRepository) sorted(keep func(shift.Shift) bool) []shift.Shift {
	out := make([]shift.Shift, 0, len(r.s.shifts))
	for _, sh := range r.s.shifts {
		if keep(sh) {
			out = append(out, sh)
		}
	}
	slices.SortFunc(out, func(a, b shift.Shift) int {
		if a.IsDefault != b.IsDefault {
			if a.IsDefault {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func (r *shiftRepository) first(keep func(shift.Shift) bool) *shift.Shift {
	matches := r.sorted(keep)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}
