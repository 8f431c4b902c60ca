package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[rec.EmployeeID]; !ok {
		return attendance.Record{}, errForeignKey("employee", rec.EmployeeID)
	}
	for _, existing := range r.s.attendance {
		if existing.EmployeeID == rec.EmployeeID && sameDay(existing.Date, rec.Date) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
	}

	now := r.s.now()
	rec.ID = newID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.s.attendance[rec.ID] = rec
	return rec, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.attendance {
		if rec.EmployeeID == employeeID && sameDay(rec.Date, date) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *attendanceRepository) StartLunch(ctx context.Context, id string, at timeofday.TimeOfDay) (int64, error) {
	return r.transition(id,
		func(rec attendance.Record) bool {
			return rec.TimeIn != nil && rec.LunchStart == nil && rec.TimeOut == nil
		},
		func(rec *attendance.Record) { rec.LunchStart = &at })
}

func (r *attendanceRepository) EndLunch(ctx context.Context, id string, at timeofday.TimeOfDay) (int64, error) {
	return r.transition(id,
		func(rec attendance.Record) bool {
			return rec.LunchStart != nil && rec.LunchEnd == nil && rec.TimeOut == nil
		},
		func(rec *attendance.Record) { rec.LunchEnd = &at })
}

func (r *attendanceRepository) Complete(ctx context.Context, id string, c attendance.Completion) (int64, error) {
	return r.transition(id,
		func(rec attendance.Record) bool {
			return rec.TimeIn != nil && rec.TimeOut == nil
		},
		func(rec *attendance.Record) {
			timeOut := c.TimeOut
			status := c.Status
			rec.TimeOut = &timeOut
			rec.TotalTime = c.TotalTime
			rec.LunchDuration = c.LunchDuration
			rec.PaidHours = c.PaidHours
			rec.OvertimeHours = c.OvertimeHours
			rec.Status = &status
		})
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, rec := range r.s.attendance {
		if rec.EmployeeID != employeeID {
			continue
		}
		if filter.From != nil && rec.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.Date.After(*filter.To) {
			continue
		}
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b attendance.Record) int {
		return b.Date.Compare(a.Date)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, rec := range r.s.attendance {
		if sameDay(rec.Date, date) {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b attendance.Record) int {
		if a.TimeIn != nil && b.TimeIn != nil && *a.TimeIn != *b.TimeIn {
			return cmp.Compare(*a.TimeIn, *b.TimeIn)
		}
		return strings.Compare(a.EmployeeID, b.EmployeeID)
	})
	return out, nil
}

// transition applies fn only while allowed holds, like the conditioned
// UPDATE in SQL.
func (r *attendanceRepository) transition(id string, allowed func(attendance.Record) bool, fn func(*attendance.Record)) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.attendance[id]
	if !ok || !allowed(rec) {
		return 0, nil
	}
	fn(&rec)
	rec.UpdatedAt = r.s.now()
	r.s.attendance[id] = rec
	return 1, nil
}
