// Package memory keeps every table in process memory behind one lock. It
// backs the service tests and STORAGE_DRIVER=memory for local runs.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	clock clock.Clock

	employees  map[string]employee.Employee
	shifts     map[string]shift.Shift
	attendance map[string]attendance.Record

	leaves   *requests[leave.LeaveRequest]
	overtime *requests[overtime.OvertimeRequest]
	lates    *requests[lateconsideration.LateConsideration]
}

type Option func(*Store)

// WithClock sets the clock used for created_at, updated_at and
// reviewed_at stamps.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		clock:      clock.New(time.UTC),
		employees:  make(map[string]employee.Employee),
		shifts:     make(map[string]shift.Shift),
		attendance: make(map[string]attendance.Record),
	}
	s.leaves = newRequests(s,
		func(r *leave.LeaveRequest) *requestMeta {
			return &requestMeta{id: &r.ID, employeeID: r.EmployeeID, review: &r.Review, createdAt: &r.CreatedAt, updatedAt: &r.UpdatedAt}
		},
		func(a, b leave.LeaveRequest) bool {
			return a.StartDate.Equal(b.StartDate) && a.EndDate.Equal(b.EndDate)
		})
	s.overtime = newRequests(s,
		func(r *overtime.OvertimeRequest) *requestMeta {
			return &requestMeta{id: &r.ID, employeeID: r.EmployeeID, review: &r.Review, createdAt: &r.CreatedAt, updatedAt: &r.UpdatedAt}
		},
		func(a, b overtime.OvertimeRequest) bool {
			return a.RequestDate.Equal(b.RequestDate)
		})
	s.lates = newRequests(s,
		func(r *lateconsideration.LateConsideration) *requestMeta {
			return &requestMeta{id: &r.ID, employeeID: r.EmployeeID, review: &r.Review, createdAt: &r.CreatedAt, updatedAt: &r.UpdatedAt}
		},
		func(a, b lateconsideration.LateConsideration) bool {
			return a.AttendanceDate.Equal(b.AttendanceDate)
		})

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) now() time.Time {
	return s.clock.Now()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// sameDay compares calendar dates regardless of location.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
