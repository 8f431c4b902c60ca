package shift

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	svc       shift.ShiftService
	repo      shift.ShiftRepository
	employees employee.EmployeeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(memory.WithClock(clock.Fixed(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))))
	repo := memory.NewShiftRepository(store)
	return &fixture{
		svc:       NewShiftService(repo, memory.NewTransactor()),
		repo:      repo,
		employees: memory.NewEmployeeRepository(store),
	}
}

func (f *fixture) create(t *testing.T, name, start, end string, isDefault bool) shift.ShiftResponse {
	t.Helper()
	sh, err := f.svc.Create(context.Background(), shift.CreateShiftRequest{
		Name:      name,
		StartTime: start,
		EndTime:   end,
		WorkHours: 8,
		IsDefault: isDefault,
	})
	require.NoError(t, err)
	return sh
}

func (f *fixture) employee(t *testing.T, code string, shiftID *string) string {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     "Employee " + code,
		Position:     "Clerk",
		Department:   "Operations",
		ShiftID:      shiftID,
		IsActive:     true,
	})
	require.NoError(t, err)
	return e.ID
}

func TestResolve_FallbackOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	none, err := f.svc.Resolve(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, none)

	mid := f.create(t, "Mid Shift", "12:00:00", "21:00:00", false)
	fallback, err := f.svc.Resolve(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, fallback)
	assert.Equal(t, mid.ID, fallback.ID)

	day := f.create(t, "Day Shift", "08:00:00", "17:00:00", true)
	night := f.create(t, "Night Shift", "22:00:00", "06:00:00", false)

	unassigned := f.employee(t, "EMP001", nil)
	got, err := f.svc.Resolve(ctx, unassigned)
	require.NoError(t, err)
	assert.Equal(t, day.ID, got.ID)

	assigned := f.employee(t, "EMP002", &night.ID)
	got, err = f.svc.Resolve(ctx, assigned)
	require.NoError(t, err)
	assert.Equal(t, night.ID, got.ID)
	assert.True(t, got.IsNightShift())

	require.NoError(t, f.svc.Deactivate(ctx, mid.ID))
	_, err = f.repo.SetActive(ctx, night.ID, false)
	require.NoError(t, err)
	got, err = f.svc.Resolve(ctx, assigned)
	require.NoError(t, err)
	assert.Equal(t, day.ID, got.ID)
}

func TestCreate_DefaultIsExclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.create(t, "Day Shift", "08:00:00", "17:00:00", true)
	second := f.create(t, "Mid Shift", "12:00:00", "21:00:00", true)

	got, err := f.svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)

	list, err := f.svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "Mid Shift (12:00 PM - 9:00 PM)", list[0].Display)

	_, err = f.svc.Create(ctx, shift.CreateShiftRequest{
		Name:      "day shift",
		StartTime: "07:00:00",
		EndTime:   "16:00:00",
		WorkHours: 8,
	})
	assert.ErrorIs(t, err, shift.ErrShiftNameExists)
}

func TestUpdate_PromoteToDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := f.create(t, "Day Shift", "08:00:00", "17:00:00", true)
	mid := f.create(t, "Mid Shift", "12:00:00", "21:00:00", false)

	updated, err := f.svc.Update(ctx, shift.UpdateShiftRequest{
		ID:                 mid.ID,
		IsDefault:          ptr(true),
		GracePeriodMinutes: ptr(0),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
	assert.Equal(t, 0, updated.GracePeriodMinutes)

	old, err := f.svc.Get(ctx, day.ID)
	require.NoError(t, err)
	assert.False(t, old.IsDefault)
}

func TestDeactivate_Refusals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := f.create(t, "Day Shift", "08:00:00", "17:00:00", true)
	mid := f.create(t, "Mid Shift", "12:00:00", "21:00:00", false)
	f.employee(t, "EMP001", &mid.ID)

	assert.ErrorIs(t, f.svc.Deactivate(ctx, day.ID), shift.ErrDefaultShiftDeactivation)
	assert.ErrorIs(t, f.svc.Deactivate(ctx, mid.ID), shift.ErrShiftInUse)

	moved, err := f.svc.ReassignEmployees(ctx, shift.ReassignEmployeesRequest{FromShiftID: mid.ID, ToShiftID: day.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, moved.Moved)

	require.NoError(t, f.svc.Deactivate(ctx, mid.ID))
	got, err := f.svc.Get(ctx, mid.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = f.svc.ReassignEmployees(ctx, shift.ReassignEmployeesRequest{FromShiftID: day.ID, ToShiftID: mid.ID})
	assert.ErrorIs(t, err, shift.ErrShiftInactive)

	_, err = f.svc.ReassignEmployees(ctx, shift.ReassignEmployeesRequest{FromShiftID: day.ID, ToShiftID: day.ID})
	assert.ErrorIs(t, err, shift.ErrSameShift)

	require.NoError(t, f.svc.Activate(ctx, mid.ID))
}
