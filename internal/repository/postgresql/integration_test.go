package postgresql_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/postgresql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, migrates it to the latest schema
// and empties every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	dir, err := filepath.Abs(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	m, err := migrate.New("file://"+dir, dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
	srcErr, dbErr := m.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Exec(ctx, `TRUNCATE TABLE attendance, leave_requests, overtime_requests, late_considerations, employees, shifts CASCADE`)
	require.NoError(t, err)
	return db
}

func TestIntegration_LeaveSettlement(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	shifts := postgresql.NewShiftRepository(db)
	employees := postgresql.NewEmployeeRepository(db)
	leaves := postgresql.NewLeaveRepository(db)

	day, err := shifts.Create(ctx, shift.Shift{
		Name:                "Day Shift",
		StartTime:           timeofday.New(8, 0, 0),
		EndTime:             timeofday.New(17, 0, 0),
		WorkHours:           8,
		GracePeriodMinutes:  15,
		MinHoursBeforeLunch: 3,
		IsDefault:           true,
		IsActive:            true,
	})
	require.NoError(t, err)

	emp, err := employees.Create(ctx, employee.Employee{
		EmployeeCode: "EMP001",
		FullName:     "Alice Reyes",
		Position:     "Engineer",
		Department:   "IT",
		LeaveCredits: 10,
		ShiftID:      &day.ID,
		IsActive:     true,
	})
	require.NoError(t, err)

	req, err := leaves.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		LeaveType:  leave.TypeVacation,
		StartDate:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		DaysCount:  3,
		Reason:     "Family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, approval.StatusPending, req.Status)

	_, err = leaves.Create(ctx, req)
	assert.ErrorIs(t, err, approval.ErrDuplicateRequest)

	n, err := leaves.Decide(ctx, req.ID, approval.Decision{
		Status:     approval.StatusApproved,
		ReviewerID: "mgr-1",
		DecidedAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	unsettled, err := leaves.ListUnsettled(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, unsettled, 1)

	tr := postgresql.NewTransactor(db)
	err = tr.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err = leaves.SettleCredits(ctx, req.ID)
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = leaves.SettleCredits(ctx, req.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	credits, err := employees.GetLeaveCredits(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, credits)
}

func TestIntegration_AttendanceLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	employees := postgresql.NewEmployeeRepository(db)
	records := postgresql.NewAttendanceRepository(db)

	emp, err := employees.Create(ctx, employee.Employee{
		EmployeeCode: "EMP001",
		FullName:     "Bob Santos",
		Position:     "Analyst",
		Department:   "Finance",
		LeaveCredits: employee.DefaultLeaveCredits,
		IsActive:     true,
	})
	require.NoError(t, err)

	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	in := timeofday.New(8, 20, 0)
	rec, err := records.Create(ctx, attendance.Record{EmployeeID: emp.ID, Date: date, TimeIn: &in})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, rec.State())

	_, err = records.Create(ctx, attendance.Record{EmployeeID: emp.ID, Date: date, TimeIn: &in})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	n, err := records.StartLunch(ctx, rec.ID, timeofday.New(12, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = records.StartLunch(ctx, rec.ID, timeofday.New(12, 5, 0))
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = records.EndLunch(ctx, rec.ID, timeofday.New(13, 0, 0))
	require.NoError(t, err)

	n, err = records.Complete(ctx, rec.ID, attendance.Completion{
		TimeOut:       timeofday.New(17, 50, 0),
		TotalTime:     9.5,
		LunchDuration: 1,
		PaidHours:     8.5,
		OvertimeHours: 0.5,
		Status:        "Late, Complete",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := records.GetByEmployeeAndDate(ctx, emp.ID, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StateCheckedOut, got.State())
	assert.Equal(t, 8.5, got.PaidHours)
	assert.True(t, got.IsLate())
	assert.Equal(t, "5:50 PM", got.TimeOut.Kitchen())

	history, err := records.ListByEmployee(ctx, emp.ID, attendance.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
